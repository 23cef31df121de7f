package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/aws-cost-explorer-go/internal/domain/entity"
	"github.com/diillson/aws-cost-explorer-go/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToCSV grava o relatório como CSV: uma seção de resumo, as linhas de
// serviço/usage type e os custos diários por serviço.
func (r *ExportRepositoryImpl) ExportToCSV(report entity.Report, accountID, filename, outputDir, periodDates string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"AWS Account", "Period", "Total Cost"})
	writer.Write([]string{accountID, periodDates, fmt.Sprintf("%.2f", report.TotalCost)})
	writer.Write([]string{})

	writer.Write([]string{"Service", "Usage Type", "Cost", "Percentage"})
	for _, svc := range report.Services {
		writer.Write([]string{
			svc.Name, "",
			fmt.Sprintf("%.2f", svc.Cost),
			fmt.Sprintf("%.1f", svc.Percentage),
		})
		for _, ut := range svc.UsageTypes {
			percentage := 0.0
			if svc.Cost > 0 {
				percentage = ut.Cost / svc.Cost * 100
			}
			writer.Write([]string{
				svc.Name, ut.Name,
				fmt.Sprintf("%.2f", ut.Cost),
				fmt.Sprintf("%.1f", percentage),
			})
		}
	}
	writer.Write([]string{})

	writer.Write([]string{"Date", "Service", "Cost"})
	for _, day := range report.DailyCosts {
		for _, svc := range day.Services {
			writer.Write([]string{day.Date, svc.Name, fmt.Sprintf("%.2f", svc.Cost)})
		}
	}

	return filepath.Abs(outputFilename)
}

// ExportToJSON grava o relatório como um documento JSON indentado.
func (r *ExportRepositoryImpl) ExportToJSON(report entity.Report, accountID, filename, outputDir, periodDates string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	document := struct {
		AccountID string `json:"accountId"`
		Period    string `json:"period"`
		entity.Report
	}{
		AccountID: accountID,
		Period:    periodDates,
		Report:    report,
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(document); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF grava o relatório como PDF: cabeçalho com conta e período, a
// tabela de serviços e o detalhamento por usage type.
func (r *ExportRepositoryImpl) ExportToPDF(report entity.Report, accountID, filename, outputDir, periodDates string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  AWS Cost Analysis"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Account ID: %s | Period: %s", accountID, periodDates)), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Total Cost: $%.2f", report.TotalCost)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	drawRule := func() {
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Services Overview")
	pdf.Ln(7)
	drawRule()

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(110, 7, "Service", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Cost", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "% of Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, svc := range report.Services {
		pdf.CellFormat(110, 6, tr(svc.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("$%.2f", svc.Cost), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.1f%%", svc.Percentage), "", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Breakdown by Usage Type")
	pdf.Ln(7)
	drawRule()

	pdf.SetFont("Arial", "", 10)
	for _, svc := range report.Services {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, tr(svc.Name), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, ut := range svc.UsageTypes {
			pdf.CellFormat(130, 5, tr("    "+ut.Name), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 5, fmt.Sprintf("$%.2f", ut.Cost), "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by AWS Cost Explorer CLI (Go) | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
