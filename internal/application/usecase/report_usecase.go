package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/diillson/aws-cost-explorer-go/internal/domain/entity"
	"github.com/diillson/aws-cost-explorer-go/internal/domain/repository"
	"github.com/diillson/aws-cost-explorer-go/internal/shared/types"
	"github.com/diillson/aws-cost-explorer-go/pkg/console"
)

// ReportUseCase handles the cost report pipeline: fetch, aggregate, present.
type ReportUseCase struct {
	costRepo   repository.CostRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface

	out io.Writer
	now func() time.Time
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	costRepo repository.CostRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	consoleImpl types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		costRepo:   costRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    consoleImpl,
		out:        os.Stdout,
		now:        time.Now,
	}
}

// RunReport executa o pipeline completo do relatório de custos.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	if args.ConfigFile != "" {
		if err := uc.mergeConfigFile(args); err != nil {
			return err
		}
	}

	if args.Days <= 0 {
		return types.ErrInvalidTimeRange
	}

	if args.Profile != "" {
		if err := uc.validateProfile(args.Profile); err != nil {
			return err
		}
	}

	end := uc.now().UTC()
	start := end.AddDate(0, 0, -args.Days)
	periodDates := fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))

	var accountID string
	if !args.JSON || args.ReportName != "" {
		accountID = uc.resolveAccountID(ctx, args.Profile)
	}

	if !args.JSON {
		uc.displayHeader(accountID, periodDates, args.Days)
	}

	var status types.StatusHandle
	if !args.JSON {
		status = uc.console.Status("Fetching AWS cost data...")
	}
	records, err := uc.costRepo.GetCostRecords(ctx, args.Profile, start, end, args.Tag)
	if status != nil {
		status.Stop()
	}
	if err != nil {
		// Falha de busca é reportada distinta de "sem dados": o erro embrulhado
		// propaga para o chamador, que o registra em stderr uma única vez e
		// termina com código diferente de zero.
		if args.JSON {
			uc.printJSON(map[string]string{"error": err.Error()})
		}
		return fmt.Errorf("fetching cost data: %w", err)
	}

	report := AggregateCostRecords(records)

	if len(report.Services) == 0 {
		if args.JSON {
			return uc.printJSON(map[string]string{"error": "no data"})
		}
		uc.console.LogWarning("No cost data found for the last %d days.", args.Days)
		return nil
	}

	if args.JSON {
		if err := uc.printJSON(report); err != nil {
			return err
		}
	} else {
		uc.renderReport(report)
	}

	if args.ReportName != "" && len(args.ReportType) > 0 {
		uc.exportReport(report, accountID, periodDates, args)
	}

	return nil
}

// mergeConfigFile preenche args com valores do arquivo de configuração;
// flags definidas explicitamente na linha de comando têm precedência.
func (uc *ReportUseCase) mergeConfigFile(args *types.CLIArgs) error {
	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}

	explicit := func(name string) bool { return args.Explicit[name] }

	if !explicit("profile") && cfg.Profile != "" {
		args.Profile = cfg.Profile
	}
	if !explicit("days") && cfg.Days > 0 {
		args.Days = cfg.Days
	}
	if !explicit("json") && cfg.JSON {
		args.JSON = true
	}
	if !explicit("tag") && len(cfg.Tag) > 0 {
		args.Tag = cfg.Tag
	}
	if !explicit("report-name") && cfg.ReportName != "" {
		args.ReportName = cfg.ReportName
	}
	if !explicit("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if !explicit("dir") && cfg.Dir != "" {
		args.Dir = cfg.Dir
	}

	return nil
}

func (uc *ReportUseCase) validateProfile(profile string) error {
	for _, available := range uc.costRepo.GetAWSProfiles() {
		if available == profile {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", types.ErrNoValidProfile, profile)
}

// resolveAccountID resolve o ID da conta; falha não é fatal.
func (uc *ReportUseCase) resolveAccountID(ctx context.Context, profile string) string {
	accountID, err := uc.costRepo.GetAccountID(ctx, profile)
	if err != nil {
		return "Unknown"
	}
	return accountID
}

func (uc *ReportUseCase) displayHeader(accountID, periodDates string, days int) {
	content := fmt.Sprintf("%s\n%s",
		pterm.FgCyan.Sprint("AWS Cost Analysis"),
		pterm.FgYellow.Sprintf("Period: %s (%d days)", periodDates, days))
	if accountID != "" {
		content += "\n" + pterm.FgMagenta.Sprintf("Account: %s", accountID)
	}

	panel := pterm.DefaultBox.
		WithTitle("AWS Cost Explorer").
		WithBoxStyle(pterm.NewStyle(pterm.FgBlue)).
		Sprint(content)
	uc.console.Println(panel)
}

// renderReport exibe a tabela de serviços, o detalhamento por usage type e o
// gráfico de custo diário.
func (uc *ReportUseCase) renderReport(report entity.Report) {
	table := uc.console.CreateTable()
	table.AddColumn("Service")
	table.AddColumn("Cost")
	table.AddColumn("% of Total")

	for _, svc := range report.Services {
		table.AddRow(
			pterm.FgCyan.Sprint(svc.Name),
			pterm.FgGreen.Sprint(console.FormatUSD(svc.Cost)),
			pterm.FgYellow.Sprintf("%.1f%%", svc.Percentage),
		)
	}

	bold := pterm.NewStyle(pterm.Bold)
	table.AddRow(
		bold.Sprint("Total"),
		bold.Sprint(console.FormatUSD(report.TotalCost)),
		bold.Sprint("100.0%"),
	)

	uc.console.Print(table.Render())
	uc.console.Println()

	uc.console.Println(pterm.DefaultBox.
		WithBoxStyle(pterm.NewStyle(pterm.FgBlue)).
		Sprint(pterm.FgCyan.Sprint("Detailed Cost Breakdown by Service")))

	for _, svc := range report.Services {
		usageTable := uc.console.CreateTable()
		usageTable.AddColumn("Usage Type")
		usageTable.AddColumn("Cost")
		usageTable.AddColumn("% of Service")

		for _, ut := range svc.UsageTypes {
			percentage := 0.0
			if svc.Cost > 0 {
				percentage = ut.Cost / svc.Cost * 100
			}
			usageTable.AddRow(
				pterm.FgCyan.Sprint(ut.Name),
				pterm.FgGreen.Sprint(console.FormatUSD(ut.Cost)),
				pterm.FgYellow.Sprintf("%.1f%%", percentage),
			)
		}

		uc.console.Println(pterm.FgMagenta.Sprintf("%s Usage Types", svc.Name))
		uc.console.Print(usageTable.Render())
		uc.console.Println()
	}

	uc.console.DisplayDailyBars(dailyTotals(report.DailyCosts))
}

// dailyTotals reduz os custos diários por serviço ao total de cada dia.
func dailyTotals(dailyCosts []entity.DailySummary) []types.DailyCost {
	totals := make([]types.DailyCost, 0, len(dailyCosts))
	for _, day := range dailyCosts {
		var sum float64
		for _, svc := range day.Services {
			sum += svc.Cost
		}
		totals = append(totals, types.DailyCost{Date: day.Date, Cost: sum})
	}
	return totals
}

// printJSON emite um único documento JSON compacto em stdout.
func (uc *ReportUseCase) printJSON(v interface{}) error {
	if err := json.NewEncoder(uc.out).Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON output: %w", err)
	}
	return nil
}

// exportReport grava o relatório nos formatos solicitados.
func (uc *ReportUseCase) exportReport(report entity.Report, accountID, periodDates string, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(report, accountID, args.ReportName, args.Dir, periodDates)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(report, accountID, args.ReportName, args.Dir, periodDates)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(report, accountID, args.ReportName, args.Dir, periodDates)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}
