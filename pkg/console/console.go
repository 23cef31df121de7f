package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/diillson/aws-cost-explorer-go/internal/shared/types"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// Todas as mensagens de log vão para stderr; stdout fica reservado para a
// saída do relatório, inclusive o documento JSON do modo máquina.

// LogInfo registra uma mensagem de informação em stderr.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.WithWriter(os.Stderr).Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso em stderr.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.WithWriter(os.Stderr).Printfln(format, a...)
}

// LogError registra uma mensagem de erro em stderr.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.WithWriter(os.Stderr).Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso em stderr.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.WithWriter(os.Stderr).Printfln(format, a...)
}

// Cores predefinidas para uso consistente
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BoldRed       = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// FormatUSD formata um valor como dólares com separador de milhar.
// Ex.: 1234567.891 -> "$1,234,567.89"
func FormatUSD(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return sign + "$" + b.String() + fracPart
}

// DisplayDailyBars exibe um gráfico de barras com o custo total por dia.
func (c *Console) DisplayDailyBars(dailyCosts []types.DailyCost) {
	maxCost := 0.0
	for _, dc := range dailyCosts {
		if dc.Cost > maxCost {
			maxCost = dc.Cost
		}
	}

	if maxCost == 0 {
		pterm.Warning.Println("All daily costs are $0.00 for this period")
		return
	}

	tableData := pterm.TableData{
		{"Date", "Cost", "", "DoD Change"},
	}

	var prevCost *float64

	for _, dc := range dailyCosts {
		barLength := int((dc.Cost / maxCost) * 40)
		bar := strings.Repeat("█", barLength)

		barColor := pterm.FgBlue.Sprint(bar)
		change := ""

		if prevCost != nil {
			if *prevCost < 0.01 {
				change = pterm.FgYellow.Sprint("N/A")
			} else {
				changePercent := ((dc.Cost - *prevCost) / *prevCost) * 100.0
				switch {
				case changePercent > 0:
					change = pterm.FgRed.Sprintf("+%.1f%%", changePercent)
					barColor = pterm.FgRed.Sprint(bar)
				case changePercent < 0:
					change = pterm.FgGreen.Sprintf("%.1f%%", changePercent)
					barColor = pterm.FgGreen.Sprint(bar)
				default:
					change = pterm.FgYellow.Sprint("0.0%")
					barColor = pterm.FgYellow.Sprint(bar)
				}
			}
		}

		tableData = append(tableData, []string{
			dc.Date,
			FormatUSD(dc.Cost),
			barColor,
			change,
		})

		currentCost := dc.Cost
		prevCost = &currentCost
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle("Daily Cost Trend").WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
