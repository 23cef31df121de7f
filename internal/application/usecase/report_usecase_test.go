package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-explorer-go/internal/domain/entity"
	"github.com/diillson/aws-cost-explorer-go/internal/shared/types"
	"github.com/diillson/aws-cost-explorer-go/pkg/console"
)

// fakeCostRepo is a canned CostRepository for testing the pipeline.
type fakeCostRepo struct {
	records   []entity.CostRecord
	err       error
	profiles  []string
	accountID string
}

func (r *fakeCostRepo) GetAWSProfiles() []string {
	if r.profiles == nil {
		return []string{"default"}
	}
	return r.profiles
}

func (r *fakeCostRepo) GetAccountID(ctx context.Context, profile string) (string, error) {
	if r.accountID == "" {
		return "", errors.New("no caller identity")
	}
	return r.accountID, nil
}

func (r *fakeCostRepo) GetCostRecords(ctx context.Context, profile string, start, end time.Time, tags []string) ([]entity.CostRecord, error) {
	return r.records, r.err
}

type fakeExportRepo struct {
	calls []string
}

func (r *fakeExportRepo) ExportToCSV(report entity.Report, accountID, filename, outputDir, periodDates string) (string, error) {
	r.calls = append(r.calls, "csv")
	return "/tmp/" + filename + ".csv", nil
}

func (r *fakeExportRepo) ExportToJSON(report entity.Report, accountID, filename, outputDir, periodDates string) (string, error) {
	r.calls = append(r.calls, "json")
	return "/tmp/" + filename + ".json", nil
}

func (r *fakeExportRepo) ExportToPDF(report entity.Report, accountID, filename, outputDir, periodDates string) (string, error) {
	r.calls = append(r.calls, "pdf")
	return "/tmp/" + filename + ".pdf", nil
}

type fakeConfigRepo struct {
	cfg *types.Config
	err error
}

func (r *fakeConfigRepo) LoadConfigFile(filePath string) (*types.Config, error) {
	return r.cfg, r.err
}

type nopStatus struct{}

func (nopStatus) Update(string) {}
func (nopStatus) Stop()         {}

type fakeTable struct {
	columns []string
	rows    [][]string
}

func (t *fakeTable) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

func (t *fakeTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, row)
}

func (t *fakeTable) Render() string { return "" }

type fakeConsole struct {
	warnings  []string
	errs      []string
	successes []string
	tables    []*fakeTable
	dailyBars [][]types.DailyCost
}

func (c *fakeConsole) Print(a ...interface{})                  {}
func (c *fakeConsole) Printf(format string, a ...interface{})  {}
func (c *fakeConsole) Println(a ...interface{})                {}
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errs = append(c.errs, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(message string) types.StatusHandle { return nopStatus{} }

func (c *fakeConsole) CreateTable() types.TableInterface {
	table := &fakeTable{}
	c.tables = append(c.tables, table)
	return table
}

func (c *fakeConsole) DisplayDailyBars(dailyCosts []types.DailyCost) {
	c.dailyBars = append(c.dailyBars, dailyCosts)
}

func newTestUseCase(costRepo *fakeCostRepo) (*ReportUseCase, *fakeConsole, *fakeExportRepo, *bytes.Buffer) {
	consoleFake := &fakeConsole{}
	exportFake := &fakeExportRepo{}
	uc := NewReportUseCase(costRepo, exportFake, &fakeConfigRepo{}, consoleFake)

	buf := &bytes.Buffer{}
	uc.out = buf
	uc.now = func() time.Time {
		return time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	}
	return uc, consoleFake, exportFake, buf
}

func sampleRecords() []entity.CostRecord {
	return []entity.CostRecord{
		{Date: "2024-01-01", Service: "EC2", UsageType: "BoxUsage", Cost: 10.00},
		{Date: "2024-01-01", Service: "S3", UsageType: "Storage", Cost: 5.00},
	}
}

func TestRunReport_JSONOutput(t *testing.T) {
	uc, consoleFake, _, buf := newTestUseCase(&fakeCostRepo{records: sampleRecords()})

	err := uc.RunReport(context.Background(), &types.CLIArgs{Days: 30, JSON: true})
	require.NoError(t, err)

	var doc struct {
		TotalCost float64 `json:"totalCost"`
		Services  []struct {
			Name       string  `json:"name"`
			Cost       float64 `json:"cost"`
			Percentage float64 `json:"percentage"`
			UsageTypes []struct {
				Name string  `json:"name"`
				Cost float64 `json:"cost"`
			} `json:"usageTypes"`
		} `json:"services"`
		DailyCosts []struct {
			Date     string `json:"date"`
			Services []struct {
				Name string  `json:"name"`
				Cost float64 `json:"cost"`
			} `json:"services"`
		} `json:"dailyCosts"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.InDelta(t, 15.00, doc.TotalCost, 0.01)
	require.Len(t, doc.Services, 2)
	assert.Equal(t, "EC2", doc.Services[0].Name)
	assert.InDelta(t, 66.7, doc.Services[0].Percentage, 0.05)
	require.Len(t, doc.DailyCosts, 1)
	assert.Equal(t, "2024-01-01", doc.DailyCosts[0].Date)

	// Modo JSON não desenha tabelas nem gráficos.
	assert.Empty(t, consoleFake.tables)
	assert.Empty(t, consoleFake.dailyBars)
}

func TestRunReport_JSONNoData(t *testing.T) {
	uc, _, _, buf := newTestUseCase(&fakeCostRepo{})

	err := uc.RunReport(context.Background(), &types.CLIArgs{Days: 30, JSON: true})
	require.NoError(t, err)

	assert.JSONEq(t, `{"error": "no data"}`, buf.String())
}

func TestRunReport_FetchErrorIsDistinct(t *testing.T) {
	fetchErr := errors.New("AccessDeniedException")
	uc, consoleFake, _, buf := newTestUseCase(&fakeCostRepo{err: fetchErr})

	err := uc.RunReport(context.Background(), &types.CLIArgs{Days: 30, JSON: true})

	// Falha de busca não é "sem dados": o erro propaga para o exit code.
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
	assert.Contains(t, buf.String(), "AccessDeniedException")
	// O chamador registra o erro em stderr; o use case não duplica o log.
	assert.Empty(t, consoleFake.errs)
}

func TestRunReport_InvalidDays(t *testing.T) {
	uc, _, _, _ := newTestUseCase(&fakeCostRepo{records: sampleRecords()})

	err := uc.RunReport(context.Background(), &types.CLIArgs{Days: 0, JSON: true})
	assert.ErrorIs(t, err, types.ErrInvalidTimeRange)
}

func TestRunReport_UnknownProfile(t *testing.T) {
	uc, _, _, _ := newTestUseCase(&fakeCostRepo{profiles: []string{"default", "staging"}})

	err := uc.RunReport(context.Background(), &types.CLIArgs{Days: 30, Profile: "prod"})
	assert.ErrorIs(t, err, types.ErrNoValidProfile)
}

func TestRunReport_HumanMode(t *testing.T) {
	uc, consoleFake, _, buf := newTestUseCase(&fakeCostRepo{
		records:   sampleRecords(),
		accountID: "123456789012",
	})

	err := uc.RunReport(context.Background(), &types.CLIArgs{Days: 30})
	require.NoError(t, err)

	// Tabela de serviços + uma tabela de usage types por serviço.
	require.Len(t, consoleFake.tables, 3)

	servicesTable := consoleFake.tables[0]
	assert.Equal(t, []string{"Service", "Cost", "% of Total"}, servicesTable.columns)
	// Duas linhas de serviço e a linha sintética "Total".
	require.Len(t, servicesTable.rows, 3)
	assert.Contains(t, servicesTable.rows[2][0], "Total")
	assert.Contains(t, servicesTable.rows[2][1], "$15.00")
	assert.Contains(t, servicesTable.rows[2][2], "100.0%")

	require.Len(t, consoleFake.dailyBars, 1)
	require.Len(t, consoleFake.dailyBars[0], 1)
	assert.InDelta(t, 15.00, consoleFake.dailyBars[0][0].Cost, 0.01)

	// Nada é escrito na saída de máquina.
	assert.Zero(t, buf.Len())
}

func TestRunReport_HumanModeNoData(t *testing.T) {
	uc, consoleFake, _, _ := newTestUseCase(&fakeCostRepo{accountID: "123456789012"})

	err := uc.RunReport(context.Background(), &types.CLIArgs{Days: 30})
	require.NoError(t, err)

	assert.Empty(t, consoleFake.tables)
	assert.NotEmpty(t, consoleFake.warnings)
}

func TestRunReport_JSONStdoutSingleDocument(t *testing.T) {
	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	// Console real: logs de exportação não podem vazar para stdout.
	uc := NewReportUseCase(
		&fakeCostRepo{records: sampleRecords(), accountID: "123456789012"},
		&fakeExportRepo{},
		&fakeConfigRepo{},
		console.NewConsole(),
	)
	uc.now = func() time.Time {
		return time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	}

	runErr := uc.RunReport(context.Background(), &types.CLIArgs{
		Days:       30,
		JSON:       true,
		ReportName: "monthly",
		ReportType: []string{"csv", "json"},
	})

	require.NoError(t, w.Close())
	stdout, readErr := io.ReadAll(r)
	os.Stdout = origStdout
	require.NoError(t, readErr)
	require.NoError(t, runErr)

	// stdout carrega um único documento JSON, consumível por `... --json | jq`.
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout, &doc), "stdout: %q", string(stdout))
	assert.InDelta(t, 15.00, doc["totalCost"], 0.01)
}

func TestRunReport_Export(t *testing.T) {
	uc, consoleFake, exportFake, _ := newTestUseCase(&fakeCostRepo{
		records:   sampleRecords(),
		accountID: "123456789012",
	})

	err := uc.RunReport(context.Background(), &types.CLIArgs{
		Days:       30,
		ReportName: "monthly",
		ReportType: []string{"csv", "pdf"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"csv", "pdf"}, exportFake.calls)
	assert.Len(t, consoleFake.successes, 2)
}

func TestMergeConfigFile_FlagsWin(t *testing.T) {
	uc, _, _, _ := newTestUseCase(&fakeCostRepo{})
	uc.configRepo = &fakeConfigRepo{cfg: &types.Config{
		Profile: "prod",
		Days:    7,
		JSON:    true,
	}}

	args := &types.CLIArgs{
		ConfigFile: "config.toml",
		Days:       30,
		Explicit:   map[string]bool{"days": true},
	}
	require.NoError(t, uc.mergeConfigFile(args))

	// A flag explícita vence; o resto vem do arquivo.
	assert.Equal(t, 30, args.Days)
	assert.Equal(t, "prod", args.Profile)
	assert.True(t, args.JSON)
}
