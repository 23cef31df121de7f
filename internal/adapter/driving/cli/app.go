package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/diillson/aws-cost-explorer-go/internal/application/usecase"
	"github.com/diillson/aws-cost-explorer-go/internal/shared/types"
	"github.com/diillson/aws-cost-explorer-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "aws-cost-explorer",
		Short:         "AWS Cost Explorer Analysis CLI",
		Version:       formattedVersion,
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Explorer CLI version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile to use (default: ambient credentials)")
	rootCmd.PersistentFlags().IntP("days", "d", 30, "Number of trailing days to analyze")
	rootCmd.PersistentFlags().Bool("json", false, "Output the report as a single JSON document")
	rootCmd.PersistentFlags().StringSliceP("tag", "g", nil, "Cost allocation tag to filter costs, e.g., --tag Team=DevOps")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().String("dir", "", "Directory to save the report files (default: current directory)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	configFile, _ := flags.GetString("config-file")
	profile, _ := flags.GetString("profile")
	days, _ := flags.GetInt("days")
	jsonOutput, _ := flags.GetBool("json")
	tag, _ := flags.GetStringSlice("tag")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")

	// Marca as flags explicitamente definidas; elas vencem o arquivo de
	// configuração no merge feito pelo use case.
	explicit := make(map[string]bool)
	for _, name := range []string{"profile", "days", "json", "tag", "report-name", "report-type", "dir"} {
		explicit[name] = flags.Changed(name)
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		Profile:    profile,
		Days:       days,
		JSON:       jsonOutput,
		Tag:        tag,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		Explicit:   explicit,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	// Banner e checagem de versão apenas no modo humano; stdout do modo JSON
	// carrega somente o documento de saída.
	if !cliArgs.JSON {
		displayWelcomeBanner(app.version)
		go version.CheckLatestVersion(app.version)
	}

	ctx := context.Background()
	return app.reportUseCase.RunReport(ctx, cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
