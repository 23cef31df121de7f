package main

import (
	"fmt"
	"os"

	"github.com/diillson/aws-cost-explorer-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-explorer-go/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-explorer-go/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-explorer-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-explorer-go/internal/application/usecase"
	"github.com/diillson/aws-cost-explorer-go/pkg/console"
	"github.com/diillson/aws-cost-explorer-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	costRepo := aws.NewCostRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		costRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetReportUseCase(reportUseCase)

	// Falha de busca sai com código diferente de zero; "sem dados" não.
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
