package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/diillson/supply-kpi-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/supply-kpi-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/supply-kpi-dashboard-go/internal/adapter/driven/source"
	"github.com/diillson/supply-kpi-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/supply-kpi-dashboard-go/internal/application/usecase"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
	"github.com/diillson/supply-kpi-dashboard-go/pkg/console"
	"github.com/diillson/supply-kpi-dashboard-go/pkg/logging"
	"github.com/diillson/supply-kpi-dashboard-go/pkg/version"
)

func main() {
	// .env é opcional; variáveis KPI_* já definidas no ambiente têm precedência
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inicializa os repositórios
	configRepo := config.NewConfigRepository()
	exportRepo := export.NewExportRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, configRepo)

	// O logger e as fontes dependem da configuração carregada pelo comando
	app.SetDashboardUseCaseFactory(func(cfg *types.Config) (*usecase.DashboardUseCase, func(), error) {
		logger, closeLog, err := logging.New(cfg.Logging)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("configuration loaded",
			zap.String("dataset", cfg.Dataset),
			zap.Int("datasets", len(cfg.Datasets)),
			zap.String("version", version.FormatVersion()))

		uc := usecase.NewDashboardUseCase(
			source.NewRouter(cfg.Source),
			exportRepo,
			consoleImpl,
			logger,
		)
		return uc, func() { _ = closeLog() }, nil
	})

	// Executa o aplicativo
	if err := app.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
