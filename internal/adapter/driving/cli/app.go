package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diillson/supply-kpi-dashboard-go/internal/application/usecase"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/repository"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
	"github.com/diillson/supply-kpi-dashboard-go/pkg/version"
)

// UseCaseFactory monta o caso de uso a partir da configuração já carregada.
// O cleanup devolvido é chamado ao final do comando.
type UseCaseFactory func(cfg *types.Config) (uc *usecase.DashboardUseCase, cleanup func(), err error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	factory    UseCaseFactory
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: configRepo,
	}

	rootCmd := &cobra.Command{
		Use:          "kpi-dashboard",
		Short:        "Supply chain KPI dashboard CLI",
		Long:         "Loads semicolon-delimited exports (compliance, inventory, delays, stock evolution), filters them and prints KPI tables.",
		Version:      version.FormatVersion(),
		SilenceUsage: true,
		RunE:         app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "KPI Dashboard version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("dataset", "s", "", "Dataset to load (default: the configured default dataset)")
	rootCmd.PersistentFlags().StringSlice("source", nil, "Override the dataset source locations: file path, http(s) URL or s3://bucket/key (comma-separated, tried in order)")
	rootCmd.PersistentFlags().StringArrayP("filter", "f", nil, "Filter a dimension, e.g. --filter client=ACME,OTHER (repeatable, applied in cascade order)")
	rootCmd.PersistentFlags().StringP("month", "m", "", "Month to show, as yyyy-mm (default: the latest month in the filtered data)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Base name for JSON and PDF reports (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Report types to write: csv, xlsx, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().Bool("trend", false, "Display month-over-month bars for every measure")
	rootCmd.PersistentFlags().Bool("options", false, "List the values currently selectable for every filter")
	rootCmd.PersistentFlags().String("log-level", "", "Diagnostics log level: debug, info, warn, error")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application. ctx is cancelled on interrupt.
func (app *CLIApp) Execute(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetDashboardUseCaseFactory define como o caso de uso é construído.
func (app *CLIApp) SetDashboardUseCaseFactory(factory UseCaseFactory) {
	app.factory = factory
}

// parseFilters converte ocorrências "dim=v1,v2" em FilterArg.
func parseFilters(raw []string) ([]types.FilterArg, error) {
	out := make([]types.FilterArg, 0, len(raw))
	for _, r := range raw {
		dim, values, ok := strings.Cut(r, "=")
		dim = strings.TrimSpace(dim)
		if !ok || dim == "" {
			return nil, fmt.Errorf("invalid filter %q: expected DIMENSION=value[,value...]", r)
		}
		var vals []string
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				vals = append(vals, v)
			}
		}
		out = append(out, types.FilterArg{Dimension: dim, Values: vals})
	}
	return out, nil
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()
	configFile, _ := flags.GetString("config-file")
	dataset, _ := flags.GetString("dataset")
	sources, _ := flags.GetStringSlice("source")
	rawFilters, _ := flags.GetStringArray("filter")
	month, _ := flags.GetString("month")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	trend, _ := flags.GetBool("trend")
	options, _ := flags.GetBool("options")
	logLevel, _ := flags.GetString("log-level")

	filters, err := parseFilters(rawFilters)
	if err != nil {
		return nil, err
	}

	logLevel = strings.ToLower(strings.TrimSpace(logLevel))
	switch logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid --log-level %q: use debug, info, warn or error", logLevel)
	}

	for i, rt := range reportType {
		reportType[i] = strings.ToLower(strings.TrimSpace(rt))
	}

	return &types.CLIArgs{
		ConfigFile: configFile,
		Dataset:    dataset,
		Sources:    sources,
		Filters:    filters,
		Month:      strings.TrimSpace(month),
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		Trend:      trend,
		Options:    options,
		LogLevel:   logLevel,
	}, nil
}

// resolveDir devolve dir absoluto; vazio vira o diretório atual.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner()

	go version.CheckLatestVersion(cmd.Context(), app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	cfg, err := app.configRepo.Load(cliArgs.ConfigFile)
	if err != nil {
		return err
	}
	if cliArgs.LogLevel != "" {
		cfg.Logging.Level = cliArgs.LogLevel
	}

	dir := cliArgs.Dir
	if dir == "" {
		dir = cfg.Dir
	}
	if cliArgs.Dir, err = resolveDir(dir); err != nil {
		return err
	}

	if app.factory == nil {
		return fmt.Errorf("dashboard use case not configured")
	}
	uc, cleanup, err := app.factory(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return uc.RunDashboard(cmd.Context(), cfg, cliArgs)
}
