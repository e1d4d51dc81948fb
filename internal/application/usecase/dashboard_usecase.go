package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/repository"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/rows"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/schema"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/tabular"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

// DashboardUseCase handles the main dashboard functionality.
type DashboardUseCase struct {
	sourceRepo repository.SourceRepository
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
	logger     *zap.Logger

	loads    singleflight.Group
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	sourceRepo repository.SourceRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	logger *zap.Logger,
) *DashboardUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardUseCase{
		sourceRepo: sourceRepo,
		exportRepo: exportRepo,
		console:    console,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
}

// Load retrieves, parses and resolves a dataset and replaces its session.
// Concurrent loads of the same dataset share one pipeline run. When the load
// fails the previous session, if any, is kept and marked stale.
func (uc *DashboardUseCase) Load(ctx context.Context, ds types.DatasetConfig, sources []string) (*Session, error) {
	v, err, shared := uc.loads.Do(ds.Name, func() (interface{}, error) {
		sess, err := uc.load(ctx, ds, sources)
		if err != nil {
			return nil, err
		}
		uc.mu.Lock()
		uc.sessions[ds.Name] = sess
		uc.mu.Unlock()
		return sess, nil
	})
	if err != nil {
		if old, ok := uc.lookup(ds.Name); ok {
			old.markStale()
			uc.logger.Warn("keeping previous data after failed load", zap.String("dataset", ds.Name), zap.String("session", old.ID()))
		}
		return nil, err
	}
	if shared {
		uc.logger.Debug("load shared with concurrent caller", zap.String("dataset", ds.Name))
	}
	return v.(*Session), nil
}

func (uc *DashboardUseCase) load(ctx context.Context, ds types.DatasetConfig, sources []string) (*Session, error) {
	candidates := sources
	if len(candidates) == 0 {
		candidates = ds.Sources
	}
	uc.logger.Info("loading dataset", zap.String("dataset", ds.Name), zap.Strings("candidates", candidates))

	text, loc, err := fetchFirst(ctx, uc.sourceRepo, candidates)
	if err != nil {
		return nil, err
	}

	m := tabular.Parse(text, ds.DelimiterRune())
	if m.Len() < 2 {
		return nil, &types.EmptyDatasetError{Source: loc, Rows: m.Len()}
	}

	sch, err := schema.Resolve(m.Header(), ds.Columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}

	data := rows.Normalize(m, sch)
	warnings := rows.Audit(data, sch, ds.Columns)
	for _, w := range warnings {
		uc.logger.Warn("coercion problems",
			zap.String("dataset", ds.Name),
			zap.String("column", w.Column),
			zap.String("kind", w.Kind),
			zap.Int("count", w.Count),
			zap.Strings("samples", w.Samples))
		if uc.console != nil {
			uc.console.LogWarning("%s", w)
		}
	}

	sess, err := NewSession(ds, loc, sch, data, warnings, uc.logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}

	uc.logger.Info("dataset loaded",
		zap.String("dataset", ds.Name),
		zap.String("session", sess.ID()),
		zap.String("source", loc),
		zap.Int("rows", len(data)),
		zap.Int("warnings", len(warnings)))
	return sess, nil
}

func (uc *DashboardUseCase) lookup(name string) (*Session, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.sessions[name]
	return s, ok
}

// Session returns the current session of a dataset.
func (uc *DashboardUseCase) Session(name string) (*Session, error) {
	if s, ok := uc.lookup(name); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", types.ErrNoSession, name)
}

// RunDashboard loads the selected dataset, applies the CLI filters, renders the
// dashboard and writes the requested reports.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, cfg *types.Config, args *types.CLIArgs) error {
	name := args.Dataset
	if name == "" {
		name = cfg.Dataset
	}
	ds, ok := cfg.FindDataset(name)
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrUnknownDataset, name)
	}

	status := uc.console.Status(fmt.Sprintf("Loading %s...", ds.Name))
	sess, err := uc.Load(ctx, ds, args.Sources)
	status.Stop()
	if err != nil {
		return err
	}

	dash := sess.Dashboard()
	if len(args.Filters) > 0 || args.Month != "" {
		dash, err = sess.ApplyFilters(args.Filters, args.Month)
		if err != nil {
			return err
		}
	}

	uc.renderDashboard(ds, dash)

	if args.Options {
		uc.renderOptions(sess, dash)
	}

	if args.Trend {
		uc.renderTrend(ds, dash)
	}

	if len(args.ReportType) > 0 {
		uc.exportReports(sess, dash, args)
	}

	return nil
}

func (uc *DashboardUseCase) exportReports(sess *Session, dash entity.Dashboard, args *types.CLIArgs) {
	reportName := args.ReportName
	if reportName == "" {
		reportName = dash.Dataset
	}

	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv", "xlsx":
			blob, err := sess.Export()
			if err != nil {
				uc.console.LogWarning("Nothing exported to %s: %s", reportType, err)
				continue
			}
			var path string
			if reportType == "csv" {
				path, err = uc.exportRepo.ExportToCSV(blob, args.Dir)
			} else {
				path, err = uc.exportRepo.ExportToXLSX(blob, args.Dir)
			}
			if err != nil {
				uc.console.LogError("Failed to export to %s: %s", reportType, err)
			} else {
				uc.console.LogSuccess("Successfully exported %d rows to %s: %s", blob.Rows, reportType, path)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(dash, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(dash, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type %q", reportType)
		}
	}
}
