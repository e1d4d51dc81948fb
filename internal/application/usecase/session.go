package usecase

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/filter"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/rows"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/tabular"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

// Session owns one loaded dataset: its schema, its rows, the filter cascade and
// the last computed dashboard. Every mutation recomputes the whole dashboard
// synchronously under the session lock.
type Session struct {
	mu sync.Mutex

	id       string
	dataset  types.DatasetConfig
	source   string
	schema   entity.Schema
	data     []entity.Row
	warnings []types.CoercionWarning

	cascade    *filter.Cascade
	timeDim    string
	bucket     rows.Bucketer
	measures   []entity.LogicalColumn
	flags      []entity.LogicalColumn
	motives    []entity.LogicalColumn
	polarities entity.PolarityTable
	labels     map[entity.LogicalColumn]string

	last  entity.Dashboard
	stale bool

	logger *zap.Logger
	now    func() time.Time
}

// NewSession builds a session over already normalized rows and computes the
// first dashboard. Dimensions whose column did not resolve are dropped; a time
// dimension without any resolvable date column is an error.
func NewSession(ds types.DatasetConfig, source string, schema entity.Schema, data []entity.Row, warnings []types.CoercionWarning, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		id:         uuid.NewString(),
		dataset:    ds,
		source:     source,
		schema:     schema,
		data:       data,
		warnings:   warnings,
		bucket:     bucketerFor(ds.Columns, schema),
		measures:   resolved(schema, types.MeasureColumns(ds.Measures)),
		flags:      resolved(schema, types.MeasureColumns(ds.Flags)),
		motives:    resolved(schema, types.MeasureColumns(ds.Motives)),
		polarities: ds.PolarityTable(),
		labels:     ds.Labels(),
		logger:     logger,
		now:        time.Now,
	}

	var dims []entity.Dimension
	for _, d := range ds.Dimensions {
		switch {
		case d.Time && s.bucket == nil:
			return nil, &types.MissingColumnError{
				Missing: dateColumns(ds.Columns),
				Headers: schema.Headers,
			}
		case d.Time:
			s.timeDim = d.Name
		case !schema.Has(d.Column):
			logger.Debug("skipping filter dimension without column", zap.String("dimension", d.Name))
			continue
		}
		dims = append(dims, d)
	}
	s.cascade = filter.NewCascade(dims, s.bucket)

	s.mu.Lock()
	s.recompute()
	s.mu.Unlock()
	return s, nil
}

// bucketerFor prefers a yyyy-mm month label column, then the first resolved date column.
func bucketerFor(table entity.CandidateTable, schema entity.Schema) rows.Bucketer {
	var dateCol entity.LogicalColumn
	for _, spec := range table {
		if spec.Kind == entity.KindDate && schema.Has(spec.Name) {
			dateCol = spec.Name
			break
		}
	}
	if schema.Has(entity.ColMonthLabel) {
		return rows.MonthLabelBucketer(entity.ColMonthLabel, dateCol)
	}
	if dateCol != "" {
		return rows.MonthBucketer(dateCol)
	}
	return nil
}

func dateColumns(table entity.CandidateTable) []string {
	var out []string
	if _, ok := table.Spec(entity.ColMonthLabel); ok {
		out = append(out, string(entity.ColMonthLabel))
	}
	for _, c := range table.Columns(entity.KindDate) {
		out = append(out, string(c))
	}
	return out
}

func resolved(schema entity.Schema, cols []entity.LogicalColumn) []entity.LogicalColumn {
	out := make([]entity.LogicalColumn, 0, len(cols))
	for _, c := range cols {
		if schema.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Dataset returns the configuration the session was loaded with.
func (s *Session) Dataset() types.DatasetConfig { return s.dataset }

// Schema returns the resolved schema.
func (s *Session) Schema() entity.Schema { return s.schema }

// Source returns the location the text was read from.
func (s *Session) Source() string { return s.source }

// Warnings returns the coercion warnings found at load time.
func (s *Session) Warnings() []types.CoercionWarning { return s.warnings }

// Dashboard returns the last computed dashboard.
func (s *Session) Dashboard() entity.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Stale reports whether a later load of the same dataset failed.
func (s *Session) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

func (s *Session) markStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale = true
	s.last.Stale = true
}

// TimeDimension returns the name of the month dimension, or "" when there is none.
func (s *Session) TimeDimension() string { return s.timeDim }

// SetSelection changes one dimension, resets the later ones and recomputes.
func (s *Session) SetSelection(name string, values []string) (entity.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cascade.SetSelection(name, values); err != nil {
		return s.last, err
	}
	s.logger.Debug("selection changed", zap.String("session", s.id), zap.String("dimension", name), zap.Strings("values", values))
	return s.recompute(), nil
}

// ApplyFilters sets several dimensions at once, in cascade order so that no
// filter resets another one given in the same call. month selects the time dimension.
func (s *Session) ApplyFilters(filters []types.FilterArg, month string) (entity.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := make(map[string]int)
	for i, d := range s.cascade.Dimensions() {
		order[d.Name] = i
	}

	all := append([]types.FilterArg(nil), filters...)
	if month != "" {
		if s.timeDim == "" {
			return s.last, fmt.Errorf("%w: dataset %s has no month dimension", types.ErrUnknownDimension, s.dataset.Name)
		}
		all = append(all, types.FilterArg{Dimension: s.timeDim, Values: []string{month}})
	}
	for _, f := range all {
		if _, ok := order[f.Dimension]; !ok {
			return s.last, fmt.Errorf("%w: %q", types.ErrUnknownDimension, f.Dimension)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return order[all[i].Dimension] < order[all[j].Dimension] })

	for _, f := range all {
		if err := s.cascade.SetSelection(f.Dimension, f.Values); err != nil {
			return s.last, err
		}
	}
	return s.recompute(), nil
}

// Reset clears every selection and recomputes.
func (s *Session) Reset() entity.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cascade.Reset()
	return s.recompute()
}

// Options lists the values currently selectable for one dimension.
func (s *Session) Options(name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cascade.AvailableOptions(name, s.data)
}

// Export serializes the rows that pass every filter, with a filename built from
// the effective selections.
func (s *Session) Export() (entity.ExportBlob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds := s.dataset
	data := s.cascade.Apply(s.data)
	if col := ds.ExportNonZero; col != "" && s.schema.Has(col) {
		kept := make([]entity.Row, 0, len(data))
		for _, r := range data {
			if rows.Number(r, col) > 0 {
				kept = append(kept, r)
			}
		}
		data = kept
	}
	if len(data) == 0 {
		return entity.ExportBlob{}, types.ErrNothingToExport
	}

	cols := ds.ExportColumns
	if len(cols) == 0 {
		for _, spec := range ds.Columns {
			cols = append(cols, spec.Name)
		}
	}
	header, records, content := tabular.ExportRows(data, s.schema, cols, ds.DelimiterRune())

	var parts []string
	for _, sel := range s.cascade.Selections(s.data) {
		parts = append(parts, tabular.SelectionFilePart(sel.Values))
	}
	prefix := ds.ExportPrefix
	if prefix == "" {
		prefix = ds.Name
	}

	return entity.ExportBlob{
		Filename: tabular.SuggestFilename(prefix, "csv", parts...),
		Content:  content,
		Rows:     len(records),
		Header:   header,
		Records:  records,
	}, nil
}
