package usecase

import (
	"go.uber.org/zap"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/aggregate"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/rows"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/trend"
)

// recompute rebuilds the whole dashboard from the current selections.
// Callers must hold s.mu.
func (s *Session) recompute() entity.Dashboard {
	filtered := s.cascade.Apply(s.data)

	dash := entity.Dashboard{
		SessionID:  s.id,
		Dataset:    s.dataset.Name,
		Kind:       s.dataset.Kind,
		Source:     s.source,
		ComputedAt: s.now(),
		Stale:      s.stale,
		RowCount:   len(s.data),
		Filtered:   len(filtered),
		Selections: s.cascade.Selections(s.data),
		Options:    make(map[string][]string),
		Labels:     s.labels,
		KPIs: entity.KPIs{
			AvailableShare: entity.Undefined(),
			TopFlagShare:   entity.Undefined(),
		},
	}
	for _, d := range s.cascade.Dimensions() {
		opts, _ := s.cascade.AvailableOptions(d.Name, s.data)
		dash.Options[d.Name] = opts
	}

	switch s.dataset.Kind {
	case entity.KindCompliance:
		s.complianceView(&dash, filtered)
	case entity.KindInventory:
		s.inventoryView(&dash, filtered)
	case entity.KindDelays:
		s.delaysView(&dash, filtered)
	case entity.KindEvolution:
		s.evolutionView(&dash, filtered)
	}

	s.last = dash
	return dash
}

// beforeTime returns the rows filtered by every dimension above the month one.
// Without a month dimension it is the fully filtered set.
func (s *Session) beforeTime(filtered []entity.Row) []entity.Row {
	if s.timeDim == "" {
		return filtered
	}
	upstream, err := s.cascade.ApplyBefore(s.timeDim, s.data)
	if err != nil {
		return filtered
	}
	return upstream
}

// currentPeriod is the latest month of the effective time selection.
func (s *Session) currentPeriod() string {
	if s.timeDim == "" {
		return ""
	}
	sel, err := s.cascade.EffectiveSelection(s.timeDim, s.data)
	if err != nil || sel.All() {
		return ""
	}
	latest := sel.Values[0]
	for _, v := range sel.Values[1:] {
		if v > latest {
			latest = v
		}
	}
	return latest
}

func (s *Session) shares(b entity.TimeBucket) []entity.MeasureShare {
	out := make([]entity.MeasureShare, 0, len(s.measures))
	for _, m := range s.measures {
		share, ok := b.Percentages[m]
		if !ok {
			share = entity.Undefined()
		}
		out = append(out, entity.MeasureShare{
			Measure: m,
			Label:   s.labels[m],
			Sum:     b.Sums[m],
			Share:   share,
		})
	}
	return out
}

// complianceView: general shares over every month the upstream filters allow,
// the monthly series, the shares of the selected month and its change against
// the previous month present in the data.
func (s *Session) complianceView(dash *entity.Dashboard, filtered []entity.Row) {
	general := s.beforeTime(filtered)

	all := aggregate.Totals(general, s.measures)
	dash.KPIs.GeneralTotal = all.Total
	dash.KPIs.General = s.shares(all)

	cur := aggregate.Totals(filtered, s.measures)
	dash.KPIs.CurrentTotal = cur.Total
	dash.KPIs.Current = s.shares(cur)

	if s.bucket == nil {
		return
	}
	dash.Series = aggregate.SumByBucket(general, s.bucket, s.measures)

	period := s.currentPeriod()
	if period == "" {
		return
	}
	dash.KPIs.CurrentPeriod = period

	prev, deltas, err := trend.CompareBuckets(dash.Series, period, s.measures, s.polarities)
	if err != nil {
		s.logger.Warn("skipping period comparison", zap.String("dataset", s.dataset.Name), zap.Error(err))
		return
	}
	dash.KPIs.PreviousPeriod = prev
	dash.KPIs.Deltas = deltas
}

// inventoryView counts distinct materials, those with free stock and their
// split by status.
func (s *Session) inventoryView(dash *entity.Dashboard, filtered []entity.Row) {
	key := entity.ColMaterial
	if !s.schema.Has(key) {
		return
	}

	total := aggregate.DistinctCount(filtered, key, nil)
	available := aggregate.DistinctCount(filtered, key, func(r entity.Row) bool {
		return rows.Number(r, entity.ColFreeQty) > 0
	})

	dash.KPIs.DistinctTotal = total
	dash.KPIs.DistinctAvailable = available
	if total > 0 {
		dash.KPIs.AvailableShare = entity.Percent(float64(available) / float64(total) * 100)
	}
	if s.schema.Has(entity.ColStatus) {
		dash.Categories = aggregate.DistinctByCategory(filtered, entity.ColStatus, key, aggregate.EmptyLabel)
	}
}

// delaysView counts delayed rows per month and per reason flag.
func (s *Session) delaysView(dash *entity.Dashboard, filtered []entity.Row) {
	dash.KPIs.PeriodCount = len(filtered)
	if s.bucket != nil {
		dash.Counts = aggregate.CountByBucket(s.beforeTime(filtered), s.bucket, s.flags)
	}
	dash.KPIs.CurrentPeriod = s.currentPeriod()

	dash.Flags = aggregate.FlagTotals(filtered, s.flags, s.labels)
	dash.Motives = aggregate.FlagTotals(filtered, s.motives, s.labels)

	if top, ok := aggregate.TopFlag(dash.Flags); ok {
		dash.KPIs.TopFlag = top.Label
		dash.KPIs.TopFlagCount = top.Count
		dash.KPIs.TopFlagShare = top.Percentage
	}
}

// evolutionView averages every measure per month.
func (s *Session) evolutionView(dash *entity.Dashboard, filtered []entity.Row) {
	if s.bucket == nil {
		return
	}
	dash.Averages = aggregate.AverageByBucket(filtered, s.bucket, s.measures)
}
