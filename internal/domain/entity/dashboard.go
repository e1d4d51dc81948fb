package entity

import "time"

// DatasetKind selects which view is built over a dataset.
type DatasetKind string

const (
	KindCompliance DatasetKind = "compliance"
	KindInventory  DatasetKind = "inventory"
	KindDelays     DatasetKind = "delays"
	KindEvolution  DatasetKind = "evolution"
)

// MeasureShare is a summed quantity and its share of the bucket total.
type MeasureShare struct {
	Measure LogicalColumn `json:"measure"`
	Label   string        `json:"label"`
	Sum     float64       `json:"sum"`
	Share   Percent       `json:"share"`
}

// KPIs groups the scalar indicators of one recomputation pass.
// Fields not relevant to a dataset kind are left empty.
type KPIs struct {
	// inventory
	DistinctTotal     int     `json:"distinct_total,omitempty"`
	DistinctAvailable int     `json:"distinct_available,omitempty"`
	AvailableShare    Percent `json:"available_share"`

	// compliance
	GeneralTotal   float64        `json:"general_total,omitempty"`
	General        []MeasureShare `json:"general,omitempty"`
	CurrentPeriod  string         `json:"current_period,omitempty"`
	PreviousPeriod string         `json:"previous_period,omitempty"`
	CurrentTotal   float64        `json:"current_total,omitempty"`
	Current        []MeasureShare `json:"current,omitempty"`
	Deltas         []DeltaResult  `json:"deltas,omitempty"`

	// delays
	PeriodCount  int     `json:"period_count,omitempty"`
	TopFlag      string  `json:"top_flag,omitempty"`
	TopFlagCount int     `json:"top_flag_count,omitempty"`
	TopFlagShare Percent `json:"top_flag_share"`
}

// Dashboard is the complete output of one recomputation pass.
// It is replaced wholesale on every filter change.
type Dashboard struct {
	SessionID  string                   `json:"session_id"`
	Dataset    string                   `json:"dataset"`
	Kind       DatasetKind              `json:"kind"`
	Source     string                   `json:"source"`
	ComputedAt time.Time                `json:"computed_at"`
	Stale      bool                     `json:"stale"`
	RowCount   int                      `json:"row_count"`
	Filtered   int                      `json:"filtered"`
	Selections []Selection              `json:"selections"`
	Options    map[string][]string      `json:"options"`
	KPIs       KPIs                     `json:"kpis"`
	Categories []CategoryBucket         `json:"categories,omitempty"`
	Series     []TimeBucket             `json:"series,omitempty"`
	Counts     []CountBucket            `json:"counts,omitempty"`
	Flags      []FlagCount              `json:"flags,omitempty"`
	Motives    []FlagCount              `json:"motives,omitempty"`
	Averages   []AverageBucket          `json:"averages,omitempty"`
	Labels     map[LogicalColumn]string `json:"labels,omitempty"`
}

// ExportBlob is delimited text plus the suggested filename for saving it.
type ExportBlob struct {
	Filename string
	Content  string
	Rows     int
	Header   []string
	Records  [][]string
}
