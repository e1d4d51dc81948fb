package entity

// Direction classifies a period-over-period change of one measure.
type Direction string

const (
	DirectionImproved         Direction = "improved"
	DirectionWorsened         Direction = "worsened"
	DirectionUnchanged        Direction = "unchanged"
	DirectionNoPreviousPeriod Direction = "no-previous-period"
)

// Polarity maps "went up / went down / stayed" to a direction for one measure.
type Polarity struct {
	Up   Direction `json:"up" yaml:"up" toml:"up" validate:"required,oneof=improved worsened unchanged"`
	Down Direction `json:"down" yaml:"down" toml:"down" validate:"required,oneof=improved worsened unchanged"`
	Flat Direction `json:"flat" yaml:"flat" toml:"flat" validate:"required,oneof=improved worsened unchanged"`
}

// PolarityTable holds the business rule of every compared measure.
type PolarityTable map[LogicalColumn]Polarity

// DeltaResult compares the current and previous value of one measure.
type DeltaResult struct {
	Measure   LogicalColumn `json:"measure"`
	Current   Percent       `json:"current"`
	Previous  Percent       `json:"previous"`
	Diff      Percent       `json:"diff"`
	Direction Direction     `json:"direction"`
}
