package entity

// Dimension is one step of a filter cascade.
type Dimension struct {
	// Name identifies the dimension in selections and option lists (e.g. "client").
	Name string `json:"name" yaml:"name" toml:"name" validate:"required"`

	// Column is the logical column whose values are selectable.
	// Time dimensions ignore it and use the dataset's month bucketer.
	Column LogicalColumn `json:"column" yaml:"column" toml:"column"`

	// Time marks the month dimension, which defaults to the latest bucket instead of "all".
	Time bool `json:"time" yaml:"time" toml:"time"`
}

// Selection is the state of one dimension as seen by consumers.
type Selection struct {
	Dimension string   `json:"dimension"`
	Values    []string `json:"values"`

	// Defaulted is true when Values were not chosen by the user
	// (the time dimension falling back to its latest bucket).
	Defaulted bool `json:"defaulted"`
}

// All reports whether the selection imposes no restriction.
func (s Selection) All() bool {
	return len(s.Values) == 0
}
