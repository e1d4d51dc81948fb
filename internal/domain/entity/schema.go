package entity

// LogicalColumn is a stable, file-independent column name such as MATERIAL.
type LogicalColumn string

// ColumnKind tells consumers how a column is meant to be read.
type ColumnKind string

const (
	KindText   ColumnKind = "text"
	KindNumber ColumnKind = "number"
	KindDate   ColumnKind = "date"
	KindFlag   ColumnKind = "flag"
)

// ColumnSpec declares the acceptable header spellings for one logical column.
// Candidates are tried in priority order.
type ColumnSpec struct {
	Name       LogicalColumn `json:"name" yaml:"name" toml:"name" validate:"required"`
	Candidates []string      `json:"candidates" yaml:"candidates" toml:"candidates" validate:"required,min=1,dive,required"`
	Required   bool          `json:"required" yaml:"required" toml:"required"`
	Kind       ColumnKind    `json:"kind" yaml:"kind" toml:"kind" validate:"omitempty,oneof=text number date flag"`
}

// CandidateTable is the declarative list of logical columns of a dataset.
type CandidateTable []ColumnSpec

// Columns returns the logical names of every spec of the given kind.
func (t CandidateTable) Columns(kind ColumnKind) []LogicalColumn {
	var out []LogicalColumn
	for _, spec := range t {
		if spec.Kind == kind {
			out = append(out, spec.Name)
		}
	}
	return out
}

// Spec looks up a column spec by logical name.
func (t CandidateTable) Spec(name LogicalColumn) (ColumnSpec, bool) {
	for _, spec := range t {
		if spec.Name == name {
			return spec, true
		}
	}
	return ColumnSpec{}, false
}

// ResolvedColumn is the header that a logical column was matched to.
type ResolvedColumn struct {
	Header     string   `json:"header"`
	Index      int      `json:"index"`
	Candidates []string `json:"candidates"`
	Exact      bool     `json:"exact"`
}

// Schema maps logical columns to the headers actually present in a file.
type Schema struct {
	Resolved map[LogicalColumn]ResolvedColumn `json:"resolved"`
	Headers  []string                         `json:"headers"`
}

// Has reports whether the logical column was resolved.
func (s Schema) Has(col LogicalColumn) bool {
	_, ok := s.Resolved[col]
	return ok
}

// Header returns the resolved header string for col, or "" when unresolved.
func (s Schema) Header(col LogicalColumn) string {
	return s.Resolved[col].Header
}

// HeadersFor returns the resolved header strings of cols, skipping unresolved ones.
func (s Schema) HeadersFor(cols []LogicalColumn) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if rc, ok := s.Resolved[c]; ok {
			out = append(out, rc.Header)
		}
	}
	return out
}
