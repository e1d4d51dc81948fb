package types

import "github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Dataset  string          `json:"dataset" yaml:"dataset" toml:"dataset" envconfig:"DATASET"`
	Dir      string          `json:"dir" yaml:"dir" toml:"dir" envconfig:"DIR"`
	Logging  LoggingConfig   `json:"logging" yaml:"logging" toml:"logging" envconfig:"LOGGING"`
	Source   SourceConfig    `json:"source" yaml:"source" toml:"source" envconfig:"SOURCE"`
	Datasets []DatasetConfig `json:"datasets" yaml:"datasets" toml:"datasets" ignored:"true" validate:"dive"`
}

// LoggingConfig controls the diagnostics logger.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" toml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=console json"`
	Output string `json:"output" yaml:"output" toml:"output" envconfig:"OUTPUT"`
}

// SourceConfig controls how dataset text is retrieved.
type SourceConfig struct {
	// BaseDir is prepended to relative file locations.
	BaseDir string `json:"base_dir" yaml:"base_dir" toml:"base_dir" envconfig:"BASE_DIR"`

	// TimeoutSeconds bounds every HTTP and S3 fetch.
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds" envconfig:"TIMEOUT_SECONDS" validate:"gte=0"`

	// AWSProfile and AWSRegion are used for s3:// locations.
	AWSProfile string `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile" envconfig:"AWS_PROFILE"`
	AWSRegion  string `json:"aws_region" yaml:"aws_region" toml:"aws_region" envconfig:"AWS_REGION"`
}

// DatasetConfig declares one dashboard: where its file lives, how its headers
// are recognised and how it is filtered and compared.
type DatasetConfig struct {
	Name      string             `json:"name" yaml:"name" toml:"name" validate:"required"`
	Title     string             `json:"title" yaml:"title" toml:"title"`
	Kind      entity.DatasetKind `json:"kind" yaml:"kind" toml:"kind" validate:"required,oneof=compliance inventory delays evolution"`
	Sources   []string           `json:"sources" yaml:"sources" toml:"sources" validate:"required,min=1,dive,required"`
	Delimiter string             `json:"delimiter" yaml:"delimiter" toml:"delimiter" validate:"omitempty,len=1"`

	Columns    entity.CandidateTable `json:"columns" yaml:"columns" toml:"columns" validate:"required,min=1,dive"`
	Dimensions []entity.Dimension    `json:"dimensions" yaml:"dimensions" toml:"dimensions" validate:"dive"`

	Measures []MeasureConfig `json:"measures" yaml:"measures" toml:"measures" validate:"dive"`
	Flags    []MeasureConfig `json:"flags" yaml:"flags" toml:"flags" validate:"dive"`
	Motives  []MeasureConfig `json:"motives" yaml:"motives" toml:"motives" validate:"dive"`

	Polarities map[string]entity.Polarity `json:"polarities" yaml:"polarities" toml:"polarities" validate:"dive"`

	ExportPrefix  string                 `json:"export_prefix" yaml:"export_prefix" toml:"export_prefix"`
	ExportColumns []entity.LogicalColumn `json:"export_columns" yaml:"export_columns" toml:"export_columns"`

	// ExportNonZero, when set, keeps only exported rows whose value in that column is > 0.
	ExportNonZero entity.LogicalColumn `json:"export_non_zero" yaml:"export_non_zero" toml:"export_non_zero"`
}

// MeasureConfig names a logical column shown as a series, with its display label.
type MeasureConfig struct {
	Column entity.LogicalColumn `json:"column" yaml:"column" toml:"column" validate:"required"`
	Label  string               `json:"label" yaml:"label" toml:"label"`
}

// DelimiterRune returns the configured delimiter, defaulting to ';'.
func (d DatasetConfig) DelimiterRune() rune {
	for _, r := range d.Delimiter {
		return r
	}
	return ';'
}

// PolarityTable converts the configured polarities to the domain table.
func (d DatasetConfig) PolarityTable() entity.PolarityTable {
	table := make(entity.PolarityTable, len(d.Polarities))
	for k, v := range d.Polarities {
		table[entity.LogicalColumn(k)] = v
	}
	return table
}

// MeasureColumns returns the logical columns of ms in order.
func MeasureColumns(ms []MeasureConfig) []entity.LogicalColumn {
	out := make([]entity.LogicalColumn, len(ms))
	for i, m := range ms {
		out[i] = m.Column
	}
	return out
}

// Labels maps every measure, flag and motive column to its display label.
func (d DatasetConfig) Labels() map[entity.LogicalColumn]string {
	labels := make(map[entity.LogicalColumn]string)
	for _, group := range [][]MeasureConfig{d.Measures, d.Flags, d.Motives} {
		for _, m := range group {
			label := m.Label
			if label == "" {
				label = string(m.Column)
			}
			labels[m.Column] = label
		}
	}
	return labels
}

// FindDataset returns the dataset named name.
func (c *Config) FindDataset(name string) (DatasetConfig, bool) {
	for _, d := range c.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return DatasetConfig{}, false
}
