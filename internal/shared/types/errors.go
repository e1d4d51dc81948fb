package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRetrieval        = errors.New("dataset text could not be retrieved")
	ErrEmptyDataset     = errors.New("dataset has no data rows")
	ErrMissingColumn    = errors.New("required columns not found")
	ErrUnknownDataset   = errors.New("unknown dataset")
	ErrUnknownDimension = errors.New("unknown filter dimension")
	ErrNoSession        = errors.New("no dataset loaded. Run a load first")
	ErrNothingToExport  = errors.New("no rows match the current filters")
)

// RetrievalError reports that none of the candidate sources could be read.
type RetrievalError struct {
	Sources []string
	Err     error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("could not retrieve dataset (tried: %s): %v", strings.Join(e.Sources, ", "), e.Err)
}

func (e *RetrievalError) Unwrap() []error {
	return []error{ErrRetrieval, e.Err}
}

// EmptyDatasetError reports a parsed matrix without data rows.
type EmptyDatasetError struct {
	Source string
	Rows   int
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s is empty or has no data rows (%d rows parsed)", e.Source, e.Rows)
}

func (e *EmptyDatasetError) Unwrap() error {
	return ErrEmptyDataset
}

// MissingColumnError lists the unresolved required logical columns and the
// headers that were actually found, so the operator can fix the source file.
type MissingColumnError struct {
	Missing []string
	Headers []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing columns: %s (headers found: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Headers, " | "))
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// CoercionWarning counts cells of one column that could not be read as their
// declared kind. It is never fatal.
type CoercionWarning struct {
	Column  string
	Kind    string
	Count   int
	Samples []string
}

func (w CoercionWarning) String() string {
	return fmt.Sprintf("%d %s value(s) in %s could not be parsed (e.g. %q)", w.Count, w.Kind, w.Column, strings.Join(w.Samples, `", "`))
}
