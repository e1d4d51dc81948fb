// Package schema matches the headers of a file to logical column names.
package schema

import (
	"strings"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/locale"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

// Normalize is the comparison form of headers and candidates: trimmed,
// uppercased, without diacritics and with single spaces.
func Normalize(s string) string {
	return locale.Fold(s)
}

// Resolve maps every column of table to a header.
//
// All columns first try an exact match of their candidates, in priority order.
// Columns still unresolved then try substring containment in either direction,
// again in candidate priority order. A header is claimed by at most one column.
// When a required column stays unresolved a *types.MissingColumnError naming every
// such column and every detected header is returned.
func Resolve(headers []string, table entity.CandidateTable) (entity.Schema, error) {
	detected := make([]string, len(headers))
	normalized := make([]string, len(headers))
	for i, h := range headers {
		detected[i] = strings.TrimSpace(h)
		normalized[i] = Normalize(h)
	}

	s := entity.Schema{
		Resolved: make(map[entity.LogicalColumn]entity.ResolvedColumn, len(table)),
		Headers:  detected,
	}
	claimed := make([]bool, len(headers))

	claim := func(spec entity.ColumnSpec, idx int, exact bool) {
		claimed[idx] = true
		s.Resolved[spec.Name] = entity.ResolvedColumn{
			Header:     detected[idx],
			Index:      idx,
			Candidates: spec.Candidates,
			Exact:      exact,
		}
	}

	// Pass 1: exact match.
	for _, spec := range table {
		if idx := findExact(spec.Candidates, normalized, claimed); idx >= 0 {
			claim(spec, idx, true)
		}
	}

	// Pass 2: containment, only for columns without an exact match.
	for _, spec := range table {
		if s.Has(spec.Name) {
			continue
		}
		if idx := findContaining(spec.Candidates, normalized, claimed); idx >= 0 {
			claim(spec, idx, false)
		}
	}

	var missing []string
	for _, spec := range table {
		if spec.Required && !s.Has(spec.Name) {
			missing = append(missing, string(spec.Name))
		}
	}
	if len(missing) > 0 {
		return s, &types.MissingColumnError{Missing: missing, Headers: detected}
	}
	return s, nil
}

func findExact(candidates, headers []string, claimed []bool) int {
	for _, c := range candidates {
		nc := Normalize(c)
		if nc == "" {
			continue
		}
		for i, h := range headers {
			if !claimed[i] && h == nc {
				return i
			}
		}
	}
	return -1
}

func findContaining(candidates, headers []string, claimed []bool) int {
	for _, c := range candidates {
		nc := Normalize(c)
		if nc == "" {
			continue
		}
		for i, h := range headers {
			if claimed[i] || h == "" {
				continue
			}
			if strings.Contains(h, nc) || strings.Contains(nc, h) {
				return i
			}
		}
	}
	return -1
}
