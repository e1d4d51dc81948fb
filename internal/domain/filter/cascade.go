// Package filter holds the ordered, dependent multi-select filters of a dashboard.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/rows"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/locale"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

// Cascade is an ordered chain of filters where each dimension only offers the
// values left by the dimensions before it. An empty selection means "all".
//
// A Cascade is not safe for concurrent use; the owner serializes access.
type Cascade struct {
	dims     []entity.Dimension
	selected [][]string
	bucket   rows.Bucketer
}

// NewCascade creates a cascade over dims in order. bucket derives the month key
// used by time dimensions.
func NewCascade(dims []entity.Dimension, bucket rows.Bucketer) *Cascade {
	d := make([]entity.Dimension, len(dims))
	copy(d, dims)
	return &Cascade{
		dims:     d,
		selected: make([][]string, len(d)),
		bucket:   bucket,
	}
}

// Dimensions returns the dimensions in cascade order.
func (c *Cascade) Dimensions() []entity.Dimension {
	out := make([]entity.Dimension, len(c.dims))
	copy(out, c.dims)
	return out
}

func (c *Cascade) index(name string) (int, error) {
	for i, d := range c.dims {
		if d.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", types.ErrUnknownDimension, name)
}

// SetSelection replaces the selection of the named dimension and resets every
// later dimension to "all". Values are trimmed, de-duplicated and blanks dropped.
func (c *Cascade) SetSelection(name string, values []string) error {
	i, err := c.index(name)
	if err != nil {
		return err
	}
	c.selected[i] = clean(values)
	for j := i + 1; j < len(c.selected); j++ {
		c.selected[j] = nil
	}
	return nil
}

// Reset clears every selection.
func (c *Cascade) Reset() {
	for i := range c.selected {
		c.selected[i] = nil
	}
}

// AvailableOptions lists the distinct values of the named dimension over the rows
// that pass every earlier dimension. Time dimensions list month keys in
// chronological order, other dimensions use locale collation.
func (c *Cascade) AvailableOptions(name string, rs []entity.Row) ([]string, error) {
	i, err := c.index(name)
	if err != nil {
		return nil, err
	}
	return c.options(i, c.upTo(i, rs)), nil
}

// Apply returns the rows that satisfy the effective selection of every dimension.
func (c *Cascade) Apply(rs []entity.Row) []entity.Row {
	return c.upTo(len(c.dims), rs)
}

// ApplyBefore returns the rows that satisfy only the dimensions before name.
func (c *Cascade) ApplyBefore(name string, rs []entity.Row) ([]entity.Row, error) {
	i, err := c.index(name)
	if err != nil {
		return nil, err
	}
	return c.upTo(i, rs), nil
}

// EffectiveSelection is the selection actually applied to the named dimension.
// A time dimension without a user choice selects the latest month present in
// the rows left by the earlier dimensions.
func (c *Cascade) EffectiveSelection(name string, rs []entity.Row) (entity.Selection, error) {
	i, err := c.index(name)
	if err != nil {
		return entity.Selection{}, err
	}
	return c.effective(i, c.upTo(i, rs)), nil
}

// Selections snapshots the effective selection of every dimension, in order.
func (c *Cascade) Selections(rs []entity.Row) []entity.Selection {
	out := make([]entity.Selection, len(c.dims))
	current := rs
	for i := range c.dims {
		out[i] = c.effective(i, current)
		current = c.keep(i, out[i], current)
	}
	return out
}

// upTo filters rs by dimensions [0, n).
func (c *Cascade) upTo(n int, rs []entity.Row) []entity.Row {
	current := rs
	for i := 0; i < n && i < len(c.dims); i++ {
		current = c.keep(i, c.effective(i, current), current)
	}
	return current
}

func (c *Cascade) effective(i int, upstream []entity.Row) entity.Selection {
	sel := entity.Selection{Dimension: c.dims[i].Name}
	if len(c.selected[i]) > 0 {
		sel.Values = append([]string(nil), c.selected[i]...)
		return sel
	}
	if c.dims[i].Time {
		if latest := c.latest(i, upstream); latest != "" {
			sel.Values = []string{latest}
			sel.Defaulted = true
		}
	}
	return sel
}

func (c *Cascade) keep(i int, sel entity.Selection, rs []entity.Row) []entity.Row {
	if sel.All() {
		return rs
	}
	want := make(map[string]struct{}, len(sel.Values))
	for _, v := range sel.Values {
		want[v] = struct{}{}
	}
	out := make([]entity.Row, 0, len(rs))
	for _, r := range rs {
		v, ok := c.value(i, r)
		if !ok {
			continue
		}
		if _, hit := want[v]; hit {
			out = append(out, r)
		}
	}
	return out
}

func (c *Cascade) value(i int, r entity.Row) (string, bool) {
	d := c.dims[i]
	if d.Time {
		if c.bucket == nil {
			return "", false
		}
		return c.bucket(r)
	}
	v := strings.TrimSpace(r.Text(d.Column))
	return v, v != ""
}

func (c *Cascade) options(i int, rs []entity.Row) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rs {
		v, ok := c.value(i, r)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if c.dims[i].Time {
		sort.Strings(out)
	} else {
		locale.SortStrings(out)
	}
	return out
}

func (c *Cascade) latest(i int, rs []entity.Row) string {
	latest := ""
	for _, r := range rs {
		if v, ok := c.value(i, r); ok && v > latest {
			latest = v
		}
	}
	return latest
}

func clean(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
