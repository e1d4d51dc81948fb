package rows

import (
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

const maxSamples = 3

// Audit counts the non-empty number and date cells that do not parse, per column.
// Values are left untouched; the warnings are for diagnostics only.
func Audit(rs []entity.Row, s entity.Schema, table entity.CandidateTable) []types.CoercionWarning {
	var out []types.CoercionWarning
	for _, spec := range table {
		if !s.Has(spec.Name) {
			continue
		}
		var check func(string) bool
		switch spec.Kind {
		case entity.KindNumber:
			check = func(v string) bool { _, ok := ParseNumber(v); return ok }
		case entity.KindDate:
			check = func(v string) bool { _, ok := ParseDateOK(v); return ok }
		default:
			continue
		}

		w := types.CoercionWarning{Column: s.Header(spec.Name), Kind: string(spec.Kind)}
		for _, r := range rs {
			v := r.Text(spec.Name)
			if v == "" || check(v) {
				continue
			}
			w.Count++
			if len(w.Samples) < maxSamples {
				w.Samples = append(w.Samples, v)
			}
		}
		if w.Count > 0 {
			out = append(out, w)
		}
	}
	return out
}
