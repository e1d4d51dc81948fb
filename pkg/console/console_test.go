package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/trend"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

func TestTrendChangeFollowsDirection(t *testing.T) {
	point := func(v float64, d entity.Direction) types.TrendPoint {
		return types.TrendPoint{Period: "p", Value: v, Defined: true, Direction: d, Share: true}
	}

	text, tn := trendChange(point(70, ""), point(75, entity.DirectionImproved))
	assert.Equal(t, "+5,0 pp", text)
	assert.Equal(t, toneGood, tn)

	_, tn = trendChange(point(20, ""), point(25, entity.DirectionWorsened))
	assert.Equal(t, toneBad, tn)

	text, tn = trendChange(point(20, ""), point(20, entity.DirectionUnchanged))
	assert.Equal(t, "0,0 pp", text)
	assert.Equal(t, toneNeutral, tn)

	text, _ = trendChange(types.TrendPoint{}, point(20, entity.DirectionImproved))
	assert.Equal(t, "N/A", text)

	text, tn = trendChange(types.TrendPoint{Value: 3, Defined: true}, types.TrendPoint{Value: 5, Defined: true})
	assert.Equal(t, "+2,0 (sin regla)", text)
	assert.Equal(t, toneNoRule, tn)
}

func TestTrendChangeFlatAndSmallMovesUseTheRule(t *testing.T) {
	rules := types.DefaultPolarities()
	classify := func(measure string, prev, cur float64) (string, tone) {
		d := trend.Compare(entity.LogicalColumn(measure), entity.Percent(cur), entity.Percent(prev), rules[measure])
		return trendChange(
			types.TrendPoint{Value: prev, Defined: true, Share: true},
			types.TrendPoint{Value: cur, Defined: true, Share: true, Direction: d.Direction},
		)
	}

	text, tn := classify(string(entity.ColLate), 20, 20)
	assert.Equal(t, "0,0 pp", text)
	assert.Equal(t, toneBad, tn, "flat late share worsens")

	_, tn = classify(string(entity.ColOnTime), 70, 70)
	assert.Equal(t, toneGood, tn, "flat on-time share improves")

	text, tn = classify(string(entity.ColOnTime), 70, 69.97)
	assert.Equal(t, "0,0 pp", text)
	assert.Equal(t, toneBad, tn, "small on-time drop still worsens")
}

func TestTableRender(t *testing.T) {
	tbl := NewConsole().CreateTable()
	tbl.AddColumn("Estado")
	tbl.AddColumn("Materiales")
	tbl.AddRow("LOW", 1)
	out := tbl.Render()
	assert.True(t, strings.Contains(out, "LOW"))
	assert.True(t, strings.Contains(out, "Materiales"))
}
