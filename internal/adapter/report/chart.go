package report

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/iho/pocketledger/internal/domain"
)

// WriteChart renders the expense breakdown by category as a PNG bar chart.
func WriteChart(w io.Writer, totals domain.Totals) error {
	var bars []chart.Value
	maxValue := 0.0
	for _, c := range totals.CategoryBreakdown() {
		if !c.Amount.IsPositive() {
			continue
		}
		maxValue = math.Max(maxValue, c.Amount.InexactFloat64())
		bars = append(bars, chart.Value{
			Label: c.Category,
			Value: c.Amount.InexactFloat64(),
		})
	}

	if len(bars) == 0 {
		return ErrNothingToChart
	}

	barChart := chart.BarChart{
		Title: "Expenses by Category",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Bars:   bars,
		YAxis: chart.YAxis{
			// Anchor at zero so a single category still gets a non-empty range.
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
		},
	}

	barChart.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return fmt.Sprintf("%.2f", vf)
		}
		return ""
	}

	if err := barChart.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}
