package charts

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceAxisMax rounds max up to a readable bound so bars and lines do not touch the top edge.
func niceAxisMax(max float64) float64 {
	if math.IsNaN(max) || max <= 0 {
		return 1
	}
	// 5% headroom
	top := max * 1.05
	mag := math.Pow(10, math.Floor(math.Log10(top)))
	if mag <= 0 || math.IsInf(mag, 0) {
		return top
	}
	return math.Ceil(top/(mag/2)) * (mag / 2)
}

// niceTicks generates up to n tick marks between [min, max] using 1, 2, 2.5, 5 steps.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	ticks := []chart.Tick{}
	for v := start; v <= max+bestStep/2; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatMoney(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

// formatMoney renders an axis value in dollars, abbreviating thousands.
func formatMoney(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case av >= 10_000:
		return fmt.Sprintf("$%.0fk", v/1000)
	case av >= 1000:
		return fmt.Sprintf("$%.1fk", v/1000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// periodTicks labels the x positions 0..len(labels)-1.
func periodTicks(labels []string) []chart.Tick {
	ticks := make([]chart.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = chart.Tick{Value: float64(i), Label: l}
	}
	return ticks
}
