package plot

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceTicks generates about n tick marks covering [min, max] using 1, 2, 2.5
// or 5 times a power of ten as the step. Labels come from format.
func niceTicks(min, max float64, n int, format func(float64) string) []chart.Tick {
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
	start := math.Floor(min/bestStep+1e-9) * bestStep
	end := math.Ceil(max/bestStep-1e-9) * bestStep
	var ticks []chart.Tick
	for i := 0; ; i++ {
		v := start + float64(i)*bestStep
		if v > end+bestStep/2 || len(ticks) > n+2 {
			break
		}
		// snap values such as 0.15000000000000002
		v = math.Round(v/bestStep) * bestStep
		if math.Abs(v) < bestStep*1e-9 {
			v = 0
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: format(v)})
	}
	return ticks
}
