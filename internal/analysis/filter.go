package analysis

import (
	"fmt"

	"github.com/KaramelBytes/cardioviz/internal/dataset"
	"github.com/rs/zerolog/log"
)

// HeatFilter keeps physiologically plausible records for the heatmap.
type HeatFilter struct {
	// Low and High are the quantiles bounding height and weight (inclusive).
	Low, High float64
}

// DefaultHeatFilter keeps the central 95% of heights and weights.
func DefaultHeatFilter() HeatFilter {
	return HeatFilter{Low: 0.025, High: 0.975}
}

// Band is an inclusive numeric range.
type Band struct {
	Low, High float64
}

// Contains reports whether v lies within the band, bounds included.
func (b Band) Contains(v float64) bool { return v >= b.Low && v <= b.High }

// FilterResult lists the retained rows and the bands that selected them.
type FilterResult struct {
	Rows   []int
	Height Band
	Weight Band
}

// Apply evaluates the filter against the whole table. Quantiles are computed
// once over the unfiltered columns; a row is kept when diastolic pressure does
// not exceed systolic pressure and both height and weight fall inside their bands.
func (f HeatFilter) Apply(t *dataset.Table) (*FilterResult, error) {
	cols := map[string][]float64{}
	for _, name := range []string{dataset.ColDiastolic, dataset.ColSystolic, dataset.ColHeight, dataset.ColWeight} {
		v, err := t.Float(name)
		if err != nil {
			return nil, fmt.Errorf("heat filter: %w", err)
		}
		cols[name] = v
	}
	lo, hi := cols[dataset.ColDiastolic], cols[dataset.ColSystolic]
	height, weight := cols[dataset.ColHeight], cols[dataset.ColWeight]

	res := &FilterResult{
		Height: Band{Low: Quantile(height, f.Low), High: Quantile(height, f.High)},
		Weight: Band{Low: Quantile(weight, f.Low), High: Quantile(weight, f.High)},
	}
	for i := range height {
		if lo[i] <= hi[i] && res.Height.Contains(height[i]) && res.Weight.Contains(weight[i]) {
			res.Rows = append(res.Rows, i)
		}
	}
	log.Debug().
		Float64("height_low", res.Height.Low).Float64("height_high", res.Height.High).
		Float64("weight_low", res.Weight.Low).Float64("weight_high", res.Weight.High).
		Int("kept", len(res.Rows)).Int("rows", t.Nrow()).
		Msg("applied heatmap filter")
	return res, nil
}
