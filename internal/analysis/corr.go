package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/cardioviz/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
	Rows    int         // observations used
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

// Correlate computes pairwise Pearson correlations over the numeric columns of
// t, restricted to rows and skipping the excluded column names. Each pair uses
// the rows where both values are present. Constant columns, and every column
// when fewer than two rows remain, correlate as NaN.
func Correlate(t *dataset.Table, rows []int, exclude ...string) (*CorrMatrix, error) {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	var names []string
	for _, n := range t.NumericNames() {
		if !skip[n] {
			names = append(names, n)
		}
	}
	k := len(names)
	cm := &CorrMatrix{Columns: names, Values: make([][]float64, k), Rows: len(rows)}
	for i := range cm.Values {
		cm.Values[i] = make([]float64, k)
	}
	if k == 0 {
		return cm, nil
	}
	if len(rows) < 2 {
		for i := range cm.Values {
			for j := range cm.Values[i] {
				cm.Values[i][j] = math.NaN()
			}
		}
		return cm, nil
	}

	cols := make([][]float64, k)
	complete := make([]bool, k)
	for c, name := range names {
		vals, err := t.Float(name)
		if err != nil {
			return nil, fmt.Errorf("correlate: %w", err)
		}
		cols[c] = make([]float64, len(rows))
		complete[c] = true
		for r, idx := range rows {
			cols[c][r] = vals[idx]
			if math.IsNaN(vals[idx]) || math.IsInf(vals[idx], 0) {
				complete[c] = false
			}
		}
	}

	// columns without gaps share one matrix pass
	var full []int
	for c := range cols {
		if complete[c] {
			full = append(full, c)
		}
	}
	if len(full) > 0 {
		x := mat.NewDense(len(rows), len(full), nil)
		for fc, c := range full {
			x.SetCol(fc, cols[c])
		}
		sym := mat.NewSymDense(len(full), nil)
		stat.CorrelationMatrix(sym, x, nil)
		for fi, i := range full {
			for fj, j := range full {
				r := sym.At(fi, fj)
				if isConstant(cols[i]) || isConstant(cols[j]) {
					r = math.NaN()
				}
				cm.Values[i][j] = clampCorr(r)
			}
		}
	}
	// pairs touching a column with gaps use pairwise-complete rows
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			if complete[i] && complete[j] {
				continue
			}
			r := pairwiseCorr(cols[i], cols[j])
			cm.Values[i][j] = r
			cm.Values[j][i] = r
		}
	}
	return cm, nil
}

func isConstant(vals []float64) bool {
	return len(vals) == 0 || floats.Min(vals) == floats.Max(vals)
}

func clampCorr(r float64) float64 {
	switch {
	case math.IsNaN(r):
		return math.NaN()
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}

// pairwiseCorr correlates a and b over the positions where both are finite.
func pairwiseCorr(a, b []float64) float64 {
	var xs, ys []float64
	for i := range a {
		if math.IsNaN(a[i]) || math.IsInf(a[i], 0) || math.IsNaN(b[i]) || math.IsInf(b[i], 0) {
			continue
		}
		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}
	if len(xs) < 2 || isConstant(xs) || isConstant(ys) {
		return math.NaN()
	}
	return clampCorr(stat.Correlation(xs, ys, nil))
}

// At returns the correlation between columns i and j.
func (m *CorrMatrix) At(i, j int) float64 { return m.Values[i][j] }

// LowerTriangleMask marks the cells that are hidden when drawing: the upper
// triangle including the diagonal (j >= i).
func (m *CorrMatrix) LowerTriangleMask() [][]bool {
	n := len(m.Columns)
	mask := make([][]bool, n)
	for i := range mask {
		mask[i] = make([]bool, n)
		for j := i; j < n; j++ {
			mask[i][j] = true
		}
	}
	return mask
}

// TopPairs lists up to n distinct column pairs ordered by |r|, NaN pairs skipped.
func (m *CorrMatrix) TopPairs(n int) []PairCorr {
	var pairs []PairCorr
	for i := 0; i < len(m.Columns); i++ {
		for j := i + 1; j < len(m.Columns); j++ {
			r := m.Values[i][j]
			if math.IsNaN(r) {
				continue
			}
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: r})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if n > 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}
