package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/cardioviz/internal/dataset"
	"github.com/stretchr/testify/require"
)

// sixRows is small enough to tally by hand.
var sixRows = []string{
	"id,height,weight,ap_hi,ap_lo,cholesterol,gluc,smoke,alco,active,cardio",
	"1,170,60,120,80,1,1,0,0,1,0",
	"2,160,80,130,85,2,1,1,0,1,1",
	"3,175,70,110,70,3,3,0,1,0,1",
	"4,150,50,140,90,1,2,0,0,1,0",
	"5,180,100,150,95,1,1,1,1,0,1",
	"6,165,68,125,80,2,1,0,0,1,0",
}

func tableFrom(t *testing.T, rows []string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Read(strings.NewReader(strings.Join(rows, "\n")), "fixture.csv", dataset.DefaultOptions())
	require.NoError(t, err)
	return tbl
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func correlation(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("length mismatch")
	}
	ma := mean(a)
	mb := mean(b)
	var num, da2, db2 float64
	for i := range a {
		da := a[i] - ma
		db := b[i] - mb
		num += da * db
		da2 += da * da
		db2 += db * db
	}
	if da2 == 0 || db2 == 0 {
		return math.NaN()
	}
	return num / math.Sqrt(da2*db2)
}

func subset(vals []float64, idxs []int) []float64 {
	out := make([]float64, len(idxs))
	for i, idx := range idxs {
		out[i] = vals[idx]
	}
	return out
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
