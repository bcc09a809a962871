package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatFilterDropsHeightOutlier(t *testing.T) {
	tbl := tableFrom(t, []string{
		"id,height,weight,ap_hi,ap_lo,cholesterol,gluc,smoke,alco,active,cardio",
		"0,150,62,120,80,1,1,0,0,1,0",
		"1,160,70,120,80,1,1,0,0,1,1",
		"2,170,72,130,85,2,1,0,0,1,0",
		"3,1000,80,120,80,1,1,0,0,1,1",
	})
	res, err := DefaultHeatFilter().Apply(tbl)
	require.NoError(t, err)

	assert.InDelta(t, 150.75, res.Height.Low, 1e-9)
	assert.InDelta(t, 937.75, res.Height.High, 1e-9)
	assert.InDelta(t, 62.6, res.Weight.Low, 1e-9)
	assert.InDelta(t, 79.4, res.Weight.High, 1e-9)
	assert.Equal(t, []int{1, 2}, res.Rows)
	assert.NotContains(t, res.Rows, 3)

	cm, err := Correlate(tbl, res.Rows, "BMI")
	require.NoError(t, err)
	assert.Equal(t, 2, cm.Rows)
}

func TestHeatFilterDropsInvertedPressure(t *testing.T) {
	tbl := tableFrom(t, []string{
		"id,height,weight,ap_hi,ap_lo,cholesterol,gluc,smoke,alco,active,cardio",
		"0,170,70,120,80,1,1,0,0,1,0",
		"1,170,70,80,120,1,1,0,0,1,1",
		"2,170,70,90,90,1,1,0,0,1,0",
		"3,170,70,140,90,1,1,0,0,1,1",
	})
	res, err := DefaultHeatFilter().Apply(tbl)
	require.NoError(t, err)
	// equal pressures are plausible, diastolic above systolic is not
	assert.Equal(t, []int{0, 2, 3}, res.Rows)
}

func TestHeatFilterBoundsAreInclusive(t *testing.T) {
	tbl := tableFrom(t, sixRows)
	res, err := HeatFilter{Low: 0, High: 1}.Apply(tbl)
	require.NoError(t, err)
	// the full band keeps the minimum and maximum of both columns
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, res.Rows)
	assert.Equal(t, Band{Low: 150, High: 180}, res.Height)
	assert.True(t, res.Weight.Contains(50))
	assert.True(t, res.Weight.Contains(100))
	assert.False(t, res.Weight.Contains(100.5))
}
