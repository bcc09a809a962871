package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeAndMarkdown(t *testing.T) {
	tbl := tableFrom(t, sixRows)
	rep, err := Summarize(tbl, DefaultHeatFilter())
	require.NoError(t, err)

	assert.Equal(t, 6, rep.Rows)
	assert.InDelta(t, 2.0/6.0, rep.Overweight, 1e-12)
	assert.Equal(t, []CardioGroup{{Cardio: 0, Size: 3}, {Cardio: 1, Size: 3}}, rep.Groups)
	require.NotNil(t, rep.Filter)
	require.NotNil(t, rep.Corr)
	assert.NotContains(t, rep.Corr.Columns, "BMI")

	var height ColumnSummary
	for _, c := range rep.Cols {
		if c.Name == "height" {
			height = c
		}
	}
	assert.Equal(t, 150.0, height.Min)
	assert.Equal(t, 180.0, height.Max)
	assert.InDelta(t, 1000.0/6.0, height.Mean, 1e-9)

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: fixture.csv",
		"Rows: 6",
		"Overweight: 33.3%",
		"[SCHEMA]",
		"- height: min 150, max 180",
		"[CARDIO GROUPS]",
		"- cardio=1 (n=3)",
		"[HEATMAP FILTER]",
		"[CORRELATIONS]",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestSummarizeWarnsOnDegenerateFilter(t *testing.T) {
	tbl := tableFrom(t, []string{
		"id,height,weight,ap_hi,ap_lo,cholesterol,gluc,smoke,alco,active,cardio",
		"0,170,70,80,120,1,1,0,0,1,0",
		"1,171,71,80,120,1,1,0,0,1,1",
	})
	rep, err := Summarize(tbl, DefaultHeatFilter())
	require.NoError(t, err)
	assert.Empty(t, rep.Filter.Rows)
	assert.Contains(t, rep.Markdown(), "[NOTES]")
	assert.Contains(t, rep.Markdown(), "heatmap filter kept 0 rows")
}
