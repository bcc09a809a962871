package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/cardioviz/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Report is a markdown-friendly summary of the enriched examination table.
type Report struct {
	Name       string
	Rows       int
	Cols       []ColumnSummary
	Overweight float64 // share of overweight records
	Groups     []CardioGroup
	Filter     *FilterResult
	Corr       *CorrMatrix
	Warnings   []string
}

// ColumnSummary captures basic statistics for a numeric column.
type ColumnSummary struct {
	Name string
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

// CardioGroup is the size of one outcome group.
type CardioGroup struct {
	Cardio int
	Size   int
}

// Summarize collects column statistics, outcome group sizes, the heatmap
// filter result and the filtered correlation matrix.
func Summarize(t *dataset.Table, f HeatFilter) (*Report, error) {
	rep := &Report{Name: t.Name, Rows: t.Nrow()}
	if rep.Rows == 0 {
		rep.Warnings = append(rep.Warnings, "table has no rows")
		return rep, nil
	}
	for _, name := range t.NumericNames() {
		vals, err := t.Float(name)
		if err != nil {
			return nil, err
		}
		mean, std := stat.MeanStdDev(vals, nil)
		if len(vals) < 2 {
			std = 0
		}
		rep.Cols = append(rep.Cols, ColumnSummary{
			Name: name, Min: floats.Min(vals), Max: floats.Max(vals), Mean: mean, Std: std,
		})
	}

	over, err := t.Float(dataset.ColOverweight)
	if err != nil {
		return nil, err
	}
	rep.Overweight = floats.Sum(over) / float64(len(over))

	cardio, err := t.Float(dataset.ColCardio)
	if err != nil {
		return nil, err
	}
	sizes := map[int]int{}
	for _, v := range cardio {
		sizes[int(v)]++
	}
	for _, k := range []int{0, 1} {
		rep.Groups = append(rep.Groups, CardioGroup{Cardio: k, Size: sizes[k]})
		delete(sizes, k)
	}
	if len(sizes) > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d cardio values outside {0,1}", len(sizes)))
	}

	rep.Filter, err = f.Apply(t)
	if err != nil {
		return nil, err
	}
	if len(rep.Filter.Rows) < 2 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("heatmap filter kept %d rows; correlations are undefined", len(rep.Filter.Rows)))
	}
	rep.Corr, err = Correlate(t, rep.Filter.Rows, dataset.ColBMI)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Numeric columns: %d\n", len(r.Cols)))
	if r.Rows > 0 {
		b.WriteString(fmt.Sprintf("Overweight: %.1f%%\n", r.Overweight*100))
	}

	if len(r.Cols) > 0 {
		b.WriteString("\n[SCHEMA]\n")
		for _, c := range r.Cols {
			b.WriteString(fmt.Sprintf("- %s: min %.4g, max %.4g, mean %.4g, std %.4g\n", c.Name, c.Min, c.Max, c.Mean, c.Std))
		}
	}
	if len(r.Groups) > 0 {
		b.WriteString("\n[CARDIO GROUPS]\n")
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- cardio=%d (n=%d)\n", g.Cardio, g.Size))
		}
	}
	if r.Filter != nil {
		b.WriteString("\n[HEATMAP FILTER]\n")
		b.WriteString(fmt.Sprintf("- height in [%.4g, %.4g]\n", r.Filter.Height.Low, r.Filter.Height.High))
		b.WriteString(fmt.Sprintf("- weight in [%.4g, %.4g]\n", r.Filter.Weight.Low, r.Filter.Weight.High))
		b.WriteString(fmt.Sprintf("- kept %d of %d rows\n", len(r.Filter.Rows), r.Rows))
	}
	if r.Corr != nil && len(r.Corr.Columns) >= 2 {
		pairs := r.Corr.TopPairs(10)
		if len(pairs) > 0 {
			b.WriteString("\n[CORRELATIONS]\n")
			for _, p := range pairs {
				b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
			}
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}
