package plot

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/cardioviz/internal/analysis"
	"github.com/KaramelBytes/cardioviz/internal/dataset"
	"github.com/rs/zerolog/log"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// CatPlotOptions controls the categorical bar chart.
type CatPlotOptions struct {
	Path          string
	Width, Height int
	DPI           float64
}

// DefaultCatPlotOptions draws a 1100x550 catplot.png.
func DefaultCatPlotOptions() CatPlotOptions {
	return CatPlotOptions{Path: "catplot.png", Width: 1100, Height: 550, DPI: 100}
}

// HuePalette colors bars by indicator value.
var HuePalette = []drawing.Color{
	{R: 76, G: 114, B: 176, A: 255},
	{R: 221, G: 132, B: 82, A: 255},
	{R: 85, G: 168, B: 104, A: 255},
}

// hueColor returns the palette color for indicator value v.
func hueColor(v int) drawing.Color {
	n := len(HuePalette)
	return HuePalette[((v%n)+n)%n]
}

const (
	tickFontSize  = 9.0
	labelFontSize = 10.0
	titleFontSize = 12.0
)

// DrawCatPlot counts the indicator values per cardio group, renders the
// grouped bar chart and writes it to opt.Path.
func DrawCatPlot(t *dataset.Table, opt CatPlotOptions) (*Figure, error) {
	counts, err := analysis.CatCounts(t)
	if err != nil {
		return nil, fmt.Errorf("catplot: %w", err)
	}
	png, err := RenderCatPlot(counts, opt)
	if err != nil {
		return nil, fmt.Errorf("catplot: %w", err)
	}
	fig := &Figure{Name: "catplot", Path: opt.Path, Width: opt.Width, Height: opt.Height, PNG: png, Counts: counts}
	if err := fig.Save(); err != nil {
		return nil, err
	}
	return fig, nil
}

type catKey struct {
	cardio   int
	variable string
	value    int
}

// catLayout is the pixel geometry of the catplot.
type catLayout struct {
	panels    []int
	variables []string
	hues      []int
	totals    map[catKey]int
	ticks     []chart.Tick
	yTop      float64

	left, top     int
	plotW, plotH  int
	gap           int
	width, height int
}

func newCatLayout(counts []analysis.GroupCount, width, height int) catLayout {
	l := catLayout{
		totals: make(map[catKey]int, len(counts)),
		left:   80, top: 45, gap: 30,
		width: width, height: height,
	}
	panels, vars, hues := map[int]bool{}, map[string]bool{}, map[int]bool{}
	maxTotal := 0
	for _, g := range counts {
		panels[g.Cardio] = true
		vars[g.Variable] = true
		hues[g.Value] = true
		l.totals[catKey{g.Cardio, g.Variable, g.Value}] = g.Total
		if g.Total > maxTotal {
			maxTotal = g.Total
		}
	}
	l.panels = sortedInts(panels, []int{0, 1})
	l.hues = sortedInts(hues, []int{0, 1})
	for v := range vars {
		l.variables = append(l.variables, v)
	}
	if len(l.variables) == 0 {
		l.variables = append(l.variables, analysis.Indicators...)
	}
	sort.Strings(l.variables)

	right, bottom := 110, 70
	l.plotW = (width - l.left - right - l.gap*(len(l.panels)-1)) / len(l.panels)
	l.plotH = height - l.top - bottom

	// at least five units keeps integer tick labels distinct
	l.ticks = niceTicks(0, math.Max(float64(maxTotal), 5), 6, func(v float64) string { return fmt.Sprintf("%.0f", v) })
	l.yTop = 1
	if n := len(l.ticks); n > 0 && l.ticks[n-1].Value > 0 {
		l.yTop = l.ticks[n-1].Value
	}
	return l
}

func sortedInts(set map[int]bool, fallback []int) []int {
	if len(set) == 0 {
		return fallback
	}
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func (l catLayout) panelX(p int) int { return l.left + p*(l.plotW+l.gap) }

func (l catLayout) baseline() int { return l.top + l.plotH }

func (l catLayout) y(v float64) int {
	return l.baseline() - int(math.Round(v/l.yTop*float64(l.plotH)))
}

func (l catLayout) slot() float64 { return float64(l.plotW) / float64(len(l.variables)) }

// bar returns the horizontal extent of the bar for variable vi and hue hi in panel p.
func (l catLayout) bar(p, vi, hi int) (x0, x1 int) {
	slot := l.slot()
	w := slot * 0.8 / float64(len(l.hues))
	start := float64(l.panelX(p)) + slot*float64(vi) + slot*0.1
	return int(math.Round(start + float64(hi)*w)), int(math.Round(start + float64(hi+1)*w))
}

// RenderCatPlot draws one panel per cardio value with a bar per
// (indicator, value) count. Groups without observations get no bar.
func RenderCatPlot(counts []analysis.GroupCount, opt CatPlotOptions) ([]byte, error) {
	c, err := newCanvas(opt.Width, opt.Height, opt.DPI)
	if err != nil {
		return nil, err
	}
	l := newCatLayout(counts, opt.Width, opt.Height)

	for p, cardio := range l.panels {
		x0 := l.panelX(p)
		x1 := x0 + l.plotW
		c.text(fmt.Sprintf("%s = %d", analysis.OutcomeColumn, cardio), x0+l.plotW/2, l.top-15, titleFontSize, colorText, alignCenter)

		for _, tk := range l.ticks {
			y := l.y(tk.Value)
			c.line(x0-5, y, x0, y, colorAxis, 1)
			if p == 0 {
				c.textMiddle(tk.Label, x0-8, y, tickFontSize, colorText, alignRight)
			}
		}
		for vi, v := range l.variables {
			for hi, h := range l.hues {
				n, ok := l.totals[catKey{cardio, v, h}]
				if !ok {
					continue
				}
				bx0, bx1 := l.bar(p, vi, hi)
				c.fillRect(bx0, l.y(float64(n)), bx1, l.baseline(), hueColor(h))
			}
			cx := x0 + int(math.Round(l.slot()*(float64(vi)+0.5)))
			c.line(cx, l.baseline(), cx, l.baseline()+5, colorAxis, 1)
			c.text(v, cx, l.baseline()+22, tickFontSize, colorText, alignCenter)
		}
		c.line(x0, l.top, x0, l.baseline(), colorAxis, 1.2)
		c.line(x0, l.baseline(), x1, l.baseline(), colorAxis, 1.2)
		c.text("variable", x0+l.plotW/2, l.height-15, labelFontSize, colorText, alignCenter)
	}
	c.textVerticalMiddle("total", 22, l.top+l.plotH/2, labelFontSize, colorText)

	lx := l.width - 90
	ly := l.top + l.plotH/2 - 30
	c.text("value", lx, ly, labelFontSize, colorText, alignLeft)
	for hi, h := range l.hues {
		y := ly + 12 + hi*22
		c.fillRect(lx, y, lx+14, y+14, hueColor(h))
		c.textMiddle(fmt.Sprint(h), lx+22, y+7, tickFontSize, colorText, alignLeft)
	}

	log.Debug().Int("groups", len(counts)).Int("panels", len(l.panels)).Float64("y_top", l.yTop).Msg("rendered catplot")
	return c.png()
}
