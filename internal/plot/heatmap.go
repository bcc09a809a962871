package plot

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/cardioviz/internal/analysis"
	"github.com/KaramelBytes/cardioviz/internal/dataset"
	"github.com/rs/zerolog/log"
)

// HeatMapOptions controls the correlation heatmap.
type HeatMapOptions struct {
	Path   string
	Size   int // square figure side in pixels
	DPI    float64
	Filter analysis.HeatFilter
	Scale  ColorScale
	// Shrink is the colorbar height relative to the grid.
	Shrink float64
}

// DefaultHeatMapOptions draws a 1400x1400 heatmap.png on the rocket map,
// bounded to [-0.1, 0.2] and centered at 0.
func DefaultHeatMapOptions() HeatMapOptions {
	return HeatMapOptions{
		Path:   "heatmap.png",
		Size:   1400,
		DPI:    100,
		Filter: analysis.DefaultHeatFilter(),
		Scale:  ColorScale{Map: Rocket, VMin: -0.1, VMax: 0.2, Center: 0},
		Shrink: 0.45,
	}
}

// DrawHeatMap filters implausible records, correlates the remaining numeric
// columns (BMI excluded), renders the lower triangle and writes it to opt.Path.
func DrawHeatMap(t *dataset.Table, opt HeatMapOptions) (*Figure, error) {
	res, err := opt.Filter.Apply(t)
	if err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}
	cm, err := analysis.Correlate(t, res.Rows, dataset.ColBMI)
	if err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}
	png, err := RenderHeatMap(cm, opt)
	if err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}
	fig := &Figure{Name: "heatmap", Path: opt.Path, Width: opt.Size, Height: opt.Size, PNG: png, Corr: cm}
	if err := fig.Save(); err != nil {
		return nil, err
	}
	return fig, nil
}

// heatLayout is the pixel geometry of the heatmap grid and colorbar.
type heatLayout struct {
	x0, y0 int // top-left corner of the grid
	cell   int
	n      int

	cbX, cbY, cbW, cbH int
}

func newHeatLayout(c *canvas, cols []string, size int, shrink float64) heatLayout {
	labelW := 0
	for _, name := range cols {
		if w := c.measure(name, labelFontSize).Width(); w > labelW {
			labelW = w
		}
	}
	l := heatLayout{n: len(cols)}
	l.x0 = labelW + 30
	l.y0 = 40
	right := 170
	bottom := labelW + 30
	side := size - l.x0 - right
	if h := size - l.y0 - bottom; h < side {
		side = h
	}
	if l.n > 0 {
		l.cell = side / l.n
	}
	grid := l.cell * l.n

	if shrink <= 0 || shrink > 1 {
		shrink = 1
	}
	l.cbH = int(math.Round(float64(grid) * shrink))
	l.cbW = int(math.Max(12, float64(grid)/30))
	l.cbX = l.x0 + grid + 40
	l.cbY = l.y0 + (grid-l.cbH)/2
	return l
}

// cellRect returns the pixel bounds of cell (i, j): row i, column j.
func (l heatLayout) cellRect(i, j int) (x0, y0, x1, y1 int) {
	x0 = l.x0 + j*l.cell
	y0 = l.y0 + i*l.cell
	return x0, y0, x0 + l.cell, y0 + l.cell
}

// RenderHeatMap draws the lower triangle of cm (diagonal excluded) as
// annotated square cells with a colorbar. NaN cells stay blank.
func RenderHeatMap(cm *analysis.CorrMatrix, opt HeatMapOptions) ([]byte, error) {
	png, _, err := renderHeatMap(cm, opt)
	return png, err
}

func renderHeatMap(cm *analysis.CorrMatrix, opt HeatMapOptions) ([]byte, heatLayout, error) {
	c, err := newCanvas(opt.Size, opt.Size, opt.DPI)
	if err != nil {
		return nil, heatLayout{}, err
	}
	l := newHeatLayout(c, cm.Columns, opt.Size, opt.Shrink)
	mask := cm.LowerTriangleMask()
	border := 0.5 * opt.DPI / 72

	drawn := 0
	for i := 0; i < l.n; i++ {
		for j := 0; j < l.n; j++ {
			v := cm.At(i, j)
			if mask[i][j] || math.IsNaN(v) {
				continue
			}
			x0, y0, x1, y1 := l.cellRect(i, j)
			bg := opt.Scale.Color(v)
			c.fillRect(x0, y0, x1, y1, bg)
			c.strokeRect(x0, y0, x1, y1, colorWhite, border)
			c.textMiddle(fmt.Sprintf("%.1f", v), (x0+x1)/2, (y0+y1)/2, labelFontSize, annotationColor(bg), alignCenter)
			drawn++
		}
	}

	grid := l.cell * l.n
	for k, name := range cm.Columns {
		mid := l.cell*k + l.cell/2
		c.line(l.x0-5, l.y0+mid, l.x0, l.y0+mid, colorAxis, 1)
		c.textMiddle(name, l.x0-8, l.y0+mid, labelFontSize, colorText, alignRight)
		c.line(l.x0+mid, l.y0+grid, l.x0+mid, l.y0+grid+5, colorAxis, 1)
		c.textVertical(name, l.x0+mid, l.y0+grid+8, labelFontSize, colorText)
	}

	drawColorbar(c, l, opt.Scale)
	log.Debug().Int("columns", l.n).Int("cells", drawn).Int("cell_px", l.cell).Msg("rendered heatmap")
	png, err := c.png()
	return png, l, err
}

func drawColorbar(c *canvas, l heatLayout, s ColorScale) {
	if l.cbH <= 0 {
		return
	}
	for py := 0; py < l.cbH; py++ {
		v := s.VMax - (float64(py)+0.5)/float64(l.cbH)*(s.VMax-s.VMin)
		c.fillRect(l.cbX, l.cbY+py, l.cbX+l.cbW, l.cbY+py+1, s.Color(v))
	}
	span := s.VMax - s.VMin
	for _, tk := range niceTicks(s.VMin, s.VMax, 7, func(v float64) string { return fmt.Sprintf("%.2f", v) }) {
		if tk.Value < s.VMin-span*1e-9 || tk.Value > s.VMax+span*1e-9 {
			continue
		}
		y := l.cbY + int(math.Round((s.VMax-tk.Value)/span*float64(l.cbH)))
		c.line(l.cbX+l.cbW, y, l.cbX+l.cbW+5, y, colorAxis, 1)
		c.textMiddle(tk.Label, l.cbX+l.cbW+8, y, tickFontSize, colorText, alignLeft)
	}
}
