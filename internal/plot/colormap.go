package plot

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

type colorStop struct {
	pos float64
	c   drawing.Color
}

// Colormap maps [0,1] onto colors by linear interpolation between stops.
type Colormap []colorStop

// Rocket approximates seaborn's perceptually uniform "rocket" map, dark purple to cream.
var Rocket = Colormap{
	{0.00, drawing.Color{R: 3, G: 5, B: 26, A: 255}},
	{0.15, drawing.Color{R: 44, G: 17, B: 55, A: 255}},
	{0.30, drawing.Color{R: 98, G: 25, B: 81, A: 255}},
	{0.45, drawing.Color{R: 157, G: 23, B: 89, A: 255}},
	{0.60, drawing.Color{R: 215, G: 39, B: 72, A: 255}},
	{0.75, drawing.Color{R: 241, G: 100, B: 67, A: 255}},
	{0.90, drawing.Color{R: 246, G: 172, B: 131, A: 255}},
	{1.00, drawing.Color{R: 250, G: 235, B: 221, A: 255}},
}

// At returns the color at t, clamped to [0,1].
func (m Colormap) At(t float64) drawing.Color {
	if len(m) == 0 {
		return colorWhite
	}
	if math.IsNaN(t) || t <= m[0].pos {
		return m[0].c
	}
	last := m[len(m)-1]
	if t >= last.pos {
		return last.c
	}
	for i := 1; i < len(m); i++ {
		if t <= m[i].pos {
			a, b := m[i-1], m[i]
			w := (t - a.pos) / (b.pos - a.pos)
			return drawing.Color{
				R: lerp8(a.c.R, b.c.R, w),
				G: lerp8(a.c.G, b.c.G, w),
				B: lerp8(a.c.B, b.c.B, w),
				A: 255,
			}
		}
	}
	return last.c
}

func lerp8(a, b uint8, w float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*w))
}

// ColorScale maps data values to colors. Values are clipped to [VMin, VMax].
// The colormap is centered on Center: the full map spans
// [Center-r, Center+r] with r the larger distance from Center to either
// bound, and only the part covering [VMin, VMax] is used.
type ColorScale struct {
	Map        Colormap
	VMin, VMax float64
	Center     float64
}

// span returns the slice of the colormap used by the scale.
func (s ColorScale) span() (lo, hi float64) {
	r := math.Max(s.VMax-s.Center, s.Center-s.VMin)
	if r <= 0 {
		return 0, 1
	}
	base := s.Center - r
	return (s.VMin - base) / (2 * r), (s.VMax - base) / (2 * r)
}

// Color returns the color for v.
func (s ColorScale) Color(v float64) drawing.Color {
	if s.VMax <= s.VMin {
		return s.Map.At(0.5)
	}
	v = math.Max(s.VMin, math.Min(s.VMax, v))
	t := (v - s.VMin) / (s.VMax - s.VMin)
	lo, hi := s.span()
	return s.Map.At(lo + t*(hi-lo))
}

// relativeLuminance follows the WCAG definition on sRGB channels.
func relativeLuminance(c drawing.Color) float64 {
	ch := func(v uint8) float64 {
		x := float64(v) / 255
		if x <= 0.03928 {
			return x / 12.92
		}
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return 0.2126*ch(c.R) + 0.7152*ch(c.G) + 0.0722*ch(c.B)
}

// annotationColor picks dark text on light cells and white text on dark cells.
func annotationColor(bg drawing.Color) drawing.Color {
	if relativeLuminance(bg) > 0.408 {
		return colorText
	}
	return colorWhite
}
