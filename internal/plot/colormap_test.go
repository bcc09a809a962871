package plot

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestCenteredScaleUsesUpperPartOfMap(t *testing.T) {
	s := ColorScale{Map: Rocket, VMin: -0.1, VMax: 0.2, Center: 0}
	lo, hi := s.span()
	assert.InDelta(t, 0.25, lo, 1e-12)
	assert.InDelta(t, 1.0, hi, 1e-12)

	assert.Equal(t, Rocket.At(0.25), s.Color(-0.1))
	assert.Equal(t, Rocket.At(0.5), s.Color(0))
	assert.Equal(t, Rocket.At(1), s.Color(0.2))
	// clipped outside the bounds
	assert.Equal(t, s.Color(-0.1), s.Color(-0.9))
	assert.Equal(t, s.Color(0.2), s.Color(1))
}

func TestSymmetricScaleUsesWholeMap(t *testing.T) {
	s := ColorScale{Map: Rocket, VMin: -1, VMax: 1, Center: 0}
	assert.Equal(t, Rocket.At(0), s.Color(-1))
	assert.Equal(t, Rocket.At(1), s.Color(1))
}

func TestColormapInterpolates(t *testing.T) {
	m := Colormap{
		{0, drawing.Color{R: 0, G: 0, B: 0, A: 255}},
		{1, drawing.Color{R: 200, G: 100, B: 50, A: 255}},
	}
	assert.Equal(t, drawing.Color{R: 100, G: 50, B: 25, A: 255}, m.At(0.5))
	assert.Equal(t, m[0].c, m.At(-1))
	assert.Equal(t, m[1].c, m.At(2))
	assert.Equal(t, m[0].c, m.At(math.NaN()))
}

func TestAnnotationColor(t *testing.T) {
	assert.Equal(t, colorWhite, annotationColor(Rocket.At(0)))
	assert.Equal(t, colorText, annotationColor(Rocket.At(1)))
}

func TestNiceTicks(t *testing.T) {
	ticks := niceTicks(-0.1, 0.2, 7, func(v float64) string { return fmt.Sprintf("%.2f", v) })
	var labels []string
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"-0.10", "-0.05", "0.00", "0.05", "0.10", "0.15", "0.20"}, labels)

	ticks = niceTicks(0, 35000, 6, func(v float64) string { return fmt.Sprintf("%.0f", v) })
	assert.Equal(t, 0.0, ticks[0].Value)
	assert.Equal(t, 35000.0, ticks[len(ticks)-1].Value)
	assert.Equal(t, 5000.0, ticks[1].Value)
}
