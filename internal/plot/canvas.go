package plot

import (
	"bytes"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorWhite = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	colorText  = drawing.Color{R: 38, G: 38, B: 38, A: 255}
	colorAxis  = drawing.Color{R: 38, G: 38, B: 38, A: 255}
)

type hAlign int

const (
	alignLeft hAlign = iota
	alignCenter
	alignRight
)

// canvas wraps a go-chart raster renderer with the handful of primitives the
// figures need: filled rectangles, lines and aligned text.
type canvas struct {
	r             chart.Renderer
	width, height int
}

func newCanvas(width, height int, dpi float64) (*canvas, error) {
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	if dpi > 0 {
		r.SetDPI(dpi)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	r.SetFont(font)
	c := &canvas{r: r, width: width, height: height}
	c.fillRect(0, 0, width, height, colorWhite)
	return c, nil
}

func (c *canvas) path(x0, y0, x1, y1 int) {
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y0)
	c.r.LineTo(x1, y1)
	c.r.LineTo(x0, y1)
	c.r.Close()
}

// fillRect fills the rectangle spanning [x0,x1) x [y0,y1).
func (c *canvas) fillRect(x0, y0, x1, y1 int, fill drawing.Color) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	c.r.SetFillColor(fill)
	c.path(x0, y0, x1, y1)
	c.r.Fill()
}

// strokeRect outlines the rectangle with the given line width in pixels.
func (c *canvas) strokeRect(x0, y0, x1, y1 int, stroke drawing.Color, width float64) {
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.path(x0, y0, x1, y1)
	c.r.Stroke()
}

func (c *canvas) line(x0, y0, x1, y1 int, stroke drawing.Color, width float64) {
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
}

func (c *canvas) measure(s string, size float64) chart.Box {
	c.r.SetFontSize(size)
	return c.r.MeasureText(s)
}

// text draws s with its baseline at y, horizontally aligned against x.
func (c *canvas) text(s string, x, y int, size float64, col drawing.Color, align hAlign) {
	box := c.measure(s, size)
	switch align {
	case alignCenter:
		x -= box.Width() / 2
	case alignRight:
		x -= box.Width()
	}
	c.r.SetFontColor(col)
	c.r.Text(s, x, y)
}

// textMiddle draws s centered vertically on cy.
func (c *canvas) textMiddle(s string, x, cy int, size float64, col drawing.Color, align hAlign) {
	box := c.measure(s, size)
	c.text(s, x, cy+box.Height()/2, size, col, align)
}

// textVertical draws s reading bottom to top, centered horizontally on cx,
// with the end of the string at top.
func (c *canvas) textVertical(s string, cx, top int, size float64, col drawing.Color) {
	box := c.measure(s, size)
	c.r.SetFontColor(col)
	c.r.SetTextRotation(1.5 * math.Pi)
	c.r.Text(s, cx+box.Height()/2, top+box.Width())
	c.r.ClearTextRotation()
}

// textVerticalMiddle draws s reading bottom to top, centered on (cx, cy).
func (c *canvas) textVerticalMiddle(s string, cx, cy int, size float64, col drawing.Color) {
	box := c.measure(s, size)
	c.textVertical(s, cx, cy-box.Width()/2, size, col)
}

func (c *canvas) png() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.r.Save(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
