// Package chart draws the dashboard trend line.
package chart

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default canvas size, matching the dashboard's chart element.
const (
	DefaultWidth  = 300
	DefaultHeight = 150
)

// Point is a vertex of the trend polyline in canvas coordinates.
type Point struct {
	X float64
	Y float64
}

// Polyline maps samples onto a width x height surface. Values are
// normalised against the largest sample with a floor of 1, so an
// all-zero history becomes a flat line along the bottom edge. Samples are
// spaced evenly by index.
func Polyline(values []int, width, height float64) []Point {
	if len(values) == 0 {
		return nil
	}

	peak := 1
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}

	step := width / float64(len(values))
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{
			X: float64(i) * step,
			Y: height - float64(v)/float64(peak)*height,
		}
	}
	return points
}

// Canvas is the raster surface the trend line is drawn on.
type Canvas struct {
	mu      sync.RWMutex
	img     *image.RGBA
	version uint64
}

// NewCanvas allocates a transparent canvas.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Render clears the canvas and strokes a single polyline through values.
// The same values always produce the same image.
func (c *Canvas) Render(values []int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bounds := c.img.Bounds()
	draw.Draw(c.img, bounds, image.Transparent, image.Point{}, draw.Src)

	points := Polyline(values, float64(bounds.Dx()), float64(bounds.Dy()))
	if len(points) > 0 {
		gc, err := drawing.NewRasterGraphicContext(c.img)
		if err != nil {
			return fmt.Errorf("failed to create graphics context: %w", err)
		}
		gc.SetStrokeColor(drawing.ColorBlack)
		gc.SetLineWidth(1)
		gc.BeginPath()
		gc.MoveTo(points[0].X, points[0].Y)
		for _, p := range points[1:] {
			gc.LineTo(p.X, p.Y)
		}
		gc.Stroke()
	}

	c.version++
	return nil
}

// Version increments on every render; viewers use it to bust caches.
func (c *Canvas) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Snapshot returns a copy of the current raster.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

// WritePNG encodes the current raster as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Snapshot())
}
