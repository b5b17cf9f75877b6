package render

import (
	"math"

	"quelea/pkg/environment"

	"github.com/go-gl/mathgl/mgl64"
)

// Projection maps the XY plane of a world box onto a W x H pixel grid, looking
// down the Z axis. Y grows downwards on screen.
type Projection struct {
	Min, Max mgl64.Vec3
	W, H     int
}

// NewProjection fits box into a w x h grid.
func NewProjection(box environment.Box, w, h int) Projection {
	return Projection{Min: box.Min, Max: box.Max, W: w, H: h}
}

func (p Projection) span() (float64, float64) {
	sx := p.Max.X() - p.Min.X()
	sy := p.Max.Y() - p.Min.Y()
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	return sx, sy
}

// Point returns the fractional pixel position of v.
func (p Projection) Point(v mgl64.Vec3) (float64, float64) {
	sx, sy := p.span()
	x := (v.X() - p.Min.X()) / sx * float64(p.W)
	y := (p.Max.Y() - v.Y()) / sy * float64(p.H)
	return x, y
}

// Cell returns the grid cell containing v, and false when v projects outside
// the grid.
func (p Projection) Cell(v mgl64.Vec3) (int, int, bool) {
	fx, fy := p.Point(v)
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, 0, false
	}
	x, y := int(math.Floor(fx)), int(math.Floor(fy))
	if x < 0 || x >= p.W || y < 0 || y >= p.H {
		return x, y, false
	}
	return x, y, true
}

// Length converts a world distance along X into pixels.
func (p Projection) Length(d float64) float64 {
	sx, _ := p.span()
	return d / sx * float64(p.W)
}
