//go:build ebiten

package render

import (
	"image/color"

	"quelea/pkg/acoustics"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	receiverColor = color.RGBA{R: 80, G: 230, B: 120, A: 255}
	hitColor      = color.RGBA{R: 255, G: 220, B: 60, A: 255}
	pathColor     = color.RGBA{R: 120, G: 140, B: 255, A: 160}
)

// DrawPaths strokes the movement segments of the last tick.
func DrawPaths(screen *ebiten.Image, proj Projection, paths []acoustics.Segment, scale int) {
	s := float64(scale)
	for _, seg := range paths {
		x0, y0 := proj.Point(seg.Start)
		x1, y1 := proj.Point(seg.End)
		vector.StrokeLine(screen, float32(x0*s), float32(y0*s), float32(x1*s), float32(y1*s), 1, pathColor, false)
	}
}

// DrawParticles plots live particles as small dots.
func DrawParticles(screen *ebiten.Image, proj Projection, particles []*acoustics.Particle, scale int) {
	s := float64(scale)
	for _, p := range particles {
		x, y := proj.Point(p.Position)
		vector.DrawFilledCircle(screen, float32(x*s), float32(y*s), 1.5, p.Color(), false)
	}
}

// DrawReceivers outlines each receiver footprint. Receivers with hits this
// tick are highlighted.
func DrawReceivers(screen *ebiten.Image, proj Projection, receivers []acoustics.Receiver, hits []int, scale int) {
	s := float64(scale)
	for i, r := range receivers {
		x, y := proj.Point(r.BaseCenter)
		radius := proj.Length(r.Radius) * s
		clr := receiverColor
		if i < len(hits) && hits[i] > 0 {
			clr = hitColor
		}
		vector.StrokeCircle(screen, float32(x*s), float32(y*s), float32(radius), 2, clr, true)
	}
}
