//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a cell buffer into a texture and draws it scaled.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a w x h grid.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:   w,
		h:   h,
		img: ebiten.NewImage(w, h),
		buf: make([]byte, w*h*4),
	}
}

// Blit draws cells onto screen. A nil palette blends from off to on by cell
// value.
func (p *GridPainter) Blit(screen *ebiten.Image, cells []uint8, palette []color.RGBA, on, off color.RGBA, scale int) {
	if len(cells) != p.w*p.h {
		return
	}
	if palette != nil {
		fillPaletteRGBA(p.buf, cells, palette)
	} else {
		fillRampRGBA(p.buf, cells, off, on)
	}
	p.img.WritePixels(p.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
