package render

import "image/color"

// fillRampRGBA converts cell values into RGBA pixels by blending linearly from
// lo (value 0) to hi (value 255).
func fillRampRGBA(buf []byte, cells []uint8, lo, hi color.RGBA) {
	for i, c := range cells {
		base := i * 4
		t := int(c)
		buf[base+0] = lerp8(lo.R, hi.R, t)
		buf[base+1] = lerp8(lo.G, hi.G, t)
		buf[base+2] = lerp8(lo.B, hi.B, t)
		buf[base+3] = lerp8(lo.A, hi.A, t)
	}
}

func lerp8(a, b uint8, t int) uint8 {
	return uint8((int(a)*(255-t) + int(b)*t) / 255)
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// HeatPalette returns a 256-entry ramp from black through blue to white, used
// for particle footprints.
func HeatPalette() []color.RGBA {
	p := make([]color.RGBA, 256)
	for i := range p {
		switch {
		case i < 128:
			p[i] = color.RGBA{R: 0, G: uint8(i / 4), B: uint8(i * 2), A: 255}
		default:
			t := i - 128
			p[i] = color.RGBA{R: uint8(t * 2), G: uint8(32 + t*223/127), B: 255, A: 255}
		}
	}
	return p
}
