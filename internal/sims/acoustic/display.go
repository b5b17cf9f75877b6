package acoustic

import (
	"image/color"

	"quelea/internal/render"
)

var footprintPalette = render.HeatPalette()

// Palette exposes the color ramp used for the footprint.
func (w *World) Palette() []color.RGBA {
	return footprintPalette
}
