//go:build ebiten

package ui

import (
	"quelea/internal/core"
	"quelea/internal/render"
	"quelea/pkg/acoustics"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type sceneProvider interface {
	Projection() render.Projection
	Particles() []*acoustics.Particle
	Receivers() []acoustics.Receiver
	LastResult() acoustics.TickResult
}

// Overlay draws particles, paths and receivers over the footprint. Keys 1-3
// toggle each layer.
type Overlay struct {
	sim   core.Sim
	scale int

	showParticles bool
	showPaths     bool
	showReceivers bool
}

// NewOverlay constructs an overlay with particles and receivers visible.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, showParticles: true, showReceivers: true}
}

// Update toggles layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showParticles = !o.showParticles
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showPaths = !o.showPaths
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showReceivers = !o.showReceivers
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	scene, ok := o.sim.(sceneProvider)
	if !ok {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	proj := scene.Projection()
	last := scene.LastResult()
	if o.showPaths {
		render.DrawPaths(screen, proj, last.Paths, scale)
	}
	if o.showParticles {
		render.DrawParticles(screen, proj, scene.Particles(), scale)
	}
	if o.showReceivers {
		render.DrawReceivers(screen, proj, scene.Receivers(), last.TickHits, scale)
	}
}
