// Package acoustic wraps the particle engine as a viewer simulation. The room
// is seen from above and Cells holds a fading footprint of particle positions.
package acoustic

import (
	"math"

	"quelea/internal/core"
	"quelea/internal/render"
	"quelea/pkg/acoustics"
	prng "quelea/pkg/core"
	"quelea/pkg/environment"

	"github.com/go-gl/mathgl/mgl64"
)

// World is a shoebox room with one emitter and a ring of receivers.
type World struct {
	cfg Config

	env       *environment.Mesh
	emitter   acoustics.Emitter
	receivers []acoustics.Receiver
	sim       *acoustics.Simulation
	proj      render.Projection

	particles []*acoustics.Particle
	last      acoustics.TickResult
	hits      []int
	tick      int
	emissions int

	footprint *core.ByteGrid
	rng       *prng.RNG
}

// New returns a world with the provided footprint dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options. Call
// Reset before stepping.
func NewWithConfig(cfg Config) *World {
	w := &World{
		cfg:       cfg,
		footprint: core.NewByteGrid(cfg.Width, cfg.Height),
		rng:       prng.NewRNG(cfg.Seed),
	}
	w.rebuild()
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "acoustic" }

// Size reports the footprint dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.footprint.W, H: w.footprint.H} }

// Cells exposes the footprint buffer.
func (w *World) Cells() []uint8 { return w.footprint.Cells() }

// Particles exposes the live population.
func (w *World) Particles() []*acoustics.Particle { return w.particles }

// Receivers exposes the receiver ring.
func (w *World) Receivers() []acoustics.Receiver { return w.receivers }

// LastResult returns the outcome of the most recent Step.
func (w *World) LastResult() acoustics.TickResult { return w.last }

// RunHits returns hits per receiver since the last Reset.
func (w *World) RunHits() []int { return w.hits }

// Projection maps room coordinates into footprint cells.
func (w *World) Projection() render.Projection { return w.proj }

// Tick returns the number of steps since the last Reset.
func (w *World) Tick() int { return w.tick }

// Reset emits a fresh population using deterministic randomness.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = prng.NewRNG(effective)
	w.rebuild()
	w.footprint.Clear()
	w.tick = 0
	w.emissions = 0
	w.last = acoustics.TickResult{}
	w.hits = make([]int, len(w.receivers))
	w.emit()
}

func (w *World) emit() {
	w.particles = w.emitter.Emit(w.rng)
	w.emissions++
}

// Step advances every particle one tick. An extinct population is re-emitted
// when looping is enabled.
func (w *World) Step() {
	w.footprint.Fade(uint8(min(w.cfg.Params.Fade, 255)))
	if len(w.particles) == 0 {
		if !w.cfg.Params.Loop {
			return
		}
		w.emit()
	}
	res := w.sim.Step(w.particles)
	w.particles = res.Survivors
	w.last = res
	w.tick++
	for i, h := range res.TickHits {
		if i < len(w.hits) {
			w.hits[i] += h
		}
	}
	splat := uint8(min(w.cfg.Params.Splat, 255))
	for _, p := range w.particles {
		if x, y, ok := w.proj.Cell(p.Position); ok {
			w.footprint.Add(x, y, splat)
		}
	}
}

// rebuild derives geometry, emitter and receivers from the config. The live
// population is kept.
func (w *World) rebuild() {
	p := w.cfg.Params
	lo := mgl64.Vec3{-p.RoomWidth / 2, -p.RoomDepth / 2, 0}
	hi := mgl64.Vec3{p.RoomWidth / 2, p.RoomDepth / 2, p.RoomHeight}
	if p.OpenCeiling {
		w.env = environment.NewOpenRoom(lo, hi)
	} else {
		w.env = environment.NewRoom(lo, hi)
	}
	mode := acoustics.Isotropic
	if p.Cone {
		mode = acoustics.Cone
	}
	w.emitter = acoustics.Emitter{
		Origin:     mgl64.Vec3{0, 0, p.EmitterHeight},
		Frequency:  p.Frequency,
		Count:      p.Count,
		MaxBounces: p.MaxBounces,
		Mode:       mode,
		ConeAngle:  mgl64.DegToRad(p.ConeAngle),
		RotationX:  mgl64.DegToRad(p.RotationX),
		RotationY:  mgl64.DegToRad(p.RotationY),
		Speed:      p.Speed,
	}
	w.receivers = receiverRing(p)
	if len(w.hits) != len(w.receivers) {
		hits := make([]int, len(w.receivers))
		copy(hits, w.hits)
		w.hits = hits
	}
	w.sim = acoustics.NewSimulation(w.env, w.receivers)
	w.sim.Workers = p.Workers
	w.proj = render.NewProjection(w.env.BoundingBox(), w.footprint.W, w.footprint.H)
}

// receiverRing spaces receivers evenly on a floor circle around the source.
func receiverRing(p Params) []acoustics.Receiver {
	dist := p.ReceiverRing * math.Min(p.RoomWidth, p.RoomDepth) / 2
	out := make([]acoustics.Receiver, 0, p.Receivers)
	for i := 0; i < p.Receivers; i++ {
		a := 2 * math.Pi * float64(i) / float64(p.Receivers)
		base := mgl64.Vec3{dist * math.Cos(a), dist * math.Sin(a), 0}
		out = append(out, acoustics.NewReceiver(base, p.ReceiverRadius, p.ReceiverHeight))
	}
	return out
}

func init() {
	core.Register("acoustic", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
