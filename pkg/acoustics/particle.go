package acoustics

import (
	"image/color"
	"math"

	"quelea/pkg/environment"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// InitialIntensity is the intensity of a freshly emitted particle.
	InitialIntensity = 1.0
	// InitialLifespan is the number of ticks a particle lives at most.
	InitialLifespan = 200

	decayPerTick        = 0.005
	surfaceSearchRadius = 1.0
	collisionThreshold  = 0.5
	reflectionLoss      = 0.9
	edgeAvoidRadius     = 0.3
	edgeSteerStrength   = 0.5

	colorStep = 25
)

// Particle is a single ray of acoustic energy.
type Particle struct {
	Position mgl64.Vec3
	// Velocity is the displacement per tick.
	Velocity mgl64.Vec3

	// Frequency is carried as a tag and does not affect motion.
	Frequency float64

	Intensity  float64
	Lifespan   int
	Bounces    int
	MaxBounces int
}

// NewParticle returns a live particle at full intensity and lifespan.
func NewParticle(position, velocity mgl64.Vec3, frequency float64, maxBounces int) *Particle {
	return &Particle{
		Position:   position,
		Velocity:   velocity,
		Frequency:  frequency,
		Intensity:  InitialIntensity,
		Lifespan:   InitialLifespan,
		MaxBounces: maxBounces,
	}
}

// IsAlive reports whether the particle still carries energy and time.
func (p *Particle) IsAlive() bool {
	return p.Intensity > 0 && p.Lifespan > 0
}

// Color returns the display color for the current bounce count. Red rises and
// blue falls by a fixed step per bounce.
func (p *Particle) Color() color.RGBA {
	return BounceColor(p.Bounces)
}

// BounceColor maps a bounce count to its display color.
func BounceColor(bounces int) color.RGBA {
	return color.RGBA{
		R: clampChannel(bounces * colorStep),
		G: 0,
		B: clampChannel(255 - bounces*colorStep),
		A: 255,
	}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Move advances the particle by one tick. With a nil environment the particle
// flies freely and only decays.
func (p *Particle) Move(env environment.Environment) {
	p.Position = p.Position.Add(p.Velocity)
	p.Intensity -= decayPerTick

	if env != nil {
		p.reflect(env)
		p.avoidEdges(env)
		p.contain(env)
	}

	p.Lifespan--
}

func (p *Particle) reflect(env environment.Environment) {
	hit, ok := env.ClosestSurfacePoint(p.Position, surfaceSearchRadius)
	if !ok || !hit.Face {
		return
	}
	if p.Position.Sub(hit.Point).Len() >= collisionThreshold {
		return
	}
	n, ok := unit(hit.Normal)
	if !ok {
		return
	}
	p.Velocity = Reflect(p.Velocity, n)
	p.Intensity *= reflectionLoss
	p.Bounces++
	if p.Bounces >= p.MaxBounces {
		p.Intensity = 0
	}
}

func (p *Particle) avoidEdges(env environment.Environment) {
	for _, e := range env.BoundaryEdges() {
		closest, ok := env.ClosestPointOnEdge(e, p.Position)
		if !ok {
			continue
		}
		away := p.Position.Sub(closest)
		d := away.Len()
		if d >= edgeAvoidRadius || d == 0 || math.IsNaN(d) {
			continue
		}
		p.Velocity = p.Velocity.Add(away.Mul(edgeSteerStrength / d))
	}
}

func (p *Particle) contain(env environment.Environment) {
	box := env.BoundingBox()
	if !box.Valid() {
		return
	}
	for i := 0; i < 3; i++ {
		if p.Position[i] >= box.Max[i] || p.Position[i] <= box.Min[i] {
			p.Velocity[i] = -p.Velocity[i]
		}
	}
}

// Reflect mirrors v about the plane with unit normal n.
func Reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// unit normalizes v, reporting false for zero or non-finite vectors.
func unit(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}
