package acoustics

import (
	"math"

	"quelea/pkg/core"

	"github.com/go-gl/mathgl/mgl64"
)

// EmissionMode selects how initial directions are drawn.
type EmissionMode int

const (
	// Isotropic draws directions uniformly over the sphere.
	Isotropic EmissionMode = iota
	// Cone draws directions inside a cone around a rotated axis.
	Cone
)

// String returns the config name of the mode.
func (m EmissionMode) String() string {
	switch m {
	case Isotropic:
		return "isotropic"
	case Cone:
		return "cone"
	default:
		return "unknown"
	}
}

// DefaultSpeed is the per-tick speed of emitted particles.
const DefaultSpeed = 2.0

// Up is the canonical emission axis.
var Up = mgl64.Vec3{0, 0, 1}

// Emitter describes a point source. Angles are in radians.
type Emitter struct {
	Origin     mgl64.Vec3
	Frequency  float64
	Count      int
	MaxBounces int

	Mode EmissionMode
	// ConeAngle is the half-angle of the emission cone.
	ConeAngle float64
	// RotationX and RotationY tilt the cone axis away from Up, applied about
	// X first and then about Y.
	RotationX float64
	RotationY float64

	// Speed scales every emitted direction. Zero means DefaultSpeed.
	Speed float64
}

// DefaultEmitter returns an isotropic 440 Hz source at the origin.
func DefaultEmitter() Emitter {
	return Emitter{
		Frequency:  440,
		Count:      100,
		MaxBounces: 10,
		Mode:       Isotropic,
		ConeAngle:  math.Pi / 6,
		Speed:      DefaultSpeed,
	}
}

// Emit creates Count fresh particles drawing directions from rng.
func (e Emitter) Emit(rng *core.RNG) []*Particle {
	if e.Count <= 0 {
		return nil
	}
	speed := e.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}
	center := e.Axis()
	particles := make([]*Particle, 0, e.Count)
	for i := 0; i < e.Count; i++ {
		var dir mgl64.Vec3
		switch e.Mode {
		case Cone:
			dir = ConeDirection(rng, center, e.ConeAngle)
		default:
			dir = RandomDirection(rng)
		}
		particles = append(particles, NewParticle(e.Origin, dir.Mul(speed), e.Frequency, e.MaxBounces))
	}
	return particles
}

// Axis returns the cone center direction: Up rotated about X, then about Y.
func (e Emitter) Axis() mgl64.Vec3 {
	rx := mgl64.Rotate3DX(e.RotationX)
	ry := mgl64.Rotate3DY(e.RotationY)
	return ry.Mul3x1(rx.Mul3x1(Up))
}

// RandomDirection draws a unit vector by sampling the [-1,1] cube and
// retrying on the zero vector.
func RandomDirection(rng *core.RNG) mgl64.Vec3 {
	for {
		v := mgl64.Vec3{rng.Range(-1, 1), rng.Range(-1, 1), rng.Range(-1, 1)}
		if u, ok := unit(v); ok {
			return u
		}
	}
}

// ConeDirection draws a unit vector whose angle to center is at most
// halfAngle. A degenerate center falls back to Up.
func ConeDirection(rng *core.RNG, center mgl64.Vec3, halfAngle float64) mgl64.Vec3 {
	w, ok := unit(center)
	if !ok {
		w = Up
	}
	theta := rng.Range(0, halfAngle)
	phi := rng.Range(0, 2*math.Pi)
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)
	u, v := basis(w)
	return u.Mul(sinT * cosP).Add(v.Mul(sinT * sinP)).Add(w.Mul(cosT))
}

// basis returns two unit vectors that complete w into a right-handed
// orthonormal frame (u, v, w). For w == Up it returns the X and Y axes.
func basis(w mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	helper := mgl64.Vec3{0, 1, 0}
	if math.Abs(w.Y()) > 0.9 {
		helper = mgl64.Vec3{1, 0, 0}
	}
	u, _ := unit(helper.Cross(w))
	v := w.Cross(u)
	return u, v
}
