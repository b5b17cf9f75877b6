package acoustics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Receiver is an upright cylinder that detects particles. The cylinder spans
// BaseCenter.Z to BaseCenter.Z+Height.
type Receiver struct {
	BaseCenter mgl64.Vec3
	Radius     float64
	Height     float64
}

// NewReceiver returns a receiver. Radius and height are not range checked.
func NewReceiver(baseCenter mgl64.Vec3, radius, height float64) Receiver {
	return Receiver{BaseCenter: baseCenter, Radius: radius, Height: height}
}

// IsParticleInside reports whether p lies inside the cylinder. Both caps and
// the side wall count as inside.
func (r Receiver) IsParticleInside(p mgl64.Vec3) bool {
	dz := p.Z() - r.BaseCenter.Z()
	if dz < 0 || dz > r.Height {
		return false
	}
	return math.Hypot(p.X()-r.BaseCenter.X(), p.Y()-r.BaseCenter.Y()) <= r.Radius
}

// Top returns the center of the upper cap.
func (r Receiver) Top() mgl64.Vec3 {
	return r.BaseCenter.Add(mgl64.Vec3{0, 0, r.Height})
}
