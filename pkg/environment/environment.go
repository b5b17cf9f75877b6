// Package environment describes the boundary geometry that sound particles
// travel through and the closest-point queries the particle engine relies on.
//
// The engine only sees the Environment interface. Mesh is the bundled backend:
// an indexed triangle surface, either built from one of the room helpers or
// loaded from a Wavefront OBJ file.
package environment

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SurfaceHit is the result of a closest-point query against the boundary surface.
type SurfaceHit struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3

	// Face is false when the closest point sits on a naked edge of the surface
	// rather than inside a face region.
	Face bool
}

// Edge is a straight boundary segment between two points.
type Edge struct {
	A, B mgl64.Vec3
}

// Length returns the edge length.
func (e Edge) Length() float64 { return e.B.Sub(e.A).Len() }

// Environment exposes the geometric queries used by the particle update.
// Implementations must be safe for concurrent readers.
type Environment interface {
	// ClosestSurfacePoint returns the closest surface point to p within
	// searchRadius. The boolean is false when nothing lies within range.
	ClosestSurfacePoint(p mgl64.Vec3, searchRadius float64) (SurfaceHit, bool)

	// BoundaryEdges lists the naked edges of the surface.
	BoundaryEdges() []Edge

	// ClosestPointOnEdge returns the closest point on e to p. The boolean is
	// false for zero-length edges.
	ClosestPointOnEdge(e Edge, p mgl64.Vec3) (mgl64.Vec3, bool)

	// BoundingBox returns the axis-aligned bounds of the surface.
	BoundingBox() Box
}

// ClosestPointOnSegment projects p onto the segment and clamps the parameter to
// [0, 1]. It reports false when the segment has zero length.
func ClosestPointOnSegment(e Edge, p mgl64.Vec3) (mgl64.Vec3, bool) {
	d := e.B.Sub(e.A)
	l2 := d.Dot(d)
	if l2 == 0 || math.IsNaN(l2) || math.IsInf(l2, 0) {
		return e.A, false
	}
	t := p.Sub(e.A).Dot(d) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return e.A.Add(d.Mul(t)), true
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max mgl64.Vec3
}

// EmptyBox returns an inverted box that any Extend call will overwrite.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// Valid reports whether Min <= Max on every axis.
func (b Box) Valid() bool {
	for i := 0; i < 3; i++ {
		if !(b.Min[i] <= b.Max[i]) {
			return false
		}
	}
	return true
}

// Extend grows the box to include p.
func (b Box) Extend(p mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Expand pads the box by d on every side.
func (b Box) Expand(d float64) Box {
	pad := mgl64.Vec3{d, d, d}
	return Box{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Contains reports whether p lies inside the box, boundary included.
func (b Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Size returns the box extent per axis.
func (b Box) Size() mgl64.Vec3 { return b.Max.Sub(b.Min) }

// Center returns the box midpoint.
func (b Box) Center() mgl64.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// DistanceSqr returns the squared distance from p to the box, zero inside.
func (b Box) DistanceSqr(p mgl64.Vec3) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		switch {
		case p[i] < b.Min[i]:
			d := b.Min[i] - p[i]
			sum += d * d
		case p[i] > b.Max[i]:
			d := p[i] - b.Max[i]
			sum += d * d
		}
	}
	return sum
}
