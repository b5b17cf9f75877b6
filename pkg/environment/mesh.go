package environment

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// region identifies which Voronoi feature of a triangle a closest point falls in.
type region uint8

const (
	regionFace region = iota
	regionEdgeAB
	regionEdgeBC
	regionEdgeCA
	regionVertexA
	regionVertexB
	regionVertexC
)

type triangle struct {
	idx    [3]int
	normal mgl64.Vec3
	bounds Box
	// naked marks the AB, BC and CA edges that belong to no other triangle.
	naked [3]bool
}

type edgeKey struct{ lo, hi int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

// Mesh is an indexed triangle surface. It is immutable after construction and
// safe for concurrent queries.
type Mesh struct {
	vertices []mgl64.Vec3
	tris     []triangle
	naked    []Edge
	bounds   Box
}

// NewMesh builds a Mesh from vertices and triangle index triples. Zero-area
// triangles are dropped. An edge referenced by exactly one remaining triangle
// is reported as a naked boundary edge.
func NewMesh(vertices []mgl64.Vec3, faces [][3]int) (*Mesh, error) {
	m := &Mesh{
		vertices: append([]mgl64.Vec3(nil), vertices...),
		bounds:   EmptyBox(),
	}
	for fi, f := range faces {
		for _, i := range f {
			if i < 0 || i >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0,%d)", fi, i, len(vertices))
			}
		}
		a, b, c := vertices[f[0]], vertices[f[1]], vertices[f[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		l := n.Len()
		if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			continue
		}
		bounds := EmptyBox().Extend(a).Extend(b).Extend(c)
		m.tris = append(m.tris, triangle{idx: f, normal: n.Mul(1 / l), bounds: bounds})
		m.bounds = m.bounds.Extend(a).Extend(b).Extend(c)
	}

	uses := make(map[edgeKey]int, len(m.tris)*3)
	for _, t := range m.tris {
		for k := 0; k < 3; k++ {
			uses[makeEdgeKey(t.idx[k], t.idx[(k+1)%3])]++
		}
	}
	for ti := range m.tris {
		t := &m.tris[ti]
		for k := 0; k < 3; k++ {
			a, b := t.idx[k], t.idx[(k+1)%3]
			if uses[makeEdgeKey(a, b)] == 1 {
				t.naked[k] = true
				m.naked = append(m.naked, Edge{A: m.vertices[a], B: m.vertices[b]})
			}
		}
	}
	return m, nil
}

// TriangleCount returns the number of non-degenerate triangles.
func (m *Mesh) TriangleCount() int { return len(m.tris) }

// BoundaryEdges returns the naked edges of the mesh.
func (m *Mesh) BoundaryEdges() []Edge { return m.naked }

// BoundingBox returns the bounds of all triangles.
func (m *Mesh) BoundingBox() Box { return m.bounds }

// ClosestPointOnEdge returns the clamped projection of p onto e.
func (m *Mesh) ClosestPointOnEdge(e Edge, p mgl64.Vec3) (mgl64.Vec3, bool) {
	return ClosestPointOnSegment(e, p)
}

// ClosestSurfacePoint scans every triangle whose bounds lie within
// searchRadius of p and returns the nearest surface point.
func (m *Mesh) ClosestSurfacePoint(p mgl64.Vec3, searchRadius float64) (SurfaceHit, bool) {
	if len(m.tris) == 0 || !(searchRadius >= 0) {
		return SurfaceHit{}, false
	}
	r2 := searchRadius * searchRadius
	best := math.Inf(1)
	var hit SurfaceHit
	found := false
	for i := range m.tris {
		t := &m.tris[i]
		if t.bounds.DistanceSqr(p) > r2 {
			continue
		}
		a, b, c := m.vertices[t.idx[0]], m.vertices[t.idx[1]], m.vertices[t.idx[2]]
		q, reg := closestOnTriangle(p, a, b, c)
		d := q.Sub(p)
		d2 := d.Dot(d)
		if d2 > r2 || d2 >= best {
			continue
		}
		best = d2
		found = true
		hit = SurfaceHit{Point: q, Normal: t.normal, Face: !t.onNakedFeature(reg)}
	}
	return hit, found
}

func (t *triangle) onNakedFeature(reg region) bool {
	switch reg {
	case regionEdgeAB:
		return t.naked[0]
	case regionEdgeBC:
		return t.naked[1]
	case regionEdgeCA:
		return t.naked[2]
	case regionVertexA:
		return t.naked[2] || t.naked[0]
	case regionVertexB:
		return t.naked[0] || t.naked[1]
	case regionVertexC:
		return t.naked[1] || t.naked[2]
	default:
		return false
	}
}

// closestOnTriangle finds the point of triangle abc nearest to p by walking
// the vertex, edge and face Voronoi regions.
func closestOnTriangle(p, a, b, c mgl64.Vec3) (mgl64.Vec3, region) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a, regionVertexA
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b, regionVertexB
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v)), regionEdgeAB
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c, regionVertexC
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w)), regionEdgeCA
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w)), regionEdgeBC
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w)), regionFace
}
