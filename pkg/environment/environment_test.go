package environment

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestClosedRoomHasNoNakedEdges(t *testing.T) {
	room := NewRoom(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 8, 4})
	if got := room.TriangleCount(); got != 12 {
		t.Fatalf("closed room should have 12 triangles, got %d", got)
	}
	if edges := room.BoundaryEdges(); len(edges) != 0 {
		t.Fatalf("closed room should have no naked edges, got %d", len(edges))
	}
	box := room.BoundingBox()
	if box.Min != (mgl64.Vec3{0, 0, 0}) || box.Max != (mgl64.Vec3{10, 8, 4}) {
		t.Fatalf("unexpected bounds %v", box)
	}
}

func TestOpenRoomRimIsNaked(t *testing.T) {
	room := NewOpenRoom(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 8, 4})
	edges := room.BoundaryEdges()
	if len(edges) != 4 {
		t.Fatalf("open room should have 4 naked edges, got %d", len(edges))
	}
	for _, e := range edges {
		if e.A.Z() != 4 || e.B.Z() != 4 {
			t.Fatalf("naked edge %v should lie on the rim", e)
		}
	}
}

func TestPlaneEdges(t *testing.T) {
	plane := NewPlane(mgl64.Vec3{0, 0, 0}, 4)
	edges := plane.BoundaryEdges()
	if len(edges) != 4 {
		t.Fatalf("plane should have 4 naked edges, got %d", len(edges))
	}
	total := 0.0
	for _, e := range edges {
		total += e.Length()
	}
	if math.Abs(total-16) > 1e-9 {
		t.Fatalf("plane perimeter should be 16, got %f", total)
	}
}

func TestClosestSurfacePointFace(t *testing.T) {
	room := NewRoom(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})
	hit, ok := room.ClosestSurfacePoint(mgl64.Vec3{5, 5, 0.3}, 1)
	if !ok {
		t.Fatal("expected a hit near the floor")
	}
	if !hit.Face {
		t.Fatal("floor interior should be a face region")
	}
	if !hit.Point.ApproxEqual(mgl64.Vec3{5, 5, 0}) {
		t.Fatalf("closest point should be (5,5,0), got %v", hit.Point)
	}
	if math.Abs(math.Abs(hit.Normal.Z())-1) > 1e-9 {
		t.Fatalf("floor normal should be vertical, got %v", hit.Normal)
	}
}

func TestClosestSurfacePointOutOfRange(t *testing.T) {
	room := NewRoom(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})
	if _, ok := room.ClosestSurfacePoint(mgl64.Vec3{5, 5, 5}, 1); ok {
		t.Fatal("room center is farther than the search radius from every wall")
	}
}

func TestClosestSurfacePointNakedEdgeIsNotFace(t *testing.T) {
	plane := NewPlane(mgl64.Vec3{0, 0, 0}, 2)
	hit, ok := plane.ClosestSurfacePoint(mgl64.Vec3{1.2, 0, 0}, 1)
	if !ok {
		t.Fatal("expected a hit beside the plane")
	}
	if hit.Face {
		t.Fatal("closest point on a naked edge should not be a face region")
	}
	if !hit.Point.ApproxEqual(mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("closest point should be (1,0,0), got %v", hit.Point)
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	e := Edge{A: mgl64.Vec3{0, 0, 0}, B: mgl64.Vec3{2, 0, 0}}
	p, ok := ClosestPointOnSegment(e, mgl64.Vec3{1, 3, 0})
	if !ok || !p.ApproxEqual(mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("expected (1,0,0), got %v ok=%v", p, ok)
	}
	p, _ = ClosestPointOnSegment(e, mgl64.Vec3{-5, 1, 0})
	if !p.ApproxEqual(mgl64.Vec3{0, 0, 0}) {
		t.Fatalf("parameter should clamp to the start, got %v", p)
	}
	if _, ok := ClosestPointOnSegment(Edge{}, mgl64.Vec3{1, 1, 1}); ok {
		t.Fatal("zero-length edge should report no closest point")
	}
}

func TestDegenerateTrianglesDropped(t *testing.T) {
	vertices := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	m, err := NewMesh(vertices, [][3]int{{0, 1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 0 {
		t.Fatalf("collinear triangle should be dropped")
	}
	if m.BoundingBox().Valid() {
		t.Fatal("empty mesh should have an invalid bounding box")
	}
	if _, ok := m.ClosestSurfacePoint(mgl64.Vec3{}, 1); ok {
		t.Fatal("empty mesh should never report a hit")
	}
}

func TestNewMeshRejectsBadIndex(t *testing.T) {
	if _, err := NewMesh([]mgl64.Vec3{{0, 0, 0}}, [][3]int{{0, 1, 2}}); err == nil {
		t.Fatal("expected out-of-range index error")
	}
}

func TestReadOBJ(t *testing.T) {
	src := `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1/1/1 2/2/1 3/3/1 -1
`
	m, err := ReadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("quad should fan into 2 triangles, got %d", m.TriangleCount())
	}
	if len(m.BoundaryEdges()) != 4 {
		t.Fatalf("quad should have 4 naked edges, got %d", len(m.BoundaryEdges()))
	}
}

func TestReadOBJErrors(t *testing.T) {
	if _, err := ReadOBJ(strings.NewReader("v 0 0\n")); err == nil {
		t.Fatal("expected short vertex error")
	}
	if _, err := ReadOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 0\n")); err == nil {
		t.Fatal("expected zero index error")
	}
	if _, err := Load("room.stl"); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestBoxHelpers(t *testing.T) {
	b := EmptyBox().Extend(mgl64.Vec3{1, 2, 3}).Extend(mgl64.Vec3{-1, 0, 5})
	if !b.Valid() {
		t.Fatal("extended box should be valid")
	}
	if !b.Contains(mgl64.Vec3{-1, 0, 3}) {
		t.Fatal("corner should be contained")
	}
	if b.Contains(mgl64.Vec3{0, 0, 6}) {
		t.Fatal("point above should be outside")
	}
	if got := b.DistanceSqr(mgl64.Vec3{0, 1, 7}); math.Abs(got-4) > 1e-9 {
		t.Fatalf("expected squared distance 4, got %f", got)
	}
	if c := b.Center(); !c.ApproxEqual(mgl64.Vec3{0, 1, 4}) {
		t.Fatalf("unexpected center %v", c)
	}
}
