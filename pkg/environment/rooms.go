package environment

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewRoom returns a closed shoebox between the two corners. A closed room has
// no naked edges.
func NewRoom(min, max mgl64.Vec3) *Mesh {
	return mustMesh(boxVertices(min, max), append(boxWalls(), boxFloor...))
}

// NewOpenRoom returns a shoebox without a ceiling. The four rim edges of the
// walls are naked.
func NewOpenRoom(min, max mgl64.Vec3) *Mesh {
	faces := append(boxWalls(), boxFloor[:2]...)
	return mustMesh(boxVertices(min, max), faces)
}

// NewPlane returns a horizontal square of the given side length centered at
// center. All four sides are naked edges.
func NewPlane(center mgl64.Vec3, size float64) *Mesh {
	h := math.Abs(size) / 2
	z := center.Z()
	vertices := []mgl64.Vec3{
		{center.X() - h, center.Y() - h, z},
		{center.X() + h, center.Y() - h, z},
		{center.X() + h, center.Y() + h, z},
		{center.X() - h, center.Y() + h, z},
	}
	return mustMesh(vertices, [][3]int{{0, 1, 2}, {0, 2, 3}})
}

// boxFloor holds the floor pair followed by the ceiling pair.
var boxFloor = [][3]int{
	{0, 2, 1}, {0, 3, 2},
	{4, 5, 6}, {4, 6, 7},
}

func boxWalls() [][3]int {
	return [][3]int{
		{0, 1, 5}, {0, 5, 4},
		{1, 2, 6}, {1, 6, 5},
		{2, 3, 7}, {2, 7, 6},
		{3, 0, 4}, {3, 4, 7},
	}
}

func boxVertices(min, max mgl64.Vec3) []mgl64.Vec3 {
	for i := 0; i < 3; i++ {
		if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
	}
	x0, y0, z0 := min.X(), min.Y(), min.Z()
	x1, y1, z1 := max.X(), max.Y(), max.Z()
	return []mgl64.Vec3{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0},
		{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1},
	}
}

func mustMesh(vertices []mgl64.Vec3, faces [][3]int) *Mesh {
	m, err := NewMesh(vertices, faces)
	if err != nil {
		panic(err)
	}
	return m
}
