package core

// ByteGrid stores a 2D grid of saturating byte counters in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell.
func (g *ByteGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Add raises cell (x, y) by v, saturating at 255. Out-of-range coordinates
// are ignored.
func (g *ByteGrid) Add(x, y int, v uint8) {
	if !g.InBounds(x, y) {
		return
	}
	i := g.Index(x, y)
	if sum := int(g.data[i]) + int(v); sum > 255 {
		g.data[i] = 255
	} else {
		g.data[i] = uint8(sum)
	}
}

// Fade lowers every cell by v, stopping at zero.
func (g *ByteGrid) Fade(v uint8) {
	for i, c := range g.data {
		if c > v {
			g.data[i] = c - v
		} else {
			g.data[i] = 0
		}
	}
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
