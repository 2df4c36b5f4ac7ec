package core

import "fmt"

// FloatGrid stores a 2D grid of scalar cell values in row-major order.
type FloatGrid struct {
	W, H int
	data []float64
}

// NewFloatGrid allocates a zeroed grid with the given dimensions. Non-positive
// dimensions are a programming error.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("core.NewFloatGrid: invalid size %dx%d", w, h))
	}
	return &FloatGrid{W: w, H: h, data: make([]float64, w*h)}
}

// FloatGridFromRows copies row-major rows into a new grid. All rows must have
// the same length.
func FloatGridFromRows(rows [][]float64) *FloatGrid {
	if len(rows) == 0 {
		panic("core.FloatGridFromRows: no rows")
	}
	g := NewFloatGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.W {
			panic(fmt.Sprintf("core.FloatGridFromRows: row %d has %d cells, want %d", y, len(row), g.W))
		}
		copy(g.data[y*g.W:(y+1)*g.W], row)
	}
	return g
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value at (x, y).
func (g *FloatGrid) At(x, y int) float64 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *FloatGrid) Set(x, y int, v float64) { g.data[y*g.W+x] = v }

// Add accumulates v into (x, y).
func (g *FloatGrid) Add(x, y int, v float64) { g.data[y*g.W+x] += v }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *FloatGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// Clone returns a deep copy of the grid.
func (g *FloatGrid) Clone() *FloatGrid {
	out := &FloatGrid{W: g.W, H: g.H, data: make([]float64, len(g.data))}
	copy(out.data, g.data)
	return out
}
