package world

import (
	"math"
	"sort"

	"archipelago/internal/core"
)

// ChunkSize is the edge length of one chunk in world units.
const ChunkSize = 128

// ChunkIndex identifies one cell of the chunk grid.
type ChunkIndex struct {
	X, Y int
}

// ChunkAt returns the index of the chunk containing p.
func ChunkAt(p core.Vec) ChunkIndex {
	return ChunkIndex{X: int(math.Floor(p.X / ChunkSize)), Y: int(math.Floor(p.Y / ChunkSize))}
}

// Origin returns the chunk's minimum world corner.
func (c ChunkIndex) Origin() core.Vec {
	return core.Vec{X: float64(c.X) * ChunkSize, Y: float64(c.Y) * ChunkSize}
}

// Center returns the chunk's midpoint in world space.
func (c ChunkIndex) Center() core.Vec {
	return c.Origin().Add(core.Vec{X: ChunkSize / 2, Y: ChunkSize / 2})
}

// Footprint returns the world rectangle covered by the chunk.
func (c ChunkIndex) Footprint() core.Rect {
	return core.RectAt(c.Origin(), ChunkSize, ChunkSize)
}

// Chunk marks a chunk region as visited. It carries no payload.
type Chunk struct{}

// ChunkMap is the sparse occupancy index of visited chunks.
type ChunkMap map[ChunkIndex]Chunk

// Contains reports whether idx is registered.
func (m ChunkMap) Contains(idx ChunkIndex) bool {
	_, ok := m[idx]
	return ok
}

// Register inserts idx and reports whether it was new.
func (m ChunkMap) Register(idx ChunkIndex) bool {
	if _, ok := m[idx]; ok {
		return false
	}
	m[idx] = Chunk{}
	return true
}

// Bounds returns the tightest rectangle covering every footprint, or the zero
// rectangle when the map is empty.
func (m ChunkMap) Bounds() core.Rect {
	if len(m) == 0 {
		return core.Rect{}
	}
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for idx := range m {
		minX = min(minX, idx.X)
		minY = min(minY, idx.Y)
		maxX = max(maxX, idx.X)
		maxY = max(maxY, idx.Y)
	}
	return core.Rect{
		Min: ChunkIndex{X: minX, Y: minY}.Origin(),
		Max: ChunkIndex{X: maxX + 1, Y: maxY + 1}.Origin(),
	}
}

// Sorted returns the registered indices ordered by X then Y.
func (m ChunkMap) Sorted() []ChunkIndex {
	out := make([]ChunkIndex, 0, len(m))
	for idx := range m {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

// ChunkSpan returns the half-open index range [lo, hi) of chunks touched by r.
func ChunkSpan(r core.Rect) (lo, hi ChunkIndex) {
	lo = ChunkIndex{
		X: int(math.Floor(r.Min.X / ChunkSize)),
		Y: int(math.Floor(r.Min.Y / ChunkSize)),
	}
	hi = ChunkIndex{
		X: int(math.Ceil(r.Max.X / ChunkSize)),
		Y: int(math.Ceil(r.Max.Y / ChunkSize)),
	}
	return lo, hi
}

// VisibleChunks lists every chunk index overlapping a visible world area in
// raster order (X outer, Y inner).
func VisibleChunks(visible core.Rect) []ChunkIndex {
	lo, hi := ChunkSpan(visible)
	var out []ChunkIndex
	for x := lo.X; x < hi.X; x++ {
		for y := lo.Y; y < hi.Y; y++ {
			out = append(out, ChunkIndex{X: x, Y: y})
		}
	}
	return out
}
