package world

import "archipelago/internal/core"

// MissingChunks lists the chunks overlapping visible that have not been
// visited yet, in raster order.
func (w *World) MissingChunks(visible core.Rect) []ChunkIndex {
	var out []ChunkIndex
	for _, idx := range VisibleChunks(visible) {
		if !w.chunks.Contains(idx) {
			out = append(out, idx)
		}
	}
	return out
}

// Explore generates every chunk overlapping visible that is still missing.
// Chunks registered by an island placed earlier in the same pass are skipped.
// It returns the number of EnsureChunkGenerated calls made.
func (w *World) Explore(visible core.Rect) int {
	n := 0
	for _, idx := range w.MissingChunks(visible) {
		if w.chunks.Contains(idx) {
			continue
		}
		w.EnsureChunkGenerated(idx)
		n++
	}
	return n
}

// ViewRect returns the world rectangle of the given size centered on the
// anchor.
func (w *World) ViewRect(width, height float64) core.Rect {
	return core.RectAt(w.anchor.Sub(core.Vec{X: width / 2, Y: height / 2}), width, height)
}
