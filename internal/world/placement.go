package world

import (
	"archipelago/internal/core"
	"archipelago/internal/island"
)

// place resolves conflicts between an island and the registered chunk
// footprints. When the island's rectangle overlaps a footprint it searches
// offsets in [-r, r]^2, X outer and Y inner, and shifts the island by the
// first offset that clears every footprint. It reports false when no offset
// works.
func (w *World) place(is *island.Island) bool {
	radius := w.cfg.Params.SearchRadius
	footprints := w.footprintsNear(is.Rect.Inflate(float64(radius)))
	if !overlapsAny(is.Rect, footprints) {
		return true
	}
	offset, ok := searchOffset(is.Rect, footprints, radius)
	if !ok {
		return false
	}
	is.Shift(offset)
	w.stats.Shifted++
	w.log.Debug("island shifted", "dx", offset.X, "dy", offset.Y)
	return true
}

// footprintsNear collects the footprints of registered chunks that intersect
// area. Footprints outside area cannot touch any candidate in the search.
func (w *World) footprintsNear(area core.Rect) []core.Rect {
	var out []core.Rect
	for idx := range w.chunks {
		fp := idx.Footprint()
		if fp.Intersects(area) {
			out = append(out, fp)
		}
	}
	return out
}

func searchOffset(r core.Rect, footprints []core.Rect, radius int) (core.Vec, bool) {
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			offset := core.Vec{X: float64(dx), Y: float64(dy)}
			if !overlapsAny(r.Shift(offset), footprints) {
				return offset, true
			}
		}
	}
	return core.Vec{}, false
}

func overlapsAny(r core.Rect, footprints []core.Rect) bool {
	for _, fp := range footprints {
		if r.Intersects(fp) {
			return true
		}
	}
	return false
}
