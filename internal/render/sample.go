package render

import (
	"image/color"

	"archipelago/internal/core"
	"archipelago/internal/island"
	"archipelago/internal/world"
)

// Sample describes what lies at one world position.
type Sample struct {
	// Known is false when the chunk under the position was never visited.
	Known bool
	// Land is true when an island tile covers the position.
	Land   bool
	Band   island.Band
	Height float64
}

// SampleAt inspects src at p.
func SampleAt(src MapSource, p core.Vec) Sample {
	s := Sample{Known: src.Contains(world.ChunkAt(p)), Band: island.BandWater}
	for _, is := range src.Islands() {
		t, ok := is.TileAt(p)
		if !ok {
			continue
		}
		s.Height = t.Height
		s.Band = island.Classify(t.Height)
		s.Land = s.Band != island.BandWater
		break
	}
	return s
}

// Glyph returns the character and foreground colour a character-cell
// renderer uses for s. Unvisited space is blank.
func Glyph(s Sample) (rune, color.RGBA) {
	if !s.Known && !s.Land {
		return ' ', color.RGBA{}
	}
	switch s.Band {
	case island.BandShore:
		return '.', BandColor(s.Band)
	case island.BandLowland:
		return '"', BandColor(s.Band)
	case island.BandHighland:
		return '^', BandColor(s.Band)
	default:
		return '~', BandColor(island.BandWater)
	}
}

// Project maps a world position into screen space for a view rectangle drawn
// at zoom screen pixels per world unit.
func Project(view core.Rect, zoom float64, p core.Vec) (float64, float64) {
	return (p.X - view.Min.X) * zoom, (p.Y - view.Min.Y) * zoom
}
