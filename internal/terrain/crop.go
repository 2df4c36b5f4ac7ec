package terrain

import (
	"image"

	"archipelago/internal/core"
)

// IsLand reports whether a height counts as land.
func IsLand(h float64) bool { return h > 0 }

// LandBounds returns the smallest rectangle of grid indices containing every
// land cell. Max is exclusive. ok is false when the grid holds no land.
func LandBounds(g *core.FloatGrid) (bounds image.Rectangle, ok bool) {
	minX, minY := g.W, g.H
	maxX, maxY := -1, -1
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !IsLand(g.At(x, y)) {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Crop slices g down to its land bounding box. The values are copied
// unchanged. ok is false when there is no land to keep.
func Crop(g *core.FloatGrid) (*core.FloatGrid, image.Rectangle, bool) {
	bounds, ok := LandBounds(g)
	if !ok {
		return nil, bounds, false
	}
	out := core.NewFloatGrid(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			out.Set(x, y, g.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out, bounds, true
}
