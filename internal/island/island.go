package island

import "archipelago/internal/core"

// Island is one generated landmass: a world-space clipping rectangle plus a
// row-major grid of tiles, one tile per world unit.
type Island struct {
	Rect  core.Rect
	Tiles [][]Tile
}

// FromHeights lays a height grid out in world space so that the grid's
// geometric center coincides with origin.
func FromHeights(origin core.Vec, heights *core.FloatGrid) *Island {
	w, h := float64(heights.W), float64(heights.H)
	rect := core.RectAt(origin.Sub(core.Vec{X: w / 2, Y: h / 2}), w, h)
	tiles := make([][]Tile, heights.H)
	for y := range tiles {
		row := make([]Tile, heights.W)
		for x := range row {
			row[x] = Tile{
				Pos:    rect.Min.Add(core.Vec{X: float64(x), Y: float64(y)}),
				Height: heights.At(x, y),
			}
		}
		tiles[y] = row
	}
	return &Island{Rect: rect, Tiles: tiles}
}

// Size returns the tile grid dimensions.
func (is *Island) Size() (w, h int) {
	if len(is.Tiles) == 0 {
		return 0, 0
	}
	return len(is.Tiles[0]), len(is.Tiles)
}

// Shift translates the clipping rectangle and every tile by offset.
func (is *Island) Shift(offset core.Vec) {
	is.Rect = is.Rect.Shift(offset)
	for y := range is.Tiles {
		row := is.Tiles[y]
		for x := range row {
			row[x].Pos = row[x].Pos.Add(offset)
		}
	}
}

// LandCount returns the number of tiles above water.
func (is *Island) LandCount() int {
	n := 0
	for _, row := range is.Tiles {
		for _, t := range row {
			if Classify(t.Height) != BandWater {
				n++
			}
		}
	}
	return n
}

// TileAt returns the tile covering the world position p.
func (is *Island) TileAt(p core.Vec) (Tile, bool) {
	if !is.Rect.Covers(p) {
		return Tile{}, false
	}
	x := int(p.X - is.Rect.Min.X)
	y := int(p.Y - is.Rect.Min.Y)
	w, h := is.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return Tile{}, false
	}
	return is.Tiles[y][x], true
}
