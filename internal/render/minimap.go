package render

import (
	"image"
	"image/color"
	"math"

	"archipelago/internal/core"
	"archipelago/internal/island"
	"archipelago/internal/world"
)

// MapSource is the read-only view of a world the renderers draw from.
// *world.World satisfies it.
type MapSource interface {
	Bounds() core.Rect
	Chunks() []world.ChunkIndex
	Contains(idx world.ChunkIndex) bool
	Islands() []*island.Island
	Anchor() core.Vec
}

var (
	minimapBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	minimapChunkTint  = color.RGBA{R: 0, G: 255, B: 0, A: 128}
	minimapAnchor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Minimap rasterises the whole explored area. Each pixel covers step x step
// world units starting at the bounds' minimum corner. Registered chunks are
// tinted over a white background, every island tile is coloured by band and
// the anchor is marked with a red cross. It returns nil before any chunk is
// registered.
func Minimap(src MapSource, step int) *image.RGBA {
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil
	}
	if step < 1 {
		step = 1
	}
	s := float64(step)
	w := int(math.Ceil(bounds.W() / s))
	h := int(math.Ceil(bounds.H() / s))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	toPixel := func(p core.Vec) (int, int) {
		return int(math.Floor((p.X - bounds.Min.X) / s)), int(math.Floor((p.Y - bounds.Min.Y) / s))
	}

	chunk := blend(minimapBackground, minimapChunkTint)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, minimapBackground)
		}
	}
	for _, idx := range src.Chunks() {
		fp := idx.Footprint()
		x0, y0 := toPixel(fp.Min)
		x1, y1 := toPixel(fp.Max)
		for y := max(y0, 0); y < min(y1, h); y++ {
			for x := max(x0, 0); x < min(x1, w); x++ {
				img.SetRGBA(x, y, chunk)
			}
		}
	}
	for _, is := range src.Islands() {
		for _, row := range is.Tiles {
			for _, t := range row {
				x, y := toPixel(t.Pos)
				if x < 0 || y < 0 || x >= w || y >= h {
					continue
				}
				img.SetRGBA(x, y, HeightColor(t.Height))
			}
		}
	}

	ax, ay := toPixel(src.Anchor())
	for _, d := range [][2]int{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		x, y := ax+d[0], ay+d[1]
		if x >= 0 && y >= 0 && x < w && y < h {
			img.SetRGBA(x, y, minimapAnchor)
		}
	}
	return img
}
