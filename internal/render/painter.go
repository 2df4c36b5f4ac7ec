//go:build ebiten

package render

import (
	"image/color"

	"archipelago/internal/core"
	"archipelago/internal/island"
	"archipelago/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

// WorldPainter draws the visible part of a world onto an ebiten image. Island
// rasters are uploaded once and reused across frames.
type WorldPainter struct {
	cache map[*island.Island]*ebiten.Image
	pixel *ebiten.Image

	fog color.RGBA
	sea color.RGBA
}

// NewWorldPainter allocates a painter with an empty raster cache.
func NewWorldPainter() *WorldPainter {
	p := &WorldPainter{
		cache: make(map[*island.Island]*ebiten.Image),
		pixel: ebiten.NewImage(1, 1),
		fog:   color.RGBA{R: 12, G: 14, B: 20, A: 255},
		sea:   BandColor(island.BandWater),
	}
	p.pixel.Fill(color.White)
	return p
}

// Reset drops every cached island raster.
func (p *WorldPainter) Reset() {
	for is, img := range p.cache {
		img.Dispose()
		delete(p.cache, is)
	}
}

// Draw paints the area under view at zoom screen pixels per world unit.
func (p *WorldPainter) Draw(screen *ebiten.Image, src MapSource, view core.Rect, zoom float64) {
	screen.Fill(p.fog)
	for _, idx := range world.VisibleChunks(view) {
		if !src.Contains(idx) {
			continue
		}
		fp := idx.Footprint()
		x, y := Project(view, zoom, fp.Min)
		p.fillRect(screen, x, y, fp.W()*zoom, fp.H()*zoom, p.sea)
	}
	for _, is := range src.Islands() {
		if !is.Rect.Intersects(view) {
			continue
		}
		img := p.islandImage(is)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(Project(view, zoom, is.Rect.Min))
		screen.DrawImage(img, op)
	}
	ax, ay := Project(view, zoom, src.Anchor())
	p.fillRect(screen, ax-2, ay-2, 4, 4, minimapAnchor)
}

func (p *WorldPainter) islandImage(is *island.Island) *ebiten.Image {
	if img, ok := p.cache[is]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(IslandRGBA(is))
	p.cache[is] = img
	return img
}

func (p *WorldPainter) fillRect(dst *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	dst.DrawImage(p.pixel, op)
}
