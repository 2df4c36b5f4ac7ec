//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"

	"archipelago/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RevisionSource is a map that reports when it changed.
type RevisionSource interface {
	render.MapSource
	Revision() uint64
}

// Minimap draws the explored area in a corner of the screen. The raster is
// rebuilt only when the source revision changes or the anchor moves. M
// toggles it.
type Minimap struct {
	src     RevisionSource
	maxSize int
	visible bool

	img      *ebiten.Image
	revision uint64
	anchor   image.Point
	step     int
	built    bool
	frame    *ebiten.Image
}

// NewMinimap creates a visible minimap whose longer edge is at most maxSize
// pixels.
func NewMinimap(src RevisionSource, maxSize int) *Minimap {
	m := &Minimap{src: src, maxSize: max(maxSize, 16), visible: true}
	m.frame = ebiten.NewImage(1, 1)
	m.frame.Fill(color.White)
	return m
}

// Update handles the toggle key and refreshes the raster when stale.
func (m *Minimap) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		m.visible = !m.visible
	}
	if !m.visible {
		return
	}
	b := m.src.Bounds()
	step := max(1, int(math.Ceil(b.W()/float64(m.maxSize))), int(math.Ceil(b.H()/float64(m.maxSize))))
	a := m.src.Anchor()
	anchor := image.Pt(int(a.X)/step, int(a.Y)/step)
	if m.built && m.revision == m.src.Revision() && m.anchor == anchor && m.step == step {
		return
	}
	m.revision, m.anchor, m.step, m.built = m.src.Revision(), anchor, step, true
	if m.img != nil {
		m.img.Dispose()
		m.img = nil
	}
	if raster := render.Minimap(m.src, step); raster != nil {
		m.img = ebiten.NewImageFromImage(raster)
	}
}

// Draw paints the minimap with its top-right corner at (right, top).
func (m *Minimap) Draw(screen *ebiten.Image, right, top int) {
	if !m.visible || m.img == nil {
		return
	}
	w, h := m.img.Bounds().Dx(), m.img.Bounds().Dy()
	x := right - w - 8
	y := top + 8
	fillRect(screen, m.frame, image.Rect(x-1, y-1, x+w+1, y+h+1), color.RGBA{R: 20, G: 20, B: 24, A: 255})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(m.img, op)
}
