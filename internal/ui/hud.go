//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"archipelago/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	headerColor     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor        = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders a side panel listing the world statistics and the adjustable
// generation parameters with +/- buttons.
type HUD struct {
	provider    core.ParameterProvider
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter

	title    string
	width    int
	panel    *ebiten.Image
	pixel    *ebiten.Image
	snapshot core.ParameterSnapshot
	controls []controlState
	offsetX  int
}

// NewHUD builds a panel of the given width for target. Controls are shown
// when target implements core.ParameterControlsProvider, and adjusted through
// whichever setter interfaces it implements.
func NewHUD(target core.ParameterProvider, title string, width int) *HUD {
	h := &HUD{provider: target, title: title, width: max(width, 0)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if p, ok := target.(core.ParameterControlsProvider); ok {
		for i, ctrl := range p.ParameterControls() {
			top := controlsTop + i*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.controls = append(h.controls, controlState{control: ctrl, top: top, minus: minus, plus: plus})
		}
	}
	h.intSetter, _ = target.(core.IntParameterSetter)
	h.floatSetter, _ = target.(core.FloatParameterSetter)
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the snapshot and applies button clicks. offsetX is the
// panel's left edge in screen coordinates.
func (h *HUD) Update(offsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.offsetX = offsetX
	h.snapshot = h.provider.Parameters()
	for i := range h.controls {
		h.controls[i].refresh(h.snapshot)
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	p := image.Pt(mx-h.offsetX, my)
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case !c.ok:
		case p.In(c.minus):
			h.adjust(c, -1)
			return
		case p.In(c.plus):
			h.adjust(c, 1)
			return
		}
	}
}

// Contains reports whether the screen point lies over the panel.
func (h *HUD) Contains(x, y int) bool {
	return h != nil && h.width > 0 && x >= h.offsetX && x < h.offsetX+h.width && y >= 0
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBackground)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, headerColor)
	for i := range h.controls {
		c := &h.controls[i]
		y := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, y, labelColor)
		col := labelColor
		if !c.ok {
			col = dimColor
		}
		value := c.text()
		x := c.minus.Min.X - buttonGap - text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, x, y, col)
		h.drawButton(c.minus, "-", c.ok && h.canAdjust(c, -1))
		h.drawButton(c.plus, "+", c.ok && h.canAdjust(c, 1))
	}

	y := controlsTop + len(h.controls)*lineHeight + infoSpacing/2
	for _, g := range h.snapshot.Groups {
		if y > height-panelPadding {
			break
		}
		text.Draw(h.panel, g.Name, face, panelPadding, y, headerColor)
		y += statLine
		for _, p := range g.Params {
			if h.isControl(p.Key) {
				continue
			}
			text.Draw(h.panel, p.Label, face, panelPadding, y, dimColor)
			w := text.BoundString(face, p.Value).Dx()
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-w, y, labelColor)
			y += statLine
		}
		y += statLine / 2
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) isControl(key string) bool {
	for _, c := range h.controls {
		if c.control.Key == key {
			return true
		}
	}
	return false
}

// target returns the clamped value one step in direction, and whether it
// differs from the current value.
func (c *controlState) target(direction int) (float64, bool) {
	step := c.control.Step
	if step <= 0 {
		step = 1
		if c.control.Type == core.ParamTypeFloat {
			step = 0.05
		}
	}
	v := c.value + float64(direction)*step
	if c.control.HasMin {
		v = math.Max(v, c.control.Min)
	}
	if c.control.HasMax {
		v = math.Min(v, c.control.Max)
	}
	if c.control.Type == core.ParamTypeInt {
		v = math.Round(v)
	}
	return v, math.Abs(v-c.value) > 1e-9
}

func (h *HUD) canAdjust(c *controlState, direction int) bool {
	switch c.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return false
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return false
		}
	default:
		return false
	}
	_, changed := c.target(direction)
	return changed
}

func (h *HUD) adjust(c *controlState, direction int) {
	if !h.canAdjust(c, direction) {
		return
	}
	v, _ := c.target(direction)
	var ok bool
	if c.control.Type == core.ParamTypeInt {
		ok = h.intSetter.SetIntParameter(c.control.Key, int(v))
	} else {
		ok = h.floatSetter.SetFloatParameter(c.control.Key, v)
	}
	if ok {
		c.value = v
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	fillRect(h.panel, h.pixel, rect, bg)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func fillRect(dst, pixel *ebiten.Image, rect image.Rectangle, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	dst.DrawImage(pixel, op)
}

type controlState struct {
	control core.ParameterControl
	value   float64
	ok      bool

	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

func (c *controlState) refresh(s core.ParameterSnapshot) {
	c.ok = false
	p, found := s.Lookup(c.control.Key)
	if !found {
		return
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return
	}
	c.value, c.ok = v, true
}

func (c *controlState) text() string {
	if !c.ok {
		return "--"
	}
	if c.control.Type == core.ParamTypeInt {
		return strconv.Itoa(int(c.value))
	}
	precision := 1
	switch step := c.control.Step; {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(c.value, 'f', precision, 64)
}

const (
	panelPadding   = 12
	lineHeight     = 32
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 21
	infoSpacing    = 36
	statLine       = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
