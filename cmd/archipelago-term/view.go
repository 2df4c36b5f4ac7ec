package main

import (
	"fmt"
	"log/slog"

	"archipelago/internal/core"
	"archipelago/internal/render"
	"archipelago/internal/world"

	"github.com/gdamore/tcell/v2"
)

// viewer draws a world onto a character grid. One column spans cell world
// units and one row spans twice that, which keeps land roughly square on
// common terminal fonts.
type viewer struct {
	screen tcell.Screen
	world  *world.World
	log    *slog.Logger

	cell     float64
	pan      float64
	showHelp bool
	dirty    bool
}

func newViewer(screen tcell.Screen, w *world.World, cell, pan float64, log *slog.Logger) *viewer {
	return &viewer{screen: screen, world: w, cell: max(cell, 0.25), pan: pan, log: log, dirty: true}
}

// view returns the world rectangle under the map area; the bottom row holds
// the status line.
func (v *viewer) view() core.Rect {
	cols, rows := v.screen.Size()
	return v.world.ViewRect(float64(cols)*v.cell, float64(max(rows-1, 0))*v.cell*2)
}

// handle applies one input event and reports false when the viewer should
// exit.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.move(-1, 0)
		case tcell.KeyRight:
			v.move(1, 0)
		case tcell.KeyUp:
			v.move(0, -1)
		case tcell.KeyDown:
			v.move(0, 1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'a':
				v.move(-1, 0)
			case 'd':
				v.move(1, 0)
			case 'w':
				v.move(0, -1)
			case 's':
				v.move(0, 1)
			case '+', '=':
				v.cell = max(v.cell/2, 0.25)
				v.dirty = true
			case '-':
				v.cell = min(v.cell*2, 64)
				v.dirty = true
			case '?':
				v.showHelp = !v.showHelp
				v.dirty = true
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.dirty = true
	}
	return true
}

// move pans by whole columns or rows, scaled by the pan factor.
func (v *viewer) move(dx, dy float64) {
	v.world.Pan(dx*v.pan*v.cell, dy*v.pan*v.cell*2)
	v.dirty = true
}

// frame explores the chunks under the view and redraws the screen.
func (v *viewer) frame() {
	if n := v.world.Explore(v.view()); n > 0 {
		v.log.Debug("explored chunks", "count", n, "islands", len(v.world.Islands()))
	}
	v.draw()
	v.dirty = false
}

func (v *viewer) draw() {
	cols, rows := v.screen.Size()
	view := v.view()
	v.screen.Clear()

	for row := 0; row < rows-1; row++ {
		for col := 0; col < cols; col++ {
			p := core.Vec{
				X: view.Min.X + (float64(col)+0.5)*v.cell,
				Y: view.Min.Y + (float64(row)+0.5)*v.cell*2,
			}
			s := render.SampleAt(v.world, p)
			ch, fg := render.Glyph(s)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
			if s.Known && !s.Land {
				style = style.Background(tcell.NewRGBColor(10, 24, 60))
			}
			v.screen.SetContent(col, row, ch, nil, style)
		}
	}

	// The anchor sits at the view center.
	ac, ar := cols/2, (rows-1)/2
	if ar >= 0 && ar < rows-1 {
		v.screen.SetContent(ac, ar, '@', nil, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}

	st := v.world.Stats()
	a := v.world.Anchor()
	status := fmt.Sprintf(" (%.0f,%.0f) islands=%d chunks=%d shifted=%d discarded=%d cell=%.2f  ? help",
		a.X, a.Y, len(v.world.Islands()), v.world.ChunkCount(), st.Shifted, st.Discarded, v.cell)
	if v.showHelp {
		status = " wasd/arrows pan  + - zoom  ? help  q quit"
	}
	v.drawText(0, rows-1, status, tcell.StyleDefault.Reverse(true))
	v.screen.Show()
}

func (v *viewer) drawText(x, y int, s string, style tcell.Style) {
	cols, _ := v.screen.Size()
	for _, r := range s {
		if x >= cols {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		v.screen.SetContent(x, y, ' ', nil, style)
	}
}
