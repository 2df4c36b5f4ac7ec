//go:build ebiten

package app

import (
	"image"
	"log/slog"
	"math"
	"time"

	"archipelago/internal/core"
	"archipelago/internal/render"
	"archipelago/internal/ui"
	"archipelago/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	minZoom = 0.25
	maxZoom = 16
)

// Game adapts a world to the ebiten.Game interface. The camera follows the
// world anchor and every update explores the chunks under the view.
type Game struct {
	cfg   *Config
	wcfg  world.Config
	world *world.World
	log   *slog.Logger

	painter *render.WorldPainter
	hud     *ui.HUD
	minimap *ui.Minimap

	zoom     float64
	dragging bool
	lastX    int
	lastY    int
}

// New constructs a Game exploring a fresh world built from wcfg.
func New(cfg *Config, wcfg world.Config, log *slog.Logger) *Game {
	g := &Game{
		cfg:     cfg,
		log:     log,
		painter: render.NewWorldPainter(),
		zoom:    clampZoom(cfg.Zoom),
	}
	g.Reset(wcfg)
	return g
}

// Reset replaces the world with a new one built from wcfg.
func (g *Game) Reset(wcfg world.Config) {
	g.wcfg = wcfg
	g.world = world.New(wcfg, world.WithLogger(g.log))
	g.painter.Reset()
	g.hud = ui.NewHUD(g.world, "Archipelago", g.cfg.HUDWidth)
	g.minimap = ui.NewMinimap(g.world, 160)
	g.log.Info("world reset", "seed", wcfg.Seed)
}

// World returns the world being explored.
func (g *Game) World() *world.World { return g.world }

// Update handles input and generates chunks entering the view.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.wcfg)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		next := g.wcfg
		next.Seed = time.Now().UnixNano()
		next.Anchor = g.world.Anchor()
		g.Reset(next)
	}

	g.handlePan()
	g.handleZoom()
	g.hud.Update(g.cfg.Width)
	g.minimap.Update()

	if n := g.world.Explore(g.view()); n > 0 {
		g.log.Debug("explored chunks", "count", n, "islands", len(g.world.Islands()))
	}
	return nil
}

func (g *Game) handlePan() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= g.cfg.Pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += g.cfg.Pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= g.cfg.Pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += g.cfg.Pan
	}

	mx, my := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !g.hud.Contains(mx, my):
		g.dragging = true
	case !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.dragging = false
	case g.dragging:
		dx -= float64(mx-g.lastX) / g.zoom
		dy -= float64(my-g.lastY) / g.zoom
	}
	g.lastX, g.lastY = mx, my

	if dx != 0 || dy != 0 {
		g.world.Pan(dx, dy)
	}
}

func (g *Game) handleZoom() {
	_, wheel := ebiten.Wheel()
	switch {
	case wheel > 0 || inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.zoom = clampZoom(g.zoom * 1.25)
	case wheel < 0 || inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.zoom = clampZoom(g.zoom / 1.25)
	}
}

func (g *Game) view() core.Rect {
	return g.world.ViewRect(float64(g.cfg.Width)/g.zoom, float64(g.cfg.Height)/g.zoom)
}

// Draw renders the visible islands, the HUD and the minimap.
func (g *Game) Draw(screen *ebiten.Image) {
	area := screen.SubImage(image.Rect(0, 0, g.cfg.Width, g.cfg.Height)).(*ebiten.Image)
	g.painter.Draw(area, g.world, g.view(), g.zoom)
	g.minimap.Draw(screen, g.cfg.Width, 0)
	g.hud.Draw(screen, g.cfg.Width, g.cfg.Height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width + g.hud.Width(), g.cfg.Height
}

func clampZoom(z float64) float64 {
	if z <= 0 || math.IsNaN(z) {
		return 1
	}
	return math.Min(math.Max(z, minZoom), maxZoom)
}
