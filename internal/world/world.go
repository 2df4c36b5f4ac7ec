// Package world owns the generated islands and the chunk occupancy index, and
// decides where newly generated islands may land.
package world

import (
	"io"
	"log/slog"

	"archipelago/internal/core"
	"archipelago/internal/island"
	rng "archipelago/pkg/core"
)

// Stats counts generation outcomes since the world was created.
type Stats struct {
	Requests  int
	Attempts  int
	Empty     int
	Accepted  int
	Shifted   int
	Discarded int
	LandTiles int
}

// World holds every generated island, the chunk occupancy index and the
// bounding rectangle of all registered chunks. It is not safe for concurrent
// use; callers that render from another goroutine must hold their own lock
// across EnsureChunkGenerated.
type World struct {
	cfg Config

	islands  []*island.Island
	chunks   ChunkMap
	bounds   core.Rect
	anchor   core.Vec
	revision uint64
	stats    Stats

	rng    rng.Rand
	source IslandSource
	log    *slog.Logger
}

// IslandSource produces an island centered on origin, or false when the
// attempt yielded no land. *island.Factory is the production source.
type IslandSource interface {
	Create(origin core.Vec) (*island.Island, bool)
}

// Option customizes a World at construction.
type Option func(*World)

// WithRand substitutes the random source used for every generation choice.
func WithRand(r rng.Rand) Option {
	return func(w *World) { w.rng = r }
}

// WithIslandSource replaces the island factory.
func WithIslandSource(src IslandSource) Option {
	return func(w *World) { w.source = src }
}

// WithLogger routes generation records to log.
func WithLogger(log *slog.Logger) Option {
	return func(w *World) { w.log = log }
}

// New returns an empty world configured from cfg. A zero seed draws one from
// the wall clock unless WithRand supplies a source.
func New(cfg Config, opts ...Option) *World {
	w := &World{
		cfg:    cfg,
		chunks: make(ChunkMap),
		anchor: cfg.Anchor,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		if cfg.Seed != 0 {
			w.rng = rng.NewRNG(cfg.Seed)
		} else {
			w.rng = rng.NewProcessRNG()
		}
	}
	if w.log == nil {
		w.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if w.source == nil {
		w.source = island.NewFactory(cfg.Params.Island, w.rng, w.log)
	}
	return w
}

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Islands exposes the accepted islands in generation order.
func (w *World) Islands() []*island.Island { return w.islands }

// Contains reports whether a chunk has already been visited.
func (w *World) Contains(idx ChunkIndex) bool { return w.chunks.Contains(idx) }

// ChunkCount returns the number of registered chunks.
func (w *World) ChunkCount() int { return len(w.chunks) }

// Chunks returns every registered chunk index in X, Y order.
func (w *World) Chunks() []ChunkIndex { return w.chunks.Sorted() }

// Bounds returns the rectangle covering every registered chunk footprint.
func (w *World) Bounds() core.Rect { return w.bounds }

// Anchor returns the viewer position consumed by renderers.
func (w *World) Anchor() core.Vec { return w.anchor }

// SetAnchor moves the viewer position.
func (w *World) SetAnchor(p core.Vec) { w.anchor = p }

// Pan moves the viewer position by (dx, dy).
func (w *World) Pan(dx, dy float64) { w.anchor = w.anchor.Add(core.Vec{X: dx, Y: dy}) }

// Revision increases every time the world is asked to generate a chunk.
// Renderers compare it to decide when cached rasters are stale.
func (w *World) Revision() uint64 { return w.revision }

// Stats returns generation counters.
func (w *World) Stats() Stats { return w.stats }

// EnsureChunkGenerated visits idx: it may generate and place an island near
// the chunk's center, then registers idx and recomputes the bounds.
func (w *World) EnsureChunkGenerated(idx ChunkIndex) {
	w.log.Debug("generating chunk", "x", idx.X, "y", idx.Y)
	w.stats.Requests++
	w.revision++

	if rng.Bernoulli(w.rng, w.cfg.Params.IslandChance) {
		w.stats.Attempts++
		w.tryIsland(idx)
	}

	w.register(idx)
	w.bounds = w.chunks.Bounds()
	w.log.Debug("world bounds", "min", w.bounds.Min, "max", w.bounds.Max)
}

func (w *World) tryIsland(idx ChunkIndex) {
	is, ok := w.source.Create(idx.Center())
	if !ok {
		w.stats.Empty++
		return
	}
	if !w.place(is) {
		w.stats.Discarded++
		w.log.Debug("island discarded", "chunk_x", idx.X, "chunk_y", idx.Y)
		return
	}
	lo, hi := ChunkSpan(is.Rect)
	for x := lo.X; x < hi.X; x++ {
		for y := lo.Y; y < hi.Y; y++ {
			w.register(ChunkIndex{X: x, Y: y})
		}
	}
	w.islands = append(w.islands, is)
	w.stats.Accepted++
	w.stats.LandTiles += is.LandCount()
	w.log.Debug("island accepted", "min", is.Rect.Min, "max", is.Rect.Max)
}

func (w *World) register(idx ChunkIndex) {
	if !w.chunks.Register(idx) {
		w.log.Debug("chunk already exists", "x", idx.X, "y", idx.Y)
		return
	}
	w.log.Debug("registered chunk", "x", idx.X, "y", idx.Y)
}
