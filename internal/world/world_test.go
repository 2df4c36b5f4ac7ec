package world

import (
	"testing"

	"archipelago/internal/core"
	"archipelago/internal/island"
	rng "archipelago/pkg/core"
)

// squareSource returns a solid w x h island on every call.
type squareSource struct {
	w, h  int
	calls int
}

func (s *squareSource) Create(origin core.Vec) (*island.Island, bool) {
	s.calls++
	g := core.NewFloatGrid(s.w, s.h)
	for i := range g.Cells() {
		g.Cells()[i] = 1
	}
	return island.FromHeights(origin, g), true
}

func newTestWorld(t *testing.T, chance float64, src IslandSource) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Params.IslandChance = chance
	opts := []Option{WithRand(rng.NewRNG(1))}
	if src != nil {
		opts = append(opts, WithIslandSource(src))
	}
	return New(cfg, opts...)
}

func bruteBounds(w *World) core.Rect {
	var r core.Rect
	for i, idx := range w.Chunks() {
		if i == 0 {
			r = idx.Footprint()
			continue
		}
		r = r.Union(idx.Footprint())
	}
	return r
}

func TestSingleChunkBounds(t *testing.T) {
	w := newTestWorld(t, 0, nil)
	w.EnsureChunkGenerated(ChunkIndex{})

	want := core.Rect{Min: core.Vec{X: 0, Y: 0}, Max: core.Vec{X: 128, Y: 128}}
	if w.Bounds() != want {
		t.Fatalf("bounds %+v, want %+v", w.Bounds(), want)
	}
	if w.ChunkCount() != 1 || !w.Contains(ChunkIndex{}) {
		t.Fatal("requested chunk must be registered")
	}
	if len(w.Islands()) != 0 {
		t.Fatal("no island expected with zero chance")
	}
}

func TestBoundsTrackChunksMonotonically(t *testing.T) {
	w := newTestWorld(t, 0, nil)
	seq := []ChunkIndex{{0, 0}, {2, 0}, {1, 1}, {-3, 4}, {0, -2}, {-1, -1}}
	prev := core.Rect{}
	for i, idx := range seq {
		w.EnsureChunkGenerated(idx)
		got := w.Bounds()
		if got != bruteBounds(w) {
			t.Fatalf("step %d: bounds %+v, want %+v", i, got, bruteBounds(w))
		}
		if i > 0 && (got.Min.X > prev.Min.X || got.Min.Y > prev.Min.Y || got.Max.X < prev.Max.X || got.Max.Y < prev.Max.Y) {
			t.Fatalf("step %d: bounds shrank from %+v to %+v", i, prev, got)
		}
		prev = got
	}
	want := core.Rect{Min: core.Vec{X: -384, Y: -256}, Max: core.Vec{X: 384, Y: 640}}
	if prev != want {
		t.Fatalf("final bounds %+v, want %+v", prev, want)
	}
}

func TestEnsureChunkGeneratedIdempotentRegistration(t *testing.T) {
	w := newTestWorld(t, 0, nil)
	idx := ChunkIndex{X: 3, Y: -2}
	w.EnsureChunkGenerated(idx)
	bounds := w.Bounds()
	chunks := w.ChunkCount()

	w.EnsureChunkGenerated(idx)
	if w.ChunkCount() != chunks || w.Bounds() != bounds || !w.Contains(idx) {
		t.Fatal("re-visiting a registered chunk must not change the index or bounds")
	}
	if len(w.Islands()) != 0 {
		t.Fatal("no islands expected")
	}
	if w.Revision() != 2 {
		t.Fatalf("revision=%d, want 2", w.Revision())
	}
}

func TestIslandAcceptedWithoutConflict(t *testing.T) {
	src := &squareSource{w: 50, h: 50}
	w := newTestWorld(t, 1, src)
	w.EnsureChunkGenerated(ChunkIndex{})

	if len(w.Islands()) != 1 {
		t.Fatalf("expected one island, got %d", len(w.Islands()))
	}
	is := w.Islands()[0]
	if is.Rect.Center() != (core.Vec{X: 64, Y: 64}) {
		t.Fatalf("island moved without conflict: %+v", is.Rect)
	}
	if w.ChunkCount() != 1 {
		t.Fatalf("island inside one chunk should register one chunk, got %d", w.ChunkCount())
	}
	st := w.Stats()
	if st.Accepted != 1 || st.Shifted != 0 || st.LandTiles != 2500 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestIslandSpanningChunksRegistersCoverage(t *testing.T) {
	src := &squareSource{w: 200, h: 60}
	w := newTestWorld(t, 1, src)
	w.EnsureChunkGenerated(ChunkIndex{})

	// Rect [-36,164) x [34,94) touches chunks x=-1..1, y=0.
	for _, idx := range []ChunkIndex{{-1, 0}, {0, 0}, {1, 0}} {
		if !w.Contains(idx) {
			t.Fatalf("chunk %+v should be registered", idx)
		}
	}
	if w.ChunkCount() != 3 {
		t.Fatalf("expected 3 chunks, got %d", w.ChunkCount())
	}
	want := core.Rect{Min: core.Vec{X: -128, Y: 0}, Max: core.Vec{X: 256, Y: 128}}
	if w.Bounds() != want {
		t.Fatalf("bounds %+v, want %+v", w.Bounds(), want)
	}
}

func TestPlacementSearchFindsFirstRasterOffset(t *testing.T) {
	src := &squareSource{w: 200, h: 200}
	w := newTestWorld(t, 0, src)
	w.EnsureChunkGenerated(ChunkIndex{X: 0, Y: 0})
	w.EnsureChunkGenerated(ChunkIndex{X: 1, Y: 0})
	before := w.Chunks()

	if !w.SetFloatParameter("island_chance", 1) {
		t.Fatal("island chance should be adjustable")
	}
	w.EnsureChunkGenerated(ChunkIndex{X: 0, Y: 1})

	if len(w.Islands()) != 1 {
		t.Fatalf("expected the island to be placed, got %d islands", len(w.Islands()))
	}
	is := w.Islands()[0]
	// Natural rect [-36,164) x [92,292) overlaps both chunks; the first clear
	// offset in X-outer, Y-inner order is (-128, 36).
	wantMin := core.Vec{X: -164, Y: 128}
	if is.Rect.Min != wantMin {
		t.Fatalf("island min %+v, want %+v", is.Rect.Min, wantMin)
	}
	if is.Tiles[0][0].Pos != wantMin {
		t.Fatalf("tiles not shifted with the rect: %+v", is.Tiles[0][0].Pos)
	}
	for _, idx := range before {
		if is.Rect.Intersects(idx.Footprint()) {
			t.Fatalf("accepted island overlaps pre-registered chunk %+v", idx)
		}
	}
	if w.Stats().Shifted != 1 {
		t.Fatalf("expected one shifted island, stats %+v", w.Stats())
	}
	// Coverage x=-2..0, y=1..2 plus the two seeded chunks.
	if w.ChunkCount() != 8 {
		t.Fatalf("expected 8 chunks, got %d", w.ChunkCount())
	}
	want := core.Rect{Min: core.Vec{X: -256, Y: 0}, Max: core.Vec{X: 256, Y: 384}}
	if w.Bounds() != want {
		t.Fatalf("bounds %+v, want %+v", w.Bounds(), want)
	}
}

func TestPlacementDiscardsWhenNoRoom(t *testing.T) {
	src := &squareSource{w: 200, h: 200}
	w := newTestWorld(t, 0, src)
	for x := -3; x <= 3; x++ {
		for y := -3; y <= 3; y++ {
			if x == 0 && y == 0 {
				continue
			}
			w.EnsureChunkGenerated(ChunkIndex{X: x, Y: y})
		}
	}
	w.SetFloatParameter("island_chance", 1)
	w.EnsureChunkGenerated(ChunkIndex{})

	if len(w.Islands()) != 0 {
		t.Fatal("island wider than any gap must be discarded")
	}
	if !w.Contains(ChunkIndex{}) {
		t.Fatal("requested chunk is registered even when the island is discarded")
	}
	if w.ChunkCount() != 49 {
		t.Fatalf("expected 49 chunks, got %d", w.ChunkCount())
	}
	if st := w.Stats(); st.Discarded != 1 || st.Attempts != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestPlacementZeroRadiusDiscardsConflicts(t *testing.T) {
	src := &squareSource{w: 200, h: 200}
	w := newTestWorld(t, 0, src)
	w.EnsureChunkGenerated(ChunkIndex{X: 1, Y: 0})
	w.SetIntParameter("search_radius", 0)
	w.SetFloatParameter("island_chance", 1)
	w.EnsureChunkGenerated(ChunkIndex{})
	if len(w.Islands()) != 0 {
		t.Fatal("zero search radius leaves no room to move")
	}
}

func TestSeededWorldInvariants(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		w := New(cfg)
		for _, idx := range VisibleChunks(core.RectAt(core.Vec{X: -256, Y: -256}, 640, 512)) {
			if w.Contains(idx) {
				continue
			}
			before := w.Chunks()
			n := len(w.Islands())
			w.EnsureChunkGenerated(idx)

			if !w.Contains(idx) {
				t.Fatalf("seed %d: chunk %+v not registered", seed, idx)
			}
			if w.Bounds() != bruteBounds(w) {
				t.Fatalf("seed %d: bounds drifted", seed)
			}
			if len(w.Islands()) == n {
				continue
			}
			is := w.Islands()[n]
			for _, prev := range before {
				if is.Rect.Intersects(prev.Footprint()) {
					t.Fatalf("seed %d: island %+v overlaps earlier chunk %+v", seed, is.Rect, prev)
				}
			}
			for _, row := range is.Tiles {
				for _, tile := range row {
					if !is.Rect.Covers(tile.Pos) {
						t.Fatalf("seed %d: tile %+v outside %+v", seed, tile.Pos, is.Rect)
					}
				}
			}
			lo, hi := ChunkSpan(is.Rect)
			for x := lo.X; x < hi.X; x++ {
				for y := lo.Y; y < hi.Y; y++ {
					if !w.Contains(ChunkIndex{X: x, Y: y}) {
						t.Fatalf("seed %d: covered chunk (%d,%d) missing", seed, x, y)
					}
				}
			}
		}
	}
}

func TestSeededWorldDeterministic(t *testing.T) {
	view := core.RectAt(core.Vec{X: 0, Y: 0}, 384, 384)
	cfg := DefaultConfig()
	cfg.Seed = 11
	a := New(cfg)
	b := New(cfg)
	a.Explore(view)
	b.Explore(view)
	if len(a.Islands()) != len(b.Islands()) || a.ChunkCount() != b.ChunkCount() {
		t.Fatal("same seed must generate the same world")
	}
	for i := range a.Islands() {
		if a.Islands()[i].Rect != b.Islands()[i].Rect {
			t.Fatalf("island %d differs", i)
		}
	}
}

func TestChunkSpanAndVisibleChunks(t *testing.T) {
	lo, hi := ChunkSpan(core.Rect{Min: core.Vec{X: -10, Y: 0}, Max: core.Vec{X: 300, Y: 128}})
	if lo != (ChunkIndex{-1, 0}) || hi != (ChunkIndex{3, 1}) {
		t.Fatalf("unexpected span %+v..%+v", lo, hi)
	}
	got := VisibleChunks(core.Rect{Min: core.Vec{X: -10, Y: 0}, Max: core.Vec{X: 300, Y: 128}})
	want := []ChunkIndex{{-1, 0}, {0, 0}, {1, 0}, {2, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if ChunkAt(core.Vec{X: -0.5, Y: 128}) != (ChunkIndex{-1, 1}) {
		t.Fatal("ChunkAt must floor negative coordinates")
	}
}

func TestExploreSkipsVisitedChunks(t *testing.T) {
	w := newTestWorld(t, 0, nil)
	view := core.RectAt(core.Vec{X: -64, Y: -64}, 256, 128)
	if missing := w.MissingChunks(view); len(missing) != 6 {
		t.Fatalf("expected 6 missing chunks, got %v", missing)
	}
	if n := w.Explore(view); n != 6 {
		t.Fatalf("first explore generated %d chunks, want 6", n)
	}
	if n := w.Explore(view); n != 0 {
		t.Fatalf("second explore generated %d chunks, want 0", n)
	}
}

func TestExploreSkipsChunksCoveredMidPass(t *testing.T) {
	src := &squareSource{w: 200, h: 60}
	w := newTestWorld(t, 1, src)
	// The island placed for chunk -1 covers chunk 0 as well.
	n := w.Explore(core.RectAt(core.Vec{X: -128, Y: 0}, 256, 128))
	if n != 1 {
		t.Fatalf("expected one generation call, got %d", n)
	}
	if src.calls != 1 {
		t.Fatalf("expected one island attempt, got %d", src.calls)
	}
}

func TestAnchorAndViewRect(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Anchor = core.Vec{X: 10, Y: 20}
	w := New(cfg, WithRand(rng.NewRNG(1)))
	w.Pan(5, -5)
	if w.Anchor() != (core.Vec{X: 15, Y: 15}) {
		t.Fatalf("anchor %+v", w.Anchor())
	}
	r := w.ViewRect(100, 50)
	if r.Center() != w.Anchor() || r.W() != 100 || r.H() != 50 {
		t.Fatalf("unexpected view rect %+v", r)
	}
}

func TestParameterSetters(t *testing.T) {
	w := newTestWorld(t, 0.5, nil)
	if !w.SetFloatParameter("roughness", 0.2) {
		t.Fatal("roughness should be adjustable")
	}
	if w.Config().Params.Island.Terrain.Roughness != 0.2 {
		t.Fatal("roughness not stored")
	}
	if w.SetFloatParameter("island_chance", 1.5) {
		t.Fatal("chance above 1 must be refused")
	}
	if w.SetIntParameter("scale_max", w.Config().Params.Island.ScaleMin) {
		t.Fatal("empty scale range must be refused")
	}
	if w.SetIntParameter("unknown", 1) {
		t.Fatal("unknown keys must be refused")
	}
	snap := w.Parameters()
	if p, ok := snap.Lookup("roughness"); !ok || p.Value != "0.2" {
		t.Fatalf("snapshot roughness %+v", p)
	}
	for _, ctrl := range w.ParameterControls() {
		if _, ok := snap.Lookup(ctrl.Key); !ok {
			t.Fatalf("control %q missing from snapshot", ctrl.Key)
		}
	}
}
