package terrain

import (
	"image"
	"math"
	"slices"
	"testing"

	"archipelago/internal/core"
	rng "archipelago/pkg/core"
)

// fixedRand returns the same uniform sample forever and counts draws.
type fixedRand struct {
	u     float64
	draws int
}

func (f *fixedRand) Float64() float64 { f.draws++; return f.u }
func (f *fixedRand) IntN(n int) int   { f.draws++; return 0 }

func TestRandMapScenarioExponentThree(t *testing.T) {
	r := &fixedRand{u: 0.75}
	g := NewRandMap(3, r, DefaultParams())

	if g.W != 11 || g.H != 11 {
		t.Fatalf("expected 11x11 grid, got %dx%d", g.W, g.H)
	}
	// 1 + 4 + 16 squares across three levels, five draws each.
	if r.draws != 21*5 {
		t.Fatalf("expected %d random draws, got %d", 21*5, r.draws)
	}

	corners := map[[2]int]bool{{1, 1}: true, {9, 1}: true, {1, 9}: true, {9, 9}: true}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := g.At(x, y)
			onBorder := x == 0 || y == 0 || x == g.W-1 || y == g.H-1
			switch {
			case onBorder:
				if v != -0.1 {
					t.Fatalf("border cell (%d,%d)=%v, want sentinel", x, y, v)
				}
			case corners[[2]int{x, y}]:
				if v != 0 {
					t.Fatalf("root corner (%d,%d)=%v should keep its seed", x, y, v)
				}
			default:
				if v <= 0 {
					t.Fatalf("interior cell (%d,%d)=%v was never displaced", x, y, v)
				}
			}
		}
	}
}

func TestDisplaceSingleLevelArithmetic(t *testing.T) {
	g := core.FloatGridFromRows([][]float64{
		{1, 0, 2},
		{0, 0, 0},
		{3, 0, 4},
	})
	// u = 0.5 yields a zero offset.
	Displace(g, 0, 0, 2, &fixedRand{u: 0.5}, DefaultParams())

	want := [][]float64{
		{1, 2, 2},
		{2.25, 2.5, 2.75},
		{3, 3, 4},
	}
	for y, row := range want {
		for x, v := range row {
			if math.Abs(g.At(x, y)-v) > 1e-12 {
				t.Fatalf("cell (%d,%d)=%v, want %v", x, y, g.At(x, y), v)
			}
		}
	}
}

func TestDisplaceOffsetDecaysWithDepth(t *testing.T) {
	p := DefaultParams()
	// u just below 1 draws an offset close to +mag at every level.
	g := core.NewFloatGrid(5, 5)
	Displace(g, 0, 0, 4, &fixedRand{u: 1}, p)
	// Root center gets the full magnitude; level-one centers see 2^-0.1.
	root := g.At(2, 2)
	if math.Abs(root-p.Roughness) > 1e-12 {
		t.Fatalf("root center=%v, want %v", root, p.Roughness)
	}
	child := g.At(1, 1)
	// Child center averages corners (0, north, west, center) then adds the decayed offset.
	north := (2*p.Roughness)/4 + p.Roughness
	west := north
	wantChild := (0+north+west+root)/4 + p.Roughness*math.Pow(2, -p.Decay)
	if math.Abs(child-wantChild) > 1e-12 {
		t.Fatalf("child center=%v, want %v", child, wantChild)
	}
}

func TestRandMapDeterministicUnderSeed(t *testing.T) {
	a := NewRandMap(4, rng.NewRNG(99), DefaultParams())
	b := NewRandMap(4, rng.NewRNG(99), DefaultParams())
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("identical seeds must produce identical grids")
	}
	c := NewRandMap(4, rng.NewRNG(100), DefaultParams())
	if slices.Equal(a.Cells(), c.Cells()) {
		t.Fatal("different seeds should produce different grids")
	}
}

func TestUpscaleSizeAndFlattening(t *testing.T) {
	g := core.NewFloatGrid(11, 11)
	for i := range g.Cells() {
		g.Cells()[i] = 2
	}
	out := Upscale(g, 8)
	if out.W != 80 || out.H != 80 {
		t.Fatalf("expected 80x80, got %dx%d", out.W, out.H)
	}
	for i, v := range out.Cells() {
		if math.Abs(v-0.5) > 1e-12 {
			t.Fatalf("cell %d=%v, constant input must flatten to value/4", i, v)
		}
	}
}

func TestUpscaleBilinearWeights(t *testing.T) {
	g := core.FloatGridFromRows([][]float64{
		{0, 4, 8},
		{4, 8, 12},
		{8, 12, 16},
	})
	out := Upscale(g, 4)
	if out.W != 8 || out.H != 8 {
		t.Fatalf("expected 8x8, got %dx%d", out.W, out.H)
	}
	cases := []struct {
		x, y int
		want float64
	}{
		{0, 0, 0},
		{4, 0, 1},
		{4, 4, 2},
		{2, 0, 0.5},
		{2, 2, 1},
		{6, 5, (6 + 5) / 4.0},
	}
	for _, tc := range cases {
		if got := out.At(tc.x, tc.y); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("out(%d,%d)=%v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func kernelSum(x0, x1, y0, y1 int) float64 {
	var s float64
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s += GaussKernel[y][x]
		}
	}
	return s
}

func TestSmoothDropsOutOfBoundsWeights(t *testing.T) {
	g := core.NewFloatGrid(20, 20)
	for i := range g.Cells() {
		g.Cells()[i] = 1
	}
	out := Smooth(g)

	full := kernelSum(0, 6, 0, 6)
	if math.Abs(full-1) > 1e-6 {
		t.Fatalf("kernel should be normalized, sums to %v", full)
	}
	if got := out.At(10, 10); math.Abs(got-full) > 1e-12 {
		t.Fatalf("interior cell=%v, want %v", got, full)
	}
	corner := kernelSum(3, 6, 3, 6)
	if got := out.At(0, 0); math.Abs(got-corner) > 1e-12 {
		t.Fatalf("corner cell=%v, want %v", got, corner)
	}
	edge := kernelSum(0, 6, 3, 6)
	if got := out.At(10, 0); math.Abs(got-edge) > 1e-12 {
		t.Fatalf("edge cell=%v, want %v", got, edge)
	}
	if out.At(0, 0) >= out.At(10, 0) || out.At(10, 0) >= out.At(10, 10) {
		t.Fatal("border cells should be darkened relative to the interior")
	}
}

func TestSmoothImpulseResponse(t *testing.T) {
	g := core.NewFloatGrid(9, 9)
	g.Set(4, 4, 1)
	out := Smooth(g)
	for dy := -3; dy <= 3; dy++ {
		for dx := -3; dx <= 3; dx++ {
			want := GaussKernel[dy+3][dx+3]
			if got := out.At(4+dx, 4+dy); math.Abs(got-want) > 1e-12 {
				t.Fatalf("impulse response at (%d,%d)=%v, want %v", dx, dy, got, want)
			}
		}
	}
	if out.At(0, 0) != 0 {
		t.Fatalf("cells beyond the kernel reach must stay zero, got %v", out.At(0, 0))
	}
}

func TestCropMinimalRectangle(t *testing.T) {
	g := core.FloatGridFromRows([][]float64{
		{-1, 0, 0, 0, -1},
		{0, 0, 0.2, 0, 0},
		{0, 0.1, -0.3, 0, 0},
		{0, 0, 0.4, 0.5, 0},
		{0, 0, 0, 0, 0},
	})
	out, bounds, ok := Crop(g)
	if !ok {
		t.Fatal("expected land")
	}
	if bounds != image.Rect(1, 1, 4, 4) {
		t.Fatalf("unexpected bounds %v", bounds)
	}
	if out.W != 3 || out.H != 3 {
		t.Fatalf("unexpected cropped size %dx%d", out.W, out.H)
	}
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			if out.At(x, y) != g.At(x+1, y+1) {
				t.Fatalf("cropped value (%d,%d) altered", x, y)
			}
		}
	}
	// Every land cell lies inside the bounds and every edge row/column holds land.
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if IsLand(g.At(x, y)) && !image.Pt(x, y).In(bounds) {
				t.Fatalf("land cell (%d,%d) outside bounds", x, y)
			}
		}
	}
}

func TestCropEmpty(t *testing.T) {
	g := core.FloatGridFromRows([][]float64{{0, -0.1}, {-2, 0}})
	out, _, ok := Crop(g)
	if ok || out != nil {
		t.Fatal("zero and negative heights are not land")
	}
}

func TestCropSingleCell(t *testing.T) {
	g := core.NewFloatGrid(4, 3)
	g.Set(3, 2, 0.01)
	out, bounds, ok := Crop(g)
	if !ok || out.W != 1 || out.H != 1 || bounds != image.Rect(3, 2, 4, 3) {
		t.Fatalf("unexpected crop %v %v", bounds, ok)
	}
}
