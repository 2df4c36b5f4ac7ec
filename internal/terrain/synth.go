// Package terrain turns random numbers into island height fields: a
// diamond-square synthesis pass, bilinear upscaling, Gaussian smoothing and
// cropping to the land bounding box.
package terrain

import (
	"fmt"
	"math"

	"archipelago/internal/core"
	rng "archipelago/pkg/core"
)

// Params controls the fractal synthesis.
type Params struct {
	// Roughness is the offset magnitude R at depth 0.
	Roughness float64
	// Decay is k in the per-depth multiplier 2^(-k*depth).
	Decay float64
	// Sentinel is written to the outer padding ring.
	Sentinel float64
}

// DefaultParams returns the stock synthesis constants.
func DefaultParams() Params {
	return Params{Roughness: 0.1, Decay: 0.1, Sentinel: -0.1}
}

// RandMapSide returns the padded grid side 2^exp + 3 for an exponent.
func RandMapSide(exp int) int {
	return 1<<exp + 3
}

// NewRandMap allocates a padded grid of side 2^exp+3, fills its interior with
// midpoint displacement and seals the padding ring with the sentinel.
func NewRandMap(exp int, r rng.Rand, p Params) *core.FloatGrid {
	if exp < 1 || exp > 16 {
		panic(fmt.Sprintf("terrain.NewRandMap: exponent %d out of range", exp))
	}
	side := RandMapSide(exp)
	g := core.NewFloatGrid(side, side)
	Displace(g, 1, 1, side-3, r, p)
	SealBorder(g, p.Sentinel)
	return g
}

// Displace runs midpoint displacement over the square whose corners are
// (x0, y0) and (x0+span, y0+span). Values are accumulated into g, so the
// caller decides the starting values (zero for a fresh grid).
func Displace(g *core.FloatGrid, x0, y0, span int, r rng.Rand, p Params) {
	if !g.InBounds(x0, y0) || !g.InBounds(x0+span, y0+span) {
		panic(fmt.Sprintf("terrain.Displace: square (%d,%d)+%d outside %dx%d grid", x0, y0, span, g.W, g.H))
	}
	displace(g, x0, y0, span, 0, r, p)
}

func displace(g *core.FloatGrid, x0, y0, span, depth int, r rng.Rand, p Params) {
	if span < 2 {
		return
	}
	mag := p.Roughness * math.Pow(2, -p.Decay*float64(depth))
	half := span / 2
	x1, y1 := x0+span, y0+span
	xm, ym := x0+half, y0+half

	nw := g.At(x0, y0)
	ne := g.At(x1, y0)
	sw := g.At(x0, y1)
	se := g.At(x1, y1)

	center := (nw+ne+sw+se)/4 + rng.UniformSymmetric(r, mag)
	g.Add(xm, ym, center)

	const centerWeight = 2
	west := (nw+sw+centerWeight*center)/4 + rng.UniformSymmetric(r, mag)
	north := (nw+ne+centerWeight*center)/4 + rng.UniformSymmetric(r, mag)
	east := (ne+se+centerWeight*center)/4 + rng.UniformSymmetric(r, mag)
	south := (sw+se+centerWeight*center)/4 + rng.UniformSymmetric(r, mag)

	g.Add(x0, ym, west)
	g.Add(xm, y0, north)
	g.Add(x1, ym, east)
	g.Add(xm, y1, south)

	displace(g, x0, y0, half, depth+1, r, p)
	displace(g, x0, ym, half, depth+1, r, p)
	displace(g, xm, y0, half, depth+1, r, p)
	displace(g, xm, ym, half, depth+1, r, p)
}

// SealBorder forces every cell of the outermost ring to v.
func SealBorder(g *core.FloatGrid, v float64) {
	for x := 0; x < g.W; x++ {
		g.Set(x, 0, v)
		g.Set(x, g.H-1, v)
	}
	for y := 0; y < g.H; y++ {
		g.Set(0, y, v)
		g.Set(g.W-1, y, v)
	}
}
