package terrain

import (
	"fmt"
	"math"

	"archipelago/internal/core"
)

// flattenDivisor scales every interpolated sample down.
const flattenDivisor = 4

// Upscale bilinearly resamples g by an integer factor. The output covers
// (W-1)*scale by (H-1)*scale cells and every sample is divided by 4.
func Upscale(g *core.FloatGrid, scale int) *core.FloatGrid {
	if scale < 1 {
		panic(fmt.Sprintf("terrain.Upscale: scale %d < 1", scale))
	}
	if g.W < 2 || g.H < 2 {
		panic(fmt.Sprintf("terrain.Upscale: grid %dx%d too small", g.W, g.H))
	}
	out := core.NewFloatGrid((g.W-1)*scale, (g.H-1)*scale)
	s := float64(scale)
	for y := 0; y < out.H; y++ {
		fy := float64(y) / s
		y1 := int(fy)
		ty := fy - math.Floor(fy)
		for x := 0; x < out.W; x++ {
			fx := float64(x) / s
			x1 := int(fx)
			tx := fx - math.Floor(fx)
			v := g.At(x1, y1)*(1-tx)*(1-ty) +
				g.At(x1+1, y1)*tx*(1-ty) +
				g.At(x1, y1+1)*(1-tx)*ty +
				g.At(x1+1, y1+1)*tx*ty
			out.Set(x, y, v/flattenDivisor)
		}
	}
	return out
}

const gaussRadius = 3

// GaussKernel is the normalized 7x7 smoothing kernel.
var GaussKernel = [2*gaussRadius + 1][2*gaussRadius + 1]float64{
	{0.00000067, 0.00002292, 0.00019117, 0.00038771, 0.00019117, 0.00002292, 0.00000067},
	{0.00002292, 0.00078633, 0.00655965, 0.01330373, 0.00655965, 0.00078633, 0.00002292},
	{0.00019117, 0.00655965, 0.05472157, 0.11098164, 0.05472157, 0.00655965, 0.00019117},
	{0.00038771, 0.01330373, 0.11098164, 0.22508352, 0.11098164, 0.01330373, 0.00038771},
	{0.00019117, 0.00655965, 0.05472157, 0.11098164, 0.05472157, 0.00655965, 0.00019117},
	{0.00002292, 0.00078633, 0.00655965, 0.01330373, 0.00655965, 0.00078633, 0.00002292},
	{0.00000067, 0.00002292, 0.00019117, 0.00038771, 0.00019117, 0.00002292, 0.00000067},
}

// Smooth convolves g with GaussKernel. Kernel taps that fall outside the grid
// are dropped without renormalizing, so edge cells receive less than unit
// total weight.
func Smooth(g *core.FloatGrid) *core.FloatGrid {
	out := core.NewFloatGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var acc float64
			for dy := -gaussRadius; dy <= gaussRadius; dy++ {
				yy := y + dy
				if yy < 0 || yy >= g.H {
					continue
				}
				for dx := -gaussRadius; dx <= gaussRadius; dx++ {
					xx := x + dx
					if xx < 0 || xx >= g.W {
						continue
					}
					acc += g.At(xx, yy) * GaussKernel[dy+gaussRadius][dx+gaussRadius]
				}
			}
			out.Set(x, y, acc)
		}
	}
	return out
}
