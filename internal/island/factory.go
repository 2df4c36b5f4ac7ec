// Package island builds positioned tile grids from synthesized terrain.
package island

import (
	"fmt"
	"io"
	"log/slog"

	"archipelago/internal/core"
	"archipelago/internal/terrain"
	rng "archipelago/pkg/core"
)

// Params bounds the per-island random choices. Both ranges are half-open.
type Params struct {
	ExpMin   int
	ExpMax   int
	ScaleMin int
	ScaleMax int
	Terrain  terrain.Params
}

// DefaultParams returns the stock island generation ranges.
func DefaultParams() Params {
	return Params{
		ExpMin:   3,
		ExpMax:   5,
		ScaleMin: 8,
		ScaleMax: 12,
		Terrain:  terrain.DefaultParams(),
	}
}

// Validate reports inconsistent ranges.
func (p Params) Validate() error {
	if p.ExpMin < 1 || p.ExpMax <= p.ExpMin || p.ExpMax > 12 {
		return fmt.Errorf("island: exponent range [%d,%d) invalid", p.ExpMin, p.ExpMax)
	}
	if p.ScaleMin < 1 || p.ScaleMax <= p.ScaleMin {
		return fmt.Errorf("island: scale range [%d,%d) invalid", p.ScaleMin, p.ScaleMax)
	}
	if p.Terrain.Roughness < 0 {
		return fmt.Errorf("island: roughness %v negative", p.Terrain.Roughness)
	}
	return nil
}

// Factory creates islands from a shared random source.
type Factory struct {
	params Params
	rng    rng.Rand
	log    *slog.Logger
}

// NewFactory returns a Factory. A nil logger discards output.
func NewFactory(p Params, r rng.Rand, log *slog.Logger) *Factory {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Factory{params: p, rng: r, log: log}
}

// Params returns the factory's current ranges.
func (f *Factory) Params() Params { return f.params }

// SetParams replaces the factory's ranges.
func (f *Factory) SetParams(p Params) { f.params = p }

// Create synthesizes an island centered on origin. It returns false when the
// smoothed height field holds no land.
func (f *Factory) Create(origin core.Vec) (*Island, bool) {
	exp := rng.UniformInt(f.rng, f.params.ExpMin, f.params.ExpMax)
	randMap := terrain.NewRandMap(exp, f.rng, f.params.Terrain)

	scale := rng.UniformInt(f.rng, f.params.ScaleMin, f.params.ScaleMax)
	heights := terrain.Smooth(terrain.Upscale(randMap, scale))

	cropped, _, ok := terrain.Crop(heights)
	if !ok {
		f.log.Debug("island empty after crop", "side", randMap.W, "scale", scale)
		return nil, false
	}
	is := FromHeights(origin, cropped)
	f.log.Debug("island created",
		"side", randMap.W,
		"scale", scale,
		"w", cropped.W,
		"h", cropped.H,
	)
	return is, true
}
