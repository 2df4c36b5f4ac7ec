package world

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"archipelago/internal/core"
	"archipelago/internal/island"
)

// Params holds the tunable generation settings.
type Params struct {
	// IslandChance is the probability that visiting a chunk attempts an island.
	IslandChance float64
	// SearchRadius bounds the placement search to offsets in [-r, r]^2.
	SearchRadius int

	Island island.Params
}

// Config controls world creation.
type Config struct {
	Seed   int64
	Anchor core.Vec

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Params: Params{
			IslandChance: 0.5,
			SearchRadius: ChunkSize,
			Island:       island.DefaultParams(),
		},
	}
}

// Validate reports settings the generator cannot honor.
func (p Params) Validate() error {
	if p.IslandChance < 0 || p.IslandChance > 1 {
		return fmt.Errorf("world: island chance %v outside [0,1]", p.IslandChance)
	}
	if p.SearchRadius < 0 {
		return fmt.Errorf("world: search radius %d negative", p.SearchRadius)
	}
	return p.Island.Validate()
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Merge(cfg)
	return c
}

// Merge overrides fields named in kv.
func (c *Config) Merge(kv map[string]string) {
	if kv == nil {
		return
	}
	if v, ok := kv["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	setFloat(kv, "anchor_x", &c.Anchor.X)
	setFloat(kv, "anchor_y", &c.Anchor.Y)
	if v, ok := kv["island_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.IslandChance = parsed
		}
	}
	setNonNegInt(kv, "search_radius", &c.Params.SearchRadius)
	setNonNegInt(kv, "exp_min", &c.Params.Island.ExpMin)
	setNonNegInt(kv, "exp_max", &c.Params.Island.ExpMax)
	setNonNegInt(kv, "scale_min", &c.Params.Island.ScaleMin)
	setNonNegInt(kv, "scale_max", &c.Params.Island.ScaleMax)
	if c.Params.Island.ExpMax <= c.Params.Island.ExpMin {
		c.Params.Island.ExpMax = c.Params.Island.ExpMin + 1
	}
	if c.Params.Island.ScaleMax <= c.Params.Island.ScaleMin {
		c.Params.Island.ScaleMax = c.Params.Island.ScaleMin + 1
	}
	setFloat(kv, "roughness", &c.Params.Island.Terrain.Roughness)
	setFloat(kv, "decay", &c.Params.Island.Terrain.Decay)
	setFloat(kv, "sentinel", &c.Params.Island.Terrain.Sentinel)
}

func setFloat(kv map[string]string, key string, dst *float64) {
	if v, ok := kv[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
}

func setNonNegInt(kv map[string]string, key string, dst *int) {
	if v, ok := kv[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
}

// Tuning is the YAML form of the generation settings. Absent keys leave the
// corresponding Config field untouched.
type Tuning struct {
	Seed         *int64   `yaml:"seed"`
	AnchorX      *float64 `yaml:"anchor_x"`
	AnchorY      *float64 `yaml:"anchor_y"`
	IslandChance *float64 `yaml:"island_chance"`
	SearchRadius *int     `yaml:"search_radius"`

	Island struct {
		ExpMin    *int     `yaml:"exp_min"`
		ExpMax    *int     `yaml:"exp_max"`
		ScaleMin  *int     `yaml:"scale_min"`
		ScaleMax  *int     `yaml:"scale_max"`
		Roughness *float64 `yaml:"roughness"`
		Decay     *float64 `yaml:"decay"`
		Sentinel  *float64 `yaml:"sentinel"`
	} `yaml:"island"`
}

// LoadTuning reads a YAML tuning file.
func LoadTuning(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	t, err := ParseTuning(raw)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTuning decodes a YAML tuning document. Unknown keys are rejected.
func ParseTuning(raw []byte) (Tuning, error) {
	var t Tuning
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("tuning: %w", err)
	}
	return t, nil
}

// Apply copies every value present in t onto c and validates the result.
func (c *Config) Apply(t Tuning) error {
	next := *c
	if t.Seed != nil {
		next.Seed = *t.Seed
	}
	if t.AnchorX != nil {
		next.Anchor.X = *t.AnchorX
	}
	if t.AnchorY != nil {
		next.Anchor.Y = *t.AnchorY
	}
	if t.IslandChance != nil {
		next.Params.IslandChance = *t.IslandChance
	}
	if t.SearchRadius != nil {
		next.Params.SearchRadius = *t.SearchRadius
	}
	ip := &next.Params.Island
	if t.Island.ExpMin != nil {
		ip.ExpMin = *t.Island.ExpMin
	}
	if t.Island.ExpMax != nil {
		ip.ExpMax = *t.Island.ExpMax
	}
	if t.Island.ScaleMin != nil {
		ip.ScaleMin = *t.Island.ScaleMin
	}
	if t.Island.ScaleMax != nil {
		ip.ScaleMax = *t.Island.ScaleMax
	}
	if t.Island.Roughness != nil {
		ip.Terrain.Roughness = *t.Island.Roughness
	}
	if t.Island.Decay != nil {
		ip.Terrain.Decay = *t.Island.Decay
	}
	if t.Island.Sentinel != nil {
		ip.Terrain.Sentinel = *t.Island.Sentinel
	}
	if err := next.Params.Validate(); err != nil {
		return fmt.Errorf("apply tuning: %w", err)
	}
	*c = next
	return nil
}
