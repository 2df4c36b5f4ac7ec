package world

import (
	"fmt"
	"strconv"

	"archipelago/internal/core"
	"archipelago/internal/island"
)

// Parameters reports world statistics and generation tunables for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	s := w.stats
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("islands", "Islands", len(w.islands)),
				intParam("chunks", "Chunks", len(w.chunks)),
				intParam("land_tiles", "Land tiles", s.LandTiles),
				textParam("bounds", "Bounds", fmt.Sprintf("%.0fx%.0f", w.bounds.W(), w.bounds.H())),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Outcomes",
			Params: []core.Parameter{
				intParam("attempts", "Attempts", s.Attempts),
				intParam("empty", "Empty", s.Empty),
				intParam("shifted", "Shifted", s.Shifted),
				intParam("discarded", "Discarded", s.Discarded),
			},
		},
		{
			Name: "Generation",
			Params: []core.Parameter{
				floatParam("island_chance", "Island chance", p.IslandChance),
				intParam("search_radius", "Search radius", p.SearchRadius),
				intParam("exp_min", "Exponent min", p.Island.ExpMin),
				intParam("exp_max", "Exponent max", p.Island.ExpMax),
				intParam("scale_min", "Scale min", p.Island.ScaleMin),
				intParam("scale_max", "Scale max", p.Island.ScaleMax),
				floatParam("roughness", "Roughness", p.Island.Terrain.Roughness),
				floatParam("decay", "Decay", p.Island.Terrain.Decay),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables the HUD may adjust.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "island_chance", Label: "Island chance", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "search_radius", Label: "Search radius", Type: core.ParamTypeInt, Step: 16, Min: 0, Max: 4 * ChunkSize, HasMin: true, HasMax: true},
		{Key: "exp_max", Label: "Exponent max", Type: core.ParamTypeInt, Step: 1, Min: 2, Max: 8, HasMin: true, HasMax: true},
		{Key: "scale_max", Label: "Scale max", Type: core.ParamTypeInt, Step: 1, Min: 2, Max: 32, HasMin: true, HasMax: true},
		{Key: "roughness", Label: "Roughness", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true},
		{Key: "decay", Label: "Decay", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 2, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer tunable. Changes that would leave the
// configuration invalid are refused.
func (w *World) SetIntParameter(key string, value int) bool {
	next := w.cfg.Params
	switch key {
	case "search_radius":
		next.SearchRadius = value
	case "exp_min":
		next.Island.ExpMin = value
	case "exp_max":
		next.Island.ExpMax = value
	case "scale_min":
		next.Island.ScaleMin = value
	case "scale_max":
		next.Island.ScaleMax = value
	default:
		return false
	}
	return w.setParams(next)
}

// SetFloatParameter updates a floating point tunable.
func (w *World) SetFloatParameter(key string, value float64) bool {
	next := w.cfg.Params
	switch key {
	case "island_chance":
		next.IslandChance = value
	case "roughness":
		next.Island.Terrain.Roughness = value
	case "decay":
		next.Island.Terrain.Decay = value
	default:
		return false
	}
	return w.setParams(next)
}

func (w *World) setParams(p Params) bool {
	if err := p.Validate(); err != nil {
		w.log.Debug("parameter rejected", "error", err)
		return false
	}
	w.cfg.Params = p
	if f, ok := w.source.(*island.Factory); ok {
		f.SetParams(p.Island)
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func textParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Value: value}
}
