// Command island-sweep generates islands and small worlds for a grid of
// generation parameters and reports how often islands come out empty, how
// much land they carry and how placement behaves.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"archipelago/internal/app"
	"archipelago/internal/core"
	"archipelago/internal/island"
	"archipelago/internal/world"
	rng "archipelago/pkg/core"
)

type paramSet struct {
	expMin, expMax     int
	scaleMin, scaleMax int
	roughness          float64
	decay              float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("exp=[%d,%d) scale=[%d,%d) roughness=%.3f decay=%.2f",
		p.expMin, p.expMax, p.scaleMin, p.scaleMax, p.roughness, p.decay)
}

func (p paramSet) apply(base world.Params) world.Params {
	out := base
	out.Island.ExpMin, out.Island.ExpMax = p.expMin, p.expMax
	out.Island.ScaleMin, out.Island.ScaleMax = p.scaleMin, p.scaleMax
	out.Island.Terrain.Roughness = p.roughness
	out.Island.Terrain.Decay = p.decay
	return out
}

type scenarioResult struct {
	params paramSet

	samples   int
	empty     int
	landTiles int
	maxSide   int

	islands   int
	chunks    int
	shifted   int
	discarded int
	coverage  float64
}

func (r scenarioResult) emptyRate() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.empty) / float64(r.samples)
}

func (r scenarioResult) meanLand() float64 {
	if r.samples == r.empty {
		return 0
	}
	return float64(r.landTiles) / float64(r.samples-r.empty)
}

func main() {
	samples := flag.Int("samples", 64, "islands generated per parameter set")
	span := flag.Int("span", 6, "edge length, in chunks, of the world explored per parameter set")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1337, "base seed; every scenario uses the same seeds")
	top := flag.Int("top", 5, "number of results to print")
	tuning := flag.String("tuning", "", "YAML file with base generation settings")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn or error")
	var overrides app.KVList
	flag.Var(&overrides, "set", "base parameter override in key=value form (repeatable)")
	flag.Parse()

	logger, err := app.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		log.Fatal(err)
	}

	base, err := baseConfig(*tuning, overrides, *seed)
	if err != nil {
		log.Fatal(err)
	}

	sets := buildSets()
	logger.Info("sweep starting", "sets", len(sets), "workers", *workers, "samples", *samples, "span", *span)

	start := time.Now()
	all := sweep(base, sets, *samples, *span, *workers)
	sort.Slice(all, func(i, j int) bool {
		if all[i].coverage != all[j].coverage {
			return all[i].coverage > all[j].coverage
		}
		return all[i].emptyRate() < all[j].emptyRate()
	})

	fmt.Printf("Top %d of %d parameter sets by land coverage (elapsed %s):\n", min(*top, len(all)), len(all), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		printResult(i+1, all[i])
	}
	if len(all) > 0 {
		fmt.Println("\nWorst:")
		printResult(len(all), all[len(all)-1])
	}
}

// baseConfig layers the tuning file and -set overrides over the defaults and
// fixes the seed shared by every scenario.
func baseConfig(tuning string, overrides app.KVList, seed int64) (world.Config, error) {
	base := world.DefaultConfig()
	if tuning != "" {
		t, err := world.LoadTuning(tuning)
		if err != nil {
			return world.Config{}, err
		}
		if err := base.Apply(t); err != nil {
			return world.Config{}, fmt.Errorf("%s: %w", tuning, err)
		}
	}
	base.Merge(overrides.Map())
	if err := base.Params.Validate(); err != nil {
		return world.Config{}, fmt.Errorf("overrides: %w", err)
	}
	base.Seed = seed
	return base, nil
}

func buildSets() []paramSet {
	expOptions := []struct{ min, max int }{{3, 4}, {3, 5}, {4, 5}}
	scaleOptions := []struct{ min, max int }{{4, 8}, {8, 12}}
	roughnessOptions := []float64{0.05, 0.1, 0.2}
	decayOptions := []float64{0, 0.1, 0.3}

	var sets []paramSet
	for _, exp := range expOptions {
		for _, scale := range scaleOptions {
			for _, r := range roughnessOptions {
				for _, d := range decayOptions {
					sets = append(sets, paramSet{
						expMin: exp.min, expMax: exp.max,
						scaleMin: scale.min, scaleMax: scale.max,
						roughness: r, decay: d,
					})
				}
			}
		}
	}
	return sets
}

func sweep(base world.Config, sets []paramSet, samples, span, workers int) []scenarioResult {
	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < max(workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, samples, span)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	return all
}

func runScenario(base world.Config, params paramSet, samples, span int) scenarioResult {
	cfg := base
	cfg.Params = params.apply(base.Params)
	res := scenarioResult{params: params, samples: samples}

	factory := island.NewFactory(cfg.Params.Island, rng.NewRNG(cfg.Seed), nil)
	for i := 0; i < samples; i++ {
		is, ok := factory.Create(core.Vec{})
		if !ok {
			res.empty++
			continue
		}
		res.landTiles += is.LandCount()
		w, h := is.Size()
		res.maxSide = max(res.maxSide, w, h)
	}

	wld := world.New(cfg, world.WithRand(rng.NewRNG(cfg.Seed)))
	extent := float64(span * world.ChunkSize)
	wld.Explore(core.RectAt(core.Vec{}, extent, extent))
	st := wld.Stats()
	res.islands = st.Accepted
	res.chunks = wld.ChunkCount()
	res.shifted = st.Shifted
	res.discarded = st.Discarded
	if b := wld.Bounds(); !b.Empty() {
		res.coverage = float64(st.LandTiles) / (b.W() * b.H())
	}
	return res
}

func printResult(rank int, r scenarioResult) {
	fmt.Printf("%2d) empty=%.2f meanLand=%.0f maxSide=%d islands=%d chunks=%d shifted=%d discarded=%d coverage=%.4f params=%s\n",
		rank, r.emptyRate(), r.meanLand(), r.maxSide, r.islands, r.chunks, r.shifted, r.discarded, r.coverage, r.params)
}
