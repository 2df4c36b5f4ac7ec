// Command archipelago-term explores a generated world in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"archipelago/internal/app"
	"archipelago/internal/core"
	"archipelago/internal/world"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 30
	cfg.Pan = 2
	cfg.LogLevel = "error"
	cfg.Bind(flag.CommandLine)
	cell := flag.Float64("cell", 4, "world units covered by one terminal column")
	logFile := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	wcfg, err := cfg.WorldConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	out, err := openLog(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	logger, err := app.NewLogger(out, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	w := world.New(wcfg, world.WithLogger(logger))
	logger.Info("world created", "seed", wcfg.Seed)
	run(newViewer(screen, w, *cell, cfg.Pan, logger), core.NewThrottle(cfg.TPS))
}

// run redraws after input at most once per throttle interval.
func run(v *viewer, th *core.Throttle) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		wait := th.Interval()
		if v.dirty {
			wait = max(th.Wait(), time.Millisecond)
		}
		select {
		case ev, ok := <-events:
			if !ok || !v.handle(ev) {
				return
			}
		case <-time.After(wait):
		}
		if v.dirty && th.Allow() {
			v.frame()
		}
	}
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
