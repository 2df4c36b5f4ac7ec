//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"archipelago/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := app.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	wcfg, err := cfg.WorldConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	game := app.New(cfg, wcfg, logger)

	ebiten.SetWindowTitle("archipelago")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width+max(cfg.HUDWidth, 0), cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
