// Command play runs the raycaster in the local terminal without a server.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"tilecaster/internal/config"
	"tilecaster/internal/game"
	"tilecaster/internal/ui"
)

func main() {
	configureLogging()

	mapPath := flag.String("map", "", "map JSON file (default: TILECASTER_MAP)")
	atlasPath := flag.String("atlas", "", "texture atlas (default: TILECASTER_ATLAS)")
	flag.Parse()

	cfg := config.Load()
	if *mapPath != "" {
		cfg.MapPath = *mapPath
	}
	if *atlasPath != "" {
		cfg.AtlasPath = *atlasPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	w, err := game.LoadWorld(cfg.MapPath, cfg.AtlasPath, cfg.TileSize, cfg.TileCount)
	if err != nil {
		log.Fatalf("Failed to load room: %v", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	s := newSession(screen, w, cfg)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(game.TickInterval(cfg.TickRate))
	defer ticker.Stop()

	s.draw()
	for {
		select {
		case ev := <-events:
			if s.handle(ev) {
				screen.Close()
				return
			}
		case <-ticker.C:
			if s.step() {
				s.draw()
			}
		}
	}
}

func configureLogging() {
	log.SetFlags(log.Ltime | log.Lshortfile)
}
