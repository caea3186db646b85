package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	courseName := flag.String("course", "side", "course name in prefabs/courses (basename, .yaml optional)")
	tuning := flag.String("tuning", "controller.yaml", "controller tuning file in prefabs/")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("locoview")

	game, err := NewGame(*courseName, *tuning, *debug, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer game.Close()

	// Mouse look needs raw deltas, so the cursor stays captured.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
