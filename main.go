package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/pathkiteja/infinite-notepad/internal/engine"
	"github.com/pathkiteja/infinite-notepad/internal/prefs"
	"github.com/pathkiteja/infinite-notepad/internal/ui"
)

func main() {
	var (
		canvasW = flag.Int("canvas-width", 2000, "drawing surface width in pixels")
		canvasH = flag.Int("canvas-height", 2000, "drawing surface height in pixels")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	if *canvasW < 1 || *canvasH < 1 {
		logger.Error("invalid canvas size", "width", *canvasW, "height", *canvasH)
		os.Exit(2)
	}

	prefsPath := prefs.Path()
	settings := prefs.Load(prefsPath)

	eng := engine.New(*canvasW, *canvasH, engine.WithLogger(logger))
	ui.RunApp(eng, settings, prefsPath, logger)
}
