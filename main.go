package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/termov/termov/ascii"
	"github.com/termov/termov/config"
	"github.com/termov/termov/player"
	"github.com/termov/termov/render"
	"github.com/termov/termov/source"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	ramp, err := ascii.NewRamp(cfg.Alphabet)
	if err != nil {
		return err
	}
	if cfg.FontFile != "" {
		ramp, err = ascii.RampFromFont(cfg.FontFile, cfg.Alphabet)
		if err != nil {
			return err
		}
	}

	stream, err := source.Open(cfg.FilePath)
	if err != nil {
		return err
	}
	defer stream.Close()
	rows, cols := cfg.Grid(stream.Width(), stream.Height())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer := render.New(os.Stdout, cfg.Stats)
	if err := renderer.Init(); err != nil {
		return err
	}
	defer renderer.Restore()

	p := player.New(stream, renderer, ascii.Mapper{Ramp: ramp, Gamma: cfg.Gamma}, rows, cols)
	start := time.Now()
	err = p.Play(ctx)
	if cfg.Debug {
		log.Printf("event=playback duration=%s frames=%d grid=%dx%d interval=%s",
			time.Since(start), renderer.FramesDrawn(), cols, rows, stream.FrameInterval())
	}
	if errors.Is(err, context.Canceled) {
		// An interrupt is a requested stop, not a failure.
		return nil
	}
	return err
}
