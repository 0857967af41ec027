package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"glimmer/internal/artnet"
	"glimmer/internal/config"
	"glimmer/internal/ctrl"
	"glimmer/internal/driver"
	"glimmer/internal/engine"
	"glimmer/internal/sacn"
	"glimmer/internal/stage"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		fps        = flag.Int("fps", 0, "override frame rate from config")
		logLevel   = flag.String("log-level", "", "override log level from config")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Str("path", *configPath).Msg("config load failed")
		os.Exit(1)
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Error().Err(err).Str("level", cfg.LogLevel).Msg("bad log level")
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(level)

	rig, err := stage.Build(cfg, newDriver(cfg))
	if err != nil {
		log.Error().Err(err).Msg("rig wiring failed")
		os.Exit(1)
	}
	defer rig.Close()
	log.Info().
		Int("universes", len(rig.Universes)).
		Int("channels", len(rig.Channels)).
		Int("fps", cfg.FPS).
		Msg("rig wired")

	channels := make([]engine.Updater, len(rig.Channels))
	for i, c := range rig.Channels {
		channels[i] = c
	}
	universes := make([]engine.Sender, len(rig.Universes))
	for i, u := range rig.Universes {
		universes[i] = u
	}
	eng := engine.New(channels, universes, cfg.FPS, log.Logger)

	if cfg.ControlAddr != "" {
		srv := ctrl.NewServer(eng, statusOf(eng, rig, cfg.FPS), log.Logger)
		go func() {
			if err := srv.ListenAndServe(cfg.ControlAddr); err != nil {
				log.Error().Err(err).Msg("control server exited")
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		eng.RequestStop()
	}()

	eng.Run()
	log.Info().Msg("shutdown complete")
}

// newDriver maps a universe's configured protocol onto a concrete output
// driver.
func newDriver(cfg *config.Config) stage.DriverFactory {
	return func(uc config.Universe) (drv driver.Driver, err error) {
		switch uc.Protocol {
		case "sacn":
			drv, err = sacn.NewTransmitter(uc.Address, uc.Universe, uc.Channels, sacn.Options{
				SourceName: cfg.SourceName,
				Priority:   cfg.Priority,
				Preview:    true,
			})
		case "artnet":
			drv, err = artnet.NewSender(uc.Address, uc.Universe, uc.Channels)
		case "spi":
			drv, err = driver.NewSPI(uc.Address, uc.Channels)
		case "screen":
			drv, err = driver.NewScreen(uc.Channels)
		case "sim":
			drv = driver.NewSim()
		default:
			err = fmt.Errorf("unknown protocol %q", uc.Protocol)
		}
		return drv, err
	}
}

func statusOf(eng *engine.Engine, rig *stage.Stage, fps int) ctrl.StatusFunc {
	names := make([]string, len(rig.Universes))
	for i, u := range rig.Universes {
		names[i] = u.Name()
	}
	return func() ctrl.Status {
		return ctrl.Status{
			State:     eng.CurrentState().String(),
			Frames:    eng.Frames(),
			Overruns:  eng.Overruns(),
			FPS:       fps,
			Universes: names,
		}
	}
}
