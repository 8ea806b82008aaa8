package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/rhythm-detective/app"
	"github.com/lixenwraith/rhythm-detective/audio"
	"github.com/lixenwraith/rhythm-detective/config"
	"github.com/lixenwraith/rhythm-detective/logger"
	"github.com/lixenwraith/rhythm-detective/metrics"
	"github.com/lixenwraith/rhythm-detective/notify"
	"github.com/lixenwraith/rhythm-detective/service"
	"github.com/lixenwraith/rhythm-detective/terminal"
)

// services bundles the hub with typed handles to its members
type services struct {
	hub      *service.Hub
	terminal *terminal.TerminalService
	audio    *audio.AudioService
	notify   *notify.Dispatcher
	metrics  *metrics.Server
}

// buildServices registers every runtime service in the hub
func buildServices(cfg config.Config, m *metrics.Metrics, screens terminal.ScreenFactory) (*services, error) {
	dispatcher, err := notify.New(cfg.NotifySettings(), logger.WithComponent("notify"), m.ObserveDelivery)
	if err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}

	s := &services{
		hub:      service.NewHub(logger.WithComponent("hub")),
		terminal: terminal.NewService(screens),
		audio:    audio.NewService(cfg.AudioSettings(), logger.WithComponent("audio")),
		notify:   dispatcher,
		metrics:  metrics.NewServer(cfg.Metrics.Listen, m, logger.WithComponent("metrics")),
	}
	for _, svc := range []service.Service{s.terminal, s.audio, s.notify, s.metrics} {
		if err := s.hub.Register(svc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// run wires services and blocks in the event loop until quit or signal
func run(ctx context.Context, cfg config.Config) error {
	logFile, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger.Configure(logger.Config{Level: cfg.Log.Level, Output: logFile})
	log := logger.WithComponent("main")
	log.Info().Str("version", version).Strs("sinks", cfg.Notify.Sinks).Msg("starting")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	svcs, err := buildServices(cfg, m, nil)
	if err != nil {
		return err
	}

	if err := svcs.hub.InitAll(); err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	if err := svcs.hub.StartAll(); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	defer func() {
		if err := svcs.hub.StopAll(); err != nil {
			log.Warn().Err(err).Msg("service shutdown")
		}
	}()

	return play(ctx, cfg, svcs, m, log)
}

// play builds the game over running services and runs its loop
func play(ctx context.Context, cfg config.Config, svcs *services, m *metrics.Metrics, log zerolog.Logger) error {
	keys, err := cfg.KeyTable()
	if err != nil {
		return err
	}

	synth := svcs.audio.Synth()
	if cfg.Audio.Muted && synth != nil && !synth.IsMuted() {
		synth.ToggleMute()
	}

	opts := app.Options{
		Screen:   svcs.terminal.Screen(),
		Audio:    svcs.audio.Player(),
		Listener: svcs.notify,
		Metrics:  m,
		Keys:     keys,
		Timing:   cfg.EngineTiming(),
		Logger:   logger.WithComponent("game"),

		HidePattern: cfg.Display.HidePattern,
	}
	if synth != nil {
		opts.Sound = synth
	}

	game, err := app.New(opts)
	if err != nil {
		return err
	}

	err = game.Run(ctx, svcs.terminal.Events())
	log.Info().Err(err).Msg("event loop exited")
	return err
}
