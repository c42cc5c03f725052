package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/aokiz-ek/gto-trainer/internal/presets"
	"github.com/aokiz-ek/gto-trainer/internal/server"
)

// ServeCmd runs the training server
type ServeCmd struct {
	Config string `kong:"default='trainer.hcl',help='HCL configuration file'"`
	Addr   string `kong:"help='Listen address, overrides the config file'"`
}

func (c *ServeCmd) Run(logger *log.Logger) error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	}

	set, err := presets.Load(cfg.Drill.PresetFile)
	if err != nil {
		return err
	}

	addr := cfg.ListenAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	trainer := server.NewTrainer(cfg, set, quartz.NewReal(), logger)
	srv := server.NewServer(addr, trainer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		return srv.Stop()
	}
}
