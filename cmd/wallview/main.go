// wallview previews a wall mesh and reloads it when the file changes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/wallmesh/internal/config"
	"github.com/Faultbox/wallmesh/internal/logger"
	"github.com/Faultbox/wallmesh/internal/preview"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, `Usage: wallview [flags] <wall.yaml | mesh.wmsh>

Controls:
  drag   rotate        wheel  zoom
  W      wireframe     B      bounds
  F      refit camera  R      reload
  Esc    quit`)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== wallview ===", zap.String("path", args[0]))
	logger.Sugar.Debugf("Config: %+v", cfg)

	err = preview.Run(ctx, preview.Options{
		Path:     args[0],
		Viewer:   cfg.Viewer,
		Debounce: cfg.Watch.Debounce,
	})
	if err != nil {
		logger.Error("preview failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("preview closed normally")
}
