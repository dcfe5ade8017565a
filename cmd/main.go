package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"tg_giftwatch/internal/application"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	if err := application.Run(ctx, log, cancel); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("application failed", "error", err)
		os.Exit(1)
	}

	log.Info("application stopped")
}
