package main

import (
	"context"
	"embed"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jozef-javorsky-dodo/sudoku-server/internal/app"
	"github.com/jozef-javorsky-dodo/sudoku-server/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	level := slog.LevelInfo
	if config.Development() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	a := app.New(logger, migrations)

	if err := a.Start(ctx); err != nil {
		logger.Error("failed to start server", slog.Any("error", err))
		os.Exit(1)
	}
}
