package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pavelc4/aether-resolver/config"
	"github.com/pavelc4/aether-resolver/internal/app"
	"github.com/pavelc4/aether-resolver/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.LogFormat, cfg.LogLevel)

	if cfg.BotToken == "" {
		logger.Error("BOT_TOKEN is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("Failed to initialize resolver", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	b, err := a.NewBot()
	if err != nil {
		logger.Error("Failed to initialize bot", "error", err)
		os.Exit(1)
	}

	if err := b.Run(ctx, cfg.BotToken); err != nil {
		logger.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot stopped")
}
