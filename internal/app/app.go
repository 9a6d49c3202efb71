// Package app wires configuration, the resolver core and the front-ends.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gotd/td/tg"

	"github.com/pavelc4/aether-resolver/config"
	"github.com/pavelc4/aether-resolver/internal/api"
	"github.com/pavelc4/aether-resolver/internal/bot"
	"github.com/pavelc4/aether-resolver/internal/extractor"
	"github.com/pavelc4/aether-resolver/internal/handler"
	"github.com/pavelc4/aether-resolver/internal/middleware"
	"github.com/pavelc4/aether-resolver/internal/resolver"
	"github.com/pavelc4/aether-resolver/internal/stats"
	"github.com/pavelc4/aether-resolver/internal/telegram"
	"github.com/pavelc4/aether-resolver/pkg/logger"
	"github.com/pavelc4/aether-resolver/pkg/worker"
)

type App struct {
	Cfg      *config.Config
	Pool     *worker.Pool
	Stats    *stats.Stats
	Resolver *resolver.Resolver
}

// New builds the resolver core shared by the HTTP API and the bot.
func New(cfg *config.Config) (*App, error) {
	if err := resolver.ValidateTiers(); err != nil {
		return nil, err
	}

	pool := worker.NewPool(cfg.Workers, cfg.MaxQueue)
	st := stats.New()
	stats.InitNetBaseline()

	provider := extractor.NewYtDlp(cfg.YtDlpPath, cfg.YtDlpCookies)
	res := resolver.New(provider, pool, resolver.Config{
		MaxRetries:      cfg.MaxRetries,
		RetryDelay:      cfg.RetryDelay,
		Timeout:         cfg.RequestTimeout,
		SocketTimeout:   cfg.SocketTimeout,
		CancelOnTimeout: cfg.CancelOnTimeout,
	}, resolver.WithStats(st))

	logger.Info("Resolver initialized",
		"workers", cfg.Workers,
		"max_queue", cfg.MaxQueue,
		"max_retries", cfg.MaxRetries,
		"timeout", cfg.RequestTimeout,
		"ytdlp", cfg.YtDlpPath,
	)

	return &App{
		Cfg:      cfg,
		Pool:     pool,
		Stats:    st,
		Resolver: res,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	router := api.NewRouter(api.Options{
		Resolver:  a.Resolver,
		Pool:      a.Pool,
		Stats:     a.Stats,
		RateLimit: a.Cfg.RateLimit,
		APIKey:    a.Cfg.APIKey,
	})

	return &http.Server{
		Addr:              a.Cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      a.Cfg.RequestTimeout + 10*time.Second,
	}
}

// NewBot builds the Telegram front-end. Updates are handled on their own
// goroutines.
func (a *App) NewBot() (*bot.Bot, error) {
	dispatcher := tg.NewUpdateDispatcher()

	client, err := telegram.NewClient(a.Cfg, dispatcher)
	if err != nil {
		return nil, err
	}

	router := bot.NewRouter(
		handler.NewResolveHandler(client, a.Resolver),
		handler.NewAdminHandler(client, a.Stats, a.Cfg.OwnerID),
		handler.NewBasicHandler(client),
	)

	dispatcher.OnNewMessage(func(ctx context.Context, e tg.Entities, update *tg.UpdateNewMessage) error {
		handle := func() {
			if err := router.OnMessage(ctx, e, update); err != nil {
				logger.Error("OnMessage failed", "error", err)
			}
		}
		go middleware.Chain(handle, middleware.Recover, middleware.Logger("OnNewMessage"))()
		return nil
	})

	dispatcher.OnNewChannelMessage(func(ctx context.Context, e tg.Entities, update *tg.UpdateNewChannelMessage) error {
		handle := func() {
			if err := router.OnChannelMessage(ctx, e, update); err != nil {
				logger.Error("OnChannelMessage failed", "error", err)
			}
		}
		go middleware.Chain(handle, middleware.Recover, middleware.Logger("OnNewChannelMessage"))()
		return nil
	})

	logger.Info("Bot initialized", "owner", a.Cfg.OwnerID)
	return bot.New(client, router), nil
}

// Close waits for running extractions to finish.
func (a *App) Close() {
	a.Pool.Stop()
}
