// Package telegram wraps the MTProto client the bot runs on and renders the
// bot's replies.
package telegram

import (
	"context"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"

	"github.com/pavelc4/aether-resolver/config"
	"github.com/pavelc4/aether-resolver/pkg/logger"
)

type Client struct {
	client *telegram.Client
	api    *tg.Client
	me     *tg.User
}

func NewClient(cfg *config.Config, dispatcher tg.UpdateDispatcher) (*Client, error) {
	if cfg.AppID == 0 || cfg.AppHash == "" {
		return nil, errors.New("APP_ID and APP_HASH are required")
	}

	sessionPath := filepath.Join(cfg.SessionDir, "session.json")
	opts := telegram.Options{
		SessionStorage: &session.FileStorage{Path: sessionPath},
		UpdateHandler:  dispatcher,
	}

	client := telegram.NewClient(cfg.AppID, cfg.AppHash, opts)
	return &Client{
		client: client,
		api:    client.API(),
	}, nil
}

// Start logs in as a bot and blocks until ctx is done.
func (c *Client) Start(ctx context.Context, botToken string) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		status, err := c.client.Auth().Status(ctx)
		if err != nil {
			return errors.Wrap(err, "auth status")
		}

		if !status.Authorized {
			if _, err := c.client.Auth().Bot(ctx, botToken); err != nil {
				return errors.Wrap(err, "bot login")
			}
		}

		me, err := c.client.Self(ctx)
		if err != nil {
			return errors.Wrap(err, "get self")
		}
		c.me = me

		logger.Info("Telegram client connected", "username", me.Username, "id", me.ID)

		<-ctx.Done()
		return nil
	})
}

func (c *Client) API() *tg.Client {
	return c.api
}

func (c *Client) Me() *tg.User {
	return c.me
}
