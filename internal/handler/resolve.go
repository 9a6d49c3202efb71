package handler

import (
	"context"
	"fmt"

	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/telegram/message/html"
	"github.com/gotd/td/tg"

	"github.com/pavelc4/aether-resolver/internal/media"
	"github.com/pavelc4/aether-resolver/internal/resolver"
	"github.com/pavelc4/aether-resolver/internal/telegram"
	"github.com/pavelc4/aether-resolver/pkg/logger"
)

// Resolver is the part of *resolver.Resolver the bot uses.
type Resolver interface {
	Download(ctx context.Context, url string, quality resolver.Tier) (*media.Download, error)
	Metadata(ctx context.Context, url string) (*media.Metadata, error)
	Qualities(ctx context.Context, url string) (*media.Qualities, error)
}

type ResolveHandler struct {
	client   *telegram.Client
	resolver Resolver
}

func NewResolveHandler(cli *telegram.Client, r Resolver) *ResolveHandler {
	return &ResolveHandler{client: cli, resolver: r}
}

func (h *ResolveHandler) HandleDownload(ctx context.Context, e tg.Entities, msg *tg.Message, url string, quality resolver.Tier) error {
	userName := getUserName(e, msg)
	return h.respond(ctx, e, msg, url, func(ctx context.Context) (string, error) {
		d, err := h.resolver.Download(ctx, url, quality)
		if err != nil {
			return "", err
		}
		return telegram.FormatDownload(d, userName), nil
	})
}

func (h *ResolveHandler) HandleInfo(ctx context.Context, e tg.Entities, msg *tg.Message, url string) error {
	return h.respond(ctx, e, msg, url, func(ctx context.Context) (string, error) {
		m, err := h.resolver.Metadata(ctx, url)
		if err != nil {
			return "", err
		}
		return telegram.FormatMetadata(m), nil
	})
}

func (h *ResolveHandler) HandleFormats(ctx context.Context, e tg.Entities, msg *tg.Message, url string) error {
	return h.respond(ctx, e, msg, url, func(ctx context.Context) (string, error) {
		q, err := h.resolver.Qualities(ctx, url)
		if err != nil {
			return "", err
		}
		return telegram.FormatQualities(q), nil
	})
}

// respond posts a placeholder reply and edits it with the outcome of run.
func (h *ResolveHandler) respond(ctx context.Context, e tg.Entities, msg *tg.Message, url string, run func(context.Context) (string, error)) error {
	inputPeer, err := resolvePeer(msg.PeerID, e)
	if err != nil {
		return fmt.Errorf("failed to resolve peer: %w", err)
	}

	sender := message.NewSender(h.client.API())
	sent, err := sender.To(inputPeer).Reply(msg.ID).Text(ctx, telegram.FormatResolving())
	if err != nil {
		return fmt.Errorf("send message failed: %w", err)
	}
	sentMsgID := getMsgID(sent)

	text, runErr := run(ctx)
	if runErr != nil {
		logger.Warn("Bot resolve failed", "url", logger.MaskURL(url), "kind", resolver.KindOf(runErr), "error", runErr)
		text = telegram.FormatError(runErr)
	}

	if sentMsgID == 0 {
		_, err = sender.To(inputPeer).Reply(msg.ID).StyledText(ctx, html.String(nil, text))
	} else {
		_, err = sender.To(inputPeer).Edit(sentMsgID).StyledText(ctx, html.String(nil, text))
	}
	if err != nil {
		return fmt.Errorf("send result failed: %w", err)
	}
	return nil
}
