package handler

import (
	"context"

	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/telegram/message/html"
	"github.com/gotd/td/tg"

	"github.com/pavelc4/aether-resolver/internal/stats"
	"github.com/pavelc4/aether-resolver/internal/telegram"
	"github.com/pavelc4/aether-resolver/pkg/logger"
)

type AdminHandler struct {
	client  *telegram.Client
	stats   *stats.Stats
	ownerID int64
}

func NewAdminHandler(cli *telegram.Client, s *stats.Stats, ownerID int64) *AdminHandler {
	return &AdminHandler{client: cli, stats: s, ownerID: ownerID}
}

func (h *AdminHandler) HandleStats(ctx context.Context, e tg.Entities, msg *tg.Message) error {
	if h.ownerID == 0 || getSenderID(msg) != h.ownerID {
		logger.Debug("Ignoring /stats from non-owner", "sender", getSenderID(msg))
		return nil
	}

	inputPeer, err := resolvePeer(msg.PeerID, e)
	if err != nil {
		return err
	}

	text := telegram.FormatStats(h.stats.Snapshot(), stats.GetSystemInfo(ctx))
	_, err = message.NewSender(h.client.API()).To(inputPeer).Reply(msg.ID).StyledText(ctx, html.String(nil, text))
	return err
}
