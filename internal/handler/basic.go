package handler

import (
	"context"

	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/telegram/message/html"
	"github.com/gotd/td/tg"

	"github.com/pavelc4/aether-resolver/internal/telegram"
)

type BasicHandler struct {
	client *telegram.Client
}

func NewBasicHandler(cli *telegram.Client) *BasicHandler {
	return &BasicHandler{client: cli}
}

func (h *BasicHandler) HandleStart(ctx context.Context, e tg.Entities, msg *tg.Message) error {
	return h.reply(ctx, e, msg, telegram.FormatStart(), nil)
}

func (h *BasicHandler) HandleHelp(ctx context.Context, e tg.Entities, msg *tg.Message) error {
	markup := tg.ReplyInlineMarkup{
		Rows: []tg.KeyboardButtonRow{
			{
				Buttons: []tg.KeyboardButtonClass{
					&tg.KeyboardButtonURL{
						Text: "Developer",
						URL:  "https://t.me/pavellc",
					},
					&tg.KeyboardButtonURL{
						Text: "Source",
						URL:  "https://github.com/pavelc4/aether-resolver",
					},
				},
			},
		},
	}
	return h.reply(ctx, e, msg, telegram.FormatHelp(), &markup)
}

func (h *BasicHandler) HandleUnknown(ctx context.Context, e tg.Entities, msg *tg.Message) error {
	return h.reply(ctx, e, msg, telegram.FormatUnknown(), nil)
}

func (h *BasicHandler) reply(ctx context.Context, e tg.Entities, msg *tg.Message, text string, markup tg.ReplyMarkupClass) error {
	peer, err := resolvePeer(msg.PeerID, e)
	if err != nil {
		return err
	}

	b := message.NewSender(h.client.API()).To(peer).Reply(msg.ID)
	if markup != nil {
		b = b.Markup(markup)
	}
	_, err = b.StyledText(ctx, html.String(nil, text))
	return err
}
