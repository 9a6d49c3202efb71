package bot

import (
	"context"

	"github.com/gotd/td/tg"

	"github.com/pavelc4/aether-resolver/internal/handler"
	"github.com/pavelc4/aether-resolver/internal/resolver"
	"github.com/pavelc4/aether-resolver/pkg/logger"
)

type Router struct {
	resolve *handler.ResolveHandler
	admin   *handler.AdminHandler
	basic   *handler.BasicHandler
}

func NewRouter(res *handler.ResolveHandler, adm *handler.AdminHandler, basic *handler.BasicHandler) *Router {
	return &Router{
		resolve: res,
		admin:   adm,
		basic:   basic,
	}
}

// OnMessage is the main entry point for updates
func (r *Router) OnMessage(ctx context.Context, e tg.Entities, update *tg.UpdateNewMessage) error {
	msg, ok := update.Message.(*tg.Message)
	if !ok {
		return nil
	}
	if err := r.HandleMessage(ctx, e, msg); err != nil {
		logger.Error("HandleMessage (Private/Group) failed", "error", err)
		return err
	}
	return nil
}

func (r *Router) OnChannelMessage(ctx context.Context, e tg.Entities, update *tg.UpdateNewChannelMessage) error {
	msg, ok := update.Message.(*tg.Message)
	if !ok {
		return nil
	}
	if err := r.HandleMessage(ctx, e, msg); err != nil {
		logger.Error("HandleMessage (Channel) failed", "error", err)
		return err
	}
	return nil
}

func (r *Router) HandleMessage(ctx context.Context, e tg.Entities, msg *tg.Message) error {
	if msg.Out {
		return nil
	}
	logger.Debug("HandleMessage called", "id", msg.ID)

	cmd, isCommand := ParseCommand(msg.Message)
	if !isCommand {
		if url := ExtractURL(msg.Message); url != "" {
			return r.resolve.HandleDownload(ctx, e, msg, url, resolver.TierBest)
		}
		return nil
	}

	switch cmd.Name {
	case "start":
		return r.basic.HandleStart(ctx, e, msg)
	case "help":
		return r.basic.HandleHelp(ctx, e, msg)
	case "stats":
		return r.admin.HandleStats(ctx, e, msg)
	case "dl", "download":
		if url, quality := downloadArgs(cmd.Args); url != "" {
			return r.resolve.HandleDownload(ctx, e, msg, url, quality)
		}
	case "info":
		if url := firstURL(cmd.Args); url != "" {
			return r.resolve.HandleInfo(ctx, e, msg, url)
		}
	case "formats", "qualities":
		if url := firstURL(cmd.Args); url != "" {
			return r.resolve.HandleFormats(ctx, e, msg, url)
		}
	}
	return r.basic.HandleUnknown(ctx, e, msg)
}

func firstURL(args []string) string {
	for _, a := range args {
		if u := ExtractURL(a); u != "" {
			return u
		}
	}
	return ""
}
