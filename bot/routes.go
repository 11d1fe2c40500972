package bot

import (
	"context"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/maxexpress/maxbot/core/logger"
	"github.com/maxexpress/maxbot/core/telegram"
	"github.com/maxexpress/maxbot/core/telegram/callbacks"
	tghelpers "github.com/maxexpress/maxbot/core/telegram/helpers"
	"github.com/maxexpress/maxbot/dialog"
)

func (a *App) routes() []telegram.Route {
	return []telegram.Route{
		{Endpoint: "/start", Handler: a.onStart},
		{Endpoint: tele.OnText, Handler: a.onText},
		{Endpoint: tele.OnCallback, Handler: a.onCallback},
	}
}

func (a *App) onStart(c tele.Context) error {
	return a.handle(c, "start", func(ctx context.Context) error {
		return a.router.HandleStart(ctx, eventFrom(c, dialog.KindText))
	})
}

func (a *App) onText(c tele.Context) error {
	return a.handle(c, "text", func(ctx context.Context) error {
		return a.router.HandleText(ctx, eventFrom(c, dialog.KindText))
	})
}

func (a *App) onCallback(c tele.Context) error {
	// stop the client-side spinner regardless of the outcome
	defer func() { _ = c.Respond() }()
	return a.handle(c, "callback", func(ctx context.Context) error {
		return a.router.HandleCallback(ctx, eventFrom(c, dialog.KindCallback))
	})
}

// handle runs a flow handler and emits one summary line per update, the
// single INFO-level record tying rid, handler and outcome together.
func (a *App) handle(c tele.Context, name string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx := tghelpers.WithHandler(c, name)

	err := fn(ctx)

	status := "ok"
	if err != nil {
		status = "fail"
	}
	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("handler", name),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	}
	logger.LogEvent(ctx, logger.Component("tg"), slog.LevelInfo, "handler.handled", attrs...)

	// the flow already notified the user; don't let Telebot re-handle it
	return nil
}

func eventFrom(c tele.Context, kind dialog.Kind) dialog.Event {
	ev := dialog.Event{Kind: kind}
	if chat := c.Chat(); chat != nil {
		ev.Conversation = chat.ID
	}
	if sender := c.Sender(); sender != nil {
		ev.Sender = sender.ID
	}
	switch kind {
	case dialog.KindText:
		ev.Text = c.Text()
	case dialog.KindCallback:
		ev.Action = callbacks.CallbackKey(c)
		ev.Payload = callbacks.CallbackPayload(c)
	}
	return ev
}
