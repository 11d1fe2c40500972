package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maxexpress/maxbot/core/logger"
)

// locateText consumes the track code typed after the "locate" button, asks
// the warehouse vendor whether the parcel arrived and writes the answer onto
// the menu panel.
func (r *Router) locateText(ctx context.Context, ev Event) error {
	menu := r.sessions.Get(ev.Conversation, MachineMenu)
	panel, err := PayloadOf[MenuPanel](menu)
	if err != nil {
		return r.resetMenu(ctx, ev, err)
	}

	code := strings.TrimSpace(ev.Text)
	if !validTrackCode(code) {
		return r.out.Edit(ctx, panel.Ref, textRetryTrack, backKeyboard())
	}

	ready, err := r.parcels.IsReady(ctx, code)
	if err != nil {
		logger.Warn(ctx, "dialog", "locate.vendor",
			slog.String("track_code", code),
			slog.String("err", err.Error()),
		)
		if editErr := r.out.Edit(ctx, panel.Ref, textVendorDown, backKeyboard()); editErr != nil {
			return editErr
		}
		return fmt.Errorf("check parcel %s: %w", code, err)
	}

	logger.Info(ctx, "dialog", "locate.done",
		slog.String("track_code", code),
		slog.Bool("ready", ready),
	)

	if err := r.out.Edit(ctx, panel.Ref, trackStatusText(code, ready), backKeyboard()); err != nil {
		return err
	}
	r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepMenu})
	return nil
}

// validTrackCode accepts vendor track codes: latin letters and digits,
// 6..40 characters.
func validTrackCode(s string) bool {
	if len(s) < 6 || len(s) > 40 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
