package dialog

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/maxexpress/maxbot/core/logger"
	"github.com/maxexpress/maxbot/pricing"
)

// priceText advances the box measurement questionnaire by one answer. The
// collected dimensions ride on the top-level entry, so leaving for the menu
// wipes them together with the step.
func (r *Router) priceText(ctx context.Context, ev Event, top Entry) error {
	menu := r.sessions.Get(ev.Conversation, MachineMenu)
	panel, err := PayloadOf[MenuPanel](menu)
	if err != nil {
		return r.resetMenu(ctx, ev, err)
	}

	val, ok := parseMeasure(ev.Text)
	if !ok {
		return r.out.Edit(ctx, panel.Ref, textRetryPrice, backKeyboard())
	}

	switch top.Step {
	case StepPriceWidth:
		r.sessions.Set(ev.Conversation, MachineDialog, Entry{
			Step: StepPriceLength,
			Data: BoxData{Width: val},
		})
		return r.out.Edit(ctx, panel.Ref, textAskLength, backKeyboard())

	case StepPriceLength:
		box, err := PayloadOf[BoxData](top)
		if err != nil {
			return r.abortPrice(ctx, ev, panel, err)
		}
		box.Length = val
		r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepPriceHeight, Data: box})
		return r.out.Edit(ctx, panel.Ref, textAskHeight, backKeyboard())

	case StepPriceHeight:
		box, err := PayloadOf[BoxData](top)
		if err != nil {
			return r.abortPrice(ctx, ev, panel, err)
		}
		box.Height = val
		r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepPriceWeight, Data: box})
		return r.out.Edit(ctx, panel.Ref, textAskWeight, backKeyboard())

	case StepPriceWeight:
		box, err := PayloadOf[BoxData](top)
		if err != nil {
			return r.abortPrice(ctx, ev, panel, err)
		}
		density, method := pricing.Estimate(box.Width, box.Length, box.Height, val)

		logger.Info(ctx, "dialog", "price.done",
			slog.Float64("density", density),
			slog.String("method", method.String()),
		)

		if err := r.out.Edit(ctx, panel.Ref, priceResultText(density, method == pricing.ByWeight), backKeyboard()); err != nil {
			return err
		}
		r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepMenu})
		return nil

	default:
		return nil
	}
}

// abortPrice handles a corrupt box payload: the questionnaire restarts from
// the first dimension and the violation is surfaced to the caller.
func (r *Router) abortPrice(ctx context.Context, ev Event, panel MenuPanel, cause error) error {
	logger.Error(ctx, "dialog", "price.state_mismatch",
		slog.String("err", cause.Error()),
	)
	r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepPriceWidth})
	if err := r.out.Edit(ctx, panel.Ref, textAskWidth, backKeyboard()); err != nil {
		return err
	}
	return cause
}

// parseMeasure reads a positive decimal, tolerating a comma as the
// fractional separator.
func parseMeasure(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
