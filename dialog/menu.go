package dialog

import (
	"context"
	"log/slog"

	"github.com/maxexpress/maxbot/core/logger"
)

// openMenu handles the post-registration "next" button and shows the menu
// panel for the first time.
func (r *Router) openMenu(ctx context.Context, ev Event) error {
	top := r.sessions.Get(ev.Conversation, MachineDialog)
	if top.Step != StepMenu {
		logger.Debug(ctx, "dialog", "menu.open.drop",
			slog.String("step", string(top.Step)),
		)
		return nil
	}
	return r.renderHome(ctx, ev)
}

// renderHome draws the account home screen. The first render sends a new
// message and remembers its reference; every later render edits that same
// message in place.
func (r *Router) renderHome(ctx context.Context, ev Event) error {
	acc, err := r.accounts.Find(ctx, ev.Sender)
	if err != nil {
		return r.apologize(ctx, ev.Conversation, err)
	}

	// going home cancels any pending track or box question
	r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepMenu})

	text := homeText(acc)
	kb := homeKeyboard()

	menu := r.sessions.Get(ev.Conversation, MachineMenu)
	if menu.Step == StepMenuInit {
		ref, err := r.out.Send(ctx, ev.Conversation, text, kb)
		if err != nil {
			return err
		}
		r.sessions.Set(ev.Conversation, MachineMenu, Entry{
			Step: StepMenuHome,
			Data: MenuPanel{Ref: ref},
		})
		return nil
	}

	panel, err := PayloadOf[MenuPanel](menu)
	if err != nil {
		return r.resetMenu(ctx, ev, err)
	}
	if err := r.out.Edit(ctx, panel.Ref, text, kb); err != nil {
		return err
	}
	r.sessions.Set(ev.Conversation, MachineMenu, Entry{Step: StepMenuHome, Data: panel})
	return nil
}

// menuNav handles every navigation button on the panel. Presses on a sub
// page always lead back home, whatever the payload says: the buttons there
// belong to an earlier render and must not re-trigger their destination.
func (r *Router) menuNav(ctx context.Context, ev Event) error {
	menu := r.sessions.Get(ev.Conversation, MachineMenu)

	switch menu.Step {
	case StepMenuInit:
		logger.Debug(ctx, "dialog", "menu.nav.before_open")
		return nil
	case StepMenuSub:
		return r.renderHome(ctx, ev)
	case StepMenuHome:
	default:
		logger.Warn(ctx, "dialog", "menu.unknown_step",
			slog.String("step", string(menu.Step)),
		)
		return nil
	}

	panel, err := PayloadOf[MenuPanel](menu)
	if err != nil {
		return r.resetMenu(ctx, ev, err)
	}

	logger.Debug(ctx, "dialog", "menu.nav",
		slog.String("dest", ev.Payload),
	)

	switch ev.Payload {
	case destHome:
		return r.renderHome(ctx, ev)

	case destLocate:
		if err := r.out.Edit(ctx, panel.Ref, textAskTrack, backKeyboard()); err != nil {
			return err
		}
		r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepAwaitTrack})
		r.sessions.Set(ev.Conversation, MachineMenu, Entry{Step: StepMenuSub, Data: panel})
		return nil

	case destPrice:
		if err := r.out.Edit(ctx, panel.Ref, textAskWidth, backKeyboard()); err != nil {
			return err
		}
		r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepPriceWidth})
		r.sessions.Set(ev.Conversation, MachineMenu, Entry{Step: StepMenuSub, Data: panel})
		return nil

	case destCode:
		acc, err := r.accounts.Find(ctx, ev.Sender)
		if err != nil {
			return r.apologize(ctx, ev.Conversation, err)
		}
		return r.showSubPage(ctx, ev, panel, clientCodeText(acc))

	case destAddress:
		return r.showSubPage(ctx, ev, panel, r.cfg.Address)

	case destSupport:
		return r.showSubPage(ctx, ev, panel, r.cfg.Support)

	case destTutorial:
		if err := r.out.Edit(ctx, panel.Ref, textPickMarketplace, r.tutorialKeyboard()); err != nil {
			return err
		}
		r.sessions.Set(ev.Conversation, MachineMenu, Entry{Step: StepMenuSub, Data: panel})
		return nil

	default:
		logger.Debug(ctx, "dialog", "menu.nav.unknown_dest",
			slog.String("dest", ev.Payload),
		)
		return nil
	}
}

// tutorialPage renders one marketplace instruction picked from the tutorial
// list. The panel stays on the sub page, so the back button leads home.
func (r *Router) tutorialPage(ctx context.Context, ev Event) error {
	menu := r.sessions.Get(ev.Conversation, MachineMenu)
	if menu.Step != StepMenuSub {
		logger.Debug(ctx, "dialog", "tutorial.drop",
			slog.String("step", string(menu.Step)),
		)
		return nil
	}
	panel, err := PayloadOf[MenuPanel](menu)
	if err != nil {
		return r.resetMenu(ctx, ev, err)
	}

	for _, t := range r.cfg.Tutorials {
		if t.Key == ev.Payload {
			return r.out.Edit(ctx, panel.Ref, t.Text, backKeyboard())
		}
	}
	logger.Debug(ctx, "dialog", "tutorial.unknown_key",
		slog.String("cb_key", ev.Payload),
	)
	return r.renderHome(ctx, ev)
}

// showSubPage edits the panel to a read-only page with a back button.
func (r *Router) showSubPage(ctx context.Context, ev Event, panel MenuPanel, text string) error {
	if err := r.out.Edit(ctx, panel.Ref, text, backKeyboard()); err != nil {
		return err
	}
	r.sessions.Set(ev.Conversation, MachineMenu, Entry{Step: StepMenuSub, Data: panel})
	return nil
}

// resetMenu recovers from a corrupt panel payload: the menu state is wiped
// and redrawn from scratch with a fresh message.
func (r *Router) resetMenu(ctx context.Context, ev Event, cause error) error {
	logger.Error(ctx, "dialog", "menu.state_mismatch",
		slog.String("err", cause.Error()),
	)
	r.sessions.Clear(ev.Conversation, MachineMenu)
	if err := r.renderHome(ctx, ev); err != nil {
		return err
	}
	return cause
}

func homeKeyboard() Keyboard {
	return Keyboard{
		{Button{Label: btnLocate, Action: actionMenuNav, Data: destLocate}},
		{Button{Label: btnPrice, Action: actionMenuNav, Data: destPrice}},
		{Button{Label: btnCode, Action: actionMenuNav, Data: destCode}},
		{
			Button{Label: btnAddress, Action: actionMenuNav, Data: destAddress},
			Button{Label: btnSupport, Action: actionMenuNav, Data: destSupport},
		},
		{Button{Label: btnTutorial, Action: actionMenuNav, Data: destTutorial}},
	}
}

func backKeyboard() Keyboard {
	return Keyboard{{Button{Label: btnBack, Action: actionMenuNav, Data: destHome}}}
}

func (r *Router) tutorialKeyboard() Keyboard {
	kb := make(Keyboard, 0, len(r.cfg.Tutorials)+1)
	for _, t := range r.cfg.Tutorials {
		kb = append(kb, []Button{{Label: t.Title, Action: actionTutorial, Data: t.Key}})
	}
	kb = append(kb, []Button{{Label: btnBack, Action: actionMenuNav, Data: destHome}})
	return kb
}
