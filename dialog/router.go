// Package dialog implements the conversational core of the bot: per-chat
// session state, the top-level update router, and the registration, menu,
// price and tracking flows. It is transport-agnostic; the bot package adapts
// Telegram updates into Events and outbound actions into the Messenger.
package dialog

import (
	"context"
	"log/slog"

	"github.com/maxexpress/maxbot/core/logger"
)

// Button actions understood by the callback router.
const (
	actionSignup   = "signup_go"
	actionMenuOpen = "menu_open"
	actionMenuNav  = "menu_nav"
	actionTutorial = "menu_tutorial"
)

// Navigation destinations carried in actionMenuNav payloads.
const (
	destHome     = "home"
	destLocate   = "locate"
	destPrice    = "price"
	destCode     = "code"
	destAddress  = "address"
	destSupport  = "support"
	destTutorial = "tutorial"
)

// Tutorial is one marketplace ordering instruction offered from the menu.
type Tutorial struct {
	Key   string
	Title string
	Text  string
}

// Config holds the static content rendered by the menu flow.
type Config struct {
	Tutorials []Tutorial
	Address   string
	Support   string
}

// Router reads a conversation's current state and forwards each inbound event
// to exactly one flow handler. Callers must serialize events per conversation;
// events for distinct conversations may be handled concurrently.
type Router struct {
	sessions *Sessions
	accounts Accounts
	parcels  StatusChecker
	out      Messenger
	cfg      Config
}

// NewRouter wires the flows with their collaborators.
func NewRouter(sessions *Sessions, accounts Accounts, parcels StatusChecker, out Messenger, cfg Config) *Router {
	return &Router{
		sessions: sessions,
		accounts: accounts,
		parcels:  parcels,
		out:      out,
		cfg:      cfg,
	}
}

// HandleStart processes the /start command. Known users land in the menu;
// new users get the welcome message and enter registration.
func (r *Router) HandleStart(ctx context.Context, ev Event) error {
	if ev.Sender == 0 {
		return ErrNoSender
	}

	exists, err := r.accounts.Exists(ctx, ev.Sender)
	if err != nil {
		return r.apologize(ctx, ev.Conversation, err)
	}
	if exists {
		r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepMenu})
		return r.renderHome(ctx, ev)
	}

	top := r.sessions.Get(ev.Conversation, MachineDialog)
	if top.Step != StepStart {
		logger.Debug(ctx, "dialog", "start.drop",
			slog.String("step", string(top.Step)),
		)
		return nil
	}

	kb := Keyboard{{Button{Label: btnBegin, Action: actionSignup}}}
	if _, err := r.out.Send(ctx, ev.Conversation, textWelcome+"\n\n"+textSignupIntro, kb); err != nil {
		return err
	}
	r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepRegistering})
	r.sessions.Clear(ev.Conversation, MachineSignup)
	return nil
}

// HandleText dispatches a plain text message by the conversation's top-level
// step. Exactly one handler owns each step; text nobody expects is dropped.
func (r *Router) HandleText(ctx context.Context, ev Event) error {
	if ev.Sender == 0 {
		return ErrNoSender
	}

	top := r.sessions.Get(ev.Conversation, MachineDialog)
	switch top.Step {
	case StepStart:
		return r.HandleStart(ctx, ev)
	case StepRegistering:
		return r.signupText(ctx, ev)
	case StepAwaitTrack:
		return r.locateText(ctx, ev)
	case StepPriceWidth, StepPriceLength, StepPriceHeight, StepPriceWeight:
		return r.priceText(ctx, ev, top)
	case StepMenu:
		// free text has no meaning while the menu panel is active
		logger.Debug(ctx, "dialog", "text.drop",
			slog.String("step", string(top.Step)),
		)
		return nil
	default:
		logger.Warn(ctx, "dialog", "text.unknown_step",
			slog.String("step", string(top.Step)),
		)
		return nil
	}
}

// HandleCallback dispatches an inline button press by its action key, guarded
// by the conversation's current state. Stale or unknown callbacks are dropped.
func (r *Router) HandleCallback(ctx context.Context, ev Event) error {
	if ev.Sender == 0 {
		return ErrNoSender
	}

	switch ev.Action {
	case actionSignup:
		return r.signupIntro(ctx, ev)
	case actionMenuOpen:
		return r.openMenu(ctx, ev)
	case actionMenuNav:
		return r.menuNav(ctx, ev)
	case actionTutorial:
		return r.tutorialPage(ctx, ev)
	default:
		logger.Debug(ctx, "dialog", "callback.drop",
			slog.String("cb_key", ev.Action),
		)
		return nil
	}
}

// apologize reports an external dependency failure to the user and returns
// the wrapped cause so the transport layer logs the turn as failed. The
// conversation state is left untouched for a later retry.
func (r *Router) apologize(ctx context.Context, conv int64, cause error) error {
	if _, err := r.out.Send(ctx, conv, textApology, nil); err != nil {
		logger.Error(ctx, "dialog", "apology.send",
			slog.String("err", err.Error()),
		)
	}
	return cause
}
