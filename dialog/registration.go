package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/maxexpress/maxbot/core/logger"
)

// signupIntro starts the registration questionnaire after the welcome
// button. Pressing the button twice is harmless: the prompt is re-sent and
// the questionnaire restarts from the first question.
func (r *Router) signupIntro(ctx context.Context, ev Event) error {
	top := r.sessions.Get(ev.Conversation, MachineDialog)
	if top.Step != StepRegistering {
		logger.Debug(ctx, "dialog", "signup.intro.drop",
			slog.String("step", string(top.Step)),
		)
		return nil
	}

	if _, err := r.out.Send(ctx, ev.Conversation, textAskFirstName, nil); err != nil {
		return err
	}
	r.sessions.Set(ev.Conversation, MachineSignup, Entry{Step: StepFirstName})
	return nil
}

// signupText advances the registration questionnaire one answer at a time.
// Invalid answers re-prompt and leave every collected field in place.
func (r *Router) signupText(ctx context.Context, ev Event) error {
	sub := r.sessions.Get(ev.Conversation, MachineSignup)
	switch sub.Step {
	case StepFirstName:
		name := strings.TrimSpace(ev.Text)
		if !validName(name) {
			_, err := r.out.Send(ctx, ev.Conversation, textRetryFirstName, nil)
			return err
		}
		r.sessions.Set(ev.Conversation, MachineSignup, Entry{
			Step: StepLastName,
			Data: SignupData{FirstName: name},
		})
		_, err := r.out.Send(ctx, ev.Conversation, textAskLastName, nil)
		return err

	case StepLastName:
		data, err := PayloadOf[SignupData](sub)
		if err != nil {
			return r.abortSignup(ctx, ev, err)
		}
		name := strings.TrimSpace(ev.Text)
		if !validName(name) {
			_, err := r.out.Send(ctx, ev.Conversation, textRetryLastName, nil)
			return err
		}
		data.LastName = name
		r.sessions.Set(ev.Conversation, MachineSignup, Entry{Step: StepPhone, Data: data})
		_, err = r.out.Send(ctx, ev.Conversation, textAskPhone, nil)
		return err

	case StepPhone:
		data, err := PayloadOf[SignupData](sub)
		if err != nil {
			return r.abortSignup(ctx, ev, err)
		}
		phone := strings.TrimSpace(ev.Text)
		if !validPhone(phone) {
			_, err := r.out.Send(ctx, ev.Conversation, textRetryPhone, nil)
			return err
		}
		return r.finishSignup(ctx, ev, data, phone)

	case StepSignupIntro:
		// questionnaire not started yet, the button press is still pending
		logger.Debug(ctx, "dialog", "signup.text.before_intro")
		return nil

	default:
		logger.Warn(ctx, "dialog", "signup.unknown_step",
			slog.String("step", string(sub.Step)),
		)
		return nil
	}
}

// finishSignup persists the account exactly once and hands the conversation
// over to the menu flow.
func (r *Router) finishSignup(ctx context.Context, ev Event, data SignupData, phone string) error {
	acc, err := r.accounts.Create(ctx, Registration{
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		PhoneNumber: phone,
		TelegramID:  ev.Sender,
	})
	if err != nil {
		return r.apologize(ctx, ev.Conversation, err)
	}

	r.sessions.Clear(ev.Conversation, MachineSignup)
	r.sessions.Set(ev.Conversation, MachineDialog, Entry{Step: StepMenu})

	logger.Info(ctx, "dialog", "signup.done",
		slog.String("client_code", acc.ClientCode),
	)

	kb := Keyboard{{Button{Label: btnNext, Action: actionMenuOpen}}}
	_, err = r.out.Send(ctx, ev.Conversation, textRegistered, kb)
	return err
}

// abortSignup handles a corrupt signup payload: the questionnaire restarts
// from scratch and the precondition violation is surfaced to the caller.
func (r *Router) abortSignup(ctx context.Context, ev Event, cause error) error {
	logger.Error(ctx, "dialog", "signup.state_mismatch",
		slog.String("err", cause.Error()),
	)
	r.sessions.Set(ev.Conversation, MachineSignup, Entry{Step: StepFirstName})
	if _, err := r.out.Send(ctx, ev.Conversation, textAskFirstName, nil); err != nil {
		return fmt.Errorf("restart signup: %w", err)
	}
	return cause
}

// validName accepts non-empty names made of letters with optional inner
// hyphens and spaces (double-barrelled surnames).
func validName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '-' && r != ' ' {
			return false
		}
	}
	return true
}

// validPhone accepts digits with an optional leading plus, 7..15 digits long.
func validPhone(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case r == '+' && i == 0:
		case r >= '0' && r <= '9':
			digits++
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}
