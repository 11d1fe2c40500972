package dialog

import (
	"context"
	"errors"
)

// Kind classifies an inbound chat event.
type Kind int

const (
	// KindText is a plain text message from the user.
	KindText Kind = iota
	// KindCallback is an inline button press.
	KindCallback
)

// Event is one inbound chat event, already stripped of transport details.
type Event struct {
	// Conversation identifies the chat the event belongs to.
	Conversation int64
	// Sender identifies the originating user. The transport guarantees it
	// is set; zero means a broken dispatch upstream.
	Sender int64

	Kind Kind

	// Text carries the message body for KindText events.
	Text string
	// Action and Payload carry the pressed button key and its data for
	// KindCallback events.
	Action  string
	Payload string
}

// MessageRef identifies an already-sent message so it can be edited later.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Button is one inline keyboard button.
type Button struct {
	Label  string
	Action string
	Data   string
}

// Keyboard is rows of inline buttons.
type Keyboard [][]Button

// Messenger delivers outbound actions to the chat transport.
type Messenger interface {
	Send(ctx context.Context, conversation int64, text string, kb Keyboard) (MessageRef, error)
	Edit(ctx context.Context, ref MessageRef, text string, kb Keyboard) error
}

// Account is the user record as the flows see it.
type Account struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	ClientCode  string
}

// Registration carries the fields collected by the signup flow.
type Registration struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	TelegramID  int64
}

// Accounts is the user repository as seen from the flows. Create assigns the
// client code; it is called exactly once per completed registration.
type Accounts interface {
	Create(ctx context.Context, reg Registration) (Account, error)
	Find(ctx context.Context, telegramID int64) (Account, error)
	Exists(ctx context.Context, telegramID int64) (bool, error)
}

// StatusChecker answers whether a parcel has arrived at the vendor warehouse.
type StatusChecker interface {
	IsReady(ctx context.Context, trackCode string) (bool, error)
}

// ErrNoSender reports an inbound event without an originating user. The
// transport guarantees a sender on every update, so this is a precondition
// violation that aborts the turn.
var ErrNoSender = errors.New("dialog: event carries no sender identity")
