package dialog

import (
	"errors"
	"fmt"
	"sync"
)

// Machine tags one independent per-conversation state keyspace. A conversation
// holds a separate slot per machine, so the menu position survives while the
// top-level machine is borrowed by the price or tracking sub-flow.
type Machine string

const (
	// MachineDialog is the top-level flow selector.
	MachineDialog Machine = "dialog"
	// MachineSignup is the registration sub-flow.
	MachineSignup Machine = "signup"
	// MachineMenu tracks the account menu panel position.
	MachineMenu Machine = "menu"
)

// Step identifies a state within one machine. The zero value is always the
// machine's initial state.
type Step string

// Top-level dialog steps.
const (
	StepStart       Step = ""
	StepRegistering Step = "registering"
	StepMenu        Step = "menu"
	StepAwaitTrack  Step = "await_track"
	StepPriceWidth  Step = "price_width"
	StepPriceLength Step = "price_length"
	StepPriceHeight Step = "price_height"
	StepPriceWeight Step = "price_weight"
)

// Registration steps. The intro step waits for the user's first reaction to
// the welcome message before prompting for a name.
const (
	StepSignupIntro Step = ""
	StepFirstName   Step = "first_name"
	StepLastName    Step = "last_name"
	StepPhone       Step = "phone"
)

// Menu steps.
const (
	StepMenuInit Step = ""
	StepMenuHome Step = "home"
	StepMenuSub  Step = "subpage"
)

// Entry is the stored state of one machine for one conversation.
type Entry struct {
	Step Step
	Data any
}

// SignupData threads fields collected so far through the registration chain.
type SignupData struct {
	FirstName string
	LastName  string
}

// MenuPanel remembers the single message the menu keeps editing in place.
type MenuPanel struct {
	Ref MessageRef
}

// BoxData accumulates parcel dimensions through the price sub-flow.
type BoxData struct {
	Width  float64
	Length float64
	Height float64
}

type sessionKey struct {
	conv    int64
	machine Machine
}

// Sessions keeps in-memory conversation state for all machines. State lives
// for the process lifetime: a restart drops every in-flight conversation,
// which is accepted behavior for this bot.
type Sessions struct {
	mu      sync.RWMutex
	entries map[sessionKey]Entry
}

// NewSessions constructs an empty session store.
func NewSessions() *Sessions {
	return &Sessions{entries: make(map[sessionKey]Entry)}
}

// Get returns the stored entry for a conversation and machine, or the
// machine's initial state when nothing is stored.
func (s *Sessions) Get(conv int64, m Machine) Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[sessionKey{conv, m}]; ok {
		return e
	}
	return Entry{}
}

// Set stores the entry for a conversation and machine.
func (s *Sessions) Set(conv int64, m Machine, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionKey{conv, m}] = e
}

// Clear resets a conversation's machine back to its initial state.
func (s *Sessions) Clear(conv int64, m Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionKey{conv, m})
}

// ErrStateMismatch reports a session payload read that found an unexpected
// variant. It indicates a dispatch bug, not bad user input.
var ErrStateMismatch = errors.New("dialog: session payload does not match expected state")

// PayloadOf returns the entry payload as T. A mismatch yields ErrStateMismatch
// instead of a plausible-looking zero value, so a routing bug aborts the turn
// rather than losing collected fields silently.
func PayloadOf[T any](e Entry) (T, error) {
	var zero T
	if e.Data == nil {
		return zero, fmt.Errorf("%w: step %q holds no payload", ErrStateMismatch, e.Step)
	}
	v, ok := e.Data.(T)
	if !ok {
		return zero, fmt.Errorf("%w: step %q holds %T", ErrStateMismatch, e.Step, e.Data)
	}
	return v, nil
}
