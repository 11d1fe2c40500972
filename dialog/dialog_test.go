package dialog

import (
	"context"
	"fmt"
	"testing"
)

type sentRecord struct {
	Conv int64
	Text string
	KB   Keyboard
	Ref  MessageRef
}

type editRecord struct {
	Ref  MessageRef
	Text string
	KB   Keyboard
}

type fakeMessenger struct {
	nextID  int
	sends   []sentRecord
	edits   []editRecord
	sendErr error
	editErr error
}

func (m *fakeMessenger) Send(_ context.Context, conv int64, text string, kb Keyboard) (MessageRef, error) {
	if m.sendErr != nil {
		return MessageRef{}, m.sendErr
	}
	m.nextID++
	ref := MessageRef{ChatID: conv, MessageID: m.nextID}
	m.sends = append(m.sends, sentRecord{Conv: conv, Text: text, KB: kb, Ref: ref})
	return ref, nil
}

func (m *fakeMessenger) Edit(_ context.Context, ref MessageRef, text string, kb Keyboard) error {
	if m.editErr != nil {
		return m.editErr
	}
	m.edits = append(m.edits, editRecord{Ref: ref, Text: text, KB: kb})
	return nil
}

func (m *fakeMessenger) lastSend(t *testing.T) sentRecord {
	t.Helper()
	if len(m.sends) == 0 {
		t.Fatal("expected at least one sent message")
	}
	return m.sends[len(m.sends)-1]
}

func (m *fakeMessenger) lastEdit(t *testing.T) editRecord {
	t.Helper()
	if len(m.edits) == 0 {
		t.Fatal("expected at least one edited message")
	}
	return m.edits[len(m.edits)-1]
}

type fakeAccounts struct {
	byTG      map[int64]Account
	creates   []Registration
	createErr error
	findErr   error
	existsErr error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byTG: make(map[int64]Account)}
}

func (a *fakeAccounts) Create(_ context.Context, reg Registration) (Account, error) {
	if a.createErr != nil {
		return Account{}, a.createErr
	}
	a.creates = append(a.creates, reg)
	acc := Account{
		FirstName:   reg.FirstName,
		LastName:    reg.LastName,
		PhoneNumber: reg.PhoneNumber,
		ClientCode:  fmt.Sprintf("MX%d", 200+len(a.byTG)),
	}
	a.byTG[reg.TelegramID] = acc
	return acc, nil
}

func (a *fakeAccounts) Find(_ context.Context, telegramID int64) (Account, error) {
	if a.findErr != nil {
		return Account{}, a.findErr
	}
	acc, ok := a.byTG[telegramID]
	if !ok {
		return Account{}, fmt.Errorf("no account for %d", telegramID)
	}
	return acc, nil
}

func (a *fakeAccounts) Exists(_ context.Context, telegramID int64) (bool, error) {
	if a.existsErr != nil {
		return false, a.existsErr
	}
	_, ok := a.byTG[telegramID]
	return ok, nil
}

type fakeChecker struct {
	ready map[string]bool
	err   error
	calls []string
}

func (c *fakeChecker) IsReady(_ context.Context, trackCode string) (bool, error) {
	c.calls = append(c.calls, trackCode)
	if c.err != nil {
		return false, c.err
	}
	return c.ready[trackCode], nil
}

type fixture struct {
	router   *Router
	sessions *Sessions
	out      *fakeMessenger
	accounts *fakeAccounts
	parcels  *fakeChecker
}

func newFixture() *fixture {
	sessions := NewSessions()
	out := &fakeMessenger{}
	accounts := newFakeAccounts()
	parcels := &fakeChecker{ready: make(map[string]bool)}
	cfg := Config{
		Tutorials: []Tutorial{
			{Key: "taobao", Title: "Taobao", Text: "Как заказать на Taobao..."},
			{Key: "poizon", Title: "Poizon", Text: "Как заказать на Poizon..."},
		},
		Address: "Китай, Гуанчжоу, склад MaxExpress",
		Support: "Поддержка: @maxexpress_support",
	}
	return &fixture{
		router:   NewRouter(sessions, accounts, parcels, out, cfg),
		sessions: sessions,
		out:      out,
		accounts: accounts,
		parcels:  parcels,
	}
}

func textEvent(conv, sender int64, text string) Event {
	return Event{Conversation: conv, Sender: sender, Kind: KindText, Text: text}
}

func cbEvent(conv, sender int64, action, payload string) Event {
	return Event{Conversation: conv, Sender: sender, Kind: KindCallback, Action: action, Payload: payload}
}

// register walks a fresh conversation through the whole signup so tests can
// start from the registered state.
func (f *fixture) register(t *testing.T, conv, sender int64) {
	t.Helper()
	ctx := context.Background()
	mustOK(t, f.router.HandleStart(ctx, textEvent(conv, sender, "/start")))
	mustOK(t, f.router.HandleCallback(ctx, cbEvent(conv, sender, actionSignup, "")))
	mustOK(t, f.router.HandleText(ctx, textEvent(conv, sender, "Иван")))
	mustOK(t, f.router.HandleText(ctx, textEvent(conv, sender, "Петров")))
	mustOK(t, f.router.HandleText(ctx, textEvent(conv, sender, "996555123456")))
}

// openHome presses the post-registration button and returns the panel ref.
func (f *fixture) openHome(t *testing.T, conv, sender int64) MessageRef {
	t.Helper()
	mustOK(t, f.router.HandleCallback(context.Background(), cbEvent(conv, sender, actionMenuOpen, "")))
	return f.out.lastSend(t).Ref
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
