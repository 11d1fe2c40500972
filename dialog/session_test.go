package dialog

import (
	"errors"
	"testing"
)

func TestSessionsMachinesAreIndependent(t *testing.T) {
	s := NewSessions()

	s.Set(1, MachineDialog, Entry{Step: StepMenu})
	s.Set(1, MachineMenu, Entry{Step: StepMenuHome, Data: MenuPanel{Ref: MessageRef{ChatID: 1, MessageID: 7}}})

	if got := s.Get(1, MachineDialog); got.Step != StepMenu {
		t.Fatalf("dialog step = %q, want %q", got.Step, StepMenu)
	}
	if got := s.Get(1, MachineMenu); got.Step != StepMenuHome {
		t.Fatalf("menu step = %q, want %q", got.Step, StepMenuHome)
	}

	s.Clear(1, MachineDialog)
	if got := s.Get(1, MachineDialog); got.Step != StepStart {
		t.Fatalf("cleared dialog step = %q, want initial", got.Step)
	}
	if got := s.Get(1, MachineMenu); got.Step != StepMenuHome {
		t.Fatalf("menu step after clearing dialog = %q, want %q", got.Step, StepMenuHome)
	}
}

func TestSessionsConversationsAreIsolated(t *testing.T) {
	s := NewSessions()

	s.Set(1, MachineSignup, Entry{Step: StepLastName, Data: SignupData{FirstName: "Анна"}})

	if got := s.Get(2, MachineSignup); got.Step != StepSignupIntro || got.Data != nil {
		t.Fatalf("other conversation leaked state: %+v", got)
	}
}

func TestSessionsGetDefaultsToInitialState(t *testing.T) {
	s := NewSessions()
	got := s.Get(42, MachineMenu)
	if got.Step != StepMenuInit || got.Data != nil {
		t.Fatalf("default entry = %+v, want zero", got)
	}
}

func TestPayloadOf(t *testing.T) {
	e := Entry{Step: StepLastName, Data: SignupData{FirstName: "Анна"}}

	data, err := PayloadOf[SignupData](e)
	if err != nil {
		t.Fatalf("PayloadOf: %v", err)
	}
	if data.FirstName != "Анна" {
		t.Fatalf("FirstName = %q", data.FirstName)
	}

	if _, err := PayloadOf[MenuPanel](e); !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("wrong type err = %v, want ErrStateMismatch", err)
	}
	if _, err := PayloadOf[SignupData](Entry{Step: StepLastName}); !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("nil payload err = %v, want ErrStateMismatch", err)
	}
}
