package dialog

import (
	"context"
	"strings"
	"testing"
)

func TestPriceFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.register(t, 10, 100)
	ref := f.openHome(t, 10, 100)

	mustOK(t, f.router.HandleCallback(ctx, cbEvent(10, 100, actionMenuNav, destPrice)))
	if got := f.out.lastEdit(t).Text; got != textAskWidth {
		t.Fatalf("prompt = %q", got)
	}

	mustOK(t, f.router.HandleText(ctx, textEvent(10, 100, "50")))
	if got := f.out.lastEdit(t).Text; got != textAskLength {
		t.Fatalf("after width prompt = %q", got)
	}
	mustOK(t, f.router.HandleText(ctx, textEvent(10, 100, "40")))
	if got := f.out.lastEdit(t).Text; got != textAskHeight {
		t.Fatalf("after length prompt = %q", got)
	}
	mustOK(t, f.router.HandleText(ctx, textEvent(10, 100, "30")))
	if got := f.out.lastEdit(t).Text; got != textAskWeight {
		t.Fatalf("after height prompt = %q", got)
	}
	mustOK(t, f.router.HandleText(ctx, textEvent(10, 100, "80")))

	result := f.out.lastEdit(t)
	if result.Ref != ref {
		t.Fatalf("result edited %+v, want panel %+v", result.Ref, ref)
	}
	if !strings.Contains(result.Text, "1333.3") || !strings.Contains(result.Text, "по весу") {
		t.Fatalf("result text = %q", result.Text)
	}
	if got := f.sessions.Get(10, MachineDialog).Step; got != StepMenu {
		t.Fatalf("dialog step after result = %q", got)
	}
}

func TestPriceByDensityResult(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.register(t, 10, 100)
	f.openHome(t, 10, 100)
	mustOK(t, f.router.HandleCallback(ctx, cbEvent(10, 100, actionMenuNav, destPrice)))

	for _, in := range []string{"100", "100", "100", "50"} {
		mustOK(t, f.router.HandleText(ctx, textEvent(10, 100, in)))
	}

	if got := f.out.lastEdit(t).Text; !strings.Contains(got, "по плотности") {
		t.Fatalf("result text = %q", got)
	}
}

func TestPriceInvalidInputKeepsDimensions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.register(t, 10, 100)
	f.openHome(t, 10, 100)
	mustOK(t, f.router.HandleCallback(ctx, cbEvent(10, 100, actionMenuNav, destPrice)))
	mustOK(t, f.router.HandleText(ctx, textEvent(10, 100, "50")))
	mustOK(t, f.router.HandleText(ctx, textEvent(10, 100, "40,5")))

	for _, bad := range []string{"ноль", "-3", "0"} {
		mustOK(t, f.router.HandleText(ctx, textEvent(10, 100, bad)))
		if got := f.out.lastEdit(t).Text; got != textRetryPrice {
			t.Fatalf("retry prompt for %q = %q", bad, got)
		}
	}

	top := f.sessions.Get(10, MachineDialog)
	if top.Step != StepPriceHeight {
		t.Fatalf("step after retries = %q, want %q", top.Step, StepPriceHeight)
	}
	box, err := PayloadOf[BoxData](top)
	mustOK(t, err)
	if box.Width != 50 || box.Length != 40.5 {
		t.Fatalf("collected dimensions lost: %+v", box)
	}
}

func TestPriceBackDiscardsDimensions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.register(t, 10, 100)
	f.openHome(t, 10, 100)
	mustOK(t, f.router.HandleCallback(ctx, cbEvent(10, 100, actionMenuNav, destPrice)))
	mustOK(t, f.router.HandleText(ctx, textEvent(10, 100, "50")))

	mustOK(t, f.router.HandleCallback(ctx, cbEvent(10, 100, actionMenuNav, destHome)))
	if got := f.sessions.Get(10, MachineDialog).Step; got != StepMenu {
		t.Fatalf("dialog step after back = %q", got)
	}

	// re-entering starts over from the first dimension
	mustOK(t, f.router.HandleCallback(ctx, cbEvent(10, 100, actionMenuNav, destPrice)))
	if got := f.out.lastEdit(t).Text; got != textAskWidth {
		t.Fatalf("re-entry prompt = %q", got)
	}
	top := f.sessions.Get(10, MachineDialog)
	if top.Step != StepPriceWidth || top.Data != nil {
		t.Fatalf("re-entry state = %+v, want fresh", top)
	}
}

func TestMeasureParsing(t *testing.T) {
	cases := []struct {
		in  string
		val float64
		ok  bool
	}{
		{"12.5", 12.5, true},
		{"12,5", 12.5, true},
		{" 7 ", 7, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"12..5", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		val, ok := parseMeasure(tc.in)
		if ok != tc.ok || (ok && val != tc.val) {
			t.Errorf("parseMeasure(%q) = (%v, %v), want (%v, %v)", tc.in, val, ok, tc.val, tc.ok)
		}
	}
}
