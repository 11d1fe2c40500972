package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		key     string
		payload string
	}{
		{"key and payload", "\fmenu_nav|price", "menu_nav", "price"},
		{"key only", "\fsignup_go", "signup_go", ""},
		{"no prefix", "menu_nav|home", "menu_nav", "home"},
		{"payload with separator", "\fmenu_nav|a|b", "menu_nav", "a|b"},
		{"empty", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, payload := ParseCallbackData(&tele.Callback{Data: tc.data})
			if key != tc.key || payload != tc.payload {
				t.Fatalf("ParseCallbackData(%q) = (%q, %q), want (%q, %q)",
					tc.data, key, payload, tc.key, tc.payload)
			}
		})
	}
}

func TestParseCallbackDataNil(t *testing.T) {
	key, payload := ParseCallbackData(nil)
	if key != "" || payload != "" {
		t.Fatalf("nil callback = (%q, %q)", key, payload)
	}
}
