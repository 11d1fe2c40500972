package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc", RunMode: "longpoll"},
		Vendor:   VendorConfig{BaseURL: "https://wms.example.cn/api", TimeoutSeconds: 5},
		Tutorials: []Tutorial{
			{Key: "taobao", Title: "Taobao", Text: "..."},
		},
	}
}

func TestNormalizeValid(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q", cfg.Telegram.RunMode)
	}
}

func TestNormalizePollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
}

func TestNormalizeRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing token", func(c *Config) { c.Telegram.Token = "" }, "token"},
		{"bad run mode", func(c *Config) { c.Telegram.RunMode = "carrier-pigeon" }, "run_mode"},
		{"webhook without url", func(c *Config) { c.Telegram.RunMode = "webhook" }, "webhook.url"},
		{"missing vendor url", func(c *Config) { c.Vendor.BaseURL = " " }, "vendor.base_url"},
		{"tutorial without key", func(c *Config) { c.Tutorials[0].Key = "" }, "key"},
		{"duplicate tutorial key", func(c *Config) {
			c.Tutorials = append(c.Tutorials, Tutorial{Key: "Taobao", Title: "x", Text: "y"})
		}, "duplicate"},
		{"bad rate limit exclusion", func(c *Config) {
			c.RateLimit.ExcludeUpdates = []string{"inline_query"}
		}, "exclude_updates"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Normalize(cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}
}
