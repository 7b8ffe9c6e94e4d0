package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Chip != "gpiochip0" {
		t.Errorf("Chip: got %q, want gpiochip0", cfg.Chip)
	}
	if cfg.Traffic.Red != 11 || cfg.Traffic.Yellow != 12 || cfg.Traffic.Green != 13 {
		t.Errorf("traffic pins: got %d/%d/%d, want 11/12/13", cfg.Traffic.Red, cfg.Traffic.Yellow, cfg.Traffic.Green)
	}
	if cfg.Traffic.Period != 3*time.Second {
		t.Errorf("Traffic.Period: got %v, want 3s", cfg.Traffic.Period)
	}
	if cfg.Traffic.Heartbeat != time.Second {
		t.Errorf("Traffic.Heartbeat: got %v, want 1s", cfg.Traffic.Heartbeat)
	}
	if cfg.Flasher.Blue != 11 || cfg.Flasher.Red != 12 || cfg.Flasher.Green != 13 {
		t.Errorf("flasher pins: got %d/%d/%d, want 11/12/13", cfg.Flasher.Blue, cfg.Flasher.Red, cfg.Flasher.Green)
	}
	if cfg.Flasher.Button != 5 {
		t.Errorf("Flasher.Button: got %d, want 5", cfg.Flasher.Button)
	}
	if cfg.Flasher.Delay != 3*time.Second {
		t.Errorf("Flasher.Delay: got %v, want 3s", cfg.Flasher.Delay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := `
chip: gpiochip4
traffic:
  period: 2s
flasher:
  button: 6
  debounce: 5ms
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Chip != "gpiochip4" {
		t.Errorf("Chip: got %q, want gpiochip4", cfg.Chip)
	}
	if cfg.Traffic.Period != 2*time.Second {
		t.Errorf("Traffic.Period: got %v, want 2s", cfg.Traffic.Period)
	}
	if cfg.Traffic.Red != 11 {
		t.Errorf("Traffic.Red should keep default 11, got %d", cfg.Traffic.Red)
	}
	if cfg.Flasher.Button != 6 {
		t.Errorf("Flasher.Button: got %d, want 6", cfg.Flasher.Button)
	}
	if cfg.Flasher.Debounce != 5*time.Millisecond {
		t.Errorf("Flasher.Debounce: got %v, want 5ms", cfg.Flasher.Debounce)
	}
	if cfg.Flasher.Delay != 3*time.Second {
		t.Errorf("Flasher.Delay should keep default 3s, got %v", cfg.Flasher.Delay)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "read config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseInvalid(t *testing.T) {
	cfg := Default()
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "traffic: [unclosed"},
		{"bad duration", "traffic:\n  period: soon\n"},
		{"bad pin", "flasher:\n  button: five\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Parse([]byte(tt.data), &cfg); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty chip", func(c *Config) { c.Chip = "" }, "chip must not be empty"},
		{"negative pin", func(c *Config) { c.Traffic.Green = -1 }, "traffic: green pin must not be negative"},
		{"duplicate traffic pins", func(c *Config) { c.Traffic.Yellow = 11 }, "share pin 11"},
		{"button shares led pin", func(c *Config) { c.Flasher.Button = 13 }, "share pin 13"},
		{"zero period", func(c *Config) { c.Traffic.Period = 0 }, "period must be positive"},
		{"zero heartbeat", func(c *Config) { c.Traffic.Heartbeat = 0 }, "heartbeat must be positive"},
		{"negative delay", func(c *Config) { c.Flasher.Delay = -time.Second }, "delay must be positive"},
		{"negative debounce", func(c *Config) { c.Flasher.Debounce = -time.Millisecond }, "debounce must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSamePinsAcrossPrograms(t *testing.T) {
	// Both programs default to pins 11/12/13; they run on separate boards.
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("pin reuse across programs should be allowed: %v", err)
	}
}

func TestValidatePerProgram(t *testing.T) {
	badFlasher := Default()
	badFlasher.Flasher.Button = badFlasher.Flasher.Blue

	if err := badFlasher.ValidateTraffic(); err != nil {
		t.Errorf("traffic should ignore the flasher section: %v", err)
	}
	if err := badFlasher.ValidateFlasher(); err == nil {
		t.Error("expected flasher validation error")
	}

	badTraffic := Default()
	badTraffic.Traffic.Period = 0

	if err := badTraffic.ValidateFlasher(); err != nil {
		t.Errorf("flasher should ignore the traffic section: %v", err)
	}
	if err := badTraffic.ValidateTraffic(); err == nil {
		t.Error("expected traffic validation error")
	}

	noChip := Default()
	noChip.Chip = ""
	for name, err := range map[string]error{
		"traffic": noChip.ValidateTraffic(),
		"flasher": noChip.ValidateFlasher(),
	} {
		if err == nil || !strings.Contains(err.Error(), "chip must not be empty") {
			t.Errorf("%s: expected chip error, got %v", name, err)
		}
	}
}
