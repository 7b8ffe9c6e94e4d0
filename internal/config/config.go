// Package config loads the board profile: GPIO chip, pin assignments and
// timing for both programs.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/pico-lights/internal/gpio"
	"github.com/sweeney/pico-lights/internal/logic"
)

// Config is a board profile. Missing fields keep their defaults.
type Config struct {
	Chip    string        `yaml:"chip"`
	Traffic TrafficConfig `yaml:"traffic"`
	Flasher FlasherConfig `yaml:"flasher"`
}

// TrafficConfig holds the traffic-light program settings.
type TrafficConfig struct {
	Red       int           `yaml:"red"`
	Yellow    int           `yaml:"yellow"`
	Green     int           `yaml:"green"`
	Period    time.Duration `yaml:"period"`
	Heartbeat time.Duration `yaml:"heartbeat"`
}

// FlasherConfig holds the sequential-flasher program settings.
// Lights turn off in the order Blue, Red, Green.
type FlasherConfig struct {
	Blue     int           `yaml:"blue"`
	Red      int           `yaml:"red"`
	Green    int           `yaml:"green"`
	Button   int           `yaml:"button"`
	Delay    time.Duration `yaml:"delay"`
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the stock board profile.
func Default() Config {
	return Config{
		Chip: gpio.DefaultChip,
		Traffic: TrafficConfig{
			Red:       11,
			Yellow:    12,
			Green:     13,
			Period:    logic.DefaultPeriod,
			Heartbeat: time.Second,
		},
		Flasher: FlasherConfig{
			Blue:   11,
			Red:    12,
			Green:  13,
			Button: 5,
			Delay:  logic.DefaultDelay,
		},
	}
}

// Load reads a YAML board profile from path, overlaid on Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes YAML onto cfg, leaving absent fields untouched.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate checks both program sections.
func (c Config) Validate() error {
	return errors.Join(c.ValidateTraffic(), c.ValidateFlasher())
}

// ValidateTraffic checks the chip and the traffic section only, so a shared
// board profile with a bad flasher section still runs the traffic light.
func (c Config) ValidateTraffic() error {
	var errs []error
	errs = append(errs, c.validateChip())
	if err := c.Traffic.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("traffic: %w", err))
	}
	return errors.Join(errs...)
}

// ValidateFlasher checks the chip and the flasher section only.
func (c Config) ValidateFlasher() error {
	var errs []error
	errs = append(errs, c.validateChip())
	if err := c.Flasher.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("flasher: %w", err))
	}
	return errors.Join(errs...)
}

func (c Config) validateChip() error {
	if c.Chip == "" {
		return errors.New("chip must not be empty")
	}
	return nil
}

// Validate checks pins are distinct and non-negative and durations positive.
func (t TrafficConfig) Validate() error {
	var errs []error
	errs = append(errs, checkPins(map[string]int{"red": t.Red, "yellow": t.Yellow, "green": t.Green})...)
	if t.Period <= 0 {
		errs = append(errs, fmt.Errorf("period must be positive, got %v", t.Period))
	}
	if t.Heartbeat <= 0 {
		errs = append(errs, fmt.Errorf("heartbeat must be positive, got %v", t.Heartbeat))
	}
	return errors.Join(errs...)
}

// Validate checks pins are distinct and non-negative and the delay positive.
func (f FlasherConfig) Validate() error {
	var errs []error
	errs = append(errs, checkPins(map[string]int{"blue": f.Blue, "red": f.Red, "green": f.Green, "button": f.Button})...)
	if f.Delay <= 0 {
		errs = append(errs, fmt.Errorf("delay must be positive, got %v", f.Delay))
	}
	if f.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must not be negative, got %v", f.Debounce))
	}
	return errors.Join(errs...)
}

func checkPins(pins map[string]int) []error {
	var errs []error
	seen := make(map[int]string, len(pins))
	for _, name := range sortedKeys(pins) {
		pin := pins[name]
		if pin < 0 {
			errs = append(errs, fmt.Errorf("%s pin must not be negative, got %d", name, pin))
			continue
		}
		if other, ok := seen[pin]; ok {
			errs = append(errs, fmt.Errorf("%s and %s share pin %d", other, name, pin))
			continue
		}
		seen[pin] = name
	}
	return errs
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
