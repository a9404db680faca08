package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dyluth/lineblame/internal/blame"
)

// Preference keys, shared with the editor extension's preference pane.
const (
	RecentDaysKey  = "RecentDays"
	RecentColorKey = "RecentColor"
)

const (
	DefaultRecentDays  = 7.0
	DefaultRecentColor = "0.5 1.0 0.5 1"
)

// MaxRecentDays bounds RecentDays; a window this long overflows time.Duration
const MaxRecentDays = float64(math.MaxInt64) / float64(24*time.Hour)

// Config holds the highlighting preferences for a run
type Config struct {
	RecentDays  float64 `yaml:"RecentDays"`  // Recency window and decay constant, in days
	RecentColor string  `yaml:"RecentColor"` // "R G B A"; A is replaced by the decayed intensity
}

// Default returns the configuration used when no preferences are set
func Default() *Config {
	return &Config{
		RecentDays:  DefaultRecentDays,
		RecentColor: DefaultRecentColor,
	}
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if math.IsNaN(c.RecentDays) || math.IsInf(c.RecentDays, 0) {
		return fmt.Errorf("%s must be a finite number, got %v", RecentDaysKey, c.RecentDays)
	}
	if c.RecentDays <= 0 {
		return fmt.Errorf("%s must be > 0, got %v", RecentDaysKey, c.RecentDays)
	}
	// Larger windows overflow time.Duration
	if c.RecentDays >= MaxRecentDays {
		return fmt.Errorf("%s must be < %.0f, got %v", RecentDaysKey, MaxRecentDays, c.RecentDays)
	}
	if _, err := blame.NewColorTemplate(c.RecentColor); err != nil {
		return fmt.Errorf("invalid %s: %w", RecentColorKey, err)
	}
	return nil
}

// Window returns RecentDays as a duration
func (c *Config) Window() time.Duration {
	return time.Duration(c.RecentDays * float64(24*time.Hour))
}

// ColorTemplate returns RecentColor with its alpha replaced by an intensity slot
func (c *Config) ColorTemplate() (blame.ColorTemplate, error) {
	return blame.NewColorTemplate(c.RecentColor)
}

// Store is a read-only preference store
type Store interface {
	// Lookup returns the value for key, or ok=false if it is not set
	Lookup(key string) (value string, ok bool, err error)
}

// Load reads preferences from store, applying defaults for unset keys
func Load(store Store) (*Config, error) {
	config := Default()

	days, ok, err := store.Lookup(RecentDaysKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", RecentDaysKey, err)
	}
	if ok {
		config.RecentDays, err = strconv.ParseFloat(days, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %s is not a number: %q", RecentDaysKey, days)
		}
	}

	color, ok, err := store.Lookup(RecentColorKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", RecentColorKey, err)
	}
	if ok {
		config.RecentColor = color
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// trimValue normalises a raw preference value; empty values count as unset
func trimValue(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	return value, value != ""
}
