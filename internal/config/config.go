// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New() returns a Config holding defaults; Load layers overrides on top.
//   - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"time"

	"github.com/okian/mergington/internal/domain/activity"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// EnforceCapacity rejects signups once max_participants is reached.
	// Off by default: capacity is shown to students but not enforced.
	EnforceCapacity bool `koanf:"enforce_capacity"`

	// MetricsInterval is how often gauges are refreshed in the background.
	MetricsInterval time.Duration `koanf:"metrics_interval"`

	// Activities overrides the built-in catalog when non-empty. File only.
	Activities []ActivityConfig `koanf:"activities"`
}

// ActivityConfig is one catalog entry as written in the YAML config file.
type ActivityConfig struct {
	Name            string   `koanf:"name"`
	Description     string   `koanf:"description"`
	Schedule        string   `koanf:"schedule"`
	MaxParticipants int      `koanf:"max_participants"`
	Participants    []string `koanf:"participants"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":8000",
		EnforceCapacity: false,
		MetricsInterval: 10 * time.Second,
	}
}

// Catalog returns the configured activities, or the built-in catalog when
// none are configured.
func (c *Config) Catalog() []activity.Activity {
	if len(c.Activities) == 0 {
		return activity.DefaultCatalog()
	}
	out := make([]activity.Activity, 0, len(c.Activities))
	for _, a := range c.Activities {
		participants := make([]string, len(a.Participants))
		copy(participants, a.Participants)
		out = append(out, activity.Activity{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		})
	}
	return out
}
