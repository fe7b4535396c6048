package config

import (
	"fmt"
	"time"

	"github.com/muurk/skyreg/internal/registration"
)

// CurrentVersion is the only config file version this build understands
const CurrentVersion = 1

// Settings represents the entire user configuration file.
type Settings struct {
	Version    int              `yaml:"version"`
	Wizard     *WizardPrefs     `yaml:"wizard,omitempty"`
	Submission *SubmissionPrefs `yaml:"submission,omitempty"`
	Countries  []string         `yaml:"countries,omitempty"` // Country select list, in display order
	Server     *ServerPrefs     `yaml:"server,omitempty"`
	Discovery  *DiscoveryPrefs  `yaml:"discovery,omitempty"`
}

// WizardPrefs controls the interactive wizard
type WizardPrefs struct {
	TransitionDelayMS int `yaml:"transition_delay_ms"` // 0 disables the step transition
}

// SubmissionPrefs controls the simulated submission backend
type SubmissionPrefs struct {
	DelayMS         int  `yaml:"delay_ms"`
	SimulateFailure bool `yaml:"simulate_failure"` // Every submission fails (exercises retry)
}

// ServerPrefs are the defaults for skyreg-server flags
type ServerPrefs struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Advertise    bool   `yaml:"advertise"`
	InstanceName string `yaml:"instance_name,omitempty"`
}

// DiscoveryPrefs controls `skyreg discover`
type DiscoveryPrefs struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Defaults
const (
	DefaultTransitionDelayMS = 150
	DefaultSubmitDelayMS     = 2000
	DefaultServerPort        = 8080
	DefaultDiscoveryTimeout  = 5
)

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	s := &Settings{Version: CurrentVersion}
	s.fillDefaults()
	return s
}

// fillDefaults populates missing sections. Files written by hand may leave
// any of them out.
func (s *Settings) fillDefaults() {
	if s.Wizard == nil {
		s.Wizard = &WizardPrefs{TransitionDelayMS: DefaultTransitionDelayMS}
	}
	if s.Submission == nil {
		s.Submission = &SubmissionPrefs{DelayMS: DefaultSubmitDelayMS}
	}
	if len(s.Countries) == 0 {
		s.Countries = append([]string(nil), registration.DefaultCountries...)
	}
	if s.Server == nil {
		s.Server = &ServerPrefs{Port: DefaultServerPort}
	}
	if s.Discovery == nil {
		s.Discovery = &DiscoveryPrefs{TimeoutSeconds: DefaultDiscoveryTimeout}
	}
}

// Validate reports settings that cannot be used
func (s *Settings) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", s.Version, CurrentVersion)
	}
	if s.Wizard.TransitionDelayMS < 0 {
		return fmt.Errorf("wizard.transition_delay_ms must not be negative, got %d", s.Wizard.TransitionDelayMS)
	}
	if s.Submission.DelayMS < 0 {
		return fmt.Errorf("submission.delay_ms must not be negative, got %d", s.Submission.DelayMS)
	}
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", s.Server.Port)
	}
	if s.Discovery.TimeoutSeconds <= 0 {
		return fmt.Errorf("discovery.timeout_seconds must be positive, got %d", s.Discovery.TimeoutSeconds)
	}

	seen := make(map[string]bool, len(s.Countries))
	for _, c := range s.Countries {
		if c == "" {
			return fmt.Errorf("countries contains an empty entry")
		}
		if seen[c] {
			return fmt.Errorf("countries lists %q twice", c)
		}
		seen[c] = true
	}
	return nil
}

// TransitionDelay returns the step transition delay
func (s *Settings) TransitionDelay() time.Duration {
	return time.Duration(s.Wizard.TransitionDelayMS) * time.Millisecond
}

// SubmitDelay returns the simulated submission delay
func (s *Settings) SubmitDelay() time.Duration {
	return time.Duration(s.Submission.DelayMS) * time.Millisecond
}

// DiscoveryTimeout returns the default mDNS browse timeout
func (s *Settings) DiscoveryTimeout() time.Duration {
	return time.Duration(s.Discovery.TimeoutSeconds) * time.Second
}
