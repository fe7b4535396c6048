package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/muurk/skyreg/internal/registration"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	}

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if filepath.Base(configDir) != "skyreg" {
		t.Errorf("GetConfigDir() = %v, should end in 'skyreg'", configDir)
	}

	switch runtime.GOOS {
	case "linux":
		if configDir != filepath.Join("/tmp/xdg", "skyreg") {
			t.Errorf("GetConfigDir() = %v, want XDG_CONFIG_HOME/skyreg", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewSettings(t *testing.T) {
	s := NewSettings()

	if s.Version != CurrentVersion {
		t.Errorf("Version = %v, want %d", s.Version, CurrentVersion)
	}
	if got := s.TransitionDelay(); got != 150*time.Millisecond {
		t.Errorf("TransitionDelay() = %v, want 150ms", got)
	}
	if got := s.SubmitDelay(); got != 2*time.Second {
		t.Errorf("SubmitDelay() = %v, want 2s", got)
	}
	if s.Submission.SimulateFailure {
		t.Error("SimulateFailure should default to false")
	}
	if got := s.DiscoveryTimeout(); got != 5*time.Second {
		t.Errorf("DiscoveryTimeout() = %v, want 5s", got)
	}
	if diff := cmp.Diff(registration.DefaultCountries, s.Countries); diff != "" {
		t.Errorf("Countries mismatch (-want +got):\n%s", diff)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}

	// The default list must be a copy
	s.Countries[0] = "Atlantis"
	if registration.DefaultCountries[0] == "Atlantis" {
		t.Error("NewSettings shares its country slice with DefaultCountries")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"wrong version", func(s *Settings) { s.Version = 2 }, "unsupported config version"},
		{"negative transition", func(s *Settings) { s.Wizard.TransitionDelayMS = -1 }, "transition_delay_ms"},
		{"negative submit delay", func(s *Settings) { s.Submission.DelayMS = -5 }, "delay_ms"},
		{"port too high", func(s *Settings) { s.Server.Port = 70000 }, "server.port"},
		{"zero discovery timeout", func(s *Settings) { s.Discovery.TimeoutSeconds = 0 }, "timeout_seconds"},
		{"empty country", func(s *Settings) { s.Countries = []string{"Canada", ""} }, "empty entry"},
		{"duplicate country", func(s *Settings) { s.Countries = []string{"Canada", "Canada"} }, "twice"},
		{"zero transition is allowed", func(s *Settings) { s.Wizard.TransitionDelayMS = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if diff := cmp.Diff(NewSettings(), s); diff != "" {
		t.Errorf("LoadFrom(missing) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `version: 1
submission:
  delay_ms: 10
  simulate_failure: true
countries: [Iceland, Norway]
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if s.SubmitDelay() != 10*time.Millisecond || !s.Submission.SimulateFailure {
		t.Errorf("Submission = %+v, want 10ms failing", s.Submission)
	}
	if diff := cmp.Diff([]string{"Iceland", "Norway"}, s.Countries); diff != "" {
		t.Errorf("Countries mismatch (-want +got):\n%s", diff)
	}
	// Omitted sections take defaults
	if s.Wizard.TransitionDelayMS != DefaultTransitionDelayMS || s.Server.Port != DefaultServerPort {
		t.Errorf("defaults not filled: wizard %+v server %+v", s.Wizard, s.Server)
	}
}

func TestLoadFrom_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "version: [1"},
		{"future version", "version: 3\n"},
		{"negative delay", "version: 1\nwizard:\n  transition_delay_ms: -10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFrom(path); err == nil {
				t.Error("LoadFrom() succeeded, want error")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	s := NewSettings()
	s.Wizard.TransitionDelayMS = 0
	s.Server.Advertise = true
	s.Server.InstanceName = "front desk"
	s.Countries = []string{"Japan", "Other"}

	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if diff := cmp.Diff(s, loaded); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := Init(path, false); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Init(path, false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("second Init() = %v, want ErrConfigExists", err)
	}
	if err := Init(path, true); err != nil {
		t.Errorf("Init(force) error = %v", err)
	}
}

func TestSave_DefaultLocation(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := NewSettings().Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if want := filepath.Join(dir, "skyreg", "config.yaml"); path != want {
		t.Errorf("Save() path = %q, want %q", path, want)
	}

	if _, err := Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
