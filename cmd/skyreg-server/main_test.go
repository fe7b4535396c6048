package main

import (
	"testing"

	"github.com/muurk/skyreg/internal/config"
	"github.com/muurk/skyreg/internal/wizard"
)

func TestServerConfig_FlagsOverrideSettings(t *testing.T) {
	settings := config.NewSettings()
	settings.Server.Host = "127.0.0.1"
	settings.Server.Port = 9000
	settings.Server.Advertise = true
	settings.Submission.SimulateFailure = true

	if err := serverCmd.ParseFlags([]string{"--port", "9100", "--name", "Front desk"}); err != nil {
		t.Fatal(err)
	}
	cfg := serverConfig(serverCmd, settings)

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want settings value", cfg.Host)
	}
	if cfg.Port != 9100 {
		t.Errorf("Port = %d, want flag value 9100", cfg.Port)
	}
	if !cfg.Advertise || cfg.InstanceName != "Front desk" {
		t.Errorf("Advertise = %v InstanceName = %q", cfg.Advertise, cfg.InstanceName)
	}

	sub, ok := cfg.NewSubmitter().(*wizard.SimulatedSubmitter)
	if !ok {
		t.Fatalf("NewSubmitter() = %T", cfg.NewSubmitter())
	}
	if !sub.Fail || sub.Delay != settings.SubmitDelay() {
		t.Errorf("submitter = %+v", sub)
	}
}
