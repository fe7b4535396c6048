// Package config provides user configuration management for skyreg.
//
// Settings live in a versioned YAML file that tunes the wizard (transition
// delay), the simulated submission backend (delay, forced failure), the
// country select list and the session server defaults. Every section is
// optional; missing sections take their defaults.
//
// The package also reads answers files: a registration written as YAML with
// the form field names as keys, used by the non-interactive validate and
// submit commands.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/skyreg/config.yaml or $HOME/.config/skyreg/config.yaml
//   - macOS: $HOME/.config/skyreg/config.yaml
//   - Windows: %LOCALAPPDATA%\skyreg\config.yaml
//
// # Example
//
//	version: 1
//	wizard:
//	  transition_delay_ms: 150
//	submission:
//	  delay_ms: 2000
//	  simulate_failure: false
//	countries: [United States, Canada, United Kingdom]
//	server:
//	  host: ""
//	  port: 8080
//	  advertise: true
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(settings.TransitionDelay())
//
//	answers, err := config.LoadAnswers("ada.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if errs := answers.Validate(registration.DefaultSchema()); len(errs) > 0 {
//	    fmt.Print(registration.FormatValidationErrors(errs))
//	}
//
// # Thread Safety
//
// Writes are atomic (temporary file plus rename) and serialized within the
// process by a mutex.
package config
