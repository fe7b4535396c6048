package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/muurk/skyreg/internal/registration"
)

// LoadAnswers reads a pre-filled registration from a YAML (or JSON) answers
// file. Keys use the form field names; unknown keys are rejected so typos
// are not silently dropped. Omitted preferences take their defaults.
func LoadAnswers(path string) (registration.Registration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("failed to read answers file: %w", err)
	}
	return ParseAnswers(data)
}

// ParseAnswers decodes an answers document
func ParseAnswers(data []byte) (registration.Registration, error) {
	var r registration.Registration

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		if errors.Is(err, io.EOF) {
			return registration.Registration{}, fmt.Errorf("answers file is empty")
		}
		return registration.Registration{}, fmt.Errorf("failed to parse answers file: %w", err)
	}

	return r.WithDefaults(), nil
}

// WriteAnswers writes a registration as an answers file
func WriteAnswers(path string, r registration.Registration) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write answers file: %w", err)
	}
	return nil
}
