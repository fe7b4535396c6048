package form

import (
	"fmt"

	"github.com/muurk/skyreg/internal/registration"
)

// FieldState is the state of a single field
type FieldState struct {
	Name    string
	Value   registration.Value
	Error   string // "" when the field has no reported error
	Dirty   bool   // value differs from the schema default
	Touched bool   // the field has been edited or blurred at least once
}

// Store holds the current value, error and flags for every schema field.
// Every schema field has exactly one entry from construction onwards.
//
// A Store is owned by a single session and is not safe for concurrent use.
type Store struct {
	schema *registration.Schema
	fields map[string]*FieldState
}

// NewStore creates a store initialized with the schema defaults
func NewStore(schema *registration.Schema) *Store {
	s := &Store{schema: schema}
	s.Reset()
	return s
}

// Schema returns the schema the store was built from
func (s *Store) Schema() *registration.Schema {
	return s.schema
}

// Reset restores every field to its default with no errors and clear flags
func (s *Store) Reset() {
	s.fields = make(map[string]*FieldState, len(s.schema.Names()))
	for _, f := range s.schema.Fields() {
		s.fields[f.Name] = &FieldState{Name: f.Name, Value: f.Default}
	}
}

// Get returns the current value of a field
func (s *Store) Get(name string) (registration.Value, error) {
	fs, ok := s.fields[name]
	if !ok {
		return registration.Value{}, fmt.Errorf("get %q: %w", name, registration.ErrUnknownField)
	}
	return fs.Value, nil
}

// Set stores a new value for a field and marks it touched. A field that
// currently shows an error is re-validated so the error clears as soon as the
// value becomes valid; a clean field is not validated until its step is.
func (s *Store) Set(name string, v registration.Value) error {
	fs, ok := s.fields[name]
	if !ok {
		return fmt.Errorf("set %q: %w", name, registration.ErrUnknownField)
	}
	spec, _ := s.schema.Lookup(name)
	if v.Kind() != spec.Kind {
		return fmt.Errorf("set %q: got %s, want %s: %w", name, v.Kind(), spec.Kind, registration.ErrKindMismatch)
	}

	fs.Value = v
	fs.Touched = true
	fs.Dirty = !v.Equal(spec.Default)

	if fs.Error != "" {
		fs.Error = ""
		if fe := spec.Validate(v); fe != nil {
			fs.Error = fe.Message
		}
	}
	return nil
}

// SetText is a convenience for Set with a value of the field's kind parsed
// from raw input. Text and enum fields take raw as is; boolean fields accept
// "true" and "false".
func (s *Store) SetText(name, raw string) error {
	spec, ok := s.schema.Lookup(name)
	if !ok {
		return fmt.Errorf("set %q: %w", name, registration.ErrUnknownField)
	}
	switch spec.Kind {
	case registration.KindEnum:
		return s.Set(name, registration.Enum(raw))
	case registration.KindBool:
		switch raw {
		case "true":
			return s.Set(name, registration.Bool(true))
		case "false":
			return s.Set(name, registration.Bool(false))
		default:
			return fmt.Errorf("set %q: %q is not a boolean: %w", name, raw, registration.ErrKindMismatch)
		}
	default:
		return s.Set(name, registration.Text(raw))
	}
}

// Validate runs the rules of the named fields, records the outcome on each
// field and returns the failures. Fields that pass have their error cleared.
func (s *Store) Validate(names ...string) (registration.ValidationErrors, error) {
	var errs registration.ValidationErrors
	for _, name := range names {
		fs, ok := s.fields[name]
		if !ok {
			return nil, fmt.Errorf("validate %q: %w", name, registration.ErrUnknownField)
		}
		spec, _ := s.schema.Lookup(name)

		fs.Error = ""
		if fe := spec.Validate(fs.Value); fe != nil {
			fs.Error = fe.Message
			errs = append(errs, fe)
		}
	}
	return errs, nil
}

// ValidateAll validates every schema field
func (s *Store) ValidateAll() registration.ValidationErrors {
	// Names come from the schema, so the lookup cannot fail.
	errs, _ := s.Validate(s.schema.Names()...)
	return errs
}

// Error returns the error currently shown for a field
func (s *Store) Error(name string) string {
	if fs, ok := s.fields[name]; ok {
		return fs.Error
	}
	return ""
}

// Errors returns every field that currently shows an error
func (s *Store) Errors() map[string]string {
	out := make(map[string]string)
	for name, fs := range s.fields {
		if fs.Error != "" {
			out[name] = fs.Error
		}
	}
	return out
}

// ClearErrors removes every shown error without touching values
func (s *Store) ClearErrors() {
	for _, fs := range s.fields {
		fs.Error = ""
	}
}

// Values returns a copy of every field value
func (s *Store) Values() map[string]registration.Value {
	out := make(map[string]registration.Value, len(s.fields))
	for name, fs := range s.fields {
		out[name] = fs.Value
	}
	return out
}

// Field returns a copy of one field's state
func (s *Store) Field(name string) (FieldState, bool) {
	fs, ok := s.fields[name]
	if !ok {
		return FieldState{}, false
	}
	return *fs, true
}

// Fields returns a copy of every field's state in schema order
func (s *Store) Fields() []FieldState {
	out := make([]FieldState, 0, len(s.fields))
	for _, name := range s.schema.Names() {
		out = append(out, *s.fields[name])
	}
	return out
}

// Dirty reports whether any field differs from its default
func (s *Store) Dirty() bool {
	for _, fs := range s.fields {
		if fs.Dirty {
			return true
		}
	}
	return false
}

// Registration packages the current values as a submission payload
func (s *Store) Registration() registration.Registration {
	// Kinds are enforced by Set, so every field converts.
	r, _ := registration.FromValues(s.Values())
	return r
}

// Load replaces every value with the fields of r. Flags are recomputed
// against the defaults and errors are cleared.
func (s *Store) Load(r registration.Registration) {
	s.Reset()
	for name, v := range r.Values() {
		spec, ok := s.schema.Lookup(name)
		if !ok || spec.Kind != v.Kind() {
			continue
		}
		fs := s.fields[name]
		fs.Value = v
		fs.Dirty = !v.Equal(spec.Default)
		fs.Touched = fs.Dirty
	}
}
