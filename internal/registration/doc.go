// Package registration defines the field schema of the flight booking
// registration form.
//
// The package owns everything that is independent of navigation: the field
// names and their kinds, the default value of every field, the validation
// rule attached to each field, the closed enum domains and the payload that
// is handed to a submitter once the wizard completes.
//
// # Values
//
// Field values are a small tagged union (Value) over text, boolean and enum
// members. Values are immutable; a Value of the wrong kind for a field never
// validates.
//
// # Rules
//
// A Rule is a pure function from a Value to an error message. An empty
// message means the value is valid. Rules never panic and can be chained:
//
//	rule := registration.Chain(
//	    registration.Required("Date of birth is required"),
//	    registration.MinLength(2, "Too short"),
//	)
//
// # Schema
//
// DefaultSchema returns the registration schema in display order:
//
//	schema := registration.DefaultSchema()
//	if err := schema.Validate(registration.FieldEmail, registration.Text("a@b.com")); err != nil {
//	    fmt.Println(err)
//	}
//
// Validation failures are reported as *FieldError values, aggregated into
// ValidationErrors when several fields are checked at once.
package registration
