package registration

import "fmt"

// Field names, matching the keys of the submission payload
const (
	FieldFirstName           = "firstName"
	FieldLastName            = "lastName"
	FieldDateOfBirth         = "dateOfBirth"
	FieldGender              = "gender"
	FieldEmail               = "email"
	FieldPhone               = "phone"
	FieldAddress             = "address"
	FieldCity                = "city"
	FieldCountry             = "country"
	FieldTravelClass         = "travelClass"
	FieldSeatPreference      = "seatPreference"
	FieldMealPreference      = "mealPreference"
	FieldSpecialRequests     = "specialRequests"
	FieldTermsAccepted       = "termsAccepted"
	FieldNewsletterSubscribe = "newsletterSubscribe"
)

// SpecialRequestsSoftLimit is the advisory character limit for special
// requests. Renderers cap input here; exceeding it is never a validation error.
const SpecialRequestsSoftLimit = 500

// FieldSpec declares one field of the form
type FieldSpec struct {
	Name        string
	Label       string
	Kind        Kind
	Default     Value
	Options     []string // enum members, display order
	Required    bool
	Placeholder string
	SoftLimit   int // advisory maximum length in characters, 0 = none
	Rule        Rule
}

// Validate runs the field rule against v
func (f FieldSpec) Validate(v Value) *FieldError {
	if f.Rule == nil {
		return nil
	}
	if msg := f.Rule(v); msg != "" {
		return NewFieldError(f.Name, msg)
	}
	return nil
}

// Schema is an ordered, immutable set of field specs
type Schema struct {
	fields []FieldSpec
	index  map[string]int
}

// NewSchema builds a schema from specs. Field names must be unique and each
// default must match its field kind.
func NewSchema(specs []FieldSpec) (*Schema, error) {
	s := &Schema{
		fields: make([]FieldSpec, len(specs)),
		index:  make(map[string]int, len(specs)),
	}
	for i, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("field %d has no name", i)
		}
		if _, dup := s.index[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate field %q", spec.Name)
		}
		if spec.Default.Kind() != spec.Kind {
			return nil, fmt.Errorf("field %q: default is %s, want %s: %w", spec.Name, spec.Default.Kind(), spec.Kind, ErrKindMismatch)
		}
		s.fields[i] = spec
		s.index[spec.Name] = i
	}
	return s, nil
}

// Fields returns a copy of the field specs in display order
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in display order
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the spec for a field
func (s *Schema) Lookup(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[i], true
}

// Has reports whether name is a schema field
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Defaults returns a fresh map of every field's default value
func (s *Schema) Defaults() map[string]Value {
	out := make(map[string]Value, len(s.fields))
	for _, f := range s.fields {
		out[f.Name] = f.Default
	}
	return out
}

// Validate checks a single value against its field rule. It returns
// ErrUnknownField for names outside the schema and a *FieldError on failure.
func (s *Schema) Validate(name string, v Value) error {
	spec, ok := s.Lookup(name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownField)
	}
	if fe := spec.Validate(v); fe != nil {
		return fe
	}
	return nil
}

// ValidateAll checks every field present in values, in schema order.
// Fields missing from values are validated against their defaults.
func (s *Schema) ValidateAll(values map[string]Value) ValidationErrors {
	var errs ValidationErrors
	for _, f := range s.fields {
		v, ok := values[f.Name]
		if !ok {
			v = f.Default
		}
		if fe := f.Validate(v); fe != nil {
			errs = append(errs, fe)
		}
	}
	return errs
}

// DefaultSchema returns the registration form schema
func DefaultSchema() *Schema {
	s, err := NewSchema(defaultFields())
	if err != nil {
		panic(fmt.Sprintf("registration: invalid built-in schema: %v", err))
	}
	return s
}

func defaultFields() []FieldSpec {
	return []FieldSpec{
		// Personal information
		{
			Name: FieldFirstName, Label: "First Name", Kind: KindText, Default: Text(""),
			Required: true, Placeholder: "Enter your first name",
			Rule: MinLength(2, "First name must be at least 2 characters"),
		},
		{
			Name: FieldLastName, Label: "Last Name", Kind: KindText, Default: Text(""),
			Required: true, Placeholder: "Enter your last name",
			Rule: MinLength(2, "Last name must be at least 2 characters"),
		},
		{
			Name: FieldDateOfBirth, Label: "Date of Birth", Kind: KindText, Default: Text(""),
			Required: true, Placeholder: "YYYY-MM-DD",
			Rule: Required("Date of birth is required"),
		},
		{
			Name: FieldGender, Label: "Gender", Kind: KindEnum, Default: Enum(string(GenderPreferNotToSay)),
			Required: true, Options: genderOptions(),
			Rule: OneOf(genderOptions()...),
		},

		// Contact details
		{
			Name: FieldEmail, Label: "Email Address", Kind: KindText, Default: Text(""),
			Required: true, Placeholder: "your.email@example.com",
			Rule: Email("Please enter a valid email address"),
		},
		{
			Name: FieldPhone, Label: "Phone Number", Kind: KindText, Default: Text(""),
			Required: true, Placeholder: "+1 (555) 123-4567",
			Rule: MinLength(10, "Phone number must be at least 10 digits"),
		},
		{
			Name: FieldAddress, Label: "Street Address", Kind: KindText, Default: Text(""),
			Required: true, Placeholder: "123 Main Street, Apt 4B",
			Rule: MinLength(5, "Address must be at least 5 characters"),
		},
		{
			Name: FieldCity, Label: "City", Kind: KindText, Default: Text(""),
			Required: true, Placeholder: "New York",
			Rule: MinLength(2, "City must be at least 2 characters"),
		},
		{
			Name: FieldCountry, Label: "Country", Kind: KindText, Default: Text(""),
			Required: true, Placeholder: "Select country",
			Rule: Required("Please select a country"),
		},

		// Travel preferences
		{
			Name: FieldTravelClass, Label: "Preferred Travel Class", Kind: KindEnum, Default: Enum(string(TravelClassEconomy)),
			Required: true, Options: travelClassOptions(),
			Rule: OneOf(travelClassOptions()...),
		},
		{
			Name: FieldSeatPreference, Label: "Seat Preference", Kind: KindEnum, Default: Enum(string(SeatWindow)),
			Required: true, Options: seatOptions(),
			Rule: OneOf(seatOptions()...),
		},
		{
			Name: FieldMealPreference, Label: "Meal Preference", Kind: KindEnum, Default: Enum(string(MealStandard)),
			Required: true, Options: mealOptions(),
			Rule: OneOf(mealOptions()...),
		},
		{
			Name: FieldSpecialRequests, Label: "Special Requests (Optional)", Kind: KindText, Default: Text(""),
			Placeholder: "Any special requirements or requests...", SoftLimit: SpecialRequestsSoftLimit,
			Rule: OptionalText(),
		},

		// Agreements
		{
			Name: FieldTermsAccepted, Label: "I accept the Terms and Conditions", Kind: KindBool, Default: Bool(false),
			Required: true,
			Rule:     MustBeTrue("You must accept the terms and conditions"),
		},
		{
			Name: FieldNewsletterSubscribe, Label: "Subscribe to our newsletter", Kind: KindBool, Default: Bool(false),
			Rule: OptionalBool(),
		},
	}
}
