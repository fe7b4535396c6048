package registration

import (
	"fmt"
	"strings"
)

// Registration is the submission payload: every field value of a completed
// form. Field tags match the schema field names.
type Registration struct {
	FirstName   string `json:"firstName" yaml:"firstName"`
	LastName    string `json:"lastName" yaml:"lastName"`
	DateOfBirth string `json:"dateOfBirth" yaml:"dateOfBirth"`
	Gender      Gender `json:"gender" yaml:"gender"`

	Email   string `json:"email" yaml:"email"`
	Phone   string `json:"phone" yaml:"phone"`
	Address string `json:"address" yaml:"address"`
	City    string `json:"city" yaml:"city"`
	Country string `json:"country" yaml:"country"`

	TravelClass     TravelClass    `json:"travelClass" yaml:"travelClass"`
	SeatPreference  SeatPreference `json:"seatPreference" yaml:"seatPreference"`
	MealPreference  MealPreference `json:"mealPreference" yaml:"mealPreference"`
	SpecialRequests string         `json:"specialRequests,omitempty" yaml:"specialRequests,omitempty"`

	TermsAccepted       bool `json:"termsAccepted" yaml:"termsAccepted"`
	NewsletterSubscribe bool `json:"newsletterSubscribe" yaml:"newsletterSubscribe"`
}

// Values converts the payload into schema field values
func (r Registration) Values() map[string]Value {
	return map[string]Value{
		FieldFirstName:           Text(r.FirstName),
		FieldLastName:            Text(r.LastName),
		FieldDateOfBirth:         Text(r.DateOfBirth),
		FieldGender:              Enum(string(r.Gender)),
		FieldEmail:               Text(r.Email),
		FieldPhone:               Text(r.Phone),
		FieldAddress:             Text(r.Address),
		FieldCity:                Text(r.City),
		FieldCountry:             Text(r.Country),
		FieldTravelClass:         Enum(string(r.TravelClass)),
		FieldSeatPreference:      Enum(string(r.SeatPreference)),
		FieldMealPreference:      Enum(string(r.MealPreference)),
		FieldSpecialRequests:     Text(r.SpecialRequests),
		FieldTermsAccepted:       Bool(r.TermsAccepted),
		FieldNewsletterSubscribe: Bool(r.NewsletterSubscribe),
	}
}

// WithDefaults fills empty enum members from the schema defaults. Answers
// files may omit preferences; text fields are left untouched so that missing
// required values still fail validation.
func (r Registration) WithDefaults() Registration {
	if r.Gender == "" {
		r.Gender = GenderPreferNotToSay
	}
	if r.TravelClass == "" {
		r.TravelClass = TravelClassEconomy
	}
	if r.SeatPreference == "" {
		r.SeatPreference = SeatWindow
	}
	if r.MealPreference == "" {
		r.MealPreference = MealStandard
	}
	return r
}

// FromValues builds a payload from field values. Every schema field must be
// present with the right kind.
func FromValues(values map[string]Value) (Registration, error) {
	var r Registration
	var missing []string

	text := func(name string, dst *string) {
		v, ok := values[name]
		if !ok || v.Kind() == KindBool {
			missing = append(missing, name)
			return
		}
		*dst = v.Text()
	}
	flag := func(name string, dst *bool) {
		v, ok := values[name]
		if !ok || v.Kind() != KindBool {
			missing = append(missing, name)
			return
		}
		*dst = v.Bool()
	}

	var gender, class, seat, meal string
	text(FieldFirstName, &r.FirstName)
	text(FieldLastName, &r.LastName)
	text(FieldDateOfBirth, &r.DateOfBirth)
	text(FieldGender, &gender)
	text(FieldEmail, &r.Email)
	text(FieldPhone, &r.Phone)
	text(FieldAddress, &r.Address)
	text(FieldCity, &r.City)
	text(FieldCountry, &r.Country)
	text(FieldTravelClass, &class)
	text(FieldSeatPreference, &seat)
	text(FieldMealPreference, &meal)
	text(FieldSpecialRequests, &r.SpecialRequests)
	flag(FieldTermsAccepted, &r.TermsAccepted)
	flag(FieldNewsletterSubscribe, &r.NewsletterSubscribe)

	if len(missing) > 0 {
		return Registration{}, fmt.Errorf("incomplete values (%s): %w", strings.Join(missing, ", "), ErrKindMismatch)
	}

	r.Gender = Gender(gender)
	r.TravelClass = TravelClass(class)
	r.SeatPreference = SeatPreference(seat)
	r.MealPreference = MealPreference(meal)
	return r, nil
}

// Validate checks the payload against the schema
func (r Registration) Validate(schema *Schema) ValidationErrors {
	return schema.ValidateAll(r.Values())
}

// FullName joins first and last name for display
func (r Registration) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}
