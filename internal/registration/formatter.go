package registration

import (
	"fmt"
	"strings"
)

// FormatValue converts a raw field value into the label shown on the review
// step. Enum members are title-cased; the first travel class reads "First
// Class". Non-enum fields are returned unchanged.
func FormatValue(field, raw string) string {
	switch field {
	case FieldGender:
		return titleWords(raw)
	case FieldTravelClass:
		if raw == string(TravelClassFirst) {
			return "First Class"
		}
		return capitalize(raw)
	case FieldSeatPreference, FieldMealPreference:
		return capitalize(raw)
	default:
		return raw
	}
}

// FormatBool renders a checkbox value for summaries
func FormatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// titleWords capitalizes every hyphen-separated word and joins them with spaces
func titleWords(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Summary returns a one-line summary of the registration
func (r Registration) Summary() string {
	return fmt.Sprintf("%s <%s> %s, %s", r.FullName(), r.Email, FormatValue(FieldTravelClass, string(r.TravelClass)), r.Country)
}

// FormatDetailed returns the review summary grouped the way the review step
// shows it
func (r Registration) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("=== Personal Information ===\n")
	b.WriteString(fmt.Sprintf("Name:          %s\n", r.FullName()))
	b.WriteString(fmt.Sprintf("Date of Birth: %s\n", r.DateOfBirth))
	b.WriteString(fmt.Sprintf("Gender:        %s\n", FormatValue(FieldGender, string(r.Gender))))
	b.WriteString("\n")

	b.WriteString("=== Contact Details ===\n")
	b.WriteString(fmt.Sprintf("Email:         %s\n", r.Email))
	b.WriteString(fmt.Sprintf("Phone:         %s\n", r.Phone))
	b.WriteString(fmt.Sprintf("Address:       %s\n", r.Address))
	b.WriteString(fmt.Sprintf("Location:      %s, %s\n", r.City, r.Country))
	b.WriteString("\n")

	b.WriteString("=== Travel Preferences ===\n")
	b.WriteString(fmt.Sprintf("Travel Class:  %s\n", FormatValue(FieldTravelClass, string(r.TravelClass))))
	b.WriteString(fmt.Sprintf("Seat:          %s\n", FormatValue(FieldSeatPreference, string(r.SeatPreference))))
	b.WriteString(fmt.Sprintf("Meal:          %s\n", FormatValue(FieldMealPreference, string(r.MealPreference))))
	if r.SpecialRequests != "" {
		b.WriteString(fmt.Sprintf("Requests:      %s\n", r.SpecialRequests))
	}
	b.WriteString("\n")

	b.WriteString("=== Agreements ===\n")
	b.WriteString(fmt.Sprintf("Terms:         %s\n", FormatBool(r.TermsAccepted)))
	b.WriteString(fmt.Sprintf("Newsletter:    %s\n", FormatBool(r.NewsletterSubscribe)))

	return b.String()
}
