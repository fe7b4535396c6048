package registration

// Gender is the closed set of gender options
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer-not-to-say"
)

// Genders lists every gender option in display order
var Genders = []Gender{GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay}

// Valid reports whether g is a declared member
func (g Gender) Valid() bool {
	for _, m := range Genders {
		if g == m {
			return true
		}
	}
	return false
}

// TravelClass is the closed set of cabin classes
type TravelClass string

const (
	TravelClassEconomy  TravelClass = "economy"
	TravelClassBusiness TravelClass = "business"
	TravelClassFirst    TravelClass = "first"
)

// TravelClasses lists every cabin class in display order
var TravelClasses = []TravelClass{TravelClassEconomy, TravelClassBusiness, TravelClassFirst}

// Valid reports whether c is a declared member
func (c TravelClass) Valid() bool {
	for _, m := range TravelClasses {
		if c == m {
			return true
		}
	}
	return false
}

// SeatPreference is the closed set of seat options
type SeatPreference string

const (
	SeatWindow SeatPreference = "window"
	SeatAisle  SeatPreference = "aisle"
	SeatMiddle SeatPreference = "middle"
)

// SeatPreferences lists every seat option in display order
var SeatPreferences = []SeatPreference{SeatWindow, SeatAisle, SeatMiddle}

// Valid reports whether s is a declared member
func (s SeatPreference) Valid() bool {
	for _, m := range SeatPreferences {
		if s == m {
			return true
		}
	}
	return false
}

// MealPreference is the closed set of meal options
type MealPreference string

const (
	MealStandard   MealPreference = "standard"
	MealVegetarian MealPreference = "vegetarian"
	MealVegan      MealPreference = "vegan"
	MealHalal      MealPreference = "halal"
	MealKosher     MealPreference = "kosher"
)

// MealPreferences lists every meal option in display order
var MealPreferences = []MealPreference{MealStandard, MealVegetarian, MealVegan, MealHalal, MealKosher}

// Valid reports whether m is a declared member
func (m MealPreference) Valid() bool {
	for _, opt := range MealPreferences {
		if m == opt {
			return true
		}
	}
	return false
}

func genderOptions() []string {
	out := make([]string, len(Genders))
	for i, g := range Genders {
		out[i] = string(g)
	}
	return out
}

func travelClassOptions() []string {
	out := make([]string, len(TravelClasses))
	for i, c := range TravelClasses {
		out[i] = string(c)
	}
	return out
}

func seatOptions() []string {
	out := make([]string, len(SeatPreferences))
	for i, s := range SeatPreferences {
		out[i] = string(s)
	}
	return out
}

func mealOptions() []string {
	out := make([]string, len(MealPreferences))
	for i, m := range MealPreferences {
		out[i] = string(m)
	}
	return out
}

// ParseGender converts s to a Gender, reporting whether it is a member
func ParseGender(s string) (Gender, bool) {
	g := Gender(s)
	return g, g.Valid()
}

// ParseTravelClass converts s to a TravelClass, reporting whether it is a member
func ParseTravelClass(s string) (TravelClass, bool) {
	c := TravelClass(s)
	return c, c.Valid()
}

// ParseSeatPreference converts s to a SeatPreference, reporting whether it is a member
func ParseSeatPreference(s string) (SeatPreference, bool) {
	p := SeatPreference(s)
	return p, p.Valid()
}

// ParseMealPreference converts s to a MealPreference, reporting whether it is a member
func ParseMealPreference(s string) (MealPreference, bool) {
	m := MealPreference(s)
	return m, m.Valid()
}
