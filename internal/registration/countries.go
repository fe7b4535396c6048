package registration

// DefaultCountries is the country list offered by the contact details step
// when no configuration overrides it
var DefaultCountries = []string{
	"United States",
	"Canada",
	"United Kingdom",
	"Germany",
	"France",
	"Spain",
	"Italy",
	"Japan",
	"Australia",
	"Brazil",
	"Other",
}
