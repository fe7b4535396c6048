// Package form holds the mutable state of a registration form.
//
// A Store keeps one entry per schema field: the current value, the error
// message currently shown for it, and dirty/touched flags. Values are
// initialized from the schema defaults and only the wizard's Start Over
// action restores them.
//
// Validation is explicit. Set does not validate a clean field; errors appear
// when a step is validated (see Store.Validate) and clear as soon as the user
// corrects the value.
//
//	store := form.NewStore(registration.DefaultSchema())
//	_ = store.Set(registration.FieldFirstName, registration.Text("A"))
//	errs, _ := store.Validate(registration.FieldFirstName)
//	// errs[0].Message == "First name must be at least 2 characters"
//	_ = store.Set(registration.FieldFirstName, registration.Text("Al"))
//	// store.Error(registration.FieldFirstName) == ""
package form
