// Package validator provides declarative form validation.
//
// Rules are plain constructors returning a Rule (a deferred check plus the
// ValidationError it yields). Apply runs all rules, First stops at the first
// failure.
//
//	err := validator.Apply(
//		validator.Required("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//	)
//
// # Forms
//
// A Form is declared with rule specs written as comma separated names with
// colon separated parameters:
//
//	form := validator.MustNewForm(
//		validator.Field{Name: "email", Rules: "required,email"},
//		validator.Field{Name: "password", Rules: "required,min:8"},
//		validator.Field{Name: "confirm", Rules: "required,match:password"},
//	)
//	err := form.Submit(values, func(v validator.Values) error {
//		return createAccount(v)
//	})
//
// Rule names map to a fixed set of rule builders: required, email, min,
// max, len, match, url, uuid, phone, alpha, alphanumeric and numeric.
// Unknown names and malformed parameters are rejected by NewForm. Each field
// reports only its first failing rule; ValidationErrors.Messages returns the
// field to message map used to display errors next to inputs.
package validator
