package validator

import "errors"

var (
	// ErrUnknownRule is returned when a rule spec names a rule that does not exist.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrInvalidRuleParam is returned when a rule parameter is missing or malformed.
	ErrInvalidRuleParam = errors.New("invalid validation rule parameter")

	// ErrDuplicateField is returned when a form declares the same field twice.
	ErrDuplicateField = errors.New("duplicate form field")
)

// ErrParseForm is returned by ValidateRequest when the request body cannot be parsed.
var ErrParseForm = errors.New("failed to parse form")
