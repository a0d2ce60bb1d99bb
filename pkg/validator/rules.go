package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	// E.164 with optional leading plus
	phoneRegex        = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaRegex        = regexp.MustCompile(`^[a-zA-Z]+$`)
	numericRegex      = regexp.MustCompile(`^[0-9]+$`)
)

// Required fails for empty or whitespace-only values.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Rule: RuleRequired, Message: "field is required"},
	}
}

// MinLen fails when value has fewer than min characters (runes).
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: ValidationError{
			Field:   field,
			Rule:    RuleMinLength,
			Message: fmt.Sprintf("must be at least %d characters long", min),
			Params:  map[string]any{"min": min},
		},
	}
}

// MaxLen fails when value has more than max characters (runes).
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:   field,
			Rule:    RuleMaxLength,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Params:  map[string]any{"max": max},
		},
	}
}

// Len fails unless value has exactly n characters (runes).
func Len(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) == n },
		Error: ValidationError{
			Field:   field,
			Rule:    RuleLength,
			Message: fmt.Sprintf("must be exactly %d characters long", n),
			Params:  map[string]any{"length": n},
		},
	}
}

// Match fails unless value equals other. otherField names the compared
// field in the error params.
func Match(field, value, otherField, other string) Rule {
	return Rule{
		Check: func() bool { return value == other },
		Error: ValidationError{
			Field:   field,
			Rule:    RuleMatch,
			Message: "values do not match",
			Params:  map[string]any{"other": otherField},
		},
	}
}

// ValidEmail accepts a bare RFC 5322 address whose domain has at least one dot.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != strings.TrimSpace(value) {
				return false
			}
			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{Field: field, Rule: RuleEmail, Message: "must be a valid email address"},
	}
}

// ValidURL requires an absolute URL with scheme and host.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			u, err := url.ParseRequestURI(strings.TrimSpace(value))
			return err == nil && u.Scheme != "" && u.Host != ""
		},
		Error: ValidationError{Field: field, Rule: RuleURL, Message: "must be a valid URL"},
	}
}

// ValidUUID accepts the canonical 36 character form.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != 36 {
				return false
			}
			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: ValidationError{Field: field, Rule: RuleUUID, Message: "must be a valid UUID"},
	}
}

func ValidPhone(field, value string) Rule {
	return regexRule(field, value, RulePhone, phoneRegex, "must be a valid phone number")
}

func ValidAlpha(field, value string) Rule {
	return regexRule(field, value, RuleAlpha, alphaRegex, "must contain only letters")
}

func ValidAlphanumeric(field, value string) Rule {
	return regexRule(field, value, RuleAlphanumeric, alphanumericRegex, "must contain only letters and numbers")
}

func ValidNumeric(field, value string) Rule {
	return regexRule(field, value, RuleNumeric, numericRegex, "must contain only digits")
}

func regexRule(field, value, name string, re *regexp.Regexp, message string) Rule {
	return Rule{
		Check: func() bool { return re.MatchString(value) },
		Error: ValidationError{Field: field, Rule: name, Message: message},
	}
}
