package validator

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Rule names accepted in form rule specs.
const (
	RuleRequired     = "required"
	RuleEmail        = "email"
	RuleMinLength    = "min"
	RuleMaxLength    = "max"
	RuleLength       = "len"
	RuleMatch        = "match"
	RuleURL          = "url"
	RuleUUID         = "uuid"
	RulePhone        = "phone"
	RuleAlpha        = "alpha"
	RuleAlphanumeric = "alphanumeric"
	RuleNumeric      = "numeric"
)

// Values is a submitted form: field name to value.
type Values map[string]string

// ValuesFromURL keeps the first value of every key.
func ValuesFromURL(v url.Values) Values {
	out := make(Values, len(v))
	for k, vs := range v {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

// RuleSpec is one parsed "name:param:param" entry.
type RuleSpec struct {
	Name   string
	Params []string
}

// ParseRules parses a comma separated rule list such as
// "required,min:8,match:password". Blank entries are skipped.
func ParseRules(spec string) []RuleSpec {
	var out []RuleSpec
	for entry := range strings.SplitSeq(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, rest, _ := strings.Cut(entry, ":")
		rs := RuleSpec{Name: strings.TrimSpace(name)}
		if rest != "" {
			rs.Params = strings.Split(rest, ":")
		}
		out = append(out, rs)
	}
	return out
}

// check builds the Rule for one field value against the whole form.
type check func(field, value string, form Values) Rule

// builder validates a spec's params once and returns its check.
type builder func(params []string) (check, error)

// builders is the fixed set of named rules. Add a rule by adding an entry.
var builders = map[string]builder{
	RuleRequired:     noParams(Required),
	RuleEmail:        noParams(ValidEmail),
	RuleURL:          noParams(ValidURL),
	RuleUUID:         noParams(ValidUUID),
	RulePhone:        noParams(ValidPhone),
	RuleAlpha:        noParams(ValidAlpha),
	RuleAlphanumeric: noParams(ValidAlphanumeric),
	RuleNumeric:      noParams(ValidNumeric),
	RuleMinLength:    intParam(MinLen),
	RuleMaxLength:    intParam(MaxLen),
	RuleLength:       intParam(Len),
	RuleMatch: func(params []string) (check, error) {
		if len(params) != 1 || params[0] == "" {
			return nil, fmt.Errorf("%w: %s needs the name of the field to compare with", ErrInvalidRuleParam, RuleMatch)
		}
		other := params[0]
		return func(field, value string, form Values) Rule {
			return Match(field, value, other, form[other])
		}, nil
	},
}

func noParams(fn func(field, value string) Rule) builder {
	return func([]string) (check, error) {
		return func(field, value string, _ Values) Rule { return fn(field, value) }, nil
	}
}

func intParam(fn func(field, value string, n int) Rule) builder {
	return func(params []string) (check, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%w: expected one integer", ErrInvalidRuleParam)
		}
		n, err := strconv.Atoi(strings.TrimSpace(params[0]))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidRuleParam, params[0])
		}
		return func(field, value string, _ Values) Rule { return fn(field, value, n) }, nil
	}
}

// Field declares a form input and its rule spec.
type Field struct {
	Name  string
	Rules string
}

type formField struct {
	name   string
	checks []check
}

// Form validates submitted values against declared fields. Rules of a
// field run in order and the first failing one is reported, so each field
// carries at most one error.
type Form struct {
	fields []formField
	index  map[string]int
}

// NewForm compiles the field declarations. Unknown rule names and bad
// parameters are reported here rather than at validation time.
func NewForm(fields ...Field) (*Form, error) {
	f := &Form{index: make(map[string]int, len(fields))}
	for _, fd := range fields {
		if _, dup := f.index[fd.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, fd.Name)
		}
		ff := formField{name: fd.Name}
		for _, rs := range ParseRules(fd.Rules) {
			b, ok := builders[rs.Name]
			if !ok {
				return nil, fmt.Errorf("%w: %q on field %s", ErrUnknownRule, rs.Name, fd.Name)
			}
			c, err := b(rs.Params)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", fd.Name, err)
			}
			ff.checks = append(ff.checks, c)
		}
		f.index[fd.Name] = len(f.fields)
		f.fields = append(f.fields, ff)
	}
	return f, nil
}

// MustNewForm is NewForm that panics on a bad declaration.
func MustNewForm(fields ...Field) *Form {
	f, err := NewForm(fields...)
	if err != nil {
		panic(err)
	}
	return f
}

// ValidateField validates a single field, as done on input or blur.
// Undeclared fields are always valid.
func (f *Form) ValidateField(name string, form Values) error {
	i, ok := f.index[name]
	if !ok {
		return nil
	}
	return f.validate(f.fields[i], form)
}

// Validate validates every declared field and returns ValidationErrors
// holding the first failure of each invalid field, in declaration order.
func (f *Form) Validate(form Values) error {
	var errs ValidationErrors
	for _, ff := range f.fields {
		if err := f.validate(ff, form); err != nil {
			errs = append(errs, ExtractValidationErrors(err)...)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func (f *Form) validate(ff formField, form Values) error {
	rules := make([]Rule, len(ff.checks))
	for i, c := range ff.checks {
		rules[i] = c(ff.name, form[ff.name], form)
	}
	return First(rules...)
}

// Submit validates form and calls onSubmit only when every field passes.
func (f *Form) Submit(form Values, onSubmit func(Values) error) error {
	if err := f.Validate(form); err != nil {
		return err
	}
	if onSubmit == nil {
		return nil
	}
	return onSubmit(form)
}

// ValidateRequest parses the request form (query and body) and validates it.
// The parsed values are returned even when validation fails so the form can
// be re-rendered with the user's input.
func (f *Form) ValidateRequest(r *http.Request) (Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, errors.Join(ErrParseForm, err)
	}
	values := ValuesFromURL(r.Form)
	return values, f.Validate(values)
}
