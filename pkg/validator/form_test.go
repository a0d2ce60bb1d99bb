package validator_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/applib/pkg/validator"
)

func signupForm(t *testing.T) *validator.Form {
	t.Helper()
	form, err := validator.NewForm(
		validator.Field{Name: "email", Rules: "required,email"},
		validator.Field{Name: "password", Rules: "required, min:8"},
		validator.Field{Name: "confirm", Rules: "required,match:password"},
		validator.Field{Name: "nickname"},
	)
	require.NoError(t, err)
	return form
}

func TestParseRules(t *testing.T) {
	assert.Equal(t, []validator.RuleSpec{
		{Name: "required"},
		{Name: "min", Params: []string{"8"}},
		{Name: "match", Params: []string{"password"}},
	}, validator.ParseRules("required,,min:8, match:password "))
	assert.Empty(t, validator.ParseRules(""))
}

func TestNewForm_Errors(t *testing.T) {
	_, err := validator.NewForm(validator.Field{Name: "a", Rules: "required,shout"})
	assert.ErrorIs(t, err, validator.ErrUnknownRule)

	_, err = validator.NewForm(validator.Field{Name: "a", Rules: "min:abc"})
	assert.ErrorIs(t, err, validator.ErrInvalidRuleParam)

	_, err = validator.NewForm(validator.Field{Name: "a", Rules: "min"})
	assert.ErrorIs(t, err, validator.ErrInvalidRuleParam)

	_, err = validator.NewForm(validator.Field{Name: "a", Rules: "match"})
	assert.ErrorIs(t, err, validator.ErrInvalidRuleParam)

	_, err = validator.NewForm(validator.Field{Name: "a"}, validator.Field{Name: "a"})
	assert.ErrorIs(t, err, validator.ErrDuplicateField)

	assert.Panics(t, func() { validator.MustNewForm(validator.Field{Name: "a", Rules: "nope"}) })
}

func TestForm_Validate(t *testing.T) {
	form := signupForm(t)

	t.Run("valid form", func(t *testing.T) {
		err := form.Validate(validator.Values{
			"email":    "john@example.com",
			"password": "s3cretpass",
			"confirm":  "s3cretpass",
		})
		assert.NoError(t, err)
	})

	t.Run("first failing rule per field", func(t *testing.T) {
		err := form.Validate(validator.Values{"password": "short", "confirm": "other"})
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 3)
		assert.Equal(t, []string{"email", "password", "confirm"}, errs.Fields())
		assert.Equal(t, validator.RuleRequired, errs[0].Rule, "required is checked before email")
		assert.Equal(t, validator.RuleMinLength, errs[1].Rule)
		assert.Equal(t, validator.RuleMatch, errs[2].Rule)
		assert.Equal(t, "values do not match", errs.Messages()["confirm"])
	})

	t.Run("single field", func(t *testing.T) {
		values := validator.Values{"email": "not-an-email"}
		err := form.ValidateField("email", values)
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, validator.RuleEmail, errs[0].Rule)

		assert.NoError(t, form.ValidateField("nickname", values))
		assert.NoError(t, form.ValidateField("unknown", values))
	})
}

func TestForm_Submit(t *testing.T) {
	form := signupForm(t)

	t.Run("handler not called for invalid form", func(t *testing.T) {
		called := false
		err := form.Submit(validator.Values{}, func(validator.Values) error {
			called = true
			return nil
		})
		assert.True(t, validator.IsValidationError(err))
		assert.False(t, called)
	})

	t.Run("handler receives values", func(t *testing.T) {
		values := validator.Values{"email": "a@b.co", "password": "12345678", "confirm": "12345678"}
		var got validator.Values
		require.NoError(t, form.Submit(values, func(v validator.Values) error {
			got = v
			return nil
		}))
		assert.Equal(t, values, got)
	})

	t.Run("handler error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		values := validator.Values{"email": "a@b.co", "password": "12345678", "confirm": "12345678"}
		assert.ErrorIs(t, form.Submit(values, func(validator.Values) error { return boom }), boom)
	})
}

func TestForm_ValidateRequest(t *testing.T) {
	form := signupForm(t)
	body := url.Values{"email": {"john@example.com"}, "password": {"12345678"}, "confirm": {"1234"}}
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	values, err := form.ValidateRequest(req)
	assert.Equal(t, "john@example.com", values["email"])
	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "confirm", errs[0].Field)
}

func TestValuesFromURL(t *testing.T) {
	v := validator.ValuesFromURL(url.Values{"a": {"1", "2"}, "b": {}})
	assert.Equal(t, validator.Values{"a": "1"}, v)
}
