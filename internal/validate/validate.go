// Package validate is the request-shape gate for the HomeGame API. It
// wraps go-playground/validator: request structs declare rules with
// `validate` tags and a human-readable `errmsg` tag, and failures come
// back as the wire-level field errors the frontend keys on.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/homegame/api/internal/model"
)

var (
	usernameRx  = regexp.MustCompile(`^[A-Za-z0-9_]*$`)
	gameNameRx  = regexp.MustCompile(`^[A-Za-z0-9' ]*$`)
	dateRx      = regexp.MustCompile(`^[A-Za-z0-9. ]*$`)
	timeRx      = regexp.MustCompile(`^[A-Za-z0-9: ]*$`)
	leadTrailRx = regexp.MustCompile(`^\S(.*\S)?$`)
)

var vld = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json names so Param matches the wire shape.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "username", matches(usernameRx))
	mustRegister(v, "gamename", matchesTrimmed(gameNameRx))
	mustRegister(v, "datefield", matchesTrimmed(dateRx))
	mustRegister(v, "timefield", matchesTrimmed(timeRx))
	mustRegister(v, "strongpassword", strongPassword)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validate: register %q: %v", tag, err))
	}
}

func matches(rx *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return rx.MatchString(fl.Field().String())
	}
}

// matchesTrimmed additionally rejects leading or trailing whitespace on
// non-empty values.
func matchesTrimmed(rx *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		return rx.MatchString(s) && leadTrailRx.MatchString(s)
	}
}

// strongPassword requires 8-20 characters with at least one uppercase
// letter, one lowercase letter, one digit, and one symbol.
func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 || len(s) > 20 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// Struct validates a request struct and returns wire-level field errors,
// or nil if the struct is valid.
func Struct(s interface{}) []model.FieldError {
	err := vld.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-validation error (bad usage); surface as a generic failure.
		return []model.FieldError{model.InternalError()}
	}

	out := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, model.FieldError{
			Value:    stringValue(fe.Value()),
			Msg:      messageFor(s, fe),
			Param:    fe.Field(),
			Location: "body",
		})
	}
	return out
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// messageFor resolves the errmsg tag of the failing field, walking the
// struct namespace so fields nested under slices resolve too.
func messageFor(s interface{}, fe validator.FieldError) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	parts := strings.Split(fe.StructNamespace(), ".")
	// First element is the root struct name.
	for _, part := range parts[1:] {
		if i := strings.IndexByte(part, '['); i >= 0 {
			part = part[:i]
		}
		field, ok := t.FieldByName(part)
		if !ok {
			return genericMessage(fe)
		}
		if msg := field.Tag.Get("errmsg"); msg != "" && part == lastField(parts) {
			return msg
		}
		t = field.Type
		for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice {
			t = t.Elem()
		}
	}
	return genericMessage(fe)
}

func lastField(parts []string) string {
	part := parts[len(parts)-1]
	if i := strings.IndexByte(part, '['); i >= 0 {
		part = part[:i]
	}
	return part
}

func genericMessage(fe validator.FieldError) string {
	return fmt.Sprintf("Invalid value for %s", fe.Field())
}
