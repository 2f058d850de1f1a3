// Package forms implements the login and signup form state machines:
// per-field validation, touched tracking, and submission. Errors are only
// rendered for touched fields; submit touches everything and blocks while
// any error remains.
package forms

import (
	"regexp"
	"strings"
)

// Field names shared by both forms.
const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
)

// minPasswordLen applies to signup only; login accepts any non-empty
// password since the server is the authority on existing credentials.
const minPasswordLen = 6

// emailShape matches the loose local@domain check the forms have always
// used. Deliverability is the server's problem.
var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// fieldState is the shared touched/error bookkeeping.
type fieldState struct {
	values  map[string]string
	errors  map[string]string
	touched map[string]bool
}

func newFieldState() fieldState {
	return fieldState{
		values:  make(map[string]string),
		errors:  make(map[string]string),
		touched: make(map[string]bool),
	}
}

// Value returns a field's current value.
func (f *fieldState) Value(name string) string { return f.values[name] }

// Set updates a field's value without validating; validation happens on
// blur and on submit, as in the original forms.
func (f *fieldState) Set(name, value string) { f.values[name] = value }

// VisibleError returns the field error to render: empty until the field
// has been touched.
func (f *fieldState) VisibleError(name string) string {
	if !f.touched[name] {
		return ""
	}
	return f.errors[name]
}

// ErrorFor returns the field's error regardless of touched state.
func (f *fieldState) ErrorFor(name string) string { return f.errors[name] }

// HasErrors reports whether any field error is present.
func (f *fieldState) HasErrors() bool { return len(f.errors) > 0 }

func (f *fieldState) setError(name, msg string) {
	if msg == "" {
		delete(f.errors, name)
	} else {
		f.errors[name] = msg
	}
}

func (f *fieldState) touchAll(names []string) {
	for _, n := range names {
		f.touched[n] = true
	}
}

// validateEmail returns the error message for an email value, or "".
func validateEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Email is required"
	}
	if !emailShape.MatchString(value) {
		return "Email is invalid"
	}
	return ""
}

// LoginForm validates email and password for login.
type LoginForm struct {
	fieldState
}

// NewLoginForm builds an empty login form.
func NewLoginForm() *LoginForm {
	return &LoginForm{fieldState: newFieldState()}
}

func (f *LoginForm) fields() []string { return []string{FieldEmail, FieldPassword} }

// Blur marks a field touched and validates just that field.
func (f *LoginForm) Blur(name string) {
	f.touched[name] = true
	f.validateField(name)
}

func (f *LoginForm) validateField(name string) {
	switch name {
	case FieldEmail:
		f.setError(name, validateEmail(f.values[name]))
	case FieldPassword:
		if f.values[name] == "" {
			f.setError(name, "Password is required")
		} else {
			f.setError(name, "")
		}
	}
}

// Validate recomputes every field error atomically and marks all fields
// touched. It reports whether the form may be submitted.
func (f *LoginForm) Validate() bool {
	for _, name := range f.fields() {
		f.validateField(name)
	}
	f.touchAll(f.fields())
	return !f.HasErrors()
}

// SignupForm validates the account-creation fields.
type SignupForm struct {
	fieldState
}

// NewSignupForm builds an empty signup form.
func NewSignupForm() *SignupForm {
	return &SignupForm{fieldState: newFieldState()}
}

func (f *SignupForm) fields() []string {
	return []string{FieldFirstName, FieldLastName, FieldEmail, FieldPassword}
}

// Blur marks a field touched and validates just that field.
func (f *SignupForm) Blur(name string) {
	f.touched[name] = true
	f.validateField(name)
}

func (f *SignupForm) validateField(name string) {
	switch name {
	case FieldFirstName:
		if strings.TrimSpace(f.values[name]) == "" {
			f.setError(name, "First name is required")
		} else {
			f.setError(name, "")
		}
	case FieldLastName:
		if strings.TrimSpace(f.values[name]) == "" {
			f.setError(name, "Last name is required")
		} else {
			f.setError(name, "")
		}
	case FieldEmail:
		f.setError(name, validateEmail(f.values[name]))
	case FieldPassword:
		switch {
		case f.values[name] == "":
			f.setError(name, "Password is required")
		case len(f.values[name]) < minPasswordLen:
			f.setError(name, "Password must be at least 6 characters")
		default:
			f.setError(name, "")
		}
	}
}

// Validate recomputes every field error atomically and marks all fields
// touched. It reports whether the form may be submitted.
func (f *SignupForm) Validate() bool {
	for _, name := range f.fields() {
		f.validateField(name)
	}
	f.touchAll(f.fields())
	return !f.HasErrors()
}
