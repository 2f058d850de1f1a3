package forms

import (
	"context"

	"github.com/npatel/wayfinder/internal/alert"
	"github.com/npatel/wayfinder/internal/api"
	"github.com/npatel/wayfinder/internal/guard"
)

// genericFailure is shown when the server gave no detail message.
const genericFailure = "Something went wrong."

// LoginAPI is the slice of the backend client the login form needs.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
}

// SignupAPI is the slice of the backend client the signup form needs.
type SignupAPI interface {
	Signup(ctx context.Context, email, password, firstName, lastName string) error
}

// TokenWriter persists a freshly issued token. *session.Store satisfies it.
type TokenWriter interface {
	Set(token string) error
}

// Submit validates and, if clean, exchanges credentials for a token. On
// success the token is stored and the returned route is the calculator; on
// failure the server detail (or a generic fallback) goes to the notifier
// and the form keeps its values.
func (f *LoginForm) Submit(ctx context.Context, client LoginAPI, tokens TokenWriter, alerts *alert.Notifier) (guard.Route, bool) {
	if !f.Validate() {
		return "", false
	}

	res, err := client.Login(ctx, f.Value(FieldEmail), f.Value(FieldPassword))
	if err != nil {
		alerts.Show(api.Detail(err, genericFailure), alert.Error, "Login failed")
		return "", false
	}
	if err := tokens.Set(res.AccessToken); err != nil {
		alerts.Show(genericFailure, alert.Error, "Login failed")
		return "", false
	}
	return guard.CalculatorRoute, true
}

// Submit validates and, if clean, registers the account. On success the
// user is notified and routed to login; on failure the server detail goes
// to the notifier.
func (f *SignupForm) Submit(ctx context.Context, client SignupAPI, alerts *alert.Notifier) (guard.Route, bool) {
	if !f.Validate() {
		return "", false
	}

	err := client.Signup(ctx,
		f.Value(FieldEmail), f.Value(FieldPassword),
		f.Value(FieldFirstName), f.Value(FieldLastName))
	if err != nil {
		alerts.Show(api.Detail(err, genericFailure), alert.Error, "Signup failed")
		return "", false
	}
	alerts.Show("Signup successful", alert.Success, "Account created")
	return guard.LoginRoute, true
}
