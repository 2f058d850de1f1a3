// Package guard gates navigation on session-token presence. It is a
// presentation-layer gate only: nothing here verifies the token against
// the server.
package guard

// Route names a navigation target.
type Route string

// The routes the guard redirects between.
const (
	LoginRoute      Route = "/login"
	CalculatorRoute Route = "/calculator"
	HistoryRoute    Route = "/history"
)

// TokenSource yields the current token; "" means logged out.
type TokenSource interface {
	Get() string
}

// Decision is the outcome of a guard check. When Allow is false, RedirectTo
// holds where to send the user instead.
type Decision struct {
	Allow      bool
	RedirectTo Route
}

// AuthenticatedOnly admits only sessions holding a token; otherwise it
// redirects to the login route. Checking twice yields the same decision.
func AuthenticatedOnly(tokens TokenSource) Decision {
	if tokens.Get() == "" {
		return Decision{Allow: false, RedirectTo: LoginRoute}
	}
	return Decision{Allow: true}
}

// GuestOnly admits only sessions without a token; an authenticated user is
// redirected to the calculator.
func GuestOnly(tokens TokenSource) Decision {
	if tokens.Get() != "" {
		return Decision{Allow: false, RedirectTo: CalculatorRoute}
	}
	return Decision{Allow: true}
}
