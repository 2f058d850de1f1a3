// Package calculator holds the distance-calculator view state: two
// addresses, a unit preference, and the last computed result.
package calculator

import (
	"context"
	"strconv"

	"github.com/npatel/wayfinder/internal/alert"
	"github.com/npatel/wayfinder/internal/api"
	"github.com/npatel/wayfinder/internal/guard"
)

// Unit is the display preference for a computed distance.
type Unit string

// Supported units.
const (
	Miles      Unit = "miles"
	Kilometers Unit = "kilometers"
	Both       Unit = "both"
)

// ValidUnit reports whether u is one of the supported units.
func ValidUnit(u Unit) bool {
	return u == Miles || u == Kilometers || u == Both
}

// DistanceAPI is the slice of the backend client the calculator needs.
type DistanceAPI interface {
	Distance(ctx context.Context, source, destination, unit string) (*api.DistanceResult, error)
}

// View is the calculator's state. One instance backs one screen.
type View struct {
	Source      string
	Destination string
	Unit        Unit

	client  DistanceAPI
	tokens  guard.TokenSource
	alerts  *alert.Notifier
	loading bool
	result  *api.DistanceResult
}

// NewView builds a calculator view with the default unit.
func NewView(client DistanceAPI, tokens guard.TokenSource, alerts *alert.Notifier) *View {
	return &View{
		Unit:   Miles,
		client: client,
		tokens: tokens,
		alerts: alerts,
	}
}

// Loading reports whether a calculation is in flight.
func (v *View) Loading() bool { return v.loading }

// Result returns the last successful result, or nil.
func (v *View) Result() *api.DistanceResult { return v.result }

// CanCalculate reports whether the calculate action is enabled: not while
// loading and not while either address is empty.
func (v *View) CanCalculate() bool {
	return !v.loading && v.Source != "" && v.Destination != ""
}

// Compute requests a distance calculation. With an address missing it does
// nothing; with no session token it issues no request and redirects to
// login. On failure the previous result is kept and an error alert shown.
func (v *View) Compute(ctx context.Context) guard.Route {
	if v.Source == "" || v.Destination == "" {
		return ""
	}
	if d := guard.AuthenticatedOnly(v.tokens); !d.Allow {
		return d.RedirectTo
	}

	v.loading = true
	res, err := v.client.Distance(ctx, v.Source, v.Destination, string(v.Unit))
	v.loading = false

	if err != nil {
		v.alerts.Show("Something went wrong and the calculation failed.",
			alert.Error, "Calculation failed")
		return ""
	}
	v.result = res
	return ""
}

// FormattedDistance renders the stored result per the current unit
// preference: "<km> km / <mi> mi" for both, "<km> km" for kilometers,
// "<mi> mi" otherwise. Empty when nothing has been computed yet.
func (v *View) FormattedDistance() string {
	if v.result == nil {
		return ""
	}
	km := strconv.FormatFloat(v.result.DistanceKM, 'f', -1, 64) + " km"
	mi := strconv.FormatFloat(v.result.DistanceMiles, 'f', -1, 64) + " mi"

	switch v.Unit {
	case Both:
		return km + " / " + mi
	case Kilometers:
		return km
	default:
		return mi
	}
}
