package calculator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/npatel/wayfinder/internal/alert"
	"github.com/npatel/wayfinder/internal/api"
	"github.com/npatel/wayfinder/internal/guard"
)

type staticTokens string

func (s staticTokens) Get() string { return string(s) }

type fakeDistanceAPI struct {
	res   *api.DistanceResult
	err   error
	calls int
}

func (f *fakeDistanceAPI) Distance(ctx context.Context, source, destination, unit string) (*api.DistanceResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func newView(client DistanceAPI, token string) *View {
	return NewView(client, staticTokens(token), alert.NewNotifierWithDelay(time.Hour))
}

func TestCompute_OneRequestAndResult(t *testing.T) {
	client := &fakeDistanceAPI{res: &api.DistanceResult{DistanceKM: 5, DistanceMiles: 3.1, Unit: "both"}}
	v := newView(client, "tok")
	v.Source = "New Delhi"
	v.Destination = "Berlin"
	v.Unit = Both

	if route := v.Compute(context.Background()); route != "" {
		t.Errorf("route = %q, want none", route)
	}
	if client.calls != 1 {
		t.Errorf("requests = %d, want exactly 1", client.calls)
	}
	if got := v.FormattedDistance(); got != "5 km / 3.1 mi" {
		t.Errorf("FormattedDistance = %q, want \"5 km / 3.1 mi\"", got)
	}
}

func TestFormattedDistance_Units(t *testing.T) {
	client := &fakeDistanceAPI{res: &api.DistanceResult{DistanceKM: 5, DistanceMiles: 3.1}}
	v := newView(client, "tok")
	v.Source = "a"
	v.Destination = "b"
	v.Compute(context.Background())

	v.Unit = Kilometers
	if got := v.FormattedDistance(); got != "5 km" {
		t.Errorf("kilometers: %q", got)
	}
	v.Unit = Miles
	if got := v.FormattedDistance(); got != "3.1 mi" {
		t.Errorf("miles: %q", got)
	}
}

func TestFormattedDistance_EmptyBeforeCompute(t *testing.T) {
	v := newView(&fakeDistanceAPI{}, "tok")
	if got := v.FormattedDistance(); got != "" {
		t.Errorf("FormattedDistance = %q, want empty", got)
	}
}

func TestCompute_EmptyAddressNoRequest(t *testing.T) {
	client := &fakeDistanceAPI{res: &api.DistanceResult{}}
	v := newView(client, "tok")
	v.Source = "only source"

	v.Compute(context.Background())
	if client.calls != 0 {
		t.Errorf("requests = %d, want 0 with empty destination", client.calls)
	}
}

func TestCompute_NoTokenRedirects(t *testing.T) {
	client := &fakeDistanceAPI{res: &api.DistanceResult{}}
	v := newView(client, "")
	v.Source = "a"
	v.Destination = "b"

	route := v.Compute(context.Background())
	if route != guard.LoginRoute {
		t.Errorf("route = %q, want login", route)
	}
	if client.calls != 0 {
		t.Errorf("requests = %d, want 0 without a token", client.calls)
	}
}

func TestCompute_FailureKeepsPriorResult(t *testing.T) {
	client := &fakeDistanceAPI{res: &api.DistanceResult{DistanceKM: 5, DistanceMiles: 3.1}}
	alerts := alert.NewNotifierWithDelay(time.Hour)
	v := NewView(client, staticTokens("tok"), alerts)
	v.Source = "a"
	v.Destination = "b"
	v.Compute(context.Background())

	client.err = errors.New("boom")
	v.Compute(context.Background())

	if v.Result() == nil || v.Result().DistanceKM != 5 {
		t.Error("failed compute must leave the prior result untouched")
	}
	got := alerts.Current()
	if got.Message != "Something went wrong and the calculation failed." || got.Type != alert.Error {
		t.Errorf("alert = %+v", got)
	}
	if v.Loading() {
		t.Error("loading should be cleared after failure")
	}
}

func TestCanCalculate(t *testing.T) {
	v := newView(&fakeDistanceAPI{}, "tok")
	if v.CanCalculate() {
		t.Error("empty addresses should disable calculate")
	}
	v.Source = "a"
	v.Destination = "b"
	if !v.CanCalculate() {
		t.Error("filled addresses should enable calculate")
	}
	v.loading = true
	if v.CanCalculate() {
		t.Error("loading should disable calculate")
	}
}

func TestDefaultUnitIsMiles(t *testing.T) {
	v := newView(&fakeDistanceAPI{}, "tok")
	if v.Unit != Miles {
		t.Errorf("default unit = %q, want miles", v.Unit)
	}
}

func TestValidUnit(t *testing.T) {
	for _, u := range []Unit{Miles, Kilometers, Both} {
		if !ValidUnit(u) {
			t.Errorf("ValidUnit(%q) = false", u)
		}
	}
	if ValidUnit("furlongs") {
		t.Error("ValidUnit(furlongs) = true")
	}
}
