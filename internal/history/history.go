// Package history holds the history-screen state: one server-side page of
// past distance queries plus the embedded insights chat.
package history

import (
	"context"

	"github.com/npatel/wayfinder/internal/alert"
	"github.com/npatel/wayfinder/internal/api"
)

// ItemsPerPage is the fixed page size.
const ItemsPerPage = 10

// HistoryAPI is the slice of the backend client the history view needs.
type HistoryAPI interface {
	History(ctx context.Context, offset, limit int) (*api.HistoryPage, error)
	HistoryInsights(ctx context.Context, question, sessionID string) (*api.InsightsResult, error)
}

// View is the history screen's state. One instance backs one mount; the
// chat session identifier lives for the mount's lifetime.
type View struct {
	client HistoryAPI
	alerts *alert.Notifier

	currentPage int
	total       int
	items       []api.HistoryRecord

	// seq orders page loads so a slow response for an old page cannot
	// overwrite a newer one.
	seq uint64

	chat chatState
}

// NewView builds a history view positioned on page 1 with nothing loaded.
func NewView(client HistoryAPI, alerts *alert.Notifier) *View {
	return &View{
		client:      client,
		alerts:      alerts,
		currentPage: 1,
		chat:        newChatState(),
	}
}

// CurrentPage returns the 1-indexed current page number.
func (v *View) CurrentPage() int { return v.currentPage }

// Total returns the full server-side record count, independent of the
// current page.
func (v *View) Total() int { return v.total }

// Items returns the current page's records.
func (v *View) Items() []api.HistoryRecord { return v.items }

// TotalPages returns how many pages the collection spans. Zero records
// means zero pages.
func (v *View) TotalPages() int {
	return (v.total + ItemsPerPage - 1) / ItemsPerPage
}

// Empty reports whether there is nothing to show at all.
func (v *View) Empty() bool { return v.total == 0 }

// LoadPage fetches page n and replaces the view's items and total. On
// failure the prior page stays displayed and an error alert is shown. A
// response that arrives after a newer load started is discarded.
func (v *View) LoadPage(ctx context.Context, n int) error {
	v.seq++
	seq := v.seq

	page, err := v.client.History(ctx, (n-1)*ItemsPerPage, ItemsPerPage)
	if seq != v.seq {
		// A newer load superseded this one.
		return nil
	}
	if err != nil {
		v.alerts.Show("Something went wrong and the history could not be loaded.",
			alert.Error, "History failed")
		return err
	}

	v.currentPage = n
	v.items = page.Items
	v.total = page.Total
	return nil
}

// GoToPage navigates to page n, triggering a reload. Out of
// [1, TotalPages] it is a no-op: no state change, no request.
func (v *View) GoToPage(ctx context.Context, n int) {
	if n < 1 || n > v.TotalPages() {
		return
	}
	v.LoadPage(ctx, n)
}
