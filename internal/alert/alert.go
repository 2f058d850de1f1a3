// Package alert holds the transient notification banner state: one active
// alert at a time, auto-dismissed after a fixed delay.
package alert

import (
	"sync"
	"time"
)

// Type classifies an alert.
type Type string

// Alert types.
const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
	Info    Type = "info"
)

// defaultDismissAfter matches the banner's original 2-second auto-hide.
const defaultDismissAfter = 2 * time.Second

// State is the current banner content.
type State struct {
	Message string
	Title   string
	Type    Type
	Visible bool
}

// Notifier owns the single alert slot. Showing a new alert while one is
// visible replaces it and restarts the dismiss timer; there is no queue.
type Notifier struct {
	mu           sync.Mutex
	state        State
	timer        *time.Timer
	dismissAfter time.Duration
	gen          int
}

// NewNotifier builds a Notifier with the default dismiss delay.
func NewNotifier() *Notifier {
	return &Notifier{dismissAfter: defaultDismissAfter}
}

// NewNotifierWithDelay builds a Notifier with a custom dismiss delay.
func NewNotifierWithDelay(d time.Duration) *Notifier {
	return &Notifier{dismissAfter: d}
}

// Show replaces the current alert and restarts the auto-dismiss timer.
func (n *Notifier) Show(message string, typ Type, title string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if typ == "" {
		typ = Info
	}
	n.state = State{Message: message, Title: title, Type: typ, Visible: true}

	// The generation counter keeps a stale timer from dismissing a newer
	// alert.
	n.gen++
	gen := n.gen
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.dismissAfter, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.gen == gen {
			n.state.Visible = false
		}
	})
}

// Close hides the alert immediately.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	if n.timer != nil {
		n.timer.Stop()
	}
	n.state.Visible = false
}

// Current returns the alert state.
func (n *Notifier) Current() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}
