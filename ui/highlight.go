package ui

import (
	"time"

	"github.com/jmhodges/clock"
)

// Highlight is a deadline-based flag; active until the deadline passes
type Highlight struct {
	clk   clock.Clock
	until time.Time
}

// NewHighlight creates an inactive highlight
func NewHighlight(clk clock.Clock) *Highlight {
	return &Highlight{clk: clk}
}

// Flash activates the highlight for d, extending but never shortening a running one
func (h *Highlight) Flash(d time.Duration) {
	until := h.clk.Now().Add(d)
	if until.After(h.until) {
		h.until = until
	}
}

// Active reports whether the highlight is showing
func (h *Highlight) Active() bool {
	return h.clk.Now().Before(h.until)
}

// Clear removes the highlight immediately
func (h *Highlight) Clear() {
	h.until = time.Time{}
}
