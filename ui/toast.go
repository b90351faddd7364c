// Package ui holds transient view state that expires on its own: toast messages and highlights
package ui

import (
	"time"

	"github.com/jmhodges/clock"
)

// Severity defines message type for styling
type Severity uint8

const (
	SeverityInfo    Severity = iota // Default, neutral
	SeveritySuccess                 // Green, positive
	SeverityWarning                 // Yellow, caution
	SeverityError                   // Red, failure
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Toast is one transient message
type Toast struct {
	Text     string
	Severity Severity
	Deadline time.Time
}

// Visible reports whether the toast is still showing at now
func (t Toast) Visible(now time.Time) bool {
	return t.Text != "" && now.Before(t.Deadline)
}

// Toasts holds the single current message; a new message replaces the old one
type Toasts struct {
	clk        clock.Clock
	defaultTTL time.Duration
	current    Toast
}

// NewToasts creates a toast holder; ttl is used when Show receives zero
func NewToasts(clk clock.Clock, ttl time.Duration) *Toasts {
	return &Toasts{clk: clk, defaultTTL: ttl}
}

// Show replaces the current message, auto-dismissed after ttl
func (t *Toasts) Show(text string, sev Severity, ttl time.Duration) {
	if ttl <= 0 {
		ttl = t.defaultTTL
	}
	t.current = Toast{
		Text:     text,
		Severity: sev,
		Deadline: t.clk.Now().Add(ttl),
	}
}

// Current returns the visible toast, if any, expiring stale ones
func (t *Toasts) Current() (Toast, bool) {
	if !t.current.Visible(t.clk.Now()) {
		t.current = Toast{}
		return Toast{}, false
	}
	return t.current, true
}

// Dismiss hides the current message immediately
func (t *Toasts) Dismiss() {
	t.current = Toast{}
}
