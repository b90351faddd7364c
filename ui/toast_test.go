package ui

import (
	"testing"
	"time"

	"github.com/jmhodges/clock"
)

func TestToastAutoDismiss(t *testing.T) {
	clk := clock.NewFake()
	toasts := NewToasts(clk, 3*time.Second)

	if _, ok := toasts.Current(); ok {
		t.Fatal("Expected no toast initially")
	}

	toasts.Show("saved", SeveritySuccess, 0)
	got, ok := toasts.Current()
	if !ok || got.Text != "saved" || got.Severity != SeveritySuccess {
		t.Fatalf("Expected visible success toast, got %+v (%v)", got, ok)
	}

	clk.Add(2999 * time.Millisecond)
	if _, ok := toasts.Current(); !ok {
		t.Error("Toast dismissed early")
	}

	clk.Add(time.Millisecond)
	if _, ok := toasts.Current(); ok {
		t.Error("Toast still visible at deadline")
	}
}

func TestToastReplace(t *testing.T) {
	clk := clock.NewFake()
	toasts := NewToasts(clk, time.Second)

	toasts.Show("first", SeverityInfo, 10*time.Second)
	toasts.Show("second", SeverityError, 0)

	got, ok := toasts.Current()
	if !ok || got.Text != "second" {
		t.Fatalf("Expected replacement toast, got %+v", got)
	}

	// Replacement uses its own ttl, not the earlier one
	clk.Add(time.Second)
	if _, ok := toasts.Current(); ok {
		t.Error("Replacement toast kept the old deadline")
	}
}

func TestToastDismiss(t *testing.T) {
	toasts := NewToasts(clock.NewFake(), time.Minute)
	toasts.Show("bye", SeverityWarning, 0)
	toasts.Dismiss()
	if _, ok := toasts.Current(); ok {
		t.Error("Toast visible after dismiss")
	}
}

func TestHighlightWindow(t *testing.T) {
	clk := clock.NewFake()
	h := NewHighlight(clk)

	if h.Active() {
		t.Fatal("New highlight should be inactive")
	}

	h.Flash(2 * time.Second)
	clk.Add(1500 * time.Millisecond)
	if !h.Active() {
		t.Error("Highlight ended early")
	}

	// Shorter flash must not cut the running one
	h.Flash(100 * time.Millisecond)
	clk.Add(400 * time.Millisecond)
	if !h.Active() {
		t.Error("Shorter flash shortened the highlight")
	}

	clk.Add(100 * time.Millisecond)
	if h.Active() {
		t.Error("Highlight still active after 2s")
	}

	h.Flash(time.Second)
	h.Clear()
	if h.Active() {
		t.Error("Highlight active after Clear")
	}
}
