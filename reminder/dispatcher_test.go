package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/lixenwraith/hydrate/hydration"
)

func TestDispatchOnlyEnabled(t *testing.T) {
	d := NewDispatcher(nil)
	calls := map[hydration.Channel]int{}
	for _, c := range hydration.Channels() {
		c := c
		d.Register(c, NotifierFunc(func(context.Context) error {
			calls[c]++
			return nil
		}))
	}

	var set hydration.ChannelSet
	set.Enable(hydration.ChannelAudio)
	set.Enable(hydration.ChannelVisual)

	if err := d.Dispatch(context.Background(), set); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if calls[hydration.ChannelNotification] != 0 {
		t.Error("Disabled channel was invoked")
	}
	if calls[hydration.ChannelAudio] != 1 || calls[hydration.ChannelVisual] != 1 {
		t.Errorf("Enabled channels not invoked once: %v", calls)
	}
}

// TestDispatchIsolatesFailures verifies an error or panic in one channel does not stop the rest
func TestDispatchIsolatesFailures(t *testing.T) {
	d := NewDispatcher(nil)
	boom := errors.New("boom")
	visualCalled := false

	d.Register(hydration.ChannelNotification, NotifierFunc(func(context.Context) error { return boom }))
	d.Register(hydration.ChannelAudio, NotifierFunc(func(context.Context) error { panic("speaker exploded") }))
	d.Register(hydration.ChannelVisual, NotifierFunc(func(context.Context) error {
		visualCalled = true
		return nil
	}))

	set := hydration.ChannelSet(0)
	for _, c := range hydration.Channels() {
		set.Enable(c)
	}

	err := d.Dispatch(context.Background(), set)
	if !visualCalled {
		t.Error("Visual channel skipped after earlier failures")
	}
	if !errors.Is(err, boom) {
		t.Errorf("Joined error missing channel error: %v", err)
	}
	if err == nil {
		t.Fatal("Expected error")
	}
}

func TestDispatchEmptySet(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register(hydration.ChannelVisual, NotifierFunc(func(context.Context) error {
		t.Error("Notifier invoked with empty set")
		return nil
	}))
	if err := d.Dispatch(context.Background(), 0); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
