package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/hydrate/constants"
	"github.com/lixenwraith/hydrate/hydration"
)

func newTestDriver(t *testing.T, minutes int) (*Driver, *hydration.State, *ManualScheduler) {
	t.Helper()
	state := hydration.Defaults()
	if _, err := state.SetDuration(minutes); err != nil {
		t.Fatalf("SetDuration(%d): %v", minutes, err)
	}
	sched := NewManualScheduler()
	return NewDriver(&state, sched, nil), &state, sched
}

// TestDepletionReachesZeroAfterDuration checks every slider stop empties in exactly D*60 ticks
func TestDepletionReachesZeroAfterDuration(t *testing.T) {
	for d := constants.MinDurationMinutes; d <= constants.MaxDurationMinutes; d += constants.DurationStepMinutes {
		driver, state, sched := newTestDriver(t, d)

		emptyCalls := 0
		driver.OnEmpty(func() { emptyCalls++ })
		if err := driver.Start(); err != nil {
			t.Fatalf("D=%d: Start: %v", d, err)
		}

		want := d * 60
		prev := state.FillPercent
		ticks := 0
		for sched.Live() > 0 && ticks < want+2 {
			sched.Fire()
			ticks++
			if state.FillPercent > prev {
				t.Fatalf("D=%d: fill increased at tick %d: %v -> %v", d, ticks, prev, state.FillPercent)
			}
			if state.FillPercent < 0 {
				t.Fatalf("D=%d: fill went negative at tick %d", d, ticks)
			}
			prev = state.FillPercent
		}

		if ticks < want-1 || ticks > want+1 {
			t.Errorf("D=%d: emptied after %d ticks, want %d (+/-1)", d, ticks, want)
		}
		if state.FillPercent != 0 {
			t.Errorf("D=%d: final fill %v, want 0", d, state.FillPercent)
		}
		if emptyCalls != 1 {
			t.Errorf("D=%d: OnEmpty called %d times, want 1", d, emptyCalls)
		}
		if driver.Running() {
			t.Errorf("D=%d: driver still running after empty", d)
		}
	}
}

func TestDriverStepSize(t *testing.T) {
	driver, state, sched := newTestDriver(t, 60)
	if err := driver.Start(); err != nil {
		t.Fatal(err)
	}
	if got := sched.LastInterval(); got != constants.DepletionTickInterval {
		t.Errorf("Expected tick interval %v, got %v", constants.DepletionTickInterval, got)
	}

	sched.Fire()
	want := 100 - 100.0/3600.0
	if diff := state.FillPercent - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected fill %v after one tick, got %v", want, state.FillPercent)
	}
}

// TestSetDurationReplacesExactlyOneTask verifies the single live handle invariant
func TestSetDurationReplacesExactlyOneTask(t *testing.T) {
	driver, state, sched := newTestDriver(t, 60)
	if err := driver.Start(); err != nil {
		t.Fatal(err)
	}
	sched.FireN(100)
	fillBefore := state.FillPercent

	if _, err := driver.SetDuration(120); err != nil {
		t.Fatal(err)
	}

	if sched.Started() != 2 {
		t.Errorf("Expected 2 tasks started, got %d", sched.Started())
	}
	if sched.Cancelled() != 1 {
		t.Errorf("Expected exactly 1 task cancelled, got %d", sched.Cancelled())
	}
	if sched.Live() != 1 {
		t.Errorf("Expected exactly 1 live task, got %d", sched.Live())
	}
	if state.FillPercent != fillBefore {
		t.Errorf("Restart must keep current fill, %v -> %v", fillBefore, state.FillPercent)
	}

	// One Fire must produce exactly one tick's worth of depletion
	sched.Fire()
	want := fillBefore - 100.0/(120*60)
	if diff := state.FillPercent - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected single tick at new rate, fill %v want %v", state.FillPercent, want)
	}
}

func TestDriverRejectsInvalidDuration(t *testing.T) {
	driver, state, sched := newTestDriver(t, 60)
	if err := driver.Start(); err != nil {
		t.Fatal(err)
	}

	if _, err := driver.SetDuration(0); !errors.Is(err, hydration.ErrInvalidDuration) {
		t.Fatalf("Expected ErrInvalidDuration, got %v", err)
	}
	if state.DurationMinutes != 60 {
		t.Errorf("Invalid duration changed state to %d", state.DurationMinutes)
	}
	if sched.Live() != 1 || sched.Started() != 1 {
		t.Errorf("Invalid duration must not touch the running task (live=%d started=%d)", sched.Live(), sched.Started())
	}

	// A corrupted state must not drive the timer
	state.DurationMinutes = -5
	if err := driver.Start(); !errors.Is(err, hydration.ErrInvalidDuration) {
		t.Fatalf("Expected ErrInvalidDuration from Start, got %v", err)
	}
	if driver.Running() || sched.Live() != 0 {
		t.Error("Driver running with non-positive duration")
	}
}

func TestStaleTickIgnored(t *testing.T) {
	driver, state, sched := newTestDriver(t, 30)
	if err := driver.Start(); err != nil {
		t.Fatal(err)
	}

	// Capture the first task's callback, then restart
	first := sched.handles[0].fn
	if err := driver.Start(); err != nil {
		t.Fatal(err)
	}

	before := state.FillPercent
	first()
	if state.FillPercent != before {
		t.Errorf("Tick from cancelled task changed fill %v -> %v", before, state.FillPercent)
	}
}

func TestStopCancelsAndIsIdempotent(t *testing.T) {
	driver, _, sched := newTestDriver(t, 45)
	if err := driver.Start(); err != nil {
		t.Fatal(err)
	}
	driver.Stop()
	driver.Stop()

	if sched.Cancelled() != 1 {
		t.Errorf("Expected 1 cancel, got %d", sched.Cancelled())
	}
	if sched.Fire() != 0 {
		t.Error("Ticks fired after Stop")
	}
}

func TestStartWhenEmptyStaysStopped(t *testing.T) {
	driver, state, sched := newTestDriver(t, 30)
	state.FillPercent = 0

	if err := driver.Start(); err != nil {
		t.Fatal(err)
	}
	if driver.Running() || sched.Started() != 0 {
		t.Error("Driver started with empty fill")
	}

	state.Refill()
	if err := driver.Start(); err != nil {
		t.Fatal(err)
	}
	if !driver.Running() || sched.Live() != 1 {
		t.Error("Driver did not start after refill")
	}
}
