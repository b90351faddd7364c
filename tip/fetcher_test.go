package tip

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/hydrate/constants"
)

// chanPoster hands posted work to the test goroutine, standing in for the UI loop
type chanPoster chan func()

func (p chanPoster) Post(fn func()) { p <- fn }

func (p chanPoster) runNext(t *testing.T) {
	t.Helper()
	select {
	case fn := <-p:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for posted work")
	}
}

// stubGenerator blocks each call until the test answers it
type stubGenerator struct {
	calls chan *call
}

type call struct {
	ctx    context.Context
	result chan result
}

type result struct {
	text string
	err  error
}

func newStub() *stubGenerator {
	return &stubGenerator{calls: make(chan *call, 4)}
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	c := &call{ctx: ctx, result: make(chan result, 1)}
	s.calls <- c
	r := <-c.result
	return r.text, r.err
}

func (s *stubGenerator) next(t *testing.T) *call {
	t.Helper()
	select {
	case c := <-s.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for generate call")
		return nil
	}
}

func TestFetchSuccess(t *testing.T) {
	gen := newStub()
	poster := make(chanPoster, 4)
	f := NewFetcher(gen, poster, time.Second, nil)

	f.Fetch(context.Background())
	if !f.Loading() || f.Text() != "" {
		t.Fatalf("Expected loading with empty text, got loading=%v text=%q", f.Loading(), f.Text())
	}

	gen.next(t).result <- result{text: "Water first."}
	poster.runNext(t)

	if f.Loading() {
		t.Error("Loading not cleared")
	}
	if f.Text() != "Water first." {
		t.Errorf("text = %q", f.Text())
	}
}

func TestFetchFailure(t *testing.T) {
	gen := newStub()
	poster := make(chanPoster, 4)
	f := NewFetcher(gen, poster, time.Second, nil)

	var failed error
	f.OnFailure(func(err error) { failed = err })

	f.Fetch(context.Background())
	gen.next(t).result <- result{err: errors.New("network down")}
	poster.runNext(t)

	if f.Loading() {
		t.Error("Loading not cleared after failure")
	}
	if f.Text() != constants.TipFailureText {
		t.Errorf("text = %q, want failure text", f.Text())
	}
	if failed == nil {
		t.Error("OnFailure not invoked")
	}
}

// TestFetchSupersedes verifies a second fetch cancels the first and its late result is dropped
func TestFetchSupersedes(t *testing.T) {
	gen := newStub()
	poster := make(chanPoster, 4)
	f := NewFetcher(gen, poster, time.Second, nil)

	f.Fetch(context.Background())
	first := gen.next(t)

	f.Fetch(context.Background())
	second := gen.next(t)

	select {
	case <-first.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("First request not cancelled")
	}

	first.result <- result{text: "stale"}
	poster.runNext(t)
	if f.Text() != "" || !f.Loading() {
		t.Errorf("Stale result applied: text=%q loading=%v", f.Text(), f.Loading())
	}

	second.result <- result{text: "fresh"}
	poster.runNext(t)
	if f.Text() != "fresh" || f.Loading() {
		t.Errorf("Fresh result not applied: text=%q loading=%v", f.Text(), f.Loading())
	}
}

func TestClearDropsInFlight(t *testing.T) {
	gen := newStub()
	poster := make(chanPoster, 4)
	f := NewFetcher(gen, poster, time.Second, nil)

	f.Fetch(context.Background())
	f.Clear()
	if f.Loading() {
		t.Error("Clear left loading set")
	}

	gen.next(t).result <- result{text: "late"}
	poster.runNext(t)
	if f.Text() != "" {
		t.Errorf("Result applied after clear: %q", f.Text())
	}
}

type panicGenerator struct{}

func (panicGenerator) Generate(context.Context, string) (string, error) { panic("boom") }

func TestFetchRecoversPanic(t *testing.T) {
	poster := make(chanPoster, 4)
	f := NewFetcher(panicGenerator{}, poster, time.Second, nil)

	f.Fetch(context.Background())
	poster.runNext(t)

	if f.Loading() || f.Text() != constants.TipFailureText {
		t.Errorf("Panic not reported as failure: loading=%v text=%q", f.Loading(), f.Text())
	}
}
