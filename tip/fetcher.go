package tip

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/hydrate/constants"
	"github.com/lixenwraith/hydrate/engine"
	"go.uber.org/zap"
)

// Fetcher owns the tip box state: current text and loading flag
// All methods except the request goroutine run on the UI thread; results come back via the poster
type Fetcher struct {
	gen     Generator
	poster  engine.Poster
	logger  *zap.Logger
	prompt  string
	timeout time.Duration

	text    string
	loading bool

	current uuid.UUID
	cancel  context.CancelFunc

	onFailure func(error)
}

// NewFetcher creates a fetcher using the fixed hydration prompt
func NewFetcher(gen Generator, poster engine.Poster, timeout time.Duration, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = constants.TipRequestTimeout
	}
	return &Fetcher{
		gen:     gen,
		poster:  poster,
		logger:  logger,
		prompt:  constants.TipPrompt,
		timeout: timeout,
	}
}

// OnFailure registers a callback invoked on the UI thread when a fetch fails
func (f *Fetcher) OnFailure(fn func(error)) {
	f.onFailure = fn
}

// Text returns the current tip, or the failure text after a failed fetch
func (f *Fetcher) Text() string { return f.text }

// Loading reports whether a request is in flight
func (f *Fetcher) Loading() bool { return f.loading }

// Fetch starts a request, superseding any in-flight one
func (f *Fetcher) Fetch(parent context.Context) uuid.UUID {
	f.abort()

	ctx, cancel := context.WithTimeout(parent, f.timeout)
	id := uuid.New()
	f.current = id
	f.cancel = cancel
	f.loading = true
	f.text = ""

	f.logger.Debug("tip request started", zap.Stringer("request_id", id))

	go func() {
		var (
			text string
			err  error
		)
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("tip request panicked: %v", r)
			}
			f.poster.Post(func() { f.complete(id, text, err) })
		}()
		text, err = f.gen.Generate(ctx, f.prompt)
	}()

	return id
}

// Clear drops the tip and abandons any in-flight request
func (f *Fetcher) Clear() {
	f.abort()
	f.text = ""
}

// Close abandons any in-flight request
func (f *Fetcher) Close() {
	f.abort()
}

func (f *Fetcher) abort() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.current = uuid.Nil
	f.loading = false
}

func (f *Fetcher) complete(id uuid.UUID, text string, err error) {
	if id != f.current {
		f.logger.Debug("tip result discarded", zap.Stringer("request_id", id))
		return
	}
	f.abort()

	if err != nil {
		f.logger.Warn("tip request failed", zap.Stringer("request_id", id), zap.Error(err))
		f.text = constants.TipFailureText
		if f.onFailure != nil {
			f.onFailure(err)
		}
		return
	}

	f.logger.Debug("tip received", zap.Stringer("request_id", id), zap.Int("length", len(text)))
	f.text = text
}
