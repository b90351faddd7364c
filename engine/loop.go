package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Poster enqueues work onto the UI thread
type Poster interface {
	Post(fn func())
}

// EventSource is the terminal input stream, satisfied by tcell.Screen
type EventSource interface {
	PollEvent() tcell.Event
}

// Handler receives everything the loop runs on the UI thread
type Handler interface {
	// HandleEvent processes one terminal event; false requests exit
	HandleEvent(ev tcell.Event) bool
	// Frame runs once per frame tick after queued work
	Frame()
}

// Loop is the single UI thread
// Terminal events, posted work and frame ticks are serialized through one select
type Loop struct {
	work          chan func()
	done          chan struct{}
	doneOnce      sync.Once
	frameInterval time.Duration
	logger        *zap.Logger

	// crashHandler restores the terminal when a goroutine owned by the loop panics
	crashHandler func(r any)
}

// NewLoop creates a loop redrawing every frameInterval
func NewLoop(frameInterval time.Duration, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		work:          make(chan func(), 256),
		done:          make(chan struct{}),
		frameInterval: frameInterval,
		logger:        logger,
	}
}

// SetCrashHandler sets the panic hook for the input poller goroutine
func (l *Loop) SetCrashHandler(fn func(r any)) {
	l.crashHandler = fn
}

// Post enqueues fn; dropped silently once the loop has exited
func (l *Loop) Post(fn func()) {
	select {
	case l.work <- fn:
	case <-l.done:
	}
}

// Done is closed when Run returns
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run blocks until the handler requests exit, the source closes or ctx is cancelled
func (l *Loop) Run(ctx context.Context, src EventSource, h Handler) error {
	defer l.doneOnce.Do(func() { close(l.done) })

	eventChan := make(chan tcell.Event, 256)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if l.crashHandler != nil {
					l.crashHandler(r)
					return
				}
				l.logger.Error("event poller crashed",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
			}
		}()
		defer close(eventChan)

		for {
			ev := src.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-l.done:
				return
			}
		}
	}()

	frameTicker := time.NewTicker(l.frameInterval)
	defer frameTicker.Stop()

	h.Frame()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-eventChan:
			if !ok {
				return fmt.Errorf("terminal event source closed")
			}
			if !h.HandleEvent(ev) {
				return nil
			}
			h.Frame()

		case fn := <-l.work:
			fn()

		case <-frameTicker.C:
			h.Frame()
		}
	}
}

// Drain runs every queued work item without blocking, for tests and shutdown
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.work:
			fn()
			n++
		default:
			return n
		}
	}
}
