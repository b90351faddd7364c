// Package reminder fans the "empty" signal out to the enabled reminder channels
package reminder

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/lixenwraith/hydrate/hydration"
	"go.uber.org/zap"
)

// Notifier is one reminder channel; Notify must return promptly
type Notifier interface {
	Notify(ctx context.Context) error
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context) error

func (f NotifierFunc) Notify(ctx context.Context) error { return f(ctx) }

// Dispatcher routes reminders to the channels enabled in a set
type Dispatcher struct {
	notifiers map[hydration.Channel]Notifier
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher with no channels registered
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		notifiers: make(map[hydration.Channel]Notifier),
		logger:    logger,
	}
}

// Register binds a notifier to a channel, replacing any previous one
func (d *Dispatcher) Register(c hydration.Channel, n Notifier) {
	d.notifiers[c] = n
}

// Dispatch invokes every enabled channel; each runs even if others fail
// Returns the joined errors, nil when all succeeded
func (d *Dispatcher) Dispatch(ctx context.Context, set hydration.ChannelSet) error {
	var errs []error
	for _, c := range hydration.Channels() {
		if !set.Has(c) {
			continue
		}
		n, ok := d.notifiers[c]
		if !ok {
			continue
		}
		if err := d.invoke(ctx, c, n); err != nil {
			d.logger.Warn("reminder channel failed", zap.Stringer("channel", c), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
		}
	}
	d.logger.Debug("reminders dispatched", zap.Stringer("channels", set), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

func (d *Dispatcher) invoke(ctx context.Context, c hydration.Channel, n Notifier) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("reminder channel panicked",
				zap.Stringer("channel", c),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return n.Notify(ctx)
}
