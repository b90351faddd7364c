package reminder

import (
	"time"

	"github.com/jmhodges/clock"
	"go.uber.org/zap"
)

// Permission is the desktop notification permission state
type Permission uint8

const (
	PermissionDefault Permission = iota // never asked
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

// PermissionQuestion is shown by the prompter
const PermissionQuestion = "Allow desktop notifications for hydration reminders?"

// Prompter asks the user a yes/no question; the answer arrives later via PermissionGate.Answer
type Prompter interface {
	AskPermission(question string)
}

// PermissionGate tracks the permission state and pending requests
// Not safe for concurrent use; lives on the UI thread
type PermissionGate struct {
	state     Permission
	prompter  Prompter
	pending   []func(Permission)
	clk       clock.Clock
	decidedAt time.Time
	logger    *zap.Logger
}

// NewPermissionGate creates a gate in the default state
func NewPermissionGate(prompter Prompter, clk clock.Clock, logger *zap.Logger) *PermissionGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionGate{prompter: prompter, clk: clk, logger: logger}
}

// Check returns the current state without prompting
func (g *PermissionGate) Check() Permission {
	return g.state
}

// Pending reports whether a prompt awaits an answer
func (g *PermissionGate) Pending() bool {
	return len(g.pending) > 0
}

// DecidedAt returns when the last answer was recorded; zero if never
func (g *PermissionGate) DecidedAt() time.Time {
	return g.decidedAt
}

// Request asks the user unless already granted; done receives the resulting state
// Concurrent requests share one prompt
func (g *PermissionGate) Request(done func(Permission)) {
	if g.state == PermissionGranted {
		if done != nil {
			done(g.state)
		}
		return
	}

	first := len(g.pending) == 0
	if done != nil {
		g.pending = append(g.pending, done)
	} else {
		g.pending = append(g.pending, func(Permission) {})
	}
	if first {
		g.logger.Debug("notification permission requested", zap.Stringer("state", g.state))
		g.prompter.AskPermission(PermissionQuestion)
	}
}

// Answer records the user's decision and resolves pending requests
func (g *PermissionGate) Answer(granted bool) {
	if granted {
		g.state = PermissionGranted
	} else {
		g.state = PermissionDenied
	}
	g.decidedAt = g.clk.Now()
	g.logger.Info("notification permission answered", zap.Stringer("state", g.state))

	pending := g.pending
	g.pending = nil
	for _, fn := range pending {
		fn(g.state)
	}
}
