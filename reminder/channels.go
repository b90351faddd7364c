package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/lixenwraith/hydrate/constants"
	"go.uber.org/zap"
)

// ErrPermissionDenied is returned when notifications were refused
var ErrPermissionDenied = errors.New("notification permission denied")

// Notification text
const (
	NotificationTitle   = "Time to hydrate"
	NotificationMessage = "Your hydration level hit zero. Drink a glass of water!"
)

// SendFunc delivers a desktop notification
type SendFunc func(title, message string) error

// BeeepSend posts through the platform notification service
func BeeepSend(title, message string) error {
	return beeep.Notify(title, message, "")
}

// DesktopNotifier posts a platform notification once permission is granted
type DesktopNotifier struct {
	gate     *PermissionGate
	send     SendFunc
	onDenied func()
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewDesktopNotifier creates a notifier; onDenied runs on the UI thread when the user refuses
func NewDesktopNotifier(gate *PermissionGate, send SendFunc, onDenied func(), logger *zap.Logger) *DesktopNotifier {
	if send == nil {
		send = BeeepSend
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DesktopNotifier{gate: gate, send: send, onDenied: onDenied, logger: logger}
}

// Notify sends when granted, asks first when never asked, and fails when denied
func (n *DesktopNotifier) Notify(ctx context.Context) error {
	switch n.gate.Check() {
	case PermissionGranted:
		n.post()
		return nil
	case PermissionDenied:
		n.denied()
		return ErrPermissionDenied
	}

	n.gate.Request(func(p Permission) {
		if p == PermissionGranted {
			n.post()
			return
		}
		n.denied()
	})
	return nil
}

// Wait blocks until in-flight sends complete
func (n *DesktopNotifier) Wait() {
	n.wg.Wait()
}

// post sends off the UI thread; platform notification services may block
func (n *DesktopNotifier) post() {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.send(NotificationTitle, NotificationMessage); err != nil {
			n.logger.Warn("desktop notification failed", zap.Error(err))
		}
	}()
}

func (n *DesktopNotifier) denied() {
	if n.onDenied != nil {
		n.onDenied()
	}
}

// CuePlayer plays the reminder chime
type CuePlayer interface {
	PlayCue() error
}

// AudioCue plays the chime; playback errors are logged and never returned
type AudioCue struct {
	player CuePlayer
	logger *zap.Logger
}

// NewAudioCue wraps a cue player
func NewAudioCue(player CuePlayer, logger *zap.Logger) *AudioCue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioCue{player: player, logger: logger}
}

func (a *AudioCue) Notify(ctx context.Context) error {
	if a.player == nil {
		return nil
	}
	if err := a.player.PlayCue(); err != nil {
		a.logger.Warn("reminder cue playback failed", zap.Error(err))
	}
	return nil
}

// Flasher shows a transient highlight
type Flasher interface {
	Flash(d time.Duration)
}

// VisualFlash highlights the body view for a fixed duration
type VisualFlash struct {
	target   Flasher
	duration time.Duration
}

// NewVisualFlash flashes target for the standard highlight duration
func NewVisualFlash(target Flasher) *VisualFlash {
	return &VisualFlash{target: target, duration: constants.HighlightDuration}
}

func (v *VisualFlash) Notify(ctx context.Context) error {
	v.target.Flash(v.duration)
	return nil
}
