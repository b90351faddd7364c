// Package app is the widget root: it owns the hydration state and every collaborator,
// and turns key presses into state transitions on the UI thread
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jmhodges/clock"
	"github.com/lixenwraith/hydrate/constants"
	"github.com/lixenwraith/hydrate/engine"
	"github.com/lixenwraith/hydrate/hydration"
	"github.com/lixenwraith/hydrate/reminder"
	"github.com/lixenwraith/hydrate/render"
	"github.com/lixenwraith/hydrate/tip"
	"github.com/lixenwraith/hydrate/ui"
	"go.uber.org/zap"
)

// Deps are the collaborators a widget needs; zero values fall back to no-op or real implementations
type Deps struct {
	Scheduler  engine.Scheduler
	Poster     engine.Poster
	Screen     tcell.Screen       // nil disables drawing
	Tips       tip.Generator      // nil disables tips
	TipTimeout time.Duration
	Cue        reminder.CuePlayer // nil disables the chime
	Send       reminder.SendFunc  // nil uses the platform notifier
	Clock      clock.Clock
	Logger     *zap.Logger
}

// Options are the initial widget settings
type Options struct {
	DurationMinutes int
	Variant         hydration.BodyVariant
	Mode            render.Mode
}

// Widget is the interactive hydration tracker
// Every method runs on the UI thread
type Widget struct {
	ctx    context.Context
	cancel context.CancelFunc

	state      hydration.State
	driver     *engine.Driver
	dispatcher *reminder.Dispatcher
	gate       *reminder.PermissionGate
	desktop    *reminder.DesktopNotifier
	fetcher    *tip.Fetcher
	toasts     *ui.Toasts
	highlight  *ui.Highlight
	mode       render.Mode
	prompt     string

	screen tcell.Screen
	view   *render.View
	frame  uint64

	logger *zap.Logger
}

// New builds a widget; call Start to begin depletion
func New(parent context.Context, deps Deps, opts Options) (*Widget, error) {
	if deps.Scheduler == nil {
		return nil, errors.New("app: scheduler required")
	}
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(parent)
	w := &Widget{
		ctx:       ctx,
		cancel:    cancel,
		state:     hydration.Defaults(),
		toasts:    ui.NewToasts(deps.Clock, constants.ToastDuration),
		highlight: ui.NewHighlight(deps.Clock),
		mode:      opts.Mode,
		screen:    deps.Screen,
		view:      render.NewView(),
		logger:    deps.Logger,
	}

	if opts.DurationMinutes != 0 {
		if _, err := w.state.SetDuration(opts.DurationMinutes); err != nil {
			cancel()
			return nil, err
		}
	}
	if opts.Variant.Valid() {
		w.state.Variant = opts.Variant
	}

	w.driver = engine.NewDriver(&w.state, deps.Scheduler, deps.Logger.Named("driver"))
	w.driver.OnEmpty(w.remind)

	w.gate = reminder.NewPermissionGate(w, deps.Clock, deps.Logger.Named("permission"))
	w.desktop = reminder.NewDesktopNotifier(w.gate, deps.Send, w.notificationDenied, deps.Logger.Named("notify"))

	w.dispatcher = reminder.NewDispatcher(deps.Logger.Named("reminder"))
	w.dispatcher.Register(hydration.ChannelNotification, w.desktop)
	w.dispatcher.Register(hydration.ChannelAudio, reminder.NewAudioCue(deps.Cue, deps.Logger.Named("cue")))
	w.dispatcher.Register(hydration.ChannelVisual, reminder.NewVisualFlash(w.highlight))

	if deps.Tips != nil {
		if deps.Poster == nil {
			cancel()
			return nil, errors.New("app: poster required for tips")
		}
		w.fetcher = tip.NewFetcher(deps.Tips, deps.Poster, deps.TipTimeout, deps.Logger.Named("tip"))
		w.fetcher.OnFailure(func(error) {
			w.toasts.Show("Tip request failed", ui.SeverityError, 0)
		})
	}

	return w, nil
}

// Start begins depletion at the current fill
func (w *Widget) Start() error {
	return w.driver.Start()
}

// State returns a copy of the hydration state
func (w *Widget) State() hydration.State {
	return w.state
}

// Running reports whether depletion is active
func (w *Widget) Running() bool {
	return w.driver.Running()
}

// Permission returns the notification permission state
func (w *Widget) Permission() reminder.Permission {
	return w.gate.Check()
}

// DrinkNow refills to 100% and restarts the timer
func (w *Widget) DrinkNow() {
	w.state.Refill()
	w.highlight.Clear()
	if err := w.driver.Start(); err != nil {
		w.logger.Error("restart after drink failed", zap.Error(err))
		return
	}
	w.toasts.Show("Refilled. Nice!", ui.SeveritySuccess, 0)
}

// ResetAll restores every default, clears the tip and restarts the timer
func (w *Widget) ResetAll() {
	w.state.Reset()
	w.highlight.Clear()
	if w.fetcher != nil {
		w.fetcher.Clear()
	}
	if err := w.driver.Start(); err != nil {
		w.logger.Error("restart after reset failed", zap.Error(err))
		return
	}
	w.logger.Info("reset all")
	w.toasts.Show("All settings restored", ui.SeverityInfo, 0)
}

// SetDuration applies a new timer length and restarts depletion
func (w *Widget) SetDuration(minutes int) error {
	m, err := w.driver.SetDuration(minutes)
	if err != nil {
		w.toasts.Show(fmt.Sprintf("Invalid duration: %d", minutes), ui.SeverityError, 0)
		return err
	}
	w.logger.Debug("duration changed", zap.Int("minutes", m))
	return nil
}

// StepDuration moves the slider by steps notches
func (w *Widget) StepDuration(steps int) error {
	next := w.state.DurationMinutes + steps*constants.DurationStepMinutes
	next = min(max(next, constants.MinDurationMinutes), constants.MaxDurationMinutes)
	if next == w.state.DurationMinutes {
		return nil
	}
	return w.SetDuration(next)
}

// CycleVariant selects the next body variant
func (w *Widget) CycleVariant() {
	w.state.Variant = w.state.Variant.Next()
}

// ToggleRenderMode switches between outline and volume
func (w *Widget) ToggleRenderMode() {
	w.mode = w.mode.Next()
}

// ToggleChannel flips a reminder channel
// Turning notifications on without a grant asks for permission and reverts on denial
func (w *Widget) ToggleChannel(c hydration.Channel) {
	on := w.state.Channels.Toggle(c)
	w.logger.Debug("channel toggled", zap.Stringer("channel", c), zap.Bool("enabled", on))

	if c != hydration.ChannelNotification || !on {
		return
	}
	w.gate.Request(func(p reminder.Permission) {
		if p == reminder.PermissionGranted {
			return
		}
		w.notificationDenied()
	})
}

// FetchTip requests a new motivational tip
func (w *Widget) FetchTip() {
	if w.fetcher == nil {
		w.toasts.Show("Set HYDRATE_TIP_API_KEY to enable tips", ui.SeverityWarning, 0)
		return
	}
	w.fetcher.Fetch(w.ctx)
}

// AnswerPermission resolves the pending notification prompt
func (w *Widget) AnswerPermission(granted bool) {
	if !w.gate.Pending() {
		return
	}
	w.prompt = ""
	w.gate.Answer(granted)
	if granted {
		w.toasts.Show("Desktop notifications enabled", ui.SeveritySuccess, 0)
	}
}

// AskPermission shows the permission prompt
func (w *Widget) AskPermission(question string) {
	w.prompt = question
}

// Close stops the timer and abandons any in-flight tip request
func (w *Widget) Close() {
	w.driver.Stop()
	if w.fetcher != nil {
		w.fetcher.Close()
	}
	w.cancel()
}

// WaitNotifications blocks until pending desktop notifications are delivered
func (w *Widget) WaitNotifications() {
	w.desktop.Wait()
}

// Snapshot returns the render input for the current frame
func (w *Widget) Snapshot() render.Snapshot {
	snap := render.Snapshot{
		State:      w.state,
		Mode:       w.mode,
		Running:    w.driver.Running(),
		Highlight:  w.highlight.Active(),
		Prompt:     w.prompt,
		Permission: w.gate.Check().String(),
		Frame:      w.frame,
	}
	if w.fetcher != nil {
		snap.Tip = w.fetcher.Text()
		snap.TipLoading = w.fetcher.Loading()
	}
	snap.Toast, snap.ToastVisible = w.toasts.Current()
	return snap
}

// remind runs when the fill reaches zero
func (w *Widget) remind() {
	w.toasts.Show("You're running dry. Press [d] to drink.", ui.SeverityWarning, 0)
	if w.state.Channels.Empty() {
		return
	}
	if err := w.dispatcher.Dispatch(w.ctx, w.state.Channels); err != nil {
		w.logger.Debug("some reminders failed", zap.Error(err))
	}
}

func (w *Widget) notificationDenied() {
	w.state.Channels.Disable(hydration.ChannelNotification)
	w.toasts.Show("Notifications blocked, channel turned off", ui.SeverityWarning, 0)
}
