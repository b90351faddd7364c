package engine

import (
	"github.com/lixenwraith/hydrate/constants"
	"github.com/lixenwraith/hydrate/hydration"
	"go.uber.org/zap"
)

// Driver depletes the fill once per tick over the configured duration
// All methods must be called on the UI thread
type Driver struct {
	state  *hydration.State
	sched  Scheduler
	logger *zap.Logger

	handle     Handle
	generation uint64
	onEmpty    func()
}

// NewDriver binds a driver to state; nothing runs until Start
func NewDriver(state *hydration.State, sched Scheduler, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		state:  state,
		sched:  sched,
		logger: logger,
	}
}

// OnEmpty sets the hook called once each time the fill reaches zero
func (d *Driver) OnEmpty(fn func()) {
	d.onEmpty = fn
}

// Running reports whether a recurring task is live
func (d *Driver) Running() bool {
	return d.handle != nil
}

// Start cancels any live task and starts a fresh one at the current fill
// An already empty state is left stopped until refilled
func (d *Driver) Start() error {
	if _, err := hydration.NormalizeDuration(d.state.DurationMinutes); err != nil {
		d.Stop()
		return err
	}

	d.Stop()
	if d.state.Empty() {
		d.logger.Debug("driver not started, fill is empty")
		return nil
	}

	d.generation++
	gen := d.generation
	d.handle = d.sched.Every(constants.DepletionTickInterval, func() { d.tick(gen) })

	d.logger.Debug("driver started",
		zap.Int("duration_minutes", d.state.DurationMinutes),
		zap.Float64("fill_percent", d.state.FillPercent),
		zap.Uint64("generation", gen))
	return nil
}

// Stop cancels the live task, if any
func (d *Driver) Stop() {
	if d.handle == nil {
		return
	}
	d.handle.Cancel()
	d.handle = nil
	// Invalidate ticks already queued by the cancelled task
	d.generation++
}

// SetDuration stores a validated duration and restarts depletion
func (d *Driver) SetDuration(minutes int) (int, error) {
	m, err := d.state.SetDuration(minutes)
	if err != nil {
		return m, err
	}
	return m, d.Start()
}

// Step applies one depletion tick; returns true if this tick emptied the fill
func (d *Driver) Step() bool {
	if d.state.Empty() {
		return false
	}
	step := constants.DepletionStepPercent(d.state.DurationMinutes)
	return d.state.Deplete(step)
}

func (d *Driver) tick(gen uint64) {
	if gen != d.generation || d.handle == nil {
		return
	}

	if !d.Step() {
		return
	}

	d.Stop()
	d.logger.Info("hydration empty", zap.Int("duration_minutes", d.state.DurationMinutes))
	if d.onEmpty != nil {
		d.onEmpty()
	}
}
