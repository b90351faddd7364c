package constants

import "time"

// Duration slider bounds (minutes)
const (
	// MinDurationMinutes is the shortest depletion timer the slider allows
	MinDurationMinutes = 30

	// MaxDurationMinutes is the longest depletion timer the slider allows
	MaxDurationMinutes = 240

	// DurationStepMinutes is the slider granularity
	DurationStepMinutes = 15

	// DefaultDurationMinutes is restored by reset all
	DefaultDurationMinutes = 60
)

// Fill constants
const (
	// FullPercent is the fill level after drinking
	FullPercent = 100.0

	// EmptyPercent is the floor the driver clamps to
	EmptyPercent = 0.0

	// AlertThresholdPercent: fill strictly below this renders in the alert color
	AlertThresholdPercent = 30.0

	// WarningThresholdPercent: fill strictly below this (and not alert) renders in the warning color
	WarningThresholdPercent = 60.0
)

// Timing constants
const (
	// DepletionTickInterval is the recurring depletion step
	DepletionTickInterval = 1 * time.Second

	// FrameUpdateInterval drives redraws independent of depletion ticks
	FrameUpdateInterval = 100 * time.Millisecond

	// HighlightDuration is how long the visual reminder flashes the body view
	HighlightDuration = 2 * time.Second

	// ToastDuration is the default auto-dismiss delay for transient messages
	ToastDuration = 3 * time.Second

	// TipRequestTimeout bounds a single tip request when no config override exists
	TipRequestTimeout = 15 * time.Second
)

// Reminder cue
const (
	CueSoundAttack   = 5 * time.Millisecond
	CueNote1Duration = 180 * time.Millisecond
	CueNote1Release  = 120 * time.Millisecond
	CueNote2Duration = 320 * time.Millisecond
	CueNote2Release  = 260 * time.Millisecond
)

// TipPrompt is the fixed prompt sent to the text-generation endpoint
const TipPrompt = "Give me one short, friendly, motivational tip (max two sentences) encouraging me to drink a glass of water right now."

// TipFailureText is shown in the tip box when a fetch fails
const TipFailureText = "Couldn't fetch a tip right now. Try again in a moment."

// DepletionStepPercent returns the per-tick decrease for a given duration
func DepletionStepPercent(durationMinutes int) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	ticks := float64(durationMinutes) * 60 * float64(time.Second) / float64(DepletionTickInterval)
	return FullPercent / ticks
}
