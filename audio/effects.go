package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/lixenwraith/hydrate/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		rel = total - att
		if rel < 0 {
			att, rel = total, 0
		}
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := e.totalSamples - e.position
	if remaining <= 0 {
		return 0, false
	}
	if len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, _ = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	// The envelope length bounds the stream even if the source never ends
	return n, n > 0
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume maps to Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateReminderCue generates the two-note rising "drink" chime (E5 then A5)
func CreateReminderCue(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(659.25, constants.CueNote1Duration, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, constants.CueNote1Duration, constants.CueSoundAttack, constants.CueNote1Release, rate)

	// Soft triangle overtone under the second note
	n2 := NewOscillator(880.0, constants.CueNote2Duration, WaveSine, rate)
	n2Over := NewOscillator(1760.0, constants.CueNote2Duration, WaveTriangle, rate)
	n2Mixed := beep.Mix(newVolume(n2, 0.8), newVolume(n2Over, 0.2))
	n2Shaped := NewEnvelope(n2Mixed, constants.CueNote2Duration, constants.CueSoundAttack, constants.CueNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.MasterVolume)
}

// CueDuration is the total length of the reminder cue
func CueDuration() time.Duration {
	return constants.CueNote1Duration + constants.CueNote2Duration
}
