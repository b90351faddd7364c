package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const speakerBufferDuration = 100 * time.Millisecond

// Sentinel errors
var (
	ErrNotInitialized = errors.New("audio not initialized")
	ErrDisabled       = errors.New("audio disabled")
)

// Output is the playback sink; speaker in production, a recorder in tests
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerOutput) Close() { speaker.Close() }

// SoundManager owns the speaker and the reminder cue
type SoundManager struct {
	mu          sync.Mutex
	config      *AudioConfig
	out         Output
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a manager writing to the system speaker
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	return NewSoundManagerWithOutput(cfg, speakerOutput{})
}

// NewSoundManagerWithOutput creates a manager writing to out
func NewSoundManagerWithOutput(cfg *AudioConfig, out Output) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		config: cfg,
		out:    out,
		mixer:  &beep.Mixer{},
	}
}

// Initialize sets up the speaker; safe to call twice
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.config.Enabled {
		return ErrDisabled
	}

	rate := beep.SampleRate(sm.config.SampleRate)
	if err := sm.out.Init(rate, rate.N(speakerBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	sm.out.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether the speaker is ready
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayCue queues the reminder chime, fire-and-forget
func (sm *SoundManager) PlayCue() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return ErrNotInitialized
	}

	cue := CreateReminderCue(sm.config)
	speaker.Lock()
	sm.mixer.Add(cue)
	speaker.Unlock()
	return nil
}

// Cleanup stops all sounds and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.out.Close()
	sm.initialized = false
}
