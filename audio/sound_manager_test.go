package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"
)

type recordingOutput struct {
	initErr error
	inits   int
	played  int
	closed  int
}

func (o *recordingOutput) Init(rate beep.SampleRate, bufferSize int) error {
	o.inits++
	return o.initErr
}

func (o *recordingOutput) Play(s beep.Streamer) { o.played++ }

func (o *recordingOutput) Close() { o.closed++ }

// TestSoundManagerGracefulDegradation verifies playback before init reports an error instead of panicking
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManagerWithOutput(nil, &recordingOutput{})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	if err := sm.PlayCue(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	sm.Cleanup()
}

func TestSoundManagerDoubleInitialization(t *testing.T) {
	out := &recordingOutput{}
	sm := NewSoundManagerWithOutput(DefaultAudioConfig(), out)

	if err := sm.Initialize(); err != nil {
		t.Fatalf("First initialization failed: %v", err)
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should be a no-op, got %v", err)
	}
	if out.inits != 1 || out.played != 1 {
		t.Errorf("Expected one init and one mixer play, got %d/%d", out.inits, out.played)
	}

	if err := sm.PlayCue(); err != nil {
		t.Errorf("PlayCue after init failed: %v", err)
	}

	sm.Cleanup()
	if out.closed != 1 {
		t.Errorf("Expected speaker closed once, got %d", out.closed)
	}
	if sm.Initialized() {
		t.Error("Manager still initialized after cleanup")
	}
	if err := sm.PlayCue(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized after cleanup, got %v", err)
	}
}

func TestSoundManagerInitFailure(t *testing.T) {
	out := &recordingOutput{initErr: errors.New("no device")}
	sm := NewSoundManagerWithOutput(DefaultAudioConfig(), out)

	if err := sm.Initialize(); err == nil {
		t.Fatal("Expected init error")
	}
	if sm.Initialized() {
		t.Error("Manager initialized despite failure")
	}
}

func TestSoundManagerDisabled(t *testing.T) {
	out := &recordingOutput{}
	sm := NewSoundManagerWithOutput(NewAudioConfig(false, 50, 0), out)

	if err := sm.Initialize(); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled, got %v", err)
	}
	if out.inits != 0 {
		t.Error("Disabled audio must not touch the speaker")
	}
}
