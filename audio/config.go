package audio

// AudioConfig controls the reminder cue output
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
}

// DefaultAudioConfig returns audio on at half volume, 44.1kHz
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
	}
}

// NewAudioConfig builds a config from percent volume, clamping to [0,100]
// Non-positive sample rates fall back to the default
func NewAudioConfig(enabled bool, volumePercent, sampleRate int) *AudioConfig {
	cfg := DefaultAudioConfig()
	cfg.Enabled = enabled

	cfg.MasterVolume = float64(volumePercent) / 100.0
	if cfg.MasterVolume < 0 {
		cfg.MasterVolume = 0
	}
	if cfg.MasterVolume > 1 {
		cfg.MasterVolume = 1
	}

	if sampleRate > 0 {
		cfg.SampleRate = sampleRate
	}
	return cfg
}
