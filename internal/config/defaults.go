package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bomberman.yaml
var defaultYAML []byte

// Default returns the hardcoded default settings.
func Default() Settings {
	return Settings{
		Runtime: RuntimeSettings{
			FPS:  30,
			Seed: 0,
		},
		Input: InputSettings{
			HoldTicks: 8,
		},
		Sound: SoundSettings{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Display: DisplaySettings{
			Theme: ThemeUnicode,
		},
		Log: LogSettings{
			Level: "info",
		},
		Server: ServerSettings{
			Address:     "0.0.0.0:2323",
			HostKey:     ".ssh/bomberman_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default settings document.
func DefaultYAML() []byte {
	return defaultYAML
}
