// Package config provides YAML-based settings loading for the bomberman
// binary. Game rules are fixed and live with the simulation; only runtime,
// input, sound, display, logging and server knobs are configurable.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Settings is the full configuration document.
type Settings struct {
	Runtime RuntimeSettings `yaml:"runtime"`
	Input   InputSettings   `yaml:"input"`
	Sound   SoundSettings   `yaml:"sound"`
	Display DisplaySettings `yaml:"display"`
	Log     LogSettings     `yaml:"log"`
	Server  ServerSettings  `yaml:"server"`
}

// RuntimeSettings controls the simulation clock.
type RuntimeSettings struct {
	FPS  int   `yaml:"fps"`  // Ticks per second
	Seed int64 `yaml:"seed"` // 0 means seed from the clock
}

// InputSettings controls how key events turn into held directions.
type InputSettings struct {
	HoldTicks int `yaml:"hold_ticks"`
}

// SoundSettings controls the synthesized audio cues.
type SoundSettings struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// DisplaySettings selects the glyph theme and per-glyph overrides.
type DisplaySettings struct {
	Theme  string            `yaml:"theme"`
	Glyphs map[string]string `yaml:"glyphs"`
}

// LogSettings controls the charmbracelet logger.
type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ServerSettings configures the SSH server.
type ServerSettings struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Theme names accepted by display.theme.
const (
	ThemeUnicode = "unicode"
	ThemeASCII   = "ascii"
)

// Limits applied by Validate.
const (
	MinFPS       = 10
	MaxFPS       = 120
	MinHoldTicks = 1
	MaxHoldTicks = 60
	MinIdle      = time.Minute
)

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate clamps out-of-range values and replaces unknown enum values
// with defaults. It returns an error only for values that cannot be
// repaired.
func (s *Settings) Validate() error {
	def := Default()

	if s.Runtime.FPS == 0 {
		s.Runtime.FPS = def.Runtime.FPS
	}
	s.Runtime.FPS = clamp(s.Runtime.FPS, MinFPS, MaxFPS)

	if s.Input.HoldTicks == 0 {
		s.Input.HoldTicks = def.Input.HoldTicks
	}
	s.Input.HoldTicks = clamp(s.Input.HoldTicks, MinHoldTicks, MaxHoldTicks)

	if s.Sound.Volume < 0 {
		s.Sound.Volume = 0
	}
	if s.Sound.Volume > 1 {
		s.Sound.Volume = 1
	}
	if s.Sound.SampleRate <= 0 {
		s.Sound.SampleRate = def.Sound.SampleRate
	}

	s.Display.Theme = strings.ToLower(strings.TrimSpace(s.Display.Theme))
	if s.Display.Theme != ThemeUnicode && s.Display.Theme != ThemeASCII {
		s.Display.Theme = def.Display.Theme
	}
	for name, glyph := range s.Display.Glyphs {
		if n := len([]rune(glyph)); n == 0 || n > 2 {
			return fmt.Errorf("config: glyph %q must be 1 or 2 characters, got %q", name, glyph)
		}
	}

	s.Log.Level = strings.ToLower(strings.TrimSpace(s.Log.Level))
	if !validLevels[s.Log.Level] {
		s.Log.Level = def.Log.Level
	}

	if s.Server.Address == "" {
		s.Server.Address = def.Server.Address
	}
	if s.Server.HostKey == "" {
		s.Server.HostKey = def.Server.HostKey
	}
	if s.Server.IdleTimeout < MinIdle {
		s.Server.IdleTimeout = def.Server.IdleTimeout
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
