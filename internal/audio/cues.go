package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-bomberman/internal/games/bomberman/core"
)

// Cue is a sound effect.
type Cue int

const (
	CueNone Cue = iota
	CueBombPlaced
	CueExplosion
	CueEnemyDied
	CuePlayerHit
	CueGameOver
	CueLevelClear
	CueLevelStart
)

func (c Cue) String() string {
	switch c {
	case CueBombPlaced:
		return "bomb_placed"
	case CueExplosion:
		return "explosion"
	case CueEnemyDied:
		return "enemy_died"
	case CuePlayerHit:
		return "player_hit"
	case CueGameOver:
		return "game_over"
	case CueLevelClear:
		return "level_clear"
	case CueLevelStart:
		return "level_start"
	}
	return "none"
}

// CueFor maps a round event to its cue. The win bonus has no cue of its
// own since it always arrives with the level-complete event.
func CueFor(kind core.EventKind) Cue {
	switch kind {
	case core.EventLevelStart:
		return CueLevelStart
	case core.EventBombPlaced:
		return CueBombPlaced
	case core.EventExplosion:
		return CueExplosion
	case core.EventEnemyDied:
		return CueEnemyDied
	case core.EventPlayerHit:
		return CuePlayerHit
	case core.EventGameOver:
		return CueGameOver
	case core.EventLevelComplete:
		return CueLevelClear
	}
	return CueNone
}

// Build synthesizes a cue at the given rate and linear volume.
// It returns nil for CueNone.
func Build(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	ms := time.Millisecond
	var s beep.Streamer
	switch c {
	case CueBombPlaced:
		d := 70 * ms
		s = Shape(NewTone(WaveSquare, 220, d, rate), d, 2*ms, 40*ms, rate)
	case CueExplosion:
		d := 450 * ms
		boom := Shape(NewSweep(WaveSine, 110, 40, d, rate), d, 5*ms, 350*ms, rate)
		hiss := Shape(NewTone(WaveNoise, 0, d, rate), d, 1*ms, 420*ms, rate)
		s = beep.Mix(gain(boom, 0.8), gain(hiss, 0.5))
	case CueEnemyDied:
		d := 160 * ms
		s = Shape(NewSweep(WaveSquare, 660, 990, d, rate), d, 2*ms, 80*ms, rate)
	case CuePlayerHit:
		d := 300 * ms
		s = Shape(NewSweep(WaveSaw, 330, 90, d, rate), d, 2*ms, 200*ms, rate)
	case CueGameOver:
		s = arpeggio(rate, WaveSaw, 180*ms, 392, 311.13, 261.63, 196)
	case CueLevelClear:
		s = arpeggio(rate, WaveSquare, 110*ms, 523.25, 659.25, 783.99, 1046.5)
	case CueLevelStart:
		s = arpeggio(rate, WaveSine, 90*ms, 440, 880)
	default:
		return nil
	}
	return gain(s, volume)
}

// arpeggio plays the notes one after another.
func arpeggio(rate beep.SampleRate, wave Wave, step time.Duration, notes ...float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		parts = append(parts, Shape(NewTone(wave, f, step, rate), step, 3*time.Millisecond, step/2, rate))
	}
	return beep.Seq(parts...)
}
