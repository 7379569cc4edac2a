package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-bomberman/internal/config"
	"github.com/vovakirdan/tui-bomberman/internal/games/bomberman/core"
)

// maxVoices bounds how many cues may overlap in the mixer.
const maxVoices = 8

// Player routes round events to the speaker. A silent player accepts
// every call and does nothing, so callers never branch on audio support.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	volume float64
	live   bool
	closed bool
}

// Silent returns a player that never makes a sound.
func Silent() *Player {
	return &Player{}
}

// New initializes the speaker from settings. When sound is disabled or the
// audio device cannot be opened it logs the reason and returns a silent
// player.
func New(cfg config.SoundSettings, logger *log.Logger) *Player {
	if !cfg.Enabled {
		return Silent()
	}
	p, err := open(cfg)
	if err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return Silent()
	}
	if logger != nil {
		logger.Debug("audio ready", "rate", cfg.SampleRate, "volume", cfg.Volume)
	}
	return p
}

func open(cfg config.SoundSettings) (*Player, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		rate:   rate,
		volume: cfg.Volume,
		live:   true,
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Live reports whether the player is attached to a speaker.
func (p *Player) Live() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live && !p.closed
}

// Play starts a cue. It drops the cue when too many are already playing.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.live || p.closed {
		return
	}
	s := Build(c, p.rate, p.volume)
	if s == nil {
		return
	}

	speaker.Lock()
	if p.mixer.Len() < maxVoices {
		p.mixer.Add(s)
	}
	speaker.Unlock()
}

// OnEvent plays the cue for a round event.
func (p *Player) OnEvent(ev core.Event) {
	p.Play(CueFor(ev.Kind))
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.live || p.closed {
		return
	}
	p.closed = true

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
