package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-bomberman/internal/config"
	"github.com/vovakirdan/tui-bomberman/internal/games/bomberman/core"
)

const testRate = beep.SampleRate(44100)

// drain streams s to the end and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for guard := 0; guard < 10000; guard++ {
		got, ok := s.Stream(buf)
		for i := 0; i < got; i++ {
			for ch := 0; ch < 2; ch++ {
				if v := math.Abs(buf[i][ch]); v > peak {
					peak = v
				}
			}
		}
		n += got
		if !ok {
			return n, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

func TestToneLengthAndRange(t *testing.T) {
	waves := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tc := range waves {
		t.Run(tc.name, func(t *testing.T) {
			d := 100 * time.Millisecond
			n, peak := drain(t, NewTone(tc.wave, 440, d, testRate))
			if n != testRate.N(d) {
				t.Errorf("streamed %d samples, expected %d", n, testRate.N(d))
			}
			if peak > 1.0 || peak == 0 {
				t.Errorf("peak = %f, expected (0, 1]", peak)
			}
		})
	}
}

func TestToneRespectsStreamContract(t *testing.T) {
	s := NewTone(WaveSine, 440, time.Millisecond, testRate) // 44 samples
	buf := make([][2]float64, 100)

	n, ok := s.Stream(buf)
	if n != 44 || !ok {
		t.Fatalf("first Stream = (%d, %v), expected (44, true)", n, ok)
	}
	n, ok = s.Stream(buf)
	if n != 0 || ok {
		t.Errorf("drained Stream = (%d, %v), expected (0, false)", n, ok)
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v", s.Err())
	}
}

func TestShapeEnvelope(t *testing.T) {
	d := 10 * time.Millisecond
	s := Shape(NewTone(WaveSquare, 100, d, testRate), d, 2*time.Millisecond, 2*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := s.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d, expected %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, attack should start from silence", buf[0][0])
	}
	mid := math.Abs(buf[n/2][0])
	if mid != 1 {
		t.Errorf("sustain sample = %f, expected full level", mid)
	}
	if last := math.Abs(buf[n-1][0]); last >= mid {
		t.Errorf("last sample = %f, release should fade out", last)
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		kind core.EventKind
		want Cue
	}{
		{core.EventLevelStart, CueLevelStart},
		{core.EventBombPlaced, CueBombPlaced},
		{core.EventExplosion, CueExplosion},
		{core.EventEnemyDied, CueEnemyDied},
		{core.EventPlayerHit, CuePlayerHit},
		{core.EventGameOver, CueGameOver},
		{core.EventLevelComplete, CueLevelClear},
		{core.EventWinBonus, CueNone},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if got := CueFor(tc.kind); got != tc.want {
				t.Errorf("CueFor(%v) = %v, expected %v", tc.kind, got, tc.want)
			}
		})
	}
}

func TestBuildEveryCue(t *testing.T) {
	cues := []Cue{CueBombPlaced, CueExplosion, CueEnemyDied, CuePlayerHit, CueGameOver, CueLevelClear, CueLevelStart}

	for _, c := range cues {
		t.Run(c.String(), func(t *testing.T) {
			s := Build(c, testRate, 0.5)
			if s == nil {
				t.Fatal("Build returned nil")
			}
			n, peak := drain(t, s)
			if n == 0 {
				t.Error("cue produced no samples")
			}
			if n > testRate.N(time.Second) {
				t.Errorf("cue is %d samples, expected under a second", n)
			}
			if peak == 0 {
				t.Error("cue is silent at volume 0.5")
			}
		})
	}

	if Build(CueNone, testRate, 1) != nil {
		t.Error("CueNone should build nothing")
	}
}

func TestBuildZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(t, Build(CueExplosion, testRate, 0))
	if peak != 0 {
		t.Errorf("peak = %f at volume 0", peak)
	}
}

func TestSilentPlayer(t *testing.T) {
	p := New(config.SoundSettings{Enabled: false, Volume: 1, SampleRate: 44100}, nil)
	if p.Live() {
		t.Fatal("disabled sound should give a silent player")
	}

	// None of these may touch the speaker.
	p.Play(CueExplosion)
	p.OnEvent(core.Event{Kind: core.EventGameOver})
	p.Close()
	p.Close()

	var l core.Listener = Silent()
	l.OnEvent(core.Event{Kind: core.EventBombPlaced})
}
