package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomberman/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"w", runeKey('w'), core.ActionUp},
		{"j", runeKey('j'), core.ActionDown},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"d", runeKey('d'), core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionBomb},
		{"x", runeKey('x'), core.ActionBomb},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.MapKey(tc.msg); got != tc.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestHeldKeysExpire(t *testing.T) {
	h := newHeldKeys(3)
	h.press(core.ActionLeft)

	for i := 0; i < 3; i++ {
		f := core.NewInputFrame()
		h.apply(&f)
		if !f.Has(core.ActionLeft) {
			t.Fatalf("tick %d: left should still be held", i)
		}
	}

	f := core.NewInputFrame()
	h.apply(&f)
	if !f.Empty() {
		t.Errorf("frame after hold expired = %v, expected empty", f.Actions)
	}
	if h.held() != core.ActionNone {
		t.Errorf("held() = %v after expiry", h.held())
	}
}

func TestHeldKeysRepeatRefreshes(t *testing.T) {
	h := newHeldKeys(2)
	h.press(core.ActionUp)

	f := core.NewInputFrame()
	h.apply(&f)
	h.press(core.ActionUp) // auto-repeat
	h.apply(&f)
	h.apply(&f)
	if h.held() != core.ActionNone {
		t.Error("hold should expire two ticks after the last repeat")
	}
}

func TestHeldKeysNewDirectionReplaces(t *testing.T) {
	h := newHeldKeys(5)
	h.press(core.ActionUp)
	h.press(core.ActionRight)

	f := core.NewInputFrame()
	h.apply(&f)
	if f.Has(core.ActionUp) || !f.Has(core.ActionRight) {
		t.Errorf("frame = %v, expected only right", f.Actions)
	}

	h.press(core.ActionBomb) // not a direction
	if h.held() != core.ActionRight {
		t.Errorf("held() = %v, expected right", h.held())
	}

	h.release()
	if h.held() != core.ActionNone {
		t.Error("release should drop the held direction")
	}
}

func TestHeldKeysMinimumHold(t *testing.T) {
	h := newHeldKeys(0)
	h.press(core.ActionDown)
	f := core.NewInputFrame()
	h.apply(&f)
	if !f.Has(core.ActionDown) {
		t.Error("a press should be held for at least one tick")
	}
}
