package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomberman/internal/core"
)

// KeyMap defines the key bindings for play.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Bomb  key.Binding
	Pause key.Binding
	Recap key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Bomb, k.Pause, k.Recap, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Bomb, k.Pause},
		{k.Recap, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Bomb: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "bomb"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Recap: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "runs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action. Keys the game does
// not bind map to ActionNone.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Bomb):
		return core.ActionBomb
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case msg.Type == tea.KeyEnter:
		return core.ActionConfirm
	}
	return core.ActionNone
}

// heldKeys turns key presses into held directions. Terminals report no key
// releases, so a direction counts as held for holdTicks ticks after its last
// press; auto-repeat keeps refreshing it. Pressing a new direction releases
// the others.
type heldKeys struct {
	holdTicks int
	dir       core.Action
	left      int
}

func newHeldKeys(holdTicks int) *heldKeys {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &heldKeys{holdTicks: holdTicks}
}

// press records a direction key event.
func (h *heldKeys) press(a core.Action) {
	if !a.IsDirection() {
		return
	}
	h.dir = a
	h.left = h.holdTicks
}

// release drops any held direction.
func (h *heldKeys) release() {
	h.dir = core.ActionNone
	h.left = 0
}

// apply adds the held direction to the frame and ages it by one tick.
func (h *heldKeys) apply(f *core.InputFrame) {
	if h.left <= 0 {
		return
	}
	f.Set(h.dir)
	h.left--
	if h.left == 0 {
		h.dir = core.ActionNone
	}
}

// held returns the currently held direction.
func (h *heldKeys) held() core.Action {
	if h.left <= 0 {
		return core.ActionNone
	}
	return h.dir
}
