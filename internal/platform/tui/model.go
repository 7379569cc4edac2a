package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomberman/internal/core"
	"github.com/vovakirdan/tui-bomberman/internal/storage"
)

// Options configures a Model beyond the runtime config.
type Options struct {
	Journal   *storage.Journal // Source of the recap table; may be nil
	HoldTicks int              // Ticks a direction stays held after a key event
	Logger    *log.Logger
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game      Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	held      *heldKeys
	edges     core.InputFrame // keys that went down since the last tick
	recap     Recap
	showRecap bool
	gameState core.GameState
	logger    *log.Logger
	width     int
	height    int
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		game:   game,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		held:   newHeldKeys(opts.HoldTicks),
		edges:  core.NewInputFrame(),
		recap:  NewRecap(opts.Journal, cfg.ScreenW, cfg.ScreenH),
		logger: logger,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
	m.screen = core.NewScreen(m.screenSize())
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenW, cfg.ScreenH = m.screen.Width(), m.screen.Height()
	m.game.Reset(cfg)
	m.logger.Info("game started", "game", m.game.ID(), "seed", cfg.Seed, "fps", cfg.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showRecap {
		if key.Matches(msg, m.keys.Recap) || msg.Type == tea.KeyEsc {
			m.showRecap = false
			return m, nil
		}
		var cmd tea.Cmd
		m.recap, cmd = m.recap.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Recap):
		m.showRecap = true
		m.held.release()
		current := ""
		if rt, ok := m.game.(RunTracker); ok {
			current = rt.RunID()
		}
		m.recap.Refresh(current, m.config.TickRate)
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.screenSize())
		return m, nil
	}

	m.edges.Set(core.ActionAny)
	action := m.keys.MapKey(msg)
	if action.IsDirection() {
		m.held.press(action)
	} else if action != core.ActionNone {
		m.edges.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. The game keeps its state
// and re-checks whether it fits on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(m.screenSize())
	m.recap.SetSize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// The recap covers the board, so the game waits.
	if m.showRecap {
		m.edges.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.held.apply(&m.edges)
	result := m.game.Step(m.edges)
	if result.State.GameOver && !m.gameState.GameOver {
		m.logger.Info("game over", "score", result.State.Score, "level", result.State.Level)
	}
	m.gameState = result.State

	// Clear input for next frame
	m.edges.Clear()

	return m, tickCmd(m.config.TickRate)
}

// footerHeight is the number of lines the help footer takes.
func (m Model) footerHeight() int {
	if m.help.ShowAll {
		n := 0
		for _, col := range m.keys.FullHelp() {
			n = max(n, len(col))
		}
		return n
	}
	return 1
}

// screenSize is the game area: the terminal minus the help footer.
func (m Model) screenSize() (int, int) {
	return m.width, max(0, m.height-m.footerHeight())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footer := helpStyle.Render(m.help.View(m.keys))

	if m.showRecap {
		return m.recap.View() + "\n" + footer
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
