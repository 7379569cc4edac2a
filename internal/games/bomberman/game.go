// Package bomberman adapts the pure round simulation to the platform game
// contract: it maps actions to round input, handles pause, records level
// results in the journal and draws the board.
package bomberman

import (
	"io"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-bomberman/internal/core"
	"github.com/vovakirdan/tui-bomberman/internal/games/bomberman/core"
	"github.com/vovakirdan/tui-bomberman/internal/storage"
)

// Game implements the single-player Bomberman game.
type Game struct {
	rules     core.Rules
	round     *core.Round
	theme     Theme
	logger    *log.Logger
	listeners []core.Listener

	journal *storage.Journal
	player  string
	runID   string
	runOver bool
	kills   int // enemies killed in the current level
	best    int // best score this process has seen

	paused   bool
	tooSmall bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for level transitions and journal failures.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithListener subscribes l to every round the game creates.
func WithListener(l core.Listener) Option {
	return func(g *Game) {
		if l != nil {
			g.listeners = append(g.listeners, l)
		}
	}
}

// WithJournal records level results for player in j.
func WithJournal(j *storage.Journal, player string) Option {
	return func(g *Game) {
		g.journal = j
		g.player = player
	}
}

// WithTheme sets the glyph theme.
func WithTheme(t Theme) Option {
	return func(g *Game) {
		g.theme = t
	}
}

// WithRules replaces the default rule set.
func WithRules(r core.Rules) Option {
	return func(g *Game) {
		g.rules = r
	}
}

// New creates a game. Reset must be called before the first Step.
func New(opts ...Option) *Game {
	g := &Game{
		rules:  core.DefaultRules(),
		theme:  UnicodeTheme(),
		logger: log.New(io.Discard),
		player: "local",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "bomberman"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Bomberman"
}

// Reset starts a new game from level 1.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.paused = false
	g.tooSmall = !g.fits(cfg.ScreenW, cfg.ScreenH)
	g.kills = 0
	g.round = core.NewRound(g.rules, cfg.Seed, g.listeners...)
	g.startRun()
	g.logger.Debug("game reset", "seed", cfg.Seed)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.round == nil {
		g.Reset(platformcore.DefaultConfig())
	}

	if in.Has(platformcore.ActionPause) && g.round.Phase() != core.PhaseGameOver {
		g.paused = !g.paused
		g.logger.Debug("pause toggled", "paused", g.paused)
	}
	if g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	res := g.round.Tick(roundInput(in))
	g.observe(res.Events)

	return platformcore.StepResult{State: g.State()}
}

// roundInput converts a platform frame to round input. When several
// directions are held, Up wins over Down, Down over Left, Left over Right.
func roundInput(in platformcore.InputFrame) core.Input {
	var ri core.Input
	switch {
	case in.Has(platformcore.ActionUp):
		ri.Dir = core.DirUp
	case in.Has(platformcore.ActionDown):
		ri.Dir = core.DirDown
	case in.Has(platformcore.ActionLeft):
		ri.Dir = core.DirLeft
	case in.Has(platformcore.ActionRight):
		ri.Dir = core.DirRight
	}
	ri.Bomb = in.Has(platformcore.ActionBomb)
	ri.Any = in.Has(platformcore.ActionAny)
	return ri
}

// observe updates run bookkeeping from the events of one tick.
func (g *Game) observe(events []core.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case core.EventLevelStart:
			g.kills = 0
			if ev.Level == 1 && g.runOver {
				g.startRun()
			}
			g.logger.Debug("level start", "level", ev.Level, "enemies", g.round.EnemiesLeft())
		case core.EventEnemyDied:
			g.kills++
		case core.EventLevelComplete:
			g.record(storage.OutcomeCleared, ev)
			g.logger.Info("level cleared", "level", ev.Level, "score", ev.Score, "ticks", g.round.LevelTicks())
		case core.EventGameOver:
			g.record(storage.OutcomeLost, ev)
			g.runOver = true
			g.logger.Info("game over", "level", ev.Level, "score", ev.Score)
		}
		if ev.Score > g.best {
			g.best = ev.Score
		}
	}
}

func (g *Game) startRun() {
	g.runOver = false
	g.runID = ""
	if g.journal == nil {
		return
	}
	id, err := g.journal.StartRun(g.player)
	if err != nil {
		g.logger.Warn("journal: start run failed", "err", err)
		return
	}
	g.runID = id
	if best, err := g.journal.BestScore(); err == nil && best > g.best {
		g.best = best
	}
}

func (g *Game) record(outcome storage.Outcome, ev core.Event) {
	if g.journal == nil || g.runID == "" {
		return
	}
	err := g.journal.RecordLevel(g.runID, storage.LevelResult{
		Level:   ev.Level,
		Outcome: outcome,
		Score:   ev.Score,
		Lives:   ev.Lives,
		Kills:   g.kills,
		Ticks:   g.round.LevelTicks(),
	})
	if err != nil {
		g.logger.Warn("journal: record level failed", "run", g.runID, "err", err)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.round == nil {
		return platformcore.GameState{}
	}
	p := g.round.Player()
	return platformcore.GameState{
		Score:    p.Score,
		Level:    g.round.Level(),
		Lives:    p.Lives,
		GameOver: g.round.Phase() == core.PhaseGameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the round state as last simulated.
func (g *Game) Snapshot() core.Snapshot {
	return g.round.Snapshot()
}

// RunID returns the journal ID of the current run, or "" without a journal.
func (g *Game) RunID() string {
	return g.runID
}

// Best returns the best score seen in this process.
func (g *Game) Best() int {
	return g.best
}

// Paused reports whether the game is paused.
func (g *Game) Paused() bool {
	return g.paused
}
