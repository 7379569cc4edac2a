package core

import "math/rand"

// Phase is the round controller state.
type Phase uint8

const (
	PhaseLevelIntro Phase = iota
	PhasePlaying
	PhaseLevelComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseLevelIntro:
		return "level_intro"
	case PhasePlaying:
		return "playing"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// Input is the player's intent for one tick.
type Input struct {
	Dir  Dir  // currently held direction, DirNone if none
	Bomb bool // bomb key went down this tick
	Any  bool // any key went down this tick; only read in GameOver
}

// TickResult reports what a single Tick did.
type TickResult struct {
	Tick   uint64
	Phase  Phase
	Events []Event
}

// Round owns one playthrough: the grid, every entity and the level flow.
// It is not safe for concurrent use.
type Round struct {
	rules     Rules
	rng       *rand.Rand
	listeners []Listener

	tick       uint64
	phase      Phase
	phaseTimer int
	level      int

	grid       *Grid
	player     *Player
	bombs      []*Bomb
	explosions []*Explosion
	pending    []*Explosion
	enemies    []*Enemy

	bonusGranted bool
	moveCooldown int
	levelTicks   int
	events       []Event
}

// NewRound starts a new game at level 1 in the intro phase.
func NewRound(rules Rules, seed int64, listeners ...Listener) *Round {
	r := &Round{
		rules:     rules,
		rng:       rand.New(rand.NewSource(seed)),
		listeners: listeners,
		player:    NewPlayer(rules.Spawn, rules.StartLives, rules.BombCapacity),
	}
	r.startLevel(1)
	r.flush()
	return r
}

// AddListener registers another event listener.
func (r *Round) AddListener(l Listener) {
	r.listeners = append(r.listeners, l)
}

// Tick advances the round by one simulation step.
func (r *Round) Tick(in Input) TickResult {
	r.tick++

	switch r.phase {
	case PhaseLevelIntro:
		r.phaseTimer--
		if r.phaseTimer <= 0 {
			r.phase = PhasePlaying
		}
	case PhasePlaying:
		r.step(in)
	case PhaseLevelComplete:
		r.phaseTimer--
		if r.phaseTimer <= 0 {
			r.startLevel(r.level + 1)
		}
	case PhaseGameOver:
		if r.phaseTimer > 0 {
			r.phaseTimer--
		} else if in.Any {
			r.restart()
		}
	}

	return TickResult{
		Tick:   r.tick,
		Phase:  r.phase,
		Events: r.flush(),
	}
}

// step runs one Playing tick.
func (r *Round) step(in Input) {
	r.levelTicks++

	if in.Bomb {
		r.placeBomb()
	}
	r.advancePlayer(in.Dir)
	r.advanceBombs()
	r.advanceExplosions()
	r.advanceEnemies()

	// Blasts created this tick start hit-testing on the next one.
	r.explosions = append(r.explosions, r.pending...)
	r.pending = r.pending[:0]

	switch {
	case !r.player.Alive:
		r.phase = PhaseGameOver
		r.phaseTimer = r.rules.GameOverLockTicks
		r.emit(Event{Kind: EventGameOver, Pos: r.player.Pos})
	case len(r.enemies) == 0:
		r.grantWinBonus()
		r.phase = PhaseLevelComplete
		r.phaseTimer = r.rules.OutroTicks
		r.emit(Event{Kind: EventLevelComplete, Pos: r.player.Pos})
	}
}

func (r *Round) placeBomb() {
	b, ok := r.player.PlaceBomb(r.rules.BombFuse, r.rules.BombRange)
	if !ok {
		return
	}
	r.bombs = append(r.bombs, b)
	r.emit(Event{Kind: EventBombPlaced, Pos: b.Pos})
}

// advancePlayer applies the held direction, paced by the move cooldown,
// or runs the respawn countdown.
func (r *Round) advancePlayer(dir Dir) {
	p := r.player
	if !p.Alive {
		return
	}
	if p.Respawning() {
		p.tickRespawn(r.rules.Spawn)
		return
	}

	if dir == DirNone {
		r.moveCooldown = 0
		return
	}
	if r.moveCooldown > 0 {
		r.moveCooldown--
	}
	if r.moveCooldown == 0 {
		p.Move(dir, r.grid)
		r.moveCooldown = r.rules.PlayerMoveCooldown
	}
}

func (r *Round) advanceBombs() {
	live := r.bombs[:0]
	for _, b := range r.bombs {
		if !b.Tick() {
			live = append(live, b)
			continue
		}
		e := NewExplosion(b.Pos, b.Range, r.grid, r.rules.ExplosionTicks)
		r.pending = append(r.pending, e)
		r.player.RefundBomb()
		r.emit(Event{
			Kind:   EventExplosion,
			Pos:    b.Pos,
			Tiles:  e.Size(),
			Blocks: len(e.destroyed),
		})
	}
	clear(r.bombs[len(live):])
	r.bombs = live
}

func (r *Round) advanceExplosions() {
	live := r.explosions[:0]
	for _, e := range r.explosions {
		if r.player.CanAct() && e.Contains(r.player.Pos) {
			r.hitPlayer()
		}
		if !e.Tick() {
			live = append(live, e)
		}
	}
	clear(r.explosions[len(live):])
	r.explosions = live
}

func (r *Round) advanceEnemies() {
	live := r.enemies[:0]
	for _, e := range r.enemies {
		if !e.Alive {
			r.player.AddScore(r.rules.EnemyKillScore)
			r.emit(Event{
				Kind:   EventEnemyDied,
				Pos:    e.Pos,
				Points: r.rules.EnemyKillScore,
				Enemy:  e.Kind,
			})
			continue
		}
		live = append(live, e)
		e.Update(r.grid, r.explosions, r.rng)
		if e.Alive && r.player.CanAct() && e.Pos == r.player.Pos {
			r.hitPlayer()
		}
	}
	clear(r.enemies[len(live):])
	r.enemies = live
}

func (r *Round) hitPlayer() {
	alive := r.player.LoseLife()
	r.moveCooldown = 0
	if alive {
		r.player.startRespawn(r.rules.RespawnTicks)
	}
	r.emit(Event{Kind: EventPlayerHit, Pos: r.player.Pos})
}

// grantWinBonus credits lives times the bonus once per level. It reports
// whether the bonus was applied by this call.
func (r *Round) grantWinBonus() bool {
	if r.bonusGranted {
		return false
	}
	r.bonusGranted = true
	bonus := r.player.Lives * r.rules.LifeBonus
	r.player.AddScore(bonus)
	r.emit(Event{Kind: EventWinBonus, Pos: r.player.Pos, Points: bonus})
	return true
}

// startLevel builds a fresh level, keeping score and lives.
func (r *Round) startLevel(level int) {
	r.level = level
	r.grid = GenerateGrid(r.rules.Width, r.rules.Height, r.rules.Spawn, r.rules.BlockChance, r.rng)
	r.enemies = spawnEnemies(r.grid, r.rules.EnemyCount(level), r.rules.Spawn, r.rules.EnemyMoveDelay, r.rng)
	r.bombs = nil
	r.explosions = nil
	r.pending = nil
	r.player.placeAt(r.rules.Spawn, r.rules.BombCapacity)
	r.bonusGranted = false
	r.moveCooldown = 0
	r.levelTicks = 0
	r.phase = PhaseLevelIntro
	r.phaseTimer = r.rules.IntroTicks
	r.emit(Event{Kind: EventLevelStart, Pos: r.rules.Spawn})
}

// restart begins a new game from level 1 after a game over.
func (r *Round) restart() {
	r.player = NewPlayer(r.rules.Spawn, r.rules.StartLives, r.rules.BombCapacity)
	r.startLevel(1)
}

func (r *Round) emit(ev Event) {
	ev.Tick = r.tick
	ev.Level = r.level
	ev.Score = r.player.Score
	ev.Lives = r.player.Lives
	r.events = append(r.events, ev)
}

// flush delivers queued events to listeners and returns them.
func (r *Round) flush() []Event {
	if len(r.events) == 0 {
		return nil
	}
	out := r.events
	r.events = nil
	for _, ev := range out {
		for _, l := range r.listeners {
			l.OnEvent(ev)
		}
	}
	return out
}

// Level returns the current level number, starting at 1.
func (r *Round) Level() int { return r.level }

// Phase returns the current controller state.
func (r *Round) Phase() Phase { return r.phase }

// TickCount returns the number of ticks since the round was created.
func (r *Round) TickCount() uint64 { return r.tick }

// LevelTicks returns the Playing ticks spent on the current level.
func (r *Round) LevelTicks() int { return r.levelTicks }

// Player returns a copy of the player state.
func (r *Round) Player() Player { return *r.player }

// EnemiesLeft returns the number of enemies still in the active set.
func (r *Round) EnemiesLeft() int { return len(r.enemies) }
