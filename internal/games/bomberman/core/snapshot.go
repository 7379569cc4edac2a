package core

// PlayerView is the render-facing copy of the player.
type PlayerView struct {
	Pos     Point
	Facing  Dir
	Alive   bool
	Lives   int
	Score   int
	Bombs   int
	Respawn int
	Visible bool
}

// BombView describes an armed bomb.
type BombView struct {
	Pos  Point
	Fuse float64 // remaining fuse fraction
}

// ExplosionView describes an active blast.
type ExplosionView struct {
	Origin    Point
	Tiles     []Point
	Remaining float64 // remaining lifetime fraction
}

// EnemyView describes an enemy. Dead enemies stay visible for the one tick
// before they are purged.
type EnemyView struct {
	Pos   Point
	Dir   Dir
	Kind  EnemyKind
	Alive bool
}

// Snapshot is an immutable copy of everything a presenter draws, and the
// state compared by determinism tests.
type Snapshot struct {
	Tick          uint64
	Level         int
	Phase         Phase
	PhaseTicks    int // ticks left in intro, outro or game-over lockout
	PhaseFraction float64
	Width         int
	Height        int
	Tiles         [][]Tile
	Player        PlayerView
	Bombs         []BombView
	Explosions    []ExplosionView
	Enemies       []EnemyView
}

// Snapshot copies the current round state.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       r.tick,
		Level:      r.level,
		Phase:      r.phase,
		PhaseTicks: r.phaseTimer,
		Width:      r.grid.Width(),
		Height:     r.grid.Height(),
		Tiles:      r.grid.Rows(),
		Player: PlayerView{
			Pos:     r.player.Pos,
			Facing:  r.player.Facing,
			Alive:   r.player.Alive,
			Lives:   r.player.Lives,
			Score:   r.player.Score,
			Bombs:   r.player.Bombs,
			Respawn: r.player.RespawnTicks(),
			Visible: r.player.Visible(),
		},
	}

	switch r.phase {
	case PhaseLevelIntro:
		s.PhaseFraction = fraction(r.phaseTimer, r.rules.IntroTicks)
	case PhaseLevelComplete:
		s.PhaseFraction = fraction(r.phaseTimer, r.rules.OutroTicks)
	}

	s.Bombs = make([]BombView, 0, len(r.bombs))
	for _, b := range r.bombs {
		s.Bombs = append(s.Bombs, BombView{Pos: b.Pos, Fuse: b.FuseFraction()})
	}

	s.Explosions = make([]ExplosionView, 0, len(r.explosions))
	for _, e := range r.explosions {
		s.Explosions = append(s.Explosions, ExplosionView{
			Origin:    e.Origin,
			Tiles:     e.Tiles(),
			Remaining: e.Remaining(),
		})
	}

	s.Enemies = make([]EnemyView, 0, len(r.enemies))
	for _, e := range r.enemies {
		s.Enemies = append(s.Enemies, EnemyView{
			Pos:   e.Pos,
			Dir:   e.Dir,
			Kind:  e.Kind,
			Alive: e.Alive,
		})
	}
	return s
}

// AliveEnemies counts enemies that have not been hit yet.
func (s Snapshot) AliveEnemies() int {
	n := 0
	for _, e := range s.Enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

// InBlast reports whether p is covered by any active explosion.
func (s Snapshot) InBlast(p Point) bool {
	for _, e := range s.Explosions {
		for _, t := range e.Tiles {
			if t == p {
				return true
			}
		}
	}
	return false
}

func fraction(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(max(n, 0)) / float64(total)
}
