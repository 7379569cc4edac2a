package core

// Player is the user-controlled bomber. It survives level transitions;
// only its position and bomb capacity are reset per level.
type Player struct {
	Pos    Point
	Facing Dir
	Bombs  int
	Lives  int
	Score  int
	Alive  bool

	respawn int
}

// NewPlayer creates a player standing on spawn.
func NewPlayer(spawn Point, lives, bombs int) *Player {
	return &Player{
		Pos:    spawn,
		Facing: DirDown,
		Bombs:  bombs,
		Lives:  lives,
		Alive:  true,
	}
}

// CanAct reports whether the player may move, bomb and be hit.
func (p *Player) CanAct() bool {
	return p.Alive && p.respawn == 0
}

// Respawning reports whether the post-hit countdown is running.
func (p *Player) Respawning() bool {
	return p.respawn > 0
}

// RespawnTicks returns the ticks left in the respawn window.
func (p *Player) RespawnTicks() int {
	return p.respawn
}

// Visible reports whether the player is drawn this tick. During respawn it
// blinks in 5-tick halves.
func (p *Player) Visible() bool {
	if !p.Alive {
		return false
	}
	return p.respawn == 0 || p.respawn%10 >= 5
}

// Move steps one tile in d. Facing always follows d; the position only
// changes when the destination is in bounds and Empty.
func (p *Player) Move(d Dir, g *Grid) bool {
	if !p.CanAct() || d == DirNone {
		return false
	}
	p.Facing = d
	next := p.Pos.Add(d)
	if !g.IsOpen(next) {
		return false
	}
	p.Pos = next
	return true
}

// PlaceBomb drops a bomb on the current tile if capacity allows.
func (p *Player) PlaceBomb(fuse, blastRange int) (*Bomb, bool) {
	if !p.CanAct() || p.Bombs <= 0 {
		return nil, false
	}
	p.Bombs--
	return NewBomb(p.Pos, fuse, blastRange), true
}

// RefundBomb returns one unit of bomb capacity.
func (p *Player) RefundBomb() {
	p.Bombs++
}

// LoseLife takes one life and reports whether the player is still alive.
func (p *Player) LoseLife() bool {
	if p.Lives > 0 {
		p.Lives--
	}
	if p.Lives <= 0 {
		p.Alive = false
	}
	return p.Alive
}

// AddScore credits points. Negative amounts are ignored.
func (p *Player) AddScore(points int) {
	if points > 0 {
		p.Score += points
	}
}

func (p *Player) startRespawn(ticks int) {
	p.respawn = ticks
}

// tickRespawn counts the respawn window down and snaps the player back to
// spawn when it ends. It returns true on the tick the player reappears.
func (p *Player) tickRespawn(spawn Point) bool {
	if p.respawn <= 0 {
		return false
	}
	p.respawn--
	if p.respawn == 0 {
		p.Pos = spawn
		return true
	}
	return false
}

// placeAt resets the per-level state of the player.
func (p *Player) placeAt(spawn Point, bombs int) {
	p.Pos = spawn
	p.Facing = DirDown
	p.Bombs = bombs
	p.respawn = 0
}
