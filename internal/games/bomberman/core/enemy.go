package core

import "math/rand"

// EnemyKind is the cosmetic variant of an enemy. All kinds behave alike.
type EnemyKind uint8

const (
	KindSlime EnemyKind = iota
	KindGhost
	KindGoblin
)

// enemyKinds is the set spawn picks from.
var enemyKinds = [...]EnemyKind{KindSlime, KindGhost, KindGoblin}

func (k EnemyKind) String() string {
	switch k {
	case KindGhost:
		return "ghost"
	case KindGoblin:
		return "goblin"
	default:
		return "slime"
	}
}

// Enemy is a patrolling monster.
type Enemy struct {
	Pos   Point
	Dir   Dir
	Kind  EnemyKind
	Alive bool

	moveCounter int
	moveDelay   int
}

// NewEnemy places an enemy. The move counter starts at phase so that a
// pack of enemies does not step in lockstep.
func NewEnemy(pos Point, dir Dir, kind EnemyKind, moveDelay, phase int) *Enemy {
	if moveDelay < 1 {
		moveDelay = 1
	}
	return &Enemy{
		Pos:         pos,
		Dir:         dir,
		Kind:        kind,
		Alive:       true,
		moveDelay:   moveDelay,
		moveCounter: phase % moveDelay,
	}
}

// Update advances the enemy by one tick. It returns true if the enemy died
// this tick. A dead enemy never moves again.
func (e *Enemy) Update(g *Grid, explosions []*Explosion, rng *rand.Rand) bool {
	if !e.Alive {
		return false
	}
	if anyContains(explosions, e.Pos) {
		e.Alive = false
		return true
	}

	e.moveCounter++
	if e.moveCounter < e.moveDelay {
		return false
	}
	e.moveCounter = 0
	e.step(g, rng)
	return false
}

// step moves one tile, turning to a random open direction when blocked.
func (e *Enemy) step(g *Grid, rng *rand.Rand) {
	next := e.Pos.Add(e.Dir)
	if e.Dir == DirNone || !g.IsOpen(next) {
		open := openDirs(g, e.Pos)
		if len(open) == 0 {
			return
		}
		e.Dir = open[rng.Intn(len(open))]
		next = e.Pos.Add(e.Dir)
	}
	e.Pos = next
}

// openDirs lists the directions from p that lead to an Empty tile.
func openDirs(g *Grid, p Point) []Dir {
	open := make([]Dir, 0, len(Dirs))
	for _, d := range Dirs {
		if g.IsOpen(p.Add(d)) {
			open = append(open, d)
		}
	}
	return open
}

// spawnEnemies places n enemies on distinct Empty tiles away from the spawn
// corner. If fewer candidate tiles exist than enemies, tiles are reused.
func spawnEnemies(g *Grid, n int, spawn Point, moveDelay int, rng *rand.Rand) []*Enemy {
	var candidates []Point
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			p := Point{X: x, Y: y}
			if g.IsOpen(p) && (x > spawn.X+2 || y > spawn.Y+2) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 || n <= 0 {
		return nil
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	enemies := make([]*Enemy, 0, n)
	for i := 0; i < n; i++ {
		pos := candidates[i%len(candidates)]
		dir := Dirs[rng.Intn(len(Dirs))]
		kind := enemyKinds[rng.Intn(len(enemyKinds))]
		enemies = append(enemies, NewEnemy(pos, dir, kind, moveDelay, rng.Intn(moveDelay)))
	}
	return enemies
}
