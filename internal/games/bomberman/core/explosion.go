package core

import "github.com/zyedidia/generic/mapset"

// blastOrder is the order rays are cast from the origin.
var blastOrder = [4]Dir{DirRight, DirLeft, DirDown, DirUp}

// Explosion is the short-lived blast left by a bomb. Its tile set is fixed
// when it is created.
type Explosion struct {
	Origin Point

	tiles     mapset.Set[Point]
	order     []Point
	destroyed []Point
	timer     int
	duration  int
}

// NewExplosion casts the blast from origin up to blastRange tiles in each
// axis direction. A wall stops the ray and is not hit; a block is hit,
// destroyed on the grid and stops the ray.
func NewExplosion(origin Point, blastRange int, g *Grid, duration int) *Explosion {
	e := &Explosion{
		Origin:   origin,
		tiles:    mapset.New[Point](),
		timer:    duration,
		duration: duration,
	}
	e.include(origin)

	for _, d := range blastOrder {
		p := origin
		for step := 1; step <= blastRange; step++ {
			p = p.Add(d)
			if !g.InBounds(p) || g.At(p) == TileWall {
				break
			}
			e.include(p)
			if g.destroyBlock(p) {
				e.destroyed = append(e.destroyed, p)
				break
			}
		}
	}
	return e
}

func (e *Explosion) include(p Point) {
	if e.tiles.Has(p) {
		return
	}
	e.tiles.Put(p)
	e.order = append(e.order, p)
}

// Contains reports whether p is inside the blast.
func (e *Explosion) Contains(p Point) bool {
	return e.tiles.Has(p)
}

// Tiles returns the affected tiles, origin first, then ray by ray.
func (e *Explosion) Tiles() []Point {
	out := make([]Point, len(e.order))
	copy(out, e.order)
	return out
}

// Size returns the number of affected tiles.
func (e *Explosion) Size() int {
	return e.tiles.Size()
}

// Destroyed returns the blocks this explosion turned into Empty tiles.
func (e *Explosion) Destroyed() []Point {
	out := make([]Point, len(e.destroyed))
	copy(out, e.destroyed)
	return out
}

// Tick decays the explosion and reports whether it has expired.
func (e *Explosion) Tick() bool {
	e.timer--
	return e.timer <= 0
}

// Remaining returns the fraction of the lifetime left, in [0, 1].
func (e *Explosion) Remaining() float64 {
	if e.duration <= 0 {
		return 0
	}
	return float64(max(e.timer, 0)) / float64(e.duration)
}

// anyContains reports whether any explosion in the list covers p.
func anyContains(explosions []*Explosion, p Point) bool {
	for _, e := range explosions {
		if e.Contains(p) {
			return true
		}
	}
	return false
}
