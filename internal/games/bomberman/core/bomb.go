package core

// Bomb is an armed charge sitting on one tile.
type Bomb struct {
	Pos      Point
	Range    int
	Exploded bool

	fuse      int
	fuseTotal int
}

// NewBomb arms a bomb at pos.
func NewBomb(pos Point, fuse, blastRange int) *Bomb {
	if fuse < 1 {
		fuse = 1
	}
	return &Bomb{
		Pos:       pos,
		Range:     blastRange,
		fuse:      fuse,
		fuseTotal: fuse,
	}
}

// Tick burns the fuse by one tick. It returns true exactly once, on the
// tick the bomb goes off.
func (b *Bomb) Tick() bool {
	if b.Exploded {
		return false
	}
	b.fuse--
	if b.fuse <= 0 {
		b.Exploded = true
		return true
	}
	return false
}

// Fuse returns the ticks left before detonation.
func (b *Bomb) Fuse() int {
	return b.fuse
}

// FuseFraction returns the remaining fuse in [0, 1].
func (b *Bomb) FuseFraction() float64 {
	if b.fuseTotal == 0 {
		return 0
	}
	return float64(max(b.fuse, 0)) / float64(b.fuseTotal)
}
