package core

import (
	"math/rand"
	"sort"
	"testing"
)

func sortedPoints(ps []Point) []Point {
	out := append([]Point(nil), ps...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func TestExplosionWallBelow(t *testing.T) {
	// 4x4 open grid with a single wall under the origin.
	g := parseGrid(t,
		"....",
		"....",
		".#..",
		"....",
	)

	e := NewExplosion(Point{X: 1, Y: 1}, 1, g, 30)

	expected := sortedPoints([]Point{{1, 1}, {0, 1}, {2, 1}, {1, 0}})
	got := sortedPoints(e.Tiles())
	if len(got) != len(expected) {
		t.Fatalf("Tiles() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Tiles() = %v, expected %v", got, expected)
			break
		}
	}
	if e.Contains(Point{X: 1, Y: 2}) {
		t.Error("explosion should not include the wall tile")
	}
	if g.At(Point{X: 1, Y: 2}) != TileWall {
		t.Error("wall must survive an explosion")
	}
}

func TestExplosionBlockAbsorbsBlast(t *testing.T) {
	g := parseGrid(t,
		"#######",
		"#..++.#",
		"#######",
	)

	e := NewExplosion(Point{X: 2, Y: 1}, 3, g, 30)

	if !e.Contains(Point{X: 3, Y: 1}) {
		t.Error("first block should be hit")
	}
	if e.Contains(Point{X: 4, Y: 1}) {
		t.Error("second block should be shielded by the first")
	}
	if g.At(Point{X: 3, Y: 1}) != TileEmpty {
		t.Error("hit block should become empty")
	}
	if g.At(Point{X: 4, Y: 1}) != TileBlock {
		t.Error("shielded block should remain")
	}
	if d := e.Destroyed(); len(d) != 1 || d[0] != (Point{X: 3, Y: 1}) {
		t.Errorf("Destroyed() = %v, expected [(3,1)]", d)
	}
	if !e.Contains(Point{X: 1, Y: 1}) {
		t.Error("open tile to the left should be included")
	}
	if e.Contains(Point{X: 0, Y: 1}) {
		t.Error("border wall should not be included")
	}
}

func TestExplosionRangeAndBounds(t *testing.T) {
	g := NewGrid(5, 1)

	tests := []struct {
		name     string
		origin   Point
		rng      int
		expected int
	}{
		{"range zero is origin only", Point{X: 2, Y: 0}, 0, 1},
		{"range one", Point{X: 2, Y: 0}, 1, 3},
		{"clipped by left edge", Point{X: 0, Y: 0}, 2, 3},
		{"clipped on both sides", Point{X: 2, Y: 0}, 10, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewExplosion(tc.origin, tc.rng, g, 30)
			if e.Size() != tc.expected {
				t.Errorf("Size() = %d, expected %d (tiles %v)", e.Size(), tc.expected, e.Tiles())
			}
			if !e.Contains(tc.origin) {
				t.Error("origin must always be included")
			}
			for _, p := range e.Tiles() {
				if !g.InBounds(p) {
					t.Errorf("tile %v is out of bounds", p)
				}
			}
		})
	}
}

func TestExplosionTilesAreFixed(t *testing.T) {
	g := parseGrid(t,
		"########",
		"#..++..#",
		"########",
	)

	first := NewExplosion(Point{X: 1, Y: 1}, 5, g, 30)
	before := first.Size()

	// A second blast clears the block that was shielded from the first.
	NewExplosion(Point{X: 6, Y: 1}, 2, g, 30)
	if g.At(Point{X: 4, Y: 1}) != TileEmpty {
		t.Fatal("setup: second block should be gone")
	}

	if first.Size() != before {
		t.Errorf("live explosion changed size from %d to %d", before, first.Size())
	}
	if first.Contains(Point{X: 4, Y: 1}) {
		t.Error("live explosion should not be recomputed after grid mutation")
	}
}

func TestExplosionPropertiesOnGeneratedGrids(t *testing.T) {
	rules := DefaultRules()

	for seed := int64(1); seed <= 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := GenerateGrid(rules.Width, rules.Height, rules.Spawn, rules.BlockChance, rng)
		before := g.Rows()

		origin := Point{X: 1 + rng.Intn(rules.Width-2), Y: 1 + rng.Intn(rules.Height-2)}
		if !g.IsOpen(origin) {
			continue
		}
		e := NewExplosion(origin, rules.BombRange, g, rules.ExplosionTicks)

		if !e.Contains(origin) {
			t.Errorf("seed %d: origin %v missing", seed, origin)
		}

		for _, d := range Dirs {
			blocks := 0
			stopped := false
			p := origin
			for step := 1; step <= rules.BombRange; step++ {
				p = p.Add(d)
				if !g.InBounds(p) {
					break
				}
				was := before[p.Y][p.X]
				if stopped && e.Contains(p) {
					t.Errorf("seed %d: %v reached past an obstacle going %v", seed, p, d)
				}
				if was == TileWall {
					if e.Contains(p) {
						t.Errorf("seed %d: wall %v included", seed, p)
					}
					stopped = true
				}
				if was == TileBlock && e.Contains(p) {
					blocks++
					if g.At(p) != TileEmpty {
						t.Errorf("seed %d: hit block %v was not destroyed", seed, p)
					}
					stopped = true
				}
			}
			if blocks > 1 {
				t.Errorf("seed %d: %d blocks hit going %v, expected at most 1", seed, blocks, d)
			}
		}
	}
}

func TestExplosionDecay(t *testing.T) {
	g := NewGrid(3, 3)
	e := NewExplosion(Point{X: 1, Y: 1}, 1, g, 3)

	if e.Remaining() != 1 {
		t.Errorf("Remaining() = %v, expected 1", e.Remaining())
	}
	if e.Tick() || e.Tick() {
		t.Fatal("explosion expired early")
	}
	if !e.Tick() {
		t.Error("explosion should expire after its duration")
	}
	if e.Remaining() != 0 {
		t.Errorf("Remaining() = %v, expected 0", e.Remaining())
	}
}

func TestBombFuse(t *testing.T) {
	b := NewBomb(Point{X: 1, Y: 1}, 90, 2)

	for i := 1; i < 90; i++ {
		if b.Tick() {
			t.Fatalf("bomb exploded at tick %d, expected 90", i)
		}
	}
	if b.FuseFraction() <= 0 {
		t.Error("fuse fraction should still be positive before the last tick")
	}
	if !b.Tick() {
		t.Fatal("bomb should explode on tick 90")
	}
	if !b.Exploded {
		t.Error("Exploded flag not set")
	}
	if b.Tick() {
		t.Error("Tick after explosion must not report a second transition")
	}
	if b.FuseFraction() != 0 {
		t.Errorf("FuseFraction() = %v, expected 0", b.FuseFraction())
	}
}
