package core

import (
	"math/rand"
	"testing"
)

func TestEnemyDiesInExplosion(t *testing.T) {
	g := parseGrid(t, openRoom...)
	rng := rand.New(rand.NewSource(1))
	e := NewEnemy(Point{X: 3, Y: 2}, DirRight, KindGhost, 1, 0)
	blast := NewExplosion(Point{X: 2, Y: 2}, 1, g, 30)

	if !e.Update(g, []*Explosion{blast}, rng) {
		t.Fatal("enemy inside blast should die")
	}
	if e.Alive {
		t.Error("Alive should be false")
	}
	if e.Pos != (Point{X: 3, Y: 2}) {
		t.Errorf("dead enemy moved to %v", e.Pos)
	}
	if e.Update(g, []*Explosion{blast}, rng) {
		t.Error("death must be reported only once")
	}
}

func TestEnemyMoveDelay(t *testing.T) {
	g := parseGrid(t, openRoom...)
	rng := rand.New(rand.NewSource(1))
	e := NewEnemy(Point{X: 1, Y: 2}, DirRight, KindSlime, 3, 0)

	e.Update(g, nil, rng)
	e.Update(g, nil, rng)
	if e.Pos != (Point{X: 1, Y: 2}) {
		t.Fatalf("enemy moved before its delay: %v", e.Pos)
	}
	e.Update(g, nil, rng)
	if e.Pos != (Point{X: 2, Y: 2}) {
		t.Errorf("enemy at %v after delay, expected (2,2)", e.Pos)
	}
}

func TestEnemyTurnsWhenBlocked(t *testing.T) {
	// Dead end facing right; the only open way is back left.
	g := parseGrid(t,
		"#####",
		"#..+#",
		"#####",
	)
	rng := rand.New(rand.NewSource(3))
	e := NewEnemy(Point{X: 2, Y: 1}, DirRight, KindGoblin, 1, 0)

	e.Update(g, nil, rng)

	if e.Dir != DirLeft {
		t.Errorf("Dir = %v, expected left", e.Dir)
	}
	if e.Pos != (Point{X: 1, Y: 1}) {
		t.Errorf("Pos = %v, expected (1,1)", e.Pos)
	}
	if g.At(Point{X: 3, Y: 1}) != TileBlock {
		t.Error("enemy movement must not change the grid")
	}
}

func TestEnemyBoxedInStays(t *testing.T) {
	g := parseGrid(t,
		"###",
		"#.+",
		"###",
	)
	rng := rand.New(rand.NewSource(1))
	e := NewEnemy(Point{X: 1, Y: 1}, DirUp, KindSlime, 1, 0)

	for i := 0; i < 5; i++ {
		e.Update(g, nil, rng)
	}
	if e.Pos != (Point{X: 1, Y: 1}) {
		t.Errorf("boxed-in enemy moved to %v", e.Pos)
	}
}

func TestEnemyOnlyWalksOnEmptyTiles(t *testing.T) {
	rules := DefaultRules()

	for seed := int64(1); seed <= 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := GenerateGrid(rules.Width, rules.Height, rules.Spawn, rules.BlockChance, rng)
		enemies := spawnEnemies(g, 5, rules.Spawn, 1, rng)

		for tick := 0; tick < 500; tick++ {
			for _, e := range enemies {
				e.Update(g, nil, rng)
				if !g.IsOpen(e.Pos) {
					t.Fatalf("seed %d tick %d: enemy on non-empty tile %v", seed, tick, e.Pos)
				}
			}
		}
	}
}

func TestSpawnEnemies(t *testing.T) {
	rules := DefaultRules()
	rng := rand.New(rand.NewSource(42))
	g := GenerateGrid(rules.Width, rules.Height, rules.Spawn, rules.BlockChance, rng)

	enemies := spawnEnemies(g, 6, rules.Spawn, rules.EnemyMoveDelay, rng)
	if len(enemies) != 6 {
		t.Fatalf("spawned %d enemies, expected 6", len(enemies))
	}

	seen := make(map[Point]bool)
	for _, e := range enemies {
		if !g.IsOpen(e.Pos) {
			t.Errorf("enemy spawned on non-empty tile %v", e.Pos)
		}
		if e.Pos.X <= 3 && e.Pos.Y <= 3 {
			t.Errorf("enemy spawned next to the player start: %v", e.Pos)
		}
		if seen[e.Pos] {
			t.Errorf("two enemies share tile %v", e.Pos)
		}
		seen[e.Pos] = true
		if !e.Alive {
			t.Error("spawned enemy should be alive")
		}
		if e.Dir == DirNone {
			t.Error("spawned enemy should have a direction")
		}
	}
}

func TestEnemyCount(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		level, expected int
	}{
		{1, 3},
		{2, 4},
		{5, 7},
		{8, 10},
		{20, 10},
		{0, 3},
	}

	for _, tc := range tests {
		if got := rules.EnemyCount(tc.level); got != tc.expected {
			t.Errorf("EnemyCount(%d) = %d, expected %d", tc.level, got, tc.expected)
		}
	}
}
