package core

import "testing"

// parseGrid builds a grid from rows of '.', '#' (wall) and '+' (block).
func parseGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	if len(rows) == 0 {
		t.Fatal("parseGrid: no rows")
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.Width() {
			t.Fatalf("parseGrid: row %d has width %d, expected %d", y, len(row), g.Width())
		}
		for x, ch := range row {
			switch ch {
			case '.':
				g.set(x, y, TileEmpty)
			case '#':
				g.set(x, y, TileWall)
			case '+':
				g.set(x, y, TileBlock)
			default:
				t.Fatalf("parseGrid: unknown tile %q at (%d,%d)", ch, x, y)
			}
		}
	}
	return g
}

// playingRound returns a round in the Playing phase on a hand-made grid,
// with no enemies and the player on (1,1).
func playingRound(t *testing.T, rows ...string) *Round {
	t.Helper()
	r := NewRound(DefaultRules(), 1)
	r.grid = parseGrid(t, rows...)
	r.enemies = nil
	r.bombs = nil
	r.explosions = nil
	r.player.placeAt(r.rules.Spawn, r.rules.BombCapacity)
	r.phase = PhasePlaying
	r.phaseTimer = 0
	return r
}

// addIdleEnemy puts an enemy that will not move for the length of a test.
func addIdleEnemy(r *Round, p Point) *Enemy {
	e := NewEnemy(p, DirNone, KindSlime, 100000, 0)
	r.enemies = append(r.enemies, e)
	return e
}

// tickN runs n ticks with the same input and returns every event seen.
func tickN(r *Round, n int, in Input) []Event {
	var events []Event
	for i := 0; i < n; i++ {
		events = append(events, r.Tick(in).Events...)
	}
	return events
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// openRoom is a 7x5 room with a wall border and an empty interior.
var openRoom = []string{
	"#######",
	"#.....#",
	"#.....#",
	"#.....#",
	"#######",
}
