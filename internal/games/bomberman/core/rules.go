// Package core contains the pure Bomberman simulation: grid, bombs,
// explosions, enemies, the player and the round controller.
// It has no dependencies on the terminal or the platform layer.
package core

// Rules holds the fixed gameplay constants. Durations are in ticks.
type Rules struct {
	Width  int
	Height int
	Spawn  Point

	BlockChance float64

	BombFuse     int
	BombRange    int
	BombCapacity int

	ExplosionTicks int

	EnemyMoveDelay int
	EnemyBaseCount int
	EnemyCap       int

	EnemyKillScore int
	LifeBonus      int

	StartLives         int
	RespawnTicks       int
	PlayerMoveCooldown int

	IntroTicks        int
	OutroTicks        int
	GameOverLockTicks int
}

// DefaultRules returns the standard rule set tuned for 30 ticks per second.
func DefaultRules() Rules {
	return Rules{
		Width:  16,
		Height: 12,
		Spawn:  Point{X: 1, Y: 1},

		BlockChance: 0.3,

		BombFuse:     90,
		BombRange:    2,
		BombCapacity: 1,

		ExplosionTicks: 30,

		EnemyMoveDelay: 15,
		EnemyBaseCount: 3,
		EnemyCap:       10,

		EnemyKillScore: 100,
		LifeBonus:      200,

		StartLives:         3,
		RespawnTicks:       60,
		PlayerMoveCooldown: 10,

		IntroTicks:        60,
		OutroTicks:        90,
		GameOverLockTicks: 15,
	}
}

// EnemyCount returns how many enemies spawn on the given level (1-indexed).
func (r Rules) EnemyCount(level int) int {
	if level < 1 {
		level = 1
	}
	return min(r.EnemyBaseCount+level-1, r.EnemyCap)
}
