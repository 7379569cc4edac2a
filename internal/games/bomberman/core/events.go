package core

// EventKind identifies a notification emitted by the round.
type EventKind uint8

const (
	EventLevelStart EventKind = iota
	EventBombPlaced
	EventExplosion
	EventEnemyDied
	EventPlayerHit
	EventGameOver
	EventLevelComplete
	EventWinBonus
)

func (k EventKind) String() string {
	switch k {
	case EventLevelStart:
		return "level_start"
	case EventBombPlaced:
		return "bomb_placed"
	case EventExplosion:
		return "explosion"
	case EventEnemyDied:
		return "enemy_died"
	case EventPlayerHit:
		return "player_hit"
	case EventGameOver:
		return "game_over"
	case EventLevelComplete:
		return "level_complete"
	case EventWinBonus:
		return "win_bonus"
	}
	return "unknown"
}

// Event carries what a presenter needs to draw or play a cue.
// Score and Lives are the player's values after the event.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Level int
	Pos   Point

	Points int       // score awarded by this event
	Score  int       // player score after the event
	Lives  int       // player lives after the event
	Enemy  EnemyKind // EventEnemyDied
	Tiles  int       // EventExplosion: affected tile count
	Blocks int       // EventExplosion: blocks destroyed
}

// Listener receives round events synchronously, inside Tick.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event)

// OnEvent calls f(ev).
func (f ListenerFunc) OnEvent(ev Event) {
	f(ev)
}
