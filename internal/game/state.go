// Package game runs rounds and turns: it pulls actions for each hero,
// resolves moves, heals, key pickups and attacks against the maze, and
// decides when the run is over.
package game

// State is where the run stands.
type State int

const (
	// StatePlaying - rounds keep going
	StatePlaying State = iota
	// StateVictory - a hero reached the boss carrying the key
	StateVictory
	// StateDefeat - every hero is gone
	StateDefeat
	// StateExit - a player asked to leave, or input ran out
	StateExit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	case StateExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Result is returned when a run stops.
type Result struct {
	State  State
	Winner string // Name of the winning hero, empty unless State is StateVictory
	Rounds int    // Rounds started, including the one that ended the run
}
