package game

import (
	"context"
	"strings"

	"github.com/samdwyer/dungeonkey/internal/world"
)

// ActionSource produces one raw command token per call. It blocks until
// the player has typed something; io.EOF means no more input will come.
type ActionSource interface {
	NextAction(ctx context.Context) (string, error)
}

// Action is a parsed turn-menu command.
type Action int

const (
	ActionUnknown Action = iota
	ActionHelp
	ActionMove
	ActionHeal
	ActionAttack
	ActionTakeKey
	ActionSave
	ActionExit
)

var actionTokens = map[string]Action{
	"help":     ActionHelp,
	"move":     ActionMove,
	"heal":     ActionHeal,
	"attack":   ActionAttack,
	"take key": ActionTakeKey,
	"save":     ActionSave,
	"exit":     ActionExit,
}

// String returns the command token for the action.
func (a Action) String() string {
	for token, action := range actionTokens {
		if action == a {
			return token
		}
	}
	return "unknown"
}

// normalize lowercases a token and trims surrounding whitespace.
func normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// ParseAction maps a raw token to an action. Unrecognized input yields
// ActionUnknown.
func ParseAction(token string) Action {
	return actionTokens[normalize(token)]
}

var directionTokens = map[string]world.Direction{
	"right": world.Right,
	"left":  world.Left,
	"up":    world.Up,
	"down":  world.Down,
}

// ParseDirection maps a raw token to a direction.
func ParseDirection(token string) (world.Direction, bool) {
	d, ok := directionTokens[normalize(token)]
	return d, ok
}

func isHelp(token string) bool {
	return normalize(token) == "help"
}

const turnHelp = `Write "move" to change position in game.
Write "heal" to heal your hero by 1.
Write "attack" to attack enemy in position.
Write "take key" to take the key in position.
Write "save" to save the game.
Write "exit" to exit game.`

const moveHelp = `Write "right" to move one cell right.
Write "left" to move one cell left.
Write "up" to move one cell up.
Write "down" to move one cell down.`
