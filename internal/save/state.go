// Package save holds the persisted game data model and the stores that read
// and write it.
package save

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeonkey/internal/world"
)

// ErrNoSave is returned by Load when there is no saved game.
var ErrNoSave = errors.New("no saved game")

// State is everything a saved game needs. Hazards and the maze layout are
// not saved; hazards are redrawn every round and the layout is static.
type State struct {
	RunID   string       `json:"run_id"`
	SavedAt time.Time    `json:"saved_at"`
	Heroes  []HeroRecord `json:"heroes"`
	Maze    MazeRecord   `json:"maze"`
}

// HeroRecord is one hero as persisted, in turn order.
type HeroRecord struct {
	Name        string         `json:"name"`
	Position    world.Position `json:"position"`
	Anchor      world.Position `json:"anchor"`
	Health      int            `json:"health"`
	HealCharges int            `json:"heal_charges"`
	HasKey      bool           `json:"has_key"`
}

// MazeRecord is the mutable part of the maze.
type MazeRecord struct {
	KeyLocation world.Position `json:"key_location"`
	KeyPresent  bool           `json:"key_present"`
}

// Store loads and saves a single game.
type Store interface {
	// Exists reports whether a saved game is available.
	Exists(ctx context.Context) (bool, error)
	// Load returns the saved game, or ErrNoSave.
	Load(ctx context.Context) (State, error)
	// Save replaces the saved game.
	Save(ctx context.Context, state State) error
	// Delete discards the saved game. Deleting a missing save is not an error.
	Delete(ctx context.Context) error
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}
