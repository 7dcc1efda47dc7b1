package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidHeroCount is returned when the hero count typed at setup is not
// a number. The caller is expected to stop the process.
var ErrInvalidHeroCount = errors.New("hero count must be a whole number")

// Prepare offers to resume a saved game if one exists, otherwise (or if the
// player declines) it sets up a new party.
func (g *Game) Prepare(ctx context.Context) error {
	if g.store != nil {
		exists, err := g.store.Exists(ctx)
		if err != nil {
			return fmt.Errorf("check for saved game: %w", err)
		}
		if exists {
			resumed, err := g.offerResume(ctx)
			if err != nil || resumed {
				return err
			}
		}
	}
	return g.startNewGame(ctx)
}

// offerResume asks whether to continue the saved game. It reports true when
// the save was loaded; on "n" the save is deleted.
func (g *Game) offerResume(ctx context.Context) (bool, error) {
	g.log.WithField("event", "setup").Info("You have a save file. Do you want to continue? (y/n)")
	for {
		token, err := g.input.NextAction(ctx)
		if err != nil {
			return false, fmt.Errorf("read answer: %w", err)
		}
		switch normalize(token) {
		case "y":
			state, err := g.store.Load(ctx)
			if err != nil {
				return false, fmt.Errorf("load saved game: %w", err)
			}
			g.Restore(state)
			g.log.WithField("event", "setup").Info("Game continues...")
			return true, nil
		case "n":
			if err := g.store.Delete(ctx); err != nil {
				return false, fmt.Errorf("delete saved game: %w", err)
			}
			g.log.WithField("event", "setup").Info("Save was deleted.")
			return false, nil
		default:
			g.log.WithField("event", "setup").Info("Incorrect command. Please type y or n.")
		}
	}
}

// startNewGame reads the hero count and one name per hero.
func (g *Game) startNewGame(ctx context.Context) error {
	g.log.WithField("event", "setup").Info("Choose the number of heroes:")
	token, err := g.input.NextAction(ctx)
	if err != nil {
		return fmt.Errorf("read hero count: %w", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || count < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidHeroCount, token)
	}

	for i := 0; i < count; i++ {
		g.log.WithField("event", "setup").Info("Write hero name.")
		name, err := g.input.NextAction(ctx)
		if err != nil {
			return fmt.Errorf("read hero name: %w", err)
		}
		g.AddHero(name)
	}
	g.log.WithField("event", "setup").Info("All heroes were added. Game is starting...")
	return nil
}
