package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonkey/internal/combat"
	"github.com/samdwyer/dungeonkey/internal/entity"
	"github.com/samdwyer/dungeonkey/internal/world"
)

// move asks for a direction and resolves it. Once a direction is given the
// turn always ends, whatever happens to the hero.
func (g *Game) move(ctx context.Context, hero *entity.Hero) (bool, error) {
	g.narrate(hero, "move").Info("Choose direction to move. Write 'help' to see a list of directions.")
	for {
		token, err := g.input.NextAction(ctx)
		if err != nil {
			return false, err
		}
		if isHelp(token) {
			g.narrate(hero, "help").Info(moveHelp)
			continue
		}
		dir, ok := ParseDirection(token)
		if !ok {
			g.narrate(hero, "unknown").Info("Unknown direction. Please try again or type 'help' to see the list of available directions.")
			continue
		}
		g.resolveMove(ctx, hero, dir)
		return true, nil
	}
}

// resolveMove applies the consequences of stepping in dir.
func (g *Game) resolveMove(ctx context.Context, hero *entity.Hero, dir world.Direction) world.Outcome {
	_, span := g.tracer.Start(ctx, "hero.move")
	defer span.End()

	outcome := g.maze.ClassifyMove(hero.Position, dir)
	span.SetAttributes(
		attribute.String("hero", hero.Name),
		attribute.String("direction", dir.String()),
		attribute.String("outcome", outcome.String()),
		attribute.Bool("moved", outcome.Moved()),
	)

	switch outcome {
	case world.OutcomeBoss:
		if hero.HasKey() {
			g.narrate(hero, "victory").Infof("Hero %s wins!", hero.Name)
			g.log.WithField("event", "victory").Info("End of the game. Thanks for playing.")
			g.winner = hero
			g.state = StateVictory
			return outcome
		}
		g.narrate(hero, "death").Infof("Hero %s is killed by %s.", hero.Name, g.maze.BossName())
		g.removeHero(hero)

	case world.OutcomeOutOfBounds:
		g.hitHero(hero, combat.SourceWall)

	default:
		old := hero.Position
		hero.Position = old.Add(dir)

		// Stepping back onto the anchor scares the hero out of the maze.
		if hero.Position == hero.Anchor {
			g.narrate(hero, "flee").Infof("The hero %s got scared and fled.", hero.Name)
			g.removeHero(hero)
			span.SetAttributes(attribute.Bool("fled", true))
			return outcome
		}
		if !g.maze.IsAnchor(hero.Position) && !g.maze.IsAnchor(old) {
			hero.Anchor = old
		}
		g.narrate(hero, "move").Infof("%s moved to %v.", hero.Name, hero.Position)

		if outcome == world.OutcomeHealing {
			hero.HealToFull()
			g.narrate(hero, "heal").Infof("Hero %s heals.", hero.Name)
		}
		if key, present := g.maze.KeyState(); present && key == hero.Position {
			g.narrate(hero, "key").Info("A key is here.")
		}
		for _, other := range g.party.At(hero.Position, hero) {
			g.narrate(hero, "meet").Infof("Another hero, %s, is here.", other.Name)
		}
		if outcome == world.OutcomeBurned {
			g.hitHero(hero, combat.SourceFire)
		}
	}
	return outcome
}

// hitHero applies a wall or fire hit. A hero already on its last point of
// health is removed on the spot.
func (g *Game) hitHero(hero *entity.Hero, source combat.Source) {
	result := combat.Hit(source, hero)
	if result.Lethal {
		g.narrate(hero, "death").Infof("Hero %s dies.", hero.Name)
		g.removeHero(hero)
		return
	}
	if result.Message != "" {
		g.narrate(hero, "damage").Info(result.Message)
	}
}

// takeKey picks up the key if it lies on the hero's cell.
func (g *Game) takeKey(hero *entity.Hero) bool {
	key, present := g.maze.KeyState()
	if !present || key != hero.Position {
		g.narrate(hero, "key").Info("The key isn't here or someone has already taken it.")
		return false
	}
	hero.GrantKey()
	g.maze.TakeKey()
	g.narrate(hero, "key").Infof("Hero %s takes the key.", hero.Name)
	return true
}
