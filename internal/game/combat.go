package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonkey/internal/combat"
	"github.com/samdwyer/dungeonkey/internal/entity"
)

// attack strikes another hero on the attacker's cell. With several heroes
// present the player picks one by number and is asked again until the
// choice is valid. A resolved attack ends the turn; an empty cell does not.
func (g *Game) attack(ctx context.Context, attacker *entity.Hero) (bool, error) {
	ctx, span := g.tracer.Start(ctx, "hero.attack")
	defer span.End()

	here := g.party.At(attacker.Position, attacker)
	span.SetAttributes(
		attribute.String("attacker", attacker.Name),
		attribute.Int("candidates", len(here)),
	)
	for _, h := range here {
		g.narrate(attacker, "meet").Infof("Hero %s is here.", h.Name)
	}

	var target *entity.Hero
	switch len(here) {
	case 0:
		g.narrate(attacker, "attack").Info("Nobody is here to attack.")
		return false, nil
	case 1:
		target = here[0]
	default:
		chosen, err := g.chooseTarget(ctx, attacker, here)
		if err != nil {
			return false, err
		}
		target = chosen
	}

	result := combat.Hit(combat.SourceHero, target)
	span.SetAttributes(
		attribute.String("target", target.Name),
		attribute.Int("damage", result.Damage),
	)
	g.narrate(attacker, "attack").Infof("Hero %s attacked %s with a %s.", attacker.Name, target.Name, g.weapon())
	return true, nil
}

// chooseTarget lists the candidates and reads ordinals until one is valid.
func (g *Game) chooseTarget(ctx context.Context, attacker *entity.Hero, candidates []*entity.Hero) (*entity.Hero, error) {
	g.narrate(attacker, "attack").Info("Choose the hero you want to attack:")
	for i, h := range candidates {
		g.narrate(attacker, "attack").Infof("%d. %s", i+1, h.Name)
	}
	for {
		token, err := g.input.NextAction(ctx)
		if err != nil {
			return nil, err
		}
		target, err := combat.SelectTarget(candidates, token)
		if err != nil {
			g.narrate(attacker, "attack").Info("Invalid choice. Please enter the number of one of the listed heroes.")
			continue
		}
		return target, nil
	}
}

func (g *Game) weapon() string {
	if g.heroDef == nil || g.heroDef.Weapon == "" {
		return "sword"
	}
	return g.heroDef.Weapon
}
