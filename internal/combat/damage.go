// Package combat decides how hits land on heroes and who an attack targets.
package combat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Combatant is anything that can be hit. Heroes implement it.
type Combatant interface {
	GetName() string
	GetHealth() int
	IsAlive() bool
	TakeDamage()
}

// Source identifies what dealt a hit. It only changes narration and the
// death-check policy, never the amount of damage.
type Source int

const (
	SourceHero Source = iota
	SourceFire
	SourceWall
)

// String returns the source as used in narration.
func (s Source) String() string {
	switch s {
	case SourceHero:
		return "hero"
	case SourceFire:
		return "fire"
	case SourceWall:
		return "hitting a wall"
	default:
		return "unknown"
	}
}

// DeathCheck says when a hit's lethality is evaluated.
type DeathCheck int

const (
	// CheckDeferred - damage is applied and death is only noticed at the
	// victim's next start-of-turn check
	CheckDeferred DeathCheck = iota
	// CheckBeforeHit - a victim that is no longer alive (health <= 1) is
	// killed outright and takes no damage
	CheckBeforeHit
)

// deathPolicy is the per-source death-check table. Changing an entry
// changes game balance.
var deathPolicy = map[Source]DeathCheck{
	SourceHero: CheckDeferred,
	SourceFire: CheckBeforeHit,
	SourceWall: CheckBeforeHit,
}

// PolicyFor returns the death-check policy for a source.
func PolicyFor(s Source) DeathCheck {
	return deathPolicy[s]
}

// Damage is the fixed amount every hit deals.
const Damage = 1

// HitResult describes what happened to the target of a hit.
type HitResult struct {
	Source  Source
	Damage  int    // Health actually removed
	Lethal  bool   // Target must be removed now; no damage was applied
	Message string // Narration, empty when the source is silent
}

// Hit applies one hit from source to target following the death policy.
func Hit(source Source, target Combatant) HitResult {
	result := HitResult{Source: source}

	if PolicyFor(source) == CheckBeforeHit && !target.IsAlive() {
		result.Lethal = true
		return result
	}

	before := target.GetHealth()
	target.TakeDamage()
	result.Damage = before - target.GetHealth()

	if source != SourceHero {
		result.Message = fmt.Sprintf("%s received damage from %s. Health left: %d",
			target.GetName(), source, target.GetHealth())
	}
	return result
}

// ErrInvalidTarget is returned when a target choice does not name one of
// the listed candidates.
var ErrInvalidTarget = errors.New("invalid target")

// SelectTarget resolves a 1-based ordinal typed by the player against the
// listed candidates.
func SelectTarget[T Combatant](candidates []T, choice string) (T, error) {
	var zero T
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || n < 1 || n > len(candidates) {
		return zero, fmt.Errorf("%w: %q", ErrInvalidTarget, choice)
	}
	return candidates[n-1], nil
}
