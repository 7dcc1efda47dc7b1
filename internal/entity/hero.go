// Package entity provides the heroes exploring the maze and the party roster.
package entity

import (
	"github.com/samdwyer/dungeonkey/internal/gamedata"
	"github.com/samdwyer/dungeonkey/internal/world"
)

// Hero is one player-controlled character.
type Hero struct {
	Name        string         // Unique within a party
	Position    world.Position // Current cell
	Anchor      world.Position // Last cell a backtracking move is measured against
	Health      int            // 0..MaxHealth; 0 means dead
	MaxHealth   int            // Health cap restored by healing cells
	HealCharges int            // Potions left
	hasKey      bool
}

// NewHero creates a hero standing on start with its anchor on the same cell.
func NewHero(name string, start world.Position, def *gamedata.HeroDef) *Hero {
	return &Hero{
		Name:        name,
		Position:    start,
		Anchor:      start,
		Health:      def.MaxHealth,
		MaxHealth:   def.MaxHealth,
		HealCharges: def.HealCharges,
	}
}

// GetName returns the hero's name.
func (h *Hero) GetName() string { return h.Name }

// GetHealth returns current health.
func (h *Hero) GetHealth() int { return h.Health }

// TakeDamage removes one point of health. It never reports death; callers
// decide when to check IsDead.
func (h *Hero) TakeDamage() {
	if h.Health > 0 {
		h.Health--
	}
}

// UseHealCharge spends a potion for one point of health. It fails without
// changing anything when no charges remain or the hero is at full health.
func (h *Hero) UseHealCharge() bool {
	if h.HealCharges == 0 || h.Health >= h.MaxHealth {
		return false
	}
	h.HealCharges--
	h.Health++
	return true
}

// HealToFull restores health to the cap.
func (h *Hero) HealToFull() {
	h.Health = h.MaxHealth
}

// IsAlive reports whether the hero can survive another hazard hit.
// A hero on exactly 1 health is not alive in this sense: a wall or fire hit
// kills it outright instead of dealing damage.
func (h *Hero) IsAlive() bool { return h.Health > 1 }

// IsDead reports whether the hero has no health left.
func (h *Hero) IsDead() bool { return h.Health <= 0 }

// GrantKey gives the hero the key.
func (h *Hero) GrantKey() { h.hasKey = true }

// HasKey reports whether the hero carries the key.
func (h *Hero) HasKey() bool { return h.hasKey }

// Restore sets the saved fields of a loaded hero.
func (h *Hero) Restore(position, anchor world.Position, health, healCharges int, hasKey bool) {
	h.Position = position
	h.Anchor = anchor
	h.Health = min(max(health, 0), h.MaxHealth)
	h.HealCharges = max(healCharges, 0)
	h.hasKey = hasKey
}
