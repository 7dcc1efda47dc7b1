package entity

import (
	"slices"

	"github.com/samdwyer/dungeonkey/internal/world"
)

// Party is the ordered roster of heroes still in the run. Order is turn order.
type Party struct {
	Heroes []*Hero
}

// NewParty creates an empty party.
func NewParty() *Party {
	return &Party{Heroes: make([]*Hero, 0, 4)}
}

// Add appends a hero unless one with the same name is already present.
func (p *Party) Add(h *Hero) bool {
	if p.ByName(h.Name) != nil {
		return false
	}
	p.Heroes = append(p.Heroes, h)
	return true
}

// Remove deletes the hero from the roster. It returns false if the hero was
// not a member.
func (p *Party) Remove(h *Hero) bool {
	i := slices.Index(p.Heroes, h)
	if i < 0 {
		return false
	}
	p.Heroes = slices.Delete(p.Heroes, i, i+1)
	return true
}

// Contains reports whether the hero is still in the roster.
func (p *Party) Contains(h *Hero) bool {
	return slices.Contains(p.Heroes, h)
}

// Snapshot returns a copy of the roster that stays stable while the live
// roster is mutated.
func (p *Party) Snapshot() []*Hero {
	return slices.Clone(p.Heroes)
}

// Len returns the number of heroes in the party.
func (p *Party) Len() int { return len(p.Heroes) }

// IsDefeated returns true once every hero is gone.
func (p *Party) IsDefeated() bool { return len(p.Heroes) == 0 }

// ByName returns the hero with the given name, or nil.
func (p *Party) ByName(name string) *Hero {
	for _, h := range p.Heroes {
		if h.Name == name {
			return h
		}
	}
	return nil
}

// At returns the heroes other than except standing on pos, in turn order.
func (p *Party) At(pos world.Position, except *Hero) []*Hero {
	var here []*Hero
	for _, h := range p.Heroes {
		if h != except && h.Position == pos {
			here = append(here, h)
		}
	}
	return here
}
