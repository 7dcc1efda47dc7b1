package gamedata

import "fmt"

// HeroDef holds the starting stats every hero is created with.
type HeroDef struct {
	MaxHealth   int    `json:"maxHealth"`   // Health cap and starting health
	HealCharges int    `json:"healCharges"` // Healing potions carried at start
	Weapon      string `json:"weapon"`      // Used in attack narration
}

// HeroFile represents the structure of hero.json.
type HeroFile struct {
	Hero HeroDef `json:"hero"`
}

// Validate rejects heroes that would start dead or with negative potions.
func (f *HeroFile) Validate() error {
	if f.Hero.MaxHealth < 1 {
		return fmt.Errorf("max health %d must be at least 1", f.Hero.MaxHealth)
	}
	if f.Hero.HealCharges < 0 {
		return fmt.Errorf("heal charges %d must not be negative", f.Hero.HealCharges)
	}
	return nil
}

// LoadHero loads hero defaults from the embedded hero.json file.
func LoadHero() (*HeroDef, error) {
	file, err := Load[HeroFile]("hero.json")
	if err != nil {
		return nil, err
	}
	return &file.Hero, nil
}

// MustLoadHero loads hero defaults, panicking on error.
func MustLoadHero() *HeroDef {
	def, err := LoadHero()
	if err != nil {
		panic(err)
	}
	return def
}
