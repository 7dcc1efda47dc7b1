package game

import (
	"context"
	"testing"

	"github.com/samdwyer/dungeonkey/internal/world"
)

func TestMoveUpdatesAnchorBetweenPlainCells(t *testing.T) {
	h := newHarness(t, openLayout())
	hero := h.addHero(t, "Ada", world.Pos(0, 3), world.Pos(0, 3))
	ctx := context.Background()

	if got := h.game.resolveMove(ctx, hero, world.Up); got != world.OutcomeSuccess {
		t.Fatalf("first move outcome = %v, want success", got)
	}
	if hero.Position != world.Pos(0, 2) || hero.Anchor != world.Pos(0, 3) {
		t.Errorf("after first move: pos %v anchor %v, want (0, 2) (0, 3)", hero.Position, hero.Anchor)
	}

	h.game.resolveMove(ctx, hero, world.Up)
	if hero.Position != world.Pos(0, 1) || hero.Anchor != world.Pos(0, 2) {
		t.Errorf("after second move: pos %v anchor %v, want (0, 1) (0, 2)", hero.Position, hero.Anchor)
	}
	if hero.Health != 5 {
		t.Errorf("health = %d, want 5", hero.Health)
	}
}

func TestMoveAnchorCellsAreSticky(t *testing.T) {
	h := newHarness(t, openLayout())
	hero := h.addHero(t, "Ada", world.Pos(2, 2), world.Pos(1, 2))
	ctx := context.Background()

	// Into the key anchor at (2,1): anchor unchanged.
	h.game.resolveMove(ctx, hero, world.Up)
	if hero.Position != world.Pos(2, 1) || hero.Anchor != world.Pos(1, 2) {
		t.Errorf("into anchor: pos %v anchor %v, want (2, 1) (1, 2)", hero.Position, hero.Anchor)
	}

	// Out of it to (3,1): still unchanged.
	h.game.resolveMove(ctx, hero, world.Right)
	if hero.Position != world.Pos(3, 1) || hero.Anchor != world.Pos(1, 2) {
		t.Errorf("out of anchor: pos %v anchor %v, want (3, 1) (1, 2)", hero.Position, hero.Anchor)
	}

	// Plain to plain again advances it.
	h.game.resolveMove(ctx, hero, world.Right)
	if hero.Anchor != world.Pos(3, 1) {
		t.Errorf("plain move: anchor %v, want (3, 1)", hero.Anchor)
	}
}

func TestMoveOntoAnchorFlees(t *testing.T) {
	h := newHarness(t, openLayout())
	hero := h.addHero(t, "Ada", world.Pos(1, 3), world.Pos(0, 3))
	hero.GrantKey()
	h.game.maze.TakeKey()

	h.game.resolveMove(context.Background(), hero, world.Left)

	if h.game.party.Contains(hero) {
		t.Fatal("hero stepping onto its anchor should be removed")
	}
	key, present := h.game.maze.KeyState()
	if key != world.Pos(0, 3) || !present {
		t.Errorf("KeyState() = %v, %v, want (0, 3), true", key, present)
	}
	if !h.said("got scared") {
		t.Error("expected flee narration")
	}
}

func TestMoveIntoWallWhileHealthy(t *testing.T) {
	h := newHarness(t, openLayout())
	hero := h.addHero(t, "Ada", world.Pos(0, 3), world.Pos(0, 3))
	hero.Health = 2

	if got := h.game.resolveMove(context.Background(), hero, world.Left); got != world.OutcomeOutOfBounds {
		t.Fatalf("outcome = %v, want out_of_bounds", got)
	}
	if hero.Health != 1 || hero.Position != world.Pos(0, 3) {
		t.Errorf("health %d pos %v, want 1 (0, 3)", hero.Health, hero.Position)
	}
	if !h.game.party.Contains(hero) {
		t.Error("wall hit should not remove a healthy hero")
	}
	if !h.said("received damage from hitting a wall. Health left: 1") {
		t.Error("expected wall damage narration")
	}
}

func TestMoveIntoWallOnLastHealth(t *testing.T) {
	h := newHarness(t, openLayout())
	hero := h.addHero(t, "Ada", world.Pos(4, 0), world.Pos(3, 0))
	hero.Health = 1

	// (5,0) is a wall in the open layout.
	h.game.resolveMove(context.Background(), hero, world.Right)

	if h.game.party.Contains(hero) {
		t.Error("hero on 1 health hitting a wall should be removed")
	}
	if hero.Health != 1 {
		t.Errorf("no damage should be applied, health = %d", hero.Health)
	}
}

func TestMoveIntoBossWithoutKey(t *testing.T) {
	h := newHarness(t, openLayout())
	hero := h.addHero(t, "Ada", world.Pos(7, 1), world.Pos(7, 2))

	if got := h.game.resolveMove(context.Background(), hero, world.Up); got != world.OutcomeBoss {
		t.Fatalf("outcome = %v, want boss", got)
	}
	if h.game.party.Contains(hero) {
		t.Error("hero without the key should die at the boss")
	}
	if h.game.State() != StatePlaying {
		t.Errorf("State() = %v, want playing", h.game.State())
	}
	if !h.said("killed by the golem") {
		t.Error("expected boss narration")
	}
}

func TestMoveIntoBossWithKeyWins(t *testing.T) {
	h := newHarness(t, openLayout())
	hero := h.addHero(t, "Ada", world.Pos(6, 0), world.Pos(6, 1))
	hero.GrantKey()

	h.game.resolveMove(context.Background(), hero, world.Right)

	if h.game.State() != StateVictory {
		t.Fatalf("State() = %v, want victory", h.game.State())
	}
	if r := h.game.result(); r.Winner != "Ada" {
		t.Errorf("Winner = %q, want Ada", r.Winner)
	}
}

func TestMoveOntoHealingCell(t *testing.T) {
	h := newHarness(t, openLayout())
	hero := h.addHero(t, "Ada", world.Pos(5, 2), world.Pos(4, 2))
	hero.Health = 2

	if got := h.game.resolveMove(context.Background(), hero, world.Right); got != world.OutcomeHealing {
		t.Fatalf("outcome = %v, want healing", got)
	}
	if hero.Health != 5 {
		t.Errorf("health = %d, want 5", hero.Health)
	}
	if hero.Anchor != world.Pos(4, 2) {
		t.Errorf("anchor = %v, want unchanged (4, 2)", hero.Anchor)
	}
}

func TestMoveReportsKeyAndCompany(t *testing.T) {
	h := newHarness(t, openLayout())
	hero := h.addHero(t, "Ada", world.Pos(2, 2), world.Pos(2, 3))
	h.addHero(t, "Bo", world.Pos(2, 1), world.Pos(1, 1))

	h.game.resolveMove(context.Background(), hero, world.Up)

	if !h.said("A key is here.") {
		t.Error("expected key narration")
	}
	if !h.said("Another hero, Bo, is here.") {
		t.Error("expected co-location narration")
	}
	if hero.HasKey() {
		t.Error("walking over the key must not pick it up")
	}
}

func TestMoveIntoFire(t *testing.T) {
	tests := []struct {
		name        string
		health      int
		wantRemoved bool
		wantHealth  int
	}{
		{"healthy", 5, false, 4},
		{"last health", 1, true, 1},
	}

	for _, tt := range tests {
		h := newHarness(t, fireLayout())
		h.game.maze.ShuffleHazards(h.game.rng)
		hero := h.addHero(t, "Ada", world.Pos(0, 0), world.Pos(2, 0))
		hero.Health = tt.health
		hero.GrantKey()
		h.game.maze.TakeKey()

		if got := h.game.resolveMove(context.Background(), hero, world.Right); got != world.OutcomeBurned {
			t.Fatalf("%s: outcome = %v, want burned", tt.name, got)
		}
		if hero.Position != world.Pos(1, 0) {
			t.Errorf("%s: burned hero should still move, pos = %v", tt.name, hero.Position)
		}
		if removed := !h.game.party.Contains(hero); removed != tt.wantRemoved {
			t.Errorf("%s: removed = %v, want %v", tt.name, removed, tt.wantRemoved)
		}
		if hero.Health != tt.wantHealth {
			t.Errorf("%s: health = %d, want %d", tt.name, hero.Health, tt.wantHealth)
		}
		if tt.wantRemoved {
			if key, present := h.game.maze.KeyState(); key != world.Pos(1, 0) || !present {
				t.Errorf("%s: key = %v, %v, want dropped at (1, 0)", tt.name, key, present)
			}
		}
	}
}

func TestTakeKey(t *testing.T) {
	h := newHarness(t, openLayout())
	ada := h.addHero(t, "Ada", world.Pos(2, 1), world.Pos(2, 2))
	bo := h.addHero(t, "Bo", world.Pos(3, 3), world.Pos(2, 3))

	if h.game.takeKey(bo) {
		t.Error("takeKey away from the key should fail")
	}
	if !h.game.takeKey(ada) {
		t.Fatal("takeKey on the key cell should succeed")
	}
	if !ada.HasKey() {
		t.Error("hero should hold the key")
	}
	if _, present := h.game.maze.KeyState(); present {
		t.Error("key should be gone from the maze")
	}
	if h.game.takeKey(ada) {
		t.Error("taking the key twice should fail")
	}
}
