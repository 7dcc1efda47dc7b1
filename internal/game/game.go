package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeonkey/internal/entity"
	"github.com/samdwyer/dungeonkey/internal/gamedata"
	"github.com/samdwyer/dungeonkey/internal/save"
	"github.com/samdwyer/dungeonkey/internal/telemetry"
	"github.com/samdwyer/dungeonkey/internal/world"
)

// Game owns the maze and the party and runs the round loop.
type Game struct {
	maze    *world.Maze
	party   *entity.Party
	heroDef *gamedata.HeroDef
	input   ActionSource
	store   save.Store
	rng     *rand.Rand
	log     logrus.FieldLogger
	tracer  trace.Tracer

	runID       string
	round       int
	pendingSave bool
	state       State
	winner      *entity.Hero
}

// Option customizes a Game.
type Option func(*Game)

// WithStore enables the save command.
func WithStore(store save.Store) Option {
	return func(g *Game) { g.store = store }
}

// WithRand sets the hazard random source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger sets the narration sink.
func WithLogger(log logrus.FieldLogger) Option {
	return func(g *Game) { g.log = log }
}

// WithTracer sets the tracer used for round and turn spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(g *Game) { g.tracer = tracer }
}

// New creates a game with an empty party.
func New(maze *world.Maze, heroDef *gamedata.HeroDef, input ActionSource, opts ...Option) *Game {
	g := &Game{
		maze:    maze,
		party:   entity.NewParty(),
		heroDef: heroDef,
		input:   input,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     logrus.StandardLogger(),
		tracer:  telemetry.Tracer("game"),
		runID:   save.NewRunID(),
		state:   StatePlaying,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Maze returns the game's maze.
func (g *Game) Maze() *world.Maze { return g.maze }

// Heroes returns the live heroes in turn order.
func (g *Game) Heroes() []*entity.Hero { return g.party.Snapshot() }

// RunID identifies this run across saves.
func (g *Game) RunID() string { return g.runID }

// State returns where the run stands.
func (g *Game) State() State { return g.state }

// AddHero adds a new hero on the start cell. Names are trimmed; blank and
// duplicate names are rejected.
func (g *Game) AddHero(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		g.log.WithField("event", "setup").Info("A hero needs a name.")
		return false
	}
	if !g.party.Add(entity.NewHero(name, g.maze.Start(), g.heroDef)) {
		g.narrate(nil, "setup").Infof("Hero %s was already added.", name)
		return false
	}
	g.narrate(nil, "setup").Infof("Hero %s joins the game and waits for it to start.", name)
	return true
}

// Snapshot captures the persisted part of the game.
func (g *Game) Snapshot() save.State {
	key, present := g.maze.KeyState()
	state := save.State{
		RunID:   g.runID,
		SavedAt: time.Now().UTC(),
		Heroes:  make([]save.HeroRecord, 0, g.party.Len()),
		Maze:    save.MazeRecord{KeyLocation: key, KeyPresent: present},
	}
	for _, h := range g.party.Heroes {
		state.Heroes = append(state.Heroes, save.HeroRecord{
			Name:        h.Name,
			Position:    h.Position,
			Anchor:      h.Anchor,
			Health:      h.Health,
			HealCharges: h.HealCharges,
			HasKey:      h.HasKey(),
		})
	}
	return state
}

// Restore replaces the party and key state with a saved game. The saved
// data is trusted as-is.
func (g *Game) Restore(state save.State) {
	g.party = entity.NewParty()
	for _, rec := range state.Heroes {
		h := entity.NewHero(rec.Name, g.maze.Start(), g.heroDef)
		h.Restore(rec.Position, rec.Anchor, rec.Health, rec.HealCharges, rec.HasKey)
		if g.party.Add(h) {
			g.narrate(h, "load").Infof("Name: %s, Position: %v, Anchor: %v, Health: %d, Healing potions: %d, Has key: %s",
				h.Name, h.Position, h.Anchor, h.Health, h.HealCharges, yesNo(h.HasKey()))
		}
	}
	g.maze.RestoreKey(state.Maze.KeyLocation, state.Maze.KeyPresent)
	if state.RunID != "" {
		g.runID = state.RunID
	}
}

// Run plays rounds until a hero wins, every hero is gone, or a player exits.
func (g *Game) Run(ctx context.Context) (Result, error) {
	for g.state == StatePlaying {
		if g.party.IsDefeated() {
			g.log.WithField("event", "defeat").Info("All heroes died. Game over.")
			g.state = StateDefeat
			break
		}
		if err := ctx.Err(); err != nil {
			return g.result(), err
		}
		if err := g.playRound(ctx); err != nil {
			return g.result(), err
		}
	}
	return g.result(), nil
}

func (g *Game) result() Result {
	r := Result{State: g.state, Rounds: g.round}
	if g.winner != nil {
		r.Winner = g.winner.Name
	}
	return r
}

// playRound redraws the hazards and gives every hero that was in the party
// when the round started one turn, then performs a requested save.
func (g *Game) playRound(ctx context.Context) error {
	g.round++
	ctx, span := g.tracer.Start(ctx, "game.round")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", g.runID),
		attribute.Int("round", g.round),
		attribute.Int("party_size", g.party.Len()),
	)

	hazards := g.maze.ShuffleHazards(g.rng)
	g.log.WithField("event", "hazards").Infof("Fires at positions: %v", hazards)
	g.logMap()
	g.pendingSave = false

	for _, hero := range g.party.Snapshot() {
		if !g.party.Contains(hero) {
			continue
		}
		if hero.IsDead() {
			g.narrate(hero, "death").Infof("Hero %s dies.", hero.Name)
			g.removeHero(hero)
			continue
		}
		if err := g.playTurn(ctx, hero); err != nil {
			return err
		}
		if g.state != StatePlaying {
			span.SetAttributes(attribute.String("outcome", g.state.String()))
			return nil
		}
	}

	if g.pendingSave {
		g.saveGame(ctx)
	}
	return nil
}

// playTurn prompts the hero until it performs an action that ends its turn.
func (g *Game) playTurn(ctx context.Context, hero *entity.Hero) error {
	ctx, span := g.tracer.Start(ctx, "game.turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("hero", hero.Name),
		attribute.Int("health", hero.Health),
	)

	g.narrate(hero, "turn").Infof("The hero %s makes a move. Type 'help' to see the list of available commands.", hero.Name)
	prompts := 0
	for {
		token, err := g.input.NextAction(ctx)
		if err != nil {
			return g.inputFailed(err)
		}
		prompts++

		done, err := g.dispatch(ctx, hero, token)
		if err != nil {
			return g.inputFailed(err)
		}
		if done {
			span.SetAttributes(attribute.Int("prompts", prompts))
			return nil
		}
	}
}

// inputFailed turns the end of input into an exit and passes anything else on.
func (g *Game) inputFailed(err error) error {
	if errors.Is(err, io.EOF) {
		g.log.WithField("event", "exit").Info("Input closed. Game was closed.")
		g.state = StateExit
		return nil
	}
	return fmt.Errorf("read action: %w", err)
}

// dispatch performs one turn-menu command and reports whether it ended the turn.
func (g *Game) dispatch(ctx context.Context, hero *entity.Hero, token string) (bool, error) {
	switch ParseAction(token) {
	case ActionHelp:
		g.narrate(hero, "help").Info(turnHelp)
		return false, nil

	case ActionMove:
		return g.move(ctx, hero)

	case ActionHeal:
		if g.heal(hero) {
			return true, nil
		}
		g.narrate(hero, "again").Infof("The hero %s makes a move again.", hero.Name)
		return false, nil

	case ActionAttack:
		done, err := g.attack(ctx, hero)
		if err != nil || done {
			return done, err
		}
		g.narrate(hero, "again").Infof("The hero %s makes a move again.", hero.Name)
		return false, nil

	case ActionTakeKey:
		return g.takeKey(hero), nil

	case ActionSave:
		g.requestSave(hero)
		return false, nil

	case ActionExit:
		g.log.WithField("event", "exit").Info("Game was closed.")
		g.state = StateExit
		return true, nil

	default:
		g.narrate(hero, "unknown").Info("Unknown command. Please try again or type 'help' to see the list of available commands.")
		return false, nil
	}
}

// heal spends a potion. Only success ends the turn.
func (g *Game) heal(hero *entity.Hero) bool {
	if hero.HealCharges == 0 {
		g.narrate(hero, "heal").Infof("Hero %s doesn't have a healing potion. Use another action.", hero.Name)
		return false
	}
	if !hero.UseHealCharge() {
		g.narrate(hero, "heal").Infof("Hero %s has maximum health. Healing isn't necessary. Use another command.", hero.Name)
		return false
	}
	g.narrate(hero, "heal").Infof("Hero %s has used a healing potion. Their health is now %d.", hero.Name, hero.Health)
	return true
}

// requestSave schedules a save for the end of the round.
func (g *Game) requestSave(hero *entity.Hero) {
	switch {
	case g.store == nil:
		g.narrate(hero, "save").Info("Saving is not available in this game.")
	case g.pendingSave:
		g.narrate(hero, "save").Info("The save will be made after the moves of all heroes. There is no need to repeat this command.")
	default:
		g.pendingSave = true
		g.narrate(hero, "save").Info("The save will be made after the moves of all heroes.")
	}
	g.narrate(hero, "again").Infof("The hero %s makes a move again.", hero.Name)
}

// saveGame writes the game to the store. A failed save is reported and the
// run continues.
func (g *Game) saveGame(ctx context.Context) {
	ctx, span := g.tracer.Start(ctx, "store.save")
	defer span.End()

	state := g.Snapshot()
	span.SetAttributes(attribute.Int("heroes", len(state.Heroes)))
	if err := g.store.Save(ctx, state); err != nil {
		span.RecordError(err)
		g.log.WithError(err).WithField("event", "save").Error("Save failed.")
		return
	}
	g.pendingSave = false
	g.log.WithField("event", "save").Info("Save was successful.")
}

// logMap writes the grid at debug level with heroes marked 'H'.
func (g *Game) logMap() {
	marks := make(map[world.Position]rune, g.party.Len())
	for _, h := range g.party.Heroes {
		marks[h.Position] = 'H'
	}
	for _, row := range g.maze.Render(marks) {
		g.log.WithField("event", "map").Debug(row)
	}
}

// removeHero drops the hero's key where it stands and takes it out of the party.
func (g *Game) removeHero(hero *entity.Hero) {
	if hero.HasKey() {
		g.maze.DropKey(hero.Position)
		g.narrate(hero, "key").Infof("Key dropped at %v.", hero.Position)
	}
	g.party.Remove(hero)
}

// narrate returns a log entry tagged with the hero and event kind.
func (g *Game) narrate(hero *entity.Hero, event string) *logrus.Entry {
	fields := logrus.Fields{"event": event}
	if hero != nil {
		fields["hero"] = hero.Name
	}
	return g.log.WithFields(fields)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
