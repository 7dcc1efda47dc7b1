package game

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/samdwyer/dungeonkey/internal/entity"
	"github.com/samdwyer/dungeonkey/internal/gamedata"
	"github.com/samdwyer/dungeonkey/internal/save"
	"github.com/samdwyer/dungeonkey/internal/telemetry"
	"github.com/samdwyer/dungeonkey/internal/world"
)

// scriptedInput replays a fixed list of tokens, then reports io.EOF.
type scriptedInput struct {
	tokens []string
	read   int
}

func script(tokens ...string) *scriptedInput {
	return &scriptedInput{tokens: tokens}
}

func (s *scriptedInput) NextAction(ctx context.Context) (string, error) {
	if s.read >= len(s.tokens) {
		return "", io.EOF
	}
	token := s.tokens[s.read]
	s.read++
	return token, nil
}

func (s *scriptedInput) remaining() int {
	return len(s.tokens) - s.read
}

// memoryStore is an in-memory save.Store that counts saves.
type memoryStore struct {
	state   *save.State
	saves   int
	deletes int
	saveErr error // returned by Save when set
}

func (m *memoryStore) Exists(ctx context.Context) (bool, error) { return m.state != nil, nil }

func (m *memoryStore) Load(ctx context.Context) (save.State, error) {
	if m.state == nil {
		return save.State{}, save.ErrNoSave
	}
	return *m.state, nil
}

func (m *memoryStore) Save(ctx context.Context, state save.State) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.state = &state
	m.saves++
	return nil
}

func (m *memoryStore) Delete(ctx context.Context) error {
	m.state = nil
	m.deletes++
	return nil
}

var testHeroDef = &gamedata.HeroDef{MaxHealth: 5, HealCharges: 3, Weapon: "sword"}

// openLayout has no fire, one wall at (5,0), the boss at (7,0), the key on
// (2,1) and healing cells at (6,2) and (4,0).
func openLayout() *gamedata.MazeDef {
	return &gamedata.MazeDef{
		ID: "open",
		Rows: []string{
			".....#..",
			"........",
			"........",
			"........",
		},
		Start:       gamedata.CellDef{X: 0, Y: 3},
		Boss:        gamedata.CellDef{X: 7, Y: 0},
		BossName:    "the golem",
		Anchors:     []gamedata.CellDef{{X: 2, Y: 1}, {X: 6, Y: 2}, {X: 4, Y: 0}},
		HazardCount: 0,
	}
}

// fireLayout is a single corridor where (0,0) and (1,0) are the only cells
// that can burn, so with four hazards both always do.
func fireLayout() *gamedata.MazeDef {
	return &gamedata.MazeDef{
		ID:          "fire",
		Rows:        []string{".....", "#####"},
		Start:       gamedata.CellDef{X: 0, Y: 0},
		Boss:        gamedata.CellDef{X: 4, Y: 1},
		Anchors:     []gamedata.CellDef{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}},
		HazardCount: 4,
	}
}

type harness struct {
	game  *Game
	input *scriptedInput
	store *memoryStore
	hook  *test.Hook
}

func newHarness(t *testing.T, def *gamedata.MazeDef, tokens ...string) *harness {
	t.Helper()
	maze, err := world.NewMaze(def)
	if err != nil {
		t.Fatalf("NewMaze() error = %v", err)
	}
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	h := &harness{input: script(tokens...), store: &memoryStore{}, hook: hook}
	h.game = New(maze, testHeroDef, h.input,
		WithStore(h.store),
		WithRand(rand.New(rand.NewSource(7))),
		WithLogger(logger),
		WithTracer(telemetry.NoopTracer()),
	)
	return h
}

// addHero places a named hero at pos with its anchor on anchor.
func (h *harness) addHero(t *testing.T, name string, pos, anchor world.Position) *entity.Hero {
	t.Helper()
	if !h.game.AddHero(name) {
		t.Fatalf("AddHero(%q) failed", name)
	}
	hero := h.game.party.ByName(name)
	hero.Position = pos
	hero.Anchor = anchor
	return hero
}

// said reports whether any narration line contains fragment.
func (h *harness) said(fragment string) bool {
	for _, e := range h.hook.AllEntries() {
		if strings.Contains(e.Message, fragment) {
			return true
		}
	}
	return false
}
