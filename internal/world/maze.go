package world

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/samdwyer/dungeonkey/internal/gamedata"
)

// anchorCount is the number of anchor cells a layout must define.
const anchorCount = 3

// Outcome classifies a proposed move.
type Outcome int

const (
	// OutcomeOutOfBounds - the target is outside the grid or a wall
	OutcomeOutOfBounds Outcome = iota
	// OutcomeBoss - the target is the boss lair
	OutcomeBoss
	// OutcomeBurned - the target is currently on fire
	OutcomeBurned
	// OutcomeHealing - the target is a healing anchor
	OutcomeHealing
	// OutcomeSuccess - an ordinary passable cell
	OutcomeSuccess
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOutOfBounds:
		return "out_of_bounds"
	case OutcomeBoss:
		return "boss"
	case OutcomeBurned:
		return "burned"
	case OutcomeHealing:
		return "healing"
	case OutcomeSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Moved reports whether the outcome places the hero on the target cell.
func (o Outcome) Moved() bool {
	return o == OutcomeBurned || o == OutcomeHealing || o == OutcomeSuccess
}

// Maze holds the static topology plus the per-round hazards and the key.
// Callers only see it through its methods so the hazard and key invariants
// stay enforceable.
type Maze struct {
	width, height int
	tiles         [][]Tile
	start         Position
	boss          Position
	bossName      string
	anchors       []Position // anchors[0] is the key spawn
	hazardLimit   int
	candidates    []Position // passable cells eligible to burn, row-major
	hazards       []Position
	key           Position
	keyPresent    bool
}

// NewMaze builds a maze from a layout definition. The key starts on the
// first anchor.
func NewMaze(def *gamedata.MazeDef) (*Maze, error) {
	if def == nil {
		return nil, errors.New("nil maze definition")
	}
	height := def.Height()
	width := def.Width()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("maze %q has no cells", def.ID)
	}

	tiles := make([][]Tile, height)
	for y, row := range def.Rows {
		if len(row) != width {
			return nil, fmt.Errorf("maze %q row %d has width %d, want %d", def.ID, y, len(row), width)
		}
		tiles[y] = make([]Tile, width)
		for x, ch := range []rune(row) {
			tiles[y][x] = parseTile(ch)
		}
	}

	m := &Maze{
		width:       width,
		height:      height,
		tiles:       tiles,
		start:       Pos(def.Start.X, def.Start.Y),
		boss:        Pos(def.Boss.X, def.Boss.Y),
		bossName:    def.BossName,
		hazardLimit: def.HazardCount,
	}
	if m.bossName == "" {
		m.bossName = "the boss"
	}

	if !m.InBounds(m.boss) {
		return nil, fmt.Errorf("maze %q boss %v is outside the grid", def.ID, m.boss)
	}
	if !m.passable(m.start) {
		return nil, fmt.Errorf("maze %q start %v is not passable", def.ID, m.start)
	}
	if len(def.Anchors) != anchorCount {
		return nil, fmt.Errorf("maze %q has %d anchors, want %d", def.ID, len(def.Anchors), anchorCount)
	}
	for _, a := range def.Anchors {
		p := Pos(a.X, a.Y)
		if !m.passable(p) {
			return nil, fmt.Errorf("maze %q anchor %v is not passable", def.ID, p)
		}
		if p == m.boss || slices.Contains(m.anchors, p) {
			return nil, fmt.Errorf("maze %q anchor %v overlaps another special cell", def.ID, p)
		}
		m.anchors = append(m.anchors, p)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := Pos(x, y)
			if m.passable(p) && p != m.boss && !m.IsAnchor(p) {
				m.candidates = append(m.candidates, p)
			}
		}
	}

	m.key = m.anchors[0]
	m.keyPresent = true
	return m, nil
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// Start returns the cell new heroes appear on.
func (m *Maze) Start() Position { return m.start }

// Boss returns the boss lair.
func (m *Maze) Boss() Position { return m.boss }

// BossName returns the boss's display name.
func (m *Maze) BossName() string { return m.bossName }

// InBounds returns true if the position lies inside the grid.
func (m *Maze) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

func (m *Maze) passable(p Position) bool {
	return m.InBounds(p) && m.tiles[p.Y][p.X].IsPassable()
}

// IsAnchor returns true for the key spawn and the healing cells.
func (m *Maze) IsAnchor(p Position) bool {
	return slices.Contains(m.anchors, p)
}

// isHealing returns true for every anchor except the key spawn.
func (m *Maze) isHealing(p Position) bool {
	return slices.Contains(m.anchors[1:], p)
}

// ShuffleHazards draws a fresh set of fire cells without replacement from
// the passable cells that are neither anchors nor the boss lair, and returns
// a copy of the new set.
func (m *Maze) ShuffleHazards(rng *rand.Rand) []Position {
	n := min(m.hazardLimit, len(m.candidates))
	m.hazards = m.hazards[:0]
	for _, idx := range rng.Perm(len(m.candidates))[:n] {
		m.hazards = append(m.hazards, m.candidates[idx])
	}
	return m.Hazards()
}

// Hazards returns a copy of the current fire cells.
func (m *Maze) Hazards() []Position {
	return slices.Clone(m.hazards)
}

// ClassifyMove reports what happens when a hero at from steps in dir.
// The boss lair is checked before passability, and a wall is treated the
// same as leaving the grid.
func (m *Maze) ClassifyMove(from Position, dir Direction) Outcome {
	target := from.Add(dir)
	switch {
	case !m.InBounds(target):
		return OutcomeOutOfBounds
	case target == m.boss:
		return OutcomeBoss
	case !m.passable(target):
		return OutcomeOutOfBounds
	case slices.Contains(m.hazards, target):
		return OutcomeBurned
	case m.isHealing(target):
		return OutcomeHealing
	default:
		return OutcomeSuccess
	}
}

// KeyState returns where the key lies and whether it is on the ground.
func (m *Maze) KeyState() (Position, bool) {
	return m.key, m.keyPresent
}

// DropKey leaves the key on the ground at p.
func (m *Maze) DropKey(p Position) {
	m.key = p
	m.keyPresent = true
}

// TakeKey removes the key from the ground.
func (m *Maze) TakeKey() {
	m.keyPresent = false
}

// RestoreKey sets the key state from a saved game.
func (m *Maze) RestoreKey(p Position, present bool) {
	m.key = p
	m.keyPresent = present
}

// Render draws the grid one string per row. Special cells are marked 'B'
// for the boss, 'A' for anchors, 'K' for the key on the ground and '*' for
// fire; marks override everything else.
func (m *Maze) Render(marks map[Position]rune) []string {
	rows := make([]string, m.height)
	var b strings.Builder
	for y := 0; y < m.height; y++ {
		b.Reset()
		for x := 0; x < m.width; x++ {
			b.WriteRune(m.glyph(Pos(x, y), marks))
		}
		rows[y] = b.String()
	}
	return rows
}

func (m *Maze) glyph(p Position, marks map[Position]rune) rune {
	if r, ok := marks[p]; ok {
		return r
	}
	switch {
	case p == m.boss:
		return 'B'
	case m.keyPresent && p == m.key:
		return 'K'
	case m.IsAnchor(p):
		return 'A'
	case slices.Contains(m.hazards, p):
		return '*'
	default:
		return m.tiles[p.Y][p.X].Rune()
	}
}
