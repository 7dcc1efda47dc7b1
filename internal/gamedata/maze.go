package gamedata

import (
	"errors"
	"fmt"
)

// CellDef is a grid coordinate as written in the data files.
type CellDef struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MazeDef defines a fixed maze layout loaded from JSON.
//
// Rows are read top to bottom; '#' is a wall and '.' is floor. The first
// anchor is where the key spawns, the remaining anchors are healing cells.
type MazeDef struct {
	ID          string    `json:"id"`          // Unique identifier (e.g., "ember_keep")
	Name        string    `json:"name"`        // Display name
	Rows        []string  `json:"rows"`        // Tile rows, all the same width
	Start       CellDef   `json:"start"`       // Where new heroes appear
	Boss        CellDef   `json:"boss"`        // Boss lair; entering it ends the run one way or the other
	BossName    string    `json:"bossName"`    // Used in narration
	Anchors     []CellDef `json:"anchors"`     // Key spawn followed by healing cells
	HazardCount int       `json:"hazardCount"` // Fire cells drawn each round
}

// Width returns the number of columns in the layout.
func (m *MazeDef) Width() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

// Height returns the number of rows in the layout.
func (m *MazeDef) Height() int {
	return len(m.Rows)
}

// MazeFile represents the structure of maze.json.
type MazeFile struct {
	Maze MazeDef `json:"maze"`
}

// Validate checks the layout is a non-empty rectangle.
func (f *MazeFile) Validate() error {
	m := &f.Maze
	if m.Height() == 0 || m.Width() == 0 {
		return errors.New("maze has no rows")
	}
	for y, row := range m.Rows {
		if len(row) != m.Width() {
			return fmt.Errorf("row %d has width %d, want %d", y, len(row), m.Width())
		}
	}
	if m.HazardCount < 0 {
		return fmt.Errorf("negative hazard count %d", m.HazardCount)
	}
	return nil
}

// LoadMaze loads the maze layout from the embedded maze.json file.
func LoadMaze() (*MazeDef, error) {
	file, err := Load[MazeFile]("maze.json")
	if err != nil {
		return nil, err
	}
	return &file.Maze, nil
}

// MustLoadMaze loads the maze layout, panicking on error.
func MustLoadMaze() *MazeDef {
	def, err := LoadMaze()
	if err != nil {
		panic(err)
	}
	return def
}
