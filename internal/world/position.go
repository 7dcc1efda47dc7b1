package world

import "fmt"

// Position is a grid cell; X grows to the right and Y grows downward.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is shorthand for building a Position.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the position one step in the given direction.
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

// String formats the position as "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Direction is a single-step offset.
type Direction struct {
	DX, DY int
}

var (
	Right = Direction{DX: 1, DY: 0}
	Left  = Direction{DX: -1, DY: 0}
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
)

// String returns the direction's command name.
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("(%+d, %+d)", d.DX, d.DY)
	}
}
