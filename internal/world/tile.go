// Package world provides the maze layout, hazard placement and move classification.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a passable floor tile.
	TileFloor Tile = '.'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// parseTile maps a layout character to a tile. Anything that is not a wall
// is treated as floor so layouts may mark cells with letters for readability.
func parseTile(ch rune) Tile {
	if ch == rune(TileWall) {
		return TileWall
	}
	return TileFloor
}

// Rune returns the tile's layout character.
func (t Tile) Rune() rune {
	return rune(t)
}
