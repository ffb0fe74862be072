package grid

import "fmt"

// Position identifies a battlefield cell by zero-based row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Key returns the canonical "row,col" string used as a map key for
// zone-control tracking and serialization.
func (p Position) Key() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// ManhattanDistance returns the orthogonal step distance to other.
func (p Position) ManhattanDistance(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

// Adjacent reports whether other is orthogonally adjacent (no diagonals).
func (p Position) Adjacent(other Position) bool {
	return p.ManhattanDistance(other) == 1
}

// Neighbors returns the up/down/left/right neighbors without bounds
// checking; callers filter against a Layout.
func (p Position) Neighbors() [4]Position {
	return [4]Position{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
