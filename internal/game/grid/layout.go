package grid

// TerrainKind categorizes a special tile.
type TerrainKind string

const (
	TerrainForest TerrainKind = "FOREST"
	TerrainHill   TerrainKind = "HILL"
	TerrainSwamp  TerrainKind = "SWAMP"
	TerrainRuins  TerrainKind = "RUINS"
)

// SpecialTile marks a cell carrying terrain.
type SpecialTile struct {
	Pos     Position    `json:"pos"`
	Terrain TerrainKind `json:"terrain"`
}

// Layout is the static geometry of a battlefield: dimensions, blocked
// cells and terrain cells. A Layout is immutable once a battle starts.
type Layout struct {
	Rows    int           `json:"rows"`
	Cols    int           `json:"cols"`
	Blocked []Position    `json:"blocked,omitempty"`
	Special []SpecialTile `json:"special,omitempty"`
}

// InBounds reports whether pos lies on the grid.
func (l Layout) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < l.Rows && pos.Col >= 0 && pos.Col < l.Cols
}

// IsBlocked reports whether pos is a blocked cell.
func (l Layout) IsBlocked(pos Position) bool {
	for _, b := range l.Blocked {
		if b == pos {
			return true
		}
	}
	return false
}

// TerrainAt returns the terrain kind at pos, or "" when the cell is plain.
func (l Layout) TerrainAt(pos Position) TerrainKind {
	for _, s := range l.Special {
		if s.Pos == pos {
			return s.Terrain
		}
	}
	return ""
}

// MiddleColumns returns the shared middle column(s): one column for odd
// column counts, the two center columns for even counts. These columns
// belong to both deployment zones and gate melee castle attacks.
func (l Layout) MiddleColumns() []int {
	mid := l.Cols / 2
	if l.Cols%2 == 1 {
		return []int{mid}
	}
	return []int{mid - 1, mid}
}

// IsMiddleColumn reports whether col is a contested middle column.
func (l Layout) IsMiddleColumn(col int) bool {
	for _, m := range l.MiddleColumns() {
		if m == col {
			return true
		}
	}
	return false
}
