package grid

import "fmt"

// Preset names accepted by LayoutForPreset and the game.grid_preset
// configuration key.
const (
	PresetStandard = "standard"
	PresetDuel     = "duel"
	PresetGrand    = "grand"
)

// LayoutForPreset returns the named battlefield geometry.
func LayoutForPreset(name string) (Layout, error) {
	switch name {
	case PresetStandard, "":
		return Layout{
			Rows: 5,
			Cols: 7,
			Special: []SpecialTile{
				{Pos: Position{Row: 0, Col: 3}, Terrain: TerrainHill},
				{Pos: Position{Row: 4, Col: 3}, Terrain: TerrainHill},
				{Pos: Position{Row: 2, Col: 1}, Terrain: TerrainForest},
				{Pos: Position{Row: 2, Col: 5}, Terrain: TerrainForest},
			},
		}, nil
	case PresetDuel:
		return Layout{Rows: 4, Cols: 5}, nil
	case PresetGrand:
		return Layout{
			Rows: 6,
			Cols: 9,
			Blocked: []Position{
				{Row: 2, Col: 4},
				{Row: 3, Col: 4},
			},
			Special: []SpecialTile{
				{Pos: Position{Row: 0, Col: 4}, Terrain: TerrainRuins},
				{Pos: Position{Row: 5, Col: 4}, Terrain: TerrainRuins},
				{Pos: Position{Row: 1, Col: 2}, Terrain: TerrainSwamp},
				{Pos: Position{Row: 4, Col: 6}, Terrain: TerrainSwamp},
			},
		}, nil
	default:
		return Layout{}, fmt.Errorf("unknown grid preset %q", name)
	}
}
