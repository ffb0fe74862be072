package options

import (
	"sort"

	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// CellScore is the positional heuristic used to pre-rank deployment
// cells and to score move targets: center control, flank bonuses and
// terrain value.
func CellScore(s *state.BattleState, playerID string, pos grid.Position) float64 {
	score := 0.0

	// Center control: closeness to the contested middle column.
	mid := float64(s.Layout.Cols-1) / 2
	colDist := float64(pos.Col) - mid
	if colDist < 0 {
		colDist = -colDist
	}
	score += (mid - colDist) * 2

	// Middle rows hold the board better than the rim.
	rowMid := float64(s.Layout.Rows-1) / 2
	rowDist := float64(pos.Row) - rowMid
	if rowDist < 0 {
		rowDist = -rowDist
	}
	score += (rowMid - rowDist)

	// Flank columns carry combat modifiers worth holding.
	if s.Layout.FlankOf(pos.Col) != grid.FlankField {
		score += 1.5
	}

	if terrain := s.TerrainEffectAt(pos); terrain != nil {
		score += (terrain.AttackMod - 1) * 10
		score += (terrain.DefenseMod - 1) * 10
	}

	// Cells adjacent to allies benefit from auras.
	for _, n := range pos.Neighbors() {
		if ally := s.CardAt(n); ally != nil && ally.OwnerID == playerID {
			score += 0.5
		}
	}

	return score
}

// RankCells sorts cells by descending positional score. Ties break on
// row-major order so ranking is deterministic.
func RankCells(s *state.BattleState, playerID string, cells []grid.Position) []grid.Position {
	ranked := append([]grid.Position(nil), cells...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return CellScore(s, playerID, ranked[i]) > CellScore(s, playerID, ranked[j])
	})
	return ranked
}
