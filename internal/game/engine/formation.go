package engine

import (
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// Formation is a board-shape-derived combat multiplier.
type Formation string

const (
	FormationVanguard   Formation = "VANGUARD"
	FormationArcherLine Formation = "ARCHER_LINE"
	FormationPhalanx    Formation = "PHALANX"
	FormationSkirmish   Formation = "SKIRMISH"
)

// FormationModifiers are the stat multipliers a formation grants.
type FormationModifiers struct {
	Attack  float64
	Defense float64
	Speed   float64
}

var formationModifiers = map[Formation]FormationModifiers{
	FormationVanguard:   {Attack: 1.20, Defense: 1.00, Speed: 1.00},
	FormationArcherLine: {Attack: 1.15, Defense: 0.90, Speed: 1.00},
	FormationPhalanx:    {Attack: 1.00, Defense: 1.30, Speed: 0.90},
	FormationSkirmish:   {Attack: 1.00, Defense: 1.00, Speed: 1.05},
}

// Modifiers returns the stat multipliers for the formation.
func (f Formation) Modifiers() FormationModifiers {
	if m, ok := formationModifiers[f]; ok {
		return m
	}
	return formationModifiers[FormationSkirmish]
}

// phalanxFillRatio is the share of a row's columns that must hold
// allied cards for the row to count as a phalanx line.
const phalanxFillRatio = 0.6

// FormationFor classifies the board shape for one player's army. Rules
// are checked in fixed priority and only the first match applies:
// Vanguard (2+ allies in the front row), Archer-Line (2+ allies in the
// back row), Phalanx (any row at least 60% filled with allies), then
// the Skirmish default.
func FormationFor(s *state.BattleState, playerID string) Formation {
	frontRow := 0
	backRow := s.Layout.Rows - 1

	rowCounts := make([]int, s.Layout.Rows)
	for r, row := range s.Battlefield {
		for _, card := range row {
			if card != nil && card.OwnerID == playerID {
				rowCounts[r]++
			}
		}
	}

	if rowCounts[frontRow] >= 2 {
		return FormationVanguard
	}
	if rowCounts[backRow] >= 2 {
		return FormationArcherLine
	}
	threshold := int(float64(s.Layout.Cols) * phalanxFillRatio)
	if threshold < 1 {
		threshold = 1
	}
	for _, count := range rowCounts {
		if count >= threshold {
			return FormationPhalanx
		}
	}
	return FormationSkirmish
}
