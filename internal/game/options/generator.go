// Package options enumerates the legal actions available to a player
// in a battle state, and fabricates candidate cards for AI seats. All
// enumeration is deterministic given the state; fabrication is
// deterministic given the injected random source.
package options

import (
	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// Mode is the AI's discretized strategic posture. The option generator
// only uses it to bias fabricated cards; legality never depends on it.
type Mode string

const (
	ModeAggressive   Mode = "AGGRESSIVE"
	ModeDefensive    Mode = "DEFENSIVE"
	ModeAdaptive     Mode = "ADAPTIVE"
	ModeDesperate    Mode = "DESPERATE"
	ModeExperimental Mode = "EXPERIMENTAL"
)

// maxDeployCells caps deployment branching: when more cells are legal,
// only the top-ranked cells by positional heuristic are kept.
const maxDeployCells = 12

// LegalActions produces the exhaustive legal action set for playerID:
// one deploy per affordable candidate card and ranked empty zone cell,
// one attack per ready attacker and reachable enemy, castle strikes for
// eligible attackers, and every in-range move. candidates supplies the
// deployable cards (a hand, or AI-fabricated templates); entries also
// present in the player's hand deploy from the hand.
func LegalActions(s *state.BattleState, playerID string, candidates []state.Card) []engine.Action {
	var actions []engine.Action

	player, ok := s.Players[playerID]
	if !ok {
		return nil
	}

	cells := DeployCells(s, playerID)
	if len(cells) > maxDeployCells {
		cells = RankCells(s, playerID, cells)[:maxDeployCells]
	}

	for i := range candidates {
		card := candidates[i]
		if !engine.CanAfford(player, card) {
			continue
		}
		for _, cell := range cells {
			pos := cell
			a := engine.Action{
				Type:     engine.ActionDeploy,
				PlayerID: playerID,
				Target:   &pos,
			}
			if inHand(player, card.ID) {
				a.CardID = card.ID
			} else {
				generated := card
				a.GeneratedCard = &generated
			}
			actions = append(actions, a)
		}
	}

	opponentID := s.OpponentOf(playerID)
	enemies := s.CardsOwnedBy(opponentID)

	for _, attacker := range s.CardsOwnedBy(playerID) {
		if !attacker.HasAttacked {
			for _, enemy := range enemies {
				if engine.CanAttackTarget(attacker, enemy) {
					actions = append(actions, engine.Action{
						Type:         engine.ActionAttackCard,
						PlayerID:     playerID,
						CardID:       attacker.ID,
						TargetCardID: enemy.ID,
					})
				}
			}
			if engine.CanAttackCastle(s, attacker, opponentID) {
				actions = append(actions, engine.Action{
					Type:           engine.ActionAttackCastle,
					PlayerID:       playerID,
					CardID:         attacker.ID,
					TargetPlayerID: opponentID,
				})
			}
		}

		if !attacker.HasMoved {
			for _, pos := range moveTargets(s, attacker) {
				target := pos
				actions = append(actions, engine.Action{
					Type:     engine.ActionMove,
					PlayerID: playerID,
					CardID:   attacker.ID,
					Target:   &target,
				})
			}
		}
	}

	return actions
}

// DeployCells returns every legal deployment cell for playerID in
// row-major order.
func DeployCells(s *state.BattleState, playerID string) []grid.Position {
	var cells []grid.Position
	for r := 0; r < s.Layout.Rows; r++ {
		for c := 0; c < s.Layout.Cols; c++ {
			pos := grid.Position{Row: r, Col: c}
			if engine.CanDeployAt(s, playerID, pos) {
				cells = append(cells, pos)
			}
		}
	}
	return cells
}

// moveTargets enumerates the cells a card can legally move to, bounded
// by its movement budget.
func moveTargets(s *state.BattleState, card *state.BattleCard) []grid.Position {
	budget := card.MovementBudget()
	var targets []grid.Position
	for dr := -budget; dr <= budget; dr++ {
		for dc := -budget; dc <= budget; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			pos := grid.Position{Row: card.Position.Row + dr, Col: card.Position.Col + dc}
			if engine.CanMoveTo(s, card, pos) {
				targets = append(targets, pos)
			}
		}
	}
	return targets
}

func inHand(p *state.Player, cardID string) bool {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return true
		}
	}
	return false
}
