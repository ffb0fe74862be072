package engine

import (
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// CheckVictory evaluates the battle's terminal conditions in fixed
// priority: castle destruction, then the turn limit, then resource
// exhaustion. Returns nil while the battle is undecided.
func (e *Engine) CheckVictory(s *state.BattleState) *VictoryResult {
	// Castle destruction outranks every other condition.
	for _, id := range s.PlayerOrder {
		if s.Players[id].CastleHP <= 0 {
			return &VictoryResult{
				WinnerID:  s.OpponentOf(id),
				Condition: VictoryCastleDestroyed,
			}
		}
	}

	// Turn limit: higher remaining castle HP wins, ties go to the
	// first seat in battle order.
	if s.CurrentTurn >= e.cfg.TurnCap {
		best := s.PlayerOrder[0]
		for _, id := range s.PlayerOrder[1:] {
			if s.Players[id].CastleHP > s.Players[best].CastleHP {
				best = id
			}
		}
		return &VictoryResult{WinnerID: best, Condition: VictoryTurnLimit}
	}

	// Resource exhaustion applies only in single-device play. A match
	// where both seats are locally human represents a networked game,
	// where each client sees the remote opponent's resources lag.
	if e.singleDevice(s) {
		for _, id := range s.PlayerOrder {
			p := s.Players[id]
			if p.Type != state.PlayerHuman {
				continue
			}
			if len(p.Hand) == 0 && len(p.Deck) == 0 && len(s.CardsOwnedBy(id)) == 0 {
				return &VictoryResult{
					WinnerID:  s.OpponentOf(id),
					Condition: VictoryResourceExhaustion,
				}
			}
		}
	}

	return nil
}

func (e *Engine) singleDevice(s *state.BattleState) bool {
	humans := 0
	for _, id := range s.PlayerOrder {
		if s.Players[id].Type == state.PlayerHuman {
			humans++
		}
	}
	return humans <= 1
}
