package engine

import (
	"github.com/chainclash/clash-server-go/internal/game/abilities"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// EndTurn performs end-of-turn upkeep for playerID's cards, advances
// the active seat in fixed cyclic order, and runs start-of-turn income
// for the new seat. Returns the input unchanged when playerID is not
// the active player.
func (e *Engine) EndTurn(s *state.BattleState, playerID string) *state.BattleState {
	if s.Phase == state.PhaseVictory || playerID != s.ActivePlayerID {
		return s
	}

	next := s.Clone()

	// Upkeep for the ending player's cards: reset turn flags, apply
	// regeneration, tick ability cooldowns and status durations.
	for _, card := range next.CardsOwnedBy(playerID) {
		card.HasMoved = false
		card.HasAttacked = false

		if heal := abilities.RegenerationAmount(card); heal > 0 {
			card.HP += heal
		}

		for i := range card.Abilities {
			if card.Abilities[i].TurnsUntilReady > 0 {
				card.Abilities[i].TurnsUntilReady--
			}
		}

		kept := card.StatusEffects[:0]
		for _, se := range card.StatusEffects {
			se.TurnsRemaining--
			if se.TurnsRemaining > 0 {
				kept = append(kept, se)
			}
		}
		card.StatusEffects = kept
	}

	next.AppendLog(playerID, state.LogTurnEnded, "turn ended")

	if hooks, ok := e.turnHooks(playerID); ok {
		hooks.OnTurnEnd(next)
	}

	nextPlayerID, wrapped := next.NextPlayerAfter(playerID)
	next.ActivePlayerID = nextPlayerID

	// The turn counter advances only when play wraps back to the first
	// seat; weather ticks on the same boundary.
	if wrapped {
		next.CurrentTurn++
		if next.Phase == state.PhaseDeployment {
			next.Phase = state.PhaseBattle
		}
		if next.Weather != nil {
			next.Weather.TurnsRemaining--
			if next.Weather.TurnsRemaining <= 0 {
				next.Weather = nil
			}
		}
	}

	active := next.Players[nextPlayerID]
	active.Mana += e.cfg.ManaRegen
	if active.Mana > active.MaxMana {
		active.Mana = active.MaxMana
	}

	// Humans draw from a fixed deck; AI seats fabricate candidates per
	// decision instead.
	if active.Type == state.PlayerHuman && len(active.Deck) > 0 {
		active.Hand = append(active.Hand, active.Deck[0])
		active.Deck = active.Deck[1:]
	}

	e.finishTransition(next)

	if next.Phase != state.PhaseVictory {
		if hooks, ok := e.turnHooks(nextPlayerID); ok {
			hooks.OnTurnStart(next)
		}
	}

	return next
}
