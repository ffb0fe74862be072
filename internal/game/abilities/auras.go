// Package abilities holds the pure helpers the engine consults when
// resolving adjacency auras, thorns reflection and regeneration. All
// functions read the state and never mutate it.
package abilities

import (
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// RallyBonus returns the attack bonus a card at pos receives from
// orthogonally adjacent allies carrying a rally-tagged ability.
func RallyBonus(s *state.BattleState, card *state.BattleCard) int {
	return adjacentAuraSum(s, card, state.AbilityTagRally)
}

// GuardianBonus returns the defense bonus a card receives from
// orthogonally adjacent allies carrying a guardian-tagged ability.
func GuardianBonus(s *state.BattleState, card *state.BattleCard) int {
	return adjacentAuraSum(s, card, state.AbilityTagGuardian)
}

func adjacentAuraSum(s *state.BattleState, card *state.BattleCard, tag string) int {
	total := 0
	for _, pos := range card.Position.Neighbors() {
		ally := s.CardAt(pos)
		if ally == nil || ally.OwnerID != card.OwnerID || ally.ID == card.ID {
			continue
		}
		total += ally.AbilityEffect(tag)
	}
	return total
}

// ThornsReflection returns the damage reflected back onto an attacker
// when target carries a thorns-tagged ability, 0 otherwise.
func ThornsReflection(target *state.BattleCard) int {
	return target.AbilityEffect(state.AbilityTagThorns)
}

// RegenerationAmount returns the healing a card applies to itself at
// its owner's end of turn, capped so HP never exceeds MaxHP.
func RegenerationAmount(card *state.BattleCard) int {
	heal := card.AbilityEffect(state.AbilityTagRegeneration)
	if heal <= 0 {
		return 0
	}
	if card.HP+heal > card.MaxHP {
		heal = card.MaxHP - card.HP
	}
	if heal < 0 {
		return 0
	}
	return heal
}
