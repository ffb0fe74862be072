package engine

import (
	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// The validation predicates are free functions so the option generator
// can enumerate legal actions without an engine instance. Each one
// checks a single precondition family from the action contracts.

// CanDeployAt reports whether playerID may deploy onto pos: in bounds,
// not blocked, empty, and inside the player's deployment zone.
func CanDeployAt(s *state.BattleState, playerID string, pos grid.Position) bool {
	if !s.Layout.InBounds(pos) || s.Layout.IsBlocked(pos) {
		return false
	}
	if s.CardAt(pos) != nil {
		return false
	}
	return s.Layout.InDeploymentZone(s.SideOf(playerID), pos)
}

// CanAfford reports whether the player has mana for the card.
func CanAfford(p *state.Player, card state.Card) bool {
	return p.Mana >= card.ManaCost
}

// InAttackRange reports whether attacker can reach target. Melee
// attackers reach only columns within 1 of the target; ranged and
// hybrid attackers are unrestricted.
func InAttackRange(attacker, target *state.BattleCard) bool {
	if attacker.CombatType != state.CombatMelee {
		return true
	}
	diff := attacker.Position.Col - target.Position.Col
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

// CanAttackTarget reports whether attacker may attack target this turn.
func CanAttackTarget(attacker, target *state.BattleCard) bool {
	if attacker == nil || target == nil {
		return false
	}
	if attacker.HasAttacked {
		return false
	}
	if attacker.OwnerID == target.OwnerID {
		return false
	}
	return InAttackRange(attacker, target)
}

// CanAttackCastle reports whether attacker may strike the enemy castle.
// Melee attackers must occupy a contested middle column; ranged and
// hybrid attackers are unrestricted.
func CanAttackCastle(s *state.BattleState, attacker *state.BattleCard, targetPlayerID string) bool {
	if attacker == nil || attacker.HasAttacked {
		return false
	}
	if attacker.OwnerID == targetPlayerID {
		return false
	}
	if attacker.CombatType == state.CombatMelee {
		return s.Layout.IsMiddleColumn(attacker.Position.Col)
	}
	return true
}

// CanMoveTo reports whether card may relocate to pos this turn.
func CanMoveTo(s *state.BattleState, card *state.BattleCard, pos grid.Position) bool {
	if card == nil || card.HasMoved {
		return false
	}
	if !s.Layout.InBounds(pos) || s.Layout.IsBlocked(pos) {
		return false
	}
	if s.CardAt(pos) != nil {
		return false
	}
	dist := card.Position.ManhattanDistance(pos)
	if card.CombatType == state.CombatMelee {
		return dist == 1
	}
	return dist >= 1 && dist <= card.MovementBudget()
}
