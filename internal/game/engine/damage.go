package engine

import (
	"github.com/chainclash/clash-server-go/internal/game/abilities"
	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// flankModifier is the attack/defense multiplier pair a flank column
// grants a combat type.
type flankModifier struct {
	attack  float64
	defense float64
}

// Edge columns favor melee pressure, the center column favors ranged
// fire lanes. Field columns are neutral.
var flankModifiers = map[grid.Flank]map[state.CombatType]flankModifier{
	grid.FlankLeftEdge: {
		state.CombatMelee:  {attack: 1.10, defense: 1.00},
		state.CombatRanged: {attack: 1.05, defense: 0.95},
		state.CombatHybrid: {attack: 1.05, defense: 1.00},
	},
	grid.FlankRightEdge: {
		state.CombatMelee:  {attack: 1.10, defense: 1.00},
		state.CombatRanged: {attack: 1.05, defense: 0.95},
		state.CombatHybrid: {attack: 1.05, defense: 1.00},
	},
	grid.FlankCenter: {
		state.CombatMelee:  {attack: 1.00, defense: 1.10},
		state.CombatRanged: {attack: 1.15, defense: 0.95},
		state.CombatHybrid: {attack: 1.10, defense: 1.00},
	},
}

func flankModifierFor(layout grid.Layout, card *state.BattleCard) flankModifier {
	if mods, ok := flankModifiers[layout.FlankOf(card.Position.Col)]; ok {
		if m, ok := mods[card.CombatType]; ok {
			return m
		}
	}
	return flankModifier{attack: 1, defense: 1}
}

// ComputeCardDamage runs the deterministic damage pipeline for a
// card-versus-card attack. Order is load-bearing: base attack, plus
// rally aura, times flank attack modifier, times formation attack
// bonus, times weather, times terrain, times the crit multiplier when
// roll < crit chance, minus the defender's effective defense, floored
// and clamped to a minimum of 1.
func (e *Engine) ComputeCardDamage(s *state.BattleState, attacker, defender *state.BattleCard, roll float64) (damage int, crit bool) {
	attack := float64(attacker.Attack + abilities.RallyBonus(s, attacker))
	attack *= flankModifierFor(s.Layout, attacker).attack
	attack *= FormationFor(s, attacker.OwnerID).Modifiers().Attack

	if s.Weather != nil {
		attack *= s.Weather.AttackMod
	}
	if terrain := s.TerrainEffectAt(attacker.Position); terrain != nil {
		attack *= terrain.AttackMod
	}

	crit = roll < e.cfg.CritChance
	if crit {
		attack *= e.cfg.CritMultiplier
	}

	defense := float64(defender.Defense + abilities.GuardianBonus(s, defender))
	defense *= flankModifierFor(s.Layout, defender).defense

	damage = int(attack - defense)
	if damage < 1 {
		damage = 1
	}
	return damage, crit
}

// ComputeCastleDamage runs the castle-strike pipeline: attack times
// formation bonus times weather, crit as above, floored to a minimum
// of 1. Auras, flanks and terrain do not apply to castle strikes.
func (e *Engine) ComputeCastleDamage(s *state.BattleState, attacker *state.BattleCard, roll float64) (damage int, crit bool) {
	attack := float64(attacker.Attack)
	attack *= FormationFor(s, attacker.OwnerID).Modifiers().Attack
	if s.Weather != nil {
		attack *= s.Weather.AttackMod
	}

	crit = roll < e.cfg.CritChance
	if crit {
		attack *= e.cfg.CritMultiplier
	}

	damage = int(attack)
	if damage < 1 {
		damage = 1
	}
	return damage, crit
}
