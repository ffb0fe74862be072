package options

import (
	"fmt"
	"math/rand"

	"github.com/chainclash/clash-server-go/internal/game/state"
)

// Name pools for fabricated cards, indexed by combat type.
var generatedNames = map[state.CombatType][]string{
	state.CombatMelee:  {"Conjured Blade", "Phantom Knight", "Ember Brute", "Shardling"},
	state.CombatRanged: {"Willow Archer", "Hex Slinger", "Storm Caller", "Glass Sniper"},
	state.CombatHybrid: {"Spell Lancer", "Warden of Echoes", "Rift Stalker", "Dusk Herald"},
}

// GenerateCards fabricates count candidate cards for an AI seat. The
// AI has no deck ceiling: candidates are invented per decision,
// parameterized by mode and personality, and fully determined by the
// injected random source so decisions replay given the same draws.
func GenerateCards(p *state.Player, mode Mode, personality state.Personality, count int, rng *rand.Rand) []state.Card {
	if count <= 0 {
		return nil
	}

	cards := make([]state.Card, 0, count)
	for i := 0; i < count; i++ {
		maxCost := p.Mana
		if maxCost < 1 {
			break
		}
		if maxCost > 8 {
			maxCost = 8
		}
		cost := 1 + rng.Intn(maxCost)

		combat := pickCombatType(mode, rng)
		budget := cost*3 + rng.Intn(3)

		attack, defense, hp := splitBudget(budget, mode, personality, rng)
		speed := 1 + rng.Intn(3)

		names := generatedNames[combat]
		card := state.Card{
			ID:         fmt.Sprintf("gen-%d-%d", p.Mana, rng.Int63()),
			Name:       names[rng.Intn(len(names))],
			Attack:     attack,
			Defense:    defense,
			HP:         hp,
			MaxHP:      hp,
			Speed:      speed,
			ManaCost:   cost,
			Rarity:     state.RarityCommon,
			CombatType: combat,
		}

		// Creative minds occasionally attach an aura to a candidate.
		if personality.Creativity > 0.5 && rng.Float64() < personality.Creativity*0.4 {
			card.Abilities = []state.Ability{randomAbility(rng)}
		}

		cards = append(cards, card)
	}
	return cards
}

func pickCombatType(mode Mode, rng *rand.Rand) state.CombatType {
	roll := rng.Float64()
	switch mode {
	case ModeAggressive, ModeDesperate:
		if roll < 0.6 {
			return state.CombatMelee
		}
		if roll < 0.85 {
			return state.CombatHybrid
		}
		return state.CombatRanged
	case ModeDefensive:
		if roll < 0.5 {
			return state.CombatRanged
		}
		if roll < 0.8 {
			return state.CombatMelee
		}
		return state.CombatHybrid
	default:
		if roll < 0.34 {
			return state.CombatMelee
		}
		if roll < 0.67 {
			return state.CombatRanged
		}
		return state.CombatHybrid
	}
}

// splitBudget divides a stat budget across attack/defense/hp with the
// mode setting the weighting and risk tolerance sharpening it.
func splitBudget(budget int, mode Mode, personality state.Personality, rng *rand.Rand) (attack, defense, hp int) {
	attackShare := 0.34
	defenseShare := 0.33
	switch mode {
	case ModeAggressive, ModeDesperate:
		attackShare = 0.45 + personality.RiskTolerance*0.15
		defenseShare = 0.20
	case ModeDefensive:
		attackShare = 0.22
		defenseShare = 0.42
	case ModeExperimental:
		attackShare = 0.25 + rng.Float64()*0.3
		defenseShare = 0.20 + rng.Float64()*0.2
	}

	attack = int(float64(budget) * attackShare)
	defense = int(float64(budget) * defenseShare)
	hp = budget - attack - defense + 2
	if attack < 1 {
		attack = 1
	}
	if defense < 0 {
		defense = 0
	}
	if hp < 1 {
		hp = 1
	}
	return attack, defense, hp
}

func randomAbility(rng *rand.Rand) state.Ability {
	pool := []state.Ability{
		{Name: "War Banner", Tag: state.AbilityTagRally, Effect: 2},
		{Name: "Tower Shield", Tag: state.AbilityTagGuardian, Effect: 2},
		{Name: "Iron Spines", Tag: state.AbilityTagThorns, Effect: 2},
		{Name: "Troll Hide", Tag: state.AbilityTagRegeneration, Effect: 2},
	}
	return pool[rng.Intn(len(pool))]
}
