package state

import (
	"github.com/chainclash/clash-server-go/internal/game/grid"
)

// CombatType determines range, movement budget and flank modifiers.
type CombatType string

const (
	CombatMelee  CombatType = "MELEE"
	CombatRanged CombatType = "RANGED"
	CombatHybrid CombatType = "HYBRID"
)

// Rarity is flavor metadata supplied by the card catalog.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityLegendary Rarity = "LEGENDARY"
)

// Ability tag constants recognized by the aura resolver and end-turn
// upkeep. Tags are matched exactly; unknown tags are inert.
const (
	AbilityTagRally        = "RALLY"
	AbilityTagGuardian     = "GUARDIAN"
	AbilityTagThorns       = "THORNS"
	AbilityTagRegeneration = "REGENERATION"
)

// Ability is a named effect on a card. Effect is the numeric magnitude
// (aura bonus, reflected damage, heal amount). Cooldown is the reset
// value in turns; TurnsUntilReady is the live counter, 0 = usable.
type Ability struct {
	Name            string `json:"name"`
	Tag             string `json:"tag,omitempty"`
	Effect          int    `json:"effect"`
	ManaCost        int    `json:"manaCost"`
	Cooldown        int    `json:"cooldown"`
	TurnsUntilReady int    `json:"turnsUntilReady"`
}

// Ready reports whether the ability is off cooldown.
func (a Ability) Ready() bool {
	return a.TurnsUntilReady <= 0
}

// Card is an immutable template: the thing held in hands, decks and
// catalog pools. Stats are non-negative integers.
type Card struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Attack      int        `json:"attack"`
	Defense     int        `json:"defense"`
	HP          int        `json:"hp"`
	MaxHP       int        `json:"maxHp"`
	Speed       int        `json:"speed"`
	ManaCost    int        `json:"manaCost"`
	Rarity      Rarity     `json:"rarity"`
	CombatType  CombatType `json:"combatType"`
	Abilities   []Ability  `json:"abilities,omitempty"`
}

// HasAbilityTag reports whether any of the card's abilities carries tag.
func (c Card) HasAbilityTag(tag string) bool {
	for _, a := range c.Abilities {
		if a.Tag == tag {
			return true
		}
	}
	return false
}

// AbilityEffect returns the summed effect magnitude of abilities with tag.
func (c Card) AbilityEffect(tag string) int {
	total := 0
	for _, a := range c.Abilities {
		if a.Tag == tag {
			total += a.Effect
		}
	}
	return total
}

// StatusEffect is a timed modifier attached to a placed card. Duration
// ticks down at its owner's end of turn and the effect is removed at 0.
type StatusEffect struct {
	Name           string  `json:"name"`
	AttackMod      float64 `json:"attackMod,omitempty"`
	DefenseMod     float64 `json:"defenseMod,omitempty"`
	TurnsRemaining int     `json:"turnsRemaining"`
}

// BattleCard is a Card placed on the grid. The embedded template fields
// are copies scaled by the owner's stat bonus at deploy time; the ID
// persists across state transitions while every other field is replaced
// wholesale on each transition.
type BattleCard struct {
	Card
	Position      grid.Position  `json:"position"`
	OwnerID       string         `json:"ownerId"`
	HasMoved      bool           `json:"hasMoved"`
	HasAttacked   bool           `json:"hasAttacked"`
	StatusEffects []StatusEffect `json:"statusEffects,omitempty"`
}

// MovementBudget returns the Manhattan move allowance for the card's
// combat type. Melee must move exactly 1; ranged and hybrid up to 2.
func (c BattleCard) MovementBudget() int {
	if c.CombatType == CombatMelee {
		return 1
	}
	return 2
}

// Clone returns a deep copy of the battle card.
func (c BattleCard) Clone() *BattleCard {
	out := c
	out.Abilities = append([]Ability(nil), c.Abilities...)
	out.StatusEffects = append([]StatusEffect(nil), c.StatusEffects...)
	return &out
}
