// Package catalog supplies the static card templates human decks draw
// from. The battle core treats these as opaque templates; only the
// numeric fields matter to it.
package catalog

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/chainclash/clash-server-go/internal/game/state"
)

// Template is a card blueprint. Instantiate stamps copies with fresh
// ids so two decks never share card identity.
type Template struct {
	Name        string
	Description string
	Attack      int
	Defense     int
	HP          int
	Speed       int
	ManaCost    int
	Rarity      state.Rarity
	CombatType  state.CombatType
	Abilities   []state.Ability
}

var templates = []Template{
	{Name: "Footman", Description: "Holds the line without complaint.", Attack: 4, Defense: 3, HP: 10, Speed: 1, ManaCost: 2, Rarity: state.RarityCommon, CombatType: state.CombatMelee},
	{Name: "Pike Sergeant", Description: "First into the breach.", Attack: 6, Defense: 4, HP: 12, Speed: 1, ManaCost: 3, Rarity: state.RarityCommon, CombatType: state.CombatMelee},
	{Name: "Shield Matron", Description: "Nothing gets past her ward.", Attack: 3, Defense: 7, HP: 14, Speed: 1, ManaCost: 4, Rarity: state.RarityUncommon, CombatType: state.CombatMelee,
		Abilities: []state.Ability{{Name: "Bulwark", Tag: state.AbilityTagGuardian, Effect: 2}}},
	{Name: "Longbow Scout", Description: "Eyes like a hawk, arrows like rain.", Attack: 5, Defense: 1, HP: 6, Speed: 2, ManaCost: 2, Rarity: state.RarityCommon, CombatType: state.CombatRanged},
	{Name: "Siege Archer", Description: "Walls mean little to her.", Attack: 7, Defense: 2, HP: 8, Speed: 2, ManaCost: 4, Rarity: state.RarityUncommon, CombatType: state.CombatRanged},
	{Name: "Storm Warden", Description: "Calls the sky down on command.", Attack: 8, Defense: 3, HP: 10, Speed: 2, ManaCost: 6, Rarity: state.RarityRare, CombatType: state.CombatRanged},
	{Name: "Blade Dancer", Description: "Half duelist, half rumor.", Attack: 6, Defense: 2, HP: 9, Speed: 3, ManaCost: 4, Rarity: state.RarityUncommon, CombatType: state.CombatHybrid},
	{Name: "Banner Captain", Description: "Courage follows the standard.", Attack: 5, Defense: 4, HP: 11, Speed: 2, ManaCost: 5, Rarity: state.RarityUncommon, CombatType: state.CombatHybrid,
		Abilities: []state.Ability{{Name: "Rallying Cry", Tag: state.AbilityTagRally, Effect: 2}}},
	{Name: "Thorn Golem", Description: "Touch it and regret it.", Attack: 4, Defense: 6, HP: 16, Speed: 1, ManaCost: 5, Rarity: state.RarityRare, CombatType: state.CombatMelee,
		Abilities: []state.Ability{{Name: "Bramble Skin", Tag: state.AbilityTagThorns, Effect: 2}}},
	{Name: "Marsh Troll", Description: "Wounds close as fast as they open.", Attack: 7, Defense: 4, HP: 18, Speed: 1, ManaCost: 7, Rarity: state.RarityRare, CombatType: state.CombatMelee,
		Abilities: []state.Ability{{Name: "Troll Blood", Tag: state.AbilityTagRegeneration, Effect: 2}}},
	{Name: "Dawn Paladin", Description: "The last light on a bad field.", Attack: 9, Defense: 6, HP: 20, Speed: 2, ManaCost: 9, Rarity: state.RarityLegendary, CombatType: state.CombatHybrid,
		Abilities: []state.Ability{{Name: "Aegis of Dawn", Tag: state.AbilityTagGuardian, Effect: 3}}},
	{Name: "Gutter Rat", Description: "Cheap, fast, expendable.", Attack: 2, Defense: 1, HP: 4, Speed: 3, ManaCost: 1, Rarity: state.RarityCommon, CombatType: state.CombatMelee},
}

// Templates returns every known template, sorted by name for
// deterministic iteration.
func Templates() []Template {
	out := append([]Template(nil), templates...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByRarity returns the templates of one rarity, name-sorted.
func ByRarity(r state.Rarity) []Template {
	var out []Template
	for _, t := range Templates() {
		if t.Rarity == r {
			out = append(out, t)
		}
	}
	return out
}

// Instantiate stamps a card from the template for an owner, numbering
// the id so repeated stamps stay unique within a deck.
func (t Template) Instantiate(ownerID string, serial int) state.Card {
	return state.Card{
		ID:          fmt.Sprintf("%s-%s-%d", ownerID, slug(t.Name), serial),
		Name:        t.Name,
		Description: t.Description,
		Attack:      t.Attack,
		Defense:     t.Defense,
		HP:          t.HP,
		MaxHP:       t.HP,
		Speed:       t.Speed,
		ManaCost:    t.ManaCost,
		Rarity:      t.Rarity,
		CombatType:  t.CombatType,
		Abilities:   append([]state.Ability(nil), t.Abilities...),
	}
}

// StartingDeck builds a shuffled deck of size cards for a player.
// Rarity weights keep commons frequent and legendaries scarce; the
// seed fixes both the draws and the shuffle.
func StartingDeck(ownerID string, size int, seed int64) []state.Card {
	if size <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))

	all := Templates()
	deck := make([]state.Card, 0, size)
	for i := 0; i < size; i++ {
		t := all[weightedPick(rng, all)]
		deck = append(deck, t.Instantiate(ownerID, i))
	}

	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

var rarityWeights = map[state.Rarity]int{
	state.RarityCommon:    8,
	state.RarityUncommon:  4,
	state.RarityRare:      2,
	state.RarityLegendary: 1,
}

func weightedPick(rng *rand.Rand, pool []Template) int {
	total := 0
	for _, t := range pool {
		total += rarityWeights[t.Rarity]
	}
	roll := rng.Intn(total)
	for i, t := range pool {
		roll -= rarityWeights[t.Rarity]
		if roll < 0 {
			return i
		}
	}
	return len(pool) - 1
}

func slug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+'a'-'A')
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}
