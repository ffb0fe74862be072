package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainclash/clash-server-go/internal/game/state"
)

func TestTemplatesSortedAndCopied(t *testing.T) {
	a := Templates()
	b := Templates()
	require.NotEmpty(t, a)

	for i := 1; i < len(a); i++ {
		assert.Less(t, a[i-1].Name, a[i].Name)
	}

	a[0].Name = "mutated"
	assert.NotEqual(t, "mutated", b[0].Name, "callers get independent slices")
}

func TestByRarity(t *testing.T) {
	for _, tmpl := range ByRarity(state.RarityCommon) {
		assert.Equal(t, state.RarityCommon, tmpl.Rarity)
	}
	require.Len(t, ByRarity(state.RarityLegendary), 1)
	assert.Equal(t, "Dawn Paladin", ByRarity(state.RarityLegendary)[0].Name)
}

func TestInstantiateStampsIdentity(t *testing.T) {
	tmpl := ByRarity(state.RarityLegendary)[0]
	first := tmpl.Instantiate("p1", 0)
	second := tmpl.Instantiate("p1", 1)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "p1-dawn-paladin-0", first.ID)
	assert.Equal(t, tmpl.HP, first.HP)
	assert.Equal(t, tmpl.HP, first.MaxHP)

	// Ability slices are independent copies.
	require.NotEmpty(t, first.Abilities)
	first.Abilities[0].Effect = 99
	assert.NotEqual(t, 99, second.Abilities[0].Effect)
}

func TestStartingDeckDeterministic(t *testing.T) {
	a := StartingDeck("p1", 20, 42)
	b := StartingDeck("p1", 20, 42)
	require.Len(t, a, 20)
	assert.Equal(t, a, b, "same seed builds the same deck")

	c := StartingDeck("p1", 20, 43)
	assert.NotEqual(t, a, c, "different seeds diverge")
}

func TestStartingDeckRarityLeansCommon(t *testing.T) {
	deck := StartingDeck("p1", 200, 7)

	counts := map[state.Rarity]int{}
	for _, card := range deck {
		counts[card.Rarity]++
	}
	assert.Greater(t, counts[state.RarityCommon], counts[state.RarityLegendary])
}

func TestStartingDeckEmpty(t *testing.T) {
	assert.Nil(t, StartingDeck("p1", 0, 1))
}
