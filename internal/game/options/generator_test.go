package options

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

func optionState() *state.BattleState {
	layout := grid.Layout{Rows: 5, Cols: 7}
	return &state.BattleState{
		ID:             "options-test",
		CurrentTurn:    1,
		Phase:          state.PhaseBattle,
		ActivePlayerID: "p1",
		PlayerOrder:    []string{"p1", "p2"},
		Players: map[string]*state.Player{
			"p1": {ID: "p1", Type: state.PlayerHuman, Mana: 10, MaxMana: 10, CastleHP: 100, MaxCastleHP: 100},
			"p2": {ID: "p2", Type: state.PlayerAI, Mana: 10, MaxMana: 10, CastleHP: 100, MaxCastleHP: 100},
		},
		Battlefield:     state.NewBattlefield(layout),
		Layout:          layout,
		ControlledZones: map[string]string{},
	}
}

func placeAt(s *state.BattleState, id, owner string, pos grid.Position, combat state.CombatType) *state.BattleCard {
	card := &state.BattleCard{
		Card:     state.Card{ID: id, Name: id, Attack: 4, Defense: 2, HP: 8, MaxHP: 8, Speed: 2, ManaCost: 3, CombatType: combat},
		Position: pos,
		OwnerID:  owner,
	}
	s.Battlefield[pos.Row][pos.Col] = card
	return card
}

func TestDeployCellsRespectZone(t *testing.T) {
	s := optionState()
	cells := DeployCells(s, "p1")
	// Left half (cols 0-2) plus shared middle column 3: 5 rows * 4 cols.
	assert.Len(t, cells, 20)
	for _, c := range cells {
		assert.LessOrEqual(t, c.Col, 3)
	}
}

func TestLegalActionsDeployBranchingCapped(t *testing.T) {
	s := optionState()
	hand := []state.Card{{ID: "c1", Name: "Squire", ManaCost: 3, HP: 5, MaxHP: 5, CombatType: state.CombatMelee}}
	s.Players["p1"].Hand = hand

	actions := LegalActions(s, "p1", hand)

	deploys := 0
	for _, a := range actions {
		if a.Type == engine.ActionDeploy {
			deploys++
			assert.Equal(t, "c1", a.CardID)
			assert.Nil(t, a.GeneratedCard)
		}
	}
	// 20 legal cells capped to 12 ranked cells.
	assert.Equal(t, 12, deploys)
}

func TestLegalActionsSkipsUnaffordable(t *testing.T) {
	s := optionState()
	s.Players["p1"].Mana = 2
	hand := []state.Card{{ID: "expensive", ManaCost: 9}}
	s.Players["p1"].Hand = hand

	actions := LegalActions(s, "p1", hand)
	for _, a := range actions {
		assert.NotEqual(t, engine.ActionDeploy, a.Type)
	}
}

func TestLegalActionsAttacksAndMoves(t *testing.T) {
	s := optionState()
	placeAt(s, "knight", "p1", grid.Position{Row: 2, Col: 3}, state.CombatMelee)
	placeAt(s, "enemy", "p2", grid.Position{Row: 2, Col: 4}, state.CombatMelee)

	actions := LegalActions(s, "p1", nil)

	var attacks, castleStrikes, moves int
	for _, a := range actions {
		switch a.Type {
		case engine.ActionAttackCard:
			attacks++
			assert.Equal(t, "knight", a.CardID)
			assert.Equal(t, "enemy", a.TargetCardID)
		case engine.ActionAttackCastle:
			castleStrikes++
			assert.Equal(t, "p2", a.TargetPlayerID)
		case engine.ActionMove:
			moves++
		}
	}
	assert.Equal(t, 1, attacks)
	// Knight sits on the middle column: melee castle strike is legal.
	assert.Equal(t, 1, castleStrikes)
	// Melee moves exactly 1: up, down, left (right is occupied).
	assert.Equal(t, 3, moves)
}

func TestLegalActionsExhaustedCard(t *testing.T) {
	s := optionState()
	card := placeAt(s, "spent", "p1", grid.Position{Row: 2, Col: 3}, state.CombatMelee)
	card.HasMoved = true
	card.HasAttacked = true
	placeAt(s, "enemy", "p2", grid.Position{Row: 2, Col: 4}, state.CombatMelee)

	actions := LegalActions(s, "p1", nil)
	assert.Empty(t, actions)
}

func TestRankCellsPrefersCenter(t *testing.T) {
	s := optionState()
	cells := DeployCells(s, "p1")
	ranked := RankCells(s, "p1", cells)

	require.NotEmpty(t, ranked)
	// Best cell hugs the middle column and middle row.
	assert.Equal(t, 3, ranked[0].Col)
	assert.Equal(t, 2, ranked[0].Row)
}

func TestCellScoreValuesTerrain(t *testing.T) {
	s := optionState()
	pos := grid.Position{Row: 0, Col: 1}
	base := CellScore(s, "p1", pos)

	s.TerrainEffects = []state.TerrainEffect{
		{Pos: pos, Kind: grid.TerrainHill, AttackMod: 1.2, DefenseMod: 1.0, SpeedMod: 1.0},
	}
	assert.Greater(t, CellScore(s, "p1", pos), base)
}

func TestGenerateCardsDeterministic(t *testing.T) {
	p := &state.Player{ID: "ai", Type: state.PlayerAI, Mana: 8}
	pers := state.Personality{Aggression: 0.6, Creativity: 0.7, RiskTolerance: 0.5, Patience: 0.3, Adaptability: 0.5}

	a := GenerateCards(p, ModeAggressive, pers, 5, rand.New(rand.NewSource(7)))
	b := GenerateCards(p, ModeAggressive, pers, 5, rand.New(rand.NewSource(7)))

	require.Len(t, a, 5)
	assert.Equal(t, a, b, "same seed must fabricate identical candidates")
}

func TestGenerateCardsAffordable(t *testing.T) {
	p := &state.Player{ID: "ai", Type: state.PlayerAI, Mana: 4}
	cards := GenerateCards(p, ModeAdaptive, state.Personality{}, 10, rand.New(rand.NewSource(1)))

	for _, c := range cards {
		assert.LessOrEqual(t, c.ManaCost, 4)
		assert.GreaterOrEqual(t, c.ManaCost, 1)
		assert.Greater(t, c.HP, 0)
		assert.Greater(t, c.Attack, 0)
	}
}

func TestGenerateCardsNoMana(t *testing.T) {
	p := &state.Player{ID: "ai", Type: state.PlayerAI, Mana: 0}
	assert.Empty(t, GenerateCards(p, ModeAdaptive, state.Personality{}, 5, rand.New(rand.NewSource(1))))
}
