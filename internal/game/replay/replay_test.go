package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

func snapshot(turn int) *state.BattleState {
	layout := grid.Layout{Rows: 2, Cols: 3}
	field := state.NewBattlefield(layout)
	field[1][1] = &state.BattleCard{
		Card:     state.Card{ID: "c1", Name: "Scout", Attack: 2, HP: 3, MaxHP: 3},
		Position: grid.Position{Row: 1, Col: 1},
		OwnerID:  "p1",
	}
	return &state.BattleState{
		ID:             "battle-1",
		CurrentTurn:    turn,
		Phase:          state.PhaseBattle,
		ActivePlayerID: "p1",
		PlayerOrder:    []string{"p1", "p2"},
		Players: map[string]*state.Player{
			"p1": {ID: "p1", Type: state.PlayerHuman, CastleHP: 100, MaxCastleHP: 100},
			"p2": {ID: "p2", Type: state.PlayerAI, CastleHP: 90, MaxCastleHP: 100},
		},
		Battlefield:     field,
		Layout:          layout,
		ControlledZones: map[string]string{},
	}
}

func TestCursorNavigation(t *testing.T) {
	r := New("battle-1")
	for turn := 1; turn <= 3; turn++ {
		r.Record(snapshot(turn))
	}
	require.Equal(t, 3, r.Size())

	assert.Equal(t, 1, r.Next().CurrentTurn)
	assert.Equal(t, 2, r.Next().CurrentTurn)
	assert.Equal(t, 2, r.Previous().CurrentTurn)

	r.Rewind()
	assert.Equal(t, 1, r.Next().CurrentTurn)

	// Skip clamps at the recording bounds.
	assert.Equal(t, 3, r.Skip(10).CurrentTurn)
	assert.Equal(t, 1, r.Skip(-10).CurrentTurn)
}

func TestNextPastEndReturnsNil(t *testing.T) {
	r := New("battle-1")
	r.Record(snapshot(1))
	require.NotNil(t, r.Next())
	assert.Nil(t, r.Next())
	assert.Nil(t, New("empty").Previous())
}

func TestAtDoesNotMoveCursor(t *testing.T) {
	r := New("battle-1")
	r.Record(snapshot(1))
	r.Record(snapshot(2))

	assert.Equal(t, 2, r.At(1).CurrentTurn)
	assert.Nil(t, r.At(5))
	assert.Equal(t, 1, r.Next().CurrentTurn)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	r := New("battle-1")
	for turn := 1; turn <= 4; turn++ {
		r.Record(snapshot(turn))
	}
	require.NoError(t, r.Save(dir))

	loaded, err := Load(dir, "battle-1")
	require.NoError(t, err)
	require.Equal(t, 4, loaded.Size())
	assert.Equal(t, "battle-1", loaded.BattleID)
	assert.Equal(t, 3, loaded.At(2).CurrentTurn)
	assert.Equal(t, 90, loaded.At(0).Players["p2"].CastleHP)

	// The battlefield round-trips with empty cells intact.
	first := loaded.At(0)
	require.NotNil(t, first.CardAt(grid.Position{Row: 1, Col: 1}))
	assert.Equal(t, "Scout", first.CardAt(grid.Position{Row: 1, Col: 1}).Name)
	assert.Nil(t, first.CardAt(grid.Position{Row: 0, Col: 0}))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir(), "nope")
	assert.Error(t, err)
}

func TestRecorderGating(t *testing.T) {
	rr := NewRecorder(zap.NewNop(), t.TempDir())

	// Snapshots before Start are dropped.
	rr.Record("battle-1", snapshot(1))
	_, ok := rr.Replay("battle-1")
	assert.False(t, ok)

	rr.Start("battle-1")
	assert.True(t, rr.Recording("battle-1"))
	rr.Record("battle-1", snapshot(1))
	rr.Record("battle-1", snapshot(2))

	rr.Stop("battle-1")
	rr.Record("battle-1", snapshot(3))

	r, ok := rr.Replay("battle-1")
	require.True(t, ok)
	assert.Equal(t, 2, r.Size(), "snapshots after Stop are not recorded")
}

func TestRecorderSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	rr := NewRecorder(zap.NewNop(), dir)

	rr.Start("battle-1")
	rr.Record("battle-1", snapshot(1))
	require.NoError(t, rr.Save("battle-1"))

	// Saved replays leave memory.
	_, ok := rr.Replay("battle-1")
	assert.False(t, ok)

	loaded, err := rr.Load("battle-1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Size())

	assert.Error(t, rr.Save("battle-1"), "saving twice fails once dropped")
}
