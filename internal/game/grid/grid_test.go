package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionKey(t *testing.T) {
	assert.Equal(t, "2,5", Position{Row: 2, Col: 5}.Key())
	assert.Equal(t, "0,0", Position{}.Key())
}

func TestManhattanDistance(t *testing.T) {
	a := Position{Row: 1, Col: 1}
	assert.Equal(t, 0, a.ManhattanDistance(a))
	assert.Equal(t, 1, a.ManhattanDistance(Position{Row: 1, Col: 2}))
	assert.Equal(t, 4, a.ManhattanDistance(Position{Row: 3, Col: 3}))
	assert.True(t, a.Adjacent(Position{Row: 0, Col: 1}))
	assert.False(t, a.Adjacent(Position{Row: 0, Col: 0}))
}

func TestLayoutBounds(t *testing.T) {
	l := Layout{Rows: 5, Cols: 7}
	assert.True(t, l.InBounds(Position{Row: 0, Col: 0}))
	assert.True(t, l.InBounds(Position{Row: 4, Col: 6}))
	assert.False(t, l.InBounds(Position{Row: 5, Col: 0}))
	assert.False(t, l.InBounds(Position{Row: 0, Col: 7}))
	assert.False(t, l.InBounds(Position{Row: -1, Col: 0}))
}

func TestBlockedAndTerrain(t *testing.T) {
	l := Layout{
		Rows:    5,
		Cols:    7,
		Blocked: []Position{{Row: 2, Col: 3}},
		Special: []SpecialTile{{Pos: Position{Row: 1, Col: 1}, Terrain: TerrainForest}},
	}
	assert.True(t, l.IsBlocked(Position{Row: 2, Col: 3}))
	assert.False(t, l.IsBlocked(Position{Row: 2, Col: 4}))
	assert.Equal(t, TerrainForest, l.TerrainAt(Position{Row: 1, Col: 1}))
	assert.Equal(t, TerrainKind(""), l.TerrainAt(Position{Row: 0, Col: 0}))
}

func TestMiddleColumns(t *testing.T) {
	odd := Layout{Rows: 5, Cols: 7}
	assert.Equal(t, []int{3}, odd.MiddleColumns())
	assert.True(t, odd.IsMiddleColumn(3))
	assert.False(t, odd.IsMiddleColumn(2))

	even := Layout{Rows: 4, Cols: 8}
	assert.Equal(t, []int{3, 4}, even.MiddleColumns())
	assert.True(t, even.IsMiddleColumn(3))
	assert.True(t, even.IsMiddleColumn(4))
	assert.False(t, even.IsMiddleColumn(5))
}

func TestDeploymentZoneOddColumns(t *testing.T) {
	l := Layout{Rows: 5, Cols: 7}

	// Left side owns columns 0-2 plus shared column 3.
	assert.True(t, l.InDeploymentZone(SideLeft, Position{Row: 0, Col: 0}))
	assert.True(t, l.InDeploymentZone(SideLeft, Position{Row: 0, Col: 2}))
	assert.True(t, l.InDeploymentZone(SideLeft, Position{Row: 0, Col: 3}))
	assert.False(t, l.InDeploymentZone(SideLeft, Position{Row: 0, Col: 4}))

	// Right side owns columns 4-6 plus shared column 3.
	assert.True(t, l.InDeploymentZone(SideRight, Position{Row: 0, Col: 6}))
	assert.True(t, l.InDeploymentZone(SideRight, Position{Row: 0, Col: 3}))
	assert.False(t, l.InDeploymentZone(SideRight, Position{Row: 0, Col: 2}))
}

func TestDeploymentZoneEvenColumns(t *testing.T) {
	l := Layout{Rows: 4, Cols: 8}

	// Shared middle columns 3 and 4 belong to both sides.
	assert.True(t, l.InDeploymentZone(SideLeft, Position{Row: 0, Col: 3}))
	assert.True(t, l.InDeploymentZone(SideLeft, Position{Row: 0, Col: 4}))
	assert.True(t, l.InDeploymentZone(SideRight, Position{Row: 0, Col: 3}))
	assert.True(t, l.InDeploymentZone(SideRight, Position{Row: 0, Col: 4}))
	assert.False(t, l.InDeploymentZone(SideLeft, Position{Row: 0, Col: 5}))
	assert.False(t, l.InDeploymentZone(SideRight, Position{Row: 0, Col: 2}))
}

func TestDeploymentZoneOutOfBounds(t *testing.T) {
	l := Layout{Rows: 5, Cols: 7}
	assert.False(t, l.InDeploymentZone(SideLeft, Position{Row: 9, Col: 0}))
	assert.False(t, l.InDeploymentZone(SideRight, Position{Row: 0, Col: -1}))
}

func TestFlankOf(t *testing.T) {
	l := Layout{Rows: 5, Cols: 7}
	assert.Equal(t, FlankLeftEdge, l.FlankOf(0))
	assert.Equal(t, FlankRightEdge, l.FlankOf(6))
	assert.Equal(t, FlankCenter, l.FlankOf(3))
	assert.Equal(t, FlankField, l.FlankOf(2))

	even := Layout{Rows: 4, Cols: 8}
	// Even grids have no exact center column.
	assert.Equal(t, FlankField, even.FlankOf(4))
}

func TestLayoutForPreset(t *testing.T) {
	l, err := LayoutForPreset(PresetStandard)
	require.NoError(t, err)
	assert.Equal(t, 5, l.Rows)
	assert.Equal(t, 7, l.Cols)

	l, err = LayoutForPreset("")
	require.NoError(t, err)
	assert.Equal(t, 7, l.Cols)

	_, err = LayoutForPreset("bogus")
	assert.Error(t, err)
}
