package repository

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// fakeDB captures statements and serves canned rows, standing in for
// the pgx pool.
type fakeDB struct {
	execSQL  []string
	execArgs [][]any
	row      fakeRow
	rows     *fakeRows
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return f.rows, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.row
}

type fakeRow struct {
	err    error
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *[]byte:
			*v = r.values[i].([]byte)
		case *string:
			*v = r.values[i].(string)
		case *time.Time:
			*v = r.values[i].(time.Time)
		}
	}
	return nil
}

type fakeRows struct {
	ids []string
	pos int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { r.pos++; return r.pos <= len(r.ids) }
func (r *fakeRows) Scan(dest ...any) error {
	*dest[0].(*string) = r.ids[r.pos-1]
	return nil
}
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

func sampleState() *state.BattleState {
	layout := grid.Layout{Rows: 2, Cols: 3}
	return &state.BattleState{
		ID:             "match-7",
		CurrentTurn:    4,
		Phase:          state.PhaseBattle,
		ActivePlayerID: "p1",
		PlayerOrder:    []string{"p1", "p2"},
		Players: map[string]*state.Player{
			"p1": {ID: "p1", CastleHP: 80, MaxCastleHP: 100},
			"p2": {ID: "p2", CastleHP: 100, MaxCastleHP: 100},
		},
		Battlefield:     state.NewBattlefield(layout),
		Layout:          layout,
		ControlledZones: map[string]string{},
	}
}

func TestSaveUpsertsSnapshot(t *testing.T) {
	db := &fakeDB{}
	store := NewMatchStore(db)

	err := store.Save(context.Background(), &MatchRecord{
		ID:     "match-7",
		State:  sampleState(),
		Status: StatusActive,
	})
	require.NoError(t, err)

	require.Len(t, db.execSQL, 1)
	assert.Contains(t, db.execSQL[0], "ON CONFLICT (id) DO UPDATE")

	args := db.execArgs[0]
	require.Len(t, args, 4)
	assert.Equal(t, "match-7", args[0])
	assert.Equal(t, string(StatusActive), args[2])

	var decoded state.BattleState
	require.NoError(t, json.Unmarshal(args[1].([]byte), &decoded))
	assert.Equal(t, 4, decoded.CurrentTurn)
}

func TestLoadRoundTrip(t *testing.T) {
	payload, err := json.Marshal(sampleState())
	require.NoError(t, err)

	now := time.Now()
	db := &fakeDB{row: fakeRow{values: []any{payload, string(StatusFinished), "p1", now}}}

	rec, err := NewMatchStore(db).Load(context.Background(), "match-7")
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, rec.Status)
	assert.Equal(t, "p1", rec.Winner)
	assert.Equal(t, now, rec.UpdatedAt)
	require.NotNil(t, rec.State)
	assert.Equal(t, 80, rec.State.Players["p1"].CastleHP)
}

func TestLoadMissingMatch(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	_, err := NewMatchStore(db).Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestListByStatus(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{ids: []string{"m1", "m2"}}}
	ids, err := NewMatchStore(db).ListByStatus(context.Background(), StatusActive)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, ids)
}

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, NewMatchStore(db).EnsureSchema(context.Background()))
	require.Len(t, db.execSQL, 1)
	assert.True(t, strings.Contains(db.execSQL[0], "CREATE TABLE IF NOT EXISTS matches"))
}
