package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chainclash/clash-server-go/internal/game/state"
)

// ErrMatchNotFound is returned when no record exists for a match id.
var ErrMatchNotFound = errors.New("repository: match not found")

// MatchStatus is the lifecycle of a persisted match.
type MatchStatus string

const (
	StatusActive    MatchStatus = "ACTIVE"
	StatusFinished  MatchStatus = "FINISHED"
	StatusAbandoned MatchStatus = "ABANDONED"
)

// MatchRecord is the persisted shape of a match: the latest snapshot
// plus coarse lifecycle metadata for lobby queries.
type MatchRecord struct {
	ID        string
	State     *state.BattleState
	Status    MatchStatus
	Winner    string
	UpdatedAt time.Time
}

// MatchStore reads and writes match records.
type MatchStore interface {
	Save(ctx context.Context, rec *MatchRecord) error
	Load(ctx context.Context, id string) (*MatchRecord, error)
	ListByStatus(ctx context.Context, status MatchStatus) ([]string, error)
}

// querier is the slice of the pgx pool surface the store needs; tests
// substitute an in-memory fake.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxMatchStore persists match records in a single jsonb-backed table.
type PgxMatchStore struct {
	db querier
}

// NewMatchStore wraps a pgx pool (or compatible querier).
func NewMatchStore(db querier) *PgxMatchStore {
	return &PgxMatchStore{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS matches (
    id         TEXT PRIMARY KEY,
    state      JSONB NOT NULL,
    status     TEXT NOT NULL,
    winner     TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS matches_status_idx ON matches (status);
`

// EnsureSchema creates the matches table when missing.
func (s *PgxMatchStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create matches schema: %w", err)
	}
	return nil
}

// Save upserts a record, replacing the stored snapshot wholesale.
func (s *PgxMatchStore) Save(ctx context.Context, rec *MatchRecord) error {
	payload, err := json.Marshal(rec.State)
	if err != nil {
		return fmt.Errorf("encode battle state: %w", err)
	}

	_, err = s.db.Exec(ctx, `
INSERT INTO matches (id, state, status, winner, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (id) DO UPDATE
SET state = EXCLUDED.state, status = EXCLUDED.status,
    winner = EXCLUDED.winner, updated_at = now()`,
		rec.ID, payload, string(rec.Status), rec.Winner)
	if err != nil {
		return fmt.Errorf("save match %s: %w", rec.ID, err)
	}
	return nil
}

// Load fetches a record by match id.
func (s *PgxMatchStore) Load(ctx context.Context, id string) (*MatchRecord, error) {
	var (
		payload []byte
		status  string
		rec     = MatchRecord{ID: id}
	)
	err := s.db.QueryRow(ctx,
		`SELECT state, status, winner, updated_at FROM matches WHERE id = $1`, id).
		Scan(&payload, &status, &rec.Winner, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}

	rec.Status = MatchStatus(status)
	rec.State = &state.BattleState{}
	if err := json.Unmarshal(payload, rec.State); err != nil {
		return nil, fmt.Errorf("decode battle state for match %s: %w", id, err)
	}
	return &rec, nil
}

// ListByStatus returns the ids of matches in a lifecycle state, most
// recently updated first.
func (s *PgxMatchStore) ListByStatus(ctx context.Context, status MatchStatus) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id FROM matches WHERE status = $1 ORDER BY updated_at DESC`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan match id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return ids, nil
}
