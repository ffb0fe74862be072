// Package replay records the snapshot chain a battle produces and
// plays it back. Because the engine never mutates a snapshot after
// returning it, recording is append-by-reference with no copying.
package replay

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chainclash/clash-server-go/internal/game/state"
)

const fileVersion = 1

// Replay is one battle's ordered snapshot list plus a playback cursor.
type Replay struct {
	BattleID string
	States   []*state.BattleState

	mu     sync.RWMutex
	cursor int
}

// New creates an empty replay for a battle.
func New(battleID string) *Replay {
	return &Replay{BattleID: battleID}
}

// Record appends a snapshot.
func (r *Replay) Record(s *state.BattleState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.States = append(r.States, s)
}

// Rewind resets the playback cursor to the first snapshot.
func (r *Replay) Rewind() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = 0
}

// Next returns the snapshot at the cursor and advances it, or nil at
// the end of the recording.
func (r *Replay) Next() *state.BattleState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cursor >= len(r.States) {
		return nil
	}
	s := r.States[r.cursor]
	r.cursor++
	return s
}

// Previous steps the cursor back one snapshot, or returns nil at the
// start of the recording.
func (r *Replay) Previous() *state.BattleState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cursor == 0 {
		return nil
	}
	r.cursor--
	return r.States[r.cursor]
}

// Skip moves the cursor by count snapshots in either direction,
// clamped to the recording bounds, and returns the snapshot there.
func (r *Replay) Skip(count int) *state.BattleState {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.cursor + count
	if idx >= len(r.States) {
		idx = len(r.States) - 1
	}
	if idx < 0 {
		idx = 0
	}
	r.cursor = idx
	if idx < len(r.States) {
		return r.States[idx]
	}
	return nil
}

// Size returns the number of recorded snapshots.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.States)
}

// At returns the snapshot at index without moving the cursor.
func (r *Replay) At(index int) *state.BattleState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.States) {
		return nil
	}
	return r.States[index]
}

type fileHeader struct {
	BattleID   string
	SavedAt    time.Time
	Version    int
	StateCount int
}

// Save writes the replay to <dir>/<battleID>.replay as gob inside gzip.
func (r *Replay) Save(dir string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create replay directory: %w", err)
	}

	file, err := os.Create(replayPath(dir, r.BattleID))
	if err != nil {
		return fmt.Errorf("create replay file: %w", err)
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	defer zw.Close()
	enc := gob.NewEncoder(zw)

	header := fileHeader{
		BattleID:   r.BattleID,
		SavedAt:    time.Now(),
		Version:    fileVersion,
		StateCount: len(r.States),
	}
	if err := enc.Encode(&header); err != nil {
		return fmt.Errorf("encode replay header: %w", err)
	}
	for i, s := range r.States {
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode snapshot %d: %w", i, err)
		}
	}
	return nil
}

// Load reads a replay previously written by Save.
func Load(dir, battleID string) (*Replay, error) {
	file, err := os.Open(replayPath(dir, battleID))
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	defer zr.Close()
	dec := gob.NewDecoder(zr)

	var header fileHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("decode replay header: %w", err)
	}
	if header.Version != fileVersion {
		return nil, fmt.Errorf("unsupported replay version %d", header.Version)
	}

	r := New(header.BattleID)
	for i := 0; i < header.StateCount; i++ {
		var s state.BattleState
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode snapshot %d: %w", i, err)
		}
		r.States = append(r.States, &s)
	}
	return r, nil
}

func replayPath(dir, battleID string) string {
	return filepath.Join(dir, fmt.Sprintf("%s.replay", battleID))
}
