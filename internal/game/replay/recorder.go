package replay

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/chainclash/clash-server-go/internal/game/state"
)

// Recorder manages replay recording across concurrent matches.
type Recorder struct {
	logger  *zap.Logger
	saveDir string

	mu      sync.RWMutex
	replays map[string]*Replay
	enabled map[string]bool
}

// NewRecorder creates a recorder that saves finished replays to saveDir.
func NewRecorder(logger *zap.Logger, saveDir string) *Recorder {
	return &Recorder{
		logger:  logger,
		saveDir: saveDir,
		replays: make(map[string]*Replay),
		enabled: make(map[string]bool),
	}
}

// Start begins recording a battle.
func (rr *Recorder) Start(battleID string) {
	rr.mu.Lock()
	rr.replays[battleID] = New(battleID)
	rr.enabled[battleID] = true
	rr.mu.Unlock()

	if rr.logger != nil {
		rr.logger.Info("replay recording started", zap.String("battle_id", battleID))
	}
}

// Stop suspends recording without discarding captured snapshots.
func (rr *Recorder) Stop(battleID string) {
	rr.mu.Lock()
	rr.enabled[battleID] = false
	rr.mu.Unlock()
}

// Record appends a snapshot when the battle is being recorded.
func (rr *Recorder) Record(battleID string, s *state.BattleState) {
	rr.mu.RLock()
	enabled := rr.enabled[battleID]
	r := rr.replays[battleID]
	rr.mu.RUnlock()

	if !enabled || r == nil {
		return
	}
	r.Record(s)
}

// Replay returns the in-memory replay for a battle.
func (rr *Recorder) Replay(battleID string) (*Replay, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	r, ok := rr.replays[battleID]
	return r, ok
}

// Recording reports whether a battle is currently being recorded.
func (rr *Recorder) Recording(battleID string) bool {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	return rr.enabled[battleID]
}

// Save flushes a battle's replay to disk and drops it from memory.
func (rr *Recorder) Save(battleID string) error {
	rr.mu.Lock()
	r, ok := rr.replays[battleID]
	if !ok {
		rr.mu.Unlock()
		return fmt.Errorf("no replay recorded for battle %s", battleID)
	}
	delete(rr.replays, battleID)
	delete(rr.enabled, battleID)
	rr.mu.Unlock()

	if err := r.Save(rr.saveDir); err != nil {
		return err
	}

	if rr.logger != nil {
		rr.logger.Info("replay saved",
			zap.String("battle_id", battleID),
			zap.Int("snapshots", r.Size()),
			zap.String("directory", rr.saveDir),
		)
	}
	return nil
}

// Load reads a previously saved replay from disk.
func (rr *Recorder) Load(battleID string) (*Replay, error) {
	return Load(rr.saveDir, battleID)
}

// Discard drops a battle's replay from memory without saving.
func (rr *Recorder) Discard(battleID string) {
	rr.mu.Lock()
	delete(rr.replays, battleID)
	delete(rr.enabled, battleID)
	rr.mu.Unlock()
}
