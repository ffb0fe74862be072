// Package match owns the lifecycle of running battles: it wires seats
// to their strategies, drives turns through the engine, persists each
// snapshot, and records replays.
package match

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/replay"
	"github.com/chainclash/clash-server-go/internal/game/state"
	"github.com/chainclash/clash-server-go/internal/game/strategy"
	"github.com/chainclash/clash-server-go/internal/repository"
)

// ErrMatchUnknown is returned for operations on an id the manager does
// not hold.
var ErrMatchUnknown = errors.New("match: unknown match id")

// Manager tracks live matches. Persistence and replay recording are
// optional collaborators; a nil store or recorder disables them.
type Manager struct {
	logger   *zap.Logger
	eng      *engine.Engine
	store    repository.MatchStore
	recorder *replay.Recorder

	mu      sync.RWMutex
	matches map[string]*Match
}

// NewManager creates a match manager around one engine instance.
func NewManager(logger *zap.Logger, eng *engine.Engine, store repository.MatchStore, recorder *replay.Recorder) *Manager {
	return &Manager{
		logger:   logger,
		eng:      eng,
		store:    store,
		recorder: recorder,
		matches:  make(map[string]*Match),
	}
}

// Create initializes a battle between two players and registers their
// strategies with the engine's turn hooks.
func (m *Manager) Create(ctx context.Context, p1, p2 *state.Player, layout grid.Layout, strategies map[string]strategy.Strategy) (*Match, error) {
	s := m.eng.Initialize(p1, p2, layout)

	for id, strat := range strategies {
		m.eng.RegisterTurnHooks(id, turnHooks{strat})
	}

	match := &Match{
		ID:         s.ID,
		logger:     m.logger,
		eng:        m.eng,
		store:      m.store,
		recorder:   m.recorder,
		strategies: strategies,
		current:    s,
	}

	if m.recorder != nil {
		m.recorder.Start(s.ID)
		m.recorder.Record(s.ID, s)
	}
	if err := match.persist(ctx); err != nil {
		return nil, fmt.Errorf("persist initial snapshot: %w", err)
	}

	m.mu.Lock()
	m.matches[s.ID] = match
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Info("match created",
			zap.String("match_id", s.ID),
			zap.Strings("players", s.PlayerOrder),
		)
	}
	return match, nil
}

// Get returns a live match by id.
func (m *Manager) Get(id string) (*Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if match, ok := m.matches[id]; ok {
		return match, nil
	}
	return nil, ErrMatchUnknown
}

// Remove drops a finished match, detaching its seats from the engine
// and flushing its replay to disk.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	match, ok := m.matches[id]
	delete(m.matches, id)
	m.mu.Unlock()

	if ok {
		for seatID := range match.strategies {
			m.eng.UnregisterTurnHooks(seatID)
		}
	}

	if m.recorder != nil {
		if err := m.recorder.Save(id); err != nil && m.logger != nil {
			m.logger.Warn("replay flush failed", zap.String("match_id", id), zap.Error(err))
		}
	}
}

// Active returns the ids of matches still registered.
func (m *Manager) Active() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.matches))
	for id := range m.matches {
		ids = append(ids, id)
	}
	return ids
}

// turnHooks adapts a strategy to the engine's turn boundary interface.
type turnHooks struct {
	strat strategy.Strategy
}

func (h turnHooks) OnTurnStart(s *state.BattleState) { h.strat.OnTurnStart(s) }
func (h turnHooks) OnTurnEnd(s *state.BattleState)   { h.strat.OnTurnEnd(s) }
