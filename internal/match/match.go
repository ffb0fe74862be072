package match

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/replay"
	"github.com/chainclash/clash-server-go/internal/game/state"
	"github.com/chainclash/clash-server-go/internal/game/strategy"
	"github.com/chainclash/clash-server-go/internal/repository"
)

// maxRejections bounds how many consecutively rejected actions a seat
// may produce in one turn before the turn is forced closed. Guards
// against a strategy that keeps proposing illegal actions.
const maxRejections = 5

// Observer receives a match's applied transitions, outside the state
// mutex and in apply order. Peers use it to push actions and the
// outcome to connected clients.
type Observer interface {
	ActionApplied(a engine.Action, s *state.BattleState)
	MatchFinished(s *state.BattleState)
}

// Match is one live battle. All mutation goes through the mutex: the
// snapshot pointer is replaced, never written through.
type Match struct {
	ID string

	logger     *zap.Logger
	eng        *engine.Engine
	store      repository.MatchStore
	recorder   *replay.Recorder
	strategies map[string]strategy.Strategy

	mu      sync.RWMutex
	current *state.BattleState

	obsMu     sync.Mutex
	observers []Observer
}

// AddObserver subscribes o to the match's applied transitions.
func (m *Match) AddObserver(o Observer) {
	m.obsMu.Lock()
	defer m.obsMu.Unlock()
	m.observers = append(m.observers, o)
}

// RemoveObserver unsubscribes o.
func (m *Match) RemoveObserver(o Observer) {
	m.obsMu.Lock()
	defer m.obsMu.Unlock()
	for i, existing := range m.observers {
		if existing == o {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}

func (m *Match) observerList() []Observer {
	m.obsMu.Lock()
	defer m.obsMu.Unlock()
	return append([]Observer(nil), m.observers...)
}

func (m *Match) notifyApplied(a engine.Action, s *state.BattleState) {
	for _, o := range m.observerList() {
		o.ActionApplied(a, s)
	}
	if s.Phase == state.PhaseVictory {
		m.notifyFinished(s)
	}
}

func (m *Match) notifyFinished(s *state.BattleState) {
	for _, o := range m.observerList() {
		o.MatchFinished(s)
	}
}

// State returns the latest snapshot. Snapshots are immutable; callers
// read freely and never write.
func (m *Match) State() *state.BattleState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Finished reports whether the battle has concluded.
func (m *Match) Finished() bool {
	return m.State().Phase == state.PhaseVictory
}

// Submit applies an externally originated action (UI or remote peer).
// Rejection returns false with the state unchanged; this is routine,
// not an error.
func (m *Match) Submit(ctx context.Context, a engine.Action) (bool, error) {
	m.mu.Lock()
	next, applied := m.eng.Apply(m.current, a)
	m.current = next
	m.mu.Unlock()

	if !applied {
		return false, nil
	}
	m.record(next)
	m.notifyApplied(a, next)
	return true, m.persist(ctx)
}

// EndTurn closes the active seat's turn.
func (m *Match) EndTurn(ctx context.Context, playerID string) error {
	m.mu.Lock()
	next := m.eng.EndTurn(m.current, playerID)
	changed := next != m.current
	m.current = next
	m.mu.Unlock()

	if !changed {
		return nil
	}
	m.record(next)
	m.notifyApplied(engine.Action{Type: engine.ActionEndTurn, PlayerID: playerID}, next)
	return m.persist(ctx)
}

// Surrender concedes the match for playerID. Per the victory rules
// this bypasses the action pipeline: the winner and phase are set
// directly on a fresh snapshot.
func (m *Match) Surrender(ctx context.Context, playerID string) error {
	m.mu.Lock()
	s := m.current.Clone()
	winner := s.OpponentOf(playerID)
	s.Winner = winner
	s.Phase = state.PhaseVictory
	m.current = s
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Info("match surrendered",
			zap.String("match_id", m.ID),
			zap.String("player_id", playerID),
			zap.String("winner", winner),
		)
	}
	m.record(s)
	m.notifyFinished(s)
	return m.persist(ctx)
}

// RunTurn drives the active seat's strategy until it ends the turn,
// wins, or fails. Selection failures (timeout, disconnection,
// cancelled wait) fall back to ending the turn; they never retry the
// wait.
func (m *Match) RunTurn(ctx context.Context) error {
	active := m.State().ActivePlayerID
	strat, ok := m.strategies[active]
	if !ok || strat == nil {
		return m.EndTurn(ctx, active)
	}

	rejections := 0
	for {
		s := m.State()
		if s.Phase == state.PhaseVictory {
			return nil
		}
		if s.ActivePlayerID != active {
			return nil
		}

		action, err := strat.SelectAction(ctx, s)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if m.logger != nil {
				m.logger.Info("selection failed, closing turn",
					zap.String("match_id", m.ID),
					zap.String("player_id", active),
					zap.Error(err),
				)
			}
			return m.EndTurn(ctx, active)
		}

		if action.Type == engine.ActionEndTurn {
			return m.EndTurn(ctx, active)
		}

		applied, err := m.Submit(ctx, action)
		if err != nil {
			return err
		}
		if !applied {
			rejections++
			if rejections >= maxRejections {
				return m.EndTurn(ctx, active)
			}
			continue
		}
		rejections = 0
	}
}

// Run plays the match to completion, then persists the terminal
// record. Intended for AI-versus-AI or fully scripted matches; turns
// with interactive seats should be driven per-turn instead.
func (m *Match) Run(ctx context.Context) error {
	for !m.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.RunTurn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *Match) record(s *state.BattleState) {
	if m.recorder != nil {
		m.recorder.Record(m.ID, s)
	}
}

func (m *Match) persist(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	s := m.State()

	status := repository.StatusActive
	if s.Phase == state.PhaseVictory {
		status = repository.StatusFinished
	}
	return m.store.Save(ctx, &repository.MatchRecord{
		ID:     m.ID,
		State:  s,
		Status: status,
		Winner: s.Winner,
	})
}
