package strategy

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

var (
	// ErrSelectionTimeout means the remote peer produced no action
	// within the wait window. Timeout is a terminal rejection; the turn
	// loop falls back to ending the turn, never to retrying the wait.
	ErrSelectionTimeout = errors.New("strategy: remote action wait timed out")

	// ErrDisconnected means the transport reported the peer gone.
	ErrDisconnected = errors.New("strategy: remote peer disconnected")

	// ErrWaitCancelled means the turn ended while a wait was
	// outstanding; the pending wait is rejected, not left dangling.
	ErrWaitCancelled = errors.New("strategy: remote action wait cancelled")
)

// DefaultRemoteTimeout bounds how long a remote seat may sit on its
// turn before the wait rejects.
const DefaultRemoteTimeout = 45 * time.Second

// RemoteHuman is a network-driven seat: the transport feeds peer
// actions in via Submit and SelectAction awaits them with a bounded
// timeout. Actions are delivered strictly in arrival order.
type RemoteHuman struct {
	playerID string
	timeout  time.Duration

	actions chan engine.Action

	mu         sync.Mutex
	cancelWait chan struct{}

	disconnected chan struct{}
	discOnce     sync.Once
}

// NewRemoteHuman creates the capability for a remote seat. A zero
// timeout selects DefaultRemoteTimeout.
func NewRemoteHuman(playerID string, timeout time.Duration) *RemoteHuman {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &RemoteHuman{
		playerID:     playerID,
		timeout:      timeout,
		actions:      make(chan engine.Action, 16),
		disconnected: make(chan struct{}),
	}
}

// Submit enqueues a peer-delivered action. It returns false when the
// queue is full or the peer is already marked disconnected; the
// transport treats that as a protocol fault.
func (r *RemoteHuman) Submit(a engine.Action) bool {
	select {
	case <-r.disconnected:
		return false
	default:
	}
	select {
	case r.actions <- a:
		return true
	default:
		return false
	}
}

// Disconnect marks the peer gone. Any outstanding and all future waits
// reject with ErrDisconnected.
func (r *RemoteHuman) Disconnect() {
	r.discOnce.Do(func() { close(r.disconnected) })
}

// SelectAction awaits the next peer action. It rejects on timeout,
// turn-end cancellation, disconnection, or context cancellation —
// whichever comes first.
func (r *RemoteHuman) SelectAction(ctx context.Context, s *state.BattleState) (engine.Action, error) {
	select {
	case <-r.disconnected:
		return engine.Action{}, ErrDisconnected
	default:
	}

	cancel := make(chan struct{})
	r.mu.Lock()
	r.cancelWait = cancel
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		if r.cancelWait == cancel {
			r.cancelWait = nil
		}
		r.mu.Unlock()
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case a := <-r.actions:
		return a, nil
	case <-cancel:
		return engine.Action{}, ErrWaitCancelled
	case <-r.disconnected:
		return engine.Action{}, ErrDisconnected
	case <-timer.C:
		return engine.Action{}, ErrSelectionTimeout
	case <-ctx.Done():
		return engine.Action{}, ctx.Err()
	}
}

func (r *RemoteHuman) OnTurnStart(s *state.BattleState) {}

// OnTurnEnd rejects any wait still outstanding when the turn closes.
func (r *RemoteHuman) OnTurnEnd(s *state.BattleState) {
	r.mu.Lock()
	if r.cancelWait != nil {
		close(r.cancelWait)
		r.cancelWait = nil
	}
	r.mu.Unlock()
}

func (r *RemoteHuman) AvailableCards(s *state.BattleState) []state.Card {
	if p, ok := s.Players[r.playerID]; ok {
		return p.Hand
	}
	return nil
}
