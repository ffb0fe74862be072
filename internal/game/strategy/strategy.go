// Package strategy defines the player capability object: how a seat
// produces actions on its turn. Local humans, remote humans, and AI
// seats all satisfy the same interface so the engine and match loop
// never branch on player type.
package strategy

import (
	"context"
	"errors"

	"github.com/chainclash/clash-server-go/internal/game/ai"
	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// ErrExternalSelection is returned when SelectAction is called on a
// seat whose actions originate outside the turn loop (the local UI
// applies them directly).
var ErrExternalSelection = errors.New("strategy: action selection happens externally for this seat")

// Strategy is the capability a seat exposes to the turn loop.
type Strategy interface {
	// SelectAction produces the seat's next action. It may block (a
	// remote seat awaiting the network) and must honor ctx.
	SelectAction(ctx context.Context, s *state.BattleState) (engine.Action, error)

	// OnTurnStart and OnTurnEnd run at the seat's turn boundaries.
	OnTurnStart(s *state.BattleState)
	OnTurnEnd(s *state.BattleState)

	// AvailableCards lists the cards the seat can currently deploy from.
	AvailableCards(s *state.BattleState) []state.Card
}

// LocalHuman is a UI-driven seat. The presentation layer applies its
// actions through the engine directly, so driving it through the turn
// loop is a caller error.
type LocalHuman struct {
	playerID string
}

// NewLocalHuman creates the capability for a locally controlled seat.
func NewLocalHuman(playerID string) *LocalHuman {
	return &LocalHuman{playerID: playerID}
}

func (h *LocalHuman) SelectAction(ctx context.Context, s *state.BattleState) (engine.Action, error) {
	return engine.Action{}, ErrExternalSelection
}

func (h *LocalHuman) OnTurnStart(s *state.BattleState) {}
func (h *LocalHuman) OnTurnEnd(s *state.BattleState)   {}

func (h *LocalHuman) AvailableCards(s *state.BattleState) []state.Card {
	if p, ok := s.Players[h.playerID]; ok {
		return p.Hand
	}
	return nil
}

// AI is a decision-loop-backed seat.
type AI struct {
	playerID string
	loop     *ai.Loop
}

// NewAI creates the capability for an AI seat backed by a decision loop.
func NewAI(playerID string, loop *ai.Loop) *AI {
	return &AI{playerID: playerID, loop: loop}
}

// SelectAction runs the decision loop. The computation is synchronous
// and pure; ctx is only checked on entry.
func (a *AI) SelectAction(ctx context.Context, s *state.BattleState) (engine.Action, error) {
	if err := ctx.Err(); err != nil {
		return engine.Action{}, err
	}
	return a.loop.Decide(s, a.playerID), nil
}

func (a *AI) OnTurnStart(s *state.BattleState) {}

// OnTurnEnd stamps the seat's observation memory with the closing mode
// so the next decision can judge how the posture played out.
func (a *AI) OnTurnEnd(s *state.BattleState) {
	a.loop.RecordTurn(s, a.playerID)
}

// AvailableCards returns the seat's hand. AI candidates are fabricated
// per decision inside the loop, not held in a collection.
func (a *AI) AvailableCards(s *state.BattleState) []state.Card {
	if p, ok := s.Players[a.playerID]; ok {
		return p.Hand
	}
	return nil
}
