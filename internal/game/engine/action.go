package engine

import (
	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// ActionType identifies the kind of a battle action.
type ActionType string

const (
	ActionDeploy       ActionType = "DEPLOY"
	ActionAttackCard   ActionType = "ATTACK_CARD"
	ActionAttackCastle ActionType = "ATTACK_CASTLE"
	ActionMove         ActionType = "MOVE"
	ActionUseAbility   ActionType = "USE_ABILITY"
	ActionEndTurn      ActionType = "END_TURN"
)

// Action is one player decision. It serializes losslessly so peers can
// replay the exact action the originating client applied.
//
// RandomRoll carries the originating client's random draw in [0,1) for
// critical-hit resolution. When present the engine uses it verbatim,
// which keeps both peers' replays byte-identical; when nil the engine
// falls back to its local source (single-player and AI-only paths).
type Action struct {
	Type           ActionType     `json:"type"`
	PlayerID       string         `json:"playerId"`
	CardID         string         `json:"cardId,omitempty"`
	GeneratedCard  *state.Card    `json:"generatedCard,omitempty"`
	Target         *grid.Position `json:"target,omitempty"`
	TargetCardID   string         `json:"targetCardId,omitempty"`
	TargetPlayerID string         `json:"targetPlayerId,omitempty"`
	Ability        string         `json:"ability,omitempty"`
	RandomRoll     *float64       `json:"randomRoll,omitempty"`
}

// VictoryCondition names how a battle was decided.
type VictoryCondition string

const (
	VictoryCastleDestroyed    VictoryCondition = "CASTLE_DESTROYED"
	VictoryTurnLimit          VictoryCondition = "TURN_LIMIT"
	VictoryResourceExhaustion VictoryCondition = "RESOURCE_EXHAUSTION"
	VictorySurrender          VictoryCondition = "SURRENDER"
)

// VictoryResult reports the winner and the condition that decided it.
type VictoryResult struct {
	WinnerID  string           `json:"winnerId"`
	Condition VictoryCondition `json:"condition"`
}
