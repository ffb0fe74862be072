package state

import (
	"time"

	"github.com/chainclash/clash-server-go/internal/game/grid"
)

// Phase is the coarse lifecycle of a battle.
type Phase string

const (
	PhaseDeployment Phase = "DEPLOYMENT"
	PhaseBattle     Phase = "BATTLE"
	PhaseVictory    Phase = "VICTORY"
)

// Weather is a battle-wide modifier with a remaining-turns counter that
// ticks down once per full turn cycle and clears at 0.
type Weather struct {
	Name           string  `json:"name"`
	AttackMod      float64 `json:"attackMod"`
	DefenseMod     float64 `json:"defenseMod"`
	SpeedMod       float64 `json:"speedMod"`
	TurnsRemaining int     `json:"turnsRemaining"`
}

// TerrainEffect carries the combat modifiers for one terrain tile.
type TerrainEffect struct {
	Pos        grid.Position    `json:"pos"`
	Kind       grid.TerrainKind `json:"kind"`
	AttackMod  float64          `json:"attackMod"`
	DefenseMod float64          `json:"defenseMod"`
	SpeedMod   float64          `json:"speedMod"`
}

// LogEntry is one record in the append-only battle log. Seq is assigned
// from the state's per-match counter so replays produce identical ids.
type LogEntry struct {
	Seq       int       `json:"seq"`
	Turn      int       `json:"turn"`
	PlayerID  string    `json:"playerId"`
	Action    string    `json:"action"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// Log entry action kinds.
const (
	LogCardDeployed   = "CARD_DEPLOYED"
	LogCardAttacked   = "CARD_ATTACKED"
	LogCardDestroyed  = "CARD_DESTROYED"
	LogCastleAttacked = "CASTLE_ATTACKED"
	LogCardMoved      = "CARD_MOVED"
	LogAbilityUsed    = "ABILITY_USED"
	LogTurnEnded      = "TURN_ENDED"
)

// AIMemory is the persisted observation record for an AI seat. The
// decision loop reads it but never mutates it mid-decision; updates
// ride on engine transitions and turn boundaries.
type AIMemory struct {
	ActionsObserved    int     `json:"actionsObserved"`
	CardsLost          int     `json:"cardsLost"`
	CardsDestroyed     int     `json:"cardsDestroyed"`
	LastMode           string  `json:"lastMode,omitempty"`
	OpponentAggression float64 `json:"opponentAggression"`
}

// BattleState is the aggregate root: one serializable snapshot of a
// match. Consumers treat every snapshot as immutable; transitions build
// a full copy via Clone and return that.
type BattleState struct {
	ID              string              `json:"id"`
	CurrentTurn     int                 `json:"currentTurn"`
	Phase           Phase               `json:"phase"`
	ActivePlayerID  string              `json:"activePlayerId"`
	PlayerOrder     []string            `json:"playerOrder"`
	Players         map[string]*Player  `json:"players"`
	Battlefield     [][]*BattleCard     `json:"battlefield"`
	Layout          grid.Layout         `json:"layout"`
	Weather         *Weather            `json:"weather,omitempty"`
	TerrainEffects  []TerrainEffect     `json:"terrainEffects,omitempty"`
	ControlledZones map[string]string   `json:"controlledZones"`
	Winner          string              `json:"winner,omitempty"`
	Log             []LogEntry          `json:"log"`
	AIMemories      map[string]AIMemory `json:"aiMemories,omitempty"`
	NextSeq         int                 `json:"nextSeq"`
}

// NewBattlefield allocates an empty grid of the layout's dimensions.
func NewBattlefield(layout grid.Layout) [][]*BattleCard {
	field := make([][]*BattleCard, layout.Rows)
	for r := range field {
		field[r] = make([]*BattleCard, layout.Cols)
	}
	return field
}

// CardAt returns the card at pos, or nil for empty or out-of-bounds
// cells.
func (s *BattleState) CardAt(pos grid.Position) *BattleCard {
	if !s.Layout.InBounds(pos) {
		return nil
	}
	return s.Battlefield[pos.Row][pos.Col]
}

// CardByID finds a placed card by its persistent id.
func (s *BattleState) CardByID(id string) *BattleCard {
	for _, row := range s.Battlefield {
		for _, c := range row {
			if c != nil && c.ID == id {
				return c
			}
		}
	}
	return nil
}

// CardsOwnedBy returns every placed card belonging to playerID, in
// row-major order so iteration is deterministic.
func (s *BattleState) CardsOwnedBy(playerID string) []*BattleCard {
	var cards []*BattleCard
	for _, row := range s.Battlefield {
		for _, c := range row {
			if c != nil && c.OwnerID == playerID {
				cards = append(cards, c)
			}
		}
	}
	return cards
}

// OpponentOf returns the id of the other seat in battle order.
func (s *BattleState) OpponentOf(playerID string) string {
	for _, id := range s.PlayerOrder {
		if id != playerID {
			return id
		}
	}
	return ""
}

// NextPlayerAfter returns the next seat in fixed cyclic order and
// whether the cycle wrapped back to the first seat.
func (s *BattleState) NextPlayerAfter(playerID string) (string, bool) {
	for i, id := range s.PlayerOrder {
		if id == playerID {
			next := s.PlayerOrder[(i+1)%len(s.PlayerOrder)]
			return next, (i+1)%len(s.PlayerOrder) == 0
		}
	}
	return s.PlayerOrder[0], false
}

// SideOf returns the deployment side for playerID based on battle order.
func (s *BattleState) SideOf(playerID string) grid.Side {
	if len(s.PlayerOrder) > 0 && s.PlayerOrder[0] == playerID {
		return grid.SideLeft
	}
	return grid.SideRight
}

// TerrainEffectAt returns the terrain effect covering pos, or nil.
func (s *BattleState) TerrainEffectAt(pos grid.Position) *TerrainEffect {
	for i := range s.TerrainEffects {
		if s.TerrainEffects[i].Pos == pos {
			return &s.TerrainEffects[i]
		}
	}
	return nil
}

// AppendLog appends an entry using the per-match sequence counter.
// Mutates the receiver: callers append only to freshly cloned states.
func (s *BattleState) AppendLog(playerID, action, result string) {
	s.NextSeq++
	s.Log = append(s.Log, LogEntry{
		Seq:       s.NextSeq,
		Turn:      s.CurrentTurn,
		PlayerID:  playerID,
		Action:    action,
		Result:    result,
		Timestamp: time.Now().UTC(),
	})
}
