// Package ai implements the opponent decision system: a six-stage loop
// that validates the board, drifts the seat's fluid mental state,
// derives a strategic mode, generates and scores candidate actions,
// and picks one with a creativity-driven variance.
package ai

import (
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/chainclash/clash-server-go/internal/game/ai/mental"
	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/options"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

const (
	// blendWeight is how far the live mental state displaces the fixed
	// personality when parameterizing option generation.
	blendWeight = 0.5

	// varianceFactor scales creativity into the probability of picking
	// among the top three actions instead of the single best.
	varianceFactor = 0.3

	// generatedCandidates is how many cards are fabricated per decision.
	generatedCandidates = 3

	lowCastleRatio = 0.3
	leadThreshold  = 0.2
	lowManaFloor   = 2

	// aggressionAlarm is the observed-opponent-aggression level above
	// which the seat registers pressure; minObservations keeps the noisy
	// first few actions from tripping it.
	aggressionAlarm = 0.6
	minObservations = 4
)

// Loop drives decisions for every AI seat it serves. Mental states are
// keyed by player id and survive across turns within a match.
type Loop struct {
	logger *zap.Logger
	eng    *engine.Engine
	rng    *rand.Rand
	minds  map[string]*mental.State
}

// NewLoop creates a decision loop. The seed fixes both card
// fabrication and variance picks, making whole AI turns replayable.
func NewLoop(logger *zap.Logger, eng *engine.Engine, seed int64) *Loop {
	return &Loop{
		logger: logger,
		eng:    eng,
		rng:    rand.New(rand.NewSource(seed)),
		minds:  make(map[string]*mental.State),
	}
}

// Mind returns the seat's mental state, creating it at the personality
// baseline on first use.
func (l *Loop) Mind(p *state.Player) *mental.State {
	if m, ok := l.minds[p.ID]; ok {
		return m
	}
	pers := state.Personality{}
	if p.Personality != nil {
		pers = *p.Personality
	}
	m := mental.NewState(pers)
	l.minds[p.ID] = m
	return m
}

// Decide runs the six decision stages for playerID and returns the
// chosen action. When no legal action exists it returns an end-turn.
func (l *Loop) Decide(s *state.BattleState, playerID string) engine.Action {
	// Stage 1: validation. Diagnostics only, no repair.
	l.validate(s, playerID)

	player, ok := s.Players[playerID]
	if !ok {
		return engine.Action{Type: engine.ActionEndTurn, PlayerID: playerID}
	}

	// Stage 2: derive triggers from the board and advance the physics.
	mind := l.Mind(player)
	for _, event := range l.deriveTriggers(s, player) {
		mind.ApplyEvent(event)
	}
	mind.Step()

	// Stage 3: read the dominant strategic mode off the vector.
	mode := ModeFor(mind.Current)

	// Stage 4: generate options under the blended personality.
	basePersonality := state.Personality{}
	if player.Personality != nil {
		basePersonality = *player.Personality
	}
	blended := mind.Blend(basePersonality, blendWeight)
	candidates := options.GenerateCards(player, mode, blended, generatedCandidates, l.rng)
	actions := options.LegalActions(s, playerID, candidates)

	if len(actions) == 0 {
		return engine.Action{Type: engine.ActionEndTurn, PlayerID: playerID}
	}

	// Stage 5: score, sort, and apply the variance pick.
	scored := l.scoreAll(s, playerID, mode, actions)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	chosen := scored[0]
	if l.rng.Float64() < blended.Creativity*varianceFactor {
		top := 3
		if len(scored) < top {
			top = len(scored)
		}
		chosen = scored[l.rng.Intn(top)]
	}

	// Stage 6: record the decision trace. Memory stays read-only here;
	// persistent memory changes ride on engine transitions instead.
	if l.logger != nil {
		l.logger.Debug("ai decision",
			zap.String("battle_id", s.ID),
			zap.String("player_id", playerID),
			zap.String("mode", string(mode)),
			zap.String("previous_mode", s.AIMemories[playerID].LastMode),
			zap.String("action_type", string(chosen.action.Type)),
			zap.Float64("score", chosen.score),
			zap.Int("options", len(actions)),
			zap.Float64("aggression", mind.Current.Aggression),
			zap.Float64("desperation", mind.Current.Desperation),
		)
	}

	return chosen.action
}

// validate sanity-checks the acting seat and battlefield shape. Broken
// invariants are logged and never repaired: they indicate misuse of
// the core, not a recoverable condition.
func (l *Loop) validate(s *state.BattleState, playerID string) {
	if l.logger == nil {
		return
	}
	if _, ok := s.Players[playerID]; !ok {
		l.logger.Warn("ai validation: acting player missing from state",
			zap.String("battle_id", s.ID),
			zap.String("player_id", playerID),
		)
	}
	if len(s.Battlefield) != s.Layout.Rows {
		l.logger.Warn("ai validation: battlefield row count mismatch",
			zap.String("battle_id", s.ID),
			zap.Int("rows", len(s.Battlefield)),
			zap.Int("layout_rows", s.Layout.Rows),
		)
		return
	}
	for r, row := range s.Battlefield {
		if len(row) != s.Layout.Cols {
			l.logger.Warn("ai validation: battlefield column count mismatch",
				zap.String("battle_id", s.ID),
				zap.Int("row", r),
				zap.Int("cols", len(row)),
				zap.Int("layout_cols", s.Layout.Cols),
			)
			return
		}
	}
}

// deriveTriggers turns board facts into mental events: castle HP lead
// or deficit, low castle HP, and depleted mana.
func (l *Loop) deriveTriggers(s *state.BattleState, player *state.Player) []mental.EventKind {
	events := []mental.EventKind{mental.EventTurnStart}

	opponent := s.Players[s.OpponentOf(player.ID)]
	if opponent != nil && player.MaxCastleHP > 0 && opponent.MaxCastleHP > 0 {
		ownRatio := float64(player.CastleHP) / float64(player.MaxCastleHP)
		enemyRatio := float64(opponent.CastleHP) / float64(opponent.MaxCastleHP)

		if ownRatio-enemyRatio > leadThreshold {
			events = append(events, mental.EventWinning)
		} else if enemyRatio-ownRatio > leadThreshold {
			events = append(events, mental.EventLosing)
		}
		if ownRatio < lowCastleRatio {
			events = append(events, mental.EventLowHP)
		}
	}

	if player.Mana < lowManaFloor {
		events = append(events, mental.EventManaDepleted)
	}

	if mem, ok := s.AIMemories[player.ID]; ok {
		if mem.ActionsObserved >= minObservations && mem.OpponentAggression > aggressionAlarm {
			events = append(events, mental.EventOpponentAggressive)
		}
		// An experimental turn is judged by the material ledger it left.
		if mem.LastMode == string(options.ModeExperimental) {
			if mem.CardsDestroyed > mem.CardsLost {
				events = append(events, mental.EventExperimentWorked)
			} else if mem.CardsLost > mem.CardsDestroyed {
				events = append(events, mental.EventExperimentFailed)
			}
		}
	}

	return events
}

// RecordTurn stamps the seat's memory with the mode its mental state
// resolves to at the turn boundary. Runs against the mutable snapshot
// the engine hands to turn hooks.
func (l *Loop) RecordTurn(s *state.BattleState, playerID string) {
	player, ok := s.Players[playerID]
	if !ok || s.AIMemories == nil {
		return
	}
	mem := s.AIMemories[playerID]
	mem.LastMode = string(ModeFor(l.Mind(player).Current))
	s.AIMemories[playerID] = mem
}
