// Package mental implements the fluid mental state: a continuous
// five-axis vector with momentum and an elastic pull back toward the
// personality baseline. Battle events nudge the vector through
// impulses instead of snapping it between discrete moods, so an AI
// flinches after a loss and relaxes back to its baseline over several
// turns.
package mental

import (
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// Vector is one point in mental-state space. Axes live in [0,1] for
// the state itself; momentum components may be negative.
type Vector struct {
	Aggression  float64 `json:"aggression"`
	Caution     float64 `json:"caution"`
	Creativity  float64 `json:"creativity"`
	Desperation float64 `json:"desperation"`
	Confidence  float64 `json:"confidence"`
}

func (v Vector) add(o Vector) Vector {
	return Vector{
		Aggression:  v.Aggression + o.Aggression,
		Caution:     v.Caution + o.Caution,
		Creativity:  v.Creativity + o.Creativity,
		Desperation: v.Desperation + o.Desperation,
		Confidence:  v.Confidence + o.Confidence,
	}
}

func (v Vector) scale(f float64) Vector {
	return Vector{
		Aggression:  v.Aggression * f,
		Caution:     v.Caution * f,
		Creativity:  v.Creativity * f,
		Desperation: v.Desperation * f,
		Confidence:  v.Confidence * f,
	}
}

func (v Vector) sub(o Vector) Vector {
	return v.add(o.scale(-1))
}

func (v Vector) clampUnit() Vector {
	return Vector{
		Aggression:  clamp01(v.Aggression),
		Caution:     clamp01(v.Caution),
		Creativity:  clamp01(v.Creativity),
		Desperation: clamp01(v.Desperation),
		Confidence:  clamp01(v.Confidence),
	}
}

// clampMagnitude limits each momentum component independently so one
// violent event cannot swing an axis across its whole range.
func (v Vector) clampMagnitude(limit float64) Vector {
	return Vector{
		Aggression:  clampAbs(v.Aggression, limit),
		Caution:     clampAbs(v.Caution, limit),
		Creativity:  clampAbs(v.Creativity, limit),
		Desperation: clampAbs(v.Desperation, limit),
		Confidence:  clampAbs(v.Confidence, limit),
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func clampAbs(f, limit float64) float64 {
	if f > limit {
		return limit
	}
	if f < -limit {
		return -limit
	}
	return f
}

// EventKind names a battle observation that produces an impulse.
type EventKind string

const (
	EventKilledEnemyCard    EventKind = "KILLED_ENEMY_CARD"
	EventLostCard           EventKind = "LOST_CARD"
	EventDamagedEnemyCastle EventKind = "DAMAGED_ENEMY_CASTLE"
	EventOwnCastleDamaged   EventKind = "OWN_CASTLE_DAMAGED"
	EventLowHP              EventKind = "LOW_HP"
	EventWinning            EventKind = "WINNING"
	EventLosing             EventKind = "LOSING"
	EventExperimentWorked   EventKind = "EXPERIMENT_WORKED"
	EventExperimentFailed   EventKind = "EXPERIMENT_FAILED"
	EventManaDepleted       EventKind = "MANA_DEPLETED"
	EventOpponentAggressive EventKind = "OPPONENT_AGGRESSIVE"
	EventTurnStart          EventKind = "TURN_START"
)

// impulses maps each event to the push it applies before inertia
// scaling. Magnitudes are tuned so a handful of events over a turn
// produce visible but not violent drift.
var impulses = map[EventKind]Vector{
	EventKilledEnemyCard:    {Aggression: 0.12, Confidence: 0.10, Desperation: -0.05},
	EventLostCard:           {Caution: 0.12, Confidence: -0.10, Desperation: 0.06},
	EventDamagedEnemyCastle: {Aggression: 0.10, Confidence: 0.08},
	EventOwnCastleDamaged:   {Caution: 0.10, Desperation: 0.10, Confidence: -0.06},
	EventLowHP:              {Desperation: 0.18, Caution: 0.08, Aggression: 0.05},
	EventWinning:            {Confidence: 0.12, Creativity: 0.05, Desperation: -0.10},
	EventLosing:             {Desperation: 0.12, Aggression: 0.06, Confidence: -0.08},
	EventExperimentWorked:   {Creativity: 0.15, Confidence: 0.08},
	EventExperimentFailed:   {Creativity: -0.10, Caution: 0.06},
	EventManaDepleted:       {Caution: 0.08, Creativity: -0.04},
	EventOpponentAggressive: {Caution: 0.10, Desperation: 0.04},
	EventTurnStart:          {Creativity: 0.02},
}

// Physics constants for the momentum model.
const (
	DefaultInertia    = 0.4
	DefaultElasticity = 0.08
	DefaultDecay      = 0.85
	MaxMomentum       = 0.35
)

// State is one AI seat's live mental state.
type State struct {
	Current  Vector `json:"current"`
	Momentum Vector `json:"momentum"`
	Baseline Vector `json:"baseline"`

	Inertia    float64 `json:"inertia"`
	Elasticity float64 `json:"elasticity"`
	Decay      float64 `json:"decay"`
}

// BaselineFor derives the gravity point of the mental state from a
// fixed personality: aggressive traits seed aggression, patience seeds
// caution, and low risk tolerance predisposes toward desperation under
// pressure.
func BaselineFor(p state.Personality) Vector {
	return Vector{
		Aggression:  clamp01(p.Aggression),
		Caution:     clamp01(p.Patience),
		Creativity:  clamp01(p.Creativity),
		Desperation: clamp01(0.2 * (1 - p.RiskTolerance)),
		Confidence:  clamp01(0.4 + 0.4*p.Adaptability),
	}
}

// NewState builds a mental state resting at the personality baseline.
func NewState(p state.Personality) *State {
	baseline := BaselineFor(p)
	return &State{
		Current:    baseline,
		Baseline:   baseline,
		Inertia:    DefaultInertia,
		Elasticity: DefaultElasticity,
		Decay:      DefaultDecay,
	}
}

// ApplyEvent feeds one observation into the momentum vector. The
// impulse is scaled by (1 - inertia) and the momentum is clamped to
// its maximum magnitude; the state itself only shifts on Step.
func (s *State) ApplyEvent(kind EventKind) {
	impulse, ok := impulses[kind]
	if !ok {
		return
	}
	s.Momentum = s.Momentum.add(impulse.scale(1 - s.Inertia)).clampMagnitude(MaxMomentum)
}

// Step advances the physics one tick: momentum moves the state, the
// elastic pull toward the baseline is added back into momentum, and
// momentum decays multiplicatively.
func (s *State) Step() {
	s.Current = s.Current.add(s.Momentum).clampUnit()
	pull := s.Baseline.sub(s.Current).scale(s.Elasticity)
	s.Momentum = s.Momentum.add(pull).scale(s.Decay).clampMagnitude(MaxMomentum)
}

// Blend mixes the drifting mental state into the fixed personality for
// option generation: the result leans toward live state by weight.
func (s *State) Blend(p state.Personality, weight float64) state.Personality {
	w := clamp01(weight)
	return state.Personality{
		Aggression:    p.Aggression*(1-w) + s.Current.Aggression*w,
		Creativity:    p.Creativity*(1-w) + s.Current.Creativity*w,
		RiskTolerance: p.RiskTolerance*(1-w) + (1-s.Current.Caution)*w,
		Patience:      p.Patience*(1-w) + s.Current.Caution*w,
		Adaptability:  p.Adaptability*(1-w) + s.Current.Confidence*w,
	}
}
