// Package engine implements the battle state machine: a pure
// (state, action) -> state transition function plus turn advancement
// and victory evaluation. Apply never mutates its input; every
// transition returns a fresh snapshot built from a deep clone.
package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// TurnHooks is the slice of the player strategy capability the engine
// invokes at turn boundaries. The engine never sees the full strategy
// and never branches on player type.
type TurnHooks interface {
	OnTurnStart(s *state.BattleState)
	OnTurnEnd(s *state.BattleState)
}

// Engine applies battle actions. One instance serves many matches
// running on separate goroutines; the hook registry and the fallback
// random source are its only mutable state and sit behind the mutex.
type Engine struct {
	logger *zap.Logger
	cfg    Config

	mu    sync.Mutex
	rng   *rand.Rand
	hooks map[string]TurnHooks
}

// New creates an engine with the given config. A zero RandomSeed seeds
// the fallback source from the wall clock; tests pass a fixed seed.
func New(logger *zap.Logger, cfg Config) *Engine {
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		logger: logger,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		hooks:  make(map[string]TurnHooks),
	}
}

// Config returns the engine's rule parameters.
func (e *Engine) Config() Config {
	return e.cfg
}

// RegisterTurnHooks attaches a strategy's turn hooks for a seat.
func (e *Engine) RegisterTurnHooks(playerID string, hooks TurnHooks) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooks[playerID] = hooks
}

// UnregisterTurnHooks detaches a seat's turn hooks when its match is
// removed.
func (e *Engine) UnregisterTurnHooks(playerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.hooks, playerID)
}

func (e *Engine) turnHooks(playerID string) (TurnHooks, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	hooks, ok := e.hooks[playerID]
	return hooks, ok
}

// terrainModifiers maps terrain kinds to their combat multipliers.
var terrainModifiers = map[grid.TerrainKind]state.TerrainEffect{
	grid.TerrainForest: {Kind: grid.TerrainForest, AttackMod: 1.00, DefenseMod: 1.15, SpeedMod: 0.90},
	grid.TerrainHill:   {Kind: grid.TerrainHill, AttackMod: 1.20, DefenseMod: 1.00, SpeedMod: 1.00},
	grid.TerrainSwamp:  {Kind: grid.TerrainSwamp, AttackMod: 0.90, DefenseMod: 1.00, SpeedMod: 0.80},
	grid.TerrainRuins:  {Kind: grid.TerrainRuins, AttackMod: 1.05, DefenseMod: 1.10, SpeedMod: 1.00},
}

// Initialize creates the opening snapshot for a match between two
// players on the given layout. Player one in argument order moves
// first and deploys from the left half.
func (e *Engine) Initialize(p1, p2 *state.Player, layout grid.Layout) *state.BattleState {
	players := []*state.Player{p1.Clone(), p2.Clone()}
	order := make([]string, len(players))
	byID := make(map[string]*state.Player, len(players))
	for i, p := range players {
		if p.MaxCastleHP == 0 {
			p.MaxCastleHP = e.cfg.StartingCastleHP
			p.CastleHP = e.cfg.StartingCastleHP
		}
		if p.MaxMana == 0 {
			p.MaxMana = e.cfg.MaxMana
			p.Mana = e.cfg.StartingMana
		}
		order[i] = p.ID
		byID[p.ID] = p
	}

	var terrain []state.TerrainEffect
	for _, tile := range layout.Special {
		if mods, ok := terrainModifiers[tile.Terrain]; ok {
			mods.Pos = tile.Pos
			terrain = append(terrain, mods)
		}
	}

	s := &state.BattleState{
		ID:              uuid.New().String(),
		CurrentTurn:     1,
		Phase:           state.PhaseDeployment,
		ActivePlayerID:  order[0],
		PlayerOrder:     order,
		Players:         byID,
		Battlefield:     state.NewBattlefield(layout),
		Layout:          layout,
		TerrainEffects:  terrain,
		ControlledZones: make(map[string]string),
		AIMemories:      make(map[string]state.AIMemory),
	}

	if e.logger != nil {
		e.logger.Info("battle initialized",
			zap.String("battle_id", s.ID),
			zap.Strings("players", order),
			zap.Int("rows", layout.Rows),
			zap.Int("cols", layout.Cols),
		)
	}

	return s
}

// roll returns the critical-hit roll for an action: the peer-supplied
// value when present, otherwise a draw from the local source.
func (e *Engine) roll(a Action) float64 {
	if a.RandomRoll != nil {
		return *a.RandomRoll
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}
