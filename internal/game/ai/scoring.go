package ai

import (
	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/options"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// noCritRoll is the roll used for damage estimates during scoring:
// the scorer plans around the guaranteed floor, never the crit.
const noCritRoll = 0.99

type scoredAction struct {
	action engine.Action
	score  float64
}

// Mode bonuses applied on top of the base heuristics.
const (
	killBonus            = 30.0
	aggressiveStrikeBias = 10.0
	desperateStrikeBias  = 8.0
	defensiveDeployBias  = 6.0
	experimentalNovelty  = 5.0
)

// scoreAll evaluates every candidate action under the current mode.
func (l *Loop) scoreAll(s *state.BattleState, playerID string, mode options.Mode, actions []engine.Action) []scoredAction {
	scored := make([]scoredAction, 0, len(actions))
	for _, a := range actions {
		scored = append(scored, scoredAction{action: a, score: l.scoreAction(s, playerID, mode, a)})
	}
	return scored
}

func (l *Loop) scoreAction(s *state.BattleState, playerID string, mode options.Mode, a engine.Action) float64 {
	switch a.Type {
	case engine.ActionDeploy:
		return l.scoreDeploy(s, playerID, mode, a)
	case engine.ActionAttackCard:
		return l.scoreAttackCard(s, playerID, mode, a)
	case engine.ActionAttackCastle:
		return l.scoreAttackCastle(s, playerID, mode, a)
	case engine.ActionMove:
		return l.scoreMove(s, playerID, a)
	default:
		return 0
	}
}

// scoreDeploy values stats bought per mana plus the positional fit of
// the target cell.
func (l *Loop) scoreDeploy(s *state.BattleState, playerID string, mode options.Mode, a engine.Action) float64 {
	card := deployCard(s, playerID, a)
	if card == nil || a.Target == nil {
		return 0
	}

	score := 10.0
	score += statValue(card)
	score += options.CellScore(s, playerID, *a.Target)

	if card.ManaCost > 0 {
		score += statValue(card) / float64(card.ManaCost)
	}

	switch mode {
	case options.ModeDefensive:
		score += float64(card.Defense) + defensiveDeployBias
	case options.ModeAggressive, options.ModeDesperate:
		score += float64(card.Attack)
	case options.ModeExperimental:
		if len(card.Abilities) > 0 {
			score += experimentalNovelty
		}
	}
	return score
}

// scoreAttackCard values removal: estimated damage, a large bonus when
// the strike kills, and the threat the target projects.
func (l *Loop) scoreAttackCard(s *state.BattleState, playerID string, mode options.Mode, a engine.Action) float64 {
	attacker := s.CardByID(a.CardID)
	target := s.CardByID(a.TargetCardID)
	if attacker == nil || target == nil {
		return 0
	}

	damage, _ := l.eng.ComputeCardDamage(s, attacker, target, noCritRoll)
	score := float64(damage)
	if damage >= target.HP {
		score += killBonus
	}
	score += float64(target.Attack)

	switch mode {
	case options.ModeAggressive:
		score += aggressiveStrikeBias
	case options.ModeDesperate:
		score += desperateStrikeBias
	}
	return score
}

// scoreAttackCastle values direct pressure on the win condition; the
// weight doubles relative to card damage since castle HP never heals.
func (l *Loop) scoreAttackCastle(s *state.BattleState, playerID string, mode options.Mode, a engine.Action) float64 {
	attacker := s.CardByID(a.CardID)
	if attacker == nil {
		return 0
	}

	damage, _ := l.eng.ComputeCastleDamage(s, attacker, noCritRoll)
	score := float64(damage) * 2

	if target, ok := s.Players[a.TargetPlayerID]; ok && damage >= target.CastleHP {
		score += killBonus * 2
	}

	switch mode {
	case options.ModeAggressive:
		score += aggressiveStrikeBias
	case options.ModeDesperate:
		score += desperateStrikeBias
	}
	return score
}

// scoreMove values the positional gain between the current cell and
// the target cell.
func (l *Loop) scoreMove(s *state.BattleState, playerID string, a engine.Action) float64 {
	card := s.CardByID(a.CardID)
	if card == nil || a.Target == nil {
		return 0
	}
	return options.CellScore(s, playerID, *a.Target) - options.CellScore(s, playerID, card.Position)
}

func statValue(c *state.Card) float64 {
	return float64(c.Attack) + float64(c.Defense) + float64(c.HP)/2 + float64(c.Speed)/2
}

// deployCard resolves the card a deploy action would place, whether it
// comes from the hand or was fabricated for the decision.
func deployCard(s *state.BattleState, playerID string, a engine.Action) *state.Card {
	if a.GeneratedCard != nil {
		return a.GeneratedCard
	}
	player, ok := s.Players[playerID]
	if !ok {
		return nil
	}
	for i := range player.Hand {
		if player.Hand[i].ID == a.CardID {
			return &player.Hand[i]
		}
	}
	return nil
}
