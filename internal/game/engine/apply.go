package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chainclash/clash-server-go/internal/game/abilities"
	"github.com/chainclash/clash-server-go/internal/game/state"
)

// Apply validates and applies a single action, returning the resulting
// snapshot. Rejected actions return the input state unchanged with
// applied=false: rejection is expected and frequent, never an error.
func (e *Engine) Apply(s *state.BattleState, a Action) (*state.BattleState, bool) {
	if s.Phase == state.PhaseVictory {
		return s, false
	}
	if a.PlayerID != s.ActivePlayerID {
		e.debugReject(s, a, "not the active player")
		return s, false
	}

	var next *state.BattleState
	var applied bool
	switch a.Type {
	case ActionDeploy:
		next, applied = e.applyDeploy(s, a)
	case ActionAttackCard:
		next, applied = e.applyAttackCard(s, a)
	case ActionAttackCastle:
		next, applied = e.applyAttackCastle(s, a)
	case ActionMove:
		next, applied = e.applyMove(s, a)
	case ActionUseAbility:
		next, applied = e.applyUseAbility(s, a)
	case ActionEndTurn:
		return e.EndTurn(s, a.PlayerID), true
	default:
		e.debugReject(s, a, "unknown action type")
		return s, false
	}

	if applied {
		e.observeAction(next, a)
	}
	return next, applied
}

// aggressionSmoothing weights the newest observation in the opponent
// aggression moving average.
const aggressionSmoothing = 0.25

// observeAction updates the opponent's observation memory after an
// applied action: the running count and a moving average of how
// aggressive the acting player's choices are.
func (e *Engine) observeAction(s *state.BattleState, a Action) {
	opponent := s.OpponentOf(a.PlayerID)
	if opponent == "" || s.AIMemories == nil {
		return
	}

	mem := s.AIMemories[opponent]
	mem.ActionsObserved++

	aggressive := 0.0
	if a.Type == ActionAttackCard || a.Type == ActionAttackCastle {
		aggressive = 1.0
	}
	mem.OpponentAggression += (aggressive - mem.OpponentAggression) * aggressionSmoothing
	s.AIMemories[opponent] = mem
}

func (e *Engine) applyDeploy(s *state.BattleState, a Action) (*state.BattleState, bool) {
	player, ok := s.Players[a.PlayerID]
	if !ok || a.Target == nil {
		return s, false
	}

	// Resolve the card either from the player's hand or from an
	// externally generated card (AI fabrication); generated cards are
	// not removed from any collection.
	var template state.Card
	fromHand := -1
	if a.GeneratedCard != nil {
		template = *a.GeneratedCard
	} else {
		for i, c := range player.Hand {
			if c.ID == a.CardID {
				template = c
				fromHand = i
				break
			}
		}
		if fromHand < 0 {
			e.debugReject(s, a, "card not in hand")
			return s, false
		}
	}

	if !CanDeployAt(s, a.PlayerID, *a.Target) || !CanAfford(player, template) {
		e.debugReject(s, a, "deploy precondition failed")
		return s, false
	}

	next := s.Clone()
	nextPlayer := next.Players[a.PlayerID]

	mult := nextPlayer.StatMultiplier()
	card := &state.BattleCard{
		Card:     template,
		Position: *a.Target,
		OwnerID:  a.PlayerID,
	}
	card.Attack = int(float64(template.Attack) * mult)
	card.Defense = int(float64(template.Defense) * mult)
	card.HP = int(float64(template.HP) * mult)
	card.MaxHP = int(float64(template.MaxHP) * mult)
	card.Speed = int(float64(template.Speed) * mult)
	card.Abilities = append([]state.Ability(nil), template.Abilities...)

	next.Battlefield[a.Target.Row][a.Target.Col] = card
	if fromHand >= 0 {
		nextPlayer.Hand = append(nextPlayer.Hand[:fromHand], nextPlayer.Hand[fromHand+1:]...)
	}
	nextPlayer.Mana -= template.ManaCost
	next.ControlledZones[a.Target.Key()] = a.PlayerID
	next.AppendLog(a.PlayerID, state.LogCardDeployed,
		fmt.Sprintf("%s deployed to %s", card.Name, a.Target.Key()))

	e.finishTransition(next)
	return next, true
}

func (e *Engine) applyAttackCard(s *state.BattleState, a Action) (*state.BattleState, bool) {
	attacker := s.CardByID(a.CardID)
	target := s.CardByID(a.TargetCardID)
	if attacker == nil || attacker.OwnerID != a.PlayerID {
		return s, false
	}
	if !CanAttackTarget(attacker, target) {
		e.debugReject(s, a, "attack precondition failed")
		return s, false
	}

	next := s.Clone()
	attacker = next.CardByID(a.CardID)
	target = next.CardByID(a.TargetCardID)

	damage, crit := e.ComputeCardDamage(next, attacker, target, e.roll(a))
	target.HP -= damage
	attacker.HasAttacked = true

	result := fmt.Sprintf("%s hit %s for %d", attacker.Name, target.Name, damage)
	if crit {
		result += " (critical)"
	}
	next.AppendLog(a.PlayerID, state.LogCardAttacked, result)

	if reflect := abilities.ThornsReflection(target); reflect > 0 {
		attacker.HP -= reflect
		next.AppendLog(target.OwnerID, state.LogCardAttacked,
			fmt.Sprintf("%s reflected %d onto %s", target.Name, reflect, attacker.Name))
	}

	e.removeIfDestroyed(next, target)
	e.removeIfDestroyed(next, attacker)

	e.finishTransition(next)
	return next, true
}

func (e *Engine) applyAttackCastle(s *state.BattleState, a Action) (*state.BattleState, bool) {
	attacker := s.CardByID(a.CardID)
	targetPlayer, ok := s.Players[a.TargetPlayerID]
	if attacker == nil || attacker.OwnerID != a.PlayerID || !ok {
		return s, false
	}
	if !CanAttackCastle(s, attacker, a.TargetPlayerID) {
		e.debugReject(s, a, "castle attack precondition failed")
		return s, false
	}

	next := s.Clone()
	attacker = next.CardByID(a.CardID)
	targetPlayer = next.Players[a.TargetPlayerID]

	damage, crit := e.ComputeCastleDamage(next, attacker, e.roll(a))
	targetPlayer.CastleHP -= damage
	if targetPlayer.CastleHP < 0 {
		targetPlayer.CastleHP = 0
	}
	attacker.HasAttacked = true

	result := fmt.Sprintf("%s struck castle of %s for %d", attacker.Name, targetPlayer.Name, damage)
	if crit {
		result += " (critical)"
	}
	next.AppendLog(a.PlayerID, state.LogCastleAttacked, result)

	e.finishTransition(next)
	return next, true
}

func (e *Engine) applyMove(s *state.BattleState, a Action) (*state.BattleState, bool) {
	card := s.CardByID(a.CardID)
	if card == nil || card.OwnerID != a.PlayerID || a.Target == nil {
		return s, false
	}
	if !CanMoveTo(s, card, *a.Target) {
		e.debugReject(s, a, "move precondition failed")
		return s, false
	}

	next := s.Clone()
	card = next.CardByID(a.CardID)

	from := card.Position
	next.Battlefield[from.Row][from.Col] = nil
	card.Position = *a.Target
	card.HasMoved = true
	next.Battlefield[a.Target.Row][a.Target.Col] = card
	next.ControlledZones[a.Target.Key()] = a.PlayerID
	next.AppendLog(a.PlayerID, state.LogCardMoved,
		fmt.Sprintf("%s moved %s to %s", card.Name, from.Key(), a.Target.Key()))

	e.finishTransition(next)
	return next, true
}

func (e *Engine) applyUseAbility(s *state.BattleState, a Action) (*state.BattleState, bool) {
	card := s.CardByID(a.CardID)
	player, ok := s.Players[a.PlayerID]
	if card == nil || card.OwnerID != a.PlayerID || !ok {
		return s, false
	}

	abilityIdx := -1
	for i, ab := range card.Abilities {
		if ab.Name == a.Ability {
			abilityIdx = i
			break
		}
	}
	if abilityIdx < 0 {
		return s, false
	}
	ability := card.Abilities[abilityIdx]
	if !ability.Ready() || player.Mana < ability.ManaCost {
		e.debugReject(s, a, "ability on cooldown or unaffordable")
		return s, false
	}

	next := s.Clone()
	card = next.CardByID(a.CardID)
	next.Players[a.PlayerID].Mana -= ability.ManaCost
	card.Abilities[abilityIdx].TurnsUntilReady = ability.Cooldown
	next.AppendLog(a.PlayerID, state.LogAbilityUsed,
		fmt.Sprintf("%s used %s", card.Name, ability.Name))

	e.finishTransition(next)
	return next, true
}

// removeIfDestroyed clears a card whose HP reached 0, clamping HP and
// logging the destruction in the same transition.
func (e *Engine) removeIfDestroyed(s *state.BattleState, card *state.BattleCard) {
	if card == nil || card.HP > 0 {
		return
	}
	card.HP = 0
	s.Battlefield[card.Position.Row][card.Position.Col] = nil
	s.AppendLog(card.OwnerID, state.LogCardDestroyed, fmt.Sprintf("%s destroyed", card.Name))

	if s.AIMemories == nil {
		return
	}
	mem := s.AIMemories[card.OwnerID]
	mem.CardsLost++
	s.AIMemories[card.OwnerID] = mem

	if opponent := s.OpponentOf(card.OwnerID); opponent != "" {
		mem = s.AIMemories[opponent]
		mem.CardsDestroyed++
		s.AIMemories[opponent] = mem
	}
}

// finishTransition evaluates victory conditions on the new snapshot and
// seals it when the battle is decided.
func (e *Engine) finishTransition(s *state.BattleState) {
	if result := e.CheckVictory(s); result != nil {
		s.Winner = result.WinnerID
		s.Phase = state.PhaseVictory
		if e.logger != nil {
			e.logger.Info("battle decided",
				zap.String("battle_id", s.ID),
				zap.String("winner", result.WinnerID),
				zap.String("condition", string(result.Condition)),
			)
		}
	}
}

func (e *Engine) debugReject(s *state.BattleState, a Action, reason string) {
	if e.logger == nil {
		return
	}
	e.logger.Debug("action rejected",
		zap.String("battle_id", s.ID),
		zap.String("player_id", a.PlayerID),
		zap.String("action_type", string(a.Type)),
		zap.String("reason", reason),
	)
}
