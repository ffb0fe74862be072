package state

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// GobEncode implements gob.GobEncoder. The battlefield grid keeps nil
// entries for empty cells, which gob refuses to encode inside a slice,
// so snapshots travel through their JSON form instead.
func (s *BattleState) GobEncode() ([]byte, error) {
	return json.Marshal(s)
}

// GobDecode implements gob.GobDecoder.
func (s *BattleState) GobDecode(data []byte) error {
	return json.Unmarshal(data, s)
}

// Checksum computes a deterministic SHA-256 digest of the battle state.
// Peers attach it to outgoing action envelopes so divergent replays are
// caught immediately. Timestamps are excluded; everything else that
// drives the simulation is included, with maps emitted in sorted key
// order.
func (s *BattleState) Checksum() string {
	data := s.buildDeterministicRepresentation()
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// buildDeterministicRepresentation creates a canonical string form of
// the state, independent of map iteration order.
func (s *BattleState) buildDeterministicRepresentation() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "BATTLE:%s|%d|%s|%s|%s|%d\n",
		s.ID, s.CurrentTurn, s.Phase, s.ActivePlayerID, s.Winner, s.NextSeq)

	for _, id := range s.PlayerOrder {
		p := s.Players[id]
		if p == nil {
			continue
		}
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%s|%d|%d|%d|%d|%.4f|%d|%d\n",
			p.ID, p.Name, p.Type, p.CastleHP, p.MaxCastleHP,
			p.Mana, p.MaxMana, p.StatBonus, len(p.Hand), len(p.Deck))
		for _, c := range p.Hand {
			fmt.Fprintf(&buf, "  HAND:%s|%s|%d\n", c.ID, c.Name, c.ManaCost)
		}
		for _, c := range p.Deck {
			fmt.Fprintf(&buf, "  DECK:%s\n", c.ID)
		}
	}

	for r, row := range s.Battlefield {
		for c, card := range row {
			if card == nil {
				continue
			}
			fmt.Fprintf(&buf, "CARD:%d,%d|%s|%s|%s|%d|%d|%d|%d|%d|%t|%t\n",
				r, c, card.ID, card.Name, card.OwnerID,
				card.Attack, card.Defense, card.HP, card.MaxHP, card.Speed,
				card.HasMoved, card.HasAttacked)
			for _, ab := range card.Abilities {
				fmt.Fprintf(&buf, "  ABILITY:%s|%s|%d|%d\n", ab.Name, ab.Tag, ab.Effect, ab.TurnsUntilReady)
			}
			for _, se := range card.StatusEffects {
				fmt.Fprintf(&buf, "  STATUS:%s|%d\n", se.Name, se.TurnsRemaining)
			}
		}
	}

	if s.Weather != nil {
		fmt.Fprintf(&buf, "WEATHER:%s|%.4f|%.4f|%.4f|%d\n",
			s.Weather.Name, s.Weather.AttackMod, s.Weather.DefenseMod,
			s.Weather.SpeedMod, s.Weather.TurnsRemaining)
	}

	zoneKeys := make([]string, 0, len(s.ControlledZones))
	for k := range s.ControlledZones {
		zoneKeys = append(zoneKeys, k)
	}
	sort.Strings(zoneKeys)
	for _, k := range zoneKeys {
		fmt.Fprintf(&buf, "ZONE:%s=%s\n", k, s.ControlledZones[k])
	}

	for _, entry := range s.Log {
		fmt.Fprintf(&buf, "LOG:%d|%d|%s|%s\n", entry.Seq, entry.Turn, entry.PlayerID, entry.Action)
	}

	return buf.String()
}
