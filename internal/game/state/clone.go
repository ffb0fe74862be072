package state

import "github.com/chainclash/clash-server-go/internal/game/grid"

// Clone produces a deep copy of the battle state. Every state
// transition in the engine starts from a Clone of its input, so no
// previously returned snapshot is ever mutated.
func (s *BattleState) Clone() *BattleState {
	out := *s

	out.PlayerOrder = append([]string(nil), s.PlayerOrder...)

	out.Players = make(map[string]*Player, len(s.Players))
	for id, p := range s.Players {
		out.Players[id] = p.Clone()
	}

	out.Battlefield = make([][]*BattleCard, len(s.Battlefield))
	for r, row := range s.Battlefield {
		out.Battlefield[r] = make([]*BattleCard, len(row))
		for c, card := range row {
			if card != nil {
				out.Battlefield[r][c] = card.Clone()
			}
		}
	}

	out.Layout.Blocked = append([]grid.Position(nil), s.Layout.Blocked...)
	out.Layout.Special = append([]grid.SpecialTile(nil), s.Layout.Special...)

	if s.Weather != nil {
		w := *s.Weather
		out.Weather = &w
	}

	out.TerrainEffects = append([]TerrainEffect(nil), s.TerrainEffects...)

	out.ControlledZones = make(map[string]string, len(s.ControlledZones))
	for k, v := range s.ControlledZones {
		out.ControlledZones[k] = v
	}

	out.Log = append([]LogEntry(nil), s.Log...)

	if s.AIMemories != nil {
		out.AIMemories = make(map[string]AIMemory, len(s.AIMemories))
		for k, v := range s.AIMemories {
			out.AIMemories[k] = v
		}
	}

	return &out
}
