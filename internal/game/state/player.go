package state

// PlayerType distinguishes human-controlled from AI-controlled seats.
// Engine and option-generator code never branch on this; it exists for
// the draw-at-turn-start rule and the resource-exhaustion victory check.
type PlayerType string

const (
	PlayerHuman PlayerType = "HUMAN"
	PlayerAI    PlayerType = "AI"
)

// Personality holds the five fixed 0-1 traits of an AI seat. It is the
// gravity baseline for the fluid mental state and never changes during
// a match.
type Personality struct {
	Aggression    float64 `json:"aggression"`
	Creativity    float64 `json:"creativity"`
	RiskTolerance float64 `json:"riskTolerance"`
	Patience      float64 `json:"patience"`
	Adaptability  float64 `json:"adaptability"`
}

// Player is one seat in a battle.
type Player struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        PlayerType   `json:"type"`
	CastleHP    int          `json:"castleHp"`
	MaxCastleHP int          `json:"maxCastleHp"`
	Mana        int          `json:"mana"`
	MaxMana     int          `json:"maxMana"`
	Hand        []Card       `json:"hand"`
	Deck        []Card       `json:"deck"`
	StatBonus   float64      `json:"statBonus"`
	Personality *Personality `json:"personality,omitempty"`
}

// StatMultiplier returns the cumulative deploy-time stat multiplier:
// 1 plus the sum of all bonus sources.
func (p *Player) StatMultiplier() float64 {
	return 1 + p.StatBonus
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	out := *p
	out.Hand = cloneCards(p.Hand)
	out.Deck = cloneCards(p.Deck)
	if p.Personality != nil {
		pers := *p.Personality
		out.Personality = &pers
	}
	return &out
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c
		out[i].Abilities = append([]Ability(nil), c.Abilities...)
	}
	return out
}
