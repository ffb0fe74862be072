package engine

// Config carries the tunable battle parameters. Values are game balance
// knobs, not rules: the transition ordering in apply.go and damage.go is
// what cross-client determinism depends on.
type Config struct {
	TurnCap          int // turn-limit victory threshold
	ManaRegen        int // mana restored at each turn start
	StartingMana     int
	MaxMana          int
	StartingCastleHP int
	CritChance       float64 // probability of a critical hit
	CritMultiplier   float64
	RandomSeed       int64 // 0 = seed from wall clock
}

// DefaultConfig returns the standard ruleset parameters.
func DefaultConfig() Config {
	return Config{
		TurnCap:          50,
		ManaRegen:        3,
		StartingMana:     10,
		MaxMana:          10,
		StartingCastleHP: 100,
		CritChance:       0.10,
		CritMultiplier:   1.5,
	}
}
