package ai

import (
	"github.com/chainclash/clash-server-go/internal/game/ai/mental"
	"github.com/chainclash/clash-server-go/internal/game/options"
)

// Mode activation thresholds. Checked in priority order: a desperate
// mind overrides everything, an experimental one overrides ordinary
// aggression or caution.
const (
	desperationThreshold = 0.7
	experimentThreshold  = 0.65
	experimentConfidence = 0.5
	aggressionThreshold  = 0.6
	cautionThreshold     = 0.6
)

// ModeFor discretizes the continuous mental vector into the strategic
// posture the option generator and scorer understand.
func ModeFor(v mental.Vector) options.Mode {
	switch {
	case v.Desperation > desperationThreshold:
		return options.ModeDesperate
	case v.Creativity > experimentThreshold && v.Confidence > experimentConfidence:
		return options.ModeExperimental
	case v.Aggression > aggressionThreshold && v.Aggression >= v.Caution:
		return options.ModeAggressive
	case v.Caution > cautionThreshold && v.Caution > v.Aggression:
		return options.ModeDefensive
	default:
		return options.ModeAdaptive
	}
}
