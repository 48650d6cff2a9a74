// Package mastery maps cumulative topic XP to a discrete tier and a
// progress percentage within that tier. Pure lookups over a fixed table;
// the same XP always yields the same tier.
package mastery

import "math"

// Tier is a named XP band.
type Tier string

const (
	TierBeginning  Tier = "beginning"
	TierDeveloping Tier = "developing"
	TierProficient Tier = "proficient"
	TierMastering  Tier = "mastering"
)

// MasteryThreshold is the XP at which a topic counts as mastered. It is
// the Mastering tier's minimum today, but the flag is defined by this
// constant, not by "top tier".
const MasteryThreshold = 700

// tierMins lists each tier's inclusive minimum XP in ascending order.
// The last tier is unbounded above.
var tierMins = []struct {
	tier Tier
	min  int
}{
	{TierBeginning, 0},
	{TierDeveloping, 100},
	{TierProficient, 300},
	{TierMastering, 700},
}

// AllTiers returns the tiers in ascending order.
func AllTiers() []Tier {
	tiers := make([]Tier, len(tierMins))
	for i, e := range tierMins {
		tiers[i] = e.tier
	}
	return tiers
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBeginning:
		return "Beginning"
	case TierDeveloping:
		return "Developing"
	case TierProficient:
		return "Proficient"
	case TierMastering:
		return "Mastering"
	default:
		return string(t)
	}
}

// TierFor returns the highest tier whose minimum is ≤ xp. Negative xp is
// a caller contract violation and clamps to the first tier.
func TierFor(xp int) Tier {
	idx := tierIndex(xp)
	return tierMins[idx].tier
}

// ProgressWithinTier returns how far xp has advanced through its tier,
// as a whole percentage in [0, 100]. The top tier always reads 100.
func ProgressWithinTier(xp int) int {
	if xp < 0 {
		xp = 0
	}
	idx := tierIndex(xp)
	if idx == len(tierMins)-1 {
		return 100
	}
	lo := tierMins[idx].min
	hi := tierMins[idx+1].min
	pct := int(math.Round(100 * float64(xp-lo) / float64(hi-lo)))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// IsMastered reports whether xp has crossed the mastery threshold.
func IsMastered(xp int) bool {
	return xp >= MasteryThreshold
}

func tierIndex(xp int) int {
	idx := 0
	for i, e := range tierMins {
		if xp >= e.min {
			idx = i
		}
	}
	return idx
}
