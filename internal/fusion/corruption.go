package fusion

import (
	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/rng"
)

// ItemCorruptionChance is the probability that one stone destabilizes
// before the fusion runs. Higher tiers hold more volatile power and long
// lineages accumulate instability.
func ItemCorruptionChance(t game.StoneTier, fusionCount int) float64 {
	p := 0.01*float64(t) + 0.005*float64(fusionCount)
	if p > 0.25 {
		p = 0.25
	}
	return p
}

// MaybeCorruptStone rolls item corruption for one stone. When the roll
// hits, it returns a new corrupted variant (shadow-shifted, boosted power)
// that the orchestration persists as its own entity; the original stone is
// still consumed normally. Exactly one RNG draw is consumed either way.
func MaybeCorruptStone(s *game.Stone, fusionCount int, r *rng.Source) (*game.Stone, bool) {
	if !r.Chance(ItemCorruptionChance(s.Tier, fusionCount)) {
		return s, false
	}
	c := &game.Stone{
		OwnerEmail:     s.OwnerEmail,
		Type:           game.ElementShadow,
		Tier:           s.Tier,
		ElementalPower: s.ElementalPower + s.ElementalPower/2,
		IsCorrupted:    true,
	}
	if len(s.StatBonuses) > 0 {
		c.StatBonuses = make(map[game.StatKind]int, len(s.StatBonuses))
		for k, v := range s.StatBonuses {
			c.StatBonuses[k] = v
		}
	}
	return c, true
}

// FusionCorruptionChance is the probability that the fusion itself turns
// unstable. Corrupted inputs make it considerably more likely.
func FusionCorruptionChance(sig Signature) float64 {
	p := 0.02 + 0.005*float64(sig.Parent1.FusionCount+sig.Parent2.FusionCount)
	if sig.Stone1.IsCorrupted {
		p += 0.15
	}
	if sig.Stone2.IsCorrupted {
		p += 0.15
	}
	if p > 0.60 {
		p = 0.60
	}
	return p
}

// FusionCorrupted rolls the independent fusion corruption check. A true
// result biases downstream naming and ability themes toward the unstable
// branch; it never changes stats. One RNG draw is consumed.
func FusionCorrupted(sig Signature, r *rng.Source) bool {
	return r.Chance(FusionCorruptionChance(sig))
}
