package fusion

import (
	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/rng"
)

// EscalationResult is the rarity outcome of a fusion. FinalRarity is never
// below the weaker parent's rarity and never above RarityMax.
type EscalationResult struct {
	FinalRarity   game.Rarity `json:"final_rarity"`
	MinRarity     game.Rarity `json:"min_rarity"`
	MaxRarity     game.Rarity `json:"max_rarity"`
	UpgradeChance float64     `json:"upgrade_chance"`
}

// UpgradeChance is the probability that a fusion escalates one tier above
// the weaker parent. It grows monotonically with the combined stone tier
// and with the parents' accumulated fusion count, capped well below 1 so
// escalation always stays a gamble.
func UpgradeChance(t1, t2 game.StoneTier, fusionCount int) float64 {
	p := 0.10 + 0.05*float64(t1+t2) + 0.02*float64(fusionCount)
	if p > 0.90 {
		p = 0.90
	}
	return p
}

// Escalate computes the rarity of a fusion result. One RNG draw is always
// consumed for the upgrade roll.
func Escalate(p1, p2 game.Rarity, t1, t2 game.StoneTier, fusionCount int, r *rng.Source) EscalationResult {
	base := game.MinRarity(p1, p2)
	chance := UpgradeChance(t1, t2, fusionCount)
	final := base
	if r.Chance(chance) {
		final = base.Next()
	}
	return EscalationResult{
		FinalRarity:   final,
		MinRarity:     base,
		MaxRarity:     final.Next(),
		UpgradeChance: chance,
	}
}

// PreviewEscalation reports the possible range without consuming any
// randomness, for UI previews.
func PreviewEscalation(p1, p2 game.Rarity, t1, t2 game.StoneTier, fusionCount int) EscalationResult {
	base := game.MinRarity(p1, p2)
	return EscalationResult{
		FinalRarity:   base,
		MinRarity:     base,
		MaxRarity:     base.Next(),
		UpgradeChance: UpgradeChance(t1, t2, fusionCount),
	}
}
