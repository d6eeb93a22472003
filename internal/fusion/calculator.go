package fusion

import (
	"math"

	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/rng"
)

// StatVariance is the fixed-width seeded jitter applied per stat.
const StatVariance = 0.15

// StatsResult is the computed stat outcome of a fusion.
type StatsResult struct {
	BaseStats  game.Stats       `json:"base_stats"`
	FinalStats game.Stats       `json:"final_stats"`
	Rarity     EscalationResult `json:"rarity"`
}

// StatsRange is the preview form of a fusion outcome: the same formula as
// ComputeStats but reported as the ±variance envelope instead of one
// sampled point, so preview and execution agree in expectation.
type StatsRange struct {
	BaseStats game.Stats       `json:"base_stats"`
	MinStats  game.Stats       `json:"min_stats"`
	MaxStats  game.Stats       `json:"max_stats"`
	Rarity    EscalationResult `json:"rarity"`
}

// tierMultiplier is the uniform stat scale contributed by the two stones.
func tierMultiplier(t1, t2 game.StoneTier) float64 {
	return 1 + 0.04*float64(t1+t2)
}

// blendedBase averages the parents' stats and adds the stones' flat
// bonuses, before tier scaling and jitter.
func blendedBase(p1, p2 *game.Pet, s1, s2 *game.Stone) game.Stats {
	base := game.Stats{
		MaxHP:   (p1.Stats.MaxHP + p2.Stats.MaxHP) / 2,
		Attack:  (p1.Stats.Attack + p2.Stats.Attack) / 2,
		Defense: (p1.Stats.Defense + p2.Stats.Defense) / 2,
		Speed:   (p1.Stats.Speed + p2.Stats.Speed) / 2,
	}
	for _, s := range []*game.Stone{s1, s2} {
		for stat, bonus := range s.StatBonuses {
			switch stat {
			case game.StatHP:
				base.MaxHP += bonus
			case game.StatAttack:
				base.Attack += bonus
			case game.StatDefense:
				base.Defense += bonus
			case game.StatSpeed:
				base.Speed += bonus
			}
		}
	}
	base.HP = base.MaxHP
	base.Clamp()
	return base
}

func scaleStat(v int, mult float64) int {
	return int(math.Round(float64(v) * mult))
}

// ComputeStats blends parent stats, applies the stone tier multiplier, a
// seeded ±15% jitter per stat, and the rarity escalation roll. RNG draws
// happen in a fixed order (hp, attack, defense, speed, then the upgrade
// roll) so results are reproducible for a given seed.
func ComputeStats(p1, p2 *game.Pet, s1, s2 *game.Stone, r *rng.Source) StatsResult {
	base := blendedBase(p1, p2, s1, s2)
	mult := tierMultiplier(s1.Tier, s2.Tier)

	final := game.Stats{
		MaxHP:   scaleStat(base.MaxHP, mult*r.Jitter(StatVariance)),
		Attack:  scaleStat(base.Attack, mult*r.Jitter(StatVariance)),
		Defense: scaleStat(base.Defense, mult*r.Jitter(StatVariance)),
		Speed:   scaleStat(base.Speed, mult*r.Jitter(StatVariance)),
	}
	if final.MaxHP < 1 {
		final.MaxHP = 1
	}
	final.HP = final.MaxHP
	final.Clamp()

	fc := p1.FusionCount() + p2.FusionCount()
	esc := Escalate(p1.Rarity, p2.Rarity, s1.Tier, s2.Tier, fc, r)

	return StatsResult{BaseStats: base, FinalStats: final, Rarity: esc}
}

// PreviewStats reports the reachable stat envelope of the same formula
// without consuming randomness.
func PreviewStats(p1, p2 *game.Pet, s1, s2 *game.Stone) StatsRange {
	base := blendedBase(p1, p2, s1, s2)
	mult := tierMultiplier(s1.Tier, s2.Tier)

	minStats := game.Stats{
		MaxHP:   scaleStat(base.MaxHP, mult*(1-StatVariance)),
		Attack:  scaleStat(base.Attack, mult*(1-StatVariance)),
		Defense: scaleStat(base.Defense, mult*(1-StatVariance)),
		Speed:   scaleStat(base.Speed, mult*(1-StatVariance)),
	}
	maxStats := game.Stats{
		MaxHP:   scaleStat(base.MaxHP, mult*(1+StatVariance)),
		Attack:  scaleStat(base.Attack, mult*(1+StatVariance)),
		Defense: scaleStat(base.Defense, mult*(1+StatVariance)),
		Speed:   scaleStat(base.Speed, mult*(1+StatVariance)),
	}
	if minStats.MaxHP < 1 {
		minStats.MaxHP = 1
	}
	minStats.HP = minStats.MaxHP
	maxStats.HP = maxStats.MaxHP
	minStats.Clamp()
	maxStats.Clamp()

	fc := p1.FusionCount() + p2.FusionCount()
	esc := PreviewEscalation(p1.Rarity, p2.Rarity, s1.Tier, s2.Tier, fc)

	return StatsRange{BaseStats: base, MinStats: minStats, MaxStats: maxStats, Rarity: esc}
}
