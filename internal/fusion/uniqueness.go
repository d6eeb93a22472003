package fusion

import (
	"math"

	"github.com/petforge/petforge/internal/game"
)

// UniquenessScore is a post-hoc, purely informational measure of how novel
// a fusion result is. It never errors and never affects fusion success.
type UniquenessScore struct {
	StatDivergence float64 `json:"stat_divergence"`
	VisualNovelty  float64 `json:"visual_novelty"`
	AbilityRarity  float64 `json:"ability_rarity"`
	Total          float64 `json:"total"`
}

// statDivergence measures how far the result's stats drifted from the
// parent average, normalized to [0,1].
func statDivergence(result, p1, p2 *game.Pet) float64 {
	avg := func(a, b int) float64 { return float64(a+b) / 2 }
	rel := func(got int, base float64) float64 {
		if base == 0 {
			return 0
		}
		return math.Abs(float64(got)-base) / base
	}
	d := rel(result.Stats.MaxHP, avg(p1.Stats.MaxHP, p2.Stats.MaxHP)) +
		rel(result.Stats.Attack, avg(p1.Stats.Attack, p2.Stats.Attack)) +
		rel(result.Stats.Defense, avg(p1.Stats.Defense, p2.Stats.Defense)) +
		rel(result.Stats.Speed, avg(p1.Stats.Speed, p2.Stats.Speed))
	d /= 4
	if d > 1 {
		d = 1
	}
	return d
}

// visualNovelty is the fraction of the result's visual tags carried by
// neither parent.
func visualNovelty(result, p1, p2 *game.Pet) float64 {
	if len(result.Appearance.VisualTags) == 0 {
		return 0
	}
	inherited := make(map[string]bool)
	for _, t := range p1.Appearance.VisualTags {
		inherited[t] = true
	}
	for _, t := range p2.Appearance.VisualTags {
		inherited[t] = true
	}
	novel := 0
	for _, t := range result.Appearance.VisualTags {
		if !inherited[t] {
			novel++
		}
	}
	return float64(novel) / float64(len(result.Appearance.VisualTags))
}

// abilityRarity measures how uncommon the result's ability combination is
// within the given population. An empty population scores full novelty.
func abilityRarity(result *game.Pet, population []game.Pet) float64 {
	if len(population) == 0 {
		return 1
	}
	ids := make(map[string]bool)
	for _, a := range result.ActiveAbilities {
		ids[a.ID] = true
	}
	for _, a := range result.PassiveAbilities {
		ids[a.ID] = true
	}
	if result.UltimateAbility != nil {
		ids[result.UltimateAbility.ID] = true
	}
	if len(ids) == 0 {
		return 0
	}
	// Count how often each of the result's abilities appears elsewhere.
	occurrences := 0
	for _, p := range population {
		if p.ID == result.ID {
			continue
		}
		for _, a := range p.ActiveAbilities {
			if ids[a.ID] {
				occurrences++
			}
		}
		for _, a := range p.PassiveAbilities {
			if ids[a.ID] {
				occurrences++
			}
		}
		if p.UltimateAbility != nil && ids[p.UltimateAbility.ID] {
			occurrences++
		}
	}
	share := float64(occurrences) / float64(len(population)*len(ids))
	score := 1 - share
	if score < 0 {
		score = 0
	}
	return score
}

// ScoreUniqueness computes the structured novelty score of a fusion result
// against its parents, the consumed stones and (optionally) the existing
// pet population. Purely informational.
func ScoreUniqueness(result, p1, p2 *game.Pet, s1, s2 *game.Stone, population []game.Pet) UniquenessScore {
	sc := UniquenessScore{
		StatDivergence: statDivergence(result, p1, p2),
		VisualNovelty:  visualNovelty(result, p1, p2),
		AbilityRarity:  abilityRarity(result, population),
	}
	// Corrupted stones feed slightly into the visual sub-score since the
	// unstable branch adds tags the parents never carried.
	if s1.IsCorrupted || s2.IsCorrupted {
		sc.VisualNovelty = math.Min(1, sc.VisualNovelty+0.1)
	}
	sc.Total = 0.4*sc.StatDivergence + 0.3*sc.VisualNovelty + 0.3*sc.AbilityRarity
	return sc
}
