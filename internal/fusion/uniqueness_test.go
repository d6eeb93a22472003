package fusion

import (
	"math"
	"testing"

	"github.com/petforge/petforge/internal/game"
	"gorm.io/gorm"
)

func TestScoreUniquenessIdenticalResult(t *testing.T) {
	p1 := testParent(1, "Ember", game.ElementFire, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	p2 := testParent(2, "Tide", game.ElementWater, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	s1 := testStone(11, game.ElementFire, game.StoneTierI)
	s2 := testStone(12, game.ElementWater, game.StoneTierI)

	// Result carries exactly the parent average stats and only inherited
	// tags, so the first two sub-scores are zero.
	result := testParent(3, "Embide", game.ElementAir, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	result.Appearance.VisualTags = []string{"fire", "water"}

	sc := ScoreUniqueness(result, p1, p2, s1, s2, nil)
	if sc.StatDivergence != 0 {
		t.Fatalf("identical stats should score 0 divergence, got %f", sc.StatDivergence)
	}
	if sc.VisualNovelty != 0 {
		t.Fatalf("inherited tags should score 0 novelty, got %f", sc.VisualNovelty)
	}
	if sc.AbilityRarity != 1 {
		t.Fatalf("empty population should score 1 ability rarity, got %f", sc.AbilityRarity)
	}
	if math.Abs(sc.Total-0.3) > 1e-9 {
		t.Fatalf("total should be the 0.3-weighted rarity alone, got %f", sc.Total)
	}
}

func TestScoreUniquenessWeights(t *testing.T) {
	p1 := testParent(1, "Ember", game.ElementFire, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	p2 := testParent(2, "Tide", game.ElementWater, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	s1 := testStone(11, game.ElementFire, game.StoneTierI)
	s2 := testStone(12, game.ElementWater, game.StoneTierI)

	result := testParent(3, "Embide", game.ElementAir, game.RarityBasic, game.Stats{MaxHP: 60, Attack: 15, Defense: 5, Speed: 20})
	result.Appearance.VisualTags = []string{"mist", "fire"}

	sc := ScoreUniqueness(result, p1, p2, s1, s2, nil)
	want := 0.4*sc.StatDivergence + 0.3*sc.VisualNovelty + 0.3*sc.AbilityRarity
	if math.Abs(sc.Total-want) > 1e-9 {
		t.Fatalf("total %f does not match weighted sum %f", sc.Total, want)
	}
	if sc.VisualNovelty != 0.5 {
		t.Fatalf("one novel tag of two should score 0.5, got %f", sc.VisualNovelty)
	}
}

func TestScoreUniquenessCommonAbilitiesScoreLow(t *testing.T) {
	p1 := testParent(1, "Ember", game.ElementFire, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	p2 := testParent(2, "Tide", game.ElementWater, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	s1 := testStone(11, game.ElementFire, game.StoneTierI)
	s2 := testStone(12, game.ElementWater, game.StoneTierI)

	result := testParent(3, "Embide", game.ElementFire, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})

	// Every pet in the population carries the result's one ability.
	population := make([]game.Pet, 0, 5)
	for i := 0; i < 5; i++ {
		p := testParent(uint(100+i), "Clone", game.ElementFire, game.RarityBasic, game.Stats{MaxHP: 10, Attack: 1, Defense: 1, Speed: 1})
		population = append(population, *p)
	}
	sc := ScoreUniqueness(result, p1, p2, s1, s2, population)
	if sc.AbilityRarity != 0 {
		t.Fatalf("universally shared ability should score 0 rarity, got %f", sc.AbilityRarity)
	}
}

func TestScoreUniquenessCorruptedStoneBoostsVisuals(t *testing.T) {
	p1 := testParent(1, "Ember", game.ElementFire, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	p2 := testParent(2, "Tide", game.ElementWater, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	s1 := testStone(11, game.ElementFire, game.StoneTierI)
	s2 := &game.Stone{Model: gorm.Model{ID: 12}, Type: game.ElementShadow, Tier: game.StoneTierI, IsCorrupted: true}

	result := testParent(3, "Embide", game.ElementAir, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	result.Appearance.VisualTags = []string{"fire", "water"}

	sc := ScoreUniqueness(result, p1, p2, s1, s2, nil)
	if sc.VisualNovelty != 0.1 {
		t.Fatalf("corrupted stone should add 0.1 visual novelty, got %f", sc.VisualNovelty)
	}
}
