package fusion

import (
	"testing"

	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/rng"
	"gorm.io/gorm"
)

func testParent(id uint, name string, element game.Element, rarity game.Rarity, stats game.Stats) *game.Pet {
	stats.HP = stats.MaxHP
	return &game.Pet{
		Model:   gorm.Model{ID: id},
		Name:    name,
		Family:  name + "-line",
		Rarity:  rarity,
		Element: element,
		Stats:   stats,
		ActiveAbilities: []game.Ability{
			game.BasicStrike(element),
		},
		Appearance: game.Appearance{VisualTags: []string{string(element), name + "-fur"}},
	}
}

func testStone(id uint, element game.Element, tier game.StoneTier) *game.Stone {
	return &game.Stone{
		Model:          gorm.Model{ID: id},
		Type:           element,
		Tier:           tier,
		ElementalPower: 10 * int(tier),
	}
}

func TestComputeStatsDeterministic(t *testing.T) {
	p1 := testParent(1, "Ember", game.ElementFire, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 12, Defense: 8, Speed: 10})
	p2 := testParent(2, "Tide", game.ElementWater, game.RarityBasic, game.Stats{MaxHP: 50, Attack: 8, Defense: 12, Speed: 9})
	s1 := testStone(11, game.ElementFire, game.StoneTierII)
	s2 := testStone(12, game.ElementWater, game.StoneTierIII)

	a := ComputeStats(p1, p2, s1, s2, rng.New(99))
	b := ComputeStats(p1, p2, s1, s2, rng.New(99))
	if a.FinalStats != b.FinalStats {
		t.Fatalf("same seed produced different stats: %+v vs %+v", a.FinalStats, b.FinalStats)
	}
	if a.Rarity.FinalRarity != b.Rarity.FinalRarity {
		t.Fatalf("same seed produced different rarities: %v vs %v", a.Rarity.FinalRarity, b.Rarity.FinalRarity)
	}
}

func TestComputeStatsWithinPreviewEnvelope(t *testing.T) {
	p1 := testParent(1, "Ember", game.ElementFire, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 12, Defense: 8, Speed: 10})
	p2 := testParent(2, "Tide", game.ElementWater, game.RarityBasic, game.Stats{MaxHP: 50, Attack: 8, Defense: 12, Speed: 9})
	s1 := testStone(11, game.ElementFire, game.StoneTierII)
	s2 := testStone(12, game.ElementWater, game.StoneTierIII)

	env := PreviewStats(p1, p2, s1, s2)
	if env.BaseStats.MaxHP != 45 || env.BaseStats.Attack != 10 {
		t.Fatalf("unexpected blended base: %+v", env.BaseStats)
	}

	within := func(got, lo, hi int) bool { return got >= lo && got <= hi }
	for seed := int64(0); seed < 50; seed++ {
		res := ComputeStats(p1, p2, s1, s2, rng.New(seed))
		if !within(res.FinalStats.MaxHP, env.MinStats.MaxHP, env.MaxStats.MaxHP) ||
			!within(res.FinalStats.Attack, env.MinStats.Attack, env.MaxStats.Attack) ||
			!within(res.FinalStats.Defense, env.MinStats.Defense, env.MaxStats.Defense) ||
			!within(res.FinalStats.Speed, env.MinStats.Speed, env.MaxStats.Speed) {
			t.Fatalf("seed %d sampled outside envelope: %+v not in [%+v, %+v]", seed, res.FinalStats, env.MinStats, env.MaxStats)
		}
	}
}

func TestComputeStatsAppliesStoneBonuses(t *testing.T) {
	p1 := testParent(1, "Ember", game.ElementFire, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	p2 := testParent(2, "Tide", game.ElementWater, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 10, Defense: 10, Speed: 10})
	s1 := testStone(11, game.ElementFire, game.StoneTierI)
	s1.StatBonuses = map[game.StatKind]int{game.StatHP: 20, game.StatAttack: 5}
	s2 := testStone(12, game.ElementWater, game.StoneTierI)

	res := ComputeStats(p1, p2, s1, s2, rng.New(1))
	if res.BaseStats.MaxHP != 60 {
		t.Fatalf("hp bonus not applied: got %d, want 60", res.BaseStats.MaxHP)
	}
	if res.BaseStats.Attack != 15 {
		t.Fatalf("attack bonus not applied: got %d, want 15", res.BaseStats.Attack)
	}
}

func TestComputeStatsFloorsTinyParents(t *testing.T) {
	p1 := testParent(1, "Mote", game.ElementAir, game.RarityBasic, game.Stats{MaxHP: 1, Attack: 1, Defense: 0, Speed: 1})
	p2 := testParent(2, "Speck", game.ElementAir, game.RarityBasic, game.Stats{MaxHP: 1, Attack: 1, Defense: 0, Speed: 1})
	s1 := testStone(11, game.ElementAir, game.StoneTierI)
	s2 := testStone(12, game.ElementAir, game.StoneTierI)

	for seed := int64(0); seed < 20; seed++ {
		res := ComputeStats(p1, p2, s1, s2, rng.New(seed))
		if res.FinalStats.MaxHP < 1 {
			t.Fatalf("seed %d: max hp fell below 1: %d", seed, res.FinalStats.MaxHP)
		}
		if res.FinalStats.HP != res.FinalStats.MaxHP {
			t.Fatalf("seed %d: fresh fusion not at full hp: %d/%d", seed, res.FinalStats.HP, res.FinalStats.MaxHP)
		}
	}
}
