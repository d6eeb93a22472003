package fusion

import (
	"testing"

	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/rng"
)

func TestUpgradeChanceMonotonic(t *testing.T) {
	prev := 0.0
	for total := 2; total <= 10; total++ {
		c := UpgradeChance(game.StoneTierI, game.StoneTier(total-1), 0)
		if c <= prev {
			t.Fatalf("chance not increasing with stone tiers: total %d gave %f after %f", total, c, prev)
		}
		prev = c
	}

	low := UpgradeChance(game.StoneTierI, game.StoneTierI, 0)
	high := UpgradeChance(game.StoneTierI, game.StoneTierI, 8)
	if high <= low {
		t.Fatalf("fusion count did not raise chance: %f <= %f", high, low)
	}
}

func TestUpgradeChanceCapped(t *testing.T) {
	c := UpgradeChance(game.StoneTierV, game.StoneTierV, 100)
	if c != 0.90 {
		t.Fatalf("expected cap 0.90, got %f", c)
	}
}

func TestEscalateNeverBelowWeakerParent(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		res := Escalate(game.RarityLegendary, game.RarityRare, game.StoneTierI, game.StoneTierI, 0, rng.New(seed))
		if res.MinRarity != game.RarityRare {
			t.Fatalf("base should be the weaker parent, got %v", res.MinRarity)
		}
		if res.FinalRarity != game.RarityRare && res.FinalRarity != game.RaritySuperRare {
			t.Fatalf("seed %d escalated outside base..base+1: %v", seed, res.FinalRarity)
		}
	}
}

func TestEscalateOmegaStaysOmega(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		res := Escalate(game.RarityOmega, game.RarityOmega, game.StoneTierV, game.StoneTierV, 50, rng.New(seed))
		if res.FinalRarity != game.RarityOmega {
			t.Fatalf("seed %d pushed past the rarity ceiling: %v", seed, res.FinalRarity)
		}
	}
}

func TestPreviewEscalationMatchesRoll(t *testing.T) {
	prev := PreviewEscalation(game.RarityBasic, game.RarityRare, game.StoneTierII, game.StoneTierIII, 2)
	roll := Escalate(game.RarityBasic, game.RarityRare, game.StoneTierII, game.StoneTierIII, 2, rng.New(7))
	if prev.UpgradeChance != roll.UpgradeChance {
		t.Fatalf("preview chance %f differs from roll chance %f", prev.UpgradeChance, roll.UpgradeChance)
	}
	if prev.MinRarity != roll.MinRarity {
		t.Fatalf("preview base %v differs from roll base %v", prev.MinRarity, roll.MinRarity)
	}
}
