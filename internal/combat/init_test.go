package combat

import (
	"errors"
	"math"
	"testing"

	"github.com/petforge/petforge/internal/game"
	"gorm.io/gorm"
)

func strikeAbility(value float64, cost, cooldown int) game.Ability {
	return game.Ability{
		ID:         "strike",
		Name:       "Strike",
		Type:       game.AbilityActive,
		EnergyCost: &cost,
		Cooldown:   &cooldown,
		Effects: []game.Effect{
			{Type: game.EffectDamage, Target: game.TargetSingleEnemy, Value: value, ScalingStat: game.StatAttack},
		},
	}
}

func fighter(id uint, name string, speed int) *game.Pet {
	return &game.Pet{
		Model:           gorm.Model{ID: id},
		Name:            name,
		Rarity:          game.RarityBasic,
		Element:         game.ElementFire,
		Stats:           game.Stats{HP: 30, MaxHP: 30, Attack: 10, Defense: 5, Speed: speed},
		ActiveAbilities: []game.Ability{strikeAbility(1.0, 0, 0)},
	}
}

func TestNewBattleTurnOrderBySpeed(t *testing.T) {
	team1 := []*game.Pet{fighter(1, "Ash", 12), fighter(2, "Bram", 9)}
	team2 := []*game.Pet{fighter(3, "Cinder", 11), fighter(4, "Dune", 7)}

	b, err := NewBattle(team1, team2, nil, 1)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	want := []uint{1, 3, 2, 4}
	for i, id := range want {
		if b.TurnOrder[i] != id {
			t.Fatalf("turn order %v, want %v", b.TurnOrder, want)
		}
	}
	if b.CurrentTurn != 1 {
		t.Fatalf("battle should start at turn 1, got %d", b.CurrentTurn)
	}
}

func TestNewBattleSpeedTieFavorsTeam1(t *testing.T) {
	b, err := NewBattle([]*game.Pet{fighter(1, "Ash", 10)}, []*game.Pet{fighter(2, "Cinder", 10)}, nil, 1)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	if b.TurnOrder[0] != 1 {
		t.Fatalf("tie should resolve to team 1, got order %v", b.TurnOrder)
	}
}

func TestNewBattleRowAssignment(t *testing.T) {
	team1 := []*game.Pet{fighter(1, "A", 10), fighter(2, "B", 10), fighter(3, "C", 10)}
	team2 := []*game.Pet{fighter(4, "D", 10)}

	b, err := NewBattle(team1, team2, nil, 1)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	positions := []game.Position{b.Team1[0].Position, b.Team1[1].Position, b.Team1[2].Position}
	want := []game.Position{game.PositionFront, game.PositionFront, game.PositionBack}
	for i := range want {
		if positions[i] != want[i] {
			t.Fatalf("3-pet rows %v, want %v", positions, want)
		}
	}
	if b.Team2[0].Position != game.PositionFront {
		t.Fatal("sole team member must stand in front")
	}
}

func TestNewBattleValidationCollectsAllConditions(t *testing.T) {
	noActive := fighter(5, "Mute", 8)
	noActive.ActiveAbilities = nil
	dup := fighter(6, "Twin", 8)

	_, err := NewBattle(nil, []*game.Pet{dup, dup, noActive}, nil, 1)
	var verr *game.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// Empty team 1, duplicated pet 6, pet 5 without an active.
	if len(verr.Conditions) < 3 {
		t.Fatalf("expected every condition reported, got %v", verr.Conditions)
	}
}

func TestNewBattleSnapshotsDoNotAliasInputs(t *testing.T) {
	p := fighter(1, "Ash", 10)
	p.Stats.HP = 3
	b, err := NewBattle([]*game.Pet{p}, []*game.Pet{fighter(2, "Cinder", 9)}, nil, 1)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	if b.Team1[0].CurrentHP != p.Stats.MaxHP {
		t.Fatalf("combatants start at full hp, got %d", b.Team1[0].CurrentHP)
	}

	b.Team1[0].ActiveAbilities[0].CurrentCooldown = 5
	b.Team1[0].CurrentHP = 0
	if p.Stats.HP != 3 || p.ActiveAbilities[0].CurrentCooldown != 0 {
		t.Fatal("battle mutated the source pet")
	}
}

func TestNewBattleDomainEffectsFromHighTierStones(t *testing.T) {
	p1 := fighter(1, "Ash", 10)
	p2 := fighter(2, "Cinder", 9)
	stones := map[uint][]game.Stone{
		1: {
			{Model: gorm.Model{ID: 21}, Type: game.ElementFire, Tier: game.StoneTierII},
			{Model: gorm.Model{ID: 22}, Type: game.ElementFire, Tier: game.StoneTierIII},
		},
		2: {
			{Model: gorm.Model{ID: 23}, Type: game.ElementWater, Tier: game.StoneTierV},
		},
	}

	b, err := NewBattle([]*game.Pet{p1}, []*game.Pet{p2}, stones, 1)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	if len(b.DomainEffects) != 2 {
		t.Fatalf("only tier III+ stones project domain effects, got %v", b.DomainEffects)
	}
	byStone := make(map[uint]game.DomainEffect)
	for _, d := range b.DomainEffects {
		byStone[d.SourceStoneID] = d
	}
	if math.Abs(byStone[22].Percent-0.05) > 1e-9 {
		t.Fatalf("tier III should contribute 0.05, got %f", byStone[22].Percent)
	}
	if math.Abs(byStone[23].Percent-0.15) > 1e-9 {
		t.Fatalf("tier V should contribute 0.15, got %f", byStone[23].Percent)
	}
}

func TestLineageModifiersBoostSpeed(t *testing.T) {
	p := fighter(1, "Ash", 10)
	p.FusionHistory = []game.FusionRecord{{Generation: 3}}

	b, err := NewBattle([]*game.Pet{p}, []*game.Pet{fighter(2, "Cinder", 10)}, nil, 1)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	got := b.Team1[0].EffectiveSpeed()
	if math.Abs(got-10.6) > 1e-9 {
		t.Fatalf("generation 3 should give a 6%% speed boost, got %f", got)
	}
	// The boost also decides turn order against an equal-speed opponent.
	if b.TurnOrder[0] != 1 {
		t.Fatalf("lineage speed should win the order, got %v", b.TurnOrder)
	}

	deep := fighter(3, "Elder", 10)
	deep.FusionHistory = []game.FusionRecord{{Generation: 12}}
	b2, err := NewBattle([]*game.Pet{deep}, []*game.Pet{fighter(4, "Cinder", 10)}, nil, 1)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	if got := b2.Team1[0].EffectiveSpeed(); math.Abs(got-11.0) > 1e-9 {
		t.Fatalf("speed boost should cap at 10%%, got %f", got)
	}
}
