package service

import (
	"errors"
	"testing"

	"github.com/petforge/petforge/internal/config"
	"github.com/petforge/petforge/internal/game"
)

func battleFixture() *mockRepo {
	m := newMockRepo()
	cost, cd := 0, 1
	strike := game.Ability{ID: "bite", Name: "Bite", Type: game.AbilityActive, EnergyCost: &cost, Cooldown: &cd,
		Effects: []game.Effect{{Type: game.EffectDamage, Target: game.TargetSingleEnemy, Value: 1.0, ScalingStat: game.StatAttack}}}

	for i, def := range []struct {
		name  string
		owner string
		speed int
	}{
		{"Ember Fox", "ash@example.com", 12},
		{"Tide Wolf", "ash@example.com", 9},
		{"Gale Hawk", "", 11},
		{"Moss Bear", "", 7},
	} {
		p := &game.Pet{Name: def.name, OwnerEmail: def.owner, Element: game.ElementFire, Rarity: game.RarityBasic,
			Stats:           game.Stats{HP: 40, MaxHP: 40, Attack: 10, Defense: 5, Speed: def.speed},
			ActiveAbilities: []game.Ability{strike}}
		p.ID = uint(i + 1)
		m.pets[p.ID] = p
	}
	return m
}

func TestStartBattlePersistsSnapshot(t *testing.T) {
	m := battleFixture()
	seed := int64(7)
	b, err := StartBattle(m, StartBattleRequest{
		OwnerEmail:  "ash@example.com",
		Team1PetIDs: []uint{1, 2},
		Team2PetIDs: []uint{3, 4},
		Seed:        &seed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID == 0 {
		t.Fatal("expected battle to be persisted")
	}
	if len(b.Team1) != 2 || len(b.Team2) != 2 {
		t.Fatalf("unexpected team sizes: %d vs %d", len(b.Team1), len(b.Team2))
	}
	if len(b.TurnOrder) != 4 {
		t.Fatalf("turn order must cover all combatants, got %d", len(b.TurnOrder))
	}
	// Fastest combatant acts first.
	if b.TurnOrder[0] != 1 {
		t.Errorf("expected pet 1 (speed 12) first, got %d", b.TurnOrder[0])
	}
	// Snapshots must not mutate the stored pets.
	if m.pets[1].Stats.HP != 40 {
		t.Error("battle creation must not touch the pet rows")
	}
}

func TestStartBattleOwnershipValidation(t *testing.T) {
	m := battleFixture()
	_, err := StartBattle(m, StartBattleRequest{
		OwnerEmail:  "misty@example.com",
		Team1PetIDs: []uint{1, 2},
		Team2PetIDs: []uint{3, 4},
	})
	var verr *game.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Conditions) != 2 {
		t.Fatalf("expected 2 ownership conditions, got %v", verr.Conditions)
	}
}

func TestExecuteBattleTurnAdvancesAndPersists(t *testing.T) {
	m := battleFixture()
	seed := int64(21)
	b, err := StartBattle(m, StartBattleRequest{
		OwnerEmail:  "ash@example.com",
		Team1PetIDs: []uint{1},
		Team2PetIDs: []uint{3},
		Seed:        &seed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, acted, err := ExecuteBattleTurn(m, b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acted {
		t.Fatal("expected an action on a fresh battle")
	}
	if len(got.Log) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(got.Log))
	}

	stored, _ := m.GetBattleByID(b.ID)
	if len(stored.Log) != 1 {
		t.Error("turn result was not persisted")
	}
}

func TestExecuteBattleTurnCompleteIsNoOp(t *testing.T) {
	m := battleFixture()
	seed := int64(3)
	b, err := StartBattle(m, StartBattleRequest{
		OwnerEmail:  "ash@example.com",
		Team1PetIDs: []uint{1},
		Team2PetIDs: []uint{3},
		Seed:        &seed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 200 && !b.IsComplete; i++ {
		if b, _, err = ExecuteBattleTurn(m, b.ID); err != nil {
			t.Fatalf("unexpected error on turn %d: %v", i, err)
		}
	}
	if !b.IsComplete {
		t.Fatal("expected the battle to finish within 200 actions")
	}
	if b.Winner != game.WinnerTeam1 && b.Winner != game.WinnerTeam2 {
		t.Fatalf("completed battle must name a winner, got %q", b.Winner)
	}

	logLen := len(b.Log)
	after, acted, err := ExecuteBattleTurn(m, b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acted {
		t.Error("a completed battle must not accept further turns")
	}
	if len(after.Log) != logLen {
		t.Error("a completed battle's log must not grow")
	}
}

func TestStartEncounterBattleBoss(t *testing.T) {
	m := battleFixture()
	cfg := &config.LoadedConfig{
		PetTemplates: []game.PetTemplate{{
			Key: "ash_drake", Name: "Ash Drake", Family: "draconic",
			Element: game.ElementFire, Rarity: game.RarityRare,
			Stats:      game.Stats{MaxHP: 60, Attack: 14, Defense: 10, Speed: 9},
			AbilityIDs: []string{"ember_bite"},
		}},
		Bosses: []config.BossEntry{{Key: "cinder_keep", TemplateKey: "ash_drake", Difficulty: 1.5}},
	}
	seed := int64(5)
	b, err := StartEncounterBattle(m, cfg, testAbilityLibrary(), StartEncounterRequest{
		OwnerEmail:   "ash@example.com",
		EncounterKey: "cinder_keep",
		TeamPetIDs:   []uint{1, 2},
		Seed:         &seed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.EncounterKey != "cinder_keep" {
		t.Errorf("expected encounter key recorded, got %q", b.EncounterKey)
	}
	if len(b.Team2) != 2 {
		t.Fatalf("boss side must match the player team size, got %d", len(b.Team2))
	}
	if b.Team2[0].Stats.MaxHP != 90 {
		t.Errorf("expected scaled boss hp 90, got %d", b.Team2[0].Stats.MaxHP)
	}
	if b.Team2[0].PetID == 0 || b.Team2[1].PetID == 0 {
		t.Errorf("boss combatants must carry ids, got %d and %d", b.Team2[0].PetID, b.Team2[1].PetID)
	}
	if b.Team2[0].PetID == b.Team2[1].PetID {
		t.Errorf("boss combatants share id %d", b.Team2[0].PetID)
	}
}

func TestStartEncounterBattleUnknownKey(t *testing.T) {
	m := battleFixture()
	cfg := &config.LoadedConfig{}
	_, err := StartEncounterBattle(m, cfg, testAbilityLibrary(), StartEncounterRequest{
		OwnerEmail:   "ash@example.com",
		EncounterKey: "nowhere",
		TeamPetIDs:   []uint{1},
	})
	var verr *game.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for unknown encounter, got %v", err)
	}
}
