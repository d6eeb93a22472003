package fusion

import (
	"reflect"
	"strings"
	"testing"

	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/rng"
)

type fakeNames map[string]bool

func (f fakeNames) NameExists(name string) (bool, error) { return f[name], nil }

func testAbility(id string, typ game.AbilityType, element game.Element) game.Ability {
	a := game.Ability{ID: id, Name: id, Type: typ, Element: element}
	if typ != game.AbilityPassive {
		cost, cd := 2, 1
		a.EnergyCost = &cost
		a.Cooldown = &cd
	}
	a.Effects = []game.Effect{{Type: game.EffectDamage, Target: game.TargetSingleEnemy, Value: 1.0, ScalingStat: game.StatAttack}}
	return a
}

func testLibrary() *Library {
	return NewLibrary([]game.Ability{
		testAbility("gust", game.AbilityActive, game.ElementAir),
		testAbility("cyclone", game.AbilityActive, game.ElementAir),
		testAbility("tailwind", game.AbilityActive, game.ElementAir),
		testAbility("ember", game.AbilityActive, game.ElementFire),
		testAbility("feather_skin", game.AbilityPassive, game.ElementAir),
		testAbility("updraft", game.AbilityPassive, game.ElementAir),
		testAbility("stone_hide", game.AbilityPassive, game.ElementEarth),
		testAbility("tempest", game.AbilityUltimate, game.ElementAir),
	})
}

func testSignature(t *testing.T) Signature {
	t.Helper()
	p1 := testParent(1, "Ember", game.ElementFire, game.RarityBasic, game.Stats{MaxHP: 40, Attack: 12, Defense: 8, Speed: 10})
	p2 := testParent(2, "Tide", game.ElementWater, game.RarityBasic, game.Stats{MaxHP: 50, Attack: 8, Defense: 12, Speed: 9})
	s1 := testStone(11, game.ElementFire, game.StoneTierII)
	s2 := testStone(12, game.ElementWater, game.StoneTierIII)
	table := game.NewInteractionTable([]game.ElementalInteraction{{
		First:     game.ElementFire,
		Second:    game.ElementWater,
		Result:    game.ElementAir,
		Prefix:    "Steam",
		ThemeTags: []string{"mist"},
	}})
	return BuildSignature(p1, p2, s1, s2, IntentNone, table, nil)
}

func TestSlotsPerRarity(t *testing.T) {
	cases := []struct {
		rarity   game.Rarity
		passives int
		actives  int
		ultimate bool
	}{
		{game.RarityBasic, 0, 1, false},
		{game.RarityRare, 1, 1, false},
		{game.RarityLegendary, 2, 2, true},
		{game.RarityOmega, 3, 4, true},
	}
	for _, c := range cases {
		p, a, u := Slots(c.rarity)
		if p != c.passives || a != c.actives || u != c.ultimate {
			t.Errorf("%v: got %d/%d/%v, want %d/%d/%v", c.rarity, p, a, u, c.passives, c.actives, c.ultimate)
		}
	}
}

func TestAssembleFillsSlotsWithoutDuplicates(t *testing.T) {
	sig := testSignature(t)
	res := AssembleResult(sig, game.RarityMythic, false, testLibrary(), fakeNames{}, rng.New(5))

	if len(res.Passives) != 2 {
		t.Fatalf("expected 2 passives, got %d", len(res.Passives))
	}
	if len(res.Actives) != 3 {
		t.Fatalf("expected 3 actives, got %d", len(res.Actives))
	}
	if res.Ultimate == nil {
		t.Fatal("mythic result should carry an ultimate")
	}
	seen := map[string]bool{res.Ultimate.ID: true}
	for _, a := range append(res.Passives, res.Actives...) {
		if seen[a.ID] {
			t.Fatalf("ability %q granted twice", a.ID)
		}
		seen[a.ID] = true
	}
	if res.Name == "" {
		t.Fatal("assembled result has no name")
	}
}

func TestAssembleEmptyLibraryFallsBackToBasicStrike(t *testing.T) {
	sig := testSignature(t)
	res := AssembleResult(sig, game.RarityLegendary, false, NewLibrary(nil), fakeNames{}, rng.New(1))

	if len(res.Actives) != 1 || res.Actives[0].ID != "basic_strike" {
		t.Fatalf("expected basic strike fallback, got %+v", res.Actives)
	}
	if res.Actives[0].Element != game.ElementAir {
		t.Fatalf("fallback strike should carry the preferred element, got %q", res.Actives[0].Element)
	}
	if res.Ultimate != nil {
		t.Fatal("empty library cannot yield an ultimate")
	}
}

func TestAssembleCorruptedMarksResult(t *testing.T) {
	sig := testSignature(t)
	res := AssembleResult(sig, game.RarityBasic, true, testLibrary(), fakeNames{}, rng.New(3))

	if !strings.HasPrefix(res.Name, "Unstable ") {
		t.Fatalf("corrupted name missing prefix: %q", res.Name)
	}
	found := false
	for _, tag := range res.VisualTags {
		if tag == "unstable" {
			found = true
		}
	}
	if !found {
		t.Fatalf("corrupted result missing unstable tag: %v", res.VisualTags)
	}
	if !strings.Contains(res.Lore, "stabilize") {
		t.Fatalf("corrupted lore missing instability note: %q", res.Lore)
	}
}

func TestAssembleNameCollisionSuffixes(t *testing.T) {
	sig := testSignature(t)
	base := AssembleResult(sig, game.RarityBasic, false, testLibrary(), fakeNames{}, rng.New(9))

	taken := fakeNames{base.Name: true, base.Name + " II": true}
	res := AssembleResult(sig, game.RarityBasic, false, testLibrary(), taken, rng.New(9))
	if res.Name != base.Name+" III" {
		t.Fatalf("expected suffix escalation to %q III, got %q", base.Name, res.Name)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	sig := testSignature(t)
	a := AssembleResult(sig, game.RaritySuperRare, false, testLibrary(), fakeNames{}, rng.New(77))
	b := AssembleResult(sig, game.RaritySuperRare, false, testLibrary(), fakeNames{}, rng.New(77))

	if a.Name != b.Name {
		t.Fatalf("same seed produced different names: %q vs %q", a.Name, b.Name)
	}
	if !reflect.DeepEqual(a.Actives, b.Actives) || !reflect.DeepEqual(a.Passives, b.Passives) {
		t.Fatal("same seed produced different ability sets")
	}
}
