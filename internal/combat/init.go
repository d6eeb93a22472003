package combat

import (
	"fmt"
	"sort"

	"github.com/petforge/petforge/internal/game"
)

const (
	// StartingEnergy is every combatant's energy at battle start.
	StartingEnergy = 2
	// EnergyRegen is the fixed per-turn regeneration for living combatants.
	EnergyRegen = 1
	// MaxEnergy caps regeneration.
	MaxEnergy = 10
)

// lineageModifiers derives the combat-only stat adjustments from a pet's
// fusion ancestry: deep lineages fight a little faster and harder.
func lineageModifiers(p *game.Pet) []game.LineageModifier {
	gen := p.Generation()
	if gen == 0 {
		return nil
	}
	speed := 0.02 * float64(gen)
	if speed > 0.10 {
		speed = 0.10
	}
	attack := 0.01 * float64(gen)
	if attack > 0.05 {
		attack = 0.05
	}
	return []game.LineageModifier{
		{Stat: game.StatSpeed, Percent: speed, Source: fmt.Sprintf("generation %d", gen)},
		{Stat: game.StatAttack, Percent: attack, Source: fmt.Sprintf("generation %d", gen)},
	}
}

func snapshotPet(p *game.Pet, pos game.Position, carried []game.Stone) game.CombatPet {
	stats := p.Stats
	stats.HP = stats.MaxHP
	stats.Clamp()
	c := game.CombatPet{
		PetID:            p.ID,
		Name:             p.Name,
		Family:           p.Family,
		Rarity:           p.Rarity,
		Element:          p.Element,
		Stats:            stats,
		CurrentHP:        stats.MaxHP,
		CurrentEnergy:    StartingEnergy,
		PassiveAbilities: append([]game.Ability(nil), p.PassiveAbilities...),
		ActiveAbilities:  append([]game.Ability(nil), p.ActiveAbilities...),
		Position:         pos,
		LineageModifiers: lineageModifiers(p),
		CarriedStones:    append([]game.Stone(nil), carried...),
	}
	if p.UltimateAbility != nil {
		u := *p.UltimateAbility
		c.UltimateAbility = &u
	}
	return c
}

func buildTeam(pets []*game.Pet, stones map[uint][]game.Stone) []game.CombatPet {
	front := (len(pets) + 1) / 2
	team := make([]game.CombatPet, 0, len(pets))
	for i, p := range pets {
		pos := game.PositionFront
		if i >= front {
			pos = game.PositionBack
		}
		team = append(team, snapshotPet(p, pos, stones[p.ID]))
	}
	return team
}

// domainEffects aggregates the battle-wide passive modifiers from stones
// carried by any combatant. Computed once here and never again, even when
// carriers are defeated.
func domainEffects(teams ...[]game.CombatPet) []game.DomainEffect {
	var out []game.DomainEffect
	for _, team := range teams {
		for i := range team {
			for _, s := range team[i].CarriedStones {
				if s.Tier < game.StoneTierIII {
					continue
				}
				out = append(out, game.DomainEffect{
					Stat:          game.StatAttack,
					Percent:       0.05 * float64(s.Tier-game.StoneTierII),
					Element:       s.Type,
					SourceStoneID: s.ID,
					Description:   fmt.Sprintf("tier %d %s stone empowers %s damage", s.Tier, s.Type, s.Type),
				})
			}
		}
	}
	return out
}

// NewBattle seeds a battle from two teams: snapshots, rows, turn order and
// domain effects. The input pets are never mutated by combat. Validation
// reports every failing condition at once.
func NewBattle(team1, team2 []*game.Pet, stones map[uint][]game.Stone, seed int64) (*game.Battle, error) {
	var conditions []string
	if len(team1) < 1 || len(team1) > 4 {
		conditions = append(conditions, fmt.Sprintf("team 1 size must be between 1 and 4, got %d", len(team1)))
	}
	if len(team2) < 1 || len(team2) > 4 {
		conditions = append(conditions, fmt.Sprintf("team 2 size must be between 1 and 4, got %d", len(team2)))
	}
	seen := make(map[uint]bool)
	for _, p := range append(append([]*game.Pet(nil), team1...), team2...) {
		if p == nil {
			conditions = append(conditions, "nil pet in team")
			continue
		}
		if seen[p.ID] {
			conditions = append(conditions, fmt.Sprintf("pet %d appears more than once", p.ID))
		}
		seen[p.ID] = true
		if len(p.ActiveAbilities) == 0 {
			conditions = append(conditions, fmt.Sprintf("pet %d has no active ability", p.ID))
		}
	}
	if len(conditions) > 0 {
		return nil, &game.ValidationError{Conditions: conditions}
	}

	b := &game.Battle{
		Seed:  seed,
		Team1: buildTeam(team1, stones),
		Team2: buildTeam(team2, stones),
	}
	b.DomainEffects = domainEffects(b.Team1, b.Team2)
	b.TurnOrder = computeTurnOrder(b)
	b.CurrentTurn = 1
	return b, nil
}

// computeTurnOrder sorts every combatant across both teams by descending
// effective speed. The sort is stable over the input order (team 1 first),
// so ties resolve to the first-listed combatant deterministically. The
// order is fixed for the whole battle; only the cursor advances.
func computeTurnOrder(b *game.Battle) []uint {
	type entry struct {
		id    uint
		speed float64
	}
	entries := make([]entry, 0, len(b.Team1)+len(b.Team2))
	for i := range b.Team1 {
		entries = append(entries, entry{b.Team1[i].PetID, b.Team1[i].EffectiveSpeed()})
	}
	for i := range b.Team2 {
		entries = append(entries, entry{b.Team2[i].PetID, b.Team2[i].EffectiveSpeed()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].speed > entries[j].speed
	})
	order := make([]uint, len(entries))
	for i, e := range entries {
		order[i] = e.id
	}
	return order
}
