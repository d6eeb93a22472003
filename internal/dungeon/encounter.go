// Package dungeon converts static creature templates into combat-ready
// pets, applying encounter difficulty scaling.
package dungeon

import (
	"fmt"
	"math"
	"time"

	"github.com/petforge/petforge/internal/fusion"
	"github.com/petforge/petforge/internal/game"
)

// FromTemplate instantiates one combat-ready pet from a template. The
// hp/attack/defense stats scale with the difficulty multiplier (rounded);
// speed is unscaled. Abilities resolve through the template library, and a
// template with no usable active falls back to the basic strike.
func FromTemplate(t game.PetTemplate, lib *fusion.Library, difficulty float64) *game.Pet {
	scale := func(v int) int {
		return int(math.Round(float64(v) * difficulty))
	}
	stats := game.Stats{
		MaxHP:   scale(t.Stats.MaxHP),
		Attack:  scale(t.Stats.Attack),
		Defense: scale(t.Stats.Defense),
		Speed:   t.Stats.Speed,
	}
	stats.HP = stats.MaxHP
	stats.Clamp()

	p := &game.Pet{
		TemplateKey: t.Key,
		Name:        t.Name,
		Family:      t.Family,
		Element:     t.Element,
		Rarity:      t.Rarity,
		Stats:       stats,
		Appearance:  game.Appearance{VisualTags: append([]string(nil), t.VisualTags...)},
		CollectedAt: time.Now().UTC(),
	}
	for _, id := range t.AbilityIDs {
		a, ok := lib.ByID(id)
		if !ok {
			continue
		}
		switch a.Type {
		case game.AbilityPassive:
			p.PassiveAbilities = append(p.PassiveAbilities, a)
		case game.AbilityActive:
			p.ActiveAbilities = append(p.ActiveAbilities, a)
		case game.AbilityUltimate:
			u := a
			p.UltimateAbility = &u
		}
	}
	if len(p.ActiveAbilities) == 0 {
		p.ActiveAbilities = []game.Ability{game.BasicStrike(t.Element)}
	}
	return p
}

// enemyIDBase seeds the synthetic combatant ids given to generated
// enemies. They never touch the store, but battle initialization and the
// turn order require every combatant id to be unique and non-zero, so the
// base sits far above any persisted pet id.
const enemyIDBase uint = 1 << 30

func assignEnemyIDs(pets []*game.Pet) {
	for i, p := range pets {
		p.ID = enemyIDBase + uint(i)
	}
}

// GenerateBoss instantiates one scaled boss copy per player-team slot, so
// the boss side always matches the player team size (1-4).
func GenerateBoss(t game.PetTemplate, lib *fusion.Library, difficulty float64, playerTeamSize int) ([]*game.Pet, error) {
	if playerTeamSize < 1 || playerTeamSize > 4 {
		return nil, &game.ValidationError{Conditions: []string{
			fmt.Sprintf("player team size must be between 1 and 4, got %d", playerTeamSize),
		}}
	}
	out := make([]*game.Pet, 0, playerTeamSize)
	for i := 0; i < playerTeamSize; i++ {
		p := FromTemplate(t, lib, difficulty)
		if playerTeamSize > 1 {
			p.Name = fmt.Sprintf("%s %d", t.Name, i+1)
		}
		out = append(out, p)
	}
	assignEnemyIDs(out)
	return out, nil
}

// GenerateWave instantiates a minion wave, truncating the template list to
// min(wave size, player team size). Waves are never padded with duplicates;
// an enemy side smaller than the player team is a valid outcome.
func GenerateWave(templates []game.PetTemplate, lib *fusion.Library, difficulty float64, playerTeamSize int) ([]*game.Pet, error) {
	if playerTeamSize < 1 || playerTeamSize > 4 {
		return nil, &game.ValidationError{Conditions: []string{
			fmt.Sprintf("player team size must be between 1 and 4, got %d", playerTeamSize),
		}}
	}
	n := len(templates)
	if playerTeamSize < n {
		n = playerTeamSize
	}
	out := make([]*game.Pet, 0, n)
	for _, t := range templates[:n] {
		out = append(out, FromTemplate(t, lib, difficulty))
	}
	assignEnemyIDs(out)
	return out, nil
}
