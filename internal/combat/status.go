package combat

import "github.com/petforge/petforge/internal/game"

// tickAll runs the end-of-turn bookkeeping for every combatant: ability
// cooldowns count down, statuses apply their periodic effects and expire,
// buffs and debuffs run out.
func tickAll(b *game.Battle) {
	for _, team := range [][]game.CombatPet{b.Team1, b.Team2} {
		for i := range team {
			tickCombatant(&team[i])
		}
	}
}

func tickCombatant(c *game.CombatPet) {
	for i := range c.ActiveAbilities {
		if c.ActiveAbilities[i].CurrentCooldown > 0 {
			c.ActiveAbilities[i].CurrentCooldown--
		}
	}
	if c.UltimateAbility != nil && c.UltimateAbility.CurrentCooldown > 0 {
		c.UltimateAbility.CurrentCooldown--
	}

	if !c.Alive() {
		// Defeated combatants keep no statuses or modifiers.
		c.StatusEffects = nil
		c.Buffs = nil
		c.Debuffs = nil
		return
	}

	kept := c.StatusEffects[:0]
	for _, s := range c.StatusEffects {
		switch s.Type {
		case game.StatusBurn, game.StatusPoison:
			dmg := int(s.Value)
			if dmg < 1 {
				dmg = 1
			}
			c.ApplyDamage(dmg)
		case game.StatusRegen:
			heal := int(s.Value)
			if heal < 1 {
				heal = 1
			}
			c.Heal(heal)
		}
		s.Duration--
		if s.Duration > 0 && c.Alive() {
			kept = append(kept, s)
		}
	}
	c.StatusEffects = kept

	c.Buffs = tickModifiers(c.Buffs)
	c.Debuffs = tickModifiers(c.Debuffs)
}

func tickModifiers(mods []game.StatModifier) []game.StatModifier {
	kept := mods[:0]
	for _, m := range mods {
		m.Duration--
		if m.Duration > 0 {
			kept = append(kept, m)
		}
	}
	return kept
}

// regenerate restores the fixed energy rate to every living combatant.
func regenerate(b *game.Battle) {
	for _, team := range [][]game.CombatPet{b.Team1, b.Team2} {
		for i := range team {
			if !team[i].Alive() {
				continue
			}
			team[i].CurrentEnergy += EnergyRegen
			if team[i].CurrentEnergy > MaxEnergy {
				team[i].CurrentEnergy = MaxEnergy
			}
		}
	}
}
