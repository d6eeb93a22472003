package combat

import "github.com/petforge/petforge/internal/game"

// statWithModifiers computes a combatant's effective value for one stat:
// base stat scaled by lineage modifiers, buffs and debuffs. Never negative.
func statWithModifiers(c *game.CombatPet, stat game.StatKind) int {
	mult := 1.0
	for _, m := range c.LineageModifiers {
		if m.Stat == stat {
			mult += m.Percent
		}
	}
	for _, m := range c.Buffs {
		if m.Stat == stat {
			mult += m.Percent
		}
	}
	for _, m := range c.Debuffs {
		if m.Stat == stat {
			mult -= m.Percent
		}
	}
	v := int(float64(c.Stats.Value(stat)) * mult)
	if v < 0 {
		v = 0
	}
	return v
}

// incapacitated reports whether a status currently prevents the combatant
// from acting.
func incapacitated(c *game.CombatPet) bool {
	for _, s := range c.StatusEffects {
		if s.Type == game.StatusStun || s.Type == game.StatusFreeze {
			return true
		}
	}
	return false
}

// hasStatus reports whether the combatant already carries the given status.
func hasStatus(c *game.CombatPet, t game.StatusType) bool {
	for _, s := range c.StatusEffects {
		if s.Type == t {
			return true
		}
	}
	return false
}
