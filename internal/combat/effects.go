package combat

import (
	"math"

	"github.com/petforge/petforge/internal/game"
)

// allies and enemies return the two sides relative to the current actor.
func (tc *turnContext) allies() []game.CombatPet {
	if tc.actorTeam == 2 {
		return tc.b.Team2
	}
	return tc.b.Team1
}

func (tc *turnContext) enemies() []game.CombatPet {
	if tc.actorTeam == 2 {
		return tc.b.Team1
	}
	return tc.b.Team2
}

// selectTargets resolves an effect's target selection to concrete
// combatants. Single-enemy targeting prefers the living front row, so
// reaching the back line requires breaking the front first.
func (tc *turnContext) selectTargets(t game.TargetType) []*game.CombatPet {
	living := func(team []game.CombatPet, pos game.Position) []*game.CombatPet {
		var out []*game.CombatPet
		for i := range team {
			if team[i].Alive() && (pos == "" || team[i].Position == pos) {
				out = append(out, &team[i])
			}
		}
		return out
	}
	switch t {
	case game.TargetSelf:
		return []*game.CombatPet{tc.actor}
	case game.TargetSingleEnemy:
		if front := living(tc.enemies(), game.PositionFront); len(front) > 0 {
			return front[:1]
		}
		if back := living(tc.enemies(), game.PositionBack); len(back) > 0 {
			return back[:1]
		}
		return nil
	case game.TargetAllEnemies:
		return living(tc.enemies(), "")
	case game.TargetAllAllies:
		return living(tc.allies(), "")
	case game.TargetRandomAlly:
		candidates := living(tc.allies(), "")
		if len(candidates) == 0 {
			return nil
		}
		return []*game.CombatPet{candidates[tc.r.Intn(len(candidates))]}
	}
	return nil
}

// magnitude computes an effect's base amount: value times the actor's
// effective scaling stat when one is set, times the elemental interaction
// multiplier against the target, times any matching domain effects.
func (tc *turnContext) magnitude(ability game.Ability, eff game.Effect, target *game.CombatPet) float64 {
	amount := eff.Value
	if eff.ScalingStat != "" {
		amount *= float64(statWithModifiers(tc.actor, eff.ScalingStat))
	}
	element := eff.Element
	if element == game.ElementNone {
		element = ability.Element
	}
	amount *= game.ElementMultiplier(element, target.Element)
	for _, d := range tc.b.DomainEffects {
		if d.Element != game.ElementNone && d.Element == element {
			amount *= 1 + d.Percent
		}
	}
	return amount
}

// resolveEffect applies one effect to each of its targets and records the
// outcomes in order.
func (tc *turnContext) resolveEffect(ability game.Ability, eff game.Effect) {
	for _, target := range tc.selectTargets(eff.Target) {
		out := game.EffectOutcome{TargetID: target.PetID, Type: eff.Type}
		switch eff.Type {
		case game.EffectDamage:
			out.Amount = tc.applyDamage(ability, eff, target)
			out.Defeated = !target.Alive()
		case game.EffectHeal:
			amount := int(math.Round(tc.magnitude(ability, eff, target)))
			before := target.CurrentHP
			target.Heal(amount)
			out.Amount = target.CurrentHP - before
		case game.EffectBuff:
			target.Buffs = append(target.Buffs, game.StatModifier{
				Stat: eff.ScalingStat, Percent: eff.Value, Duration: effectDuration(eff),
			})
		case game.EffectDebuff:
			target.Debuffs = append(target.Debuffs, game.StatModifier{
				Stat: eff.ScalingStat, Percent: eff.Value, Duration: effectDuration(eff),
			})
		case game.EffectStatus:
			if applied := tc.rollStatus(eff, target, int(eff.Value)); applied {
				out.StatusApplied = eff.StatusType
			}
		case game.EffectSpecial:
			// Energy manipulation: positive restores, negative drains.
			target.CurrentEnergy += int(eff.Value)
			if target.CurrentEnergy < 0 {
				target.CurrentEnergy = 0
			}
			if target.CurrentEnergy > MaxEnergy {
				target.CurrentEnergy = MaxEnergy
			}
			out.Amount = int(eff.Value)
		}
		tc.outcomes = append(tc.outcomes, out)
	}
}

func effectDuration(eff game.Effect) int {
	if eff.StatusDuration > 0 {
		return eff.StatusDuration
	}
	return 2
}

// applyDamage mitigates magnitude by the target's defense, applies row and
// shield reductions, deals the damage, and handles lifesteal and attached
// status rolls. HP is clamped on every application.
func (tc *turnContext) applyDamage(ability game.Ability, eff game.Effect, target *game.CombatPet) int {
	raw := tc.magnitude(ability, eff, target)

	def := float64(statWithModifiers(target, game.StatDefense))
	raw *= 100 / (100 + def)

	// Back-row cover only shields against single-target hits.
	if eff.Target == game.TargetSingleEnemy && target.Position == game.PositionBack {
		raw *= 0.8
	}

	dmg := int(math.Round(raw))
	if dmg < 1 {
		dmg = 1
	}

	dmg = absorbWithShields(target, dmg)
	target.ApplyDamage(dmg)

	if eff.Lifesteal > 0 && dmg > 0 {
		tc.actor.Heal(int(math.Round(float64(dmg) * eff.Lifesteal)))
	}
	if eff.StatusType != game.StatusNone && eff.StatusChance > 0 {
		tickValue := dmg / 4
		if tickValue < 1 {
			tickValue = 1
		}
		tc.rollStatus(eff, target, tickValue)
	}
	return dmg
}

// rollStatus consumes one RNG draw and attaches the status on success.
// An already-present status is refreshed, not stacked.
func (tc *turnContext) rollStatus(eff game.Effect, target *game.CombatPet, value int) bool {
	chance := eff.StatusChance
	if eff.Type == game.EffectStatus && chance == 0 {
		chance = 1
	}
	if !tc.r.Chance(chance) {
		return false
	}
	duration := effectDuration(eff)
	for i := range target.StatusEffects {
		if target.StatusEffects[i].Type == eff.StatusType {
			if target.StatusEffects[i].Duration < duration {
				target.StatusEffects[i].Duration = duration
			}
			return true
		}
	}
	target.StatusEffects = append(target.StatusEffects, game.StatusInstance{
		Type:     eff.StatusType,
		Duration: duration,
		Value:    float64(value),
	})
	return true
}

// absorbWithShields consumes shield pools before HP and returns the damage
// that gets through.
func absorbWithShields(target *game.CombatPet, dmg int) int {
	for i := range target.StatusEffects {
		s := &target.StatusEffects[i]
		if s.Type != game.StatusShield || s.Value <= 0 {
			continue
		}
		absorbed := int(math.Min(float64(dmg), s.Value))
		s.Value -= float64(absorbed)
		dmg -= absorbed
		if dmg == 0 {
			break
		}
	}
	return dmg
}
