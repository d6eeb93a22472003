package combat

import (
	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/rng"
)

// turnContext carries the state of one ExecuteTurn invocation.
type turnContext struct {
	b         *game.Battle
	r         *rng.Source
	actor     *game.CombatPet
	actorTeam int
	outcomes  []game.EffectOutcome
}

// TurnSource derives the RNG for the next turn from the battle seed and the
// number of actions already logged, so a reloaded battle continues the
// exact same random stream.
func TurnSource(b *game.Battle) *rng.Source {
	return rng.New(b.Seed + int64(len(b.Log))*7919)
}

// ExecuteTurn advances the battle by exactly one turn: one actor resolves
// one ability (or a basic attack), then statuses tick, energy regenerates
// and the win condition is checked. Invoking it on a completed battle is a
// documented no-op returning false, never an error.
func ExecuteTurn(b *game.Battle, r *rng.Source) bool {
	if b.IsComplete {
		return false
	}

	tc := &turnContext{b: b, r: r}
	tc.findActor()

	if tc.actor != nil {
		ability, basic := tc.chooseAbility()
		tc.resolveAbility(ability, basic)
		tc.b.Log = append(tc.b.Log, game.ResolvedAction{
			Turn:        b.CurrentTurn,
			ActorID:     tc.actor.PetID,
			ActorName:   tc.actor.Name,
			AbilityID:   ability.ID,
			AbilityName: ability.Name,
			BasicAttack: basic,
			Outcomes:    tc.outcomes,
		})
		tc.advanceCursor()
	}

	tickAll(b)
	regenerate(b)
	tc.checkWin()
	return true
}

// findActor walks the fixed turn order from the cursor, skipping defeated
// and incapacitated combatants. Scanning every slot once means a fruitless
// pass wraps exactly one turn, so when nobody can act the turn counter
// still advances by one and those statuses expire.
func (tc *turnContext) findActor() {
	b := tc.b
	n := len(b.TurnOrder)
	if n == 0 {
		return
	}
	for scanned := 0; scanned < n; scanned++ {
		id := b.TurnOrder[b.CurrentActorIndex]
		c, team := b.Combatant(id)
		if c != nil && c.Alive() && !incapacitated(c) {
			tc.actor = c
			tc.actorTeam = team
			return
		}
		tc.advanceCursor()
	}
}

// advanceCursor moves to the next slot in turn order; wrapping around
// starts a new turn.
func (tc *turnContext) advanceCursor() {
	b := tc.b
	b.CurrentActorIndex++
	if b.CurrentActorIndex >= len(b.TurnOrder) {
		b.CurrentActorIndex = 0
		b.CurrentTurn++
	}
}

// chooseAbility picks the strongest usable active (including the ultimate)
// whose energy cost is covered and whose cooldown is ready. Ties keep slot
// order. With nothing usable the built-in basic attack is used.
func (tc *turnContext) chooseAbility() (game.Ability, bool) {
	var best *game.Ability
	consider := func(a *game.Ability) {
		if a.EnergyCost == nil || *a.EnergyCost > tc.actor.CurrentEnergy {
			return
		}
		if a.CurrentCooldown > 0 {
			return
		}
		if best == nil || a.Power() > best.Power() {
			best = a
		}
	}
	for i := range tc.actor.ActiveAbilities {
		consider(&tc.actor.ActiveAbilities[i])
	}
	if tc.actor.UltimateAbility != nil {
		consider(tc.actor.UltimateAbility)
	}
	if best == nil {
		return game.BasicStrike(tc.actor.Element), true
	}
	return *best, false
}

// resolveAbility applies every effect of the chosen ability in declaration
// order, then pays its costs.
func (tc *turnContext) resolveAbility(ability game.Ability, basic bool) {
	for _, eff := range ability.Effects {
		tc.resolveEffect(ability, eff)
	}
	if basic {
		return
	}
	if ability.EnergyCost != nil {
		tc.actor.CurrentEnergy -= *ability.EnergyCost
		if tc.actor.CurrentEnergy < 0 {
			tc.actor.CurrentEnergy = 0
		}
	}
	// Set to cooldown+1: the global tick below decrements every ability,
	// leaving the net cooldown at the configured value.
	if ability.Cooldown != nil && *ability.Cooldown > 0 {
		setCooldown(tc.actor, ability.ID, *ability.Cooldown+1)
	}
}

func setCooldown(c *game.CombatPet, abilityID string, v int) {
	for i := range c.ActiveAbilities {
		if c.ActiveAbilities[i].ID == abilityID {
			c.ActiveAbilities[i].CurrentCooldown = v
			return
		}
	}
	if c.UltimateAbility != nil && c.UltimateAbility.ID == abilityID {
		c.UltimateAbility.CurrentCooldown = v
	}
}

// checkWin marks the battle complete when a side is fully defeated. When
// both sides fall in the same resolution step, the acting side wins: its
// own action caused the wipe, and the policy must be deterministic. A turn
// with no actor (status ticks finishing off two incapacitated sides) has no
// acting side, so the last side that managed to act takes the win instead.
func (tc *turnContext) checkWin() {
	b := tc.b
	t1Down := game.TeamDefeated(b.Team1)
	t2Down := game.TeamDefeated(b.Team2)
	if !t1Down && !t2Down {
		return
	}
	b.IsComplete = true
	switch {
	case t1Down && t2Down:
		if tc.winningTeamOnWipe() == 2 {
			b.Winner = game.WinnerTeam2
		} else {
			b.Winner = game.WinnerTeam1
		}
	case t2Down:
		b.Winner = game.WinnerTeam1
	default:
		b.Winner = game.WinnerTeam2
	}
}

// winningTeamOnWipe resolves the side credited with a simultaneous wipe:
// the turn's actor if there was one, otherwise the side behind the most
// recent logged action. A wiped battle with no log at all falls back to
// team 1.
func (tc *turnContext) winningTeamOnWipe() int {
	if tc.actorTeam != 0 {
		return tc.actorTeam
	}
	for i := len(tc.b.Log) - 1; i >= 0; i-- {
		if _, team := tc.b.Combatant(tc.b.Log[i].ActorID); team != 0 {
			return team
		}
	}
	return 1
}
