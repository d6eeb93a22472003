package game

import "gorm.io/gorm"

// Position is a combat row. Rows are assigned positionally at battle
// initialization: the first half of each team stands in front.
type Position string

const (
	PositionFront Position = "front"
	PositionBack  Position = "back"
)

// StatusInstance is an active status condition on a combatant. Duration is
// in turns and is decremented during the tick phase; expired entries are
// pruned.
type StatusInstance struct {
	Type     StatusType `json:"type"`
	Duration int        `json:"duration"`
	// Value is the per-tick magnitude for periodic statuses (burn, poison,
	// regen) and the absorb pool for shields.
	Value float64 `json:"value"`
}

// StatModifier is a temporary percentage buff or debuff on one stat.
type StatModifier struct {
	Stat     StatKind `json:"stat"`
	Percent  float64  `json:"percent"`
	Duration int      `json:"duration"`
}

// LineageModifier is a combat-only stat adjustment derived from a pet's
// fusion ancestry. Computed once when the combat snapshot is built.
type LineageModifier struct {
	Stat    StatKind `json:"stat"`
	Percent float64  `json:"percent"`
	Source  string   `json:"source"`
}

// DomainEffect is a global, battle-wide passive modifier contributed by a
// stone carried into combat. Aggregated once at battle initialization and
// never recomputed, even if the carrier is defeated.
type DomainEffect struct {
	Stat          StatKind `json:"stat"`
	Percent       float64  `json:"percent"`
	Element       Element  `json:"element,omitempty"`
	SourceStoneID uint     `json:"source_stone_id"`
	Description   string   `json:"description"`
}

// CombatPet wraps a snapshot of a Pet for the lifetime of one battle. The
// underlying Pet row is never mutated by combat.
type CombatPet struct {
	PetID   uint    `json:"pet_id"`
	Name    string  `json:"name"`
	Family  string  `json:"family"`
	Rarity  Rarity  `json:"rarity"`
	Element Element `json:"element"`

	Stats         Stats `json:"stats"`
	CurrentHP     int   `json:"current_hp"`
	CurrentEnergy int   `json:"current_energy"`

	PassiveAbilities []Ability `json:"passive_abilities"`
	ActiveAbilities  []Ability `json:"active_abilities"`
	UltimateAbility  *Ability  `json:"ultimate_ability,omitempty"`

	StatusEffects    []StatusInstance  `json:"status_effects"`
	Buffs            []StatModifier    `json:"buffs"`
	Debuffs          []StatModifier    `json:"debuffs"`
	Position         Position          `json:"position"`
	LineageModifiers []LineageModifier `json:"lineage_modifiers"`
	CarriedStones    []Stone           `json:"carried_stones"`
}

// Alive reports whether the combatant can still act or be targeted.
func (c *CombatPet) Alive() bool { return c.CurrentHP > 0 }

// ApplyDamage subtracts dmg and clamps HP to [0, MaxHP].
func (c *CombatPet) ApplyDamage(dmg int) {
	c.CurrentHP -= dmg
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
	if c.CurrentHP > c.Stats.MaxHP {
		c.CurrentHP = c.Stats.MaxHP
	}
}

// Heal adds amount and clamps HP to MaxHP. Defeated combatants are not
// revived by incidental healing.
func (c *CombatPet) Heal(amount int) {
	if !c.Alive() {
		return
	}
	c.CurrentHP += amount
	if c.CurrentHP > c.Stats.MaxHP {
		c.CurrentHP = c.Stats.MaxHP
	}
}

// EffectiveSpeed is base speed times the summed lineage speed boosts. Turn
// order sorts on this once at initialization.
func (c *CombatPet) EffectiveSpeed() float64 {
	boost := 0.0
	for _, m := range c.LineageModifiers {
		if m.Stat == StatSpeed {
			boost += m.Percent
		}
	}
	return float64(c.Stats.Speed) * (1 + boost)
}

// EffectOutcome records what one resolved effect did to one target.
type EffectOutcome struct {
	TargetID      uint       `json:"target_id"`
	Type          EffectType `json:"type"`
	Amount        int        `json:"amount"`
	StatusApplied StatusType `json:"status_applied,omitempty"`
	Defeated      bool       `json:"defeated,omitempty"`
}

// ResolvedAction is one structured log entry: who acted, with what, and
// every per-target outcome in resolution order. The log is append-only and
// is the sole source of truth for replay.
type ResolvedAction struct {
	Turn        int             `json:"turn"`
	ActorID     uint            `json:"actor_id"`
	ActorName   string          `json:"actor_name"`
	AbilityID   string          `json:"ability_id"`
	AbilityName string          `json:"ability_name"`
	BasicAttack bool            `json:"basic_attack,omitempty"`
	Outcomes    []EffectOutcome `json:"outcomes"`
}

// Winner values for a completed battle.
const (
	WinnerTeam1 = "team1"
	WinnerTeam2 = "team2"
)

// Battle is one encounter between two teams of 1-4 combat pets. TurnOrder
// is fixed at initialization (a permutation of every combatant id) and is
// never re-sorted; only CurrentActorIndex advances. Once IsComplete is set
// the battle is terminal and never mutated again.
type Battle struct {
	gorm.Model
	OwnerEmail string `json:"owner_email" gorm:"index"`
	// EncounterKey is set for dungeon battles (boss or wave key); empty for
	// free battles between player teams.
	EncounterKey string `json:"encounter_key,omitempty"`
	Seed         int64  `json:"seed"`

	Team1 []CombatPet `json:"team1" gorm:"serializer:json"`
	Team2 []CombatPet `json:"team2" gorm:"serializer:json"`

	CurrentTurn       int    `json:"current_turn"`
	TurnOrder         []uint `json:"turn_order" gorm:"serializer:json"`
	CurrentActorIndex int    `json:"current_actor_index"`

	Log           []ResolvedAction `json:"log" gorm:"serializer:json"`
	DomainEffects []DomainEffect   `json:"domain_effects" gorm:"serializer:json"`

	IsComplete bool   `json:"is_complete"`
	Winner     string `json:"winner,omitempty"`
}

func (Battle) TableName() string { return "battles" }

// Combatant returns the combat pet with the given pet id and which team it
// belongs to (1 or 2), or nil if unknown.
func (b *Battle) Combatant(petID uint) (*CombatPet, int) {
	for i := range b.Team1 {
		if b.Team1[i].PetID == petID {
			return &b.Team1[i], 1
		}
	}
	for i := range b.Team2 {
		if b.Team2[i].PetID == petID {
			return &b.Team2[i], 2
		}
	}
	return nil, 0
}

// TeamDefeated reports whether every member of the team is down.
func TeamDefeated(team []CombatPet) bool {
	for i := range team {
		if team[i].Alive() {
			return false
		}
	}
	return true
}
