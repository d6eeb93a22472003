package game

// AbilityType classifies an ability slot.
type AbilityType string

const (
	AbilityPassive  AbilityType = "passive"
	AbilityActive   AbilityType = "active"
	AbilityUltimate AbilityType = "ultimate"
)

// EffectType is the closed set of things a single effect can do.
type EffectType string

const (
	EffectDamage  EffectType = "damage"
	EffectHeal    EffectType = "heal"
	EffectBuff    EffectType = "buff"
	EffectDebuff  EffectType = "debuff"
	EffectStatus  EffectType = "status"
	EffectSpecial EffectType = "special"
)

// TargetType selects who an effect applies to.
type TargetType string

const (
	TargetSelf        TargetType = "self"
	TargetSingleEnemy TargetType = "single_enemy"
	TargetAllEnemies  TargetType = "all_enemies"
	TargetRandomAlly  TargetType = "random_ally"
	TargetAllAllies   TargetType = "all_allies"
)

// StatusType is the closed set of persistent status conditions.
type StatusType string

const (
	StatusNone   StatusType = ""
	StatusBurn   StatusType = "burn"
	StatusPoison StatusType = "poison"
	StatusFreeze StatusType = "freeze"
	StatusStun   StatusType = "stun"
	StatusRegen  StatusType = "regen"
	StatusShield StatusType = "shield"
)

// Effect is one step of an ability. Effects resolve strictly in declaration
// order.
type Effect struct {
	Type           EffectType `json:"type"`
	Target         TargetType `json:"target"`
	Value          float64    `json:"value"`
	ScalingStat    StatKind   `json:"scaling_stat,omitempty"`
	Element        Element    `json:"element,omitempty"`
	StatusChance   float64    `json:"status_chance,omitempty"`
	StatusType     StatusType `json:"status_type,omitempty"`
	StatusDuration int        `json:"status_duration,omitempty"`
	Lifesteal      float64    `json:"lifesteal,omitempty"`
}

// Ability is a concrete passive, active or ultimate. EnergyCost and
// Cooldown are nil for passives.
type Ability struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Type            AbilityType `json:"type"`
	EnergyCost      *int        `json:"energy_cost,omitempty"`
	Cooldown        *int        `json:"cooldown,omitempty"`
	CurrentCooldown int         `json:"current_cooldown"`
	Effects         []Effect    `json:"effects"`
	Tags            []string    `json:"tags,omitempty"`
	Element         Element     `json:"element,omitempty"`
}

// Power is the summed base value of the ability's effects. Used to pick the
// "strongest" usable ability in combat; ties keep declaration order.
func (a Ability) Power() float64 {
	total := 0.0
	for _, e := range a.Effects {
		total += e.Value
	}
	return total
}

// BasicStrike is the hard-coded last-resort active ability: a single-target
// hit scaling off attack. Result assembly and encounter generation use it
// so no creature can ever end up without a usable active ability.
func BasicStrike(element Element) Ability {
	cost := 0
	cooldown := 0
	return Ability{
		ID:          "basic_strike",
		Name:        "Basic Strike",
		Description: "A simple direct attack.",
		Type:        AbilityActive,
		EnergyCost:  &cost,
		Cooldown:    &cooldown,
		Element:     element,
		Effects: []Effect{
			{Type: EffectDamage, Target: TargetSingleEnemy, Value: 1.0, ScalingStat: StatAttack, Element: element},
		},
	}
}
