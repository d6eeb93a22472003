package game

// Stats is the static stat block of a pet. All values are non-negative and
// HP never exceeds MaxHP; use Clamp after any mutation.
type Stats struct {
	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
}

// Clamp restores the stat invariants in place: no negatives, HP <= MaxHP
// and MaxHP at least 1.
func (s *Stats) Clamp() {
	if s.MaxHP < 1 {
		s.MaxHP = 1
	}
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	if s.HP < 0 {
		s.HP = 0
	}
	if s.Attack < 0 {
		s.Attack = 0
	}
	if s.Defense < 0 {
		s.Defense = 0
	}
	if s.Speed < 0 {
		s.Speed = 0
	}
}

// StatKind names a single stat for partial maps (stone bonuses, effect
// scaling). A closed set; effect resolution switches exhaustively on it.
type StatKind string

const (
	StatHP      StatKind = "hp"
	StatAttack  StatKind = "attack"
	StatDefense StatKind = "defense"
	StatSpeed   StatKind = "speed"
)

// Value returns the named stat from s. MaxHP is read for StatHP since
// static stat blocks keep HP == MaxHP outside combat.
func (s Stats) Value(k StatKind) int {
	switch k {
	case StatHP:
		return s.MaxHP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpeed:
		return s.Speed
	}
	return 0
}
