package game

import "gorm.io/gorm"

// StoneTier is the ordinal tier of a modifier stone, I through V.
type StoneTier int

const (
	StoneTierI StoneTier = iota + 1
	StoneTierII
	StoneTierIII
	StoneTierIV
	StoneTierV
)

// ValidStoneTier reports whether t is within I..V.
func ValidStoneTier(t StoneTier) bool {
	return t >= StoneTierI && t <= StoneTierV
}

// Stone is a modifier item consumed by fusion. A stone is owned by exactly
// one player, or by nobody while listed on the market; ownership moves
// atomically on purchase (handled by the store).
type Stone struct {
	gorm.Model
	// OwnerEmail is empty while the stone is market-listed.
	OwnerEmail     string           `json:"-" gorm:"index"`
	Type           Element          `json:"type"`
	Tier           StoneTier        `json:"tier"`
	StatBonuses    map[StatKind]int `json:"stat_bonuses" gorm:"serializer:json"`
	ElementalPower int              `json:"elemental_power"`
	IsCorrupted    bool             `json:"is_corrupted"`
}

func (Stone) TableName() string { return "stones" }
