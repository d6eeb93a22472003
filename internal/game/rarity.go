package game

// Rarity is the ordered tier of a pet. The numeric order matters: fusion
// escalation and stat-range lookups compare and increment tiers directly.
type Rarity int

const (
	RarityBasic Rarity = iota
	RarityRare
	RaritySuperRare
	RarityLegendary
	RarityMythic
	RarityPrismatic
	RarityOmega
)

// RarityMax is the highest tier a fusion can escalate to.
const RarityMax = RarityOmega

var rarityNames = map[Rarity]string{
	RarityBasic:     "basic",
	RarityRare:      "rare",
	RaritySuperRare: "super_rare",
	RarityLegendary: "legendary",
	RarityMythic:    "mythic",
	RarityPrismatic: "prismatic",
	RarityOmega:     "omega",
}

func (r Rarity) String() string {
	if n, ok := rarityNames[r]; ok {
		return n
	}
	return "unknown"
}

// Next returns the tier above r, capped at RarityMax.
func (r Rarity) Next() Rarity {
	if r >= RarityMax {
		return RarityMax
	}
	return r + 1
}

// MinRarity returns the lower of the two tiers.
func MinRarity(a, b Rarity) Rarity {
	if a < b {
		return a
	}
	return b
}

// AllRarities lists every tier in ascending order (used by tests and by the
// ability slot table).
func AllRarities() []Rarity {
	return []Rarity{RarityBasic, RarityRare, RaritySuperRare, RarityLegendary, RarityMythic, RarityPrismatic, RarityOmega}
}
