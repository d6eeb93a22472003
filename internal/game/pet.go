package game

import (
	"time"

	"gorm.io/gorm"
)

// FusionRecord is one entry of a pet's ancestry. A fusion product carries
// the concatenation of both parents' histories plus one new record, so the
// full lineage is always preserved.
type FusionRecord struct {
	Generation     int       `json:"generation"`
	ParentIDs      [2]uint   `json:"parent_ids"`
	ParentFamilies [2]string `json:"parent_families"`
	StoneIDs       [2]uint   `json:"stone_ids"`
	FusionSeed     int64     `json:"fusion_seed"`
	MutationCount  int       `json:"mutation_count"`
	Timestamp      time.Time `json:"timestamp"`
}

// Appearance groups the visual tags used by sprite generation (external)
// and by the uniqueness scorer.
type Appearance struct {
	VisualTags []string `json:"visual_tags"`
	Palette    string   `json:"palette,omitempty"`
}

// Pet is a creature. A pet with an empty TemplateKey is a fusion product;
// one with a template key is a base, starter or dungeon creature.
type Pet struct {
	gorm.Model
	OwnerEmail  string  `json:"-" gorm:"index"`
	TemplateKey string  `json:"template_key,omitempty"`
	Name        string  `json:"name"`
	Family      string  `json:"family"`
	Rarity      Rarity  `json:"rarity"`
	Element     Element `json:"element"`

	Stats Stats `json:"stats" gorm:"embedded;embeddedPrefix:stat_"`

	PassiveAbilities []Ability `json:"passive_abilities" gorm:"serializer:json"`
	// ActiveAbilities always contains at least one entry; assembly
	// guarantees it and fusion validation re-checks it before persisting.
	ActiveAbilities []Ability `json:"active_abilities" gorm:"serializer:json"`
	UltimateAbility *Ability  `json:"ultimate_ability,omitempty" gorm:"serializer:json"`

	FusionHistory []FusionRecord `json:"fusion_history" gorm:"serializer:json"`
	Appearance    Appearance     `json:"appearance" gorm:"serializer:json"`

	CollectedAt time.Time `json:"collected_at"`
	IsCorrupted bool      `json:"is_corrupted"`
	Lore        string    `json:"lore"`
}

func (Pet) TableName() string { return "pets" }

// Generation is 0 for base pets and max(parent generations)+1 for fusions,
// read from the newest history record.
func (p *Pet) Generation() int {
	if len(p.FusionHistory) == 0 {
		return 0
	}
	gen := 0
	for _, r := range p.FusionHistory {
		if r.Generation > gen {
			gen = r.Generation
		}
	}
	return gen
}

// FusionCount is the total number of fusions in the pet's ancestry.
func (p *Pet) FusionCount() int {
	return len(p.FusionHistory)
}
