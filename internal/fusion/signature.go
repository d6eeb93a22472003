package fusion

import (
	"hash/fnv"
	"time"

	"github.com/petforge/petforge/internal/game"
)

// Intent is an optional player-chosen bias for naming and personality.
type Intent string

const (
	IntentNone      Intent = ""
	IntentDominance Intent = "dominance"
	IntentHarmony   Intent = "harmony"
	IntentChaos     Intent = "chaos"
	IntentSwiftness Intent = "swiftness"
)

// ValidIntent reports whether i is a known intent.
func ValidIntent(i Intent) bool {
	switch i {
	case IntentNone, IntentDominance, IntentHarmony, IntentChaos, IntentSwiftness:
		return true
	}
	return false
}

// ParentSnapshot captures the naming-relevant parts of a parent pet.
type ParentSnapshot struct {
	ID           uint         `json:"id"`
	Name         string       `json:"name"`
	Family       string       `json:"family"`
	Element      game.Element `json:"element"`
	Rarity       game.Rarity  `json:"rarity"`
	AbilityNames []string     `json:"ability_names"`
	VisualTags   []string     `json:"visual_tags"`
	FusionCount  int          `json:"fusion_count"`
}

// StoneSnapshot captures a consumed stone, including its corruption flag.
type StoneSnapshot struct {
	ID          uint           `json:"id"`
	Type        game.Element   `json:"type"`
	Tier        game.StoneTier `json:"tier"`
	IsCorrupted bool           `json:"is_corrupted"`
}

// Signature is the canonical, serializable description of one fusion
// request. It both drives name/ability generation and makes the operation
// replayable: the derived seed plus the snapshots fully determine the
// outcome.
type Signature struct {
	Parent1     ParentSnapshot             `json:"parent1"`
	Parent2     ParentSnapshot             `json:"parent2"`
	Stone1      StoneSnapshot              `json:"stone1"`
	Stone2      StoneSnapshot              `json:"stone2"`
	Interaction *game.ElementalInteraction `json:"interaction,omitempty"`
	Intent      Intent                     `json:"intent,omitempty"`
	Seed        int64                      `json:"seed"`
}

func snapshotParent(p *game.Pet) ParentSnapshot {
	names := make([]string, 0, len(p.ActiveAbilities)+len(p.PassiveAbilities))
	for _, a := range p.PassiveAbilities {
		names = append(names, a.Name)
	}
	for _, a := range p.ActiveAbilities {
		names = append(names, a.Name)
	}
	return ParentSnapshot{
		ID:           p.ID,
		Name:         p.Name,
		Family:       p.Family,
		Element:      p.Element,
		Rarity:       p.Rarity,
		AbilityNames: names,
		VisualTags:   append([]string(nil), p.Appearance.VisualTags...),
		FusionCount:  p.FusionCount(),
	}
}

func snapshotStone(s *game.Stone) StoneSnapshot {
	return StoneSnapshot{ID: s.ID, Type: s.Type, Tier: s.Tier, IsCorrupted: s.IsCorrupted}
}

// DeriveSeed hashes the parent and stone ids into a stable seed. When every
// id is zero (unsaved inputs, e.g. in tests) it falls back to wall-clock
// time so unsaved fusions still vary.
func DeriveSeed(p1ID, p2ID, s1ID, s2ID uint) int64 {
	if p1ID == 0 && p2ID == 0 && s1ID == 0 && s2ID == 0 {
		return time.Now().UnixNano()
	}
	h := fnv.New64a()
	for _, id := range []uint{p1ID, p2ID, s1ID, s2ID} {
		var buf [8]byte
		v := uint64(id)
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	return int64(h.Sum64())
}

// BuildSignature assembles the canonical fusion signature. A non-nil
// seedOverride pins the seed (replay); otherwise it is derived from the
// input ids.
func BuildSignature(p1, p2 *game.Pet, s1, s2 *game.Stone, intent Intent, table *game.InteractionTable, seedOverride *int64) Signature {
	sig := Signature{
		Parent1: snapshotParent(p1),
		Parent2: snapshotParent(p2),
		Stone1:  snapshotStone(s1),
		Stone2:  snapshotStone(s2),
		Intent:  intent,
	}
	if inter, ok := table.Lookup(p1.Element, p2.Element); ok {
		sig.Interaction = &inter
	}
	if seedOverride != nil {
		sig.Seed = *seedOverride
	} else {
		sig.Seed = DeriveSeed(p1.ID, p2.ID, s1.ID, s2.ID)
	}
	return sig
}

// PreferredElement is the element assembly filters ability templates by:
// the elemental interaction result when one was detected, otherwise the
// first parent's element, otherwise the second's.
func (s Signature) PreferredElement() game.Element {
	if s.Interaction != nil && s.Interaction.Result != game.ElementNone {
		return s.Interaction.Result
	}
	if s.Parent1.Element != game.ElementNone {
		return s.Parent1.Element
	}
	return s.Parent2.Element
}
