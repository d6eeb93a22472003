package service

import (
	"github.com/petforge/petforge/internal/fusion"
	"github.com/petforge/petforge/internal/game"
)

type PreviewFusionRequest struct {
	OwnerEmail string
	Parent1ID  uint
	Parent2ID  uint
	Stone1ID   uint
	Stone2ID   uint
	Intent     fusion.Intent
}

// PreviewFusionResult reports everything a player can know about a fusion
// before committing to it: the stat envelope, the rarity odds and the
// corruption risks. No concrete name or ability set is shown because those
// depend on rolls the preview must not consume.
type PreviewFusionResult struct {
	Stats                  fusion.StatsRange          `json:"stats"`
	PreferredElement       game.Element               `json:"preferred_element"`
	Interaction            *game.ElementalInteraction `json:"interaction,omitempty"`
	Stone1CorruptionChance float64                    `json:"stone1_corruption_chance"`
	Stone2CorruptionChance float64                    `json:"stone2_corruption_chance"`
	FusionCorruptionChance float64                    `json:"fusion_corruption_chance"`
	PassiveSlots           int                        `json:"passive_slots"`
	ActiveSlots            int                        `json:"active_slots"`
	UltimateSlot           bool                       `json:"ultimate_slot"`
}

// PreviewFusion validates the same inputs as PerformFusion and reports the
// reachable outcome envelope. It consumes no randomness and persists
// nothing, so previewing never changes what the later fusion produces.
func PreviewFusion(repo FusionRepo, table *game.InteractionTable, req PreviewFusionRequest) (*PreviewFusionResult, error) {
	in, err := fetchAndValidate(repo, PerformFusionRequest{
		OwnerEmail: req.OwnerEmail,
		Parent1ID:  req.Parent1ID,
		Parent2ID:  req.Parent2ID,
		Stone1ID:   req.Stone1ID,
		Stone2ID:   req.Stone2ID,
		Intent:     req.Intent,
	})
	if err != nil {
		return nil, err
	}
	p1, p2, s1, s2 := in.p1, in.p2, in.s1, in.s2

	sig := fusion.BuildSignature(p1, p2, s1, s2, req.Intent, table, nil)
	fc := p1.FusionCount() + p2.FusionCount()

	// Slot counts depend on the final rarity, which is not known before the
	// upgrade roll; show the slots of the guaranteed minimum.
	stats := fusion.PreviewStats(p1, p2, s1, s2)
	passives, actives, ultimate := fusion.Slots(stats.Rarity.MinRarity)

	return &PreviewFusionResult{
		Stats:                  stats,
		PreferredElement:       sig.PreferredElement(),
		Interaction:            sig.Interaction,
		Stone1CorruptionChance: fusion.ItemCorruptionChance(s1.Tier, fc),
		Stone2CorruptionChance: fusion.ItemCorruptionChance(s2.Tier, fc),
		FusionCorruptionChance: fusion.FusionCorruptionChance(sig),
		PassiveSlots:           passives,
		ActiveSlots:            actives,
		UltimateSlot:           ultimate,
	}, nil
}
