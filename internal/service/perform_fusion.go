package service

import (
	"fmt"
	"time"

	"github.com/petforge/petforge/internal/fusion"
	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/rng"
)

// FusionRepo is the minimal repository interface required by the fusion
// operations. Using a small interface simplifies testing.
type FusionRepo interface {
	GetPetByID(id uint) (*game.Pet, error)
	GetStoneByID(id uint) (*game.Stone, error)
	PetExists(id uint) (bool, error)
	CreatePet(p *game.Pet) error
	CreateStone(s *game.Stone) error
	DeletePet(id uint) error
	DeleteStone(id uint) error
	PetNameExists(name string) (bool, error)
	GetAllPets() ([]game.Pet, error)
	RecordFusion(email string, corrupted bool) error
}

// EnhanceFunc asks an external provider for a better name and lore. A nil
// func or a returned error leaves the procedural name in place; fusion
// never fails because enhancement is unavailable.
type EnhanceFunc func(parentNames []string, stoneTiers []int, rarity string) (name, lore string, err error)

type PerformFusionRequest struct {
	OwnerEmail string
	Parent1ID  uint
	Parent2ID  uint
	Stone1ID   uint
	Stone2ID   uint
	Intent     fusion.Intent
	// Enhance requests AI name/lore enhancement for the product.
	Enhance bool
	// SeedOverride pins the fusion seed for replay; nil derives it from
	// the input ids.
	SeedOverride *int64
}

type PerformFusionResult struct {
	Pet *game.Pet `json:"pet"`
	// CorruptedStones are the persisted corrupted variants produced by the
	// item corruption rolls, if any.
	CorruptedStones []game.Stone           `json:"corrupted_stones,omitempty"`
	Signature       fusion.Signature       `json:"signature"`
	Uniqueness      fusion.UniquenessScore `json:"uniqueness"`
	// NameSource is "procedural", "openai" or "cache".
	NameSource string `json:"name_source"`
}

// nameRepo adapts the repository to the assembly step's name lookup.
type nameRepo struct{ r FusionRepo }

func (n nameRepo) NameExists(name string) (bool, error) { return n.r.PetNameExists(name) }

type fusionInputs struct {
	p1, p2 *game.Pet
	s1, s2 *game.Stone
}

// fetchAndValidate loads the four input entities and collects every failed
// validation condition. A missing entity surfaces as a NotFoundError before
// any condition check; everything else is reported together so the caller
// sees the full list in one response.
func fetchAndValidate(repo FusionRepo, req PerformFusionRequest) (fusionInputs, error) {
	var in fusionInputs
	var err error

	if in.p1, err = repo.GetPetByID(req.Parent1ID); err != nil {
		return in, err
	}
	if in.p2, err = repo.GetPetByID(req.Parent2ID); err != nil {
		return in, err
	}
	if in.s1, err = repo.GetStoneByID(req.Stone1ID); err != nil {
		return in, err
	}
	if in.s2, err = repo.GetStoneByID(req.Stone2ID); err != nil {
		return in, err
	}

	var conditions []string
	if req.Parent1ID == req.Parent2ID {
		conditions = append(conditions, "a pet cannot be fused with itself")
	}
	if req.Stone1ID == req.Stone2ID {
		conditions = append(conditions, "the same stone cannot be used twice")
	}
	if !fusion.ValidIntent(req.Intent) {
		conditions = append(conditions, fmt.Sprintf("unknown fusion intent %q", req.Intent))
	}
	if req.OwnerEmail != "" {
		if in.p1.OwnerEmail != req.OwnerEmail {
			conditions = append(conditions, fmt.Sprintf("pet %d does not belong to the player", req.Parent1ID))
		}
		if in.p2.OwnerEmail != req.OwnerEmail && req.Parent1ID != req.Parent2ID {
			conditions = append(conditions, fmt.Sprintf("pet %d does not belong to the player", req.Parent2ID))
		}
		if in.s1.OwnerEmail != req.OwnerEmail {
			conditions = append(conditions, fmt.Sprintf("stone %d does not belong to the player", req.Stone1ID))
		}
		if in.s2.OwnerEmail != req.OwnerEmail && req.Stone1ID != req.Stone2ID {
			conditions = append(conditions, fmt.Sprintf("stone %d does not belong to the player", req.Stone2ID))
		}
	}
	for _, p := range []*game.Pet{in.p1, in.p2} {
		if len(p.ActiveAbilities) == 0 {
			conditions = append(conditions, fmt.Sprintf("pet %d has no active ability and cannot fuse", p.ID))
		}
	}
	if len(conditions) > 0 {
		return in, &game.ValidationError{Conditions: conditions}
	}
	return in, nil
}

// PerformFusion runs the full fusion pipeline: validate, roll corruption,
// compute stats and rarity, assemble the named result in memory, persist the
// product, then consume the inputs. The product is created before any input
// is deleted so a crash mid-operation can duplicate value but never destroy
// it.
func PerformFusion(repo FusionRepo, lib *fusion.Library, table *game.InteractionTable, enhance EnhanceFunc, req PerformFusionRequest) (*PerformFusionResult, error) {
	in, err := fetchAndValidate(repo, req)
	if err != nil {
		return nil, err
	}
	p1, p2, s1, s2 := in.p1, in.p2, in.s1, in.s2

	sig := fusion.BuildSignature(p1, p2, s1, s2, req.Intent, table, req.SeedOverride)
	r := rng.New(sig.Seed)
	fc := p1.FusionCount() + p2.FusionCount()

	// Fixed draw order: stone corruption rolls, four stat jitters, the
	// upgrade roll, the fusion corruption roll, then assembly picks. The
	// signature is patched so the fusion corruption odds see the stones'
	// post-roll state.
	eff1, corrupted1 := fusion.MaybeCorruptStone(s1, fc, r)
	eff2, corrupted2 := fusion.MaybeCorruptStone(s2, fc, r)
	sig.Stone1.IsCorrupted = sig.Stone1.IsCorrupted || corrupted1
	sig.Stone2.IsCorrupted = sig.Stone2.IsCorrupted || corrupted2

	stats := fusion.ComputeStats(p1, p2, eff1, eff2, r)
	fusionCorrupted := fusion.FusionCorrupted(sig, r)
	assembled := fusion.AssembleResult(sig, stats.Rarity.FinalRarity, fusionCorrupted, lib, nameRepo{repo}, r)

	// Contract re-check before anything is persisted. The layered assembly
	// fallbacks make this unreachable in practice.
	if assembled.Name == "" || len(assembled.Actives) == 0 {
		return nil, &game.GenerationFailureError{Reason: "assembled result has no name or no active ability"}
	}

	nameSource := "procedural"
	if req.Enhance && enhance != nil {
		tiers := []int{int(s1.Tier), int(s2.Tier)}
		name, lore, enhErr := enhance([]string{p1.Name, p2.Name}, tiers, stats.Rarity.FinalRarity.String())
		if enhErr == nil && name != "" {
			// An enhanced name that collides with an existing pet keeps
			// the procedural one.
			if exists, lookErr := repo.PetNameExists(name); lookErr == nil && !exists {
				assembled.Name = name
				if lore != "" {
					assembled.Lore = lore
				}
				nameSource = "openai"
			}
		}
	}

	mutations := 0
	for _, hit := range []bool{corrupted1, corrupted2, fusionCorrupted} {
		if hit {
			mutations++
		}
	}
	gen := p1.Generation()
	if g2 := p2.Generation(); g2 > gen {
		gen = g2
	}
	record := game.FusionRecord{
		Generation:     gen + 1,
		ParentIDs:      [2]uint{p1.ID, p2.ID},
		ParentFamilies: [2]string{p1.Family, p2.Family},
		StoneIDs:       [2]uint{s1.ID, s2.ID},
		FusionSeed:     sig.Seed,
		MutationCount:  mutations,
		Timestamp:      time.Now().UTC(),
	}
	history := make([]game.FusionRecord, 0, len(p1.FusionHistory)+len(p2.FusionHistory)+1)
	history = append(history, p1.FusionHistory...)
	history = append(history, p2.FusionHistory...)
	history = append(history, record)

	family := p1.Family
	if p2.Family != p1.Family {
		family = p1.Family + "-" + p2.Family
	}
	product := &game.Pet{
		OwnerEmail:       req.OwnerEmail,
		Name:             assembled.Name,
		Family:           family,
		Rarity:           stats.Rarity.FinalRarity,
		Element:          sig.PreferredElement(),
		Stats:            stats.FinalStats,
		PassiveAbilities: assembled.Passives,
		ActiveAbilities:  assembled.Actives,
		UltimateAbility:  assembled.Ultimate,
		FusionHistory:    history,
		Appearance:       game.Appearance{VisualTags: assembled.VisualTags},
		CollectedAt:      time.Now().UTC(),
		IsCorrupted:      fusionCorrupted,
		Lore:             assembled.Lore,
	}

	// Persist the product and any corrupted stone variants first.
	if err := repo.CreatePet(product); err != nil {
		return nil, err
	}
	var variants []game.Stone
	for _, pair := range []struct {
		stone *game.Stone
		hit   bool
	}{{eff1, corrupted1}, {eff2, corrupted2}} {
		if !pair.hit {
			continue
		}
		if err := repo.CreateStone(pair.stone); err != nil {
			return nil, err
		}
		variants = append(variants, *pair.stone)
	}

	// Re-check the parents right before consuming them. If another request
	// already destroyed one, undo the persisted product and report the
	// conflict instead of double-spending the inputs.
	for _, id := range []uint{p1.ID, p2.ID} {
		ok, err := repo.PetExists(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			_ = repo.DeletePet(product.ID)
			for _, v := range variants {
				_ = repo.DeleteStone(v.ID)
			}
			return nil, &game.ConflictError{Kind: "pet", ID: id}
		}
	}

	for _, id := range []uint{p1.ID, p2.ID} {
		if err := repo.DeletePet(id); err != nil {
			return nil, err
		}
	}
	for _, id := range []uint{s1.ID, s2.ID} {
		if err := repo.DeleteStone(id); err != nil {
			return nil, err
		}
	}

	if err := repo.RecordFusion(req.OwnerEmail, fusionCorrupted || corrupted1 || corrupted2); err != nil {
		return nil, err
	}

	// Uniqueness is advisory; an unavailable population just yields a
	// population-free score.
	population, err := repo.GetAllPets()
	if err != nil {
		population = nil
	}
	score := fusion.ScoreUniqueness(product, p1, p2, eff1, eff2, population)

	return &PerformFusionResult{
		Pet:             product,
		CorruptedStones: variants,
		Signature:       sig,
		Uniqueness:      score,
		NameSource:      nameSource,
	}, nil
}
