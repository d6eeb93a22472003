package service

import (
	"fmt"
	"time"

	"github.com/petforge/petforge/internal/combat"
	"github.com/petforge/petforge/internal/game"
)

// BattleRepo is the minimal repository interface required by the battle
// operations.
type BattleRepo interface {
	GetPetsByIDs(ids []uint) ([]game.Pet, error)
	GetStoneByID(id uint) (*game.Stone, error)
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	UpdateStatsOnBattleEnd(winnerEmail, loserEmail string) error
}

type StartBattleRequest struct {
	OwnerEmail  string
	Team1PetIDs []uint
	Team2PetIDs []uint
	// StoneAssignments maps a team1 pet id to the stones it carries into
	// the battle. Carried stones contribute domain effects but are not
	// consumed.
	StoneAssignments map[uint][]uint
	// Seed pins the battle seed; nil uses wall-clock time.
	Seed *int64
}

func fetchTeam(repo BattleRepo, ids []uint, ownerEmail string, conditions *[]string) []*game.Pet {
	if len(ids) == 0 {
		return nil
	}
	pets, err := repo.GetPetsByIDs(ids)
	if err != nil || len(pets) != len(ids) {
		*conditions = append(*conditions, "one or more team pets do not exist")
		return nil
	}
	byID := make(map[uint]*game.Pet, len(pets))
	for i := range pets {
		byID[pets[i].ID] = &pets[i]
	}
	// Preserve the requested ordering; it decides front and back rows.
	out := make([]*game.Pet, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			*conditions = append(*conditions, fmt.Sprintf("pet %d does not exist", id))
			continue
		}
		if ownerEmail != "" && p.OwnerEmail != ownerEmail {
			*conditions = append(*conditions, fmt.Sprintf("pet %d does not belong to the player", id))
		}
		out = append(out, p)
	}
	return out
}

func fetchCarriedStones(repo BattleRepo, assignments map[uint][]uint, ownerEmail string, conditions *[]string) map[uint][]game.Stone {
	if len(assignments) == 0 {
		return nil
	}
	out := make(map[uint][]game.Stone, len(assignments))
	for petID, stoneIDs := range assignments {
		for _, sid := range stoneIDs {
			s, err := repo.GetStoneByID(sid)
			if err != nil {
				*conditions = append(*conditions, fmt.Sprintf("stone %d does not exist", sid))
				continue
			}
			if ownerEmail != "" && s.OwnerEmail != ownerEmail {
				*conditions = append(*conditions, fmt.Sprintf("stone %d does not belong to the player", sid))
				continue
			}
			out[petID] = append(out[petID], *s)
		}
	}
	return out
}

// StartBattle snapshots both teams, fixes the turn order and persists the
// new battle. Both sides come from the pet collection; dungeon encounters go
// through StartEncounterBattle instead.
func StartBattle(repo BattleRepo, req StartBattleRequest) (*game.Battle, error) {
	var conditions []string
	team1 := fetchTeam(repo, req.Team1PetIDs, req.OwnerEmail, &conditions)
	team2 := fetchTeam(repo, req.Team2PetIDs, "", &conditions)
	stones := fetchCarriedStones(repo, req.StoneAssignments, req.OwnerEmail, &conditions)
	if len(conditions) > 0 {
		return nil, &game.ValidationError{Conditions: conditions}
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	b, err := combat.NewBattle(team1, team2, stones, seed)
	if err != nil {
		return nil, err
	}
	b.OwnerEmail = req.OwnerEmail
	if err := repo.CreateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ExecuteBattleTurn advances a battle by exactly one combatant action and
// persists the result. The per-turn RNG is re-derived from the stored seed
// and log length, so a reloaded battle continues exactly as it would have.
// Returns the updated battle and whether an action was actually taken (a
// completed battle is a no-op).
func ExecuteBattleTurn(repo BattleRepo, battleID uint) (*game.Battle, bool, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil {
		return nil, false, err
	}
	if b.IsComplete {
		return b, false, nil
	}

	wasComplete := b.IsComplete
	acted := combat.ExecuteTurn(b, combat.TurnSource(b))
	if err := repo.UpdateBattle(b); err != nil {
		return nil, false, err
	}

	if b.IsComplete && !wasComplete {
		winner, loser := "", b.OwnerEmail
		if b.Winner == game.WinnerTeam1 {
			winner, loser = b.OwnerEmail, ""
		}
		if err := repo.UpdateStatsOnBattleEnd(winner, loser); err != nil {
			return nil, false, err
		}
	}
	return b, acted, nil
}

// GetBattle loads a battle for inspection or replay. The stored seed plus
// the append-only log is everything a client needs to re-play the fight
// action by action.
func GetBattle(repo BattleRepo, battleID uint) (*game.Battle, error) {
	return repo.GetBattleByID(battleID)
}
