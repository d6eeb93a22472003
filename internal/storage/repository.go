package storage

import (
	"github.com/petforge/petforge/internal/game"
)

type Repository interface {
	// Pets
	CreatePet(p *game.Pet) error
	GetPetByID(id uint) (*game.Pet, error)
	GetPetsByOwner(email string) ([]game.Pet, error)
	GetPetsByIDs(ids []uint) ([]game.Pet, error)
	// GetAllPets returns the full collection. Used by the uniqueness
	// scorer to compare a fusion product against the live population.
	GetAllPets() ([]game.Pet, error)
	PetExists(id uint) (bool, error)
	SavePet(p *game.Pet) error
	DeletePet(id uint) error
	// PetNameExists reports whether any pet already carries the given
	// name (case-insensitive).
	PetNameExists(name string) (bool, error)

	// Stones
	CreateStone(s *game.Stone) error
	GetStoneByID(id uint) (*game.Stone, error)
	GetStonesByOwner(email string) ([]game.Stone, error)
	SaveStone(s *game.Stone) error
	DeleteStone(id uint) error

	// Battles
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	GetBattlesByOwner(email string) ([]game.Battle, error)

	// Generated name cache (lookup by canonical fusion key,
	// e.g. key = "ember_fox_tide_wolf_t2_t3")
	GetGeneratedNameByFusionKey(key string) (*game.GeneratedName, error)
	SaveGeneratedName(key, name, lore string) error

	// Player profiles
	UpsertUser(email, uuid, name string) error
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
	// RecordFusion bumps the owner's fusion counters after a completed
	// fusion.
	RecordFusion(email string, corrupted bool) error
	// UpdateStatsOnBattleEnd credits both sides with a played battle and
	// the winner with a win. Either email may be empty (AI side).
	UpdateStatsOnBattleEnd(winnerEmail, loserEmail string) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)
}
