package storage

import (
	"strings"

	"github.com/petforge/petforge/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreatePet(p *game.Pet) error {
	return r.db.Create(p).Error
}

func (r *sqliteRepository) GetPetByID(id uint) (*game.Pet, error) {
	var p game.Pet
	if err := r.db.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &game.NotFoundError{Kind: "pet", ID: id}
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) GetPetsByOwner(email string) ([]game.Pet, error) {
	var pets []game.Pet
	if err := r.db.Where("owner_email = ?", email).Order("collected_at desc").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *sqliteRepository) GetPetsByIDs(ids []uint) ([]game.Pet, error) {
	var pets []game.Pet
	if err := r.db.Where("id IN ?", ids).Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *sqliteRepository) GetAllPets() ([]game.Pet, error) {
	var pets []game.Pet
	if err := r.db.Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *sqliteRepository) PetExists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&game.Pet{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *sqliteRepository) SavePet(p *game.Pet) error {
	return r.db.Save(p).Error
}

func (r *sqliteRepository) DeletePet(id uint) error {
	return r.db.Delete(&game.Pet{}, id).Error
}

func (r *sqliteRepository) PetNameExists(name string) (bool, error) {
	var count int64
	if err := r.db.Model(&game.Pet{}).Where("lower(name) = ?", strings.ToLower(name)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *sqliteRepository) CreateStone(s *game.Stone) error {
	return r.db.Create(s).Error
}

func (r *sqliteRepository) GetStoneByID(id uint) (*game.Stone, error) {
	var s game.Stone
	if err := r.db.First(&s, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &game.NotFoundError{Kind: "stone", ID: id}
		}
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) GetStonesByOwner(email string) ([]game.Stone, error) {
	var stones []game.Stone
	if err := r.db.Where("owner_email = ?", email).Find(&stones).Error; err != nil {
		return nil, err
	}
	return stones, nil
}

func (r *sqliteRepository) SaveStone(s *game.Stone) error {
	return r.db.Save(s).Error
}

func (r *sqliteRepository) DeleteStone(id uint) error {
	return r.db.Delete(&game.Stone{}, id).Error
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.First(&b, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &game.NotFoundError{Kind: "battle", ID: id}
		}
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) GetBattlesByOwner(email string) ([]game.Battle, error) {
	var battles []game.Battle
	if err := r.db.Where("owner_email = ?", email).Order("created_at desc").Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) GetGeneratedNameByFusionKey(key string) (*game.GeneratedName, error) {
	var g game.GeneratedName
	if err := r.db.Where("fusion_key = ?", key).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) SaveGeneratedName(key, name, lore string) error {
	g := game.GeneratedName{FusionKey: key, GeneratedName: name, GeneratedLore: lore}
	// Upsert keyed by fusion_key so concurrent generations of the same
	// inputs settle on one cached row.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fusion_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"generated_name", "generated_lore"}),
	}).Create(&g).Error
}

func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
		} else {
			return err
		}
	}
	u.PlayerName = name
	u.PlayerUUID = uuid
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

func (r *sqliteRepository) RecordFusion(email string, corrupted bool) error {
	if email == "" {
		return nil
	}
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: email}
		} else {
			return err
		}
	}
	u.FusionsPerformed++
	if corrupted {
		u.CorruptedFusions++
	}
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(winnerEmail, loserEmail string) error {
	credit := func(email string, won bool) error {
		if email == "" {
			return nil
		}
		var u game.User
		if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				u = game.User{Email: email}
			} else {
				return err
			}
		}
		u.BattlesPlayed++
		if won {
			u.BattlesWon++
		}
		return r.db.Save(&u).Error
	}
	if err := credit(winnerEmail, true); err != nil {
		return err
	}
	return credit(loserEmail, false)
}

// GetTopPlayers returns top N players ordered by battles won desc, then
// fusions performed desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("battles_won DESC").
		Order("fusions_performed DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
