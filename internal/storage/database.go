package storage

import (
	"time"

	"github.com/petforge/petforge/internal/config"
	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string, cfg *config.LoadedConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep the schema updated via AutoMigrate; stat and ability
	// definitions always come from the config file, not the DB.
	err = db.AutoMigrate(&game.Pet{}, &game.Stone{}, &game.Battle{}, &game.User{}, &game.GeneratedName{})
	if err != nil {
		return nil, err
	}

	seedStarterPets(db, cfg)
	return db, nil
}

// seedStarterPets inserts one pet per starter template when the pets table
// is empty. The starters are unowned until a player claims them on first
// login. Failures are logged but do not abort startup.
func seedStarterPets(db *gorm.DB, cfg *config.LoadedConfig) {
	var count int64
	db.Model(&game.Pet{}).Count(&count)
	if count > 0 {
		return
	}
	pets := make([]game.Pet, 0, len(cfg.PetTemplates))
	for _, t := range cfg.PetTemplates {
		if !t.Starter {
			continue
		}
		stats := t.Stats
		stats.HP = stats.MaxHP
		p := game.Pet{
			TemplateKey: t.Key,
			Name:        t.Name,
			Family:      t.Family,
			Element:     t.Element,
			Rarity:      t.Rarity,
			Stats:       stats,
			Appearance:  game.Appearance{VisualTags: append([]string(nil), t.VisualTags...)},
			CollectedAt: time.Now().UTC(),
		}
		for _, id := range t.AbilityIDs {
			a, ok := cfg.AbilityByID(id)
			if !ok {
				continue
			}
			switch a.Type {
			case game.AbilityPassive:
				p.PassiveAbilities = append(p.PassiveAbilities, a)
			case game.AbilityActive:
				p.ActiveAbilities = append(p.ActiveAbilities, a)
			case game.AbilityUltimate:
				u := a
				p.UltimateAbility = &u
			}
		}
		pets = append(pets, p)
	}
	if len(pets) == 0 {
		return
	}
	if err := db.Create(&pets).Error; err != nil {
		logging.Error("failed to seed starter pets", err, nil)
		return
	}
	logging.Info("starter pets seeded", logging.Fields{"count": len(pets)})
}
