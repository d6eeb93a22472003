package service

import (
	"fmt"
	"time"

	"github.com/petforge/petforge/internal/combat"
	"github.com/petforge/petforge/internal/config"
	"github.com/petforge/petforge/internal/dungeon"
	"github.com/petforge/petforge/internal/fusion"
	"github.com/petforge/petforge/internal/game"
)

type StartEncounterRequest struct {
	OwnerEmail string
	// EncounterKey names a boss or wave entry from the config tables.
	EncounterKey     string
	TeamPetIDs       []uint
	StoneAssignments map[uint][]uint
	Seed             *int64
}

// StartEncounterBattle generates the enemy side from a configured boss or
// wave entry and starts a persisted battle against the player's team.
func StartEncounterBattle(repo BattleRepo, cfg *config.LoadedConfig, lib *fusion.Library, req StartEncounterRequest) (*game.Battle, error) {
	var conditions []string
	team1 := fetchTeam(repo, req.TeamPetIDs, req.OwnerEmail, &conditions)
	stones := fetchCarriedStones(repo, req.StoneAssignments, req.OwnerEmail, &conditions)
	if len(conditions) > 0 {
		return nil, &game.ValidationError{Conditions: conditions}
	}

	var team2 []*game.Pet
	if boss, ok := cfg.BossByKey(req.EncounterKey); ok {
		t, found := cfg.TemplateByKey(boss.TemplateKey)
		if !found {
			return nil, fmt.Errorf("boss %q references unknown template %q", boss.Key, boss.TemplateKey)
		}
		enemies, err := dungeon.GenerateBoss(t, lib, boss.Difficulty, len(team1))
		if err != nil {
			return nil, err
		}
		team2 = enemies
	} else if wave, ok := cfg.WaveByKey(req.EncounterKey); ok {
		templates := make([]game.PetTemplate, 0, len(wave.TemplateKeys))
		for _, tk := range wave.TemplateKeys {
			t, found := cfg.TemplateByKey(tk)
			if !found {
				return nil, fmt.Errorf("wave %q references unknown template %q", wave.Key, tk)
			}
			templates = append(templates, t)
		}
		enemies, err := dungeon.GenerateWave(templates, lib, wave.Difficulty, len(team1))
		if err != nil {
			return nil, err
		}
		team2 = enemies
	} else {
		return nil, &game.ValidationError{Conditions: []string{fmt.Sprintf("unknown encounter %q", req.EncounterKey)}}
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
	b.EncounterKey = req.EncounterKey
	if err := repo.CreateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}
