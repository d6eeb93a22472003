package api

import (
	"net/http"

	"github.com/petforge/petforge/internal/constants"
	"github.com/petforge/petforge/internal/service"

	"github.com/gin-gonic/gin"
)

// ListEncounters returns the configured bosses and waves.
func (h *Handler) ListEncounters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"bosses": h.cfg.Bosses,
		"waves":  h.cfg.Waves,
	})
}

type StartEncounterRequest struct {
	EncounterKey     string          `json:"encounter_key"`
	TeamPetIDs       []uint          `json:"team_pet_ids"`
	StoneAssignments map[uint][]uint `json:"stone_assignments"`
}

// StartEncounter generates the enemy side from a configured boss or wave
// entry and starts the battle.
func (h *Handler) StartEncounter(c *gin.Context) {
	var req StartEncounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := service.StartEncounterBattle(h.repo, h.cfg, h.lib, service.StartEncounterRequest{
		OwnerEmail:       sessionEmail(c),
		EncounterKey:     req.EncounterKey,
		TeamPetIDs:       req.TeamPetIDs,
		StoneAssignments: req.StoneAssignments,
	})
	if err != nil {
		respondDomainError(c, err, constants.ErrFailedGenerateWave)
		return
	}
	out, _ := MarshalForContext(c, b)
	c.JSON(http.StatusCreated, out)
}
