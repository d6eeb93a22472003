package api

import (
	"net/http"
	"strconv"

	"github.com/petforge/petforge/internal/constants"
	"github.com/petforge/petforge/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateBattleRequest struct {
	Team1PetIDs []uint `json:"team1_pet_ids"`
	Team2PetIDs []uint `json:"team2_pet_ids"`
	// StoneAssignments maps a team1 pet id to the stone ids it carries.
	StoneAssignments map[uint][]uint `json:"stone_assignments"`
}

func battleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("battleID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return 0, false
	}
	return uint(id), true
}

// CreateBattle starts a battle between two teams from the collection.
func (h *Handler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := service.StartBattle(h.repo, service.StartBattleRequest{
		OwnerEmail:       sessionEmail(c),
		Team1PetIDs:      req.Team1PetIDs,
		Team2PetIDs:      req.Team2PetIDs,
		StoneAssignments: req.StoneAssignments,
	})
	if err != nil {
		respondDomainError(c, err, constants.ErrFailedCreateBattle)
		return
	}
	out, _ := MarshalForContext(c, b)
	c.JSON(http.StatusCreated, out)
}

// ListBattles returns the authenticated player's battles, newest first.
func (h *Handler) ListBattles(c *gin.Context) {
	battles, err := h.repo.GetBattlesByOwner(sessionEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out, _ := MarshalForContext(c, battles)
	c.JSON(http.StatusOK, out)
}

// GetBattle returns the current state of one battle.
func (h *Handler) GetBattle(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	b, err := service.GetBattle(h.repo, id)
	if err != nil {
		respondDomainError(c, err, constants.ErrFailedFetchBattles)
		return
	}
	out, _ := MarshalForContext(c, b)
	c.JSON(http.StatusOK, out)
}

// ExecuteTurn advances a battle by exactly one combatant action.
func (h *Handler) ExecuteTurn(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	b, acted, err := service.ExecuteBattleTurn(h.repo, id)
	if err != nil {
		respondDomainError(c, err, constants.ErrFailedExecuteTurn)
		return
	}
	out, _ := MarshalForContext(c, b)
	c.JSON(http.StatusOK, gin.H{"battle": out, "acted": acted})
}

// GetReplay returns the battle's seed and append-only action log, which
// together fully determine the fight.
func (h *Handler) GetReplay(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	b, err := service.GetBattle(h.repo, id)
	if err != nil {
		respondDomainError(c, err, constants.ErrFailedFetchBattles)
		return
	}
	out, _ := MarshalIntoSnakeTimestamps(gin.H{
		"battle_id":   b.ID,
		"seed":        b.Seed,
		"turn_order":  b.TurnOrder,
		"log":         b.Log,
		"is_complete": b.IsComplete,
		"winner":      b.Winner,
	})
	c.JSON(http.StatusOK, out)
}
