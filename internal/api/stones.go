package api

import (
	"net/http"

	"github.com/petforge/petforge/internal/constants"
	"github.com/petforge/petforge/internal/game"

	"github.com/gin-gonic/gin"
)

// ListStones returns the authenticated player's stones.
func (h *Handler) ListStones(c *gin.Context) {
	stones, err := h.repo.GetStonesByOwner(sessionEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStones})
		return
	}
	out, err := MarshalForContext(c, stones)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStones})
		return
	}
	c.JSON(http.StatusOK, out)
}

type CreateStoneRequest struct {
	Type        game.Element          `json:"type"`
	Tier        game.StoneTier        `json:"tier"`
	StatBonuses map[game.StatKind]int `json:"stat_bonuses"`
	Power       int                   `json:"elemental_power"`
}

// CreateStone grants the authenticated player a new modifier stone.
func (h *Handler) CreateStone(c *gin.Context) {
	var req CreateStoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var conditions []string
	if !game.ValidElement(req.Type) || req.Type == game.ElementNone {
		conditions = append(conditions, "unknown stone element")
	}
	if !game.ValidStoneTier(req.Tier) {
		conditions = append(conditions, "stone tier must be between I and V")
	}
	if req.Power < 0 {
		conditions = append(conditions, "elemental power cannot be negative")
	}
	if len(conditions) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: conditions})
		return
	}

	s := &game.Stone{
		OwnerEmail:     sessionEmail(c),
		Type:           req.Type,
		Tier:           req.Tier,
		StatBonuses:    req.StatBonuses,
		ElementalPower: req.Power,
	}
	if err := h.repo.CreateStone(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStones})
		return
	}
	out, _ := MarshalForContext(c, s)
	c.JSON(http.StatusCreated, out)
}
