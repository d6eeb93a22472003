package api

import (
	"net/http"

	"github.com/petforge/petforge/internal/constants"
	"github.com/petforge/petforge/internal/fusion"
	"github.com/petforge/petforge/internal/namegen"
	"github.com/petforge/petforge/internal/service"

	"github.com/gin-gonic/gin"
)

type FusionRequest struct {
	Parent1ID uint   `json:"parent1_id"`
	Parent2ID uint   `json:"parent2_id"`
	Stone1ID  uint   `json:"stone1_id"`
	Stone2ID  uint   `json:"stone2_id"`
	Intent    string `json:"intent"`
	Enhance   bool   `json:"enhance"`
}

// PreviewFusion reports the reachable outcome envelope of a fusion without
// consuming anything.
func (h *Handler) PreviewFusion(c *gin.Context) {
	var req FusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := service.PreviewFusion(h.repo, h.table, service.PreviewFusionRequest{
		OwnerEmail: sessionEmail(c),
		Parent1ID:  req.Parent1ID,
		Parent2ID:  req.Parent2ID,
		Stone1ID:   req.Stone1ID,
		Stone2ID:   req.Stone2ID,
		Intent:     fusion.Intent(req.Intent),
	})
	if err != nil {
		respondDomainError(c, err, constants.ErrFailedPerformFusion)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PerformFusion consumes two pets and two stones and creates the fusion
// product.
func (h *Handler) PerformFusion(c *gin.Context) {
	var req FusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	enhance := func(parentNames []string, stoneTiers []int, rarity string) (string, string, error) {
		e, err := namegen.GetOrCreateEnhanced(h.repo, parentNames, stoneTiers, rarity)
		if err != nil {
			return "", "", err
		}
		return e.Name, e.Lore, nil
	}

	res, err := service.PerformFusion(h.repo, h.lib, h.table, enhance, service.PerformFusionRequest{
		OwnerEmail: sessionEmail(c),
		Parent1ID:  req.Parent1ID,
		Parent2ID:  req.Parent2ID,
		Stone1ID:   req.Stone1ID,
		Stone2ID:   req.Stone2ID,
		Intent:     fusion.Intent(req.Intent),
		Enhance:    req.Enhance,
	})
	if err != nil {
		respondDomainError(c, err, constants.ErrFailedPerformFusion)
		return
	}
	out, err := MarshalForContext(c, res)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedPerformFusion})
		return
	}
	c.JSON(http.StatusCreated, out)
}
