package api

import (
	"net/http"
	"strconv"

	"github.com/petforge/petforge/internal/constants"

	"github.com/gin-gonic/gin"
)

// ListPets returns the authenticated player's collection, newest first.
func (h *Handler) ListPets(c *gin.Context) {
	email := sessionEmail(c)
	pets, err := h.repo.GetPetsByOwner(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPets})
		return
	}
	out, err := MarshalForContext(c, pets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPets})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetPet returns one pet, including its full fusion history.
func (h *Handler) GetPet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("petID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPetID})
		return
	}
	p, err := h.repo.GetPetByID(uint(id))
	if err != nil {
		respondDomainError(c, err, constants.ErrFailedFetchPets)
		return
	}
	if p.OwnerEmail != sessionEmail(c) {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotPetOwner})
		return
	}
	out, err := MarshalForContext(c, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPets})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListStarters returns the unowned starter pets available to claim.
func (h *Handler) ListStarters(c *gin.Context) {
	pets, err := h.repo.GetAllPets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPets})
		return
	}
	starters := pets[:0:0]
	for _, p := range pets {
		if p.OwnerEmail != "" {
			continue
		}
		if tpl, ok := h.cfg.TemplateByKey(p.TemplateKey); ok && tpl.Starter {
			starters = append(starters, p)
		}
	}
	out, err := MarshalForContext(c, starters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPets})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ClaimStarter assigns an unowned starter pet to the authenticated player.
func (h *Handler) ClaimStarter(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("petID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPetID})
		return
	}
	p, err := h.repo.GetPetByID(uint(id))
	if err != nil {
		respondDomainError(c, err, constants.ErrFailedFetchPets)
		return
	}
	if p.OwnerEmail != "" {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: "Pet is already owned"})
		return
	}
	tpl, ok := h.cfg.TemplateByKey(p.TemplateKey)
	if !ok || !tpl.Starter {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: "Pet is not a claimable starter"})
		return
	}
	p.OwnerEmail = sessionEmail(c)
	if err := h.repo.SavePet(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPets})
		return
	}
	out, _ := MarshalForContext(c, p)
	c.JSON(http.StatusOK, out)
}
