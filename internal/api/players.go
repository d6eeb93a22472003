package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/petforge/petforge/internal/constants"

	"github.com/gin-gonic/gin"
)

// GetPlayerStats returns the authenticated player's aggregate counters.
func (h *Handler) GetPlayerStats(c *gin.Context) {
	u, err := h.repo.GetStatsByEmail(sessionEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, _ := MarshalForContext(c, u)
	c.JSON(http.StatusOK, out)
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// UpdatePlayerProfile updates the player's display name.
func (h *Handler) UpdatePlayerProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	u, err := h.repo.GetStatsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	u.PlayerName = strings.TrimSpace(req.Name)
	if err := h.repo.SaveUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, _ := MarshalForContext(c, u)
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top players by battles won.
func (h *Handler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	users, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBoard})
		return
	}
	out, _ := MarshalForContext(c, users)
	c.JSON(http.StatusOK, out)
}
