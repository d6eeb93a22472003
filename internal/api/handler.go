package api

import (
	"errors"
	"net/http"

	"github.com/petforge/petforge/internal/config"
	"github.com/petforge/petforge/internal/constants"
	"github.com/petforge/petforge/internal/fusion"
	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler groups all game-related HTTP handlers.
type Handler struct {
	repo  storage.Repository
	cfg   *config.LoadedConfig
	lib   *fusion.Library
	table *game.InteractionTable
}

// NewHandler creates a Handler with the given repository and loaded content
// tables.
func NewHandler(repo storage.Repository, cfg *config.LoadedConfig) *Handler {
	return &Handler{
		repo:  repo,
		cfg:   cfg,
		lib:   fusion.NewLibrary(cfg.AbilityTemplates),
		table: game.NewInteractionTable(cfg.Interactions),
	}
}

// sessionEmail returns the authenticated user's email, or "" when absent.
func sessionEmail(c *gin.Context) string {
	v, ok := c.Get("userEmail")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// respondDomainError maps the domain error kinds onto HTTP statuses. The
// fallback message is used for everything unrecognized.
func respondDomainError(c *gin.Context, err error, fallback string) {
	var nf *game.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: nf.Error()})
		return
	}
	var verr *game.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: verr.Conditions})
		return
	}
	var conflict *game.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: conflict.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
}
