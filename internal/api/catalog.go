package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCards returns the card catalog clients build decks from.
func (h *GameHandler) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Cards)
}

// ListCharacters returns the selectable squad members.
func (h *GameHandler) ListCharacters(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Characters)
}
