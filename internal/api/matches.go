package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/game"
	"github.com/SakutaTHZ/ProjectT/internal/service"
)

type recordMatchRequest struct {
	RoomID          string `json:"room_id"`
	Mode            string `json:"mode" binding:"required"`
	HostName        string `json:"host_name" binding:"required"`
	GuestName       string `json:"guest_name" binding:"required"`
	WinnerName      string `json:"winner_name" binding:"required"`
	Turns           int    `json:"turns"`
	DurationSeconds int    `json:"duration_seconds"`
	Concession      bool   `json:"concession"`
}

// RecordMatch persists a finished match reported by the winning client.
func (h *GameHandler) RecordMatch(c *gin.Context) {
	var req recordMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	record := &game.MatchRecord{
		RoomID:          req.RoomID,
		Mode:            req.Mode,
		HostName:        req.HostName,
		GuestName:       req.GuestName,
		WinnerName:      req.WinnerName,
		Turns:           req.Turns,
		DurationSeconds: req.DurationSeconds,
		Concession:      req.Concession,
	}
	if err := service.RecordResult(h.repo, record); err != nil {
		if errors.Is(err, service.ErrWinnerRequired) || errors.Is(err, service.ErrWinnerNotParticipant) {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRecordMatch})
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListMatches returns the most recent finished matches.
func (h *GameHandler) ListMatches(c *gin.Context) {
	matches, err := h.repo.RecentMatches(parseLimit(c, 20, 100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	c.JSON(http.StatusOK, matches)
}

// ListLeaderboard returns the top players by wins.
func (h *GameHandler) ListLeaderboard(c *gin.Context) {
	users, err := h.repo.GetTopPlayers(parseLimit(c, 10, 100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, users)
}

// parseLimit reads the optional ?limit=N query parameter.
func parseLimit(c *gin.Context, def, max int) int {
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= max {
			return n
		}
	}
	return def
}
