package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/service"
	"github.com/SakutaTHZ/ProjectT/internal/storage"
)

type createRoomRequest struct {
	PlayerName string `json:"player_name" binding:"required"`
}

type joinRoomRequest struct {
	PlayerName string `json:"player_name" binding:"required"`
}

// CreateRoom opens a new relay room for the host.
func (h *GameHandler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	room, err := service.CreateRoom(h.repo, req.PlayerName)
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateRoom})
		return
	}
	c.JSON(http.StatusCreated, room)
}

// ListRooms returns rooms currently waiting for a guest.
func (h *GameHandler) ListRooms(c *gin.Context) {
	rooms, err := h.repo.ListOpenRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRooms})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom returns one room by its public id.
func (h *GameHandler) GetRoom(c *gin.Context) {
	roomID := c.Param("roomID")
	room, err := h.repo.GetRoomByID(roomID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRooms})
		return
	}
	c.JSON(http.StatusOK, room)
}

// JoinRoom seats the caller as the room's guest.
func (h *GameHandler) JoinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	room, err := service.JoinRoom(h.repo, c.Param("roomID"), req.PlayerName)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, room)
	case errors.Is(err, service.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
	case errors.Is(err, service.ErrRoomNotOpen), errors.Is(err, service.ErrSelfJoin):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRoomFull})
	case errors.Is(err, service.ErrNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRooms})
	}
}
