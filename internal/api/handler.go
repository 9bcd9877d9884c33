package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/game"
	"github.com/SakutaTHZ/ProjectT/internal/relay"
	"github.com/SakutaTHZ/ProjectT/internal/storage"
	"github.com/SakutaTHZ/ProjectT/internal/version"
)

// GameHandler bundles the dependencies of the HTTP surface: the repository
// for rooms and history, the card catalog and the websocket relay hub.
type GameHandler struct {
	repo    storage.Repository
	catalog *game.Catalog
	hub     *relay.Hub
}

func NewGameHandler(repo storage.Repository, catalog *game.Catalog, hub *relay.Hub) *GameHandler {
	return &GameHandler{repo: repo, catalog: catalog, hub: hub}
}

// NewRouter wires every route of the backend.
func NewRouter(h *GameHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET(constants.RouteVersion, Version)
	if h.hub != nil {
		router.GET(constants.RouteWS, h.hub.Handle)
	}

	apiGroup := router.Group(constants.RouteAPIPrefix)
	{
		apiGroup.GET(constants.RouteCards, h.ListCards)
		apiGroup.GET(constants.RouteCharacters, h.ListCharacters)
		apiGroup.GET(constants.RouteRooms, h.ListRooms)
		apiGroup.POST(constants.RouteRooms, h.CreateRoom)
		apiGroup.GET(constants.RouteRoomByID, h.GetRoom)
		apiGroup.POST(constants.RouteRoomByID+"/join", h.JoinRoom)
		apiGroup.GET(constants.RouteMatches, h.ListMatches)
		apiGroup.POST(constants.RouteMatches, h.RecordMatch)
		apiGroup.GET(constants.RouteLeaderboard, h.ListLeaderboard)
	}
	return router
}

// Version returns build metadata injected at build time.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}
