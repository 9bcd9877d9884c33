package main

import (
	"github.com/SakutaTHZ/ProjectT/internal/api"
	"github.com/SakutaTHZ/ProjectT/internal/config"
	"github.com/SakutaTHZ/ProjectT/internal/logging"
	"github.com/SakutaTHZ/ProjectT/internal/relay"
	"github.com/SakutaTHZ/ProjectT/internal/service"
	"github.com/SakutaTHZ/ProjectT/internal/storage"
	"github.com/SakutaTHZ/ProjectT/internal/version"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		logging.Fatal("invalid configuration", err, logging.Fields{"hint": "set SOUL_CONFIG to a JSON file with optional keys: card_list, character_list, server.address, database_path, ai_step_delay_ms"})
	}

	db, err := storage.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		logging.Fatal("failed to initialize database", err, logging.Fields{"db_path": cfg.DatabasePath})
	}
	repo := storage.NewSQLiteRepository(db)

	hub := relay.NewHub(service.RoomTracker{Repo: repo})
	handler := api.NewGameHandler(repo, cfg.Catalog, hub)
	router := api.NewRouter(handler)

	logging.Info("soulrotation backend listening", logging.Fields{
		"addr":    cfg.ServerAddress,
		"version": version.Version,
	})
	if err := router.Run(cfg.ServerAddress); err != nil {
		logging.Fatal("server stopped", err, nil)
	}
}
