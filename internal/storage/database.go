package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SakutaTHZ/ProjectT/internal/game"
)

// OpenAndMigrate opens the SQLite database and keeps the schema current via
// AutoMigrate. The engine never touches the database; only rooms, match
// history and player stats live here.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Room{}, &game.MatchRecord{}, &game.User{}); err != nil {
		return nil, err
	}
	return db, nil
}
