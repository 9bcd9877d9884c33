package storage

import (
	"github.com/SakutaTHZ/ProjectT/internal/game"
)

type Repository interface {
	// Rooms
	CreateRoom(r *game.Room) error
	GetRoomByID(roomID string) (*game.Room, error)
	ListOpenRooms() ([]game.Room, error)
	SetRoomStatus(roomID, status string) error
	SetRoomGuest(roomID, guestName string) error

	// Match history
	RecordMatch(m *game.MatchRecord) error
	RecentMatches(limit int) ([]game.MatchRecord, error)

	// Player stats. UpdateStatsOnMatchEnd upserts both participants and
	// credits the winner.
	UpsertPlayer(name string) error
	UpdateStatsOnMatchEnd(m *game.MatchRecord) error
	GetStatsByName(name string) (*game.User, error)
	GetTopPlayers(limit int) ([]game.User, error)
}
