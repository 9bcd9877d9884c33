package storage

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/SakutaTHZ/ProjectT/internal/game"
)

var ErrNotFound = errors.New("record not found")

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateRoom(room *game.Room) error {
	if room.Status == "" {
		room.Status = game.RoomStatusOpen
	}
	return r.db.Create(room).Error
}

func (r *sqliteRepository) GetRoomByID(roomID string) (*game.Room, error) {
	var room game.Room
	err := r.db.Where("room_id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *sqliteRepository) ListOpenRooms() ([]game.Room, error) {
	var rooms []game.Room
	err := r.db.Where("status = ?", game.RoomStatusOpen).Order("created_at DESC").Find(&rooms).Error
	return rooms, err
}

func (r *sqliteRepository) SetRoomStatus(roomID, status string) error {
	return r.db.Model(&game.Room{}).Where("room_id = ?", roomID).Update("status", status).Error
}

func (r *sqliteRepository) SetRoomGuest(roomID, guestName string) error {
	return r.db.Model(&game.Room{}).Where("room_id = ?", roomID).
		Updates(map[string]interface{}{"guest_name": guestName, "status": game.RoomStatusPlaying}).Error
}

func (r *sqliteRepository) RecordMatch(m *game.MatchRecord) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) RecentMatches(limit int) ([]game.MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var matches []game.MatchRecord
	err := r.db.Order("created_at DESC").Limit(limit).Find(&matches).Error
	return matches, err
}

func (r *sqliteRepository) UpsertPlayer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("player name is required")
	}
	var u game.User
	err := r.db.Where("player_name = ?", name).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&game.User{PlayerName: name}).Error
	}
	return err
}

// UpdateStatsOnMatchEnd upserts both participants, increments their played
// counters and credits the winner. A conceding loser is tracked separately.
func (r *sqliteRepository) UpdateStatsOnMatchEnd(m *game.MatchRecord) error {
	players := []string{m.HostName, m.GuestName}
	for _, name := range players {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := r.UpsertPlayer(name); err != nil {
			return err
		}
		var u game.User
		if err := r.db.Where("player_name = ?", name).First(&u).Error; err != nil {
			return err
		}
		u.GamesPlayed++
		if name == m.WinnerName {
			u.Wins++
		} else if m.Concession {
			u.Concessions++
		}
		if err := r.db.Save(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *sqliteRepository) GetStatsByName(name string) (*game.User, error) {
	var u game.User
	err := r.db.Where("player_name = ?", name).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	err := r.db.Order("wins DESC, games_played ASC").Limit(limit).Find(&users).Error
	return users, err
}
