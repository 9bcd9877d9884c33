package service

import (
	"errors"
	"strings"

	"github.com/SakutaTHZ/ProjectT/internal/game"
)

var (
	ErrWinnerRequired       = errors.New("winner name is required")
	ErrWinnerNotParticipant = errors.New("winner must be one of the participants")
)

// MatchRepo is the slice of the repository the result flow needs.
type MatchRepo interface {
	RecordMatch(m *game.MatchRecord) error
	UpdateStatsOnMatchEnd(m *game.MatchRecord) error
	SetRoomStatus(roomID, status string) error
	RecentMatches(limit int) ([]game.MatchRecord, error)
	GetTopPlayers(limit int) ([]game.User, error)
}

// RecordResult persists a finished match and settles both players' stats.
// The winner must be one of the participants.
func RecordResult(repo MatchRepo, record *game.MatchRecord) error {
	record.WinnerName = strings.TrimSpace(record.WinnerName)
	if record.WinnerName == "" {
		return ErrWinnerRequired
	}
	if record.WinnerName != record.HostName && record.WinnerName != record.GuestName {
		return ErrWinnerNotParticipant
	}
	if err := repo.RecordMatch(record); err != nil {
		return err
	}
	if err := repo.UpdateStatsOnMatchEnd(record); err != nil {
		return err
	}
	if record.RoomID != "" {
		return repo.SetRoomStatus(record.RoomID, game.RoomStatusFinished)
	}
	return nil
}
