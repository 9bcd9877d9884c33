package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/SakutaTHZ/ProjectT/internal/game"
	"github.com/SakutaTHZ/ProjectT/internal/logging"
	"github.com/SakutaTHZ/ProjectT/internal/storage"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomNotOpen  = errors.New("room is not open")
	ErrNameRequired = errors.New("player name is required")
	ErrSelfJoin     = errors.New("cannot join your own room")
)

// RoomRepo is the slice of the repository the room flows need.
type RoomRepo interface {
	CreateRoom(r *game.Room) error
	GetRoomByID(roomID string) (*game.Room, error)
	ListOpenRooms() ([]game.Room, error)
	SetRoomStatus(roomID, status string) error
	SetRoomGuest(roomID, guestName string) error
	UpsertPlayer(name string) error
}

// CreateRoom registers a new open room for the host and returns it.
func CreateRoom(repo RoomRepo, hostName string) (*game.Room, error) {
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		return nil, ErrNameRequired
	}
	if err := repo.UpsertPlayer(hostName); err != nil {
		return nil, err
	}
	room := &game.Room{
		RoomID:   uuid.NewString()[:8],
		HostName: hostName,
		Status:   game.RoomStatusOpen,
	}
	if err := repo.CreateRoom(room); err != nil {
		return nil, err
	}
	return room, nil
}

// JoinRoom seats a guest in an open room and flips it to playing.
func JoinRoom(repo RoomRepo, roomID, guestName string) (*game.Room, error) {
	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		return nil, ErrNameRequired
	}
	room, err := repo.GetRoomByID(roomID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if room.Status != game.RoomStatusOpen {
		return nil, ErrRoomNotOpen
	}
	if room.HostName == guestName {
		return nil, ErrSelfJoin
	}
	if err := repo.UpsertPlayer(guestName); err != nil {
		return nil, err
	}
	if err := repo.SetRoomGuest(roomID, guestName); err != nil {
		return nil, err
	}
	room.GuestName = guestName
	room.Status = game.RoomStatusPlaying
	return room, nil
}

// RoomTracker adapts the relay's membership events onto the repository so
// the room list stays truthful even when clients drop without an API call.
type RoomTracker struct {
	Repo RoomRepo
}

func (t RoomTracker) PlayerJoined(roomID, playerName string) {
	room, err := t.Repo.GetRoomByID(roomID)
	if err != nil {
		logging.Debug("relay joined unknown room", logging.Fields{"room_id": roomID})
		return
	}
	if room.HostName != playerName && room.GuestName == "" {
		if err := t.Repo.SetRoomGuest(roomID, playerName); err != nil {
			logging.Error("track room guest failed", err, logging.Fields{"room_id": roomID})
		}
	}
}

func (t RoomTracker) PlayerLeft(roomID, playerName string) {
	if err := t.Repo.SetRoomStatus(roomID, game.RoomStatusFinished); err != nil {
		logging.Error("close room failed", err, logging.Fields{"room_id": roomID})
	}
}
