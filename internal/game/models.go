package game

import (
	"gorm.io/gorm"
)

// Room is a relay lobby two clients meet in. The relay holds no game state;
// the row exists so rooms can be listed and joined from the start screen.
type Room struct {
	gorm.Model
	RoomID    string `json:"room_id" gorm:"uniqueIndex;size:32"`
	HostName  string `json:"host_name" gorm:"size:32"`
	GuestName string `json:"guest_name" gorm:"size:32"`
	// open | playing | finished
	Status string `json:"status"`
}

const (
	RoomStatusOpen     = "open"
	RoomStatusPlaying  = "playing"
	RoomStatusFinished = "finished"
)

// MatchRecord is the persisted outcome of a completed match. The engine never
// reads these back; they feed the leaderboard and recent-matches views.
type MatchRecord struct {
	gorm.Model
	RoomID          string `json:"room_id" gorm:"index"`
	Mode            string `json:"mode"` // ai | online
	HostName        string `json:"host_name"`
	GuestName       string `json:"guest_name"`
	WinnerName      string `json:"winner_name"`
	Turns           int    `json:"turns"`
	DurationSeconds int    `json:"duration_seconds"`
	Concession      bool   `json:"concession"`
}

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	PlayerName  string `json:"player_name" gorm:"uniqueIndex"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Concessions int    `json:"concessions"`
}

// Unify global users table name as "player_profiles"
func (User) TableName() string { return "player_profiles" }
