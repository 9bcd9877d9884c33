package constants

// Centralized constants for env keys, routes and shared tunables.
const (
	// Environment variable keys
	EnvConfigPath = "SOUL_CONFIG"
	EnvDBPath     = "SOUL_DB"
	EnvDebug      = "SOUL_DEBUG"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Core match rules. These are fixed by the game design, not configuration.
const (
	MaxScore     = 3
	MaxHandSize  = 10
	DeckSize     = 30
	SquadSize    = 3
	SlotCount    = 6
	DrawPerTurn  = 2
	OpeningDraw  = 4
	BuyCardCost  = 2
	BurnReward   = 1
	DiceMin      = 1
	DiceMax      = 3
	FragileBonus = 10
	WeakPenalty  = 10
)

// Routes used by the backend router
const (
	RouteAPIPrefix   = "/api"
	RouteVersion     = "/version"
	RouteCards       = "/cards"
	RouteCharacters  = "/characters"
	RouteRooms       = "/rooms"
	RouteRoomByID    = "/rooms/:roomID"
	RouteMatches     = "/matches"
	RouteLeaderboard = "/leaderboard"
	RouteWS          = "/ws"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrRoomNotFound           = "Room not found"
	ErrRoomFull               = "Room is full"
	ErrInvalidRoomID          = "Invalid room ID"
	ErrFailedCreateRoom       = "Failed to create room"
	ErrFailedFetchRooms       = "Failed to fetch rooms"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchMatches     = "Failed to fetch matches"
	ErrFailedRecordMatch      = "Failed to record match"
	ErrFailedUpgrade          = "Failed to upgrade connection"
)

// Logging field names
const (
	LogFieldRoomID = "room_id"
	LogFieldPlayer = "player"
	LogFieldAction = "action"
	LogFieldCard   = "card"
	LogFieldTarget = "target"
	LogFieldSlot   = "slot"
	LogFieldAddr   = "addr"
	LogFieldTurn   = "turn"
	LogFieldWinner = "winner"
)
