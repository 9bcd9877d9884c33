package transport

import "encoding/json"

// MessageType is the outer envelope discriminator shared by both clients and
// the relay.
type MessageType string

const (
	MessageJoinRoom     MessageType = "JOIN_ROOM"
	MessagePlayerJoined MessageType = "PLAYER_JOINED"
	MessageWelcome      MessageType = "WELCOME"
	MessageSyncLoadout  MessageType = "SYNC_LOADOUT"
	MessageAction       MessageType = "ACTION"
)

// SocketMessage is the wire envelope. The relay reads Type and RoomID only;
// Payload is opaque to it and decoded by the receiving client.
type SocketMessage struct {
	Type    MessageType     `json:"type"`
	RoomID  string          `json:"roomId,omitempty"`
	Sender  string          `json:"sender,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ActionType discriminates the in-game actions relayed between the two sides
// of a match.
type ActionType string

const (
	ActionCastSpell     ActionType = "CAST_SPELL"
	ActionEndTurn       ActionType = "END_TURN"
	ActionRollDice      ActionType = "ROLL_DICE"
	ActionRotate        ActionType = "ROTATE"
	ActionBurnCard      ActionType = "BURN_CARD"
	ActionPlaceCard     ActionType = "PLACE_CARD"
	ActionResetSlots    ActionType = "RESET_SLOTS"
	ActionBuyCard       ActionType = "BUY_CARD"
	ActionConcede       ActionType = "CONCEDE"
	ActionGameOver      ActionType = "GAME_OVER"
	ActionTrapTriggered ActionType = "TRAP_TRIGGERED"
)

// ActionData carries the per-action parameters. Fields are pointers or
// omitempty values so each action serializes only what it uses.
//
// CurrentSoulPoints is the sender's authoritative post-action total; the
// receiving replica overwrites its mirror with it instead of re-deriving.
// HandCount reconciles the mirrored hand length after hidden draws.
type ActionData struct {
	Value             int             `json:"value,omitempty"`
	Card              json.RawMessage `json:"card,omitempty"`
	TargetID          string          `json:"targetId,omitempty"`
	SlotIndex         *int            `json:"slotIndex,omitempty"`
	EffectTargetSlot  *int            `json:"effectTargetSlotIndex,omitempty"`
	CurrentSoulPoints *int            `json:"currentSoulPoints,omitempty"`
	WinnerID          string          `json:"winnerId,omitempty"`
	HandCount         *int            `json:"handCount,omitempty"`
}

// Action is one relayed game action.
type Action struct {
	Type ActionType `json:"actionType"`
	Data ActionData `json:"data"`
}

// JoinPayload opens or joins a relay room.
type JoinPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

// LoadoutPayload is the pre-match handshake: each side announces its squad
// and deck composition so the remote replica can mirror the board. Hands stay
// hidden; only the counts travel.
type LoadoutPayload struct {
	PlayerID   string          `json:"playerId"`
	PlayerName string          `json:"playerName"`
	Squad      json.RawMessage `json:"squad"`
	DeckSize   int             `json:"deckSize"`
	HandCount  int             `json:"handCount"`
}

// IntPtr is a convenience for filling optional ActionData fields.
func IntPtr(v int) *int { return &v }
