package relay

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/SakutaTHZ/ProjectT/internal/logging"
	"github.com/SakutaTHZ/ProjectT/internal/transport"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

const maxPeersPerRoom = 2

// RoomEvents lets the persistence layer track room membership. Both hooks are
// optional and must not block.
type RoomEvents interface {
	PlayerJoined(roomID, playerName string)
	PlayerLeft(roomID, playerName string)
}

type peer struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	name    string
	roomID  string
}

func (p *peer) send(msg transport.SocketMessage) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteJSON(msg)
}

// Hub relays messages between the two clients of a room. It never inspects
// game payloads; the clients own all game state.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string][]*peer
	events RoomEvents
}

func NewHub(events RoomEvents) *Hub {
	return &Hub{rooms: make(map[string][]*peer), events: events}
}

// Handle upgrades the request and serves the peer until it disconnects.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, nil)
		return
	}
	p := &peer{conn: conn}
	defer h.drop(p)
	defer conn.Close()

	for {
		var msg transport.SocketMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case transport.MessageJoinRoom:
			h.join(p, msg)
		default:
			h.broadcast(p, msg)
		}
	}
}

func (h *Hub) join(p *peer, msg transport.SocketMessage) {
	var payload transport.JoinPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.RoomID == "" {
		logging.Error("bad join payload", err, logging.Fields{"sender": msg.Sender})
		return
	}

	h.mu.Lock()
	peers := h.rooms[payload.RoomID]
	if len(peers) >= maxPeersPerRoom {
		h.mu.Unlock()
		logging.Info("room full", logging.Fields{"room_id": payload.RoomID, "player": payload.PlayerName})
		_ = p.conn.Close()
		return
	}
	p.roomID = payload.RoomID
	p.name = payload.PlayerName
	h.rooms[payload.RoomID] = append(peers, p)
	others := append([]*peer(nil), peers...)
	h.mu.Unlock()

	logging.Info("player joined room", logging.Fields{"room_id": payload.RoomID, "player": payload.PlayerName})
	if h.events != nil {
		h.events.PlayerJoined(payload.RoomID, payload.PlayerName)
	}

	joined := transport.SocketMessage{
		Type:    transport.MessagePlayerJoined,
		RoomID:  payload.RoomID,
		Sender:  payload.PlayerName,
		Payload: msg.Payload,
	}
	for _, other := range others {
		if err := other.send(joined); err != nil {
			logging.Error("notify peer failed", err, logging.Fields{"room_id": payload.RoomID})
		}
	}
}

// broadcast fans the message out to every other peer in the sender's room.
func (h *Hub) broadcast(from *peer, msg transport.SocketMessage) {
	if from.roomID == "" {
		return
	}
	h.mu.Lock()
	peers := append([]*peer(nil), h.rooms[from.roomID]...)
	h.mu.Unlock()

	for _, p := range peers {
		if p == from {
			continue
		}
		if err := p.send(msg); err != nil {
			logging.Error("relay write failed", err, logging.Fields{"room_id": from.roomID, "type": string(msg.Type)})
		}
	}
}

func (h *Hub) drop(p *peer) {
	if p.roomID == "" {
		return
	}
	h.mu.Lock()
	peers := h.rooms[p.roomID]
	for i, other := range peers {
		if other == p {
			peers = append(peers[:i], peers[i+1:]...)
			break
		}
	}
	if len(peers) == 0 {
		delete(h.rooms, p.roomID)
	} else {
		h.rooms[p.roomID] = peers
	}
	h.mu.Unlock()

	logging.Info("player left room", logging.Fields{"room_id": p.roomID, "player": p.name})
	if h.events != nil {
		h.events.PlayerLeft(p.roomID, p.name)
	}
}

// RoomPeerCount reports the current number of connected peers in a room.
func (h *Hub) RoomPeerCount(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}
