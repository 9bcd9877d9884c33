package transport

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SakutaTHZ/ProjectT/internal/logging"
)

var ErrClientClosed = errors.New("websocket client is closed")

const dialTimeout = 10 * time.Second

// Handler receives every decoded message from the relay. Handlers run on the
// read-loop goroutine; long work must be dispatched elsewhere.
type Handler func(msg SocketMessage)

// Client is one side's connection to the relay. Writes are serialized behind
// a mutex; a single goroutine owns all reads.
type Client struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	mu      sync.Mutex
	handler Handler
	closed  bool
	done    chan struct{}
}

// Dial connects to the relay, joins the room and starts the read loop. The
// context bounds the dial only, not the connection lifetime.
func Dial(ctx context.Context, url, roomID, playerName string) (*Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{conn: conn, done: make(chan struct{})}
	join := JoinPayload{RoomID: roomID, PlayerName: playerName}
	payload, _ := json.Marshal(join)
	if err := c.Send(SocketMessage{Type: MessageJoinRoom, RoomID: roomID, Sender: playerName, Payload: payload}); err != nil {
		_ = conn.Close()
		return nil, err
	}

	go c.readLoop()
	logging.Info("joined relay room", logging.Fields{"room_id": roomID, "player": playerName})
	return c, nil
}

// Subscribe sets the message handler. Messages arriving before a handler is
// set are dropped.
func (c *Client) Subscribe(h Handler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
}

// Send marshals and writes one message.
func (c *Client) Send(msg SocketMessage) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClientClosed
	}
	c.mu.Unlock()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(msg)
}

// SendAction wraps a game action in the relay envelope.
func (c *Client) SendAction(roomID, sender string, action Action) error {
	payload, err := json.Marshal(action)
	if err != nil {
		return err
	}
	return c.Send(SocketMessage{Type: MessageAction, RoomID: roomID, Sender: sender, Payload: payload})
}

// SendWelcome is the host's half of the pre-match handshake: it answers a
// PLAYER_JOINED with the host loadout.
func (c *Client) SendWelcome(roomID, sender string, loadout LoadoutPayload) error {
	return c.sendLoadout(MessageWelcome, roomID, sender, loadout)
}

// SendSyncLoadout is the guest's reply to a WELCOME.
func (c *Client) SendSyncLoadout(roomID, sender string, loadout LoadoutPayload) error {
	return c.sendLoadout(MessageSyncLoadout, roomID, sender, loadout)
}

func (c *Client) sendLoadout(t MessageType, roomID, sender string, loadout LoadoutPayload) error {
	payload, err := json.Marshal(loadout)
	if err != nil {
		return err
	}
	return c.Send(SocketMessage{Type: t, RoomID: roomID, Sender: sender, Payload: payload})
}

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		var msg SocketMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				logging.Error("relay read failed", err, nil)
			}
			return
		}
		c.mu.Lock()
		h := c.handler
		c.mu.Unlock()
		if h != nil {
			h(msg)
		} else {
			logging.Debug("dropping message with no handler", logging.Fields{"type": string(msg.Type)})
		}
	}
}

// Close shuts the connection down and waits for the read loop to exit.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()

	err := c.conn.Close()
	<-c.done
	return err
}
