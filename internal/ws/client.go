package ws

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one websocket connection. Its identity (name) is set when
// the connection establishes one, either from a session token at
// upgrade time or by a successful create_room/join_room.
type Client struct {
	gateway *Gateway
	conn    *websocket.Conn
	send    chan []byte
	logger  *slog.Logger

	// Owned by the read pump; the hub mutates roomID under its lock
	name   model.PlayerName
	roomID model.RoomID
}

func newClient(gateway *Gateway, conn *websocket.Conn, name model.PlayerName, logger *slog.Logger) *Client {
	return &Client{
		gateway: gateway,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		logger:  logger,
		name:    name,
	}
}

// enqueue queues an outbound message for this client, dropping it if
// the buffer is full
func (c *Client) enqueue(message []byte) {
	select {
	case c.send <- message:
	default:
		c.logger.Warn("ws message dropped - client buffer full")
	}
}

// sendEvent encodes and queues an outbound event for this client only
func (c *Client) sendEvent(event string, data any) {
	message, err := Encode(event, data)
	if err != nil {
		c.logger.Error("ws failed to encode event",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}
	c.enqueue(message)
}

// readPump reads messages from the connection and dispatches them.
// Each message is handled to completion before the next is read, so
// one connection's operations never interleave with each other.
func (c *Client) readPump() {
	defer func() {
		c.gateway.disconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("ws read error", slog.Any("error", err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		c.gateway.dispatch(c, message)
	}
}

// writePump writes queued messages to the connection and keeps it
// alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
