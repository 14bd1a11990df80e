package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
	"github.com/phrasebingo/phrasebingo-go/internal/services/phrases"
	"github.com/phrasebingo/phrasebingo-go/internal/services/room"
	"github.com/phrasebingo/phrasebingo-go/internal/services/session"
)

// Gateway maps inbound real-time events to engine calls and engine
// results to outbound events. Every error is surfaced to the sender as
// a single error{message} event; no error path mutates state.
type Gateway struct {
	hub      *Hub
	rooms    room.ControllerInterface
	phrases  phrases.ServiceInterface
	sessions *session.Service
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewGateway creates a new Gateway
func NewGateway(hub *Hub, rooms room.ControllerInterface, phrases phrases.ServiceInterface, sessions *session.Service, logger *slog.Logger) *Gateway {
	return &Gateway{
		hub:      hub,
		rooms:    rooms,
		phrases:  phrases,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The game is join-by-token; any origin may connect
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP upgrades the connection and runs the client pumps. A
// session token in the query string restores the connection's identity
// from a previous visit.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("ws upgrade failed", slog.Any("error", err))
		return
	}

	var name model.PlayerName
	if token := r.URL.Query().Get("token"); token != "" {
		if sess, err := g.sessions.Resolve(token); err == nil {
			name = sess.Name
		}
	}

	client := newClient(g, conn, name, g.logger)
	g.logger.Info("client connected", slog.String("player", string(name)))

	go client.writePump()
	go client.readPump()
}

// disconnect is called when a client's read pump exits
func (g *Gateway) disconnect(c *Client) {
	g.hub.Leave(c)
	close(c.send)
	g.logger.Info("client disconnected", slog.String("player", string(c.name)))
}

// dispatch routes one inbound message to its handler
func (g *Gateway) dispatch(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.sendEvent(EventError, ErrorPayload{Message: "Invalid message"})
		return
	}

	ctx := context.Background()

	switch env.Event {
	case EventCreateRoom:
		g.handleCreateRoom(ctx, c, env.Data)
	case EventJoinRoom:
		g.handleJoinRoom(ctx, c, env.Data)
	case EventMarkCell:
		g.handleMarkCell(ctx, c, env.Data)
	case EventSavePhrases:
		g.handleSavePhrases(ctx, c, env.Data)
	case EventGetSavedPhrases:
		g.handleGetSavedPhrases(ctx, c)
	default:
		c.sendEvent(EventError, ErrorPayload{Message: "Unknown event"})
	}
}

func (g *Gateway) handleCreateRoom(ctx context.Context, c *Client, data json.RawMessage) {
	var req CreateRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Username == "" || len(req.Phrases) == 0 {
		c.sendEvent(EventError, ErrorPayload{Message: "Invalid data"})
		return
	}

	roomID, err := g.rooms.CreateRoom(ctx, req.Username, req.Phrases)
	if err != nil {
		g.sendError(c, err)
		return
	}

	g.establishIdentity(c, model.PlayerName(req.Username))
	g.hub.Join(c, roomID)

	c.sendEvent(EventRoomCreated, RoomCreatedPayload{RoomID: roomID})
}

func (g *Gateway) handleJoinRoom(ctx context.Context, c *Client, data json.RawMessage) {
	var req JoinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.RoomID == "" {
		c.sendEvent(EventError, ErrorPayload{Message: "Invalid data"})
		return
	}
	if req.Username == "" {
		// A restored session carries the name across reconnects
		if c.name == "" {
			c.sendEvent(EventError, ErrorPayload{Message: "Invalid data"})
			return
		}
		req.Username = string(c.name)
	}

	roomData, state, err := g.rooms.JoinRoom(ctx, req.Username, req.RoomID)
	if err != nil {
		g.sendError(c, err)
		return
	}

	g.establishIdentity(c, model.PlayerName(req.Username))
	g.hub.Join(c, req.RoomID)

	if msg, err := Encode(EventPlayerJoined, PlayerJoinedPayload{Username: model.PlayerName(req.Username)}); err == nil {
		g.hub.BroadcastExcept(req.RoomID, c, msg)
	}

	c.sendEvent(EventRoomJoined, RoomJoinedPayload{
		RoomID:   req.RoomID,
		Creator:  roomData.Creator,
		Players:  roomData.Players,
		Board:    state.Board,
		HasBingo: state.HasBingo,
	})
}

func (g *Gateway) handleMarkCell(ctx context.Context, c *Client, data json.RawMessage) {
	var req MarkCellRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.sendEvent(EventError, ErrorPayload{Message: "Invalid data"})
		return
	}
	if c.name == "" || req.RoomID == "" || req.Row == nil || req.Col == nil {
		c.sendEvent(EventError, ErrorPayload{Message: "Invalid data"})
		return
	}

	result, err := g.rooms.MarkCell(ctx, string(c.name), req.RoomID, *req.Row, *req.Col)
	if err != nil {
		g.sendError(c, err)
		return
	}

	if msg, err := Encode(EventCellMarked, CellMarkedPayload{
		Username: c.name,
		Row:      result.Row,
		Col:      result.Col,
		Marked:   result.Marked,
	}); err == nil {
		g.hub.Broadcast(req.RoomID, msg)
	}

	if result.Bingo.HasBingo {
		if msg, err := Encode(EventPlayerBingo, PlayerBingoPayload{
			Username:     c.name,
			Board:        result.State.Board,
			WinningCells: result.Bingo.WinningCells,
			WinningType:  result.Bingo.Type,
			WinningIndex: result.Bingo.Index,
		}); err == nil {
			g.hub.Broadcast(req.RoomID, msg)
		}
	}
}

func (g *Gateway) handleSavePhrases(ctx context.Context, c *Client, data json.RawMessage) {
	var req SavePhrasesRequest
	if err := json.Unmarshal(data, &req); err != nil || len(req.Phrases) == 0 {
		c.sendEvent(EventError, ErrorPayload{Message: "No phrases to save"})
		return
	}

	count, err := g.phrases.Save(ctx, req.Phrases)
	if err != nil {
		g.sendError(c, err)
		return
	}

	c.sendEvent(EventPhrasesSaved, PhrasesSavedPayload{Count: count})
}

func (g *Gateway) handleGetSavedPhrases(ctx context.Context, c *Client) {
	pool, err := g.phrases.Get(ctx)
	if err != nil {
		g.sendError(c, err)
		return
	}

	c.sendEvent(EventSavedPhrases, SavedPhrasesPayload{Phrases: pool})
}

// establishIdentity binds a validated name to the connection and, when
// the name changes, issues a fresh reconnect token
func (g *Gateway) establishIdentity(c *Client, name model.PlayerName) {
	if c.name == name {
		return
	}
	c.name = name
	sess := g.sessions.Issue(name)
	c.sendEvent(EventSession, SessionPayload{Token: sess.Token})
}

// sendError reports an engine failure to the sender only
func (g *Gateway) sendError(c *Client, err error) {
	c.sendEvent(EventError, ErrorPayload{Message: errorMessage(err)})
	if !isClientError(err) {
		g.logger.Error("operation failed", slog.Any("error", err))
	}
}

// isClientError reports whether the error was caused by the request
// rather than the store or the process
func isClientError(err error) bool {
	return errors.Is(err, model.ErrInvalidInput) ||
		errors.Is(err, model.ErrInvalidUsername) ||
		errors.Is(err, model.ErrRoomNotFound) ||
		errors.Is(err, model.ErrPlayerNotFound) ||
		errors.Is(err, model.ErrOutOfBounds) ||
		errors.Is(err, session.ErrInvalidSession)
}

// errorMessage maps engine errors to the human-readable text sent to
// the client
func errorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidUsername):
		// The validation reason is the message
		return strings.TrimPrefix(err.Error(), model.ErrInvalidUsername.Error()+": ")
	case errors.Is(err, model.ErrInvalidInput):
		return "Invalid data"
	case errors.Is(err, model.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, model.ErrPlayerNotFound):
		return "Player data not found"
	case errors.Is(err, model.ErrOutOfBounds):
		return "Cell position out of bounds"
	case errors.Is(err, session.ErrInvalidSession):
		return "Invalid or expired session"
	default:
		return "Internal server error"
	}
}
