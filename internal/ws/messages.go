package ws

import (
	"encoding/json"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
)

// Inbound event names
const (
	EventCreateRoom      = "create_room"
	EventJoinRoom        = "join_room"
	EventMarkCell        = "mark_cell"
	EventSavePhrases     = "save_phrases"
	EventGetSavedPhrases = "get_saved_phrases"
)

// Outbound event names
const (
	EventRoomCreated  = "room_created"
	EventRoomJoined   = "room_joined"
	EventPlayerJoined = "player_joined"
	EventCellMarked   = "cell_marked"
	EventPlayerBingo  = "player_bingo"
	EventPhrasesSaved = "phrases_saved"
	EventSavedPhrases = "saved_phrases"
	EventSession      = "session"
	EventError        = "error"
)

// Envelope is the wire framing for every message in both directions:
// an event name plus an event-specific JSON payload
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode builds the wire bytes for an outbound event
func Encode(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: payload})
}

// Inbound payloads

// CreateRoomRequest asks for a new room owned by Username
type CreateRoomRequest struct {
	Username string   `json:"username"`
	Phrases  []string `json:"phrases"`
}

// JoinRoomRequest asks to join an existing room
type JoinRoomRequest struct {
	Username string       `json:"username"`
	RoomID   model.RoomID `json:"room_id"`
}

// MarkCellRequest toggles one cell on the sender's board. Row and Col
// are pointers so a missing coordinate is distinguishable from zero.
type MarkCellRequest struct {
	RoomID model.RoomID `json:"room_id"`
	Row    *int         `json:"row"`
	Col    *int         `json:"col"`
}

// SavePhrasesRequest merges phrases into the global pool
type SavePhrasesRequest struct {
	Phrases []string `json:"phrases"`
}

// Outbound payloads

// RoomCreatedPayload confirms room creation to the sender
type RoomCreatedPayload struct {
	RoomID model.RoomID `json:"room_id"`
}

// RoomJoinedPayload gives the joiner the room roster and their board
type RoomJoinedPayload struct {
	RoomID   model.RoomID       `json:"room_id"`
	Creator  model.PlayerName   `json:"creator"`
	Players  []model.PlayerName `json:"players"`
	Board    model.Board        `json:"board"`
	HasBingo bool               `json:"has_bingo"`
}

// PlayerJoinedPayload announces a new member to the rest of the room
type PlayerJoinedPayload struct {
	Username model.PlayerName `json:"username"`
}

// CellMarkedPayload announces a cell toggle to the whole room
type CellMarkedPayload struct {
	Username model.PlayerName `json:"username"`
	Row      int              `json:"row"`
	Col      int              `json:"col"`
	Marked   bool             `json:"marked"`
}

// PlayerBingoPayload announces a winning board to the whole room
type PlayerBingoPayload struct {
	Username     model.PlayerName `json:"username"`
	Board        model.Board      `json:"board"`
	WinningCells []model.Position `json:"winning_cells"`
	WinningType  model.WinType    `json:"winning_type"`
	WinningIndex int              `json:"winning_index"`
}

// PhrasesSavedPayload confirms a pool merge to the sender
type PhrasesSavedPayload struct {
	Count int `json:"count"`
}

// SavedPhrasesPayload returns the pool to the sender
type SavedPhrasesPayload struct {
	Phrases []string `json:"phrases"`
}

// SessionPayload delivers the sender's reconnect token
type SessionPayload struct {
	Token string `json:"token"`
}

// ErrorPayload reports a failed operation to the sender
type ErrorPayload struct {
	Message string `json:"message"`
}
