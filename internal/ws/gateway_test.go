package ws

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/phrasebingo/phrasebingo-go/internal/dependencies/mocks"
	"github.com/phrasebingo/phrasebingo-go/internal/model"
	"github.com/phrasebingo/phrasebingo-go/internal/services/board"
	"github.com/phrasebingo/phrasebingo-go/internal/services/phrases"
	"github.com/phrasebingo/phrasebingo-go/internal/services/room"
	"github.com/phrasebingo/phrasebingo-go/internal/services/session"
	"github.com/phrasebingo/phrasebingo-go/internal/storage/memory"
	"github.com/phrasebingo/phrasebingo-go/internal/testutil"
)

type GatewaySuite struct {
	suite.Suite
	server *httptest.Server
	ids    *mocks.MockIDs
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

func (s *GatewaySuite) SetupTest() {
	store := memory.New()
	logger := testutil.NopLogger()

	s.ids = mocks.NewMockIDs("abcd1234")
	rooms := room.NewController(store, board.New(mocks.NewMockRandom()), s.ids, logger)
	pool := phrases.New(store, logger)
	sessions := session.New(mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)), session.DefaultConfig())

	gateway := NewGateway(NewHub(logger), rooms, pool, sessions, logger)
	s.server = httptest.NewServer(gateway)
}

func (s *GatewaySuite) TearDownTest() {
	s.server.Close()
}

// conn wraps one websocket connection with protocol helpers
type conn struct {
	s  *GatewaySuite
	ws *websocket.Conn
}

func (s *GatewaySuite) dial(token string) *conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	return &conn{s: s, ws: ws}
}

func (c *conn) close() {
	_ = c.ws.Close()
}

func (c *conn) send(event string, data any) {
	msg, err := Encode(event, data)
	c.s.Require().NoError(err)
	c.s.Require().NoError(c.ws.WriteMessage(websocket.TextMessage, msg))
}

// expect reads events until one named want arrives, skipping others
func (c *conn) expect(want string) json.RawMessage {
	c.s.T().Helper()
	_ = c.ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var env Envelope
		c.s.Require().NoError(c.ws.ReadJSON(&env), "waiting for %s", want)
		if env.Event == want {
			return env.Data
		}
		c.s.Require().NotEqual(EventError, env.Event, "got error waiting for %s: %s", want, string(env.Data))
	}
}

func (c *conn) expectError(message string) {
	c.s.T().Helper()
	var payload ErrorPayload
	c.s.Require().NoError(json.Unmarshal(c.expectEvent(EventError), &payload))
	c.s.Equal(message, payload.Message)
}

// expectEvent reads events until one named want arrives, error included
func (c *conn) expectEvent(want string) json.RawMessage {
	c.s.T().Helper()
	_ = c.ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var env Envelope
		c.s.Require().NoError(c.ws.ReadJSON(&env), "waiting for %s", want)
		if env.Event == want {
			return env.Data
		}
	}
}

func (s *GatewaySuite) phrases(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("phrase %d", i)
	}
	return out
}

func (s *GatewaySuite) createRoom(c *conn, name string) model.RoomID {
	c.send(EventCreateRoom, CreateRoomRequest{Username: name, Phrases: s.phrases(25)})

	var created RoomCreatedPayload
	s.Require().NoError(json.Unmarshal(c.expect(EventRoomCreated), &created))
	return created.RoomID
}

func (s *GatewaySuite) TestCreateRoom() {
	c := s.dial("")
	defer c.close()

	roomID := s.createRoom(c, "Alice")
	s.Equal(model.RoomID("abcd1234"), roomID)
}

func (s *GatewaySuite) TestCreateRoomIssuesSession() {
	c := s.dial("")
	defer c.close()

	c.send(EventCreateRoom, CreateRoomRequest{Username: "Alice", Phrases: s.phrases(25)})

	var sess SessionPayload
	s.Require().NoError(json.Unmarshal(c.expect(EventSession), &sess))
	s.True(strings.HasPrefix(sess.Token, "sess_"))
}

func (s *GatewaySuite) TestCreateRoomInvalidUsername() {
	c := s.dial("")
	defer c.close()

	c.send(EventCreateRoom, CreateRoomRequest{Username: "ab", Phrases: s.phrases(25)})
	c.expectError("Username must be between 3 and 20 characters")
}

func (s *GatewaySuite) TestCreateRoomWithoutPhrases() {
	c := s.dial("")
	defer c.close()

	c.send(EventCreateRoom, CreateRoomRequest{Username: "Alice"})
	c.expectError("Invalid data")
}

func (s *GatewaySuite) TestJoinRoom() {
	alice := s.dial("")
	defer alice.close()
	roomID := s.createRoom(alice, "Alice")

	bob := s.dial("")
	defer bob.close()
	bob.send(EventJoinRoom, JoinRoomRequest{Username: "Bob", RoomID: roomID})

	var joined RoomJoinedPayload
	s.Require().NoError(json.Unmarshal(bob.expect(EventRoomJoined), &joined))
	s.Equal(roomID, joined.RoomID)
	s.Equal(model.PlayerName("Alice"), joined.Creator)
	s.Equal([]model.PlayerName{"Alice", "Bob"}, joined.Players)
	s.Equal(5, joined.Board.Size())
	s.False(joined.HasBingo)

	// The room hears about the new member, the joiner does not
	var announced PlayerJoinedPayload
	s.Require().NoError(json.Unmarshal(alice.expect(EventPlayerJoined), &announced))
	s.Equal(model.PlayerName("Bob"), announced.Username)
}

func (s *GatewaySuite) TestJoinUnknownRoom() {
	c := s.dial("")
	defer c.close()

	c.send(EventJoinRoom, JoinRoomRequest{Username: "Bob", RoomID: "missing1"})
	c.expectError("Room not found")
}

func (s *GatewaySuite) TestMarkCellBroadcasts() {
	alice := s.dial("")
	defer alice.close()
	roomID := s.createRoom(alice, "Alice")

	bob := s.dial("")
	defer bob.close()
	bob.send(EventJoinRoom, JoinRoomRequest{Username: "Bob", RoomID: roomID})
	bob.expect(EventRoomJoined)
	alice.expect(EventPlayerJoined)

	row, col := 1, 3
	alice.send(EventMarkCell, MarkCellRequest{RoomID: roomID, Row: &row, Col: &col})

	for _, c := range []*conn{alice, bob} {
		var marked CellMarkedPayload
		s.Require().NoError(json.Unmarshal(c.expect(EventCellMarked), &marked))
		s.Equal(model.PlayerName("Alice"), marked.Username)
		s.Equal(1, marked.Row)
		s.Equal(3, marked.Col)
		s.True(marked.Marked)
	}
}

func (s *GatewaySuite) TestMarkCellRequiresIdentity() {
	c := s.dial("")
	defer c.close()

	row, col := 0, 0
	c.send(EventMarkCell, MarkCellRequest{RoomID: "abcd1234", Row: &row, Col: &col})
	c.expectError("Invalid data")
}

func (s *GatewaySuite) TestMarkCellMissingCoordinates() {
	c := s.dial("")
	defer c.close()
	roomID := s.createRoom(c, "Alice")

	row := 0
	c.send(EventMarkCell, MarkCellRequest{RoomID: roomID, Row: &row})
	c.expectError("Invalid data")
}

func (s *GatewaySuite) TestMarkCellOutOfBounds() {
	c := s.dial("")
	defer c.close()
	roomID := s.createRoom(c, "Alice")

	row, col := 5, 0
	c.send(EventMarkCell, MarkCellRequest{RoomID: roomID, Row: &row, Col: &col})
	c.expectError("Cell position out of bounds")
}

func (s *GatewaySuite) TestRowBingoIsAnnounced() {
	alice := s.dial("")
	defer alice.close()
	roomID := s.createRoom(alice, "Alice")

	bob := s.dial("")
	defer bob.close()
	bob.send(EventJoinRoom, JoinRoomRequest{Username: "Bob", RoomID: roomID})
	bob.expect(EventRoomJoined)
	alice.expect(EventPlayerJoined)

	for col := 0; col < 5; col++ {
		row := 0
		c := col
		alice.send(EventMarkCell, MarkCellRequest{RoomID: roomID, Row: &row, Col: &c})
		alice.expect(EventCellMarked)
	}

	// Everyone in the room sees the win
	for _, c := range []*conn{alice, bob} {
		var bingo PlayerBingoPayload
		s.Require().NoError(json.Unmarshal(c.expect(EventPlayerBingo), &bingo))
		s.Equal(model.PlayerName("Alice"), bingo.Username)
		s.Equal(model.WinTypeRow, bingo.WinningType)
		s.Equal(0, bingo.WinningIndex)
		s.Len(bingo.WinningCells, 5)
	}
}

func (s *GatewaySuite) TestSessionRestoresIdentity() {
	alice := s.dial("")
	alice.send(EventCreateRoom, CreateRoomRequest{Username: "Alice", Phrases: s.phrases(25)})

	// The session token arrives before the creation ack
	var sess SessionPayload
	s.Require().NoError(json.Unmarshal(alice.expect(EventSession), &sess))

	var created RoomCreatedPayload
	s.Require().NoError(json.Unmarshal(alice.expect(EventRoomCreated), &created))
	roomID := created.RoomID
	alice.close()

	// Reconnect with the token and rejoin without sending a username
	back := s.dial(sess.Token)
	defer back.close()
	back.send(EventJoinRoom, JoinRoomRequest{RoomID: roomID})

	var joined RoomJoinedPayload
	s.Require().NoError(json.Unmarshal(back.expect(EventRoomJoined), &joined))
	s.Equal([]model.PlayerName{"Alice"}, joined.Players)
}

func (s *GatewaySuite) TestSavePhrases() {
	c := s.dial("")
	defer c.close()

	c.send(EventSavePhrases, SavePhrasesRequest{Phrases: []string{"x", "x", "y"}})

	var saved PhrasesSavedPayload
	s.Require().NoError(json.Unmarshal(c.expect(EventPhrasesSaved), &saved))
	s.Equal(2, saved.Count)

	c.send(EventGetSavedPhrases, struct{}{})

	var pool SavedPhrasesPayload
	s.Require().NoError(json.Unmarshal(c.expect(EventSavedPhrases), &pool))
	s.Equal([]string{"x", "y"}, pool.Phrases)
}

func (s *GatewaySuite) TestSavePhrasesEmpty() {
	c := s.dial("")
	defer c.close()

	c.send(EventSavePhrases, SavePhrasesRequest{})
	c.expectError("No phrases to save")
}

func (s *GatewaySuite) TestUnknownEvent() {
	c := s.dial("")
	defer c.close()

	c.send("dance", struct{}{})
	c.expectError("Unknown event")
}
