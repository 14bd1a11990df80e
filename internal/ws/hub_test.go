package ws

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/phrasebingo/phrasebingo-go/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub(testutil.NopLogger())
}

func (s *HubSuite) newClient(name string) *Client {
	return &Client{
		send:   make(chan []byte, 4),
		logger: testutil.NopLogger(),
	}
}

func (s *HubSuite) receive(c *Client) []byte {
	select {
	case msg := <-c.send:
		return msg
	default:
		return nil
	}
}

func (s *HubSuite) TestJoinAndBroadcast() {
	alice := s.newClient("Alice")
	bob := s.newClient("Bob")
	s.hub.Join(alice, "room1")
	s.hub.Join(bob, "room1")

	s.hub.Broadcast("room1", []byte("hello"))

	s.Equal([]byte("hello"), s.receive(alice))
	s.Equal([]byte("hello"), s.receive(bob))
}

func (s *HubSuite) TestBroadcastScopedToRoom() {
	alice := s.newClient("Alice")
	carol := s.newClient("Carol")
	s.hub.Join(alice, "room1")
	s.hub.Join(carol, "room2")

	s.hub.Broadcast("room1", []byte("hello"))

	s.Equal([]byte("hello"), s.receive(alice))
	s.Nil(s.receive(carol))
}

func (s *HubSuite) TestBroadcastExceptSkipsSender() {
	alice := s.newClient("Alice")
	bob := s.newClient("Bob")
	s.hub.Join(alice, "room1")
	s.hub.Join(bob, "room1")

	s.hub.BroadcastExcept("room1", alice, []byte("hello"))

	s.Nil(s.receive(alice))
	s.Equal([]byte("hello"), s.receive(bob))
}

func (s *HubSuite) TestBroadcastToEmptyRoom() {
	s.hub.Broadcast("nobody", []byte("hello"))
	s.Equal(0, s.hub.ClientCount("nobody"))
}

func (s *HubSuite) TestJoinMovesBetweenRooms() {
	alice := s.newClient("Alice")
	s.hub.Join(alice, "room1")
	s.hub.Join(alice, "room2")

	s.Equal(0, s.hub.ClientCount("room1"))
	s.Equal(1, s.hub.ClientCount("room2"))

	s.hub.Broadcast("room1", []byte("hello"))
	s.Nil(s.receive(alice))

	s.hub.Broadcast("room2", []byte("hello"))
	s.Equal([]byte("hello"), s.receive(alice))
}

func (s *HubSuite) TestLeave() {
	alice := s.newClient("Alice")
	bob := s.newClient("Bob")
	s.hub.Join(alice, "room1")
	s.hub.Join(bob, "room1")

	s.hub.Leave(alice)

	s.Equal(1, s.hub.ClientCount("room1"))
	s.hub.Broadcast("room1", []byte("hello"))
	s.Nil(s.receive(alice))
	s.Equal([]byte("hello"), s.receive(bob))
}

func (s *HubSuite) TestLeaveWithoutJoinIsNoOp() {
	alice := s.newClient("Alice")
	s.hub.Leave(alice)
	s.Equal(0, s.hub.ClientCount("room1"))
}

func (s *HubSuite) TestFullBufferDropsMessage() {
	alice := s.newClient("Alice")
	s.hub.Join(alice, "room1")

	for i := 0; i < 6; i++ {
		s.hub.Broadcast("room1", []byte("msg"))
	}

	// Buffer holds 4; the rest were dropped, not blocked on
	s.Len(alice.send, 4)
}
