package model

// RoomID is the short token players use to join a room
type RoomID string

// RoomIDLength is the length of generated room IDs
const RoomIDLength = 8

// DefaultBoardSize is the grid dimension for new rooms
const DefaultBoardSize = 5

// PlayerName is a validated display name, scoped to nothing: the same
// name in two rooms is two independent players
type PlayerName string

// Room is a shared game session: the phrase list supplied at creation
// plus the roster of members in join order
type Room struct {
	Creator PlayerName   `json:"creator"`
	Phrases []string     `json:"phrases"`
	Players []PlayerName `json:"players"`
	Size    int          `json:"size"`
}

// HasPlayer returns true if the given name is already a member
func (r *Room) HasPlayer(name PlayerName) bool {
	for _, p := range r.Players {
		if p == name {
			return true
		}
	}
	return false
}
