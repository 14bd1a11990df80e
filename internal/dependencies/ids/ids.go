package ids

import "github.com/google/uuid"

// RoomTokenLength is the length of generated room tokens
const RoomTokenLength = 8

// Generator produces room ID tokens; mockable for testing
type Generator interface {
	// RoomToken returns a fresh short token
	RoomToken() string
}

// UUIDGenerator implements Generator by truncating random UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// RoomToken returns the first 8 characters of a random UUIDv4
func (g *UUIDGenerator) RoomToken() string {
	return uuid.NewString()[:RoomTokenLength]
}
