package mocks

import (
	"fmt"

	"github.com/phrasebingo/phrasebingo-go/internal/dependencies/ids"
)

// MockIDs is a mock implementation of the ID generator for testing
type MockIDs struct {
	// Tokens is a queue of results to return from RoomToken
	Tokens []string
	index  int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs(tokens ...string) *MockIDs {
	return &MockIDs{Tokens: tokens}
}

// RoomToken returns the next queued token, or a sequential fallback
// when the queue is exhausted
func (m *MockIDs) RoomToken() string {
	if m.index >= len(m.Tokens) {
		m.index++
		return fmt.Sprintf("room%04d", m.index)
	}
	token := m.Tokens[m.index]
	m.index++
	return token
}

// QueueTokens adds values to the token queue
func (m *MockIDs) QueueTokens(tokens ...string) {
	m.Tokens = append(m.Tokens, tokens...)
}
