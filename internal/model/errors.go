package model

import "errors"

// Common errors used across the application
var (
	// Input errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidUsername = errors.New("invalid username")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")

	// Player errors
	ErrPlayerNotFound = errors.New("player data not found")
	ErrOutOfBounds    = errors.New("cell position out of bounds")

	// Phrase pool errors
	ErrPhrasePoolNotFound = errors.New("phrase pool not initialized")
)
