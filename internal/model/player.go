package model

// PlayerState is one player's board and win status within one room.
// It is identified by the (name, room ID) pair; the same display name
// holds an independent state in every room it joins.
//
// HasBingo is sticky: once a player achieves bingo the flag stays set
// even if later toggles break the winning line.
type PlayerState struct {
	Board        Board      `json:"board"`
	HasBingo     bool       `json:"has_bingo"`
	WinningCells []Position `json:"winning_cells,omitempty"`
}
