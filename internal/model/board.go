package model

// FreeCellText is the sentinel text for the pre-marked center cell of a 5x5 board
const FreeCellText = "FREE"

// Position identifies a cell on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Cell is one board position: display text plus its marked state
type Cell struct {
	Text   string `json:"text"`
	Marked bool   `json:"marked"`
}

// Board is a player's N x N grid, row-major: Board[row][col]
type Board [][]Cell

// Size returns the grid dimension
func (b Board) Size() int {
	return len(b)
}

// IsValidPosition returns true if the position is within bounds
func (b Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < len(b) && pos.Col >= 0 && pos.Col < len(b)
}

// Toggle flips the marked state of the cell at the given position and
// returns the new state. Out-of-bounds positions are a no-op.
func (b Board) Toggle(pos Position) bool {
	if !b.IsValidPosition(pos) {
		return false
	}
	b[pos.Row][pos.Col].Marked = !b[pos.Row][pos.Col].Marked
	return b[pos.Row][pos.Col].Marked
}

// WinType classifies a completed line
type WinType string

const (
	WinTypeRow      WinType = "row"
	WinTypeColumn   WinType = "column"
	WinTypeDiagonal WinType = "diagonal"
	WinTypeNone     WinType = "none"
)

// BingoResult is the outcome of scanning a board for a completed line.
// Index is the row/column number for line wins, 1 for the main diagonal
// and 2 for the anti-diagonal.
type BingoResult struct {
	HasBingo     bool       `json:"has_bingo"`
	WinningCells []Position `json:"winning_cells"`
	Type         WinType    `json:"type"`
	Index        int        `json:"index"`
}
