// Package bingo implements win detection over a marked board.
package bingo

import "github.com/phrasebingo/phrasebingo-go/internal/model"

// Check scans a board for a completed line. Scan order is the
// tie-break: rows 0..N-1 first, then columns 0..N-1, then the main
// diagonal (index 1), then the anti-diagonal (index 2). The first
// complete line found is the one reported.
//
// Check is pure: it never mutates the board.
func Check(board model.Board) model.BingoResult {
	size := board.Size()

	for row := 0; row < size; row++ {
		if rowComplete(board, row) {
			cells := make([]model.Position, size)
			for col := 0; col < size; col++ {
				cells[col] = model.Position{Row: row, Col: col}
			}
			return model.BingoResult{HasBingo: true, WinningCells: cells, Type: model.WinTypeRow, Index: row}
		}
	}

	for col := 0; col < size; col++ {
		if colComplete(board, col) {
			cells := make([]model.Position, size)
			for row := 0; row < size; row++ {
				cells[row] = model.Position{Row: row, Col: col}
			}
			return model.BingoResult{HasBingo: true, WinningCells: cells, Type: model.WinTypeColumn, Index: col}
		}
	}

	// Main diagonal, top-left to bottom-right
	if diagComplete(board, func(i int) int { return i }) {
		cells := make([]model.Position, size)
		for i := 0; i < size; i++ {
			cells[i] = model.Position{Row: i, Col: i}
		}
		return model.BingoResult{HasBingo: true, WinningCells: cells, Type: model.WinTypeDiagonal, Index: 1}
	}

	// Anti-diagonal, top-right to bottom-left
	if diagComplete(board, func(i int) int { return size - 1 - i }) {
		cells := make([]model.Position, size)
		for i := 0; i < size; i++ {
			cells[i] = model.Position{Row: i, Col: size - 1 - i}
		}
		return model.BingoResult{HasBingo: true, WinningCells: cells, Type: model.WinTypeDiagonal, Index: 2}
	}

	return model.BingoResult{HasBingo: false, WinningCells: []model.Position{}, Type: model.WinTypeNone}
}

func rowComplete(board model.Board, row int) bool {
	for col := range board[row] {
		if !board[row][col].Marked {
			return false
		}
	}
	return true
}

func colComplete(board model.Board, col int) bool {
	for row := range board {
		if !board[row][col].Marked {
			return false
		}
	}
	return true
}

func diagComplete(board model.Board, colFor func(i int) int) bool {
	for i := range board {
		if !board[i][colFor(i)].Marked {
			return false
		}
	}
	return true
}
