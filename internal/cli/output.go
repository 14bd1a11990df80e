package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
	"github.com/phrasebingo/phrasebingo-go/internal/ws"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case ws.RoomCreatedPayload:
		fmt.Printf("Room created: %s\n", v.RoomID)
	case ws.RoomJoinedPayload:
		o.printRoomJoined(v)
	case ws.CellMarkedPayload:
		o.printCellMarked(v)
	case ws.PlayerBingoPayload:
		o.printPlayerBingo(v)
	case ws.PhrasesSavedPayload:
		fmt.Printf("Phrase pool now holds %d phrases\n", v.Count)
	case ws.SavedPhrasesPayload:
		o.printSavedPhrases(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printRoomJoined(r ws.RoomJoinedPayload) {
	fmt.Printf("Room: %s\n", r.RoomID)
	fmt.Printf("Creator: %s\n", r.Creator)
	fmt.Printf("Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		fmt.Printf("  - %s\n", p)
	}
	if r.HasBingo {
		fmt.Println("You already have bingo!")
	}
	fmt.Println("\nYour Board:")
	o.printBoard(r.Board)
}

func (o *Output) printCellMarked(c ws.CellMarkedPayload) {
	state := "unmarked"
	if c.Marked {
		state = "marked"
	}
	fmt.Printf("%s %s (%d, %d)\n", c.Username, state, c.Row, c.Col)
}

func (o *Output) printPlayerBingo(b ws.PlayerBingoPayload) {
	fmt.Printf("BINGO! %s wins with %s %d\n", b.Username, b.WinningType, b.WinningIndex)
	o.printBoard(b.Board)
}

func (o *Output) printSavedPhrases(s ws.SavedPhrasesPayload) {
	fmt.Printf("Saved phrases (%d):\n", len(s.Phrases))
	for _, p := range s.Phrases {
		fmt.Printf("  - %s\n", p)
	}
}

func (o *Output) printBoard(b model.Board) {
	for _, row := range b {
		for _, cell := range row {
			mark := " "
			if cell.Marked {
				mark = "x"
			}
			fmt.Printf("[%s] %-24s", mark, truncate(cell.Text, 24))
		}
		fmt.Println()
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
