package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
	"github.com/phrasebingo/phrasebingo-go/internal/ws"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomMarkCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var phrasesFile string

	cmd := &cobra.Command{
		Use:   "create [phrase]...",
		Short: "Create a new room from a list of phrases",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Username == "" {
				return errors.New("a display name is required (--username or BINGO_USERNAME)")
			}

			phrases := args
			if phrasesFile != "" {
				fromFile, err := readPhrasesFile(phrasesFile)
				if err != nil {
					return err
				}
				phrases = append(phrases, fromFile...)
			}

			client, err := dial()
			if err != nil {
				return err
			}
			defer client.Close()

			err = client.Send(ws.EventCreateRoom, ws.CreateRoomRequest{
				Username: cfg.Username,
				Phrases:  phrases,
			})
			if err != nil {
				return err
			}

			data, err := client.Await(ws.EventRoomCreated, saveSessionToken)
			if err != nil {
				return err
			}

			var result ws.RoomCreatedPayload
			if err := json.Unmarshal(data, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&phrasesFile, "phrases-file", "", "File with one phrase per line")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <room_id>",
		Short: "Join a room and show your board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Username == "" {
				return errors.New("a display name is required (--username or BINGO_USERNAME)")
			}

			client, err := dial()
			if err != nil {
				return err
			}
			defer client.Close()

			err = client.Send(ws.EventJoinRoom, ws.JoinRoomRequest{
				Username: cfg.Username,
				RoomID:   model.RoomID(args[0]),
			})
			if err != nil {
				return err
			}

			data, err := client.Await(ws.EventRoomJoined, saveSessionToken)
			if err != nil {
				return err
			}

			var result ws.RoomJoinedPayload
			if err := json.Unmarshal(data, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomMarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <room_id> <row> <col>",
		Short: "Toggle a cell on your board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid row: %s", args[1])
			}
			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid col: %s", args[2])
			}

			client, err := dial()
			if err != nil {
				return err
			}
			defer client.Close()

			// Joining first binds this connection to the room and its
			// session identity
			err = client.Send(ws.EventJoinRoom, ws.JoinRoomRequest{
				Username: cfg.Username,
				RoomID:   model.RoomID(args[0]),
			})
			if err != nil {
				return err
			}
			if _, err := client.Await(ws.EventRoomJoined, saveSessionToken); err != nil {
				return err
			}

			err = client.Send(ws.EventMarkCell, ws.MarkCellRequest{
				RoomID: model.RoomID(args[0]),
				Row:    &row,
				Col:    &col,
			})
			if err != nil {
				return err
			}

			data, err := client.Await(ws.EventCellMarked, nil)
			if err != nil {
				return err
			}

			var result ws.CellMarkedPayload
			if err := json.Unmarshal(data, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)

			// A winning mark is announced right after the toggle
			bingoData, err := client.TryAwait(ws.EventPlayerBingo, 500*time.Millisecond)
			if err != nil || bingoData == nil {
				return nil
			}

			var bingo ws.PlayerBingoPayload
			if err := json.Unmarshal(bingoData, &bingo); err == nil {
				out.Print(bingo)
			}
			return nil
		},
	}
}

func readPhrasesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read phrases file: %w", err)
	}

	var phrases []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			phrases = append(phrases, line)
		}
	}
	return phrases, nil
}
