package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/phrasebingo/phrasebingo-go/internal/ws"
)

func newPhrasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phrases",
		Short: "Shared phrase pool commands",
	}

	cmd.AddCommand(newPhrasesSaveCmd())
	cmd.AddCommand(newPhrasesListCmd())

	return cmd
}

func newPhrasesSaveCmd() *cobra.Command {
	var phrasesFile string

	cmd := &cobra.Command{
		Use:   "save [phrase]...",
		Short: "Merge phrases into the shared pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			phrases := args
			if phrasesFile != "" {
				fromFile, err := readPhrasesFile(phrasesFile)
				if err != nil {
					return err
				}
				phrases = append(phrases, fromFile...)
			}
			if len(phrases) == 0 {
				return errors.New("no phrases given")
			}

			client, err := dial()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Send(ws.EventSavePhrases, ws.SavePhrasesRequest{Phrases: phrases}); err != nil {
				return err
			}

			data, err := client.Await(ws.EventPhrasesSaved, saveSessionToken)
			if err != nil {
				return err
			}

			var result ws.PhrasesSavedPayload
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

func newPhrasesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the shared phrase pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dial()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Send(ws.EventGetSavedPhrases, struct{}{}); err != nil {
				return err
			}

			data, err := client.Await(ws.EventSavedPhrases, saveSessionToken)
			if err != nil {
				return err
			}

			var result ws.SavedPhrasesPayload
			if err := json.Unmarshal(data, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
