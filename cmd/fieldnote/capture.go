package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fieldnote/fieldnote/internal/cli"
	"github.com/fieldnote/fieldnote/internal/model"

	"github.com/spf13/cobra"
)

func captureCmd() *cobra.Command {
	var (
		confirm bool
		keep    bool
	)

	cmd := &cobra.Command{
		Use:   "capture <audio-file>",
		Short: "Turn a voice note into a draft record",
		Long: `Send a recorded voice note to the classifier and build a typed draft
record from the result. Use --confirm to persist the draft immediately;
otherwise the draft is printed for review.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read audio file: %w", err)
			}

			eng, store, err := initEngine(true)
			if err != nil {
				return err
			}
			defer store.Close()

			if keep {
				saved, err := eng.SaveAudioBlob(audio)
				if err != nil {
					return err
				}
				fmt.Println(cli.SubtleStyle.Render("saved capture to " + saved))
			}

			draft, err := eng.AnalyzeAudio(ctx, audio)
			if err != nil {
				return err
			}

			printDraft(draft)

			if confirm {
				if err := eng.Confirm(ctx, draft); err != nil {
					return err
				}
				fmt.Println(cli.SuccessStyle.Render("✓ Draft confirmed and saved"))
			} else {
				fmt.Println(cli.SubtleStyle.Render("Draft only. Re-run with --confirm to save."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "persist the draft without review")
	cmd.Flags().BoolVar(&keep, "keep", false, "also save the raw capture to the inbox")

	return cmd
}

func transcribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a voice note locally",
		Long: `Run the local speech model over a WAV capture and print the transcript.
The model binary is downloaded and cached on first use.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read audio file: %w", err)
			}

			eng, store, err := initEngine(false)
			if err != nil {
				return err
			}
			defer store.Close()

			text, err := eng.Transcribe(cmd.Context(), audio)
			if err != nil {
				return err
			}

			fmt.Println(text)
			return nil
		},
	}
}

func printDraft(draft model.Draft) {
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s draft", draft.Kind())))

	out, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", draft)
		return
	}
	fmt.Println(string(out))
}
