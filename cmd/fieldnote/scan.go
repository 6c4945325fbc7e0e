package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/fieldnote/fieldnote/internal/cli"
	"github.com/fieldnote/fieldnote/internal/model"

	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	var (
		confirm bool
		keep    bool
	)

	cmd := &cobra.Command{
		Use:   "scan <image-file>",
		Short: "Turn a receipt photo into an expense draft",
		Long: `Send a receipt photo to the classifier and build an expense draft from
the result. A photo that isn't a receipt fails with the classifier's
message. Use --confirm to persist the draft immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image file: %w", err)
			}
			payload := base64.StdEncoding.EncodeToString(image)

			eng, store, err := initEngine(true)
			if err != nil {
				return err
			}
			defer store.Close()

			var savedPath string
			if keep {
				savedPath, err = eng.SaveImage(payload)
				if err != nil {
					return err
				}
				fmt.Println(cli.SubtleStyle.Render("saved receipt to " + savedPath))
			}

			draft, err := eng.AnalyzeImage(ctx, payload)
			if err != nil {
				return err
			}

			if exp, ok := draft.(*model.Expense); ok && savedPath != "" {
				exp.ImagePath = &savedPath
			}

			printDraft(draft)

			if confirm {
				if exp, ok := draft.(*model.Expense); ok {
					if err := eng.ConfirmExpense(ctx, exp); err != nil {
						return err
					}
					fmt.Println(cli.SuccessStyle.Render("✓ Expense confirmed and saved"))
					return nil
				}
				return eng.Confirm(ctx, draft)
			}

			fmt.Println(cli.SubtleStyle.Render("Draft only. Re-run with --confirm to save."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "persist the draft without review")
	cmd.Flags().BoolVar(&keep, "keep", false, "also save the receipt image")

	return cmd
}
