package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fieldnote/fieldnote/internal/cli"

	"github.com/spf13/cobra"
)

func activityCmd() *cobra.Command {
	var showSummary bool

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent confirmed records",
		Long: `Display the five most recent confirmed invoices and expenses,
newest first, along with a financial summary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, store, err := initEngine(false)
			if err != nil {
				return err
			}
			defer store.Close()

			if showSummary {
				summary, err := eng.SummarizeFinances(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to summarize finances: %w", err)
				}
				fmt.Println(cli.TitleStyle.Render("Financial Summary"))
				fmt.Printf("  Revenue:  $%.2f\n", summary.Revenue)
				fmt.Printf("  Expenses: $%.2f\n", summary.Expenses)
				profit := fmt.Sprintf("  Profit:   $%.2f", summary.Profit)
				if summary.Profit < 0 {
					fmt.Println(cli.ErrorStyle.Render(profit))
				} else {
					fmt.Println(cli.SuccessStyle.Render(profit))
				}
				fmt.Println()
			}

			items, err := eng.RecentActivity(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load activity: %w", err)
			}
			if len(items) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No confirmed records yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Date"))
			for _, item := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%s\n",
					item.ID, item.Intent, item.Description, item.Amount, item.Date)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSummary, "summary", true, "Include the financial summary")

	return cmd
}
