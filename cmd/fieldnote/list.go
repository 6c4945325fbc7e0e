package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fieldnote/fieldnote/internal/cli"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persisted records",
		Long:  `Display persisted invoices, tasks, or expenses, most recent first.`,
	}

	cmd.AddCommand(listInvoicesCmd())
	cmd.AddCommand(listTasksCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(listRecordingsCmd())

	return cmd
}

func listInvoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invoices",
		Short: "List all invoices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := initStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			invoices, err := store.ListInvoices(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list invoices: %w", err)
			}
			if len(invoices) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No invoices yet. Use 'fieldnote capture' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Client"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Status"),
				cli.HeaderStyle.Render("Description"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 14), strings.Repeat("-", 16), strings.Repeat("-", 10),
				strings.Repeat("-", 10), strings.Repeat("-", 30))

			for _, inv := range invoices {
				fmt.Fprintf(w, "%s\t%s\t$%.2f\t%s\t%s\n",
					inv.ID, inv.Client, inv.Amount, inv.Status, inv.Description)
			}
			return nil
		},
	}
}

func listTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List all tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := initStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			tasks, err := store.ListTasks(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}
			if len(tasks) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No tasks yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Status"),
				cli.HeaderStyle.Render("Due"))
			for _, task := range tasks {
				due := ""
				if task.DueDate != nil {
					due = *task.DueDate
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", task.ID, task.Description, task.Status, due)
			}
			return nil
		},
	}
}

func listRecordingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recordings",
		Short: "List saved voice captures in the inbox",
		RunE: func(_ *cobra.Command, _ []string) error {
			eng, store, err := initEngine(false)
			if err != nil {
				return err
			}
			defer store.Close()

			recordings, err := eng.ListRecordings()
			if err != nil {
				return fmt.Errorf("failed to list recordings: %w", err)
			}
			if len(recordings) == 0 {
				fmt.Println(cli.SubtleStyle.Render("Inbox is empty."))
				return nil
			}
			for _, rec := range recordings {
				fmt.Println(rec)
			}
			return nil
		},
	}
}

func listExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expenses",
		Short: "List all expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := initStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := store.ListExpenses(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}
			if len(expenses) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No expenses yet. Use 'fieldnote scan' to capture a receipt."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Merchant"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Status"))
			for _, exp := range expenses {
				fmt.Fprintf(w, "%s\t%s\t$%.2f\t%s\t%s\t%s\n",
					exp.ID, exp.Merchant, exp.Amount, exp.Category, exp.Date, exp.Status)
			}
			return nil
		},
	}
}
