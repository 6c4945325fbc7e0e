package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fieldnote/fieldnote/internal/cli"
	"github.com/fieldnote/fieldnote/internal/model"

	"github.com/spf13/cobra"
)

func contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage the contact directory",
	}

	cmd.AddCommand(contactsListCmd())
	cmd.AddCommand(contactsAddCmd())

	return cmd
}

func contactsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all contacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := initStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			contacts, err := store.ListContacts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}
			if len(contacts) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No contacts yet. Use 'fieldnote contacts add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Phone"),
				cli.HeaderStyle.Render("Company"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 14), strings.Repeat("-", 20),
				strings.Repeat("-", 14), strings.Repeat("-", 20))

			for _, c := range contacts {
				company := ""
				if c.Company != nil {
					company = *c.Company
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, company)
			}
			return nil
		},
	}
}

func contactsAddCmd() *cobra.Command {
	var phone, company string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a contact directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := initStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			contact := newContact(args[0], phone, company, time.Now())
			if err := store.SaveContact(cmd.Context(), contact); err != nil {
				return fmt.Errorf("failed to save contact: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added %s (%s)", contact.Name, contact.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	cmd.Flags().StringVar(&company, "company", "", "Contact company")

	return cmd
}

// newContact builds a directly-entered contact. CreatedAt uses RFC 3339,
// the same format capture-derived contacts carry.
func newContact(name, phone, company string, now time.Time) *model.Contact {
	contact := &model.Contact{
		ID:        model.NewIDAt(model.IntentContact, now),
		Name:      name,
		Phone:     phone,
		CreatedAt: now.Format(time.RFC3339),
	}
	if company != "" {
		contact.Company = &company
	}
	return contact
}
