package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction by id, see list --show-id.",
		Example: `
ledger delete 0b8e3c52-7f0e-4f57-9d0a-2f2b8f0d7e11
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			p, _, err := loadStore(cliLogger())
			if err != nil {
				return err
			}
			tx, err := p.Get(id)
			if err != nil {
				return err
			}
			if err := p.Delete(tx); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(color.Output, "deleted %s %s\n", tx.Payee, tx.Amount.StringFixed(2))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
