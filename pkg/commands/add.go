package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ledger/pkg/commands/options"
	"tableflip.dev/ledger/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TransactionOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add <amount> <payee...>",
		Short: "Record a transaction. Negative amounts are expenses.",
		Example: `
ledger add -- -12,50 corner shop -c food/groceries
ledger add 2500 employer -c income --on 2024-02-28 --cleared
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("expected an amount and a payee")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cliLogger()
			p, _, err := loadStore(log)
			if err != nil {
				return oo.HandleError(err)
			}
			a := add.Add{
				Date:        to.Date,
				Payee:       strings.Join(args[1:], " "),
				Category:    to.Category,
				Amount:      args[0],
				Cleared:     to.Cleared,
				Note:        to.Note,
				Quiet:       oo.JSON,
				Persistence: p,
			}
			if err := a.Do(context.Background()); err != nil {
				return oo.HandleError(err)
			}
			log.Debug().Stringer("id", a.Added.ID).Msg("added transaction")
			if oo.JSON {
				return oo.Print(a.Added)
			}
			return nil
		},
	}

	options.AddTransactionArgs(cmd, to)
	options.AddOutputArg(cmd, oo)
	_ = cmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return categoryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
