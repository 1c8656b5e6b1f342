package commands

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/ledger/pkg/commands/options"
	"tableflip.dev/ledger/pkg/printers"
	"tableflip.dev/ledger/pkg/runner/list"
	"tableflip.dev/ledger/pkg/timeutil"
)

func addList(topLevel *cobra.Command) {
	lso := &options.ListOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list [filter...]",
		Aliases: []string{"ls"},
		Short:   "List transactions newest first, one page at a time.",
		Example: `
ledger list
ledger list groceries --page 2
ledger list -c food --tree
ledger list --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cliLogger()
			p, cfg, err := loadStore(log)
			if err != nil {
				return output.HandleError(err)
			}
			l := list.List{
				Category:    lso.Category,
				Filter:      strings.Join(args, " "),
				Page:        lso.Page,
				PageSize:    lso.PageSize,
				Tree:        lso.Tree,
				Persistence: p,
				Printer:     &printers.PrettyPrint{ShowID: io.ShowID},
			}
			if lso.Since != "" {
				w, err := timeutil.ParseWindow(lso.Since)
				if err != nil {
					return output.HandleError(err)
				}
				l.Since = w.Start(time.Now())
			}
			if l.PageSize <= 0 {
				l.PageSize = cfg.PageSize()
			}
			if output.JSON {
				res, _, err := l.Select(context.Background())
				if err != nil {
					return output.HandleError(err)
				}
				return output.Print(res)
			}
			printers.DisableColorUnlessTerminal(os.Stdout)
			return output.HandleError(l.Do(context.Background()))
		},
	}

	options.AddListArgs(cmd, lso)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return categoryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
