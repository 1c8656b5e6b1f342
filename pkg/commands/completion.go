package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(ledger completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(ledger completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func categoryCompletions(toComplete string) []string {
	p, _, err := loadStore(zerolog.Nop())
	if err != nil {
		return nil
	}
	var cs []string
	for _, c := range p.Categories(context.Background()) {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(toComplete)) {
			cs = append(cs, strconv.Quote(c))
		}
	}
	return cs
}
