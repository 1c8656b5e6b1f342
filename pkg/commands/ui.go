package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tableflip.dev/ledger/pkg/logger"
	"tableflip.dev/ledger/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
ledger ui
ledger ui --log-file /tmp/ledger.log -v
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen owns the terminal, so logs only go to a file.
			log := zerolog.Nop()
			if lo.File != "" {
				l, closer, err := logger.NewFile(lo.File)
				if err != nil {
					return err
				}
				defer closer.Close()
				level := zerolog.InfoLevel
				if lo.Verbose {
					level = zerolog.DebugLevel
				}
				log = logger.WithComponent(l, "ui").Level(level)
			}
			p, cfg, err := loadStore(log)
			if err != nil {
				return err
			}
			i := ui.UI{Persistence: p, Config: cfg, Log: log}
			return i.Do(logger.WithContext(context.Background(), log))
		},
	}

	topLevel.AddCommand(cmd)
}
