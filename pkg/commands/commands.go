package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/ledger/pkg/commands/options"
	"tableflip.dev/ledger/pkg/logger"
	"tableflip.dev/ledger/pkg/store"
)

var (
	output = &options.OutputOptions{}
	lo     = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: base.Wrap80("Track personal finances on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	options.AddLogArgs(cmd, lo)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addAdd(topLevel)
	addList(topLevel)
	addDelete(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// cliLogger logs to stderr, quietly unless --verbose.
func cliLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if lo.Verbose {
		level = zerolog.DebugLevel
	}
	return logger.WithComponent(logger.New(), "cli").Level(level)
}

// loadStore opens the configured store.
func loadStore(log zerolog.Logger) (store.Persistence, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return p, cfg, nil
}
