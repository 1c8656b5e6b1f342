package options

import (
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Verbose bool
	File    string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug detail.")
	cmd.PersistentFlags().StringVar(&o.File, "log-file", "",
		"Append logs to this file. The interactive UI logs nowhere without it.")
}
