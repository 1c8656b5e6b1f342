package options

import (
	"github.com/spf13/cobra"
)

// TransactionOptions
type TransactionOptions struct {
	Date     string
	Category string
	Cleared  bool
	Note     string
}

func AddTransactionArgs(cmd *cobra.Command, o *TransactionOptions) {
	cmd.Flags().StringVar(&o.Date, "on", "",
		`Date of the transaction, defaults to today, example: --on="2024-02-28".`)
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		`Category, "/" separates subcategories, example: -c food/groceries.`)
	cmd.Flags().BoolVar(&o.Cleared, "cleared", false,
		"Mark the transaction as cleared.")
	cmd.Flags().StringVarP(&o.Note, "note", "n", "",
		"Free text note.")
}
