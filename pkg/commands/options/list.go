package options

import (
	"github.com/spf13/cobra"
)

// ListOptions
type ListOptions struct {
	Category string
	Page     int
	PageSize int
	Tree     bool
	Since    string
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Only show this category and its subcategories.")
	cmd.Flags().IntVarP(&o.Page, "page", "p", 1,
		"Page to show.")
	cmd.Flags().IntVar(&o.PageSize, "page-size", 0,
		"Transactions per page, defaults to the configured page_size.")
	cmd.Flags().BoolVar(&o.Tree, "tree", false,
		"Also show totals per category.")
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only show the trailing window, example: --since 30d, 2w or 1y6mo.`)
}
