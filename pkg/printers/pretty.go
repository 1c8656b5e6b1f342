package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"

	"tableflip.dev/ledger/pkg/transaction"
	"tableflip.dev/ledger/pkg/viewmodel"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

// Terminal reports whether f is an interactive terminal.
func Terminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DisableColorUnlessTerminal turns colour off when f is redirected or the
// environment asks for no colour (NO_COLOR, CLICOLOR=0).
func DisableColorUnlessTerminal(f *os.File) {
	if !Terminal(f) || termenv.EnvNoColor() {
		color.NoColor = true
	}
}

// Writer is where pp prints.
func (pp *PrettyPrint) Writer() io.Writer {
	return pp.out()
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " transaction")
	default:
		_, _ = c.Fprintln(pp.out(), " transactions")
	}
}

// Transactions prints one row per transaction, amounts coloured by sign.
func (pp *PrettyPrint) Transactions(txs ...*transaction.Transaction) {
	if len(txs) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "

	for _, tx := range txs {
		date, payee, category, _ := tx.Row()
		mark := " "
		if tx.Cleared {
			mark = "*"
		}
		row := []interface{}{date, mark, payee, category, Amount(tx.Amount)}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(tx.ID.String())}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Categories prints the category tree with counts and totals.
func (pp *PrettyPrint) Categories(roots []*viewmodel.CategoryNode) {
	if len(roots) == 0 {
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Category"), bold.Sprint("Count"), bold.Sprint("Total"))
	for _, node := range viewmodel.Flatten(roots) {
		tbl.AddRow(strings.Repeat("  ", node.Depth)+node.Name, node.Count, Amount(node.Total))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Balance prints the running total line.
func (pp *PrettyPrint) Balance(total decimal.Decimal) {
	_, _ = color.New(color.Bold).Fprint(pp.out(), "Balance ")
	_, _ = fmt.Fprintln(pp.out(), Amount(total))
}

// Amount formats d with two decimals, red when negative.
func Amount(d decimal.Decimal) string {
	text := d.StringFixed(2)
	if d.IsNegative() {
		return color.New(color.FgRed).Sprint(text)
	}
	return color.New(color.FgGreen).Sprint(text)
}
