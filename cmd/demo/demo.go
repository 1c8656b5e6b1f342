package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tableflip.dev/ledger/pkg/logger"
	"tableflip.dev/ledger/pkg/store"
	"tableflip.dev/ledger/pkg/transaction"
)

type sample struct {
	daysAgo  int
	payee    string
	category string
	amount   string
	cleared  bool
}

var samples = []sample{
	{0, "Corner Shop", "Food/Groceries", "-12.40", false},
	{1, "Employer", "Income/Salary", "2500", true},
	{2, "Landlord", "Housing/Rent", "-900", true},
	{3, "Power Co", "Housing/Utilities", "-64.15", true},
	{5, "Noodle Bar", "Food/Eating Out", "-18.90", false},
	{8, "Bookshop", "Leisure", "-24.99", true},
	{13, "Pharmacy", "Health", "-7.35", true},
	{21, "Side Gig", "Income/Freelance", "340", false},
	{34, "Bike Repair", "Transport", "-45", true},
}

// Seeds the configured store with a few weeks of sample transactions.
func main() {
	log := logger.New()
	cfg, err := store.LoadConfig()
	if err != nil {
		panic(err)
	}
	p, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		panic(err)
	}

	today := time.Now()
	for _, s := range samples {
		tx := transaction.New(today.AddDate(0, 0, -s.daysAgo), s.payee, s.category, decimal.RequireFromString(s.amount))
		tx.Cleared = s.cleared
		if err := p.Store(tx); err != nil {
			panic(err)
		}
	}
	fmt.Printf("stored %d transactions in %s\n", len(samples), cfg.BasePath())
}
