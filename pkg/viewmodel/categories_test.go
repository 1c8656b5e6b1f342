package viewmodel

import (
	"testing"

	"tableflip.dev/ledger/pkg/transaction"
)

func TestBuildCategoryTree(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("2024-03-01", "Landlord", "Rent", "-900"),
		tx("2024-03-02", "Grocer", "Food/Groceries", "-40"),
		tx("2024-03-03", "Cafe", "Food/Coffee", "-4"),
		tx("2024-03-04", "Cafe", " Food / Coffee ", "-3"),
		tx("2024-03-05", "Gift", "", "25"),
	}

	roots := BuildCategoryTree(txs, WithPriorities(map[string]int{"Rent": 1}))
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(roots))
	}
	if roots[0].ID != "Rent" || roots[1].ID != "Food" || roots[2].ID != transaction.Uncategorized {
		t.Fatalf("unexpected root order %s,%s,%s", roots[0].ID, roots[1].ID, roots[2].ID)
	}

	food := roots[1]
	if food.Count != 3 || food.Total.StringFixed(2) != "-47.00" {
		t.Fatalf("unexpected food totals %d %s", food.Count, food.Total)
	}
	if len(food.Children) != 2 || food.Children[0].Name != "Coffee" {
		t.Fatalf("unexpected children %v", food.Children)
	}
	coffee := food.Children[0]
	if coffee.ID != "Food/Coffee" || coffee.ParentID != "Food" || coffee.Depth != 1 || coffee.Count != 2 {
		t.Fatalf("unexpected coffee node %+v", coffee)
	}

	flat := Flatten(roots)
	if len(flat) != 5 || flat[2].ID != "Food/Coffee" {
		t.Fatalf("unexpected flatten order")
	}
	if BuildCategoryTree(nil) != nil {
		t.Fatalf("empty input should give no tree")
	}
}
