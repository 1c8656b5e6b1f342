package viewmodel

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"tableflip.dev/ledger/pkg/transaction"
)

// CategoryNode is one level of the "/" separated category hierarchy with the
// totals of everything filed under it.
type CategoryNode struct {
	ID       string
	Name     string
	ParentID string
	Depth    int

	Count int
	Total decimal.Decimal

	Children []*CategoryNode
}

// TreeOption customises BuildCategoryTree behaviour.
type TreeOption func(*buildOptions)

// WithPriorities pins categories ahead of the alphabetical order; lower
// values sort first.
func WithPriorities(m map[string]int) TreeOption {
	return func(opts *buildOptions) {
		if len(m) == 0 {
			return
		}
		opts.priorities = make(map[string]int, len(m))
		for k, v := range m {
			opts.priorities[strings.TrimSpace(k)] = v
		}
	}
}

type buildOptions struct {
	priorities map[string]int
}

// BuildCategoryTree groups txs by category. "Food/Groceries" counts towards
// both "Food/Groceries" and its parent "Food".
func BuildCategoryTree(txs []*transaction.Transaction, opts ...TreeOption) []*CategoryNode {
	if len(txs) == 0 {
		return nil
	}
	config := &buildOptions{}
	for _, opt := range opts {
		opt(config)
	}

	nodes := make(map[string]*CategoryNode)
	var ensure func(id string) *CategoryNode
	ensure = func(id string) *CategoryNode {
		if node, ok := nodes[id]; ok {
			return node
		}
		parts := strings.Split(id, "/")
		node := &CategoryNode{
			ID:    id,
			Name:  parts[len(parts)-1],
			Depth: len(parts) - 1,
			Total: decimal.Zero,
		}
		if len(parts) > 1 {
			node.ParentID = strings.Join(parts[:len(parts)-1], "/")
			parent := ensure(node.ParentID)
			parent.Children = append(parent.Children, node)
		}
		nodes[id] = node
		return node
	}

	for _, tx := range txs {
		id := cleanCategory(tx.CategoryName())
		for node := ensure(id); node != nil; node = nodes[node.ParentID] {
			node.Count++
			node.Total = node.Total.Add(tx.Amount)
		}
	}

	var roots []*CategoryNode
	for _, node := range nodes {
		if node.ParentID == "" {
			roots = append(roots, node)
		}
	}
	sortCategories(roots, config)
	return roots
}

// Flatten lists nodes depth first, parents before children.
func Flatten(roots []*CategoryNode) []*CategoryNode {
	var out []*CategoryNode
	var walk func([]*CategoryNode)
	walk = func(nodes []*CategoryNode) {
		for _, node := range nodes {
			out = append(out, node)
			walk(node.Children)
		}
	}
	walk(roots)
	return out
}

func cleanCategory(name string) string {
	parts := strings.Split(name, "/")
	kept := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	if len(kept) == 0 {
		return transaction.Uncategorized
	}
	return strings.Join(kept, "/")
}

func sortCategories(nodes []*CategoryNode, opts *buildOptions) {
	priority := func(n *CategoryNode) int {
		if p, ok := opts.priorities[n.ID]; ok {
			return p
		}
		return 100
	}
	sort.Slice(nodes, func(i, j int) bool {
		pi, pj := priority(nodes[i]), priority(nodes[j])
		if pi != pj {
			return pi < pj
		}
		ki, kj := strings.ToLower(nodes[i].Name), strings.ToLower(nodes[j].Name)
		if ki != kj {
			return ki < kj
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, node := range nodes {
		sortCategories(node.Children, opts)
	}
}
