package views

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/renato0307/fluxtree/internal/tree"
)

// Row is one visible line of a flattened tree
type Row struct {
	Node  *tree.Node
	Depth int
}

// Flatten lists the visible rows: roots plus the loaded children of every
// expanded node, depth first
func Flatten(roots []*tree.Node) []Row {
	var rows []Row
	var walk func(nodes []*tree.Node, depth int)
	walk = func(nodes []*tree.Node, depth int) {
		for _, n := range nodes {
			rows = append(rows, Row{Node: n, Depth: depth})
			if n.State == tree.Expanded {
				walk(n.LoadedChildren(), depth+1)
			}
		}
	}
	walk(roots, 0)
	return rows
}

// searchText is what the filter matches against
func searchText(n *tree.Node) string {
	parts := []string{n.Name}
	if n.Namespace != "" && n.Namespace != n.Name {
		parts = append(parts, n.Namespace)
	}
	if n.ResourceKind != "" {
		parts = append(parts, n.ResourceKind)
	}
	return strings.Join(parts, " ")
}

// FilterRows keeps rows fuzzy-matching query, best match first. A query
// starting with "!" keeps the rows that do not match, in tree order.
func FilterRows(rows []Row, query string) []Row {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}

	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = searchText(r.Node)
	}

	if negated, ok := strings.CutPrefix(query, "!"); ok {
		if negated == "" {
			return rows
		}
		excluded := make(map[int]bool)
		for _, m := range fuzzy.Find(negated, texts) {
			excluded[m.Index] = true
		}
		out := make([]Row, 0, len(rows)-len(excluded))
		for i, r := range rows {
			if !excluded[i] {
				out = append(out, r)
			}
		}
		return out
	}

	matches := fuzzy.Find(query, texts)
	out := make([]Row, 0, len(matches))
	for _, m := range matches {
		out = append(out, Row{Node: rows[m.Index].Node, Depth: 0})
	}
	return out
}

// LoadAll resolves children down to maxDepth levels below roots, for
// callers that need the whole tree at once (printing, filtering)
func LoadAll(ctx context.Context, p Provider, roots []*tree.Node, maxDepth int, withIcons bool) {
	if maxDepth <= 0 {
		return
	}
	for _, n := range roots {
		if n.State == tree.CollapsibleNone {
			continue
		}
		children, err := p.Children(ctx, n)
		if err != nil {
			continue
		}
		Relabel(n, withIcons)
		LoadAll(ctx, p, children, maxDepth-1, withIcons)
	}
}
