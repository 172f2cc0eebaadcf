package tree

import "fmt"

// Icon names the status glyph shown next to a row
type Icon string

const (
	IconNone        Icon = ""
	IconSuccess     Icon = "success"
	IconProgressing Icon = "progressing"
	IconWarning     Icon = "warning"
	IconError       Icon = "error"
	IconSuspended   Icon = "suspended"
	IconCluster     Icon = "cluster"
	IconNamespace   Icon = "namespace"
	IconResource    Icon = "resource"
	IconDoc         Icon = "doc"
	IconLoading     Icon = "loading"
	IconInfo        Icon = "info"
)

var glyphs = map[Icon]string{
	IconSuccess:     "✓",
	IconProgressing: "◐",
	IconWarning:     "⚠",
	IconError:       "✗",
	IconSuspended:   "⏸",
	IconCluster:     "⎈",
	IconNamespace:   "▣",
	IconResource:    "•",
	IconDoc:         "?",
	IconLoading:     "…",
	IconInfo:        "i",
}

// Glyph returns a single-character rendering of the icon ("" for IconNone)
func (i Icon) Glyph() string {
	return glyphs[i]
}

// Aggregate counts the readiness of a node's children.
// Children without readiness tracking count as ready.
type Aggregate struct {
	Total       int
	Ready       int
	Progressing int
}

// Valid is the number of children that are either ready or progressing
func (a Aggregate) Valid() int {
	return a.Ready + a.Progressing
}

// Failed is the number of children in a terminal error state
func (a Aggregate) Failed() int {
	return a.Total - a.Valid()
}

// Icon picks Success, Progressing or Warning for the group
func (a Aggregate) Icon() Icon {
	switch {
	case a.Ready == a.Total:
		return IconSuccess
	case a.Valid() == a.Total:
		return IconProgressing
	default:
		return IconWarning
	}
}

// CountLabel renders "total" when nothing failed, "valid/total" otherwise
func (a Aggregate) CountLabel() string {
	if a.Valid() == a.Total {
		return fmt.Sprintf("%d", a.Total)
	}
	return fmt.Sprintf("%d/%d", a.Valid(), a.Total)
}

// AggregateOf computes the aggregate over a child set
func AggregateOf(children []*Node) Aggregate {
	agg := Aggregate{Total: len(children)}
	for _, c := range children {
		switch {
		case !c.HasReadiness():
			agg.Ready++
		case c.Readiness.Ready:
			agg.Ready++
		case c.Readiness.Progressing:
			agg.Progressing++
		}
	}
	return agg
}

// UpdateLabel recomputes the label, and the icon when withIcons is set.
// Group-like nodes derive both from their loaded children.
func (n *Node) UpdateLabel(withIcons bool) {
	switch n.Kind {
	case KindSource, KindWorkload:
		n.updateResourceLabel(withIcons)
	case KindNamespace, KindGroup:
		n.updateGroupLabel(withIcons)
	default:
		n.Label = n.Name
	}
}

func (n *Node) updateResourceLabel(withIcons bool) {
	n.Label = n.Name
	if !withIcons || n.Readiness == nil {
		return
	}
	switch {
	case n.Readiness.Suspended:
		n.Icon = IconSuspended
	case n.Readiness.Ready:
		n.Icon = IconSuccess
	case n.Readiness.Progressing:
		n.Icon = IconProgressing
	default:
		n.Icon = IconError
	}
}

func (n *Node) updateGroupLabel(withIcons bool) {
	children := n.LoadedChildren()
	if !n.IsLoaded() || len(children) == 0 {
		n.Label = n.Name
		return
	}

	agg := AggregateOf(children)
	if withIcons {
		n.Icon = agg.Icon()
	}

	if n.State == Expanded || agg.Ready == agg.Total {
		n.Label = n.Name
		return
	}
	n.Label = fmt.Sprintf("%s (%s)", n.Name, agg.CountLabel())
}

// UpdateLabelsUp refreshes n and then each ancestor
func UpdateLabelsUp(n *Node, withIcons bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		cur.UpdateLabel(withIcons)
	}
}

// UpdateLabelsDown refreshes every loaded node below n, children first
func UpdateLabelsDown(n *Node, withIcons bool) {
	for _, c := range n.LoadedChildren() {
		UpdateLabelsDown(c, withIcons)
	}
	n.UpdateLabel(withIcons)
}
