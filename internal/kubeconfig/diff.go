package kubeconfig

import "bytes"

// Changes describes what differs between two snapshots
type Changes struct {
	TextChanged           bool
	ContextsListChanged   bool
	CurrentContextChanged bool
}

// Any reports whether any flag is set
func (c Changes) Any() bool {
	return c.TextChanged || c.ContextsListChanged || c.CurrentContextChanged
}

// Diff compares two snapshots. A nil snapshot is treated as empty.
//
// The current context counts as changed when its name differs, and also when
// the old current context existed but has been removed from the new list.
func Diff(old, new *Snapshot) Changes {
	if old == nil {
		old = Empty()
	}
	if new == nil {
		new = Empty()
	}

	return Changes{
		TextChanged:           !bytes.Equal(old.raw, new.raw),
		ContextsListChanged:   contextsDiffer(old, new),
		CurrentContextChanged: old.current != new.current || (old.HasContext(old.current) && !new.HasContext(old.current)),
	}
}

func contextsDiffer(old, new *Snapshot) bool {
	if len(old.contexts) != len(new.contexts) {
		return true
	}
	for _, o := range old.contexts {
		n, ok := new.Context(o.Name)
		if !ok || n.Cluster != o.Cluster || n.User != o.User {
			return true
		}
	}
	return false
}
