package views

import (
	"context"
	"fmt"
	"sort"

	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/resources"
	"github.com/renato0307/fluxtree/internal/tree"
)

// currentCluster resolves the current context to a Flux-enabled cluster.
// When that is not possible it returns a message node saying why, and
// records reachability on the config state.
func (e Env) currentCluster() (*k8s.PoolEntry, *tree.Node) {
	snap := e.Config.Snapshot()
	name := snap.CurrentContext()
	if !snap.HasContext(name) {
		return nil, tree.NewMessage("No current context selected", tree.IconInfo)
	}

	e.Pool.SetActive(name)
	entry, err := e.Pool.Get(name)
	if err != nil {
		e.Config.MarkCluster(false, false)
		return nil, tree.NewMessage(fmt.Sprintf("Cannot reach %s: %v", name, err), tree.IconError)
	}

	if err := ensureKinds(entry); err != nil {
		e.Config.MarkCluster(true, false)
		return nil, tree.NewMessage(fmt.Sprintf("Cannot discover APIs on %s: %v", name, err), tree.IconError)
	}

	gitops := entry.Kinds.GitOpsEnabled()
	e.Config.MarkCluster(true, gitops)
	if !gitops {
		return nil, tree.NewMessage("Flux is not installed on "+name, tree.IconWarning)
	}
	return entry, nil
}

func ensureKinds(entry *k8s.PoolEntry) error {
	if entry.Kinds.Len() > 0 {
		return nil
	}
	return entry.Kinds.Reload(entry.Client)
}

// listKinds lists every served kind of the given set across all namespaces.
// A kind that fails to list (RBAC, version skew) is skipped.
func listKinds(ctx context.Context, entry *k8s.PoolEntry, kinds []resources.Kind) []*tree.Node {
	var nodes []*tree.Node
	for _, kind := range kinds {
		if !entry.Kinds.ServesKind(kind) {
			continue
		}
		items, err := entry.Client.ListKind(ctx, entry.Kinds, kind, "")
		if err != nil {
			logging.Warn("failed to list kind", "kind", kind, "context", entry.Client.Context(), "error", err)
			continue
		}
		nodes = append(nodes, resources.ConstructAll(items)...)
	}
	return nodes
}

// groupByNamespace puts nodes under one namespace node each, sorted by
// namespace, and computes the namespace aggregates
func groupByNamespace(nodes []*tree.Node, withIcons bool) []*tree.Node {
	byNamespace := make(map[string]*tree.Node)
	for _, n := range nodes {
		ns, ok := byNamespace[n.Namespace]
		if !ok {
			ns = tree.New(tree.KindNamespace, n.Namespace)
			ns.Namespace = n.Namespace
			ns.Icon = tree.IconNamespace
			ns.State = tree.Collapsed
			byNamespace[n.Namespace] = ns
		}
		ns.AddChild(n)
	}

	roots := make([]*tree.Node, 0, len(byNamespace))
	for _, ns := range byNamespace {
		roots = append(roots, ns)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Name < roots[j].Name })
	for _, ns := range roots {
		tree.UpdateLabelsDown(ns, withIcons)
	}
	return roots
}
