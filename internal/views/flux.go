package views

import (
	"context"
	"fmt"

	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/resources"
	"github.com/renato0307/fluxtree/internal/tree"
)

// SourceView shows the Flux sources of the current cluster by namespace
type SourceView struct {
	*base
	env Env
}

// NewSourceView creates the source view
func NewSourceView(env Env) *SourceView {
	v := &SourceView{env: env}
	v.base = newBase(SourceID, "Sources", env.WithIcons, v.build)
	return v
}

func (v *SourceView) build(ctx context.Context) ([]*tree.Node, error) {
	entry, msg := v.env.currentCluster()
	if msg != nil {
		return []*tree.Node{msg}, nil
	}

	nodes := listKinds(ctx, entry, resources.SourceKinds)
	if len(nodes) == 0 {
		return []*tree.Node{tree.NewMessage("No sources found", tree.IconInfo)}, nil
	}
	return groupByNamespace(nodes, v.withIcons), nil
}

// WorkloadView shows Kustomizations and HelmReleases of the current
// cluster by namespace. Workloads expand into the objects they manage.
type WorkloadView struct {
	*base
	env Env
}

// NewWorkloadView creates the workload view
func NewWorkloadView(env Env) *WorkloadView {
	v := &WorkloadView{env: env}
	v.base = newBase(WorkloadID, "Workloads", env.WithIcons, v.build)
	return v
}

func (v *WorkloadView) build(ctx context.Context) ([]*tree.Node, error) {
	entry, msg := v.env.currentCluster()
	if msg != nil {
		return []*tree.Node{msg}, nil
	}

	nodes := listKinds(ctx, entry, resources.WorkloadKinds)
	if len(nodes) == 0 {
		return []*tree.Node{tree.NewMessage("No workloads found", tree.IconInfo)}, nil
	}
	for _, n := range nodes {
		v.attachLoader(entry, n)
	}
	return groupByNamespace(nodes, v.withIcons), nil
}

func (v *WorkloadView) attachLoader(entry *k8s.PoolEntry, n *tree.Node) {
	switch resources.Kind(n.ResourceKind) {
	case resources.KindKustomization:
		n.SetLoader(func(ctx context.Context, n *tree.Node) ([]*tree.Node, error) {
			return v.inventoryChildren(ctx, entry, n)
		})
	case resources.KindHelmRelease:
		n.SetLoader(func(ctx context.Context, n *tree.Node) ([]*tree.Node, error) {
			return v.helmChildren(ctx, entry, n)
		})
	}
}

// inventoryChildren resolves a Kustomization's inventory. Entries of kinds
// the trees cannot show are summarised in one message row.
func (v *WorkloadView) inventoryChildren(ctx context.Context, entry *k8s.PoolEntry, n *tree.Node) ([]*tree.Node, error) {
	refs := resources.Inventory(n.Object)
	if len(refs) == 0 {
		return []*tree.Node{tree.NewMessage("No managed objects", tree.IconInfo)}, nil
	}

	var children []*tree.Node
	other := 0
	for _, ref := range refs {
		info, ok := resources.LookupGroupKind(ref.Group, ref.Kind)
		if !ok {
			other++
			continue
		}
		obj, err := entry.Client.Get(ctx, entry.Kinds.ResolveGVR(info), ref.Namespace, ref.Name)
		if err != nil {
			logging.Debug("inventory object not found", "ref", ref, "error", err)
			other++
			continue
		}
		child, ok := resources.Construct(obj)
		if !ok {
			other++
			continue
		}
		if child.Kind == tree.KindNamespace {
			child.State = tree.CollapsibleNone
		}
		v.attachLoader(entry, child)
		children = append(children, child)
	}

	if other > 0 {
		children = append(children, tree.NewMessage(fmt.Sprintf("%d other objects", other), tree.IconInfo))
	}
	return children, nil
}

// helmChildren lists the objects helm-controller labelled for the release
func (v *WorkloadView) helmChildren(ctx context.Context, entry *k8s.PoolEntry, n *tree.Node) ([]*tree.Node, error) {
	selector := resources.HelmSelector(n.Object)

	var children []*tree.Node
	for _, kind := range []resources.Kind{resources.KindDeployment, resources.KindConfigMap} {
		info, _ := resources.Lookup(kind)
		items, err := entry.Client.ListBySelector(ctx, entry.Kinds.ResolveGVR(info), "", selector)
		if err != nil {
			return nil, err
		}
		children = append(children, resources.ConstructAll(items)...)
	}
	if len(children) == 0 {
		return []*tree.Node{tree.NewMessage("No managed objects", tree.IconInfo)}, nil
	}
	return children, nil
}
