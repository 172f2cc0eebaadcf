package views

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/kubeconfig"
	"github.com/renato0307/fluxtree/internal/resources"
	"github.com/renato0307/fluxtree/internal/tree"
)

// ClusterView lists the kubeconfig contexts. Expanding one connects to
// the cluster and shows its nodes and namespaces.
type ClusterView struct {
	*base
	env Env
}

// NewClusterView creates the cluster view
func NewClusterView(env Env) *ClusterView {
	v := &ClusterView{env: env}
	v.base = newBase(ClusterID, "Clusters", env.WithIcons, v.build)
	return v
}

func (v *ClusterView) build(ctx context.Context) ([]*tree.Node, error) {
	snap := v.env.Config.Snapshot()
	contexts := snap.Contexts()
	if len(contexts) == 0 {
		return []*tree.Node{tree.NewMessage("No contexts found in kubeconfig", tree.IconInfo)}, nil
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i].Name < contexts[j].Name })

	current := snap.CurrentContext()
	roots := make([]*tree.Node, 0, len(contexts))
	for _, c := range contexts {
		roots = append(roots, v.clusterNode(c, c.Name == current))
	}
	return roots, nil
}

func (v *ClusterView) clusterNode(c kubeconfig.ContextInfo, current bool) *tree.Node {
	n := tree.New(tree.KindCluster, c.Name)
	n.Icon = tree.IconCluster
	n.Tooltip = c.Server

	var desc []string
	if current {
		desc = append(desc, "current")
		n.Tags = append(n.Tags, tree.ContextCurrentCluster)
	}
	if p := k8s.DetectProvider(c.Name, c.Server); p != k8s.ProviderGeneric {
		desc = append(desc, string(p))
	}
	if name := k8s.ClusterName(c.Name); name != c.Name {
		desc = append(desc, name)
	}
	n.Description = strings.Join(desc, " · ")

	contextName := c.Name
	n.SetLoader(func(ctx context.Context, _ *tree.Node) ([]*tree.Node, error) {
		return v.clusterChildren(ctx, contextName, current), nil
	})
	return n
}

func (v *ClusterView) clusterChildren(ctx context.Context, contextName string, current bool) []*tree.Node {
	entry, err := v.env.Pool.Get(contextName)
	if err != nil {
		if current {
			v.env.Config.MarkCluster(false, false)
		}
		return []*tree.Node{tree.NewMessage(fmt.Sprintf("Cannot reach cluster: %v", err), tree.IconError)}
	}

	var children []*tree.Node
	if err := ensureKinds(entry); err != nil {
		children = append(children, tree.NewMessage(fmt.Sprintf("Discovery failed: %v", err), tree.IconWarning))
	} else {
		gitops := entry.Kinds.GitOpsEnabled()
		if current {
			v.env.Config.MarkCluster(true, gitops)
		}
		if gitops {
			children = append(children, tree.NewMessage("Flux installed", tree.IconSuccess))
		} else {
			children = append(children, tree.NewMessage("Flux not installed", tree.IconWarning))
		}
	}

	children = append(children,
		v.group(ctx, entry, "Nodes", resources.KindNode),
		v.group(ctx, entry, "Namespaces", resources.KindNamespace),
	)
	return children
}

func (v *ClusterView) group(ctx context.Context, entry *k8s.PoolEntry, title string, kind resources.Kind) *tree.Node {
	g := tree.New(tree.KindGroup, title)
	items, err := entry.Client.ListKind(ctx, entry.Kinds, kind, "")
	if err != nil {
		g.AddChild(tree.NewMessage(err.Error(), tree.IconError))
		return g
	}

	for _, n := range resources.ConstructAll(items) {
		// namespaces are leaves here
		n.State = tree.CollapsibleNone
		g.AddChild(n)
	}
	g.Description = fmt.Sprintf("%d", len(items))
	g.UpdateLabel(v.withIcons)
	return g
}
