// Package views builds the trees shown in each tab: clusters, sources,
// workloads and documentation.
package views

import (
	"context"
	"sync"

	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/kubeconfig"
	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/tree"
)

// ID names a view
type ID string

const (
	ClusterID       ID = "clusters"
	SourceID        ID = "sources"
	WorkloadID      ID = "workloads"
	DocumentationID ID = "docs"
)

// Provider exposes one tree to the UI
type Provider interface {
	ID() ID
	Title() string
	// Roots returns the top-level nodes, building them on first use
	Roots(ctx context.Context) ([]*tree.Node, error)
	// Children resolves a node's children. It does not touch labels, so it
	// is safe to call off the UI goroutine; follow it with Relabel.
	Children(ctx context.Context, n *tree.Node) ([]*tree.Node, error)
	// Refresh drops the cached roots and notifies Changes
	Refresh()
	// Changes receives a value after each Refresh
	Changes() <-chan struct{}
}

// ConfigState is the read side of the kubeconfig sync controller
type ConfigState interface {
	Snapshot() *kubeconfig.Snapshot
	MarkCluster(reachable, gitops bool)
}

// Env is what the views need to reach clusters
type Env struct {
	Config    ConfigState
	Pool      *k8s.ClientPool
	WithIcons bool
}

type buildFunc func(ctx context.Context) ([]*tree.Node, error)

// base caches the roots of a view between refreshes
type base struct {
	id        ID
	title     string
	withIcons bool
	build     buildFunc

	mu         sync.Mutex
	roots      []*tree.Node
	loaded     bool
	generation uint64
	changes    chan struct{}
}

func newBase(id ID, title string, withIcons bool, build buildFunc) *base {
	return &base{
		id:        id,
		title:     title,
		withIcons: withIcons,
		build:     build,
		changes:   make(chan struct{}, 1),
	}
}

func (b *base) ID() ID        { return b.id }
func (b *base) Title() string { return b.title }

func (b *base) Roots(ctx context.Context) ([]*tree.Node, error) {
	b.mu.Lock()
	if b.loaded {
		roots := b.roots
		b.mu.Unlock()
		return roots, nil
	}
	gen := b.generation
	b.mu.Unlock()

	var roots []*tree.Node
	var err error
	logging.Time("build "+string(b.id)+" view", func() {
		roots, err = b.build(ctx)
	})
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// A refresh during the build makes this result stale; hand it out but
	// do not cache it
	if gen == b.generation {
		b.roots = roots
		b.loaded = true
	}
	return roots, nil
}

func (b *base) Children(ctx context.Context, n *tree.Node) ([]*tree.Node, error) {
	children, err := n.Children(ctx)
	if err != nil {
		logging.Warn("failed to load children", "view", b.id, "node", n.Key(), "error", err)
		return nil, err
	}
	return children, nil
}

// Relabel refreshes the labels of n's loaded children, then n and its
// ancestors. Call it from the goroutine that owns the tree.
func Relabel(n *tree.Node, withIcons bool) {
	for _, c := range n.LoadedChildren() {
		c.UpdateLabel(withIcons)
	}
	tree.UpdateLabelsUp(n, withIcons)
}

func (b *base) Refresh() {
	b.mu.Lock()
	b.generation++
	b.loaded = false
	b.roots = nil
	b.mu.Unlock()

	select {
	case b.changes <- struct{}{}:
	default:
	}
}

func (b *base) Changes() <-chan struct{} {
	return b.changes
}
