package tree

import (
	"context"
	"fmt"
	"sync"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Kind tags the variant a Node represents
type Kind int

const (
	KindMessage Kind = iota
	KindCluster
	KindNamespace
	KindSource
	KindWorkload
	KindResource
	KindGroup
	KindDocLink
)

// String returns the kind name used in node keys and logs
func (k Kind) String() string {
	switch k {
	case KindCluster:
		return "cluster"
	case KindNamespace:
		return "namespace"
	case KindSource:
		return "source"
	case KindWorkload:
		return "workload"
	case KindResource:
		return "resource"
	case KindGroup:
		return "group"
	case KindDocLink:
		return "doc"
	default:
		return "message"
	}
}

// Collapsibility mirrors the expansion state of a row
type Collapsibility int

const (
	CollapsibleNone Collapsibility = iota
	Collapsed
	Expanded
)

// Context tags exposed through Node.Contexts
const (
	ContextSuspend        = "Suspend"    // resource is suspended (offer resume)
	ContextNotSuspend     = "NotSuspend" // resource is active (offer suspend)
	ContextReconcilable   = "Reconcilable"
	ContextResource       = "Resource"
	ContextCluster        = "Cluster"
	ContextCurrentCluster = "CurrentCluster"
	ContextNamespace      = "Namespace"
	ContextDocLink        = "DocLink"
)

// Readiness is carried by Source and Workload nodes only.
// Ready and Progressing are never both true; both false means failed.
type Readiness struct {
	Ready       bool
	Progressing bool
	Suspended   bool
	Message     string
}

// ChildLoader fetches the children of a node on first expansion
type ChildLoader func(ctx context.Context, n *Node) ([]*Node, error)

// Node is one row in a tree view. A node owns its children; Parent is a
// non-owning back reference.
type Node struct {
	Kind         Kind
	Name         string
	Label        string
	Description  string
	Tooltip      string
	Icon         Icon
	State        Collapsibility
	ResourceKind string // Kubernetes kind for resource-backed nodes
	Namespace    string
	Object       *unstructured.Unstructured
	Readiness    *Readiness
	Link         string
	Tags         []string

	mu       sync.Mutex
	parent   *Node
	children []*Node
	loaded   bool
	loader   ChildLoader
	loadErr  error
}

// New creates a node with its label initialised to name
func New(kind Kind, name string) *Node {
	return &Node{
		Kind:  kind,
		Name:  name,
		Label: name,
	}
}

// NewMessage creates a leaf node used for placeholders and errors
func NewMessage(text string, icon Icon) *Node {
	n := New(KindMessage, text)
	n.Icon = icon
	return n
}

// Key identifies a node by kind, namespace and name
func (n *Node) Key() string {
	kind := n.ResourceKind
	if kind == "" {
		kind = n.Kind.String()
	}
	return fmt.Sprintf("%s/%s/%s", kind, n.Namespace, n.Name)
}

// Parent returns the owning node or nil for roots
func (n *Node) Parent() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.parent
}

// HasReadiness reports whether the node tracks reconciliation status
func (n *Node) HasReadiness() bool {
	return (n.Kind == KindSource || n.Kind == KindWorkload) && n.Readiness != nil
}

// IsReady reports the ready flag of a readiness-tracking node
func (n *Node) IsReady() bool {
	return n.HasReadiness() && n.Readiness.Ready
}

// IsProgressing reports the progressing flag of a readiness-tracking node
func (n *Node) IsProgressing() bool {
	return n.HasReadiness() && n.Readiness.Progressing
}

// SetLoader installs a lazy child loader and marks the node collapsible
func (n *Node) SetLoader(loader ChildLoader) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loader = loader
	n.loaded = false
	if n.State == CollapsibleNone {
		n.State = Collapsed
	}
}

// AddChild appends a child and takes ownership of it
func (n *Node) AddChild(child *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	child.setParent(n)
	n.children = append(n.children, child)
	n.loaded = true
	if n.State == CollapsibleNone {
		n.State = Collapsed
	}
}

// SetChildren replaces the whole child set. Previous children are released.
func (n *Node) SetChildren(children []*Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replaceChildren(children)
}

func (n *Node) replaceChildren(children []*Node) {
	for _, old := range n.children {
		old.release()
	}
	for _, c := range children {
		c.setParent(n)
	}
	n.children = children
	n.loaded = true
	n.loadErr = nil
}

func (n *Node) setParent(p *Node) {
	n.mu.Lock()
	n.parent = p
	n.mu.Unlock()
}

// release detaches the subtree rooted at n
func (n *Node) release() {
	n.mu.Lock()
	children := n.children
	n.children = nil
	n.parent = nil
	n.loaded = false
	n.mu.Unlock()
	for _, c := range children {
		c.release()
	}
}

// Children returns the child nodes, running the loader on first access
func (n *Node) Children(ctx context.Context) ([]*Node, error) {
	n.mu.Lock()
	if n.loaded || n.loader == nil {
		children := n.children
		err := n.loadErr
		n.mu.Unlock()
		return children, err
	}
	loader := n.loader
	n.mu.Unlock()

	children, err := loader(ctx, n)

	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil {
		n.loadErr = err
		n.loaded = true
		return nil, err
	}
	n.replaceChildren(children)
	return n.children, nil
}

// LoadedChildren returns the children without triggering a load
func (n *Node) LoadedChildren() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.children
}

// IsLoaded reports whether children have been resolved
func (n *Node) IsLoaded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loaded || n.loader == nil
}

// LoadError returns the error of the last child load, if any
func (n *Node) LoadError() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loadErr
}

// Invalidate drops loaded children so the next Children call reloads them
func (n *Node) Invalidate() {
	n.mu.Lock()
	if n.loader == nil {
		n.mu.Unlock()
		return
	}
	children := n.children
	n.children = nil
	n.loaded = false
	n.loadErr = nil
	n.mu.Unlock()
	for _, c := range children {
		c.release()
	}
}

// Expand marks the node expanded if it can have children
func (n *Node) Expand() {
	if n.State != CollapsibleNone {
		n.State = Expanded
	}
}

// Collapse marks the node collapsed if it can have children
func (n *Node) Collapse() {
	if n.State != CollapsibleNone {
		n.State = Collapsed
	}
}

// Walk visits n and every loaded descendant depth first
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.LoadedChildren() {
		c.Walk(fn)
	}
}

// Contexts returns tags used to decide which actions apply to the node
func (n *Node) Contexts() []string {
	var tags []string
	switch n.Kind {
	case KindCluster:
		tags = append(tags, ContextCluster)
	case KindNamespace:
		tags = append(tags, ContextNamespace)
	case KindSource, KindWorkload:
		tags = append(tags, n.ResourceKind, ContextReconcilable)
		if n.Readiness != nil && n.Readiness.Suspended {
			tags = append(tags, ContextSuspend)
		} else {
			tags = append(tags, ContextNotSuspend)
		}
	case KindResource:
		tags = append(tags, n.ResourceKind)
	case KindDocLink:
		tags = append(tags, ContextDocLink)
	}
	if n.Object != nil {
		tags = append(tags, ContextResource)
	}
	return append(tags, n.Tags...)
}

// HasContext reports whether tag is one of the node's contexts
func (n *Node) HasContext(tag string) bool {
	for _, t := range n.Contexts() {
		if t == tag {
			return true
		}
	}
	return false
}
