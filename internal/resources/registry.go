package resources

import (
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/renato0307/fluxtree/internal/tree"
)

// constructor builds the node for one object of a known kind
type constructor func(u *unstructured.Unstructured) *tree.Node

// constructors is fixed at compile time; every entry also appears in kindTable
var constructors = map[Kind]constructor{
	KindBucket:         newSourceNode,
	KindGitRepository:  newSourceNode,
	KindOCIRepository:  newSourceNode,
	KindHelmRepository: newSourceNode,
	KindHelmChart:      newSourceNode,
	KindKustomization:  newWorkloadNode,
	KindHelmRelease:    newWorkloadNode,
	KindNamespace:      newNamespaceNode,
	KindDeployment:     newAnyResourceNode,
	KindNode:           newAnyResourceNode,
	KindPod:            newAnyResourceNode,
	KindConfigMap:      newAnyResourceNode,
}

// Construct builds the tree node for an object. Objects with a missing or
// unsupported kind are not representable and yield false.
func Construct(u *unstructured.Unstructured) (*tree.Node, bool) {
	if u == nil {
		return nil, false
	}
	kind := Kind(u.GetKind())
	if kind == "" {
		return nil, false
	}
	build, ok := constructors[kind]
	if !ok {
		return nil, false
	}
	return build(u), true
}

// ConstructAll builds nodes for every representable object, dropping the rest
func ConstructAll(items []unstructured.Unstructured) []*tree.Node {
	nodes := make([]*tree.Node, 0, len(items))
	for i := range items {
		if n, ok := Construct(&items[i]); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func baseNode(kind tree.Kind, u *unstructured.Unstructured) *tree.Node {
	n := tree.New(kind, u.GetName())
	n.ResourceKind = u.GetKind()
	n.Namespace = u.GetNamespace()
	n.Object = u
	return n
}

func newSourceNode(u *unstructured.Unstructured) *tree.Node {
	n := baseNode(tree.KindSource, u)
	r := ReadinessOf(u)
	n.Readiness = &r
	n.Description = shortRevision(Revision(u))
	n.Tooltip = r.Message
	n.UpdateLabel(true)
	return n
}

func newWorkloadNode(u *unstructured.Unstructured) *tree.Node {
	n := baseNode(tree.KindWorkload, u)
	r := ReadinessOf(u)
	n.Readiness = &r
	n.Description = shortRevision(Revision(u))
	n.Tooltip = r.Message
	n.State = tree.Collapsed
	n.UpdateLabel(true)
	return n
}

func newNamespaceNode(u *unstructured.Unstructured) *tree.Node {
	n := baseNode(tree.KindNamespace, u)
	n.Icon = tree.IconNamespace
	n.State = tree.Collapsed
	return n
}

func newAnyResourceNode(u *unstructured.Unstructured) *tree.Node {
	n := baseNode(tree.KindResource, u)
	n.Icon = tree.IconResource
	n.Description = u.GetKind()
	return n
}

// shortRevision trims "main@sha1:0123456789abcdef..." to "main@sha1:01234567"
func shortRevision(rev string) string {
	at := strings.LastIndex(rev, ":")
	if at < 0 || len(rev)-at-1 <= 8 {
		return rev
	}
	return rev[:at+9]
}
