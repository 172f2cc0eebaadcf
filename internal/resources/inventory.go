package resources

import (
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// HelmRelease ownership labels set by helm-controller on rendered objects
const (
	HelmNameLabel      = "helm.toolkit.fluxcd.io/name"
	HelmNamespaceLabel = "helm.toolkit.fluxcd.io/namespace"
)

// ObjectRef points at an object applied by a Kustomization
type ObjectRef struct {
	Namespace string
	Name      string
	Group     string
	Kind      string
}

// ParseInventoryID decodes a kustomize-controller inventory id of the form
// "<namespace>_<name>_<group>_<kind>". Namespace and group may be empty.
func ParseInventoryID(id string) (ObjectRef, bool) {
	parts := strings.Split(id, "_")
	if len(parts) != 4 || parts[1] == "" || parts[3] == "" {
		return ObjectRef{}, false
	}
	return ObjectRef{Namespace: parts[0], Name: parts[1], Group: parts[2], Kind: parts[3]}, true
}

// Inventory returns the parsable entries of status.inventory.entries
func Inventory(u *unstructured.Unstructured) []ObjectRef {
	if u == nil {
		return nil
	}
	entries, found, err := unstructured.NestedSlice(u.Object, "status", "inventory", "entries")
	if !found || err != nil {
		return nil
	}

	refs := make([]ObjectRef, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		id, _ := m["id"].(string)
		if ref, ok := ParseInventoryID(id); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// HelmSelector selects the objects rendered by a HelmRelease
func HelmSelector(u *unstructured.Unstructured) string {
	return HelmNameLabel + "=" + u.GetName() + "," + HelmNamespaceLabel + "=" + u.GetNamespace()
}
