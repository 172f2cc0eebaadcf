package testutil

import (
	"errors"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	fakediscovery "k8s.io/client-go/discovery/fake"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	kubefake "k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/resources"
)

// FakeCluster describes a cluster served by client-go fakes
type FakeCluster struct {
	Context string
	// Objects are unstructured objects served by the dynamic client
	Objects []runtime.Object
	// Typed objects (events) served by the clientset
	Typed []runtime.Object
	// WithoutFlux hides the Flux API groups from discovery
	WithoutFlux bool
	// Unreachable makes the version probe fail
	Unreachable bool
}

// Client builds a k8s.Client for the fake cluster
func (f FakeCluster) Client() *k8s.Client {
	listKinds := make(map[schema.GroupVersionResource]string)
	for _, kind := range resources.SupportedKinds() {
		info, _ := resources.Lookup(kind)
		listKinds[info.GVR] = string(kind) + "List"
	}

	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), listKinds, f.Objects...)

	cs := kubefake.NewClientset(f.Typed...)
	disc := cs.Discovery().(*fakediscovery.FakeDiscovery)
	disc.Resources = discoveryResources(!f.WithoutFlux)
	if f.Unreachable {
		cs.PrependReactor("get", "version", func(k8stesting.Action) (bool, runtime.Object, error) {
			return true, nil, errors.New("dial tcp 10.0.0.1:443: connect: connection refused")
		})
	}

	name := f.Context
	if name == "" {
		name = "test"
	}
	return k8s.NewClientFromInterfaces(name, dyn, disc, cs)
}

func discoveryResources(withFlux bool) []*metav1.APIResourceList {
	byGV := make(map[string]*metav1.APIResourceList)
	var order []string
	for _, kind := range resources.SupportedKinds() {
		info, _ := resources.Lookup(kind)
		if !withFlux && resources.IsFluxKind(kind) {
			continue
		}
		gv := info.GVR.GroupVersion().String()
		list, ok := byGV[gv]
		if !ok {
			list = &metav1.APIResourceList{GroupVersion: gv}
			byGV[gv] = list
			order = append(order, gv)
		}
		list.APIResources = append(list.APIResources, metav1.APIResource{
			Name:       info.GVR.Resource,
			Kind:       string(kind),
			Namespaced: info.Namespaced,
			Verbs:      metav1.Verbs{"get", "list", "watch"},
		})
	}

	out := make([]*metav1.APIResourceList, 0, len(order))
	for _, gv := range order {
		out = append(out, byGV[gv])
	}
	return out
}

// Object builds an unstructured object of a supported kind
func Object(kind resources.Kind, namespace, name string) *unstructured.Unstructured {
	info, _ := resources.Lookup(kind)
	u := &unstructured.Unstructured{Object: map[string]any{}}
	u.SetGroupVersionKind(info.GVR.GroupVersion().WithKind(string(kind)))
	u.SetNamespace(namespace)
	u.SetName(name)
	return u
}

// FluxObject builds a Flux object whose Ready condition has the given
// status ("True", "False", "Unknown"); an empty status omits the condition
func FluxObject(kind resources.Kind, namespace, name, ready string) *unstructured.Unstructured {
	u := Object(kind, namespace, name)
	if ready != "" {
		_ = unstructured.SetNestedSlice(u.Object, []any{
			map[string]any{
				"type":    "Ready",
				"status":  ready,
				"reason":  "Test",
				"message": name + " is " + ready,
			},
		}, "status", "conditions")
	}
	return u
}

// Suspended sets spec.suspend on u
func Suspended(u *unstructured.Unstructured) *unstructured.Unstructured {
	_ = unstructured.SetNestedField(u.Object, true, "spec", "suspend")
	return u
}

// WithInventory sets status.inventory.entries with ids "ns_name_group_kind"
func WithInventory(u *unstructured.Unstructured, ids ...string) *unstructured.Unstructured {
	entries := make([]any, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, map[string]any{"id": id, "v": "v1"})
	}
	_ = unstructured.SetNestedSlice(u.Object, entries, "status", "inventory", "entries")
	return u
}

// WithLabels merges labels into u
func WithLabels(u *unstructured.Unstructured, labels map[string]string) *unstructured.Unstructured {
	merged := u.GetLabels()
	if merged == nil {
		merged = map[string]string{}
	}
	for k, v := range labels {
		merged[k] = v
	}
	u.SetLabels(merged)
	return u
}

// Objects converts unstructured objects to runtime objects for FakeCluster
func Objects(items ...*unstructured.Unstructured) []runtime.Object {
	out := make([]runtime.Object, 0, len(items))
	for _, u := range items {
		out = append(out, u)
	}
	return out
}
