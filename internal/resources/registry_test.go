package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/renato0307/fluxtree/internal/tree"
)

func newObject(apiVersion, kind, namespace, name string) *unstructured.Unstructured {
	u := &unstructured.Unstructured{Object: map[string]interface{}{}}
	u.SetAPIVersion(apiVersion)
	u.SetKind(kind)
	u.SetNamespace(namespace)
	u.SetName(name)
	return u
}

func withReady(u *unstructured.Unstructured, status, message string) *unstructured.Unstructured {
	_ = unstructured.SetNestedSlice(u.Object, []interface{}{
		map[string]interface{}{
			"type":               "Ready",
			"status":             status,
			"reason":             "Test",
			"message":            message,
			"lastTransitionTime": "2024-01-01T00:00:00Z",
		},
	}, "status", "conditions")
	return u
}

func TestConstruct_SupportedKinds(t *testing.T) {
	tests := []struct {
		apiVersion string
		kind       string
		expected   tree.Kind
	}{
		{"source.toolkit.fluxcd.io/v1", "GitRepository", tree.KindSource},
		{"source.toolkit.fluxcd.io/v1beta2", "OCIRepository", tree.KindSource},
		{"source.toolkit.fluxcd.io/v1", "HelmRepository", tree.KindSource},
		{"source.toolkit.fluxcd.io/v1", "Bucket", tree.KindSource},
		{"source.toolkit.fluxcd.io/v1", "HelmChart", tree.KindSource},
		{"kustomize.toolkit.fluxcd.io/v1", "Kustomization", tree.KindWorkload},
		{"helm.toolkit.fluxcd.io/v2", "HelmRelease", tree.KindWorkload},
		{"v1", "Namespace", tree.KindNamespace},
		{"apps/v1", "Deployment", tree.KindResource},
		{"v1", "Node", tree.KindResource},
		{"v1", "Pod", tree.KindResource},
		{"v1", "ConfigMap", tree.KindResource},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			u := newObject(tt.apiVersion, tt.kind, "flux-system", "obj")
			n, ok := Construct(u)
			require.True(t, ok)
			assert.Equal(t, tt.expected, n.Kind)
			assert.Equal(t, tt.kind, n.ResourceKind)
			assert.Equal(t, "obj", n.Name)
			assert.Same(t, u, n.Object)

			_, known := Lookup(Kind(tt.kind))
			assert.True(t, known, "every constructor must have a kind table entry")
		})
	}
}

func TestConstruct_Unrepresentable(t *testing.T) {
	kinds := []string{"", "Secret", "StatefulSet", "gitrepository", "Alert", "Provider", "ImagePolicy"}

	for _, kind := range kinds {
		t.Run("kind="+kind, func(t *testing.T) {
			u := newObject("v1", kind, "default", "x")
			assert.NotPanics(t, func() {
				n, ok := Construct(u)
				assert.False(t, ok)
				assert.Nil(t, n)
			})
		})
	}

	n, ok := Construct(nil)
	assert.False(t, ok)
	assert.Nil(t, n)
}

func TestConstructAll_DropsUnknown(t *testing.T) {
	items := []unstructured.Unstructured{
		*newObject("v1", "ConfigMap", "default", "a"),
		*newObject("v1", "Secret", "default", "b"),
		*newObject("apps/v1", "Deployment", "default", "c"),
	}

	nodes := ConstructAll(items)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].Name)
	assert.Equal(t, "c", nodes[1].Name)
}

func TestConstruct_SourceReadiness(t *testing.T) {
	u := withReady(newObject("source.toolkit.fluxcd.io/v1", "GitRepository", "flux-system", "podinfo"), "True", "stored artifact")
	_ = unstructured.SetNestedField(u.Object, "main@sha1:0123456789abcdef0123", "status", "artifact", "revision")

	n, ok := Construct(u)
	require.True(t, ok)
	require.True(t, n.HasReadiness())
	assert.True(t, n.IsReady())
	assert.False(t, n.IsProgressing())
	assert.Equal(t, tree.IconSuccess, n.Icon)
	assert.Equal(t, "main@sha1:01234567", n.Description)
	assert.Equal(t, "stored artifact", n.Tooltip)
	assert.Equal(t, tree.CollapsibleNone, n.State)
}

func TestConstruct_WorkloadCollapsible(t *testing.T) {
	u := withReady(newObject("kustomize.toolkit.fluxcd.io/v1", "Kustomization", "flux-system", "apps"), "False", "build failed")

	n, ok := Construct(u)
	require.True(t, ok)
	assert.Equal(t, tree.Collapsed, n.State)
	assert.False(t, n.IsReady())
	assert.False(t, n.IsProgressing())
	assert.Equal(t, tree.IconError, n.Icon)
}

func TestShortRevision(t *testing.T) {
	assert.Equal(t, "", shortRevision(""))
	assert.Equal(t, "v1.2.3", shortRevision("v1.2.3"))
	assert.Equal(t, "main@sha1:abc", shortRevision("main@sha1:abc"))
	assert.Equal(t, "sha256:01234567", shortRevision("sha256:0123456789"))
}
