package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func TestParseInventoryID(t *testing.T) {
	tests := []struct {
		id       string
		expected ObjectRef
		ok       bool
	}{
		{"apps_web_apps_Deployment", ObjectRef{"apps", "web", "apps", "Deployment"}, true},
		{"apps_settings__ConfigMap", ObjectRef{"apps", "settings", "", "ConfigMap"}, true},
		{"_apps__Namespace", ObjectRef{"", "apps", "", "Namespace"}, true},
		{"flux-system_podinfo_source.toolkit.fluxcd.io_GitRepository", ObjectRef{"flux-system", "podinfo", "source.toolkit.fluxcd.io", "GitRepository"}, true},
		{"too_few_parts", ObjectRef{}, false},
		{"a_b_c_d_e", ObjectRef{}, false},
		{"ns__apps_Deployment", ObjectRef{}, false},
		{"", ObjectRef{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			ref, ok := ParseInventoryID(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, ref)
		})
	}
}

func TestInventory(t *testing.T) {
	u := &unstructured.Unstructured{Object: map[string]any{
		"kind": "Kustomization",
		"status": map[string]any{
			"inventory": map[string]any{
				"entries": []any{
					map[string]any{"id": "apps_web_apps_Deployment", "v": "v1"},
					map[string]any{"id": "broken", "v": "v1"},
					"not-a-map",
					map[string]any{"v": "v1"},
				},
			},
		},
	}}

	refs := Inventory(u)
	assert.Equal(t, []ObjectRef{{"apps", "web", "apps", "Deployment"}}, refs)
	assert.Nil(t, Inventory(nil))
	assert.Nil(t, Inventory(&unstructured.Unstructured{Object: map[string]any{}}))
}

func TestHelmSelector(t *testing.T) {
	u := &unstructured.Unstructured{Object: map[string]any{}}
	u.SetName("podinfo")
	u.SetNamespace("apps")
	assert.Equal(t, "helm.toolkit.fluxcd.io/name=podinfo,helm.toolkit.fluxcd.io/namespace=apps", HelmSelector(u))
}
