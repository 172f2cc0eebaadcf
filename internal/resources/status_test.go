package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func TestReadinessOf(t *testing.T) {
	tests := []struct {
		name        string
		conditions  []interface{}
		suspend     bool
		ready       bool
		progressing bool
		message     string
	}{
		{
			name:        "no conditions yet is progressing",
			progressing: true,
		},
		{
			name: "ready true",
			conditions: []interface{}{
				map[string]interface{}{"type": "Ready", "status": "True", "reason": "Succeeded", "message": "Applied revision: main@sha1:abc"},
			},
			ready:   true,
			message: "Applied revision: main@sha1:abc",
		},
		{
			name: "ready unknown is progressing",
			conditions: []interface{}{
				map[string]interface{}{"type": "Ready", "status": "Unknown", "reason": "Progressing", "message": "reconciliation in progress"},
			},
			progressing: true,
			message:     "reconciliation in progress",
		},
		{
			name: "ready false while reconciling is progressing",
			conditions: []interface{}{
				map[string]interface{}{"type": "Ready", "status": "False", "reason": "ArtifactFailed", "message": "retrying"},
				map[string]interface{}{"type": "Reconciling", "status": "True", "reason": "Progressing", "message": "retrying"},
			},
			progressing: true,
			message:     "retrying",
		},
		{
			name: "ready false is failed",
			conditions: []interface{}{
				map[string]interface{}{"type": "Ready", "status": "False", "reason": "BuildFailed", "message": "kustomize build failed"},
			},
			message: "kustomize build failed",
		},
		{
			name: "stalled is failed even while reconciling",
			conditions: []interface{}{
				map[string]interface{}{"type": "Ready", "status": "False", "reason": "InvalidURL", "message": "bad url"},
				map[string]interface{}{"type": "Reconciling", "status": "True", "reason": "Progressing", "message": ""},
				map[string]interface{}{"type": "Stalled", "status": "True", "reason": "InvalidURL", "message": "bad url"},
			},
			message: "bad url",
		},
		{
			name:    "suspended flag is carried",
			suspend: true,
			conditions: []interface{}{
				map[string]interface{}{"type": "Ready", "status": "True", "reason": "Succeeded", "message": "ok"},
			},
			ready:   true,
			message: "ok",
		},
		{
			name: "malformed entries are skipped",
			conditions: []interface{}{
				"not-a-condition",
				map[string]interface{}{"type": "Ready", "status": "True", "reason": "Succeeded", "message": "ok"},
			},
			ready:   true,
			message: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newObject("kustomize.toolkit.fluxcd.io/v1", "Kustomization", "flux-system", "apps")
			if tt.conditions != nil {
				u.Object["status"] = map[string]interface{}{"conditions": tt.conditions}
			}
			if tt.suspend {
				_ = unstructured.SetNestedField(u.Object, true, "spec", "suspend")
			}

			r := ReadinessOf(u)
			assert.Equal(t, tt.ready, r.Ready)
			assert.Equal(t, tt.progressing, r.Progressing)
			assert.Equal(t, tt.suspend, r.Suspended)
			assert.Equal(t, tt.message, r.Message)
			assert.False(t, r.Ready && r.Progressing, "ready and progressing are exclusive")
		})
	}
}

func TestRevision(t *testing.T) {
	u := newObject("kustomize.toolkit.fluxcd.io/v1", "Kustomization", "flux-system", "apps")
	assert.Equal(t, "", Revision(u))

	_ = unstructured.SetNestedField(u.Object, "main@sha1:1111", "status", "lastAttemptedRevision")
	assert.Equal(t, "main@sha1:1111", Revision(u))

	_ = unstructured.SetNestedField(u.Object, "main@sha1:2222", "status", "lastAppliedRevision")
	assert.Equal(t, "main@sha1:2222", Revision(u))

	_ = unstructured.SetNestedField(u.Object, "main@sha1:3333", "status", "artifact", "revision")
	assert.Equal(t, "main@sha1:3333", Revision(u))
}
