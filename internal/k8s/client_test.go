package k8s_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/rest"

	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/resources"
	"github.com/renato0307/fluxtree/internal/testutil"
)

func TestClient_ListKind(t *testing.T) {
	client := testutil.FakeCluster{
		Context: "kind-dev",
		Objects: testutil.Objects(
			testutil.FluxObject(resources.KindKustomization, "flux-system", "infra", "True"),
			testutil.FluxObject(resources.KindKustomization, "apps", "web", "Unknown"),
			testutil.FluxObject(resources.KindKustomization, "apps", "api", "False"),
			testutil.FluxObject(resources.KindGitRepository, "flux-system", "flux-system", "True"),
		),
	}.Client()

	assert.Equal(t, "kind-dev", client.Context())

	items, err := client.ListKind(context.Background(), nil, resources.KindKustomization, "")
	require.NoError(t, err)
	require.Len(t, items, 3)

	// sorted by namespace, then name
	assert.Equal(t, "apps/api", items[0].GetNamespace()+"/"+items[0].GetName())
	assert.Equal(t, "apps/web", items[1].GetNamespace()+"/"+items[1].GetName())
	assert.Equal(t, "flux-system/infra", items[2].GetNamespace()+"/"+items[2].GetName())
	assert.Equal(t, "Kustomization", items[0].GetKind())

	items, err = client.ListKind(context.Background(), nil, resources.KindKustomization, "apps")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = client.ListKind(context.Background(), nil, resources.Kind("Widget"), "")
	assert.Error(t, err)
}

func TestClient_ListBySelector(t *testing.T) {
	info, _ := resources.Lookup(resources.KindDeployment)
	client := testutil.FakeCluster{
		Objects: testutil.Objects(
			testutil.WithLabels(testutil.Object(resources.KindDeployment, "apps", "podinfo"),
				map[string]string{"helm.toolkit.fluxcd.io/name": "podinfo"}),
			testutil.Object(resources.KindDeployment, "apps", "other"),
		),
	}.Client()

	items, err := client.ListBySelector(context.Background(), info.GVR, "apps", "helm.toolkit.fluxcd.io/name=podinfo")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "podinfo", items[0].GetName())
}

func TestClient_Get(t *testing.T) {
	info, _ := resources.Lookup(resources.KindConfigMap)
	client := testutil.FakeCluster{
		Objects: testutil.Objects(testutil.Object(resources.KindConfigMap, "apps", "settings")),
	}.Client()

	obj, err := client.Get(context.Background(), info.GVR, "apps", "settings")
	require.NoError(t, err)
	assert.Equal(t, "settings", obj.GetName())

	_, err = client.Get(context.Background(), info.GVR, "apps", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resource not found")
}

func TestClient_ServerVersion(t *testing.T) {
	_, err := testutil.FakeCluster{}.Client().ServerVersion()
	assert.NoError(t, err)

	_, err = testutil.FakeCluster{Context: "prod", Unreachable: true}.Client().ServerVersion()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster prod is not reachable")
}

func TestClient_Events(t *testing.T) {
	now := time.Now()
	events := []runtime.Object{
		&corev1.Event{
			ObjectMeta:    metav1.ObjectMeta{Name: "web.1", Namespace: "apps"},
			Type:          "Normal",
			Reason:        "ReconciliationSucceeded",
			LastTimestamp: metav1.NewTime(now.Add(-time.Hour)),
		},
		&corev1.Event{
			ObjectMeta:    metav1.ObjectMeta{Name: "web.2", Namespace: "apps"},
			Type:          "Warning",
			Reason:        "HealthCheckFailed",
			LastTimestamp: metav1.NewTime(now.Add(-time.Minute)),
		},
	}
	client := testutil.FakeCluster{Typed: events}.Client()

	got, err := client.Events(context.Background(), "apps", "web", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "HealthCheckFailed", got[0].Reason, "newest first")
}

func TestNewClient(t *testing.T) {
	client, err := k8s.NewClient("dev", &rest.Config{Host: "https://dev.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "dev", client.Context())
}
