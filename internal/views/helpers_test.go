package views

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/kubeconfig"
	"github.com/renato0307/fluxtree/internal/testutil"
)

const testKubeconfig = `apiVersion: v1
kind: Config
current-context: %s
clusters:
- name: dev
  cluster:
    server: https://127.0.0.1:6443
- name: prod
  cluster:
    server: https://ABCDEF.gr7.eu-west-1.eks.amazonaws.com
contexts:
- name: kind-dev
  context:
    cluster: dev
    user: dev
- name: prod
  context:
    cluster: prod
    user: prod
users:
- name: dev
  user:
    token: dev
- name: prod
  user:
    token: prod
`

type fakeConfig struct {
	snap *kubeconfig.Snapshot

	mu        sync.Mutex
	reachable bool
	gitops    bool
	marks     int
}

func newFakeConfig(t *testing.T, current string) *fakeConfig {
	t.Helper()
	snap, err := kubeconfig.Parse([]byte(fmt.Sprintf(testKubeconfig, current)))
	require.NoError(t, err)
	return &fakeConfig{snap: snap}
}

func (f *fakeConfig) Snapshot() *kubeconfig.Snapshot { return f.snap }

func (f *fakeConfig) MarkCluster(reachable, gitops bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reachable, f.gitops = reachable, gitops
	f.marks++
}

func (f *fakeConfig) state() (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reachable, f.gitops
}

// newEnv builds an Env whose pool serves the given fake clusters by context name
func newEnv(t *testing.T, current string, clusters map[string]testutil.FakeCluster) (Env, *fakeConfig) {
	t.Helper()
	cfg := newFakeConfig(t, current)
	pool := k8s.NewClientPool(func(name string) (*k8s.Client, error) {
		c, ok := clusters[name]
		if !ok {
			return nil, fmt.Errorf("no fake cluster for %s", name)
		}
		c.Context = name
		return c.Client(), nil
	}, 0)
	return Env{Config: cfg, Pool: pool, WithIcons: true}, cfg
}
