package kubeconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// kubeconfigYAML renders a kubeconfig where every context points at a
// cluster and user of the same name
func kubeconfigYAML(t *testing.T, current string, contexts ...string) string {
	t.Helper()

	config := clientcmdapi.NewConfig()
	for _, name := range contexts {
		config.Clusters[name] = &clientcmdapi.Cluster{Server: "https://" + name + ".example.com"}
		config.AuthInfos[name] = &clientcmdapi.AuthInfo{Token: "token-" + name}
		config.Contexts[name] = &clientcmdapi.Context{Cluster: name, AuthInfo: name}
	}
	config.CurrentContext = current

	out, err := clientcmd.Write(*config)
	require.NoError(t, err)
	return string(out)
}

func mustParse(t *testing.T, raw string) *Snapshot {
	t.Helper()
	s, err := Parse([]byte(raw))
	require.NoError(t, err)
	return s
}
