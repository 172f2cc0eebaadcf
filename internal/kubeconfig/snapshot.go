// Package kubeconfig keeps an in-memory copy of the user's kubeconfig in sync
// with what kubectl reports and tells the views what to reload when it changes.
package kubeconfig

import (
	"encoding/json"
	"fmt"
	"sort"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
	"sigs.k8s.io/yaml"
)

// ContextInfo holds context metadata from kubeconfig
type ContextInfo struct {
	Name      string
	Cluster   string
	User      string
	Namespace string
	// Server is the API server URL of Cluster, empty when the cluster entry is missing
	Server string
}

// Snapshot is an immutable view of one kubeconfig read. A new sync cycle
// produces a new Snapshot; existing ones are never modified.
type Snapshot struct {
	contexts []ContextInfo
	index    map[string]int
	current  string
	raw      []byte
	api      *clientcmdapi.Config
}

type rawConfig struct {
	CurrentContext string            `json:"current-context"`
	Contexts       []json.RawMessage `json:"contexts"`
	Clusters       []json.RawMessage `json:"clusters"`
}

type rawNamedContext struct {
	Name    string `json:"name"`
	Context *struct {
		Cluster   string `json:"cluster"`
		User      string `json:"user"`
		Namespace string `json:"namespace"`
	} `json:"context"`
}

type rawNamedCluster struct {
	Name    string `json:"name"`
	Cluster *struct {
		Server string `json:"server"`
	} `json:"cluster"`
}

// Parse builds a snapshot from kubeconfig YAML. Context entries that are
// structurally invalid (no name, no context block, no cluster) are skipped so
// one broken entry does not hide the others. Only a document that is not a
// kubeconfig at all is an error.
func Parse(raw []byte) (*Snapshot, error) {
	var doc rawConfig
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}

	servers := make(map[string]string, len(doc.Clusters))
	for _, item := range doc.Clusters {
		var c rawNamedCluster
		if err := json.Unmarshal(item, &c); err != nil || c.Name == "" || c.Cluster == nil {
			continue
		}
		servers[c.Name] = c.Cluster.Server
	}

	s := &Snapshot{
		contexts: make([]ContextInfo, 0, len(doc.Contexts)),
		index:    make(map[string]int, len(doc.Contexts)),
		current:  doc.CurrentContext,
		raw:      append([]byte(nil), raw...),
	}
	for _, item := range doc.Contexts {
		var c rawNamedContext
		if err := json.Unmarshal(item, &c); err != nil {
			continue
		}
		if c.Name == "" || c.Context == nil || c.Context.Cluster == "" {
			continue
		}
		if _, dup := s.index[c.Name]; dup {
			continue
		}
		s.index[c.Name] = len(s.contexts)
		s.contexts = append(s.contexts, ContextInfo{
			Name:      c.Name,
			Cluster:   c.Context.Cluster,
			User:      c.Context.User,
			Namespace: c.Context.Namespace,
			Server:    servers[c.Context.Cluster],
		})
	}

	// Strict load is best effort; it is only needed to build REST configs
	if api, err := clientcmd.Load(raw); err == nil {
		s.api = api
	}

	return s, nil
}

// Empty returns a snapshot with no contexts
func Empty() *Snapshot {
	return &Snapshot{index: map[string]int{}}
}

// Contexts returns the valid contexts in document order
func (s *Snapshot) Contexts() []ContextInfo {
	if s == nil {
		return nil
	}
	out := make([]ContextInfo, len(s.contexts))
	copy(out, s.contexts)
	return out
}

// ContextNames returns the context names sorted alphabetically
func (s *Snapshot) ContextNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.contexts))
	for _, c := range s.contexts {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Context looks up a context by name
func (s *Snapshot) Context(name string) (ContextInfo, bool) {
	if s == nil {
		return ContextInfo{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return ContextInfo{}, false
	}
	return s.contexts[i], true
}

// HasContext reports whether name is a valid context in this snapshot
func (s *Snapshot) HasContext(name string) bool {
	_, ok := s.Context(name)
	return ok
}

// CurrentContext returns the name of the selected context (may be dangling)
func (s *Snapshot) CurrentContext() string {
	if s == nil {
		return ""
	}
	return s.current
}

// Raw returns the text the snapshot was parsed from
func (s *Snapshot) Raw() []byte {
	if s == nil {
		return nil
	}
	return s.raw
}

// RESTConfig builds a client config for the named context
func (s *Snapshot) RESTConfig(contextName string) (*rest.Config, error) {
	if s == nil || s.api == nil {
		return nil, fmt.Errorf("kubeconfig is not loadable, cannot connect to %q", contextName)
	}
	if !s.HasContext(contextName) {
		return nil, fmt.Errorf("context %q not found in kubeconfig", contextName)
	}
	cfg, err := clientcmd.NewNonInteractiveClientConfig(*s.api, contextName, &clientcmd.ConfigOverrides{}, nil).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build client config for %q: %w", contextName, err)
	}
	return cfg, nil
}
