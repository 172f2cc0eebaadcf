package k8s

import (
	"sort"
	"strings"
	"sync"
	"time"

	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/resources"
)

// KindCache is the set of kinds served by the current cluster. It is
// filled from discovery and reloaded when the kubeconfig sync asks for it.
type KindCache struct {
	mu       sync.RWMutex
	kinds    map[schema.GroupKind]schema.GroupVersionResource
	groups   map[string]bool
	context  string
	loadedAt time.Time
}

// NewKindCache creates an empty cache
func NewKindCache() *KindCache {
	return &KindCache{
		kinds:  map[schema.GroupKind]schema.GroupVersionResource{},
		groups: map[string]bool{},
	}
}

// Reload replaces the cache contents with what c's cluster serves. On
// failure the cache is left empty so stale kinds from another cluster
// are never reported.
func (k *KindCache) Reload(c *Client) error {
	timing := logging.Start("discover kinds")

	groups, lists, err := c.ServerResources()
	if err != nil {
		k.Reset()
		return err
	}

	preferred := make(map[string]string, len(groups))
	for _, g := range groups {
		if g == nil {
			continue
		}
		if g.PreferredVersion.Version != "" {
			preferred[g.Name] = g.PreferredVersion.Version
		} else if len(g.Versions) > 0 {
			preferred[g.Name] = g.Versions[0].Version
		}
	}

	kinds := make(map[schema.GroupKind]schema.GroupVersionResource)
	served := make(map[string]bool)
	for _, list := range lists {
		if list == nil {
			continue
		}
		gv, err := schema.ParseGroupVersion(list.GroupVersion)
		if err != nil {
			continue
		}
		for _, r := range list.APIResources {
			if strings.Contains(r.Name, "/") {
				continue // subresource
			}
			served[gv.Group] = true
			gk := schema.GroupKind{Group: gv.Group, Kind: r.Kind}
			if _, seen := kinds[gk]; seen && preferred[gv.Group] != gv.Version {
				continue
			}
			kinds[gk] = gv.WithResource(r.Name)
		}
	}

	k.mu.Lock()
	k.kinds = kinds
	k.groups = served
	k.context = c.Context()
	k.loadedAt = time.Now()
	k.mu.Unlock()

	logging.EndWithCount(timing, len(kinds))
	return nil
}

// Reset empties the cache
func (k *KindCache) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.kinds = map[schema.GroupKind]schema.GroupVersionResource{}
	k.groups = map[string]bool{}
	k.context = ""
	k.loadedAt = time.Time{}
}

// Context returns the context the cache was loaded for ("" when empty)
func (k *KindCache) Context() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.context
}

// Len returns the number of served kinds
func (k *KindCache) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.kinds)
}

// Serves reports whether the cluster serves group/kind
func (k *KindCache) Serves(group, kind string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.kinds[schema.GroupKind{Group: group, Kind: kind}]
	return ok
}

// ServesKind reports whether a supported kind is available on the cluster
func (k *KindCache) ServesKind(kind resources.Kind) bool {
	info, ok := resources.Lookup(kind)
	if !ok {
		return false
	}
	return k.Serves(info.GVR.Group, string(kind))
}

// ResolveGVR returns the served resource for info, falling back to the
// built-in version when the kind was not discovered
func (k *KindCache) ResolveGVR(info resources.KindInfo) schema.GroupVersionResource {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if gvr, ok := k.kinds[schema.GroupKind{Group: info.GVR.Group, Kind: string(info.Kind)}]; ok {
		return gvr
	}
	return info.GVR
}

// GitOpsEnabled reports whether Flux source and kustomize controllers'
// APIs are served
func (k *KindCache) GitOpsEnabled() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.groups[resources.SourceGroup] && k.groups[resources.KustomizeGroup]
}

// Kinds returns the served kinds sorted by group then kind
func (k *KindCache) Kinds() []schema.GroupKind {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]schema.GroupKind, 0, len(k.kinds))
	for gk := range k.kinds {
		out = append(out, gk)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}
