package k8s

import (
	"context"
	"fmt"
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/version"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/resources"
)

// Client reads objects from one cluster (one kubeconfig context)
type Client struct {
	contextName string
	dynamic     dynamic.Interface
	discovery   discovery.DiscoveryInterface
	clientset   kubernetes.Interface
}

// NewClient builds the clients for a context from its REST config
func NewClient(contextName string, config *rest.Config) (*Client, error) {
	config = rest.CopyConfig(config)
	config.Timeout = RequestTimeout

	// Dynamic client needs JSON; build it before switching to protobuf
	dynamicClient, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("error creating dynamic client: %w", err)
	}

	// Use protobuf for better performance
	config.ContentType = "application/vnd.kubernetes.protobuf"
	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("error creating clientset: %w", err)
	}

	return NewClientFromInterfaces(contextName, dynamicClient, clientset.Discovery(), clientset), nil
}

// NewClientFromInterfaces wires a client from existing interfaces (fakes in tests)
func NewClientFromInterfaces(contextName string, dyn dynamic.Interface, disc discovery.DiscoveryInterface, cs kubernetes.Interface) *Client {
	return &Client{
		contextName: contextName,
		dynamic:     dyn,
		discovery:   disc,
		clientset:   cs,
	}
}

// Context returns the kubeconfig context the client talks to
func (c *Client) Context() string {
	return c.contextName
}

// ServerVersion checks the cluster answers at all
func (c *Client) ServerVersion() (*version.Info, error) {
	info, err := c.discovery.ServerVersion()
	if err != nil {
		return nil, fmt.Errorf("cluster %s is not reachable: %w", c.contextName, err)
	}
	return info, nil
}

// List returns the objects of gvr in namespace ("" for all namespaces),
// sorted by namespace and name
func (c *Client) List(ctx context.Context, gvr schema.GroupVersionResource, namespace string) ([]unstructured.Unstructured, error) {
	return c.ListBySelector(ctx, gvr, namespace, "")
}

// ListBySelector is List restricted by a label selector
func (c *Client) ListBySelector(ctx context.Context, gvr schema.GroupVersionResource, namespace, selector string) ([]unstructured.Unstructured, error) {
	timing := logging.Start("list " + gvr.Resource)

	var ri dynamic.ResourceInterface = c.dynamic.Resource(gvr)
	if namespace != "" {
		ri = c.dynamic.Resource(gvr).Namespace(namespace)
	}
	list, err := ri.List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", gvr.Resource, err)
	}

	items := list.Items
	sortObjects(items)
	logging.EndWithCount(timing, len(items))
	return items, nil
}

// ListKind lists a supported kind, using the served version when known
func (c *Client) ListKind(ctx context.Context, kinds *KindCache, kind resources.Kind, namespace string) ([]unstructured.Unstructured, error) {
	info, ok := resources.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
	gvr := info.GVR
	if kinds != nil {
		gvr = kinds.ResolveGVR(info)
	}
	items, err := c.List(ctx, gvr, namespace)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].GetKind() == "" {
			items[i].SetGroupVersionKind(gvr.GroupVersion().WithKind(string(kind)))
		}
	}
	return items, nil
}

// Get fetches a single object
func (c *Client) Get(ctx context.Context, gvr schema.GroupVersionResource, namespace, name string) (*unstructured.Unstructured, error) {
	var ri dynamic.ResourceInterface = c.dynamic.Resource(gvr)
	if namespace != "" {
		ri = c.dynamic.Resource(gvr).Namespace(namespace)
	}
	obj, err := ri.Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("resource not found: %w", err)
	}
	return obj, nil
}

// ServerResources returns every served resource list. Partial discovery
// failures (an aggregated API that is down) are logged and tolerated.
func (c *Client) ServerResources() ([]*metav1.APIGroup, []*metav1.APIResourceList, error) {
	groups, lists, err := c.discovery.ServerGroupsAndResources()
	if err != nil {
		if !discovery.IsGroupDiscoveryFailedError(err) {
			return nil, nil, fmt.Errorf("discovery failed for %s: %w", c.contextName, err)
		}
		logging.Warn("partial discovery failure", "context", c.contextName, "error", err)
	}
	return groups, lists, nil
}

// Events returns events about one object, newest first
func (c *Client) Events(ctx context.Context, namespace, name, uid string) ([]corev1.Event, error) {
	// Use field selector to filter events for this specific resource
	fieldSelector := fmt.Sprintf("involvedObject.name=%s,involvedObject.namespace=%s", name, namespace)
	if uid != "" {
		fieldSelector += fmt.Sprintf(",involvedObject.uid=%s", uid)
	}

	list, err := c.clientset.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{
		FieldSelector: fieldSelector,
		Limit:         EventLimit,
	})
	if err != nil {
		return nil, err
	}

	events := list.Items
	sort.Slice(events, func(i, j int) bool {
		return eventTime(events[i]).After(eventTime(events[j]))
	})
	return events, nil
}
