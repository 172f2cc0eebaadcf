package k8s

import "time"

// Kubernetes client constants
const (
	// RequestTimeout bounds every API request made for the trees. Views are
	// loaded on demand, so a slow cluster must not freeze expansion forever.
	RequestTimeout = 15 * time.Second

	// DefaultPoolSize is how many per-context clients are kept before the
	// least recently used one is dropped
	DefaultPoolSize = 10

	// EventLimit caps the events fetched for a describe
	EventLimit = 100
)
