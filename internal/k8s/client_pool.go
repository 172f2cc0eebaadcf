package k8s

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// ClientStatus represents the state of a context's client in the pool
type ClientStatus string

const (
	StatusNotLoaded ClientStatus = "Not Loaded"
	StatusLoading   ClientStatus = "Loading"
	StatusLoaded    ClientStatus = "Loaded"
	StatusFailed    ClientStatus = "Failed"
)

// ClientFactory builds the client for a kubeconfig context
type ClientFactory func(contextName string) (*Client, error)

// PoolEntry wraps a client with metadata
type PoolEntry struct {
	Client   *Client
	Kinds    *KindCache
	Status   ClientStatus
	Error    error
	LoadedAt time.Time
}

// ClientPool keeps one client per context so switching back and forth
// between clusters does not rebuild transports every time
type ClientPool struct {
	mu      sync.RWMutex
	entries map[string]*PoolEntry
	active  string     // Current context name, never evicted
	maxSize int        // Pool size limit
	lru     *list.List // LRU eviction order
	factory ClientFactory
}

// NewClientPool creates a new client pool
func NewClientPool(factory ClientFactory, maxSize int) *ClientPool {
	if maxSize <= 0 {
		maxSize = DefaultPoolSize
	}
	return &ClientPool{
		entries: make(map[string]*PoolEntry),
		lru:     list.New(),
		maxSize: maxSize,
		factory: factory,
	}
}

// Get returns the client for contextName, building and checking it on first use
func (p *ClientPool) Get(contextName string) (*PoolEntry, error) {
	p.mu.Lock()
	if entry, ok := p.entries[contextName]; ok && entry.Status == StatusLoaded {
		p.markUsed(contextName)
		p.mu.Unlock()
		return entry, nil
	}
	p.entries[contextName] = &PoolEntry{Status: StatusLoading}
	p.mu.Unlock()

	client, err := p.load(contextName)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.entries[contextName] = &PoolEntry{Status: StatusFailed, Error: err}
		return nil, err
	}

	// Check pool size and evict if needed
	if p.loadedCount() >= p.maxSize {
		p.evictLRU()
	}

	entry := &PoolEntry{
		Client:   client,
		Kinds:    NewKindCache(),
		Status:   StatusLoaded,
		LoadedAt: time.Now(),
	}
	p.entries[contextName] = entry
	p.touch(contextName)
	return entry, nil
}

func (p *ClientPool) load(contextName string) (*Client, error) {
	if p.factory == nil {
		return nil, fmt.Errorf("no client factory configured")
	}
	client, err := p.factory(contextName)
	if err != nil {
		return nil, err
	}
	if _, err := client.ServerVersion(); err != nil {
		return nil, err
	}
	return client, nil
}

// Status returns the status of a context and its last error
func (p *ClientPool) Status(contextName string) (ClientStatus, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if entry, ok := p.entries[contextName]; ok {
		return entry.Status, entry.Error
	}
	return StatusNotLoaded, nil
}

// SetActive marks contextName as the current context so it is never evicted
func (p *ClientPool) SetActive(contextName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = contextName
	p.markUsed(contextName)
}

// Active returns the current context name
func (p *ClientPool) Active() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}

// Forget drops one context, e.g. after it failed and should be retried
func (p *ClientPool) Forget(contextName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remove(contextName)
}

// Reset drops every client. Called when the kubeconfig changes since
// credentials or servers may have changed under the same context name.
func (p *ClientPool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = make(map[string]*PoolEntry)
	p.lru.Init()
}

// ResetKinds empties every context's kind cache so the next view load
// rediscovers what the cluster serves
func (p *ClientPool) ResetKinds() {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, e := range p.entries {
		if e.Kinds != nil {
			e.Kinds.Reset()
		}
	}
}

// Len returns the number of loaded clients
func (p *ClientPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadedCount()
}

// Private helper methods

// Must be called with p.mu held
func (p *ClientPool) loadedCount() int {
	n := 0
	for _, e := range p.entries {
		if e.Status == StatusLoaded {
			n++
		}
	}
	return n
}

// markUsed moves a context to the front of the LRU list
// Must be called with p.mu held
func (p *ClientPool) markUsed(contextName string) {
	for e := p.lru.Front(); e != nil; e = e.Next() {
		if e.Value.(string) == contextName {
			p.lru.MoveToFront(e)
			return
		}
	}
}

// touch is markUsed that also adds missing contexts
// Must be called with p.mu held
func (p *ClientPool) touch(contextName string) {
	for e := p.lru.Front(); e != nil; e = e.Next() {
		if e.Value.(string) == contextName {
			p.lru.MoveToFront(e)
			return
		}
	}
	p.lru.PushFront(contextName)
}

// evictLRU evicts the least recently used context other than the active one
// Must be called with p.mu held
func (p *ClientPool) evictLRU() {
	for e := p.lru.Back(); e != nil; e = e.Prev() {
		contextName := e.Value.(string)
		if contextName == p.active {
			continue
		}
		p.remove(contextName)
		return
	}
}

// Must be called with p.mu held
func (p *ClientPool) remove(contextName string) {
	delete(p.entries, contextName)
	for e := p.lru.Front(); e != nil; e = e.Next() {
		if e.Value.(string) == contextName {
			p.lru.Remove(e)
			return
		}
	}
}
