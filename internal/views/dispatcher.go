package views

import (
	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/kubeconfig"
	"github.com/renato0307/fluxtree/internal/logging"
)

// Dispatcher routes kubeconfig invalidation signals to the views
type Dispatcher struct {
	pool      *k8s.ClientPool
	providers map[kubeconfig.Signal]Provider
}

// NewDispatcher wires the views that react to each signal
func NewDispatcher(pool *k8s.ClientPool, cluster, source, workload, docs Provider) *Dispatcher {
	return &Dispatcher{
		pool: pool,
		providers: map[kubeconfig.Signal]Provider{
			kubeconfig.SignalClusterTree:   cluster,
			kubeconfig.SignalSourceTree:    source,
			kubeconfig.SignalWorkloadTree:  workload,
			kubeconfig.SignalDocumentation: docs,
		},
	}
}

// Invalidate implements kubeconfig.InvalidationSink
func (d *Dispatcher) Invalidate(signals ...kubeconfig.Signal) {
	for _, s := range signals {
		logging.Debug("view invalidated", "signal", s.String())
		switch s {
		case kubeconfig.SignalClusterTree:
			// servers or credentials may have changed under the same name
			if d.pool != nil {
				d.pool.Reset()
			}
		case kubeconfig.SignalResourceKinds:
			if d.pool != nil {
				d.pool.ResetKinds()
			}
			continue
		}
		if p := d.providers[s]; p != nil {
			p.Refresh()
		}
	}
}

// Providers returns the views in tab order
func (d *Dispatcher) Providers() []Provider {
	order := []kubeconfig.Signal{
		kubeconfig.SignalClusterTree,
		kubeconfig.SignalSourceTree,
		kubeconfig.SignalWorkloadTree,
		kubeconfig.SignalDocumentation,
	}
	out := make([]Provider, 0, len(order))
	for _, s := range order {
		if p := d.providers[s]; p != nil {
			out = append(out, p)
		}
	}
	return out
}
