package kubeconfig

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/renato0307/fluxtree/internal/cli"
	"github.com/renato0307/fluxtree/internal/logging"
)

// ConfigSource reads and switches the kubeconfig. *cli.Kubectl implements it.
type ConfigSource interface {
	ConfigView(ctx context.Context) (cli.Result, error)
	UseContext(ctx context.Context, name string) (cli.Result, error)
}

// Options configures a Controller. All fields are optional.
type Options struct {
	Sink InvalidationSink
	// Report receives user-visible errors
	Report   func(err error)
	Observer Observer
}

// Controller polls the kubeconfig and invalidates views when it changes.
// It is the only writer of the committed snapshot and of the state.
type Controller struct {
	source   ConfigSource
	sink     InvalidationSink
	report   func(err error)
	observer Observer

	status   atomic.Pointer[Status]
	snapshot atomic.Pointer[Snapshot]

	clusterReachable atomic.Bool
	gitopsEnabled    atomic.Bool

	group singleflight.Group
	force atomic.Bool

	log *logging.Logger
}

// NewController creates a controller in the Loading state with an empty snapshot
func NewController(source ConfigSource, opts Options) *Controller {
	c := &Controller{
		source:   source,
		sink:     opts.Sink,
		report:   opts.Report,
		observer: opts.Observer,
		log:      logging.Component("kubeconfig"),
	}
	c.setState(StateLoading, nil)
	return c
}

// Sync runs one sync cycle. Calls made while a cycle is running wait for it
// and share its result; a forced call arriving mid-cycle causes one more
// cycle so the force is never lost.
func (c *Controller) Sync(ctx context.Context, forceReloadResourceKinds bool) error {
	if forceReloadResourceKinds {
		c.force.Store(true)
	}
	for {
		_, err, _ := c.group.Do("sync", func() (any, error) {
			for {
				force := c.force.Swap(false)
				if err := c.cycle(ctx, force); err != nil {
					return nil, err
				}
				if !c.force.Load() {
					return nil, nil
				}
			}
		})
		// A force stored after the leader's last check joined a flight that
		// had already finished cycling
		if err != nil || !c.force.Load() {
			return err
		}
	}
}

func (c *Controller) cycle(ctx context.Context, force bool) error {
	log := c.log.With("cycle", uuid.NewString()[:8], "force", force)
	start := time.Now()

	c.setState(StateLoading, nil)

	res, err := c.source.ConfigView(ctx)
	if err := cli.Check("kubectl config view", res, err, false); err != nil {
		return c.fail(log, start, newCLIError("failed to read kubeconfig", err))
	}

	next, err := Parse([]byte(res.Stdout))
	if err != nil {
		return c.fail(log, start, err)
	}

	c.setState(StateLoaded, nil)

	prev := c.snapshot.Load()
	changes := Diff(prev, next)
	log.Debug("kubeconfig diff",
		"textChanged", changes.TextChanged,
		"contextsListChanged", changes.ContextsListChanged,
		"currentContextChanged", changes.CurrentContextChanged,
		"contexts", len(next.contexts),
	)

	var signals []Signal
	if !changes.TextChanged {
		if prev == nil {
			prev = Empty()
		}
		c.checkCurrentContext(prev)
		if force {
			signals = append(signals, SignalResourceKinds)
		}
		c.dispatch(log, signals)
		c.observe("unchanged", start)
		return nil
	}

	c.snapshot.Store(next)

	if changes.CurrentContextChanged {
		c.MarkCluster(false, false)
	}
	c.checkCurrentContext(next)

	switch {
	case changes.CurrentContextChanged || force:
		signals = append(signals, SignalClusterTree, SignalResourceKinds, SignalSourceTree, SignalWorkloadTree)
	case changes.ContextsListChanged:
		signals = append(signals, SignalClusterTree)
	}
	c.dispatch(log, signals)
	c.observe("changed", start)
	log.Info("kubeconfig synced", "current", next.current, "duration", time.Since(start).String())
	return nil
}

func (c *Controller) fail(log *logging.Logger, start time.Time, err error) error {
	c.setState(StateFailed, err)
	log.Error("kubeconfig sync failed", "error", err)
	c.reportError(err)
	c.observe("failed", start)
	return err
}

func (c *Controller) checkCurrentContext(s *Snapshot) {
	if s.HasContext(s.current) {
		return
	}
	c.setState(StateNoContextSelected, nil)
	c.MarkCluster(false, false)
}

func (c *Controller) dispatch(log *logging.Logger, signals []Signal) {
	if len(signals) == 0 {
		return
	}
	for _, s := range signals {
		log.Debug("invalidate", "signal", s.String())
		if c.observer != nil {
			c.observer.Invalidated(s.String())
		}
	}
	if c.sink != nil {
		c.sink.Invalidate(signals...)
	}
}

func (c *Controller) observe(outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.SyncCompleted(outcome, time.Since(start))
	}
}

func (c *Controller) reportError(err error) {
	if c.report != nil {
		c.report(err)
	}
}

// SwitchContext makes name the current context. On failure the error is
// reported and the previous context stays active.
func (c *Controller) SwitchContext(ctx context.Context, name string) error {
	res, err := c.source.UseContext(ctx, name)
	if err := cli.Check("kubectl config use-context", res, err, true); err != nil {
		cerr := newCLIError("failed to switch context to "+name, err)
		c.log.Warn("context switch failed", "context", name, "error", err)
		c.reportError(cerr)
		return cerr
	}
	c.log.Info("context switched", "context", name)
	return c.Sync(ctx, true)
}

// Run syncs once and then every interval until ctx is cancelled. Cycle
// errors are reported, not returned.
func (c *Controller) Run(ctx context.Context, interval time.Duration) {
	_ = c.Sync(ctx, false)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Sync(ctx, false)
		}
	}
}

func (c *Controller) setState(s State, err error) {
	c.status.Store(&Status{State: s, Err: err, Since: time.Now()})
}

// Status returns the current state and its error
func (c *Controller) Status() Status {
	return *c.status.Load()
}

// State returns the current state
func (c *Controller) State() State {
	return c.status.Load().State
}

// Snapshot returns the last committed snapshot, never nil
func (c *Controller) Snapshot() *Snapshot {
	if s := c.snapshot.Load(); s != nil {
		return s
	}
	return Empty()
}

// MarkCluster records what the views learned about the current cluster
func (c *Controller) MarkCluster(reachable, gitops bool) {
	c.clusterReachable.Store(reachable)
	c.gitopsEnabled.Store(gitops)
}

// ClusterReachable reports whether the current cluster answered the last request
func (c *Controller) ClusterReachable() bool {
	return c.clusterReachable.Load()
}

// GitOpsEnabled reports whether Flux is installed on the current cluster
func (c *Controller) GitOpsEnabled() bool {
	return c.gitopsEnabled.Load()
}
