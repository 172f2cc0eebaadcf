package app

import (
	"errors"
	"fmt"

	"github.com/renato0307/fluxtree/internal/cli"
	"github.com/renato0307/fluxtree/internal/config"
	"github.com/renato0307/fluxtree/internal/instrumentation"
	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/kubeconfig"
	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/types"
	"github.com/renato0307/fluxtree/internal/ui"
	"github.com/renato0307/fluxtree/internal/views"
)

// Runtime is the wired object graph shared by the TUI and the headless
// commands
type Runtime struct {
	Context *types.AppContext
	Metrics *instrumentation.Metrics
	Kubectl *cli.Kubectl
}

// NewRuntime builds the sync controller, client pool, views and CLI
// wrappers from cfg. runner executes kubectl and flux.
func NewRuntime(cfg config.Config, runner cli.Runner) *Runtime {
	return newRuntime(cfg, runner, nil)
}

// newRuntime lets tests replace how cluster clients are built
func newRuntime(cfg config.Config, runner cli.Runner, factory func(ctrl *kubeconfig.Controller) k8s.ClientFactory) *Runtime {
	kubectl := cli.NewKubectl(runner, cfg.KubectlPath, cfg.Kubeconfig)
	metrics := instrumentation.NewMetrics()

	// The controller needs the dispatcher as its sink and the views need
	// the controller; the sink resolves the dispatcher late.
	var dispatcher *views.Dispatcher
	ctrl := kubeconfig.NewController(kubectl, kubeconfig.Options{
		Sink: kubeconfig.SinkFunc(func(signals ...kubeconfig.Signal) {
			if dispatcher != nil {
				dispatcher.Invalidate(signals...)
			}
		}),
		Report: func(err error) {
			logging.Error("kubeconfig sync error", "error", err)
		},
		Observer: metrics,
	})

	if factory == nil {
		factory = restClientFactory
	}
	pool := k8s.NewClientPool(factory(ctrl), cfg.PoolSize)

	env := views.Env{Config: ctrl, Pool: pool, WithIcons: cfg.WithIcons()}
	dispatcher = views.NewDispatcher(pool,
		views.NewClusterView(env),
		views.NewSourceView(env),
		views.NewWorkloadView(env),
		views.NewDocumentationView(nil),
	)

	flux := cli.NewFlux(runner, cfg.FluxPath, cfg.Kubeconfig)

	appCtx := types.NewAppContext(ui.GetTheme(cfg.Theme), ctrl, pool, flux, dispatcher)
	appCtx.PollInterval = cfg.PollInterval
	appCtx.WithIcons = cfg.WithIcons()
	appCtx.Actions = metrics

	return &Runtime{Context: appCtx, Metrics: metrics, Kubectl: kubectl}
}

// restClientFactory builds clients from the committed kubeconfig snapshot
func restClientFactory(ctrl *kubeconfig.Controller) k8s.ClientFactory {
	return func(contextName string) (*k8s.Client, error) {
		rc, err := ctrl.Snapshot().RESTConfig(contextName)
		if err != nil {
			return nil, err
		}
		return k8s.NewClient(contextName, rc)
	}
}

var errNoContext = errors.New("no kubeconfig context selected")

// CurrentClient returns the pooled client of the current context
func (r *Runtime) CurrentClient() (*k8s.Client, error) {
	return currentClient(r.Context)
}

func currentClient(appCtx *types.AppContext) (*k8s.Client, error) {
	snap := appCtx.Config.Snapshot()
	name := snap.CurrentContext()
	if name == "" || !snap.HasContext(name) {
		return nil, errNoContext
	}
	entry, err := appCtx.Pool.Get(name)
	if err != nil {
		return nil, fmt.Errorf("context %s: %w", name, err)
	}
	return entry.Client, nil
}
