package cli

import (
	"context"
	"strings"
)

// Flux runs flux CLI actions against Flux objects
type Flux struct {
	runner     Runner
	path       string
	kubeconfig string
}

// NewFlux creates a flux wrapper. An empty path means "flux" from PATH.
func NewFlux(runner Runner, path, kubeconfig string) *Flux {
	if path == "" {
		path = "flux"
	}
	return &Flux{runner: runner, path: path, kubeconfig: kubeconfig}
}

// Target identifies the object a flux action applies to
type Target struct {
	Kind      []string // flux CLI kind path, e.g. ["source", "git"]
	Namespace string
	Name      string
}

func (f *Flux) run(ctx context.Context, verb string, t Target, extra ...string) error {
	args := []string{verb}
	args = append(args, t.Kind...)
	args = append(args, t.Name, "--namespace", t.Namespace)
	args = append(args, extra...)
	if f.kubeconfig != "" {
		args = append(args, "--kubeconfig", f.kubeconfig)
	}
	res, err := f.runner.Run(ctx, f.path, args...)
	return Check(f.path+" "+verb+" "+strings.Join(t.Kind, " "), res, err, false)
}

// Reconcile asks the controller to reconcile the object now
func (f *Flux) Reconcile(ctx context.Context, t Target, withSource bool) error {
	if withSource {
		return f.run(ctx, "reconcile", t, "--with-source")
	}
	return f.run(ctx, "reconcile", t)
}

// Suspend stops reconciliation of the object
func (f *Flux) Suspend(ctx context.Context, t Target) error {
	return f.run(ctx, "suspend", t)
}

// Resume restarts reconciliation of the object
func (f *Flux) Resume(ctx context.Context, t Target) error {
	return f.run(ctx, "resume", t)
}
