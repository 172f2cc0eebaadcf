package cli

import (
	"context"
)

// Kubectl wraps the kubectl config subcommands used by the sync controller
type Kubectl struct {
	runner     Runner
	path       string
	kubeconfig string
}

// NewKubectl creates a kubectl wrapper. An empty path means "kubectl" from PATH.
func NewKubectl(runner Runner, path, kubeconfig string) *Kubectl {
	if path == "" {
		path = "kubectl"
	}
	return &Kubectl{runner: runner, path: path, kubeconfig: kubeconfig}
}

func (k *Kubectl) args(args ...string) []string {
	if k.kubeconfig != "" {
		args = append(args, "--kubeconfig", k.kubeconfig)
	}
	return args
}

// ConfigView returns the merged kubeconfig with credentials
func (k *Kubectl) ConfigView(ctx context.Context) (Result, error) {
	return k.runner.Run(ctx, k.path, k.args("config", "view", "--raw", "-o", "yaml")...)
}

// UseContext switches the current context
func (k *Kubectl) UseContext(ctx context.Context, name string) (Result, error) {
	return k.runner.Run(ctx, k.path, k.args("config", "use-context", name)...)
}

// Kubeconfig returns the explicit kubeconfig path, if any
func (k *Kubectl) Kubeconfig() string {
	return k.kubeconfig
}
