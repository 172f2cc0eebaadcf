package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/fluxtree/internal/cli"
	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/messages"
	"github.com/renato0307/fluxtree/internal/types"
)

// FluxRunner runs flux CLI actions. *cli.Flux implements it.
type FluxRunner interface {
	Reconcile(ctx context.Context, t cli.Target, withSource bool) error
	Suspend(ctx context.Context, t cli.Target) error
	Resume(ctx context.Context, t cli.Target) error
}

// ReconcileArgs defines arguments for the reconcile command
type ReconcileArgs struct {
	WithSource bool `form:"with-source" title:"With source" optional:"true" default:"false"`
}

// ReconcileCommand asks Flux to reconcile the selected source or workload
func ReconcileCommand(deps Deps) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		var args ReconcileArgs
		if err := ctx.ParseArgs(&args); err != nil {
			return messages.ErrorCmd("Invalid args: %v", err)
		}
		return fluxCommand(deps, ctx, "reconcile", "Reconciled", func(c context.Context, t cli.Target) error {
			return deps.Flux.Reconcile(c, t, args.WithSource)
		})
	}
}

// SuspendCommand stops reconciliation of the selected object
func SuspendCommand(deps Deps) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		return fluxCommand(deps, ctx, "suspend", "Suspended", func(c context.Context, t cli.Target) error {
			return deps.Flux.Suspend(c, t)
		})
	}
}

// ResumeCommand restarts reconciliation of the selected object
func ResumeCommand(deps Deps) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		return fluxCommand(deps, ctx, "resume", "Resumed", func(c context.Context, t cli.Target) error {
			return deps.Flux.Resume(c, t)
		})
	}
}

func fluxCommand(deps Deps, ctx CommandContext, verb, done string, run func(context.Context, cli.Target) error) tea.Cmd {
	info := ctx.GetResourceInfo()
	kind := ctx.FluxKind()
	if kind == nil {
		return messages.ErrorCmd("Cannot %s %s: not a Flux object", verb, info.Kind)
	}
	if deps.Flux == nil {
		return messages.ErrorCmd("Cannot %s: flux CLI is not configured", verb)
	}

	target := cli.Target{Kind: kind, Namespace: info.Namespace, Name: info.Name}
	metadata := &types.CommandMetadata{
		Command: fmt.Sprintf("flux %s %s %s -n %s", verb, strings.Join(kind, " "), info.Name, info.Namespace),
		Context: deps.currentContext(),
	}

	cmd := func() tea.Msg {
		start := time.Now()
		c, cancel := context.WithTimeout(context.Background(), DefaultActionTimeout)
		defer cancel()

		err := run(c, target)
		metadata.Timestamp = start
		metadata.Duration = time.Since(start)
		if err != nil {
			logging.Warn("flux action failed", "verb", verb, "object", info.Ref(), "error", err)
			return types.ErrorStatusMsg(fmt.Sprintf("%s failed: %v", capitalizeFirst(verb), err))
		}
		logging.Info("flux action done", "verb", verb, "object", info.Ref(), "duration", metadata.Duration.String())
		return types.SuccessMsg(fmt.Sprintf("%s %s", done, info.Ref()))
	}
	return messages.WithRefresh(messages.WithHistory(cmd, metadata))
}

// capitalizeFirst capitalizes the first letter of a string
func capitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[0:1]) + s[1:]
}
