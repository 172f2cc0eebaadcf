package commands

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/resources"
	"github.com/renato0307/fluxtree/internal/tree"
)

// Deps are the collaborators commands need. Nil fields disable the
// commands that use them.
type Deps struct {
	Flux FluxRunner
	// Client returns the client of the current context
	Client func() (*k8s.Client, error)
	// CurrentContext names the current context for the history view
	CurrentContext func() string
	// History renders the action history
	History func() string
}

func (d Deps) currentContext() string {
	if d.CurrentContext == nil {
		return ""
	}
	return d.CurrentContext()
}

// Registry holds all available commands and provides filtering
type Registry struct {
	commands []Command
}

// NewRegistry creates a new command registry with default commands
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		commands: []Command{
			// Navigation commands
			{
				Name:        "clusters",
				Description: "Switch to the Clusters tab",
				Category:    CategoryNavigation,
				Shortcut:    "1",
				Execute:     NavigationCommand("clusters"),
			},
			{
				Name:        "sources",
				Description: "Switch to the Sources tab",
				Category:    CategoryNavigation,
				Shortcut:    "2",
				Execute:     NavigationCommand("sources"),
			},
			{
				Name:        "workloads",
				Description: "Switch to the Workloads tab",
				Category:    CategoryNavigation,
				Shortcut:    "3",
				Execute:     NavigationCommand("workloads"),
			},
			{
				Name:        "docs",
				Description: "Switch to the Docs tab",
				Category:    CategoryNavigation,
				Shortcut:    "4",
				Execute:     NavigationCommand("docs"),
			},
			{
				Name:        "contexts",
				Description: "Pick a kubeconfig context",
				Category:    CategoryNavigation,
				Shortcut:    "ctrl+k",
				Execute:     ContextPickerCommand(),
			},
			{
				Name:        "refresh",
				Description: "Re-read the kubeconfig and reload every tree",
				Category:    CategoryNavigation,
				Shortcut:    "ctrl+r",
				Execute:     RefreshCommand(),
			},
			{
				Name:        "history",
				Description: "Show actions run in this session",
				Category:    CategoryNavigation,
				Shortcut:    "H",
				Execute:     HistoryCommand(deps),
			},
			{
				Name:        "quit",
				Description: "Exit fluxtree",
				Category:    CategoryNavigation,
				Execute:     QuitCommand(),
			},

			// Actions on the selected node
			{
				Name:        "reconcile",
				Description: "Reconcile with Flux now",
				Category:    CategoryAction,
				Contexts:    []string{tree.ContextReconcilable},
				Shortcut:    "r",
				ArgPattern:  " [with-source: true|false]",
				Execute:     ReconcileCommand(deps),
			},
			{
				Name:          "reconcile-with-source",
				Description:   "Fetch the source, then reconcile",
				Category:      CategoryAction,
				Contexts:      []string{tree.ContextReconcilable},
				ResourceKinds: []resources.Kind{resources.KindKustomization, resources.KindHelmRelease},
				Execute: func(ctx CommandContext) tea.Cmd {
					ctx.Args = "true"
					return ReconcileCommand(deps)(ctx)
				},
			},
			{
				Name:        "suspend",
				Description: "Suspend reconciliation",
				Category:    CategoryAction,
				Contexts:    []string{tree.ContextReconcilable, tree.ContextNotSuspend},
				Shortcut:    "s",
				Execute:     SuspendCommand(deps),

				NeedsConfirmation: true,
			},
			{
				Name:        "resume",
				Description: "Resume reconciliation",
				Category:    CategoryAction,
				Contexts:    []string{tree.ContextReconcilable, tree.ContextSuspend},
				Shortcut:    "R",
				Execute:     ResumeCommand(deps),
			},
			{
				Name:        "yaml",
				Description: "View resource YAML",
				Category:    CategoryAction,
				Contexts:    []string{tree.ContextResource},
				Shortcut:    "y",
				Execute:     YamlCommand(),
			},
			{
				Name:        "describe",
				Description: "View resource details and events",
				Category:    CategoryAction,
				Contexts:    []string{tree.ContextResource},
				Shortcut:    "d",
				Execute:     DescribeCommand(deps),
			},
			{
				Name:        "copy",
				Description: "Copy kind/namespace/name to the clipboard",
				Category:    CategoryAction,
				Contexts:    []string{tree.ContextResource},
				Shortcut:    "c",
				Execute:     CopyCommand(),
			},
			{
				Name:        "copy-link",
				Description: "Copy the documentation link",
				Category:    CategoryAction,
				Contexts:    []string{tree.ContextDocLink},
				Shortcut:    "c",
				Execute:     CopyCommand(),
			},
			{
				Name:        "use-context",
				Description: "Make this the current context",
				Category:    CategoryAction,
				Contexts:    []string{tree.ContextCluster},
				Shortcut:    "u",
				ArgPattern:  " [context]",
				Execute:     ContextCommand(),
			},
		},
	}
}

// GetByCategory returns all commands in a category
func (r *Registry) GetByCategory(category CommandCategory) []Command {
	result := []Command{}
	for _, cmd := range r.commands {
		if cmd.Category == category {
			result = append(result, cmd)
		}
	}
	return result
}

// ForNode returns the navigation commands plus the actions that apply to n
func (r *Registry) ForNode(n *tree.Node) []Command {
	result := []Command{}
	for _, cmd := range r.commands {
		if cmd.AppliesTo(n) {
			result = append(result, cmd)
		}
	}
	return result
}

// Filter returns commands matching the query using fuzzy search
func (r *Registry) Filter(query string, candidates []Command) []Command {
	// If query is empty, return all candidates
	if query == "" {
		return candidates
	}

	names := make([]string, len(candidates))
	for i, cmd := range candidates {
		names[i] = cmd.Name
	}

	matches := fuzzy.Find(query, names)

	// Return matching commands in ranked order
	result := make([]Command, len(matches))
	for i, match := range matches {
		result[i] = candidates[match.Index]
	}
	return result
}

// Get returns a command by name, or nil if not found
func (r *Registry) Get(name string) *Command {
	for _, cmd := range r.commands {
		if strings.EqualFold(cmd.Name, name) {
			return &cmd
		}
	}
	return nil
}

// FindByShortcut returns the command bound to key that applies to n
func (r *Registry) FindByShortcut(key string, n *tree.Node) *Command {
	for _, cmd := range r.commands {
		if cmd.Shortcut == key && cmd.AppliesTo(n) {
			return &cmd
		}
	}
	return nil
}
