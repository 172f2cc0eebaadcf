package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/fluxtree/internal/resources"
	"github.com/renato0307/fluxtree/internal/tree"
)

// ResourceInfo contains identifying information about the selected object
type ResourceInfo struct {
	Name      string
	Namespace string
	Kind      string
}

// Ref renders kind/namespace/name, or kind/name for cluster-scoped objects
func (r ResourceInfo) Ref() string {
	if r.Namespace == "" {
		return r.Kind + "/" + r.Name
	}
	return r.Kind + "/" + r.Namespace + "/" + r.Name
}

// CommandCategory represents the type of command
type CommandCategory int

const (
	CategoryNavigation CommandCategory = iota // tabs, history, quit
	CategoryAction                            // acts on the selected node
)

// CommandContext provides context for command execution
type CommandContext struct {
	Node *tree.Node // Selected node, nil when the tree is empty
	Args string     // Additional command arguments (inline args string)
}

// GetResourceInfo extracts resource identification from the selected node
func (ctx *CommandContext) GetResourceInfo() ResourceInfo {
	if ctx.Node == nil {
		return ResourceInfo{}
	}
	kind := ctx.Node.ResourceKind
	if kind == "" {
		kind = ctx.Node.Kind.String()
	}
	return ResourceInfo{
		Name:      ctx.Node.Name,
		Namespace: ctx.Node.Namespace,
		Kind:      kind,
	}
}

// FluxKind returns the flux CLI kind path of the selected node, or nil
func (ctx *CommandContext) FluxKind() []string {
	if ctx.Node == nil {
		return nil
	}
	info, ok := resources.Lookup(resources.Kind(ctx.Node.ResourceKind))
	if !ok {
		return nil
	}
	return info.FluxCLI
}

// ParseArgs parses inline args string into a typed struct using reflection
// Usage: ctx.ParseArgs(&myArgsStruct)
func (ctx *CommandContext) ParseArgs(dest any) error {
	return ParseInlineArgs(dest, ctx.Args)
}

// ExecuteFunc is a function that executes a command and returns a Bubble Tea command
type ExecuteFunc func(ctx CommandContext) tea.Cmd

// Command represents a command in the palette
type Command struct {
	Name        string          // Short command name (e.g., "reconcile", "yaml")
	Description string          // Human-readable description
	Category    CommandCategory // Command category
	// Contexts are node context tags that must all be present (empty = any node)
	Contexts []string
	// ResourceKinds restricts the command to these kinds (empty = all)
	ResourceKinds     []resources.Kind
	NeedsConfirmation bool        // Whether the command requires confirmation
	Execute           ExecuteFunc // Execution function
	Shortcut          string      // Keyboard shortcut (e.g., "r")
	ArgPattern        string      // Display pattern for palette (e.g., " [with-source]")
}

// AppliesTo reports whether the command can run on n
func (c Command) AppliesTo(n *tree.Node) bool {
	if c.Category != CategoryAction {
		return true
	}
	if n == nil {
		return false
	}
	for _, tag := range c.Contexts {
		if !n.HasContext(tag) {
			return false
		}
	}
	if len(c.ResourceKinds) == 0 {
		return true
	}
	for _, k := range c.ResourceKinds {
		if string(k) == n.ResourceKind {
			return true
		}
	}
	return false
}
