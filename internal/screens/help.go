package screens

import (
	"fmt"
	"strings"

	"github.com/renato0307/fluxtree/internal/keyboard"
)

// HelpEntry represents a keyboard shortcut entry
type HelpEntry struct {
	Section     string
	Shortcut    string
	Description string
}

// HelpEntries returns all keyboard shortcuts organized by section
func HelpEntries(keys *keyboard.Keys) []HelpEntry {
	return []HelpEntry{
		// Navigation
		{"Navigation", "↑/↓ or " + keys.Up + "/" + keys.Down, "Move selection up/down"},
		{"Navigation", keys.Expand + " or →", "Expand node"},
		{"Navigation", keys.Collapse + " or ←", "Collapse node or go to parent"},
		{"Navigation", keys.Toggle, "Toggle node"},
		{"Navigation", keys.JumpTop + "/" + keys.JumpBottom, "Jump to top/bottom"},
		{"Navigation", keys.PageUp + "/" + keys.PageDown, "Page up/down"},
		{"Navigation", keys.NextView + "/" + keys.PrevView, "Next/previous view"},
		{"Navigation", "1-4", "Clusters, sources, workloads, docs"},

		// Flux
		{"Flux", keys.Reconcile, "Reconcile selected resource"},
		{"Flux", keys.Suspend, "Suspend (asks for confirmation)"},
		{"Flux", keys.Resume, "Resume"},

		// Resources
		{"Resources", keys.Describe, "Describe selected resource"},
		{"Resources", keys.YAML, "View YAML"},
		{"Resources", keys.Copy, "Copy reference or link"},

		// Context
		{"Context", keys.ContextPicker, "Pick Kubernetes context"},
		{"Context", "u", "Use the selected cluster's context"},

		// Global
		{"Global", keys.FilterActivate, "Filter current tree (! negates)"},
		{"Global", ":", "Run a command"},
		{"Global", keys.PaletteActivate, "Open command palette"},
		{"Global", keys.Back, "Back/clear filter"},
		{"Global", keys.Refresh, "Sync kubeconfig and reload trees"},
		{"Global", keys.History, "Action history"},
		{"Global", keys.Help, "Show this help"},
		{"Global", keys.Quit, "Quit application"},

		// Palette
		{"Palette", "↑/↓", "Navigate suggestions"},
		{"Palette", "enter", "Execute command"},
		{"Palette", "tab", "Auto-complete"},
		{"Palette", "esc", "Cancel"},
	}
}

// RenderHelp lays the entries out one section at a time
func RenderHelp(entries []HelpEntry) string {
	width := 0
	for _, e := range entries {
		width = max(width, len([]rune(e.Shortcut)))
	}

	var b strings.Builder
	section := ""
	for _, e := range entries {
		if e.Section != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = e.Section
			b.WriteString(section + "\n")
		}
		pad := width - len([]rune(e.Shortcut))
		fmt.Fprintf(&b, "  %s%s  %s\n", e.Shortcut, strings.Repeat(" ", pad), e.Description)
	}
	return b.String()
}
