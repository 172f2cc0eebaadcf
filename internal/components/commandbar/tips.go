package commandbar

import (
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// usageTips rotate in the hints line while the bar is hidden. The first
// one is shown at startup.
var usageTips = []string{
	"[/ filter  : commands  ctrl+p palette  ctrl+k contexts]",
	"Tip: press r on a source or workload to reconcile it now",
	"Tip: :reconcile true fetches the source first",
	"Tip: s suspends and R resumes reconciliation",
	"Tip: y shows YAML and d describes the selected object",
	"Tip: filter with !text to hide matching rows",
	"Tip: ctrl+r re-reads the kubeconfig and reloads every tree",
	"Tip: press u on a cluster to make it the current context",
	"Tip: H shows the actions run in this session",
	"Tip: c copies kind/namespace/name to the clipboard",
	"Tip: tab and shift+tab move between trees",
}

type tipRotationMsg time.Time

func scheduleTipRotation() tea.Cmd {
	return tea.Tick(TipRotationInterval, func(t time.Time) tea.Msg {
		return tipRotationMsg(t)
	})
}

// nextTip picks a random tip other than the current one
func nextTip(current int) int {
	if len(usageTips) < 2 {
		return 0
	}
	next := rand.IntN(len(usageTips) - 1)
	if next >= current {
		next++
	}
	return next
}
