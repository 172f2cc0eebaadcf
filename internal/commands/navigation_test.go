package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/fluxtree/internal/types"
)

func TestNavigationCommand(t *testing.T) {
	for _, id := range []string{"clusters", "sources", "workloads", "docs"} {
		t.Run(id, func(t *testing.T) {
			msg := NavigationCommand(id)(CommandContext{})()
			assert.Equal(t, types.ScreenSwitchMsg{ScreenID: id}, msg)
		})
	}
}

func TestRefreshCommand(t *testing.T) {
	assert.Equal(t, types.RefreshMsg{Force: true}, RefreshCommand()(CommandContext{})())
}

func TestHistoryCommand(t *testing.T) {
	tests := []struct {
		name    string
		history func() string
		want    string
	}{
		{"no history source", nil, "No actions run yet"},
		{"empty history", func() string { return "" }, "No actions run yet"},
		{"with entries", func() string { return "flux reconcile kustomization apps -n flux-system" }, "flux reconcile kustomization apps -n flux-system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := HistoryCommand(Deps{History: tt.history})(CommandContext{})()
			full, ok := msg.(types.ShowFullScreenMsg)
			require.True(t, ok)
			assert.Equal(t, types.FullScreenHistory, full.ViewType)
			assert.Equal(t, tt.want, full.Content)
		})
	}
}
