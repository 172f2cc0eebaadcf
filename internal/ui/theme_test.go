package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/renato0307/fluxtree/internal/tree"
)

func TestGetTheme(t *testing.T) {
	for _, name := range AvailableThemes() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, GetTheme(name).Name)
		})
	}

	assert.Equal(t, "charm", GetTheme("no-such-theme").Name)
}

func TestIconStyle(t *testing.T) {
	theme := ThemeCharm()

	tests := []struct {
		icon     tree.Icon
		expected lipgloss.TerminalColor
	}{
		{tree.IconSuccess, theme.Success},
		{tree.IconError, theme.Error},
		{tree.IconWarning, theme.Warning},
		{tree.IconProgressing, theme.Secondary},
		{tree.IconSuspended, theme.Muted},
		{tree.IconCluster, theme.Primary},
	}

	for _, tt := range tests {
		t.Run(string(tt.icon), func(t *testing.T) {
			assert.Equal(t, tt.expected, theme.IconStyle(tt.icon).GetForeground())
		})
	}
}
