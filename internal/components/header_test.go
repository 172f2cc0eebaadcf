package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/fluxtree/internal/ui"
)

func TestHeader_View(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		context  string
		state    string
		lastSync time.Time
		want     []string
	}{
		{
			name:     "loaded",
			context:  "kind-dev",
			state:    "Loaded",
			lastSync: now.Add(-2 * time.Second),
			want:     []string{"ctx: kind-dev • Loaded • synced 2s ago"},
		},
		{
			name:  "no context",
			state: "NoContextSelected",
			want:  []string{"ctx: none • NoContextSelected"},
		},
		{
			name:     "minutes",
			context:  "prod",
			lastSync: now.Add(-3 * time.Minute),
			want:     []string{"ctx: prod • synced 3m ago"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader(ui.GetTheme("charm"), "fluxtree")
			h.now = func() time.Time { return now }
			h.SetWidth(160)
			h.SetTabs([]string{"Clusters", "Sources", "Workloads", "Docs"}, 1)
			h.SetContext(tt.context)
			h.SetState(tt.state)
			h.SetLastSync(tt.lastSync)

			view := h.View()
			assert.Contains(t, view, "fluxtree")
			assert.Contains(t, view, "Workloads")
			for _, w := range tt.want {
				assert.Contains(t, view, w)
			}
		})
	}
}

func TestFormatAgo(t *testing.T) {
	assert.Equal(t, "0s ago", formatAgo(0))
	assert.Equal(t, "59s ago", formatAgo(59*time.Second))
	assert.Equal(t, "1m ago", formatAgo(time.Minute))
	assert.Equal(t, "2h ago", formatAgo(2*time.Hour+time.Minute))
}
