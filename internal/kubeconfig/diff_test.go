package kubeconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_SameSnapshotIsUnchanged(t *testing.T) {
	snapshots := []*Snapshot{
		nil,
		Empty(),
		mustParse(t, kubeconfigYAML(t, "a", "a", "b")),
		mustParse(t, kubeconfigYAML(t, "gone", "a", "b")),
		mustParse(t, kubeconfigYAML(t, "")),
		mustParse(t, partialKubeconfig),
	}

	for _, s := range snapshots {
		assert.Equal(t, Changes{}, Diff(s, s))
		assert.False(t, Diff(s, s).Any())
	}
}

func TestDiff(t *testing.T) {
	base := kubeconfigYAML(t, "a", "a", "b")

	tests := []struct {
		name     string
		old      *Snapshot
		new      *Snapshot
		expected Changes
	}{
		{
			name:     "first load",
			old:      nil,
			new:      mustParse(t, base),
			expected: Changes{TextChanged: true, ContextsListChanged: true, CurrentContextChanged: true},
		},
		{
			name:     "current context switched",
			old:      mustParse(t, base),
			new:      mustParse(t, kubeconfigYAML(t, "b", "a", "b")),
			expected: Changes{TextChanged: true, CurrentContextChanged: true},
		},
		{
			name:     "context added",
			old:      mustParse(t, base),
			new:      mustParse(t, kubeconfigYAML(t, "a", "a", "b", "c")),
			expected: Changes{TextChanged: true, ContextsListChanged: true},
		},
		{
			name:     "current context removed but still named",
			old:      mustParse(t, base),
			new:      mustParse(t, kubeconfigYAML(t, "a", "b")),
			expected: Changes{TextChanged: true, ContextsListChanged: true, CurrentContextChanged: true},
		},
		{
			name:     "text only",
			old:      mustParse(t, base),
			new:      mustParse(t, strings.Replace(base, "token-a", "token-rotated", 1)),
			expected: Changes{TextChanged: true},
		},
		{
			name: "same name different cluster",
			old:  mustParse(t, "current-context: a\ncontexts:\n- name: a\n  context: {cluster: one, user: u}\n"),
			new:  mustParse(t, "current-context: a\ncontexts:\n- name: a\n  context: {cluster: two, user: u}\n"),
			// the name is the same so the current context is not considered changed
			expected: Changes{TextChanged: true, ContextsListChanged: true},
		},
		{
			name:     "order is ignored",
			old:      mustParse(t, "contexts:\n- name: a\n  context: {cluster: a}\n- name: b\n  context: {cluster: b}\n"),
			new:      mustParse(t, "contexts:\n- name: b\n  context: {cluster: b}\n- name: a\n  context: {cluster: a}\n"),
			expected: Changes{TextChanged: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Diff(tt.old, tt.new))
		})
	}
}
