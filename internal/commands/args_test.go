package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testReconcileArgs struct {
	WithSource bool          `form:"with-source" title:"With source" optional:"true" default:"false"`
	Timeout    time.Duration `form:"timeout" title:"Timeout" optional:"true" default:"2m"`
}

type testScopeArgs struct {
	Namespace string `form:"namespace" title:"Namespace"`
	Kind      string `form:"kind" title:"Kind" optional:"true" validate:"oneof=kustomization|helmrelease"`
	Depth     int    `form:"depth" title:"Depth" optional:"true" validate:"min=1,max=5"`
	internal  string
}

func TestParseInlineArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected testReconcileArgs
		wantErr  string
	}{
		{
			name:     "defaults",
			input:    "",
			expected: testReconcileArgs{Timeout: 2 * time.Minute},
		},
		{
			name:     "positional",
			input:    "true 30s",
			expected: testReconcileArgs{WithSource: true, Timeout: 30 * time.Second},
		},
		{
			name:     "named",
			input:    "timeout=5m",
			expected: testReconcileArgs{Timeout: 5 * time.Minute},
		},
		{
			name:     "named before positional",
			input:    "with-source=true 10s",
			expected: testReconcileArgs{WithSource: true, Timeout: 10 * time.Second},
		},
		{
			name:     "extra whitespace",
			input:    "  true   ",
			expected: testReconcileArgs{WithSource: true, Timeout: 2 * time.Minute},
		},
		{name: "bad bool", input: "yes", wantErr: "invalid value for With source: must be true or false"},
		{name: "bad duration", input: "true soon", wantErr: "must be a duration"},
		{name: "unknown name", input: "force=true", wantErr: "unknown argument: force"},
		{name: "too many", input: "true 1m extra", wantErr: "too many arguments: extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var args testReconcileArgs
			err := ParseInlineArgs(&args, tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

func TestParseInlineArgs_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "required only", input: "flux-system"},
		{name: "all valid", input: "apps helmrelease 3"},
		{name: "missing required", input: "", wantErr: "missing required argument: Namespace"},
		{name: "not one of", input: "apps gitrepository", wantErr: "must be one of kustomization, helmrelease"},
		{name: "below min", input: "apps kustomization 0", wantErr: "must be >= 1"},
		{name: "above max", input: "apps depth=9", wantErr: "must be <= 5"},
		{name: "not a number", input: "apps depth=x", wantErr: "must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var args testScopeArgs
			err := ParseInlineArgs(&args, tt.input)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseInlineArgs_CommandArgs(t *testing.T) {
	t.Run("reconcile default", func(t *testing.T) {
		var args ReconcileArgs
		require.NoError(t, ParseInlineArgs(&args, ""))
		assert.False(t, args.WithSource)
	})

	t.Run("reconcile with source", func(t *testing.T) {
		var args ReconcileArgs
		require.NoError(t, ParseInlineArgs(&args, "with-source=true"))
		assert.True(t, args.WithSource)
	})

	t.Run("context", func(t *testing.T) {
		var args ContextArgs
		require.NoError(t, ParseInlineArgs(&args, "kind-dev"))
		assert.Equal(t, "kind-dev", args.ContextName)
	})

	t.Run("context optional", func(t *testing.T) {
		var args ContextArgs
		require.NoError(t, ParseInlineArgs(&args, ""))
		assert.Empty(t, args.ContextName)
	})
}

func TestParseInlineArgs_BadTarget(t *testing.T) {
	assert.NoError(t, ParseInlineArgs(nil, "x"))
	assert.ErrorContains(t, ParseInlineArgs(testScopeArgs{}, "x"), "pointer to struct")

	n := 3
	assert.ErrorContains(t, ParseInlineArgs(&n, "x"), "pointer to struct")
}
