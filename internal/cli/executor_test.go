package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Run(t *testing.T) {
	runner := NewExecRunner(5 * time.Second)

	// "go" is always available where these tests run
	res, err := runner.Run(context.Background(), "go", "version")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "go version")
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	runner := NewExecRunner(5 * time.Second)

	res, err := runner.Run(context.Background(), "go", "definitely-not-a-go-subcommand")
	require.NoError(t, err, "non-zero exit is not a transport failure")
	assert.NotEqual(t, 0, res.ExitCode)
	assert.NotEmpty(t, res.Stderr)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	runner := NewExecRunner(0)

	_, err := runner.Run(context.Background(), "fluxtree-no-such-binary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name         string
		res          Result
		err          error
		strictStderr bool
		expectErr    string
	}{
		{
			name: "success",
			res:  Result{Stdout: "ok"},
		},
		{
			name:      "transport error passes through",
			err:       errors.New("timed out"),
			expectErr: "timed out",
		},
		{
			name:      "non-zero exit with stderr",
			res:       Result{ExitCode: 1, Stderr: "error: no context exists with the name: \"x\"\n"},
			expectErr: "kubectl config use-context failed: error: no context exists with the name: \"x\"",
		},
		{
			name:      "non-zero exit without stderr",
			res:       Result{ExitCode: 2},
			expectErr: "kubectl config use-context exited with code 2",
		},
		{
			name: "stderr ignored when not strict",
			res:  Result{Stderr: "warning: deprecated"},
		},
		{
			name:         "stderr fails when strict",
			res:          Result{Stderr: "warning: deprecated"},
			strictStderr: true,
			expectErr:    "kubectl config use-context failed: warning: deprecated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check("kubectl config use-context", tt.res, tt.err, tt.strictStderr)
			if tt.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.expectErr, err.Error())
		})
	}
}

func TestCheck_ErrorType(t *testing.T) {
	err := Check("flux reconcile", Result{ExitCode: 1, Stderr: "boom"}, nil, false)

	var cliErr *Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, 1, cliErr.ExitCode)
	assert.Equal(t, "boom", cliErr.Stderr)
}

func TestKubectl_Args(t *testing.T) {
	fake := NewFakeRunner().
		On("kubectl config view", Result{Stdout: "apiVersion: v1\n"}, nil).
		On("kubectl config use-context", Result{}, nil)

	k := NewKubectl(fake, "", "/tmp/kubeconfig")
	res, err := k.ConfigView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "apiVersion: v1\n", res.Stdout)

	_, err = k.UseContext(context.Background(), "prod")
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"kubectl", "config", "view", "--raw", "-o", "yaml", "--kubeconfig", "/tmp/kubeconfig"}, calls[0])
	assert.Equal(t, []string{"kubectl", "config", "use-context", "prod", "--kubeconfig", "/tmp/kubeconfig"}, calls[1])
}

func TestFlux_Actions(t *testing.T) {
	fake := NewFakeRunner().
		On("flux reconcile", Result{}, nil).
		On("flux suspend", Result{ExitCode: 1, Stderr: "✗ not found"}, nil).
		On("flux resume", Result{}, nil)

	f := NewFlux(fake, "", "")
	target := Target{Kind: []string{"source", "git"}, Namespace: "flux-system", Name: "podinfo"}

	require.NoError(t, f.Reconcile(context.Background(), target, false))
	require.NoError(t, f.Resume(context.Background(), Target{Kind: []string{"kustomization"}, Namespace: "apps", Name: "web"}))

	err := f.Suspend(context.Background(), target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	calls := fake.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, []string{"flux", "reconcile", "source", "git", "podinfo", "--namespace", "flux-system"}, calls[0])
	assert.Equal(t, []string{"flux", "resume", "kustomization", "web", "--namespace", "apps"}, calls[1])

	require.NoError(t, f.Reconcile(context.Background(), Target{Kind: []string{"kustomization"}, Namespace: "apps", Name: "web"}, true))
	assert.Contains(t, fake.Calls()[3], "--with-source")
}
