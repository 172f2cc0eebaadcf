package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/resources"
	"github.com/renato0307/fluxtree/internal/testutil"
	"github.com/renato0307/fluxtree/internal/tree"
	"github.com/renato0307/fluxtree/internal/types"
)

func TestYamlCommand(t *testing.T) {
	n := workloadNode(resources.KindKustomization, "flux-system", "apps")

	msg := YamlCommand()(CommandContext{Node: n})()
	full, ok := msg.(types.ShowFullScreenMsg)
	require.True(t, ok, "expected ShowFullScreenMsg, got %T", msg)

	assert.Equal(t, types.FullScreenYAML, full.ViewType)
	assert.Equal(t, "Kustomization/flux-system/apps", full.ResourceName)
	assert.Contains(t, full.Content, "kind: Kustomization")
	assert.Contains(t, full.Content, "name: apps")
}

func TestYamlCommand_NoObject(t *testing.T) {
	n := tree.NewMessage("No sources found", tree.IconInfo)
	msg := status(t, YamlCommand()(CommandContext{Node: n})())
	assert.Equal(t, types.MessageTypeError, msg.Type)
}

func TestDescribeCommand(t *testing.T) {
	obj := testutil.FluxObject(resources.KindKustomization, "flux-system", "apps", "False")
	cluster := testutil.FakeCluster{Context: "kind-dev", Objects: testutil.Objects(obj)}
	n := workloadNode(resources.KindKustomization, "flux-system", "apps")
	n.Object = obj

	deps := Deps{Client: func() (*k8s.Client, error) { return cluster.Client(), nil }}
	msg := DescribeCommand(deps)(CommandContext{Node: n})()

	full, ok := msg.(types.ShowFullScreenMsg)
	require.True(t, ok, "expected ShowFullScreenMsg, got %T", msg)
	assert.Equal(t, types.FullScreenDescribe, full.ViewType)
	assert.Equal(t, "Kustomization/flux-system/apps", full.ResourceName)
	assert.Contains(t, full.Content, "Name:         apps")
	assert.Contains(t, full.Content, "Namespace:    flux-system")
}

func TestDescribeCommand_Errors(t *testing.T) {
	n := workloadNode(resources.KindKustomization, "flux-system", "apps")

	t.Run("no client", func(t *testing.T) {
		msg := status(t, DescribeCommand(Deps{})(CommandContext{Node: n})())
		assert.Equal(t, types.MessageTypeError, msg.Type)
		assert.Contains(t, msg.Message, "no cluster connection")
	})

	t.Run("client error", func(t *testing.T) {
		deps := Deps{Client: func() (*k8s.Client, error) { return nil, errors.New("context prod not found") }}
		msg := status(t, DescribeCommand(deps)(CommandContext{Node: n})())
		assert.Equal(t, types.MessageTypeError, msg.Type)
		assert.Equal(t, "Failed to describe resource: context prod not found", msg.Message)
	})

	t.Run("no selection", func(t *testing.T) {
		msg := status(t, DescribeCommand(Deps{})(CommandContext{})())
		assert.Equal(t, types.MessageTypeError, msg.Type)
	})
}
