// Package messages defines message handling patterns and conventions for
// fluxtree. This includes error, success, and info messages shown in the
// status bar.
//
// # Message Handling Patterns by Layer
//
// ## Cluster and kubeconfig layers (internal/k8s, internal/kubeconfig, internal/cli)
//
// Return standard Go errors. These packages read clusters and the kubeconfig
// and must not depend on UI concerns.
//
// Pattern:
//
//	func (c *Client) List(ctx context.Context, gvr schema.GroupVersionResource, namespace string) ([]unstructured.Unstructured, error) {
//	    list, err := c.dynamic.Resource(gvr).Namespace(namespace).List(ctx, metav1.ListOptions{})
//	    if err != nil {
//	        return nil, fmt.Errorf("failed to list %s: %w", gvr.Resource, err)
//	    }
//	    return list.Items, nil
//	}
//
// Use fmt.Errorf with %w to wrap errors and keep the chain. Say which
// operation failed. The kubeconfig layer also has typed errors (CLIError,
// ParseError) for callers that need to tell failures apart.
//
// Helper available: messages.WrapError(err, "context") as a clearer alternative
// to fmt.Errorf("context: %w", err).
//
// ## Command Layer (internal/commands)
//
// Return tea.Cmd that produces a StatusMsg. Commands run in response to user
// actions and report back through the Bubble Tea message loop.
//
// Pattern:
//
//	func SuspendCommand(flux FluxRunner) ExecuteFunc {
//	    return func(ctx CommandContext) tea.Cmd {
//	        return func() tea.Msg {
//	            if err := flux.Suspend(context.Background(), target); err != nil {
//	                return types.ErrorStatusMsg(fmt.Sprintf("Suspend failed: %v", err))
//	            }
//	            return types.SuccessMsg("Suspended kustomization apps")
//	        }
//	    }
//	}
//
// Use types.ErrorStatusMsg for errors, types.SuccessMsg for success, and
// types.InfoMsg for informational messages. Actions that change cluster
// state wrap their command with messages.WithRefresh so the trees reload.
//
// ## UI Layer (internal/app, internal/components, internal/modals)
//
// Display errors via the StatusBar component. UI components do not format
// error messages; they receive pre-formatted StatusMsg from commands.
//
// Pattern:
//
//	case types.StatusMsg:
//	    m.statusBar.SetMessage(msg.Message, msg.Type)
//	    return m, tea.Tick(components.StatusBarDisplayDuration, func(t time.Time) tea.Msg {
//	        return types.ClearStatusMsg{MessageID: id}
//	    })
//
// The status bar clears after StatusBarDisplayDuration. Loading messages
// stay until replaced.
//
// ## View layer (internal/views)
//
// A cluster that cannot be reached, or that has no Flux, is not an error
// for the tree: the view returns a single message node saying why, and logs
// the details. Kinds that fail to list (RBAC, version skew) are skipped with
// a warning in the log.
//
// # Error Message Guidelines
//
// 1. Be specific: "Reconcile failed: kustomization/apps not found" not "Operation failed"
// 2. Include context: what operation failed, on what resource
// 3. User-friendly: no stack traces in the status bar
// 4. Start with the verb describing what failed
//
// # Testing Error Handling
//
// Command tests call the returned tea.Cmd and assert on the StatusMsg:
//
//	msg := cmd(ctx)()
//	status, ok := msg.(types.StatusMsg)
//	require.True(t, ok)
//	assert.Equal(t, types.MessageTypeError, status.Type)
//	assert.Contains(t, status.Message, "Reconcile failed")
package messages
