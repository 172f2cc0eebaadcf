package app

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/fluxtree/internal/cli"
	"github.com/renato0307/fluxtree/internal/components/commandbar"
	"github.com/renato0307/fluxtree/internal/config"
	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/kubeconfig"
	"github.com/renato0307/fluxtree/internal/resources"
	"github.com/renato0307/fluxtree/internal/testutil"
	"github.com/renato0307/fluxtree/internal/types"
	"github.com/renato0307/fluxtree/internal/views"
)

const testKubeconfig = `apiVersion: v1
kind: Config
current-context: %s
clusters:
- name: dev
  cluster:
    server: https://127.0.0.1:6443
- name: prod
  cluster:
    server: https://ABCDEF.gr7.eu-west-1.eks.amazonaws.com
contexts:
- name: kind-dev
  context:
    cluster: dev
    user: dev
- name: prod
  context:
    cluster: prod
    user: prod
users:
- name: dev
  user:
    token: dev
- name: prod
  user:
    token: prod
`

type recordedAction struct {
	action string
	ok     bool
}

type fakeActions struct {
	actions []recordedAction
}

func (f *fakeActions) ActionCompleted(action string, ok bool) {
	f.actions = append(f.actions, recordedAction{action, ok})
}

type testApp struct {
	runner  *cli.FakeRunner
	rt      *Runtime
	actions *fakeActions
	model   Model
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	runner := cli.NewFakeRunner()
	runner.On("kubectl config view", cli.Result{Stdout: fmt.Sprintf(testKubeconfig, "kind-dev")}, nil)

	clusters := map[string]testutil.FakeCluster{
		"kind-dev": {
			Objects: testutil.Objects(
				testutil.FluxObject(resources.KindGitRepository, "flux-system", "flux-system", "True"),
				testutil.FluxObject(resources.KindKustomization, "flux-system", "apps", "True"),
				testutil.Suspended(testutil.FluxObject(resources.KindKustomization, "flux-system", "infra", "True")),
			),
		},
		"prod": {Unreachable: true},
	}
	factory := func(*kubeconfig.Controller) k8s.ClientFactory {
		return func(name string) (*k8s.Client, error) {
			c, ok := clusters[name]
			if !ok {
				return nil, fmt.Errorf("no fake cluster for %s", name)
			}
			c.Context = name
			return c.Client(), nil
		}
	}

	rt := newRuntime(config.Default(), runner, factory)
	actions := &fakeActions{}
	rt.Context.Actions = actions

	m := NewModel(rt.Context)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return &testApp{runner: runner, rt: rt, actions: actions, model: m}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// sync runs one kubeconfig sync the way the tick does
func (a *testApp) sync(t *testing.T) {
	t.Helper()
	msg := a.model.syncCmd(false)()
	complete, ok := msg.(types.RefreshCompleteMsg)
	require.True(t, ok)
	require.NoError(t, complete.Err)
	a.model = update(t, a.model, msg)
}

// open switches to a tab and loads its roots
func (a *testApp) open(t *testing.T, id views.ID) {
	t.Helper()
	a.model = update(t, a.model, types.ScreenSwitchMsg{ScreenID: string(id)})
	tab := a.model.activeTab()
	require.Equal(t, string(id), tab.ID())
	a.model = update(t, a.model, tab.Load()())
}

func (a *testApp) selected() string {
	if n := a.model.activeTab().Selected(); n != nil {
		return n.Name
	}
	return ""
}

func TestNewModel(t *testing.T) {
	a := newTestApp(t)

	require.Len(t, a.model.tabs, 4)
	assert.Equal(t, "clusters", a.model.state.CurrentScreen)

	view := a.model.View()
	for _, want := range []string{"fluxtree", "Clusters", "Sources", "Workloads", "Docs"} {
		assert.Contains(t, view, want)
	}
	assert.Contains(t, view, "ctx: none")
}

func TestModel_SyncUpdatesHeader(t *testing.T) {
	a := newTestApp(t)
	a.sync(t)

	assert.Equal(t, kubeconfig.StateLoaded, a.rt.Context.Config.State())
	assert.Contains(t, a.model.View(), "ctx: kind-dev")
	assert.False(t, a.model.state.LastRefresh.IsZero())
}

func TestModel_SyncFailureShowsError(t *testing.T) {
	a := newTestApp(t)

	a.model = update(t, a.model, types.RefreshCompleteMsg{Err: fmt.Errorf("kubectl not found")})
	msg, typ := a.model.statusBar.Message()
	assert.Equal(t, "Kubeconfig sync failed: kubectl not found", msg)
	assert.Equal(t, types.MessageTypeError, typ)
}

func TestModel_ForcedRefresh(t *testing.T) {
	a := newTestApp(t)
	a.sync(t)

	m, cmd := updateCmd(t, a.model, types.RefreshMsg{Force: true})
	require.NotNil(t, cmd)
	assert.True(t, m.statusBar.IsLoading())

	msg := m.syncCmd(true)()
	complete := msg.(types.RefreshCompleteMsg)
	assert.True(t, complete.Forced)

	// every tree was asked to reload
	for _, p := range a.rt.Context.Dispatcher.Providers()[:3] {
		select {
		case <-p.Changes():
		default:
			t.Errorf("%s was not refreshed", p.ID())
		}
	}

	m = update(t, m, msg)
	text, typ := m.statusBar.Message()
	assert.Contains(t, text, "Refreshed in")
	assert.Equal(t, types.MessageTypeSuccess, typ)
}

func TestModel_TabSwitching(t *testing.T) {
	a := newTestApp(t)
	m := a.model

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "sources", m.state.CurrentScreen)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "docs", m.state.CurrentScreen)

	m = update(t, m, runes("3"))
	m = update(t, m, types.ScreenSwitchMsg{ScreenID: "workloads"})
	assert.Equal(t, "workloads", m.state.CurrentScreen)

	m = update(t, m, types.ScreenSwitchMsg{ScreenID: "pods"})
	assert.Equal(t, "workloads", m.state.CurrentScreen)
	text, typ := m.statusBar.Message()
	assert.Equal(t, "Unknown view: pods", text)
	assert.Equal(t, types.MessageTypeError, typ)
}

func TestModel_NumberShortcutSwitchesTab(t *testing.T) {
	a := newTestApp(t)

	_, cmd := updateCmd(t, a.model, runes("4"))
	require.NotNil(t, cmd)
	assert.Equal(t, types.ScreenSwitchMsg{ScreenID: "docs"}, cmd())
}

func TestModel_Filter(t *testing.T) {
	a := newTestApp(t)
	a.open(t, views.DocumentationID)
	require.Len(t, a.model.activeTab().Rows(), len(views.DefaultDocs))

	a.model = update(t, a.model, runes("/"))
	assert.Equal(t, commandbar.StateFilter, a.model.commandBar.GetState())

	var cmd tea.Cmd
	for _, r := range "helm" {
		a.model, cmd = updateCmd(t, a.model, runes(string(r)))
		require.NotNil(t, cmd)
		a.model = update(t, a.model, cmd())
	}
	require.Len(t, a.model.activeTab().Rows(), 1)
	assert.Equal(t, "Helm releases", a.selected())

	// enter keeps the filter and hands keys back to the tree
	a.model = update(t, a.model, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, commandbar.StateHidden, a.model.commandBar.GetState())
	assert.Contains(t, a.model.View(), "filter: helm")

	// the filter follows to other tabs
	a.model = update(t, a.model, types.ScreenSwitchMsg{ScreenID: "clusters"})
	assert.Equal(t, "helm", a.model.activeTab().Filter())

	// esc clears it
	a.model, cmd = updateCmd(t, a.model, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	a.model = update(t, a.model, cmd())
	assert.Empty(t, a.model.activeTab().Filter())
}

func TestModel_ReconcileShortcut(t *testing.T) {
	a := newTestApp(t)
	a.runner.On("flux reconcile kustomization apps", cli.Result{Stdout: "✔ applied revision main@sha1:abc"}, nil)
	a.sync(t)
	a.open(t, views.WorkloadID)

	require.Equal(t, "flux-system", a.selected())
	a.model = update(t, a.model, runes("l"))
	a.model = update(t, a.model, runes("j"))
	require.Equal(t, "apps", a.selected())

	m, cmd := updateCmd(t, a.model, runes("r"))
	require.NotNil(t, cmd)

	status, ok := cmd().(types.StatusMsg)
	require.True(t, ok)
	assert.Equal(t, types.MessageTypeSuccess, status.Type)
	assert.True(t, status.TrackInHistory)
	assert.True(t, status.RefreshViews)

	m = update(t, m, status)
	assert.Equal(t, 1, m.outputs.Count())
	assert.Equal(t, []recordedAction{{"reconcile", true}}, a.actions.actions)
	assert.Equal(t, 1, a.runner.CallCount("flux reconcile kustomization apps --namespace flux-system"))

	workloads := a.rt.Context.Dispatcher.Providers()[2]
	select {
	case <-workloads.Changes():
	default:
		t.Error("workloads were not refreshed after the action")
	}

	// history shows the action
	_, cmd = updateCmd(t, m, runes("H"))
	require.NotNil(t, cmd)
	show, ok := cmd().(types.ShowFullScreenMsg)
	require.True(t, ok)
	assert.Equal(t, types.FullScreenHistory, show.ViewType)
	assert.Contains(t, show.Content, "flux reconcile kustomization apps -n flux-system")
}

func TestModel_SuspendAsksForConfirmation(t *testing.T) {
	a := newTestApp(t)
	a.runner.On("flux suspend kustomization apps", cli.Result{}, nil)
	a.sync(t)
	a.open(t, views.WorkloadID)
	a.model = update(t, a.model, runes("l"))
	a.model = update(t, a.model, runes("j"))
	require.Equal(t, "apps", a.selected())

	m, cmd := updateCmd(t, a.model, runes("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, commandbar.StateConfirmation, m.commandBar.GetState())
	assert.Contains(t, m.View(), "Confirm Action")

	m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, commandbar.StateHidden, m.commandBar.GetState())

	status := cmd().(types.StatusMsg)
	assert.Equal(t, "Suspended Kustomization/flux-system/apps", status.Message)
}

func TestModel_ActionFailureRecorded(t *testing.T) {
	a := newTestApp(t)
	a.model = update(t, a.model, types.StatusMsg{
		Message:        "Resume failed: exit status 1",
		Type:           types.MessageTypeError,
		TrackInHistory: true,
		HistoryMetadata: &types.CommandMetadata{
			Command: "flux resume kustomization infra -n flux-system",
			Context: "kind-dev",
		},
	})

	assert.Equal(t, []recordedAction{{"resume", false}}, a.actions.actions)
	out := a.model.outputs.GetAll()
	require.Len(t, out, 1)
	assert.Equal(t, "error", out[0].Status)
	assert.Equal(t, "kind-dev", out[0].Context)
}

func TestModel_ContextSwitch(t *testing.T) {
	a := newTestApp(t)
	a.sync(t)

	a.runner.On("kubectl config use-context prod", cli.Result{Stdout: `Switched to context "prod".`}, nil)
	a.runner.On("kubectl config view", cli.Result{Stdout: fmt.Sprintf(testKubeconfig, "prod")}, nil)

	m, cmd := updateCmd(t, a.model, types.ContextSwitchMsg{ContextName: "prod"})
	require.NotNil(t, cmd)
	assert.True(t, m.statusBar.IsLoading())

	msg := m.switchContextCmd("prod")()
	assert.Equal(t, types.ContextSwitchCompleteMsg{OldContext: "kind-dev", NewContext: "prod"}, msg)

	m = update(t, m, msg)
	text, _ := m.statusBar.Message()
	assert.Equal(t, "Switched to context prod", text)
	assert.Contains(t, m.View(), "ctx: prod")
}

func TestModel_ContextSwitchFailure(t *testing.T) {
	a := newTestApp(t)
	a.sync(t)
	a.runner.On("kubectl config use-context nope", cli.Result{
		ExitCode: 1,
		Stderr:   `error: no context exists with the name: "nope"`,
	}, nil)

	msg := a.model.switchContextCmd("nope")()
	failed, ok := msg.(types.ContextSwitchFailedMsg)
	require.True(t, ok)
	assert.Equal(t, "nope", failed.Context)

	m := update(t, a.model, msg)
	text, typ := m.statusBar.Message()
	assert.Contains(t, text, "Failed to switch to context nope")
	assert.Equal(t, types.MessageTypeError, typ)
	assert.Contains(t, m.View(), "ctx: kind-dev")
}

func TestModel_ContextPicker(t *testing.T) {
	a := newTestApp(t)
	a.sync(t)

	_, cmd := updateCmd(t, a.model, tea.KeyMsg{Type: tea.KeyCtrlK})
	require.NotNil(t, cmd)
	assert.Equal(t, types.ToggleContextPickerMsg{}, cmd())

	m := update(t, a.model, types.ToggleContextPickerMsg{})
	require.True(t, m.showPicker)
	view := m.View()
	assert.Contains(t, view, "kind-dev")
	assert.Contains(t, view, "prod")

	// keys go to the picker while it is open
	m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, types.ToggleContextPickerMsg{}, cmd())

	m = update(t, m, types.ToggleContextPickerMsg{})
	assert.False(t, m.showPicker)
}

func TestModel_FullScreen(t *testing.T) {
	a := newTestApp(t)

	_, cmd := updateCmd(t, a.model, runes("?"))
	require.NotNil(t, cmd)
	show, ok := cmd().(types.ShowFullScreenMsg)
	require.True(t, ok)
	assert.Equal(t, types.FullScreenHelp, show.ViewType)

	m := update(t, a.model, show)
	require.NotNil(t, m.fullScreen)
	assert.Contains(t, m.View(), "Help: keyboard shortcuts")

	// tree keys do not leak through
	m = update(t, m, runes("l"))
	require.NotNil(t, m.fullScreen)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.fullScreen)
}

func TestModel_Quit(t *testing.T) {
	a := newTestApp(t)

	_, cmd := updateCmd(t, a.model, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_ClearStatus(t *testing.T) {
	a := newTestApp(t)

	m := update(t, a.model, types.InfoMsg("hello"))
	text, _ := m.statusBar.Message()
	require.Equal(t, "hello", text)

	// a stale id does not clear a newer message
	m = update(t, m, types.InfoMsg("world"))
	m = update(t, m, types.ClearStatusMsg{MessageID: 1})
	text, _ = m.statusBar.Message()
	assert.Equal(t, "world", text)

	m = update(t, m, types.ClearStatusMsg{MessageID: 2})
	text, _ = m.statusBar.Message()
	assert.Empty(t, text)
}

func TestCurrentClient(t *testing.T) {
	a := newTestApp(t)

	_, err := a.rt.CurrentClient()
	assert.ErrorIs(t, err, errNoContext)

	a.sync(t)
	c, err := a.rt.CurrentClient()
	require.NoError(t, err)
	assert.Equal(t, "kind-dev", c.Context())
}

func TestActionName(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"flux reconcile kustomization apps -n flux-system", "reconcile"},
		{"flux suspend source git flux-system -n flux-system", "suspend"},
		{"flux", "flux"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, actionName(tt.command), tt.command)
	}
}
