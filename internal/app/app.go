package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/fluxtree/internal/commands"
	"github.com/renato0307/fluxtree/internal/components"
	"github.com/renato0307/fluxtree/internal/components/commandbar"
	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/kubeconfig"
	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/modals"
	"github.com/renato0307/fluxtree/internal/screens"
	"github.com/renato0307/fluxtree/internal/types"
	"github.com/renato0307/fluxtree/internal/views"
)

const (
	appName = "fluxtree"

	// SyncTimeout bounds one kubeconfig sync started by the UI
	SyncTimeout = 30 * time.Second
)

// syncTickMsg triggers the periodic kubeconfig sync
type syncTickMsg time.Time

type Model struct {
	state  types.AppState
	appCtx *types.AppContext

	tabs   []*screens.TreeScreen
	active int

	header     *components.Header
	layout     *components.Layout
	statusBar  *components.StatusBar
	commandBar *commandbar.CommandBar
	registry   *commands.Registry
	outputs    *components.OutputBuffer

	picker     *modals.ContextPickerModal
	showPicker bool

	// fullScreen is set while YAML, describe, history or help is shown
	fullScreen *components.FullScreen
}

// NewModel builds the UI over the views of appCtx
func NewModel(appCtx *types.AppContext) Model {
	theme := appCtx.Theme
	outputs := components.NewOutputBuffer()

	deps := commands.Deps{
		Client: func() (*k8s.Client, error) { return currentClient(appCtx) },
		CurrentContext: func() string {
			return appCtx.Config.Snapshot().CurrentContext()
		},
		History: outputs.Render,
	}
	if appCtx.Flux != nil {
		deps.Flux = appCtx.Flux
	}
	registry := commands.NewRegistry(deps)

	var tabs []*screens.TreeScreen
	var titles []string
	for _, p := range appCtx.Dispatcher.Providers() {
		tabs = append(tabs, screens.NewTreeScreen(p, theme, appCtx.Keys, appCtx.WithIcons))
		titles = append(titles, p.Title())
	}

	header := components.NewHeader(theme, appName)
	header.SetTabs(titles, 0)

	m := Model{
		state: types.AppState{
			Width:  80,
			Height: 24,
		},
		appCtx:     appCtx,
		tabs:       tabs,
		header:     header,
		layout:     components.NewLayout(80, 24),
		statusBar:  components.NewStatusBar(theme),
		commandBar: commandbar.New(registry, theme),
		registry:   registry,
		outputs:    outputs,
		picker:     modals.NewContextPickerModal(appCtx.Config.Snapshot()),
	}
	if len(tabs) > 0 {
		m.state.CurrentScreen = tabs[0].ID()
	}
	m.resize(80, 24)
	m.updateHeader()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.commandBar.Init(), m.syncCmd(false), m.scheduleSync()}
	for _, t := range m.tabs {
		cmds = append(cmds, t.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case syncTickMsg:
		return m, tea.Batch(m.syncCmd(false), m.scheduleSync())

	case types.RefreshMsg:
		_, spin := m.statusBar.SetMessage("Syncing kubeconfig…", types.MessageTypeLoading)
		logging.Debug("refresh requested", "force", msg.Force)
		return m, tea.Batch(spin, m.syncCmd(msg.Force))

	case types.RefreshCompleteMsg:
		m.state.LastRefresh = time.Now()
		m.state.RefreshTime = msg.Duration
		m.header.SetLastSync(m.state.LastRefresh)
		m.updateHeader()
		switch {
		case msg.Err != nil:
			return m.setStatus(types.ErrorStatusMsg("Kubeconfig sync failed: " + msg.Err.Error()))
		case msg.Forced:
			return m.setStatus(types.SuccessMsg(fmt.Sprintf("Refreshed in %s", msg.Duration.Round(time.Millisecond))))
		}
		return m, nil

	case types.StatusMsg:
		return m.handleStatus(msg)

	case types.ClearStatusMsg:
		m.statusBar.ClearMessage(msg.MessageID)
		return m, nil

	case types.FilterUpdateMsg:
		if t := m.activeTab(); t != nil {
			t.SetFilter(msg.Filter)
		}
		return m, nil

	case types.ClearFilterMsg:
		if t := m.activeTab(); t != nil {
			t.SetFilter("")
		}
		return m, nil

	case types.ShowFullScreenMsg:
		m.fullScreen = components.NewFullScreen(msg.ViewType, msg.ResourceName, msg.Content, m.appCtx.Theme)
		m.fullScreen.SetSize(m.state.Width, m.state.Height)
		return m, nil

	case types.ExitFullScreenMsg:
		m.fullScreen = nil
		return m, nil

	case types.ToggleContextPickerMsg:
		m.showPicker = !m.showPicker
		if m.showPicker {
			m.picker.SetSnapshot(m.appCtx.Config.Snapshot())
			m.picker.SetSize(m.state.Width, m.state.Height)
		}
		return m, nil

	case types.ContextSwitchMsg:
		_, spin := m.statusBar.SetMessage("Switching to context "+msg.ContextName+"…", types.MessageTypeLoading)
		return m, tea.Batch(spin, m.switchContextCmd(msg.ContextName))

	case types.ContextSwitchCompleteMsg:
		m.updateHeader()
		return m.setStatus(types.SuccessMsg("Switched to context " + msg.NewContext))

	case types.ContextSwitchFailedMsg:
		m.updateHeader()
		return m.setStatus(types.ErrorStatusMsg(fmt.Sprintf("Failed to switch to context %s: %v", msg.Context, msg.Error)))

	case types.ScreenSwitchMsg:
		for i, t := range m.tabs {
			if t.ID() == msg.ScreenID {
				m.setActive(i)
				return m, nil
			}
		}
		return m.setStatus(types.ErrorStatusMsg("Unknown view: " + msg.ScreenID))

	case screens.RootsLoadedMsg:
		return m.updateTab(msg.ViewID, msg)

	case screens.ChildrenLoadedMsg:
		return m.updateTab(msg.ViewID, msg)

	case screens.ViewChangedMsg:
		return m.updateTab(msg.ViewID, msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.statusBar, cmd = m.statusBar.Update(msg)
		return m, cmd
	}

	// Tip rotation and the picker's list messages
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.commandBar, cmd = m.commandBar.Update(msg)
	cmds = append(cmds, cmd)
	if m.showPicker {
		var model tea.Model
		model, cmd = m.picker.Update(msg)
		m.picker = model.(*modals.ContextPickerModal)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.appCtx.Keys
	key := msg.String()

	if key == keys.Quit {
		return m, tea.Quit
	}

	if m.fullScreen != nil {
		if key == keys.Back || key == "q" {
			m.fullScreen = nil
			return m, nil
		}
		var cmd tea.Cmd
		m.fullScreen, cmd = m.fullScreen.Update(msg)
		return m, cmd
	}

	if m.showPicker {
		model, cmd := m.picker.Update(msg)
		m.picker = model.(*modals.ContextPickerModal)
		return m, cmd
	}

	tab := m.activeTab()
	if tab == nil {
		return m, nil
	}
	m.commandBar.SetSelected(tab.Selected())

	// While the bar is open it owns the keyboard
	if m.commandBar.IsActive() {
		return m.updateCommandBar(msg)
	}

	switch key {
	case keys.FilterActivate, ":", keys.Back:
		return m.updateCommandBar(msg)
	case keys.PaletteActivate:
		m.commandBar.OpenPalette()
		m.layoutBody()
		return m, nil
	case keys.NextView:
		m.setActive((m.active + 1) % len(m.tabs))
		return m, nil
	case keys.PrevView:
		m.setActive((m.active - 1 + len(m.tabs)) % len(m.tabs))
		return m, nil
	case keys.Help:
		content := screens.RenderHelp(screens.HelpEntries(keys))
		return m, func() tea.Msg {
			return types.ShowFullScreenMsg{
				ViewType:     types.FullScreenHelp,
				ResourceName: "keyboard shortcuts",
				Content:      content,
			}
		}
	}

	if c := m.registry.FindByShortcut(key, tab.Selected()); c != nil {
		var cmd tea.Cmd
		m.commandBar, cmd = m.commandBar.ExecuteCommand(c)
		m.layoutBody()
		return m, cmd
	}

	_, cmd := tab.Update(msg)
	return m, cmd
}

func (m Model) updateCommandBar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.commandBar, cmd = m.commandBar.Update(msg)
	m.layoutBody()
	return m, cmd
}

// updateTab routes load results to the tab that owns the view, active or not
func (m Model) updateTab(id views.ID, msg tea.Msg) (tea.Model, tea.Cmd) {
	for _, t := range m.tabs {
		if t.ID() == string(id) {
			_, cmd := t.Update(msg)
			m.updateHeader()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleStatus(msg types.StatusMsg) (tea.Model, tea.Cmd) {
	if msg.TrackInHistory && msg.HistoryMetadata != nil {
		meta := msg.HistoryMetadata
		m.outputs.Add(components.CommandOutput{
			Command:   meta.Command,
			Output:    msg.Message,
			Status:    statusName(msg.Type),
			Context:   meta.Context,
			Timestamp: meta.Timestamp,
			Duration:  meta.Duration,
		})
		if m.appCtx.Actions != nil {
			m.appCtx.Actions.ActionCompleted(actionName(meta.Command), msg.Type != types.MessageTypeError)
		}
	}

	if msg.RefreshViews && m.appCtx.Dispatcher != nil {
		m.appCtx.Dispatcher.Invalidate(kubeconfig.SignalSourceTree, kubeconfig.SignalWorkloadTree)
	}
	return m.setStatus(msg)
}

// setStatus shows msg and schedules its removal; loading messages stay
// until replaced
func (m Model) setStatus(msg types.StatusMsg) (tea.Model, tea.Cmd) {
	id, cmd := m.statusBar.SetMessage(msg.Message, msg.Type)
	if msg.Type == types.MessageTypeLoading {
		return m, cmd
	}
	return m, tea.Batch(cmd, tea.Tick(components.StatusBarDisplayDuration, func(time.Time) tea.Msg {
		return types.ClearStatusMsg{MessageID: id}
	}))
}

func statusName(t types.MessageType) string {
	switch t {
	case types.MessageTypeSuccess:
		return "success"
	case types.MessageTypeError:
		return "error"
	default:
		return "info"
	}
}

// actionName extracts "reconcile" from "flux reconcile kustomization apps -n x"
func actionName(command string) string {
	fields := strings.Fields(command)
	if len(fields) < 2 {
		return command
	}
	return fields[1]
}

func (m Model) syncCmd(force bool) tea.Cmd {
	ctrl := m.appCtx.Config
	dispatcher := m.appCtx.Dispatcher
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), SyncTimeout)
		defer cancel()

		err := ctrl.Sync(ctx, force)
		if force && err == nil && dispatcher != nil {
			// An unchanged kubeconfig only reloads resource kinds; a
			// user refresh also rebuilds every tree
			dispatcher.Invalidate(kubeconfig.SignalClusterTree, kubeconfig.SignalSourceTree, kubeconfig.SignalWorkloadTree)
		}
		return types.RefreshCompleteMsg{Duration: time.Since(start), Err: err, Forced: force}
	}
}

func (m Model) scheduleSync() tea.Cmd {
	return tea.Tick(m.appCtx.PollInterval, func(t time.Time) tea.Msg {
		return syncTickMsg(t)
	})
}

func (m Model) switchContextCmd(name string) tea.Cmd {
	ctrl := m.appCtx.Config
	old := ctrl.Snapshot().CurrentContext()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), SyncTimeout)
		defer cancel()
		if err := ctrl.SwitchContext(ctx, name); err != nil {
			return types.ContextSwitchFailedMsg{Context: name, Error: err}
		}
		return types.ContextSwitchCompleteMsg{OldContext: old, NewContext: name}
	}
}

func (m *Model) activeTab() *screens.TreeScreen {
	if m.active < 0 || m.active >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.active]
}

func (m *Model) setActive(i int) {
	if i < 0 || i >= len(m.tabs) {
		return
	}
	m.active = i
	m.state.CurrentScreen = m.tabs[i].ID()

	titles := make([]string, len(m.tabs))
	for j, t := range m.tabs {
		titles[j] = t.Title()
	}
	m.header.SetTabs(titles, i)

	// The filter belongs to the bar, so it follows the user across tabs
	m.tabs[i].SetFilter(m.commandBar.Filter())
	m.commandBar.SetSelected(m.tabs[i].Selected())
}

func (m *Model) updateHeader() {
	status := m.appCtx.Config.Status()
	m.header.SetContext(m.appCtx.Config.Snapshot().CurrentContext())
	m.header.SetState(status.State.String())
}

func (m *Model) resize(width, height int) {
	m.state.Width = width
	m.state.Height = height
	m.layout.SetSize(width, height)
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.commandBar.SetWidth(width)
	m.picker.SetSize(width, height)
	if m.fullScreen != nil {
		m.fullScreen.SetSize(width, height)
	}
	m.layoutBody()
}

// layoutBody gives the tabs the rows left over by the bars
func (m *Model) layoutBody() {
	bottom := m.commandBar.GetTotalHeight() + m.statusBar.GetHeight()
	bodyHeight := m.layout.CalculateBodyHeight(bottom)
	for _, t := range m.tabs {
		t.SetSize(m.state.Width, bodyHeight)
	}
}

func (m Model) View() string {
	if m.fullScreen != nil {
		return m.fullScreen.View()
	}

	body := ""
	if t := m.activeTab(); t != nil {
		body = t.View()
	}

	view := m.layout.Render(
		m.header.View(),
		body,
		m.commandBar.View(),
		m.commandBar.ViewPaletteItems(),
		m.commandBar.ViewHints(),
		m.statusBar.View(),
	)

	if m.showPicker {
		return lipgloss.Place(m.state.Width, m.state.Height, lipgloss.Center, lipgloss.Center, m.picker.View())
	}
	return view
}
