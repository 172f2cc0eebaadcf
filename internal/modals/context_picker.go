package modals

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/fluxtree/internal/kubeconfig"
	"github.com/renato0307/fluxtree/internal/types"
)

type contextItem struct {
	info    kubeconfig.ContextInfo
	current bool
}

func (i contextItem) FilterValue() string { return i.info.Name }

func (i contextItem) Title() string {
	if i.current {
		return "● " + i.info.Name
	}
	return "  " + i.info.Name
}

func (i contextItem) Description() string {
	if i.info.Server == "" {
		return fmt.Sprintf("  cluster %s (missing)", i.info.Cluster)
	}
	return fmt.Sprintf("  %s · %s", i.info.Cluster, i.info.Server)
}

// ContextPickerModal lists the kubeconfig contexts and switches to the
// chosen one
type ContextPickerModal struct {
	list   list.Model
	width  int
	height int
}

// NewContextPickerModal builds the picker from a snapshot, with the
// current context selected
func NewContextPickerModal(snapshot *kubeconfig.Snapshot) *ContextPickerModal {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Switch Context"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	m := &ContextPickerModal{list: l}
	m.SetSize(80, 24)
	m.SetSnapshot(snapshot)
	return m
}

// SetSnapshot replaces the listed contexts
func (m *ContextPickerModal) SetSnapshot(snapshot *kubeconfig.Snapshot) {
	if snapshot == nil {
		snapshot = kubeconfig.Empty()
	}
	current := snapshot.CurrentContext()

	contexts := snapshot.Contexts()
	items := make([]list.Item, len(contexts))
	selected := 0
	for i, c := range contexts {
		items[i] = contextItem{info: c, current: c.Name == current}
		if c.Name == current {
			selected = i
		}
	}
	m.list.SetItems(items)
	m.list.Select(selected)
}

func (m *ContextPickerModal) Init() tea.Cmd {
	return nil
}

func (m *ContextPickerModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "enter":
			item, ok := m.list.SelectedItem().(contextItem)
			if !ok {
				return m, nil
			}
			closePicker := func() tea.Msg { return types.ToggleContextPickerMsg{} }
			if item.current {
				return m, closePicker
			}
			name := item.info.Name
			return m, tea.Batch(closePicker, func() tea.Msg {
				return types.ContextSwitchMsg{ContextName: name}
			})
		case "esc":
			return m, func() tea.Msg {
				return types.ToggleContextPickerMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

const modalWidth = 70

func (m *ContextPickerModal) View() string {
	return modalStyle.Width(modalWidth).Height(m.modalHeight()).Render(m.list.View())
}

// modalHeight uses 80% of the terminal, at least 10 rows
func (m *ContextPickerModal) modalHeight() int {
	return max(int(float64(m.height)*0.8), 10)
}

func (m *ContextPickerModal) SetSize(width, height int) {
	m.width = width
	m.height = height
	// List size = modal size - border and padding
	m.list.SetSize(modalWidth-6, m.modalHeight()-4)
}
