package screens

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/renato0307/fluxtree/internal/keyboard"
	"github.com/renato0307/fluxtree/internal/logging"
	"github.com/renato0307/fluxtree/internal/tree"
	"github.com/renato0307/fluxtree/internal/types"
	"github.com/renato0307/fluxtree/internal/ui"
	"github.com/renato0307/fluxtree/internal/views"
)

// RootsLoadedMsg carries the roots of a view built in the background
type RootsLoadedMsg struct {
	ViewID     views.ID
	Generation int
	Roots      []*tree.Node
	Err        error
}

// ChildrenLoadedMsg reports that a node's children were resolved
type ChildrenLoadedMsg struct {
	ViewID views.ID
	Node   *tree.Node
	Err    error
}

// ViewChangedMsg is sent when a view was refreshed and must be reloaded
type ViewChangedMsg struct {
	ViewID views.ID
}

// TreeScreen shows one view as an expandable tree with a cursor
type TreeScreen struct {
	provider  views.Provider
	theme     *ui.Theme
	keys      *keyboard.Keys
	withIcons bool

	roots      []*tree.Node
	rows       []views.Row
	filter     string
	generation int
	loading    bool
	err        error

	// expanded remembers node keys across reloads so a refresh keeps the
	// tree open where the user left it
	expanded map[string]bool
	pending  map[*tree.Node]bool

	cursor int
	offset int
	width  int
	height int
}

// NewTreeScreen creates a screen for provider
func NewTreeScreen(provider views.Provider, theme *ui.Theme, keys *keyboard.Keys, withIcons bool) *TreeScreen {
	return &TreeScreen{
		provider:  provider,
		theme:     theme,
		keys:      keys,
		withIcons: withIcons,
		expanded:  make(map[string]bool),
		pending:   make(map[*tree.Node]bool),
		width:     80,
		height:    20,
	}
}

func (s *TreeScreen) ID() string    { return string(s.provider.ID()) }
func (s *TreeScreen) Title() string { return s.provider.Title() }

// Init loads the roots and starts watching for refreshes
func (s *TreeScreen) Init() tea.Cmd {
	return tea.Batch(s.Load(), s.WatchChanges())
}

// Load builds the roots in the background. Results of earlier loads still
// in flight are dropped when they arrive.
func (s *TreeScreen) Load() tea.Cmd {
	s.generation++
	s.loading = true
	gen := s.generation
	p := s.provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), LoadTimeout)
		defer cancel()
		roots, err := p.Roots(ctx)
		return RootsLoadedMsg{ViewID: p.ID(), Generation: gen, Roots: roots, Err: err}
	}
}

// WatchChanges waits for the next refresh of the view
func (s *TreeScreen) WatchChanges() tea.Cmd {
	p := s.provider
	return func() tea.Msg {
		<-p.Changes()
		return ViewChangedMsg{ViewID: p.ID()}
	}
}

func (s *TreeScreen) loadChildren(n *tree.Node) tea.Cmd {
	if s.pending[n] {
		return nil
	}
	s.pending[n] = true
	p := s.provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), LoadTimeout)
		defer cancel()
		_, err := p.Children(ctx, n)
		return ChildrenLoadedMsg{ViewID: p.ID(), Node: n, Err: err}
	}
}

// SetSize sets the space available to the screen
func (s *TreeScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.clampCursor()
}

// SetFilter filters the rows; empty shows the tree
func (s *TreeScreen) SetFilter(filter string) {
	selected := s.Selected()
	s.filter = filter
	s.rebuild(selected)
}

// Filter returns the applied filter
func (s *TreeScreen) Filter() string {
	return s.filter
}

// Rows returns the visible rows
func (s *TreeScreen) Rows() []views.Row {
	return s.rows
}

// Selected returns the node under the cursor, or nil
func (s *TreeScreen) Selected() *tree.Node {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	return s.rows[s.cursor].Node
}

// Update handles load results and navigation keys
func (s *TreeScreen) Update(msg tea.Msg) (*TreeScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case RootsLoadedMsg:
		if msg.ViewID != s.provider.ID() || msg.Generation != s.generation {
			return s, nil
		}
		return s, s.setRoots(msg.Roots, msg.Err)

	case ChildrenLoadedMsg:
		if msg.ViewID != s.provider.ID() {
			return s, nil
		}
		delete(s.pending, msg.Node)
		if msg.Err != nil {
			msg.Node.Collapse()
			tree.UpdateLabelsUp(msg.Node, s.withIcons)
			delete(s.expanded, msg.Node.Key())
			s.rebuild(s.Selected())
			return s, func() tea.Msg {
				return types.ErrorStatusMsg("Failed to load " + msg.Node.Name + ": " + msg.Err.Error())
			}
		}
		views.Relabel(msg.Node, s.withIcons)
		cmd := s.restoreExpanded(msg.Node.LoadedChildren())
		s.rebuild(s.Selected())
		return s, cmd

	case ViewChangedMsg:
		if msg.ViewID != s.provider.ID() {
			return s, nil
		}
		return s, tea.Batch(s.Load(), s.WatchChanges())

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *TreeScreen) setRoots(roots []*tree.Node, err error) tea.Cmd {
	selected := s.Selected()
	s.loading = false
	s.err = err
	s.roots = roots
	s.pending = make(map[*tree.Node]bool)
	if err != nil {
		logging.Warn("failed to build view", "view", s.provider.ID(), "error", err)
		s.rebuild(nil)
		return nil
	}
	cmd := s.restoreExpanded(roots)
	s.rebuild(selected)
	return cmd
}

// restoreExpanded re-opens nodes the user had expanded before a reload
func (s *TreeScreen) restoreExpanded(nodes []*tree.Node) tea.Cmd {
	var cmds []tea.Cmd
	for _, n := range nodes {
		if n.State == tree.CollapsibleNone {
			continue
		}
		key := n.Key()
		if n.State == tree.Expanded {
			s.expanded[key] = true
		}
		if !s.expanded[key] {
			continue
		}
		n.Expand()
		n.UpdateLabel(s.withIcons)
		if n.IsLoaded() {
			cmds = append(cmds, s.restoreExpanded(n.LoadedChildren()))
		} else {
			cmds = append(cmds, s.loadChildren(n))
		}
	}
	return tea.Batch(cmds...)
}

// rebuild recomputes the rows and keeps the cursor on keep when it is
// still visible
func (s *TreeScreen) rebuild(keep *tree.Node) {
	if s.filter == "" {
		s.rows = views.Flatten(s.roots)
	} else {
		s.rows = views.FilterRows(allLoaded(s.roots), s.filter)
	}

	if keep != nil {
		key := keep.Key()
		for i, r := range s.rows {
			if r.Node == keep || r.Node.Key() == key {
				s.cursor = i
				break
			}
		}
	}
	s.clampCursor()
}

// allLoaded lists every loaded node, expanded or not
func allLoaded(roots []*tree.Node) []views.Row {
	var rows []views.Row
	for _, r := range roots {
		r.Walk(func(n *tree.Node) {
			rows = append(rows, views.Row{Node: n})
		})
	}
	return rows
}

func (s *TreeScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case s.keys.Up, "up":
		s.moveCursor(-1)
	case s.keys.Down, "down":
		s.moveCursor(1)
	case s.keys.JumpTop, "home":
		s.cursor = 0
		s.clampCursor()
	case s.keys.JumpBottom, "end":
		s.cursor = len(s.rows) - 1
		s.clampCursor()
	case s.keys.PageUp, "pgup":
		s.moveCursor(-s.pageSize())
	case s.keys.PageDown, "pgdown":
		s.moveCursor(s.pageSize())
	case s.keys.Expand, "right":
		return s.Expand(s.Selected())
	case s.keys.Collapse, "left":
		s.Collapse(s.Selected())
	case s.keys.Toggle:
		n := s.Selected()
		if n != nil && n.State == tree.Expanded {
			s.Collapse(n)
			return nil
		}
		return s.Expand(n)
	}
	return nil
}

// Expand opens n, loading its children when needed
func (s *TreeScreen) Expand(n *tree.Node) tea.Cmd {
	if n == nil || n.State == tree.CollapsibleNone {
		return nil
	}
	n.Expand()
	n.UpdateLabel(s.withIcons)
	s.expanded[n.Key()] = true
	if s.filter != "" {
		// Leave the filtered list so the children show
		s.filter = ""
	}

	if n.LoadError() != nil {
		n.Invalidate()
	}

	var cmd tea.Cmd
	if n.IsLoaded() {
		cmd = s.restoreExpanded(n.LoadedChildren())
	} else {
		cmd = s.loadChildren(n)
	}
	s.rebuild(n)
	return cmd
}

// Collapse closes n, or moves to its parent when n is already closed
func (s *TreeScreen) Collapse(n *tree.Node) {
	if n == nil {
		return
	}
	if n.State == tree.Expanded {
		n.Collapse()
		n.UpdateLabel(s.withIcons)
		delete(s.expanded, n.Key())
		s.rebuild(n)
		return
	}
	if p := n.Parent(); p != nil {
		s.rebuild(p)
	}
}

func (s *TreeScreen) moveCursor(delta int) {
	s.cursor += delta
	s.clampCursor()
}

func (s *TreeScreen) pageSize() int {
	return max(s.bodyHeight()-1, 1)
}

func (s *TreeScreen) bodyHeight() int {
	return max(s.height-DetailLines, 1)
}

func (s *TreeScreen) clampCursor() {
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}

	visible := s.bodyHeight()
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}
	if s.offset > max(len(s.rows)-visible, 0) {
		s.offset = max(len(s.rows)-visible, 0)
	}
}

// View renders the visible rows and the detail line
func (s *TreeScreen) View() string {
	var lines []string
	switch {
	case s.err != nil:
		lines = append(lines, s.theme.Tree.StatusError.Render("Failed to load "+s.Title()+": "+s.err.Error()))
	case len(s.rows) == 0 && s.loading:
		lines = append(lines, s.theme.Tree.Description.Render("Loading "+strings.ToLower(s.Title())+"…"))
	case len(s.rows) == 0 && s.filter != "":
		lines = append(lines, s.theme.Tree.Description.Render("No rows match "+s.filter))
	}

	end := min(s.offset+s.bodyHeight(), len(s.rows))
	for i := s.offset; i < end; i++ {
		lines = append(lines, s.renderRow(s.rows[i], i == s.cursor))
	}
	for len(lines) < s.bodyHeight() {
		lines = append(lines, "")
	}

	lines = append(lines, s.detail())
	return strings.Join(lines, "\n")
}

func (s *TreeScreen) detail() string {
	n := s.Selected()
	if n == nil {
		return ""
	}
	text := n.Tooltip
	if text == "" && n.Readiness != nil {
		text = n.Readiness.Message
	}
	if text == "" {
		return ""
	}
	return s.theme.Tree.Description.Render(runewidth.Truncate(text, s.width, "…"))
}

func (s *TreeScreen) renderRow(r views.Row, selected bool) string {
	n := r.Node

	marker := "  "
	switch n.State {
	case tree.Collapsed:
		marker = "▸ "
	case tree.Expanded:
		marker = "▾ "
	}
	if s.pending[n] {
		marker = "… "
	}
	indent := strings.Repeat("  ", r.Depth) + marker

	icon := ""
	if s.withIcons {
		if g := n.Icon.Glyph(); g != "" {
			icon = g + " "
		}
	}

	avail := s.width - runewidth.StringWidth(indent) - runewidth.StringWidth(icon)
	label := runewidth.Truncate(n.Label, max(avail, 1), "…")
	desc := ""
	if rem := avail - runewidth.StringWidth(label); n.Description != "" && rem > 4 {
		desc = runewidth.Truncate("  "+n.Description, rem, "…")
	}

	if selected {
		line := indent + icon + label + desc
		return s.theme.Tree.SelectedRow.Render(runewidth.FillRight(line, s.width))
	}

	var b strings.Builder
	b.WriteString(s.theme.Tree.Guide.Render(indent))
	if icon != "" {
		b.WriteString(s.theme.IconStyle(n.Icon).Render(icon))
	}
	b.WriteString(s.theme.Tree.Row.Render(label))
	if desc != "" {
		b.WriteString(s.theme.Tree.Description.Render(desc))
	}
	return lipgloss.NewStyle().MaxWidth(s.width).Render(b.String())
}
