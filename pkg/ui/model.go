// Package ui renders the dw workspace as a terminal interface: the layout
// tree drawn as bordered panes with tab strips, driven by a bubbletea event
// loop over a single layout.Store.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/dockwork/internal/statestore"
	"github.com/vanderheijden86/dockwork/pkg/config"
	"github.com/vanderheijden86/dockwork/pkg/layout"
)

// mode is the model's input mode. Normal keys drive layout operations;
// prompt captures a task id; move walks the drag lifecycle on the Store.
type mode int

const (
	modeNormal mode = iota
	modePrompt
	modeMove
)

// StateReloadedMsg tells the model the Store was replaced from outside the
// event loop (autosave watcher, preset load on another goroutine). The model
// reads the Store on every View, so the message only forces a repaint.
type StateReloadedMsg struct{}

// Model is the bubbletea model for the workspace.
type Model struct {
	store   *layout.Store
	keys    KeyMap
	help    help.Model
	cfg     config.Config
	presets *statestore.DB // nil when the preset database is unavailable

	width  int
	height int

	mode      mode
	taskInput textinput.Model

	status    string
	statusErr bool
}

// NewModel builds the workspace model. presets may be nil; preset keys then
// report an error instead of loading.
func NewModel(store *layout.Store, cfg config.Config, presets *statestore.DB) Model {
	ti := textinput.New()
	ti.Placeholder = "task id"
	ti.CharLimit = 32
	ti.Width = 24
	return Model{
		store:     store,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		cfg:       cfg,
		presets:   presets,
		taskInput: ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case StateReloadedMsg:
		m.setStatus("layout reloaded", false)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modePrompt:
			return m.updatePrompt(msg)
		case modeMove:
			return m.updateMove(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.OpenBoard):
		m.store.OpenView("board", nil, layout.MainTarget())
		m.setStatus("opened board", false)

	case key.Matches(msg, m.keys.OpenTask):
		m.mode = modePrompt
		m.taskInput.SetValue("")
		return m, m.taskInput.Focus()

	case key.Matches(msg, m.keys.OpenChat):
		m.store.OpenView("chat", nil, layout.ActiveTarget())
		m.setStatus("opened chat", false)

	case key.Matches(msg, m.keys.OpenSettings):
		m.store.OpenView("settings", nil, layout.ActiveTarget())
		m.setStatus("opened settings", false)

	case key.Matches(msg, m.keys.CloseView):
		if v := m.store.State().ActiveView(); v != nil {
			m.store.CloseView(v.ID)
			m.setStatus("closed view", false)
		}

	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)

	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)

	case key.Matches(msg, m.keys.TabLeft):
		m.shiftTab(-1)

	case key.Matches(msg, m.keys.TabRight):
		m.shiftTab(1)

	case key.Matches(msg, m.keys.CycleGroup):
		m.cycleGroup()

	case key.Matches(msg, m.keys.SplitRight):
		m.splitActive(layout.DirRow)

	case key.Matches(msg, m.keys.SplitDown):
		m.splitActive(layout.DirCol)

	case key.Matches(msg, m.keys.Move):
		s := m.store.State()
		v := s.ActiveView()
		if v == nil || len(layout.LeafGroups(s.Tree)) < 2 && len(s.Groups[s.ActiveGroupID].ViewIDs) < 2 {
			m.setStatus("nowhere to move the view", true)
			break
		}
		m.store.StartDrag(v.ID)
		if m.store.Drag() != nil {
			m.mode = modeMove
			m.setStatus("move: 1-9 pick pane, h/j/k/l edge, enter drop, esc cancel", false)
		}

	case key.Matches(msg, m.keys.Grow):
		m.resizeActive(+0.05)

	case key.Matches(msg, m.keys.Shrink):
		m.resizeActive(-0.05)

	case key.Matches(msg, m.keys.Yank):
		m.yankLayout()

	case key.Matches(msg, m.keys.Favorite):
		m.loadFavorite(msg.String())
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		id := strings.TrimSpace(m.taskInput.Value())
		m.mode = modeNormal
		m.taskInput.Blur()
		if id == "" {
			m.setStatus("no task id given", true)
			return m, nil
		}
		m.store.OpenView("task", map[string]string{"task_id": id}, layout.ActiveTarget())
		m.setStatus("opened task "+id, false)
		return m, nil
	case tea.KeyEsc:
		m.mode = modeNormal
		m.taskInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) updateMove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	drag := m.store.Drag()
	if drag == nil {
		m.mode = modeNormal
		return m, nil
	}
	k := msg.String()
	switch {
	case k >= "1" && k <= "9":
		groups := layout.LeafGroups(m.store.State().Tree)
		idx := int(k[0] - '1')
		if idx < len(groups) {
			m.store.UpdateDrag(groups[idx], layout.ZoneCenter)
		}
	case k == "h" || k == "l" || k == "k" || k == "j":
		target := drag.TargetGroupID
		if target == "" {
			target = drag.SourceGroupID
		}
		m.store.UpdateDrag(target, edgeZone(k))
	case k == "enter":
		m.store.EndDrag()
		m.mode = modeNormal
		m.setStatus("view moved", false)
	case k == "esc", k == "q":
		m.store.CancelDrag()
		m.mode = modeNormal
		m.setStatus("move cancelled", false)
	}
	return m, nil
}

func edgeZone(k string) layout.DropZone {
	switch k {
	case "h":
		return layout.ZoneLeft
	case "l":
		return layout.ZoneRight
	case "k":
		return layout.ZoneTop
	default:
		return layout.ZoneBottom
	}
}

func (m *Model) cycleTab(delta int) {
	s := m.store.State()
	g := s.Groups[s.ActiveGroupID]
	if g == nil || len(g.ViewIDs) < 2 {
		return
	}
	idx := 0
	for i, id := range g.ViewIDs {
		if id == g.ActiveViewID {
			idx = i
			break
		}
	}
	next := (idx + delta + len(g.ViewIDs)) % len(g.ViewIDs)
	m.store.ActivateView(g.ViewIDs[next])
	m.setStatus("", false)
}

func (m *Model) shiftTab(delta int) {
	s := m.store.State()
	g := s.Groups[s.ActiveGroupID]
	if g == nil || len(g.ViewIDs) < 2 {
		return
	}
	idx := 0
	for i, id := range g.ViewIDs {
		if id == g.ActiveViewID {
			idx = i
			break
		}
	}
	m.store.ReorderTab(g.ID, g.ActiveViewID, idx+delta)
	m.setStatus("", false)
}

func (m *Model) cycleGroup() {
	s := m.store.State()
	groups := layout.LeafGroups(s.Tree)
	if len(groups) < 2 {
		return
	}
	for i, id := range groups {
		if id == s.ActiveGroupID {
			m.store.FocusGroup(groups[(i+1)%len(groups)])
			m.setStatus("", false)
			return
		}
	}
	m.store.FocusGroup(groups[0])
}

func (m *Model) splitActive(dir layout.Direction) {
	s := m.store.State()
	v := s.ActiveView()
	if v == nil {
		return
	}
	// Splitting duplicates nothing: the active view's type opens again in a
	// fresh group next to the current one. Singleton types would just
	// re-activate themselves, so fall back to a chat pane for those.
	t := v.Type
	spec := m.store.Engine().Registry().Spec(t)
	if spec.Mode == layout.ModeSingleton || t == layout.ViewTypeWelcome {
		t = "chat"
	}
	params := map[string]string{}
	for k, val := range v.Params {
		params[k] = val
	}
	m.store.OpenView(t, params, layout.SplitTarget(dir, layout.PosAfter))
	m.setStatus("split", false)
}

// resizeActive nudges the ratio of the split directly containing the active
// group. Growing always means "give this pane more space", so the sign flips
// with the child index.
func (m *Model) resizeActive(delta float64) {
	s := m.store.State()
	path, ok := layout.FindGroupPath(s.Tree, s.ActiveGroupID)
	if !ok || len(path) == 0 {
		m.setStatus("nothing to resize", true)
		return
	}
	parentPath := path[:len(path)-1]
	node, ok := layout.NodeAtPath(s.Tree, parentPath)
	if !ok {
		return
	}
	split, ok := node.(*layout.Split)
	if !ok {
		return
	}
	if path[len(path)-1] == 1 {
		delta = -delta
	}
	m.store.ResizeSplit(parentPath, split.Ratio+delta)
	m.setStatus(fmt.Sprintf("ratio %.2f", layout.ClampRatio(split.Ratio+delta)), false)
}

func (m *Model) yankLayout() {
	data, err := statestore.Encode(m.store.State())
	if err != nil {
		m.setStatus("yank failed: "+err.Error(), true)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.setStatus("clipboard unavailable: "+err.Error(), true)
		return
	}
	m.setStatus("layout copied to clipboard", false)
}

func (m *Model) loadFavorite(digit string) {
	if len(digit) != 1 || digit[0] < '1' || digit[0] > '9' {
		return
	}
	n := int(digit[0] - '0')
	name := m.cfg.FavoritePreset(n)
	if name == "" {
		m.setStatus(fmt.Sprintf("no preset bound to %d", n), true)
		return
	}
	if m.presets == nil {
		m.setStatus("preset database unavailable", true)
		return
	}
	state, err := m.presets.Load(name)
	if err != nil {
		m.setStatus("load "+name+": "+err.Error(), true)
		return
	}
	m.store.SetState(state)
	m.setStatus("loaded preset "+name, false)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	s := m.store.State()
	return m.renderBody(s) + "\n" + m.renderStatus(s)
}
