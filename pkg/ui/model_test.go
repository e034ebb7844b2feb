package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/dockwork/pkg/config"
	"github.com/vanderheijden86/dockwork/pkg/layout"
	"github.com/vanderheijden86/dockwork/pkg/testutil"
)

func newTestModel(t *testing.T) (Model, *layout.Store) {
	t.Helper()
	st := layout.NewStore(testutil.NewEngine())
	m := NewModel(st, config.DefaultConfig(), nil)
	m = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, st
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return got
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = apply(t, m, msg)
	}
	return m
}

func TestOpenKeys(t *testing.T) {
	m, st := newTestModel(t)

	m = press(t, m, "b")
	if testutil.ViewByType(st.State(), "board") == nil {
		t.Fatal("expected a board view after pressing b")
	}

	m = press(t, m, "c")
	if testutil.ViewByType(st.State(), "chat") == nil {
		t.Fatal("expected a chat view after pressing c")
	}

	press(t, m, ",")
	if testutil.ViewByType(st.State(), "settings") == nil {
		t.Fatal("expected a settings view after pressing ,")
	}
}

func TestTaskPrompt(t *testing.T) {
	t.Run("opens task with entered id", func(t *testing.T) {
		m, st := newTestModel(t)
		m = press(t, m, "t")
		if !strings.Contains(m.View(), "open task") {
			t.Fatal("expected the task prompt to be visible")
		}
		m = press(t, m, "4", "2", "enter")
		v := testutil.ViewByType(st.State(), "task")
		if v == nil {
			t.Fatal("expected a task view")
		}
		if v.Params["task_id"] != "42" {
			t.Fatalf("task_id = %q, want %q", v.Params["task_id"], "42")
		}
		if strings.Contains(m.View(), "open task") {
			t.Fatal("prompt still visible after submit")
		}
	})

	t.Run("esc cancels without opening", func(t *testing.T) {
		m, st := newTestModel(t)
		press(t, m, "t", "9", "esc")
		if testutil.ViewByType(st.State(), "task") != nil {
			t.Fatal("esc should not open a task view")
		}
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		m, st := newTestModel(t)
		press(t, m, "t", "enter")
		if testutil.ViewByType(st.State(), "task") != nil {
			t.Fatal("empty id should not open a task view")
		}
	})
}

func TestSplitAndPaneCycle(t *testing.T) {
	m, st := newTestModel(t)
	m = press(t, m, "c", "s")
	if n := len(layout.LeafGroups(st.State().Tree)); n != 2 {
		t.Fatalf("expected 2 panes after split, got %d", n)
	}
	was := st.State().ActiveGroupID
	press(t, m, "w")
	if st.State().ActiveGroupID == was {
		t.Fatal("w should focus the other pane")
	}
}

func TestCloseKey(t *testing.T) {
	m, st := newTestModel(t)
	m = press(t, m, "c")
	if testutil.CountViews(st.State(), "chat") != 1 {
		t.Fatal("expected one chat view")
	}
	press(t, m, "x")
	if testutil.CountViews(st.State(), "chat") != 0 {
		t.Fatal("x should close the chat view")
	}
}

func TestTabKeys(t *testing.T) {
	m, st := newTestModel(t)
	// welcome replaced by two chats in the same group
	m = press(t, m, "c", "c")
	g := st.State().Groups[st.State().ActiveGroupID]
	if len(g.ViewIDs) != 3 {
		t.Fatalf("expected 3 tabs, got %d", len(g.ViewIDs))
	}
	active := g.ActiveViewID

	m = press(t, m, "tab")
	g = st.State().Groups[st.State().ActiveGroupID]
	if g.ActiveViewID == active {
		t.Fatal("tab should advance the active tab")
	}

	m = press(t, m, "shift+tab")
	g = st.State().Groups[st.State().ActiveGroupID]
	if g.ActiveViewID != active {
		t.Fatal("shift+tab should return to the previous tab")
	}

	// active is the last tab (chats appended after welcome); move it left
	press(t, m, "<")
	g = st.State().Groups[st.State().ActiveGroupID]
	if g.ViewIDs[1] != active {
		t.Fatalf("expected active tab at index 1, got order %v", g.ViewIDs)
	}
}

func TestMoveMode(t *testing.T) {
	t.Run("drop on edge of other pane", func(t *testing.T) {
		m, st := newTestModel(t)
		m = press(t, m, "c", "s") // two panes, focus on the new one
		moved := st.State().ActiveView().ID

		m = press(t, m, "m")
		if st.Drag() == nil {
			t.Fatal("m should start a drag")
		}
		m = press(t, m, "1", "k", "enter")
		if st.Drag() != nil {
			t.Fatal("enter should end the drag")
		}
		g := st.State().GroupOf(moved)
		if g == nil {
			t.Fatal("moved view disappeared")
		}
		path, _ := layout.FindGroupPath(st.State().Tree, g.ID)
		node, _ := layout.NodeAtPath(st.State().Tree, path[:len(path)-1])
		split, ok := node.(*layout.Split)
		if !ok || split.Direction != layout.DirCol {
			t.Fatalf("expected the view in a column split, got %T", node)
		}
	})

	t.Run("esc cancels", func(t *testing.T) {
		m, st := newTestModel(t)
		m = press(t, m, "c", "s")
		before := st.State()
		press(t, m, "m", "1", "esc")
		if st.Drag() != nil {
			t.Fatal("esc should clear the drag")
		}
		if st.State() != before {
			t.Fatal("cancelled move must not change the layout")
		}
	})

	t.Run("blocked on single welcome view", func(t *testing.T) {
		m, st := newTestModel(t)
		press(t, m, "m")
		if st.Drag() != nil {
			t.Fatal("nothing to move from a lone welcome view")
		}
	})
}

func TestResizeKeys(t *testing.T) {
	m, st := newTestModel(t)
	m = press(t, m, "c", "s")
	path, _ := layout.FindGroupPath(st.State().Tree, st.State().ActiveGroupID)
	split := st.State().Tree.(*layout.Split)
	before := split.Ratio

	press(t, m, "L")
	after := st.State().Tree.(*layout.Split).Ratio
	if after == before {
		t.Fatal("L should change the split ratio")
	}
	// active pane is the second child, so growing it shrinks the ratio
	if path[len(path)-1] == 1 && after >= before {
		t.Fatalf("ratio went from %v to %v, expected it to shrink", before, after)
	}
}

func TestFavoriteKeyWithoutBinding(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "7")
	if !strings.Contains(m.View(), "no preset bound") {
		t.Fatal("expected an error status for an unbound preset key")
	}
}

func TestYankWithoutClipboardDoesNotPanic(t *testing.T) {
	// Headless CI has no clipboard provider; the key must fail soft.
	m, _ := newTestModel(t)
	press(t, m, "y")
}

func TestStateReloadedMsg(t *testing.T) {
	m, _ := newTestModel(t)
	m = apply(t, m, StateReloadedMsg{})
	if !strings.Contains(m.View(), "layout reloaded") {
		t.Fatal("expected a reload notice in the status bar")
	}
}

func TestViewTitle(t *testing.T) {
	tests := []struct {
		view *layout.View
		want string
	}{
		{&layout.View{Type: layout.ViewTypeWelcome}, "Welcome"},
		{&layout.View{Type: "board"}, "Board"},
		{&layout.View{Type: "task"}, "Task"},
		{&layout.View{Type: "task", Params: map[string]string{"task_id": "7"}}, "Task 7"},
		{&layout.View{Type: "chat"}, "Chat"},
		{&layout.View{Type: "settings"}, "Settings"},
		{&layout.View{Type: "scratch"}, "scratch"},
	}
	for _, tt := range tests {
		if got := viewTitle(tt.view); got != tt.want {
			t.Errorf("viewTitle(%s) = %q, want %q", tt.view.Type, got, tt.want)
		}
	}
}

func TestRenderShowsPanes(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "b", "c", "s")
	out := m.View()
	for _, want := range []string{"Board", "Chat"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered frame missing %q", want)
		}
	}
}
