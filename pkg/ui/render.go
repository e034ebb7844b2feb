package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/dockwork/pkg/layout"
)

// renderBody draws the layout tree into the space above the status bar.
func (m Model) renderBody(s *layout.LayoutState) string {
	bodyHeight := m.height - 2 // status line + help line
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	leafIndex := make(map[string]int)
	for i, id := range layout.LeafGroups(s.Tree) {
		leafIndex[id] = i
	}
	return m.renderNode(s, s.Tree, m.width, bodyHeight, leafIndex)
}

func (m Model) renderNode(s *layout.LayoutState, node layout.TreeNode, w, h int, leafIndex map[string]int) string {
	switch n := node.(type) {
	case *layout.Leaf:
		return m.renderGroup(s, s.Groups[n.GroupID], w, h, leafIndex)
	case *layout.Split:
		if n.Direction == layout.DirRow {
			lw := int(float64(w) * n.Ratio)
			if lw < 4 {
				lw = 4
			}
			if lw > w-4 {
				lw = w - 4
			}
			left := m.renderNode(s, n.Children[0], lw, h, leafIndex)
			right := m.renderNode(s, n.Children[1], w-lw, h, leafIndex)
			return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
		}
		th := int(float64(h) * n.Ratio)
		if th < 3 {
			th = 3
		}
		if th > h-3 {
			th = h - 3
		}
		top := m.renderNode(s, n.Children[0], w, th, leafIndex)
		bottom := m.renderNode(s, n.Children[1], w, h-th, leafIndex)
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}
	return ""
}

func (m Model) renderGroup(s *layout.LayoutState, g *layout.ViewGroup, w, h int, leafIndex map[string]int) string {
	if g == nil {
		return ""
	}
	innerW := w - 2
	innerH := h - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	drag := m.store.Drag()
	tabs := m.renderTabs(s, g, innerW, drag, leafIndex)
	body := m.renderPaneBody(s, g, innerW, innerH-1)

	content := lipgloss.NewStyle().Width(innerW).Height(innerH).
		Render(tabs + "\n" + body)

	border := paneBorderStyle
	if g.ID == s.ActiveGroupID {
		border = paneBorderFocusedStyle
	}
	if drag != nil && drag.TargetGroupID == g.ID {
		border = paneBorderFocusedStyle.BorderForeground(ColorWarning)
	}
	return border.Render(content)
}

// renderTabs draws the group's tab strip, truncated to fit. In move mode
// every pane shows its selection digit so the user can pick a drop target.
func (m Model) renderTabs(s *layout.LayoutState, g *layout.ViewGroup, w int, drag *layout.DragState, leafIndex map[string]int) string {
	var b strings.Builder
	if drag != nil {
		if idx, ok := leafIndex[g.ID]; ok && idx < 9 {
			b.WriteString(moveTargetStyle.Render(fmt.Sprintf("[%d]", idx+1)))
		}
	}
	for _, id := range g.ViewIDs {
		v := s.Views[id]
		if v == nil {
			continue
		}
		label := runewidth.Truncate(viewTitle(v), 20, "…")
		if v.Dirty {
			label += " " + dirtyMarkerStyle.Render("●")
		}
		if id == g.ActiveViewID {
			b.WriteString(tabActiveStyle.Render(label))
		} else {
			b.WriteString(tabInactiveStyle.Render(label))
		}
	}
	// MaxWidth is ANSI-aware, unlike a raw rune truncate on styled text.
	return lipgloss.NewStyle().MaxWidth(w).Render(b.String())
}

func (m Model) renderPaneBody(s *layout.LayoutState, g *layout.ViewGroup, w, h int) string {
	v := s.Views[g.ActiveViewID]
	if v == nil {
		return ""
	}
	title := bodyTitleStyle.Render(viewTitle(v))
	var lines []string
	lines = append(lines, title)
	switch v.Type {
	case layout.ViewTypeWelcome:
		lines = append(lines,
			bodyTextStyle.Render("b board · t task · c chat · , settings"),
			bodyTextStyle.Render("s/S split · m move · x close · ? help"),
		)
	case "task":
		if id := v.Params["task_id"]; id != "" {
			lines = append(lines, bodyTextStyle.Render("task "+id))
		}
	default:
		if len(v.Params) > 0 {
			for k, val := range v.Params {
				lines = append(lines, bodyTextStyle.Render(runewidth.Truncate(k+": "+val, max(8, w), "…")))
				break
			}
		}
	}
	return lipgloss.NewStyle().Width(w).Height(h).Render(strings.Join(lines, "\n"))
}

// renderStatus draws the one-line status bar plus the help line under it.
func (m Model) renderStatus(s *layout.LayoutState) string {
	var line string
	switch {
	case m.mode == modePrompt:
		line = promptStyle.Render("open task: ") + m.taskInput.View()
	case m.statusErr:
		line = statusErrStyle.Render(m.status)
	case m.status != "":
		line = statusInfoStyle.Render(m.status)
	default:
		groups := layout.LeafGroups(s.Tree)
		line = statusStyle.Render(fmt.Sprintf("%d pane(s) · %d view(s)", len(groups), len(s.Views)))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line) + "\n" + m.help.View(m.keys)
}

func viewTitle(v *layout.View) string {
	switch v.Type {
	case layout.ViewTypeWelcome:
		return "Welcome"
	case "board":
		return "Board"
	case "task":
		if id := v.Params["task_id"]; id != "" {
			return "Task " + id
		}
		return "Task"
	case "chat":
		return "Chat"
	case "settings":
		return "Settings"
	}
	return string(v.Type)
}
