package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds all key bindings for the workspace.
type KeyMap struct {
	Quit         key.Binding
	Help         key.Binding
	OpenBoard    key.Binding
	OpenTask     key.Binding
	OpenChat     key.Binding
	OpenSettings key.Binding
	CloseView    key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	TabLeft      key.Binding
	TabRight     key.Binding
	CycleGroup   key.Binding
	SplitRight   key.Binding
	SplitDown    key.Binding
	Move         key.Binding
	Grow         key.Binding
	Shrink       key.Binding
	Yank         key.Binding
	Favorite     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		OpenBoard:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "board")),
		OpenTask:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "task…")),
		OpenChat:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chat")),
		OpenSettings: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
		CloseView:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close view")),
		NextTab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("s-tab", "prev tab")),
		TabLeft:      key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move tab left")),
		TabRight:     key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move tab right")),
		CycleGroup:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "next pane")),
		SplitRight:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "split right")),
		SplitDown:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "split down")),
		Move:         key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move view…")),
		Grow:         key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "grow pane")),
		Shrink:       key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "shrink pane")),
		Yank:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank layout")),
		Favorite:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "load preset")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenBoard, k.OpenTask, k.OpenChat, k.SplitRight, k.Move, k.CloseView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.OpenBoard, k.OpenTask, k.OpenChat, k.OpenSettings, k.CloseView},
		{k.NextTab, k.PrevTab, k.TabLeft, k.TabRight, k.CycleGroup},
		{k.SplitRight, k.SplitDown, k.Move, k.Grow, k.Shrink},
		{k.Yank, k.Favorite, k.Help, k.Quit},
	}
}
