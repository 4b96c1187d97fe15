package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	MoveUp   key.Binding
	MoveDown key.Binding
	Prev     key.Binding
	Next     key.Binding
	Refresh  key.Binding
	Focus    key.Binding
	Apply    key.Binding
	Leave    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		MoveUp: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "移到上槽"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "移到下槽"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "上一张"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "下一张"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "重新扫描"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "编辑目录"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "应用"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "返回"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "帮助"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "退出"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveUp, k.MoveDown, k.Prev, k.Next, k.Focus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.MoveUp, k.MoveDown, k.Prev, k.Next},
		{k.Refresh, k.Focus, k.Apply, k.Leave},
		{k.Help, k.Quit},
	}
}

// inputKeyMap 是输入框获得焦点时的帮助提示。
type inputKeyMap struct{ keyMap }

func (k inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Apply, k.Leave}
}

func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
