package tui

import "github.com/charmbracelet/lipgloss"

// palette 是一套配色；深色/浅色终端各一套。
type palette struct {
	accent lipgloss.Color
	ok     lipgloss.Color
	warn   lipgloss.Color
	text   lipgloss.Color
	muted  lipgloss.Color
}

var (
	darkPalette = palette{
		accent: lipgloss.Color("205"),
		ok:     lipgloss.Color("86"),
		warn:   lipgloss.Color("203"),
		text:   lipgloss.Color("255"),
		muted:  lipgloss.Color("241"),
	}
	lightPalette = palette{
		accent: lipgloss.Color("161"),
		ok:     lipgloss.Color("29"),
		warn:   lipgloss.Color("160"),
		text:   lipgloss.Color("235"),
		muted:  lipgloss.Color("246"),
	}
)

type styles struct {
	title     lipgloss.Style
	label     lipgloss.Style
	text      lipgloss.Style
	filePath  lipgloss.Style
	hint      lipgloss.Style
	button    lipgloss.Style
	disabled  lipgloss.Style
	focused   lipgloss.Style
	prompt    lipgloss.Style
	previewBx lipgloss.Style
	statusOK  lipgloss.Style
	statusErr lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return styles{
		title: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		label: lipgloss.NewStyle().
			Foreground(p.ok).
			Bold(true),
		text: lipgloss.NewStyle().
			Foreground(p.text),
		filePath: lipgloss.NewStyle().
			Foreground(p.text).
			Italic(true),
		hint: lipgloss.NewStyle().
			Foreground(p.muted).
			Faint(true),
		button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.ok).
			Padding(0, 1),
		disabled: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Foreground(p.muted).
			Faint(true).
			Padding(0, 1),
		focused: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		prompt: lipgloss.NewStyle().
			Foreground(p.ok),
		previewBx: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		statusOK: lipgloss.NewStyle().
			Foreground(p.ok),
		statusErr: lipgloss.NewStyle().
			Foreground(p.warn).
			Bold(true),
	}
}
