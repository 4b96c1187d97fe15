// Package tui 是 imgsort 的终端界面：只负责展示与按键分发，
// 所有状态变化都交给 browse.State。
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/John-Robertt/imgsort/internal/browse"
	"github.com/John-Robertt/imgsort/internal/domain"
)

type focus int

const (
	focusNone focus = iota
	focusSource
	focusUp
	focusDown
)

// inputCount 是目录输入框的数量（source/up/down）。
const inputCount = 3

// 没收到 WindowSizeMsg 前使用的预览尺寸。
const (
	defaultPreviewCols = 48
	defaultPreviewRows = 14
)

// Options 控制界面外观。
type Options struct {
	// Preview 为 false 时只显示文件信息，不渲染字符画。
	Preview bool
	// Dark 选择深色配色；通常取 lipgloss.HasDarkBackground()。
	Dark bool
	// Cwd 是输入框中相对路径的基准目录。
	Cwd string
}

// Model 是 bubbletea 的根模型。
type Model struct {
	fs    afero.Fs
	state *browse.State
	cwd   string

	keys   keyMap
	help   help.Model
	styles styles
	inputs [inputCount]textinput.Model
	focus  focus

	showPreview bool
	width       int
	height      int

	// 预览缓存：只在当前图片或窗口尺寸变化时重算。
	previewFor  domain.ImagePath
	previewCols int
	previewRows int
	previewArt  string
	previewInfo string
	previewErr  error

	status    string
	statusErr bool
}

// New 创建界面模型；state 必须已设置好源目录与目标槽位。
func New(fs afero.Fs, state *browse.State, opts Options) *Model {
	m := &Model{
		fs:          fs,
		state:       state,
		cwd:         opts.Cwd,
		keys:        defaultKeyMap(),
		help:        help.New(),
		styles:      newStyles(opts.Dark),
		showPreview: opts.Preview,
	}

	placeholders := [inputCount]string{
		"源目录（例如：~/Pictures/inbox）",
		"上槽目标目录（留空表示未配置）",
		"下槽目标目录（留空表示未配置）",
	}
	v := state.View()
	values := [inputCount]string{v.SourceDir, v.Dest[domain.SlotUp], v.Dest[domain.SlotDown]}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = "> "
		ti.PromptStyle = m.styles.prompt
		ti.TextStyle = m.styles.text
		ti.SetValue(values[i])
		m.inputs[i] = ti
	}

	m.refreshPreview()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Stats 返回会话统计（退出后由命令行输出摘要）。
func (m *Model) Stats() domain.SessionStats {
	return m.state.Stats()
}

// Status 返回状态栏文字及其是否为错误。
func (m *Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// ShowError 在状态栏显示错误（例如启动时扫描源目录失败）。
func (m *Model) ShowError(err error) {
	if err != nil {
		m.setError(err)
	}
}

func (m *Model) setStatus(msg string) {
	m.status, m.statusErr = msg, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}
