package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/John-Robertt/imgsort/internal/config"
	"github.com/John-Robertt/imgsort/internal/domain"
	"github.com/John-Robertt/imgsort/internal/logger"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus != focusNone {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.MoveUp):
		m.move(domain.SlotUp)
	case key.Matches(msg, m.keys.MoveDown):
		m.move(domain.SlotDown)
	case key.Matches(msg, m.keys.Prev):
		m.navigate(m.state.Previous)
	case key.Matches(msg, m.keys.Next):
		m.navigate(m.state.Next)
	case key.Matches(msg, m.keys.Refresh):
		if err := m.state.Refresh(); err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("已重新扫描：%d 张图片", m.state.Len()))
		}
	case key.Matches(msg, m.keys.Focus):
		return m, m.setFocus(focusSource)
	}
	m.refreshPreview()
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.resetInputs()
		return m, m.setFocus(focusNone)
	case key.Matches(msg, m.keys.Focus):
		next := m.focus + 1
		if next > focusDown {
			next = focusSource
		}
		return m, m.setFocus(next)
	case key.Matches(msg, m.keys.Apply):
		m.applyInput()
		m.refreshPreview()
		return m, m.setFocus(focusNone)
	}

	i := int(m.focus) - 1
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if int(f)-1 == i {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// resetInputs 放弃未应用的编辑，输入框回到当前生效值。
func (m *Model) resetInputs() {
	v := m.state.View()
	m.inputs[0].SetValue(v.SourceDir)
	m.inputs[1].SetValue(v.Dest[domain.SlotUp])
	m.inputs[2].SetValue(v.Dest[domain.SlotDown])
}

func (m *Model) applyInput() {
	val := config.NormalizePath(m.cwd, m.inputs[int(m.focus)-1].Value())
	log := logger.Get()

	switch m.focus {
	case focusSource:
		if err := m.state.SetSourceDirectory(val); err != nil {
			m.setError(err)
			m.resetInputs()
			return
		}
		log.Info().Str("source", val).Int("images", m.state.Len()).Msg("已切换源目录")
		m.setStatus(fmt.Sprintf("源目录：%d 张图片", m.state.Len()))
	case focusUp, focusDown:
		slot := domain.SlotUp
		if m.focus == focusDown {
			slot = domain.SlotDown
		}
		if err := m.state.SetDestination(slot, val); err != nil {
			m.setError(err)
			return
		}
		log.Info().Str("slot", slot.String()).Str("dest", val).Msg("已设置目标目录")
		if m.state.DestinationConfigured(slot) {
			m.setStatus(fmt.Sprintf("%s 槽位 → %s", slotLabel(slot), val))
		} else {
			m.setStatus(fmt.Sprintf("%s 槽位已清除", slotLabel(slot)))
		}
	}
	m.resetInputs()
}

func (m *Model) navigate(step func() error) {
	before := m.state.Stats().Rescans
	if err := step(); err != nil {
		m.setError(err)
		return
	}
	if m.state.Stats().Rescans != before {
		m.setStatus(fmt.Sprintf("列表已过期，已重新扫描：%d 张图片", m.state.Len()))
	}
}

func (m *Model) move(slot domain.Slot) {
	cur, ok := m.state.Current()
	if !ok {
		return
	}
	if !m.state.DestinationConfigured(slot) {
		m.setStatus(fmt.Sprintf("%s 槽位未配置（按 tab 设置）", slotLabel(slot)))
		return
	}

	before := m.state.Stats().Rescans
	dst, err := m.state.MoveCurrentTo(slot)
	switch {
	case err != nil:
		m.setError(err)
	case dst != "":
		m.setStatus(fmt.Sprintf("%s → %s", filepath.Base(cur.String()), dst))
	case m.state.Stats().Rescans != before:
		m.setStatus(fmt.Sprintf("列表已过期，已重新扫描：%d 张图片", m.state.Len()))
	}
}

func slotLabel(slot domain.Slot) string {
	if slot == domain.SlotDown {
		return "下"
	}
	return "上"
}
