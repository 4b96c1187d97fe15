package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/John-Robertt/imgsort/internal/domain"
	"github.com/John-Robertt/imgsort/internal/preview"
)

func (m *Model) View() string {
	v := m.state.View()
	var b strings.Builder

	b.WriteString(m.styles.title.Render("imgsort"))
	b.WriteString("  ")
	b.WriteString(m.styles.hint.Render(v.SourceDir))
	b.WriteString("\n\n")

	b.WriteString(m.renderCurrent(v))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderButton(v, domain.SlotUp, "↑ 上"),
		" ",
		m.renderButton(v, domain.SlotDown, "↓ 下"),
	))
	b.WriteString("\n\n")

	b.WriteString(m.renderInputs())
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(m.styles.statusErr.Render("✗ " + m.status))
		} else {
			b.WriteString(m.styles.statusOK.Render("✓ " + m.status))
		}
		b.WriteString("\n")
	}

	if m.focus != focusNone {
		b.WriteString(m.help.View(inputKeyMap{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m *Model) renderCurrent(v domain.View) string {
	if !v.HasCurrent {
		return m.styles.hint.Render("（没有图片）")
	}

	var b strings.Builder
	b.WriteString(m.styles.label.Render(fmt.Sprintf("[%d/%d] ", v.Index+1, v.Total)))
	b.WriteString(m.styles.filePath.Render(filepath.Base(v.Current.String())))
	if m.previewInfo != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.hint.Render(m.previewInfo))
	}
	if !m.showPreview {
		return b.String()
	}

	b.WriteString("\n")
	switch {
	case m.previewErr != nil:
		b.WriteString(m.styles.previewBx.Render(m.styles.hint.Render("无法预览：" + m.previewErr.Error())))
	case m.previewArt != "":
		b.WriteString(m.styles.previewBx.Render(m.previewArt))
	}
	return b.String()
}

func (m *Model) renderButton(v domain.View, slot domain.Slot, label string) string {
	if !v.DestConfigured[slot] {
		return m.styles.disabled.Render(label + "：未配置")
	}
	return m.styles.button.Render(label + "：" + v.Dest[slot])
}

func (m *Model) renderInputs() string {
	labels := [inputCount]string{"源目录", "上槽", "下槽"}
	var b strings.Builder
	for i := range m.inputs {
		label := m.styles.hint.Render(fmt.Sprintf("%-4s", labels[i]))
		if int(m.focus)-1 == i {
			label = m.styles.focused.Render(fmt.Sprintf("%-4s", labels[i]))
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}

// previewSize 由窗口尺寸推导预览区域；为其余界面元素预留空间。
func (m *Model) previewSize() (cols, rows int) {
	if m.width <= 0 || m.height <= 0 {
		return defaultPreviewCols, defaultPreviewRows
	}
	cols = m.width - 4
	rows = m.height - 18
	if cols < 8 {
		cols = 8
	}
	if rows < 4 {
		rows = 4
	}
	return cols, rows
}

func (m *Model) refreshPreview() {
	cur, ok := m.state.Current()
	if !ok {
		m.previewFor, m.previewArt, m.previewInfo, m.previewErr = "", "", "", nil
		return
	}
	cols, rows := m.previewSize()
	if cur == m.previewFor && cols == m.previewCols && rows == m.previewRows {
		return
	}
	m.previewFor, m.previewCols, m.previewRows = cur, cols, rows
	m.previewArt, m.previewInfo, m.previewErr = "", "", nil

	info, err := preview.Describe(m.fs, cur.String())
	if err != nil {
		m.previewErr = err
		return
	}
	m.previewInfo = info.String()
	if !m.showPreview {
		return
	}
	m.previewArt, m.previewErr = preview.Render(m.fs, cur.String(), cols, rows)
}
