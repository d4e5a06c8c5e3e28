package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"minitask/internal/output"
	"minitask/internal/tasklist"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	disabledStyle = buttonStyle.Faint(true)
	modalStyle    = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder())
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

var buttonKeys = map[string]string{
	tasklist.ActionFAQ:            "?",
	tasklist.ActionClearAll:       "x",
	tasklist.ActionClearCompleted: "c",
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("minitask"))
	b.WriteString("\n\n")

	if m.ctrl.ShowModal() {
		b.WriteString(modalStyle.Render(strings.TrimRight(output.FAQ, "\n")))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc close | q quit"))
		b.WriteString("\n")
		return b.String()
	}

	m.writeTasks(&b)
	b.WriteString("\n")
	m.writeButtons(&b)
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		fmt.Fprintf(&b, "New task: %s_\n", string(m.input))
	case modeConfirm:
		fmt.Fprintf(&b, "%s [y/N]\n", tasklist.ClearCompletedPrompt)
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	} else if m.pending > 0 {
		b.WriteString(helpStyle.Render("working..."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("j/k move | space toggle | d delete | a add | r refresh | q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) writeTasks(b *strings.Builder) {
	tasks := m.ctrl.Tasks()
	if len(tasks) == 0 {
		b.WriteString("  no tasks\n")
		return
	}
	for i, task := range tasks {
		check := "[ ]"
		text := task.Text
		if task.Completed {
			check = "[x]"
			text = doneStyle.Render(text)
		}
		line := fmt.Sprintf("%s %s", check, text)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	output.FormatRemaining(b, m.ctrl.IncompleteCount())
}

func (m *Model) writeButtons(b *strings.Builder) {
	rendered := make([]string, 0, 3)
	for _, btn := range m.ctrl.Buttons() {
		label := fmt.Sprintf("%s (%s)", btn.Label, buttonKeys[btn.Action])
		style := buttonStyle
		if m.ctrl.IsButtonDisabled(btn.DisabledKey) {
			style = disabledStyle
		}
		rendered = append(rendered, style.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
}
