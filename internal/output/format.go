// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"minitask/internal/service"
)

// FormatTask formats one task line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, checkbox, text)
func FormatTask(w io.Writer, num int, task service.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, normalizeText(task.Text))
}

// FormatTasks writes every task numbered from 1, or "no tasks" when empty.
func FormatTasks(w io.Writer, tasks []service.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "no tasks")
		return
	}
	for i, task := range tasks {
		FormatTask(w, i+1, task)
	}
}

// FormatRemaining writes the "N items left" footer.
func FormatRemaining(w io.Writer, incomplete int) {
	noun := "items"
	if incomplete == 1 {
		noun = "item"
	}
	fmt.Fprintf(w, "%d %s left\n", incomplete, noun)
}

// FAQ is the body of the FAQ modal.
const FAQ = `What is this?
  A minimalist to-do list. Every change is sent to the backend and the
  list is reloaded afterwards, so what you see is what is stored.

How do I complete a task?
  minitask toggle <n>, or press space in the terminal UI.

What does "Clear completed" do?
  It deletes every completed task, one at a time, after you confirm.

What does "Clear all" do?
  It deletes every task at once. There is no undo.
`

// FormatFAQ writes the FAQ framed like the modal.
func FormatFAQ(w io.Writer) {
	fmt.Fprintln(w, "FAQ")
	fmt.Fprintln(w, strings.Repeat("-", 3))
	fmt.Fprint(w, FAQ)
}

// normalizeText normalizes a task text for display.
// - Empty or whitespace-only texts become "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
