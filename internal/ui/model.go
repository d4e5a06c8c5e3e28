package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"minitask/internal/service"
	"minitask/internal/tasklist"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirm
)

// opMsg reports the end of a controller call started from Update.
type opMsg struct {
	label string
	err   error
}

// answer is the Confirmer the model hands to the controller. The model sets
// it from the in-app y/n prompt before dispatching clear completed.
type answer struct {
	mu  sync.Mutex
	yes bool
}

func (a *answer) set(yes bool) {
	a.mu.Lock()
	a.yes = yes
	a.mu.Unlock()
}

func (a *answer) Confirm(string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.yes
}

// Model is the bubbletea model.
type Model struct {
	ctx    context.Context
	ctrl   *tasklist.Controller
	answer *answer

	mode    mode
	cursor  int
	input   []rune
	pending int
	status  string
}

// New builds a model whose controller talks to client.
func New(ctx context.Context, client service.Client, logger zerolog.Logger) *Model {
	ans := &answer{}
	return &Model{
		ctx:    ctx,
		answer: ans,
		ctrl: tasklist.New(client,
			tasklist.WithLogger(logger),
			tasklist.WithConfirmer(ans),
		),
	}
}

// Controller exposes the underlying controller.
func (m *Model) Controller() *tasklist.Controller {
	return m.ctrl
}

func (m *Model) Init() tea.Cmd {
	return m.run("load", m.ctrl.Refetch)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case opMsg:
		m.pending--
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.label, msg.err)
		} else {
			m.status = ""
		}
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m, m.updateAdd(msg)
		case modeConfirm:
			return m, m.updateConfirm(msg)
		}
		return m, m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if m.ctrl.ShowModal() {
		switch key {
		case "esc":
			m.ctrl.HideModal()
		case "q":
			return tea.Quit
		}
		return nil
	}

	switch key {
	case "q":
		return tea.Quit
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case " ", "space":
		if m.ctrl.IsEmpty() {
			return nil
		}
		idx := m.cursor
		return m.run("toggle", func(ctx context.Context) error {
			return m.ctrl.ToggleTaskAt(ctx, idx)
		})
	case "d":
		if m.ctrl.IsEmpty() {
			return nil
		}
		idx := m.cursor
		return m.run("delete", func(ctx context.Context) error {
			return m.ctrl.DeleteTaskAt(ctx, idx)
		})
	case "a":
		m.mode = modeAdd
		m.input = m.input[:0]
	case "?", "f":
		return m.press(tasklist.ActionFAQ, tasklist.KeyFAQ)
	case "x":
		return m.press(tasklist.ActionClearAll, tasklist.KeyAllTask)
	case "c":
		if !m.ctrl.IsButtonDisabled(tasklist.KeyCompletedTask) {
			m.mode = modeConfirm
		}
	case "r":
		return m.run("refresh", m.ctrl.Refetch)
	}
	return nil
}

func (m *Model) updateAdd(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.input = m.input[:0]
	case tea.KeyEnter:
		text := strings.TrimSpace(string(m.input))
		m.mode = modeList
		m.input = m.input[:0]
		if text == "" {
			return nil
		}
		return m.run("add", func(ctx context.Context) error {
			return m.ctrl.AddTask(ctx, text)
		})
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.answer.set(true)
	case "n", "N", "esc", "enter":
		m.answer.set(false)
	default:
		return nil
	}
	m.mode = modeList
	return m.dispatch(tasklist.ActionClearCompleted)
}

// press dispatches action unless the button keyed by disabledKey is disabled.
func (m *Model) press(action, disabledKey string) tea.Cmd {
	if m.ctrl.IsButtonDisabled(disabledKey) {
		return nil
	}
	return m.dispatch(action)
}

func (m *Model) dispatch(action string) tea.Cmd {
	return m.run(action, func(ctx context.Context) error {
		return m.ctrl.DispatchButtonAction(ctx, tasklist.Press(action))
	})
}

// run starts op as a tea.Cmd; the result comes back as an opMsg.
func (m *Model) run(label string, op func(context.Context) error) tea.Cmd {
	m.pending++
	ctx := m.ctx
	return func() tea.Msg {
		return opMsg{label: label, err: op(ctx)}
	}
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
