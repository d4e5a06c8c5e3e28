package tasklist

import (
	"context"
)

// Button actions.
const (
	ActionFAQ            = "faq"
	ActionClearAll       = "clearAll"
	ActionClearCompleted = "clearCompleted"
)

// Keys naming the predicates that disable a button.
const (
	KeyFAQ           = "faq"
	KeyAllTask       = "allTask"
	KeyCompletedTask = "completedTask"
)

// Event is a button press. On.Action selects the handler.
type Event struct {
	On struct {
		Action string
	}
}

// Press builds the Event for a button action.
func Press(action string) Event {
	var e Event
	e.On.Action = action
	return e
}

// Button describes one entry in the button bar.
type Button struct {
	Label       string
	Action      string
	DisabledKey string
}

var buttons = []Button{
	{Label: "FAQ", Action: ActionFAQ, DisabledKey: KeyFAQ},
	{Label: "Clear all", Action: ActionClearAll, DisabledKey: KeyAllTask},
	{Label: "Clear completed", Action: ActionClearCompleted, DisabledKey: KeyCompletedTask},
}

// Buttons returns the fixed button bar.
func (c *Controller) Buttons() []Button {
	out := make([]Button, len(buttons))
	copy(out, buttons)
	return out
}

var actions = map[string]func(*Controller, context.Context) error{
	ActionFAQ: func(c *Controller, _ context.Context) error {
		c.ShowFAQModal()
		return nil
	},
	ActionClearAll:       (*Controller).ClearAll,
	ActionClearCompleted: (*Controller).ClearCompleted,
}

var disabled = map[string]func(*Controller) bool{
	KeyFAQ:           func(*Controller) bool { return false },
	KeyAllTask:       (*Controller).IsEmpty,
	KeyCompletedTask: (*Controller).NoneCompleted,
}

// DispatchButtonAction runs the handler mapped to e.On.Action.
// Unknown actions do nothing.
func (c *Controller) DispatchButtonAction(ctx context.Context, e Event) error {
	h, ok := actions[e.On.Action]
	if !ok {
		c.logger.Debug().Str("action", e.On.Action).Msg("ignored unknown button action")
		return nil
	}
	return h(c, ctx)
}

// IsButtonDisabled reports whether the button keyed by key is disabled.
// The FAQ button is never disabled; unknown keys are enabled.
func (c *Controller) IsButtonDisabled(key string) bool {
	pred, ok := disabled[key]
	if !ok {
		return false
	}
	return pred(c)
}
