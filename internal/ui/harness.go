package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness runs the model without a terminal. Messages go through Update
// and every returned command is executed inline, so a key press that
// issues a host action also sees its ActionResult applied before Send
// returns.
type Harness struct {
	model *Model
}

// NewHarness wraps an already-constructed model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes one message through the model and drains the command chain.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.deliver(msg)
}

func (h *Harness) deliver(msg tea.Msg) {
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, cmd := range batch {
			h.runCmd(cmd)
		}
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.runCmd(cmd)
}

func (h *Harness) runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	// Blink messages reschedule themselves forever; drop them so the
	// chain always terminates.
	if _, blink := msg.(cursor.BlinkMsg); blink {
		return
	}
	h.deliver(msg)
}

// View renders the model's current frame.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model for assertions.
func (h *Harness) Model() *Model {
	return h.model
}
