package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/riffle/internal/core/styles"
)

const defaultConfirmPrompt = "Continue? (y/n)"

// ConfirmModal is a yes/no dialog. It records the answer; the owning view
// reads Confirmed or Cancelled and decides what to do with it.
type ConfirmModal struct {
	message string
	prompt  string

	confirmed bool
	cancelled bool
}

// NewConfirmModal creates a dialog asking message with the default prompt.
func NewConfirmModal(message string) ConfirmModal {
	return ConfirmModal{
		message: message,
		prompt:  defaultConfirmPrompt,
	}
}

// WithPrompt replaces the answer line shown under the message.
func (m ConfirmModal) WithPrompt(prompt string) ConfirmModal {
	m.prompt = prompt
	return m
}

// Update records the user's answer. Keys other than yes/no are ignored so
// a stray navigation press cannot dismiss the dialog.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.confirmed = true
	case "n", "N", "esc":
		m.cancelled = true
	}
	return m, nil
}

// View renders the message with the answer prompt underneath.
func (m ConfirmModal) View() string {
	message := styles.ConfirmMessageStyle.Render(m.message)
	prompt := styles.TextPrimaryBold.Render(m.prompt)

	return message + "\n" + prompt
}

// Confirmed returns true if user confirmed.
func (m ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Cancelled returns true if user cancelled.
func (m ConfirmModal) Cancelled() bool {
	return m.cancelled
}
