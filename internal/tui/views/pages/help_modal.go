package pages

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

const helpMarkdown = `# Keys

## Navigate

| Key | Action |
| --- | ------ |
| h/j/k/l, arrows | move cursor |
| g / G | first / last page |

## Pages

| Key | Action |
| --- | ------ |
| space | grab / drop page |
| esc | cancel grab |
| e | edit page |
| o | open page in viewer |
| d | delete page |
| a | capture a new page |
| f | finish batch |
| q | quit without finalizing |
`

const (
	helpModalMaxWidth  = 64
	helpModalMaxHeight = 24
	helpModalMargin    = 4
)

// HelpModal shows the keybinding reference.
type HelpModal struct {
	viewport viewport.Model
}

// NewHelpModal renders the help text into a scrollable viewport.
func NewHelpModal(width, height int) *HelpModal {
	modalWidth := min(width-helpModalMargin, helpModalMaxWidth)
	modalHeight := min(height-helpModalMargin, helpModalMaxHeight)

	vp := viewport.New(modalWidth, modalHeight)
	vp.SetContent(renderHelp(modalWidth))
	return &HelpModal{viewport: vp}
}

func renderHelp(width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw help")
		return helpMarkdown
	}

	rendered, err := renderer.Render(helpMarkdown)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render help markdown")
		return helpMarkdown
	}
	return strings.TrimRight(rendered, "\n")
}

// ScrollUp scrolls the help text up.
func (m *HelpModal) ScrollUp() {
	m.viewport.LineUp(1)
}

// ScrollDown scrolls the help text down.
func (m *HelpModal) ScrollDown() {
	m.viewport.LineDown(1)
}

// View renders the help content.
func (m *HelpModal) View() string {
	return m.viewport.View()
}
