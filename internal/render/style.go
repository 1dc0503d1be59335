package render

import "github.com/charmbracelet/lipgloss"

var (
	colorPass  = lipgloss.Color("#66bb6a")
	colorFail  = lipgloss.Color("#ef5350")
	colorMuted = lipgloss.Color("#888888")

	stylePass   = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
	styleFail   = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleHeader = lipgloss.NewStyle().Bold(true)
)

// painter applies styles only when colour is enabled, so plain output
// stays byte-for-byte stable.
type painter bool

func (p painter) paint(s lipgloss.Style, text string) string {
	if !p {
		return text
	}
	return s.Render(text)
}
