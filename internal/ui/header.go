package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// HeaderTitle is the application title shown on the left of the header
const HeaderTitle = "💬 huddle"

// Header represents the top header bar
type Header struct {
	width    int
	online   int
	offline  bool
	username string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetOnlineCount sets the number of users on the roster
func (h *Header) SetOnlineCount(n int) {
	h.online = n
}

// SetOffline marks the connection as lost
func (h *Header) SetOffline(offline bool) {
	h.offline = offline
}

// SetUsername sets the local display name
func (h *Header) SetUsername(name string) {
	h.username = name
}

// statusText is the right-hand side of the header
func (h *Header) statusText() string {
	if h.offline {
		return "offline"
	}
	if h.online == 1 {
		return "1 user online"
	}
	return fmt.Sprintf("%d users online", h.online)
}

// View renders the header
func (h *Header) View() string {
	titleText := " " + HeaderTitle
	if h.username != "" {
		titleText += " · " + h.username
	}
	rightText := h.statusText() + " "

	// Widths are measured in cells so emoji in the title don't skew the padding
	paddingLen := h.width - ansi.StringWidth(titleText) - ansi.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText
	return h.renderGradient(fullContent, len([]rune(titleText)), len([]rune(fullContent))-len([]rune(rightText)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// Runes before boldEnd are bold; runes from statusStart on use the muted or
// warning color.
func (h *Header) renderGradient(content string, boldEnd, statusStart int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the panel background
	endR, endG, endB := parseHexColor(theme.BgPanel)

	textColor := lipgloss.Color(theme.Text)
	statusColor := lipgloss.Color(theme.TextMuted)
	if h.offline {
		statusColor = lipgloss.Color(theme.Warning)
	}
	titleColor := lipgloss.Color("#FFFFFF")

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		// Calculate interpolation factor (0.0 to 1.0)
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < boldEnd)

		switch {
		case i < boldEnd:
			style = style.Foreground(titleColor)
		case i >= statusStart:
			style = style.Foreground(statusColor)
		default:
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
