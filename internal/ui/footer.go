package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// DefaultFlashDuration is how long a flash message stays in the footer
const DefaultFlashDuration = 3 * time.Second

// flashTickInterval is how often an active flash is checked for expiry
const flashTickInterval = 500 * time.Millisecond

// FlashType selects the icon and color of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient status line that replaces the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives flash expiry
type FlashTickMsg time.Time

// FlashTick returns a command that sends a FlashTickMsg
func FlashTick() tea.Cmd {
	return tea.Tick(flashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	feedFocused  bool // Whether the feed (not the input) has focus
	hasSelection bool // Whether a message is under the cursor
	helpOpen     bool // Whether the help overlay is showing
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "tab", Desc: "messages"},
			{Key: "ctrl+t", Desc: "dark mode"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(feedFocused, hasSelection, helpOpen bool) {
	f.feedFocused = feedFocused
	f.hasSelection = hasSelection
	f.helpOpen = helpOpen
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows text in place of the key bindings for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows text in place of the key bindings for d
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes any flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes the flash message once it has expired and reports
// whether it did so
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) renderFlash() string {
	var icon string
	var color = ColorTextMuted
	switch f.flashMessage.Type {
	case FlashError:
		icon, color = "✕", ColorError
	case FlashWarning:
		icon, color = "⚠", ColorWarning
	case FlashSuccess:
		icon, color = "✓", ColorSuccess
	default:
		icon, color = "ℹ", ColorSecondary
	}
	style := lipgloss.NewStyle().Foreground(color)
	return style.Bold(true).Render(icon) + " " + style.Render(f.flashMessage.Text)
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	var bindings []KeyBinding
	switch {
	case f.helpOpen:
		bindings = []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "/", Desc: "filter"},
			{Key: "esc/?", Desc: "close"},
		}
	case f.feedFocused && f.hasSelection:
		bindings = []KeyBinding{
			{Key: "1-4", Desc: "react"},
			{Key: "↑/↓/j/k", Desc: "select"},
			{Key: "y", Desc: "copy"},
			{Key: "esc", Desc: "input"},
			{Key: "?", Desc: "help"},
		}
	case f.feedFocused:
		bindings = []KeyBinding{
			{Key: "↑/↓/j/k", Desc: "select"},
			{Key: "esc", Desc: "input"},
			{Key: "?", Desc: "help"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	default:
		bindings = f.bindings
	}

	var parts []string
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
