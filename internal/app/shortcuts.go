package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/chat"
	"github.com/zhubert/huddle/internal/clipboard"
	"github.com/zhubert/huddle/internal/errors"
	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/protocol"
	"github.com/zhubert/huddle/internal/ui"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for the help overlay and key dispatch.
type Shortcut struct {
	Key          string                              // The key binding (e.g., "y", "ctrl+t")
	DisplayKey   string                              // Display name in help; defaults to Key
	Description  string                              // Human-readable description
	Category     string                              // Section for help grouping
	RequiresFeed bool                                // Only when the feed has focus
	Handler      func(m *Model) (tea.Model, tea.Cmd) // Action to perform
}

// Categories for organizing shortcuts in the help overlay
const (
	CategoryGeneral  = "General"
	CategoryInput    = "Input"
	CategoryMessages = "Messages"
)

// categoryOrder defines the display order of categories in the help overlay
var categoryOrder = []string{
	CategoryInput,
	CategoryMessages,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of keyboard shortcuts.
var ShortcutRegistry = []Shortcut{
	// General
	{
		Key:         keys.Tab,
		DisplayKey:  "tab/shift+tab",
		Description: "Switch between input and messages",
		Category:    CategoryGeneral,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:         keys.CtrlT,
		Description: "Toggle dark mode",
		Category:    CategoryGeneral,
		Handler:     shortcutToggleDarkMode,
	},
	{
		Key:         keys.CtrlN,
		Description: "Toggle desktop notifications",
		Category:    CategoryGeneral,
		Handler:     shortcutToggleNotifications,
	},
	{
		Key:         keys.CtrlC,
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},

	// Input
	{
		Key:         keys.Enter,
		Description: "Send message",
		Category:    CategoryInput,
		Handler:     shortcutSubmit,
	},
	{
		Key:         keys.CtrlV,
		Description: "Paste from clipboard",
		Category:    CategoryInput,
		Handler:     shortcutPaste,
	},

	// Messages
	{
		Key:          "y",
		Description:  "Copy selected message",
		Category:     CategoryMessages,
		RequiresFeed: true,
		Handler:      shortcutCopy,
	},
	{
		Key:          keys.Escape,
		Description:  "Back to input",
		Category:     CategoryMessages,
		RequiresFeed: true,
		Handler:      shortcutFocusInput,
	},
}

// DisplayOnlyShortcuts are shown in help but dispatched elsewhere
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ j/k", Description: "Move cursor", Category: CategoryMessages},
	{DisplayKey: "home/end", Description: "First / last message", Category: CategoryMessages},
	{DisplayKey: "1-4", Description: "React with " + strings.Join(chat.ReactionPalette, " "), Category: CategoryMessages},
	{DisplayKey: "pgup/pgdn", Description: "Scroll messages", Category: CategoryMessages},
	{DisplayKey: "?", Description: "Show keyboard shortcuts", Category: CategoryMessages},
}

// isShortcutApplicable checks whether a shortcut's guards pass in the current state
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresFeed && m.focus != FocusFeed {
		return false
	}
	if s.Key == keys.Enter || s.Key == keys.CtrlV {
		return m.focus == FocusInput
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	// Help builds from the registry, so it lives outside it
	if key == "?" {
		if m.focus != FocusFeed {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			return m, nil, false
		}
		m.log.Debug("executing shortcut", "key", key)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// helpSections builds the help overlay contents from both registries
func helpSections() []ui.HelpSection {
	categories := make(map[string][]ui.HelpShortcut)
	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], ui.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}
	for _, s := range ShortcutRegistry {
		add(s)
	}
	for _, s := range DisplayOnlyShortcuts {
		add(s)
	}

	var sections []ui.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, ui.HelpSection{Title: cat, Shortcuts: shortcuts})
		}
	}
	return sections
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	m.toggleFocus()
	return m, nil
}

func shortcutFocusInput(m *Model) (tea.Model, tea.Cmd) {
	m.setFocus(FocusInput)
	return m, nil
}

func shortcutToggleDarkMode(m *Model) (tea.Model, tea.Cmd) {
	m.toggleDarkMode()
	return m, nil
}

func shortcutToggleNotifications(m *Model) (tea.Model, tea.Cmd) {
	m.notifications = !m.notifications
	if m.notifications {
		return m, m.ShowFlashInfo("Notifications on")
	}
	return m, m.ShowFlashInfo("Notifications off")
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

func shortcutSubmit(m *Model) (tea.Model, tea.Cmd) {
	return m.sendMessage()
}

func shortcutPaste(m *Model) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg {
		text, err := clipboard.ReadText()
		return ClipboardPasteMsg{Text: text, Err: err}
	}
}

func shortcutCopy(m *Model) (tea.Model, tea.Cmd) {
	cmd := m.chat.CopySelectedText()
	if cmd == nil {
		return m, nil
	}
	return m, tea.Batch(cmd, m.ShowFlashSuccess("Copied message"))
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	if m.help != nil {
		m.help = nil
		return m, nil
	}
	m.help = ui.NewHelp(helpSections())
	return m, nil
}

// =============================================================================
// Submit
// =============================================================================

// sendMessage wraps the input text, as typed, in a message envelope and
// sends it. Blank input is not sent. Send failures are only logged; the
// input is cleared either way.
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	text := m.chat.GetInput()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	frame, err := protocol.Encode(protocol.NewMessage(text))
	if err == nil {
		err = m.transport.TrySend(frame)
	}
	if err != nil {
		m.log.Warn("failed to send message", "kind", errors.GetKind(err).String(), "error", err)
	} else {
		m.log.Debug("sent message", "bytes", len(text))
	}

	m.chat.ClearInput()
	return m, nil
}
