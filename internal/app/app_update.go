package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/chat"
	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/ui"
)

// handleKey routes a key press: help overlay first, then the shortcut
// registry, then feed navigation or the input box.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.help != nil {
		return m.handleHelpKey(msg)
	}

	// Two panes, so reverse focus order is the same as forward
	if key == keys.ShiftTab {
		key = keys.Tab
	}

	if result, cmd, ok := m.ExecuteShortcut(key); ok {
		return result, cmd
	}

	if m.focus == FocusFeed {
		return m.handleFeedKey(msg)
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// handleHelpKey handles keys while the help overlay is open
func (m *Model) handleHelpKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keys.CtrlC {
		return m, tea.Quit
	}
	if !m.help.IsFiltering() && (key == keys.Escape || key == "?") {
		m.help = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	return m, cmd
}

// handleFeedKey moves the message cursor and turns 1-4 into reactions
func (m *Model) handleFeedKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case keys.Up, "k":
		m.chat.MoveSelection(-1)
		return m, nil
	case keys.Down, "j":
		m.chat.MoveSelection(1)
		return m, nil
	case keys.Home, "g":
		m.chat.SelectFirst()
		return m, nil
	case keys.End, "G":
		m.chat.SelectLast()
		return m, nil
	case "1", "2", "3", "4":
		return m, m.reactToSelected(int(key[0] - '1'))
	}

	// Page keys scroll the viewport; anything else is ignored
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// reactToSelected emits a reaction for the message under the cursor using
// the palette emoji at slot. The index is captured now so a later redraw
// cannot change which message it refers to.
func (m *Model) reactToSelected(slot int) tea.Cmd {
	if slot < 0 || slot >= len(chat.ReactionPalette) {
		return nil
	}
	index := m.chat.Selected()
	if index < 0 {
		return nil
	}
	emoji := chat.ReactionPalette[slot]
	return func() tea.Msg {
		return ReactToMessageMsg{Index: index, Emoji: emoji}
	}
}

// handleMouseWheel scrolls the roster when the pointer is over it and the
// feed otherwise
func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.X < m.sidebar.Width() && mouse.Y >= ui.HeaderHeight {
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.sidebar.ScrollUp()
		case tea.MouseWheelDown:
			m.sidebar.ScrollDown()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}
