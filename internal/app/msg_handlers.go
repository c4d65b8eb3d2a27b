package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/errors"
	"github.com/zhubert/huddle/internal/notification"
)

// handleFrameMsg applies one inbound frame and re-arms the listener.
// Malformed frames are logged and dropped; they never change state.
func (m *Model) handleFrameMsg(msg FrameMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.listenForFrames()}

	before := len(m.state.Messages)
	changed, err := m.state.HandleFrame(msg.Raw)
	if err != nil {
		m.log.Warn("dropping malformed frame", "error", err, "bytes", len(msg.Raw))
		return m, tea.Batch(cmds...)
	}
	if !changed {
		return m, tea.Batch(cmds...)
	}

	m.syncRoster()
	m.chat.SetMessages(m.state.Messages)

	for _, incoming := range m.state.Messages[before:] {
		if cmd := m.notifyMessage(incoming.From, incoming.Message); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// syncRoster pushes the roster to every component that shows it
func (m *Model) syncRoster() {
	m.sidebar.SetUsers(m.state.Users)
	m.chat.SetUsers(m.state.Users)
	m.header.SetOnlineCount(m.state.OnlineCount())
}

// notifyMessage returns a desktop notification command for a message from
// another user while the terminal is in the background.
func (m *Model) notifyMessage(from, text string) tea.Cmd {
	if !m.notifications || m.windowFocused || from == m.username {
		return nil
	}
	return func() tea.Msg {
		// Failures are logged by the notification package
		_ = notification.MessageReceived(from, text)
		return nil
	}
}

// handleDisconnectedMsg marks the session offline. The listener is not
// re-armed; there is no reconnect.
func (m *Model) handleDisconnectedMsg() (tea.Model, tea.Cmd) {
	if m.offline {
		return m, nil
	}
	m.offline = true
	m.log.Warn("connection closed")
	m.header.SetOffline(true)
	m.chat.SetOffline(true)
	return m, m.ShowFlashError("Disconnected from server")
}

// handleReactMsg appends a reaction locally. Reactions are not sent.
func (m *Model) handleReactMsg(msg ReactToMessageMsg) (tea.Model, tea.Cmd) {
	if err := m.state.React(msg.Index, msg.Emoji); err != nil {
		m.log.Warn("reaction rejected", "index", msg.Index, "kind", errors.GetKind(err).String(), "error", err)
		return m, nil
	}
	m.chat.SetMessages(m.state.Messages)
	return m, nil
}

// handleClipboardPasteMsg inserts clipboard text into the input box
func (m *Model) handleClipboardPasteMsg(msg ClipboardPasteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn("clipboard read failed", "error", msg.Err)
		return m, m.ShowFlashError("Paste failed")
	}
	text := strings.TrimRight(msg.Text, "\r\n")
	if text == "" || m.focus != FocusInput {
		return m, nil
	}
	m.chat.InsertInput(text)
	return m, nil
}
