package app

import (
	tea "charm.land/bubbletea/v2"
)

// listenForFrames creates a command that waits for the next inbound frame.
// It is re-armed after every FrameMsg; a closed channel ends the loop with
// DisconnectedMsg.
func (m *Model) listenForFrames() tea.Cmd {
	if m.transport == nil {
		return nil
	}

	ch := m.transport.Inbound()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		raw, ok := <-ch
		if !ok {
			return DisconnectedMsg{}
		}
		return FrameMsg{Raw: raw}
	}
}
