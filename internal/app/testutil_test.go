package app

import (
	"errors"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/protocol"
)

// fakeTransport records outbound frames and lets tests feed inbound ones.
type fakeTransport struct {
	mu      sync.Mutex
	sent    []string
	inbound chan string
	sendErr error
	closed  bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{inbound: make(chan string, 16)}
}

func (f *fakeTransport) TrySend(frame string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, frame)
	return nil
}

func (f *fakeTransport) Inbound() <-chan string {
	return f.inbound
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("already closed")
	}
	f.closed = true
	close(f.inbound)
	return nil
}

func (f *fakeTransport) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

// sentEnvelopes decodes every recorded outbound frame
func (f *fakeTransport) sentEnvelopes() []protocol.Envelope {
	var out []protocol.Envelope
	for _, raw := range f.Sent() {
		env, err := protocol.Decode(raw)
		if err != nil {
			panic(err)
		}
		out = append(out, env)
	}
	return out
}

// testConfig creates a minimal config for testing.
func testConfig() *config.Config {
	return &config.Config{
		ServerURL: config.DefaultServerURL,
		Username:  "alice",
	}
}

// testModel creates a test Model talking to a fake transport.
func testModel() (*Model, *fakeTransport) {
	tr := newFakeTransport()
	return New(testConfig(), tr, "alice", "0.0.0-test"), tr
}

// testModelWithSize creates a test Model and sets its size.
func testModelWithSize(width, height int) (*Model, *fakeTransport) {
	m, tr := testModel()
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m, tr
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlV:
		return tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	case keys.CtrlN:
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		// Fallback for unknown keys
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the command.
func sendKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText sends each character of text as a key press.
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// usersFrame builds an encoded roster frame.
func usersFrame(names ...string) string {
	return protocol.MustEncode(protocol.NewUsers(names))
}

// messageFrame builds an encoded chat message frame.
func messageFrame(from, text string) string {
	env, err := protocol.NewMessageFrame(from, text)
	if err != nil {
		panic(err)
	}
	return protocol.MustEncode(env)
}

// deliver feeds frames to the model as if they came off the socket.
func deliver(m *Model, frames ...string) {
	for _, raw := range frames {
		m.Update(FrameMsg{Raw: raw})
	}
}
