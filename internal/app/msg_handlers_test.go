package app

import (
	"errors"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/huddle/internal/notification"
)

func TestFrame_Roster(t *testing.T) {
	m, _ := testModelWithSize(120, 40)

	deliver(m, usersFrame("alice", "bob", "carol"))

	if got := m.State().OnlineCount(); got != 3 {
		t.Fatalf("OnlineCount() = %d, want 3", got)
	}
	if m.sidebar.UserCount() != 3 {
		t.Errorf("Sidebar should show 3 users, got %d", m.sidebar.UserCount())
	}
	if m.State().Users[0].Name != "alice" || m.State().Users[2].Name != "carol" {
		t.Error("Roster should keep server order")
	}
}

func TestFrame_EmptyRosterClears(t *testing.T) {
	m, _ := testModelWithSize(120, 40)

	deliver(m, usersFrame("alice", "bob"), usersFrame())

	if len(m.State().Users) != 0 {
		t.Errorf("Empty roster should clear users, got %v", m.State().Users)
	}
	if m.sidebar.UserCount() != 0 {
		t.Error("Sidebar should be cleared")
	}
}

func TestFrame_Message(t *testing.T) {
	m, _ := testModelWithSize(120, 40)

	deliver(m, messageFrame("bob", "hi"), messageFrame("carol", "yo"))

	msgs := m.State().Messages
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].From != "bob" || msgs[0].Message != "hi" {
		t.Errorf("First message = %+v", msgs[0])
	}
	if msgs[1].From != "carol" {
		t.Error("Messages should append in arrival order")
	}
}

func TestFrame_ReArmsListener(t *testing.T) {
	m, _ := testModelWithSize(120, 40)

	_, cmd := m.Update(FrameMsg{Raw: messageFrame("bob", "hi")})
	if cmd == nil {
		t.Error("Frame handling should re-arm the listener")
	}

	_, cmd = m.Update(FrameMsg{Raw: "not json"})
	if cmd == nil {
		t.Error("Malformed frames should still re-arm the listener")
	}
}

func TestFrame_MalformedIgnored(t *testing.T) {
	m, _ := testModelWithSize(120, 40)
	deliver(m, usersFrame("alice"), messageFrame("bob", "keep me"))

	deliver(m,
		"not json",
		`{"messageType":"message","data":"{broken"}`,
		`{"messageType":"message","dataArray":null,"data":null}`,
		`{"messageType":"mystery","data":"x"}`,
		`{"messageType":"reaction","data":"👍"}`,
	)

	if len(m.State().Messages) != 1 || m.State().Messages[0].Message != "keep me" {
		t.Errorf("Malformed frames should not change the feed, got %+v", m.State().Messages)
	}
	if len(m.State().Users) != 1 {
		t.Errorf("Malformed frames should not change the roster, got %+v", m.State().Users)
	}
}

func TestReactToMessage(t *testing.T) {
	m, _ := testModelWithSize(120, 40)
	deliver(m, messageFrame("bob", "one"), messageFrame("bob", "two"))

	m.Update(ReactToMessageMsg{Index: 1, Emoji: "👍"})

	if got := m.State().Messages[1].Reactions; len(got) != 1 || got[0] != "👍" {
		t.Errorf("Reactions = %v, want [👍]", got)
	}
	if len(m.State().Messages[0].Reactions) != 0 {
		t.Error("Other messages should be untouched")
	}

	m.Update(ReactToMessageMsg{Index: 1, Emoji: "❤️"})
	if got := m.State().Messages[1].Reactions; len(got) != 2 || got[1] != "❤️" {
		t.Errorf("Reactions = %v, want [👍 ❤️]", got)
	}

	view := ansi.Strip(m.RenderToString())
	if !strings.Contains(view, "👍") {
		t.Error("Reaction should be rendered")
	}
}

func TestReactToMessage_OutOfRange(t *testing.T) {
	m, tr := testModelWithSize(120, 40)
	deliver(m, messageFrame("bob", "one"))

	m.Update(ReactToMessageMsg{Index: 5, Emoji: "👍"})
	m.Update(ReactToMessageMsg{Index: -1, Emoji: "👍"})

	if len(m.State().Messages[0].Reactions) != 0 {
		t.Error("Out of range reactions should be dropped")
	}
	if len(tr.Sent()) != 0 {
		t.Error("Reactions are local and should not be sent")
	}
}

func TestReactToMessage_MultiGraphemeRejected(t *testing.T) {
	m, _ := testModelWithSize(120, 40)
	deliver(m, messageFrame("bob", "one"))

	for _, emoji := range []string{"👍👍", "ok", ""} {
		m.Update(ReactToMessageMsg{Index: 0, Emoji: emoji})
	}

	if got := m.State().Messages[0].Reactions; len(got) != 0 {
		t.Errorf("Reactions = %v, want none", got)
	}
}

func TestDisconnected(t *testing.T) {
	m, tr := testModelWithSize(120, 40)

	_, cmd := m.Update(DisconnectedMsg{})
	if !m.IsOffline() {
		t.Fatal("DisconnectedMsg should mark the session offline")
	}
	if cmd == nil {
		t.Error("Disconnect should flash a notice")
	}

	view := ansi.Strip(m.RenderToString())
	if !strings.Contains(view, "offline") {
		t.Error("Header should show offline")
	}

	// Input stays usable; sends go through the transport and fail there
	tr.sendErr = errors.New("client closed")
	typeText(m, "anyone?")
	sendKey(m, "enter")
	if m.chat.GetInput() != "" {
		t.Error("Input should clear after a failed send")
	}
}

func TestListener_ClosedChannel(t *testing.T) {
	m, tr := testModel()
	tr.Close()

	cmd := m.listenForFrames()
	if cmd == nil {
		t.Fatal("listenForFrames should return a command")
	}
	if _, ok := cmd().(DisconnectedMsg); !ok {
		t.Error("A closed channel should produce DisconnectedMsg")
	}
}

func TestListener_DeliversFrame(t *testing.T) {
	m, tr := testModel()
	tr.inbound <- "raw frame"

	msg := m.listenForFrames()()
	frame, ok := msg.(FrameMsg)
	if !ok {
		t.Fatalf("Expected FrameMsg, got %T", msg)
	}
	if frame.Raw != "raw frame" {
		t.Errorf("Raw = %q, want %q", frame.Raw, "raw frame")
	}
}

// captureNotifications swaps the desktop notifier for a recorder
func captureNotifications(t *testing.T) *[]string {
	t.Helper()
	var mu sync.Mutex
	var got []string
	notification.SetNotifier(func(title, message string, _ any) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, title+": "+message)
		return nil
	})
	t.Cleanup(notification.ResetNotifier)
	return &got
}

func TestNotify_WhenBlurred(t *testing.T) {
	got := captureNotifications(t)
	m, _ := testModelWithSize(120, 40)
	m.notifications = true
	m.Update(tea.BlurMsg{})

	cmd := m.notifyMessage("bob", "ping")
	if cmd == nil {
		t.Fatal("Expected a notification command while blurred")
	}
	cmd()

	if len(*got) != 1 {
		t.Fatalf("Expected one notification, got %v", *got)
	}
	if !strings.Contains((*got)[0], "ping") || !strings.Contains((*got)[0], "bob") {
		t.Errorf("Notification should carry sender and text, got %q", (*got)[0])
	}
}

func TestNotify_Suppressed(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		blurred bool
		from    string
	}{
		{"disabled", false, true, "bob"},
		{"focused", true, false, "bob"},
		{"own message", true, true, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := testModelWithSize(120, 40)
			m.notifications = tt.enabled
			m.windowFocused = !tt.blurred

			if cmd := m.notifyMessage(tt.from, "hello"); cmd != nil {
				t.Error("Expected no notification")
			}
		})
	}
}

func TestClipboardPaste(t *testing.T) {
	m, _ := testModelWithSize(120, 40)

	m.Update(ClipboardPasteMsg{Text: "pasted text\n"})
	if got := m.chat.GetInput(); got != "pasted text" {
		t.Errorf("Input = %q, want %q", got, "pasted text")
	}

	_, cmd := m.Update(ClipboardPasteMsg{Err: errors.New("no clipboard")})
	if cmd == nil {
		t.Error("Paste failure should flash an error")
	}
	if !m.footer.HasFlash() {
		t.Error("Footer should show the paste error")
	}
}
