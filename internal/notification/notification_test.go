package notification

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
		icon    any
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
		icon    any
	}{title, message, icon})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		mockErr     error
		expectError bool
	}{
		{
			name:    "successful notification",
			title:   "Test Title",
			message: "Test Message",
		},
		{
			name:        "notification error",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     errors.New("notification failed"),
			expectError: true,
		},
		{
			name:    "empty title",
			title:   "",
			message: "Message with empty title",
		},
		{
			name:    "unicode content",
			title:   "通知",
			message: "🎉 Notification with emoji",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send(tt.title, tt.message)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != tt.title {
				t.Errorf("title = %q, want %q", call.title, tt.title)
			}
			if call.message != tt.message {
				t.Errorf("message = %q, want %q", call.message, tt.message)
			}
		})
	}
}

func TestMessageReceived(t *testing.T) {
	tests := []struct {
		name            string
		from            string
		text            string
		expectedMessage string
	}{
		{"basic", "alice", "hi there", "alice: hi there"},
		{"emoji", "bob", "👍", "bob: 👍"},
		{"empty text", "carol", "", "carol: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			if err := MessageReceived(tt.from, tt.text); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			if mock.calls[0].title != AppName {
				t.Errorf("title = %q, want %q", mock.calls[0].title, AppName)
			}
			if mock.calls[0].message != tt.expectedMessage {
				t.Errorf("message = %q, want %q", mock.calls[0].message, tt.expectedMessage)
			}
		})
	}
}

func TestMessageReceived_TruncatesLongText(t *testing.T) {
	mock := &mockNotification{}
	SetNotifier(mock.notify)
	defer ResetNotifier()

	long := strings.Repeat("é", 500)
	if err := MessageReceived("alice", long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := strings.TrimPrefix(mock.calls[0].message, "alice: ")
	if n := utf8.RuneCountInString(body); n != maxBodyLen {
		t.Errorf("body has %d runes, want %d", n, maxBodyLen)
	}
	if !strings.HasSuffix(body, "…") {
		t.Error("truncated body should end with an ellipsis")
	}
}

func TestResetNotifier(t *testing.T) {
	mock := &mockNotification{}
	SetNotifier(mock.notify)
	if err := Send("t", "m"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ResetNotifier()

	mu.RLock()
	defer mu.RUnlock()
	if notifier == nil {
		t.Fatal("ResetNotifier should install a backend")
	}
	if len(mock.calls) != 1 {
		t.Errorf("mock calls = %d, want 1", len(mock.calls))
	}
}
