// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/huddle/internal/logger"
)

// AppName is the title used for chat notifications.
const AppName = "huddle"

// maxBodyLen caps the message preview shown in a notification.
const maxBodyLen = 120

type notifyFunc func(title, message string, icon any) error

var (
	mu       sync.RWMutex
	notifier notifyFunc = beeep.Notify
)

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	mu.Lock()
	defer mu.Unlock()
	notifier = fn
}

// ResetNotifier restores beeep as the notification backend.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title)

	mu.RLock()
	fn := notifier
	mu.RUnlock()

	// Empty icon lets beeep pick the platform default.
	err := fn(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// MessageReceived notifies that a chat message arrived from another user.
func MessageReceived(from, text string) error {
	runes := []rune(text)
	if len(runes) > maxBodyLen {
		text = string(runes[:maxBodyLen-1]) + "…"
	}
	return Send(AppName, from+": "+text)
}
