package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/zhubert/huddle/internal/chat"
)

func users(names ...string) []chat.UserProfile {
	var out []chat.UserProfile
	for _, n := range names {
		out = append(out, chat.NewUserProfile(n))
	}
	return out
}

func TestNewSidebar(t *testing.T) {
	sidebar := NewSidebar()

	if sidebar == nil {
		t.Fatal("NewSidebar() returned nil")
	}
	if sidebar.UserCount() != 0 {
		t.Errorf("Expected empty roster, got %d users", sidebar.UserCount())
	}
}

func TestSidebar_SetSize(t *testing.T) {
	sidebar := NewSidebar()

	sidebar.SetSize(30, 40)

	if sidebar.Width() != 30 {
		t.Errorf("Expected width 30, got %d", sidebar.Width())
	}
	if sidebar.height != 40 {
		t.Errorf("Expected height 40, got %d", sidebar.height)
	}
}

func TestSidebar_SetUsers(t *testing.T) {
	sidebar := NewSidebar()
	sidebar.SetSize(30, 40)

	sidebar.SetUsers(users("alice", "bob"))
	if sidebar.UserCount() != 2 {
		t.Errorf("Expected 2 users, got %d", sidebar.UserCount())
	}

	// An empty roster clears the list
	sidebar.SetUsers(nil)
	if sidebar.UserCount() != 0 {
		t.Errorf("Expected empty roster, got %d users", sidebar.UserCount())
	}
}

func TestSidebar_View_Empty(t *testing.T) {
	sidebar := NewSidebar()
	sidebar.SetSize(30, 20)

	view := stripANSI(sidebar.View())

	if !strings.Contains(view, RosterTitle) {
		t.Error("View should contain the roster title")
	}
	if !strings.Contains(view, "No one here yet.") {
		t.Error("Empty roster should show placeholder")
	}
}

func TestSidebar_View_WithUsers(t *testing.T) {
	sidebar := NewSidebar()
	sidebar.SetSize(30, 20)
	sidebar.SetUsers(users("alice", "bob"))

	view := stripANSI(sidebar.View())

	for _, name := range []string{"alice", "bob"} {
		if !strings.Contains(view, name) {
			t.Errorf("View should contain %q", name)
		}
	}
	if strings.Count(view, OnlineLabel) != 2 {
		t.Errorf("Expected one presence line per user, got %d", strings.Count(view, OnlineLabel))
	}
	if strings.Index(view, "alice") > strings.Index(view, "bob") {
		t.Error("Roster should keep server order")
	}
}

func TestSidebar_View_ModeIndicator(t *testing.T) {
	sidebar := NewSidebar()
	sidebar.SetSize(30, 20)

	sidebar.SetDarkMode(false)
	if view := sidebar.View(); !strings.Contains(view, DarkModeGlyph) {
		t.Error("Light mode should offer the moon")
	}

	sidebar.SetDarkMode(true)
	if view := sidebar.View(); !strings.Contains(view, LightModeGlyph) {
		t.Error("Dark mode should offer the sun")
	}
}

func TestSidebar_View_TruncatesLongNames(t *testing.T) {
	sidebar := NewSidebar()
	sidebar.SetSize(20, 20)
	long := strings.Repeat("w", 60)
	sidebar.SetUsers(users(long))

	view := stripANSI(sidebar.View())

	if strings.Contains(view, long) {
		t.Error("Long names should be truncated")
	}
	if !strings.Contains(view, "…") {
		t.Error("Truncated names should end with an ellipsis")
	}
}

func TestSidebar_Scroll(t *testing.T) {
	sidebar := NewSidebar()
	sidebar.SetSize(30, 14)
	var names []string
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		names = append(names, "user-"+n)
	}
	sidebar.SetUsers(users(names...))

	sidebar.ScrollUp()
	if sidebar.scrollOffset != 0 {
		t.Errorf("ScrollUp at top should stay at 0, got %d", sidebar.scrollOffset)
	}

	for range 20 {
		sidebar.ScrollDown()
	}
	maxOffset := len(names) - sidebar.visibleCards()
	if sidebar.scrollOffset != maxOffset {
		t.Errorf("scrollOffset = %d, want clamped to %d", sidebar.scrollOffset, maxOffset)
	}

	view := stripANSI(sidebar.View())
	if !strings.Contains(view, "user-h") {
		t.Error("Scrolled to the end, the last user should be visible")
	}
	if strings.Contains(view, "user-a") {
		t.Error("Scrolled to the end, the first user should be hidden")
	}
}

func TestAvatarColor_Stable(t *testing.T) {
	if avatarColor("alice") != avatarColor("alice") {
		t.Error("avatarColor should be deterministic")
	}

	seen := map[string]bool{}
	for _, n := range []string{"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi", "ivan"} {
		seen[avatarColor(n)] = true
	}
	if len(seen) < 2 {
		t.Error("avatarColor should spread names over the palette")
	}
}

func TestAvatarInitial(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"alice", "A"},
		{"  bob", "B"},
		{"", "?"},
		{"🦊 fox", "🦊"},
		{"éclair", "É"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := avatarInitial(tt.name); got != tt.want {
				t.Errorf("avatarInitial(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestRenderAvatar_FixedWidth(t *testing.T) {
	narrow := runewidth.StringWidth(stripANSI(renderAvatar("alice")))
	wide := runewidth.StringWidth(stripANSI(renderAvatar("🦊 fox")))
	if narrow != wide {
		t.Errorf("Avatar badges should be the same width: %d vs %d", narrow, wide)
	}
}

func TestHashUsers_ChangeDetection(t *testing.T) {
	a := hashUsers(users("alice", "bob"))
	b := hashUsers(users("alice", "bob"))
	c := hashUsers(users("bob", "alice"))

	if a != b {
		t.Error("Same roster should hash the same")
	}
	if a == c {
		t.Error("Reordered roster should hash differently")
	}
}
