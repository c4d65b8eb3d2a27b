package ui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// stripANSI removes ANSI escape codes from a string for testing
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestNewHeader(t *testing.T) {
	header := NewHeader()

	if header == nil {
		t.Fatal("NewHeader() returned nil")
	}

	if header.online != 0 || header.offline {
		t.Error("Expected zero users and online state initially")
	}
}

func TestHeader_SetWidth(t *testing.T) {
	header := NewHeader()

	header.SetWidth(120)

	if header.width != 120 {
		t.Errorf("Expected width 120, got %d", header.width)
	}
}

func TestHeader_StatusText(t *testing.T) {
	tests := []struct {
		name    string
		online  int
		offline bool
		want    string
	}{
		{"nobody", 0, false, "0 users online"},
		{"one", 1, false, "1 user online"},
		{"many", 3, false, "3 users online"},
		{"offline wins", 3, true, "offline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := NewHeader()
			header.SetOnlineCount(tt.online)
			header.SetOffline(tt.offline)

			if got := header.statusText(); got != tt.want {
				t.Errorf("statusText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeader_View(t *testing.T) {
	header := NewHeader()
	header.SetWidth(60)
	header.SetOnlineCount(2)
	header.SetUsername("alice")

	view := stripANSI(header.View())

	if !strings.Contains(view, HeaderTitle) {
		t.Errorf("Header should contain the title, got %q", view)
	}
	if !strings.Contains(view, "alice") {
		t.Errorf("Header should contain the username, got %q", view)
	}
	if !strings.Contains(view, "2 users online") {
		t.Errorf("Header should contain the online count, got %q", view)
	}
}

func TestHeader_View_FillsWidth(t *testing.T) {
	header := NewHeader()
	header.SetWidth(80)

	view := header.View()

	if w := ansi.StringWidth(view); w != 80 {
		t.Errorf("Header width = %d cells, want 80", w)
	}
}

func TestHeader_View_Narrow(t *testing.T) {
	header := NewHeader()
	header.SetWidth(5)
	header.SetOnlineCount(10)

	// Content longer than the width is rendered without padding rather than panicking
	view := stripANSI(header.View())
	if !strings.Contains(view, "10 users online") {
		t.Errorf("Narrow header should still contain the status, got %q", view)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b int
	}{
		{"#2563EB", 0x25, 0x63, 0xEB},
		{"#000000", 0, 0, 0},
		{"#FFFFFF", 255, 255, 255},
		{"invalid", 0, 0, 0},
		{"#FFF", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			r, g, b := parseHexColor(tt.hex)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("parseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tt.hex, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestHeader_RenderGradient_Empty(t *testing.T) {
	header := NewHeader()
	if got := header.renderGradient("", 0, 0); got != "" {
		t.Errorf("renderGradient(\"\") = %q, want empty", got)
	}
}
