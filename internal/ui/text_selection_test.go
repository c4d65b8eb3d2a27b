package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/huddle/internal/chat"
)

func TestGetSelectedText(t *testing.T) {
	c := newTestChat()
	c.SetMessages([]chat.Message{
		{From: "alice", Message: "first"},
		{From: "bob", Message: "second"},
	})

	if got := c.GetSelectedText(); got != "" {
		t.Errorf("No selection should yield empty text, got %q", got)
	}

	c.FocusFeed()
	if got := c.GetSelectedText(); got != "second" {
		t.Errorf("GetSelectedText() = %q, want second", got)
	}

	c.MoveSelection(-1)
	if got := c.GetSelectedText(); got != "first" {
		t.Errorf("GetSelectedText() = %q, want first", got)
	}
}

func TestCopySelectedText_NoSelection(t *testing.T) {
	c := newTestChat()
	c.SetMessages(testMessages(2))

	if cmd := c.CopySelectedText(); cmd != nil {
		t.Error("CopySelectedText without a selection should return nil")
	}
	if c.copyFlash {
		t.Error("copy flash should not start without a selection")
	}
}

func TestCopySelectedText_StartsFlash(t *testing.T) {
	c := newTestChat()
	c.SetMessages(testMessages(2))
	c.FocusFeed()

	if cmd := c.CopySelectedText(); cmd == nil {
		t.Fatal("CopySelectedText should return a command")
	}
	if !c.copyFlash {
		t.Error("copy flash should be active after copying")
	}

	c, _ = c.Update(SelectionFlashTickMsg{})
	if c.copyFlash {
		t.Error("flash tick should end the copy flash")
	}
}

func TestSelectionView_NoSelectionIsIdentity(t *testing.T) {
	c := newTestChat()
	c.SetMessages(testMessages(2))

	view := c.viewport.View()
	if got := c.selectionView(view); got != view {
		t.Error("selectionView without a selection should return the view unchanged")
	}
}

func TestSelectionView_PreservesText(t *testing.T) {
	c := newTestChat()
	c.SetMessages([]chat.Message{
		{From: "alice", Message: "first message"},
		{From: "bob", Message: "second message"},
	})
	c.FocusFeed()

	view := c.viewport.View()
	highlighted := c.selectionView(view)

	if highlighted == view {
		t.Error("selectionView should restyle the selected rows")
	}
	plain := ansi.Strip(highlighted)
	for _, want := range []string{"first message", "second message"} {
		if !strings.Contains(plain, want) {
			t.Errorf("highlighted view lost %q", want)
		}
	}
}

func TestSelectionFlashTick(t *testing.T) {
	if cmd := SelectionFlashTick(); cmd == nil {
		t.Error("SelectionFlashTick() should return a command")
	}
}
