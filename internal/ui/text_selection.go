package ui

import (
	"image/color"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/zhubert/huddle/internal/clipboard"
	"github.com/zhubert/huddle/internal/logger"
)

// ClipboardErrorMsg is sent when clipboard operations fail
type ClipboardErrorMsg struct {
	Error error
}

// SelectionFlashTickMsg ends the copy confirmation highlight
type SelectionFlashTickMsg time.Time

// selectionFlashDuration is how long the copy highlight stays up
const selectionFlashDuration = 300 * time.Millisecond

// SelectionFlashTick returns a command that sends a selection flash tick
func SelectionFlashTick() tea.Cmd {
	return tea.Tick(selectionFlashDuration, func(t time.Time) tea.Msg {
		return SelectionFlashTickMsg(t)
	})
}

// HasSelection reports whether a message is under the cursor
func (c *Chat) HasSelection() bool {
	return c.feedFocused && c.selected >= 0 && c.selected < len(c.messages)
}

// GetSelectedText returns the raw text of the message under the cursor
func (c *Chat) GetSelectedText() string {
	m, ok := c.SelectedMessage()
	if !ok {
		return ""
	}
	return m.Message
}

// CopySelectedText copies the selected message to the clipboard and starts
// the flash animation
func (c *Chat) CopySelectedText() tea.Cmd {
	if !c.HasSelection() {
		return nil
	}

	selectedText := c.GetSelectedText()
	if selectedText == "" {
		return nil
	}

	c.copyFlash = true

	return tea.Batch(
		// OSC 52 escape sequence (works in modern terminals)
		tea.SetClipboard(selectedText),
		// Native clipboard fallback - returns error message if it fails
		func() tea.Msg {
			if err := clipboard.WriteText(selectedText); err != nil {
				logger.WithComponent("ui").Warn("failed to write to clipboard", "error", err)
				return ClipboardErrorMsg{Error: err}
			}
			return nil
		},
		SelectionFlashTick(),
	)
}

// selectionView highlights the rows of the selected message in the rendered
// viewport using ultraviolet
func (c *Chat) selectionView(view string) string {
	if !c.HasSelection() || c.selected >= len(c.spans) {
		return view
	}

	width := c.viewport.Width()
	height := c.viewport.Height()
	if width <= 0 || height <= 0 {
		return view
	}

	// Span lines are content lines; shift into viewport rows
	span := c.spans[c.selected]
	top := c.viewport.YOffset()
	startRow := max(span.start-top, 0)
	endRow := min(span.end-top, height-1)
	if startRow > endRow {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	var selBg, selFg color.Color
	if c.copyFlash {
		selBg = TextSelectionFlashStyle.GetBackground()
		selFg = TextSelectionFlashStyle.GetForeground()
	} else {
		selBg = TextSelectionStyle.GetBackground()
		selFg = TextSelectionStyle.GetForeground()
	}

	for y := startRow; y <= endRow; y++ {
		for x := 0; x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell == nil {
				continue
			}
			cell = cell.Clone()
			cell.Style.Bg = selBg
			// Keep syntax and avatar colors; only plain cells take the selection foreground
			if cell.Style.Fg == nil {
				cell.Style.Fg = selFg
			}
			scr.SetCell(x, y, cell)
		}
	}

	return scr.Render()
}
