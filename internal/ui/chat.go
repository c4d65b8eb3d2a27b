package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/huddle/internal/chat"
	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/logger"
)

// SendButton is drawn to the right of the input box
const SendButton = "➤"

// messageSpan is the range of viewport lines one message occupies
type messageSpan struct {
	start, end int // inclusive
}

// Chat represents the right panel: the message feed and the input box
type Chat struct {
	viewport    viewport.Model
	input       textarea.Model
	width       int
	height      int
	focused     bool // input has focus
	feedFocused bool // feed has focus and a message may be selected
	offline     bool

	messages []chat.Message
	roster   chat.State // users only, for sender lookups
	self     string

	// selected is the index of the message under the cursor, -1 for none
	selected int
	spans    []messageSpan

	// copyFlash is set while the copy confirmation is showing
	copyFlash bool
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = InputPlaceholder
	ti.CharLimit = InputCharLimit
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		selected: -1,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	chatPanelHeight := height - InputTotalHeight

	innerWidth := ctx.InnerWidth(width)
	viewportHeight := ctx.InnerHeight(chatPanelHeight)
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)

	// Input width accounts for its own border, padding and the send button
	inputInnerWidth := ctx.InnerWidth(width) - InputPaddingWidth - lipgloss.Width(c.sendButton()) - 1
	if inputInnerWidth < 1 {
		inputInnerWidth = 1
	}
	c.input.SetWidth(inputInnerWidth)

	logger.WithComponent("ui").Debug("Chat.SetSize",
		"width", width, "height", height,
		"viewportWidth", c.viewport.Width(), "viewportHeight", c.viewport.Height())

	c.updateContent()
}

// SetFocused sets whether the input box has focus
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns whether the input box has focus
func (c *Chat) IsFocused() bool {
	return c.focused
}

// FocusFeed moves focus to the feed and puts the cursor on the newest
// message if nothing is selected.
func (c *Chat) FocusFeed() {
	c.SetFocused(false)
	c.feedFocused = true
	if c.selected < 0 && len(c.messages) > 0 {
		c.selected = len(c.messages) - 1
	}
	c.updateContent()
}

// FocusInput moves focus back to the input box and clears the cursor
func (c *Chat) FocusInput() {
	c.feedFocused = false
	c.selected = -1
	c.copyFlash = false
	c.SetFocused(true)
	c.updateContent()
}

// FeedFocused reports whether the feed has focus
func (c *Chat) FeedFocused() bool {
	return c.feedFocused
}

// Selected returns the index of the message under the cursor, or -1
func (c *Chat) Selected() int {
	return c.selected
}

// SelectedMessage returns the message under the cursor
func (c *Chat) SelectedMessage() (chat.Message, bool) {
	if c.selected < 0 || c.selected >= len(c.messages) {
		return chat.Message{}, false
	}
	return c.messages[c.selected], true
}

// MoveSelection moves the cursor by delta messages, clamped to the feed
func (c *Chat) MoveSelection(delta int) {
	if len(c.messages) == 0 {
		return
	}
	c.selected = max(0, min(c.selected+delta, len(c.messages)-1))
	c.copyFlash = false
	c.updateContent()
}

// SelectFirst puts the cursor on the oldest message
func (c *Chat) SelectFirst() {
	if len(c.messages) > 0 {
		c.selected = 0
		c.updateContent()
	}
}

// SelectLast puts the cursor on the newest message
func (c *Chat) SelectLast() {
	if len(c.messages) > 0 {
		c.selected = len(c.messages) - 1
		c.updateContent()
	}
}

// SetMessages replaces the feed. The cursor stays on the same index, which
// is stable because the feed only grows.
func (c *Chat) SetMessages(messages []chat.Message) {
	c.messages = messages
	if c.selected >= len(messages) {
		c.selected = len(messages) - 1
	}
	c.updateContent()
}

// SetUsers records which senders are on the roster, for their avatars
func (c *Chat) SetUsers(users []chat.UserProfile) {
	c.roster.Users = users
	c.updateContent()
}

// SetSelf sets the local display name
func (c *Chat) SetSelf(name string) {
	c.self = name
}

// SetOffline shows the disconnected state
func (c *Chat) SetOffline(offline bool) {
	c.offline = offline
	c.updateContent()
}

// Refresh re-renders the feed, e.g. after a palette change
func (c *Chat) Refresh() {
	c.updateContent()
}

// GetInput returns the current input text
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// ClearInput clears the input box
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput replaces the input text
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// InsertInput inserts text at the input cursor
func (c *Chat) InsertInput(text string) {
	c.input.InsertString(text)
}

func (c *Chat) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	wasAtBottom := c.viewport.AtBottom()

	c.spans = c.spans[:0]
	var sb strings.Builder
	line := 0

	if len(c.messages) == 0 {
		sb.WriteString(renderEmptyFeed(c.offline))
	} else {
		for i, msg := range c.messages {
			if i > 0 {
				sb.WriteString("\n\n")
				line += 2
			}
			_, known := c.roster.FindUser(msg.From)
			rendered := renderMessage(msg, known, msg.From == c.self, i == c.selected, wrapWidth)
			n := strings.Count(rendered, "\n")
			c.spans = append(c.spans, messageSpan{start: line, end: line + n})
			line += n
			sb.WriteString(rendered)
		}
	}

	c.viewport.SetContent(sb.String())

	switch {
	case c.feedFocused && c.selected >= 0:
		c.scrollToSelected()
	case !c.feedFocused || wasAtBottom:
		c.viewport.GotoBottom()
	}
}

// scrollToSelected adjusts the viewport so the whole selected message is visible
func (c *Chat) scrollToSelected() {
	if c.selected < 0 || c.selected >= len(c.spans) {
		return
	}
	span := c.spans[c.selected]
	top := c.viewport.YOffset()
	height := c.viewport.Height()

	switch {
	case span.start < top:
		c.viewport.SetYOffset(span.start)
	case span.end >= top+height:
		c.viewport.SetYOffset(max(span.end-height+1, span.start))
	}
}

// isScrollKey reports keys that always go to the viewport
func isScrollKey(key string) bool {
	switch key {
	case keys.PgUp, keys.PgDown, "ctrl+up", "ctrl+down", "page up", "page down", "ctrl+u", "ctrl+d":
		return true
	}
	return false
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case SelectionFlashTickMsg:
		c.copyFlash = false
		return c, nil
	}

	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
		if isScrollKey(keyMsg.String()) {
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		if c.focused {
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			// Don't pass other key events to viewport when input is focused
			// This prevents spacebar/arrows from scrolling while typing
			return c, cmd
		}
		return c, nil
	}

	if c.focused {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Mouse wheel and other non-key events go to the viewport
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

func (c *Chat) sendButton() string {
	return ChatSendStyle.Render(SendButton)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.feedFocused {
		panelStyle = PanelFocusedStyle
	}

	chatPanelHeight := c.height - InputTotalHeight
	feed := c.selectionView(c.viewport.View())
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(feed)

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputRow := lipgloss.JoinHorizontal(lipgloss.Center, c.input.View(), " ", c.sendButton())
	inputArea := inputStyle.Width(c.width).Render(inputRow)

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
