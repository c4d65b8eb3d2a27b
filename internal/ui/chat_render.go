package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/huddle/internal/chat"
)

// Compiled regex patterns for inline formatting
var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// unknownAvatar stands in for senders that are not on the roster
const unknownAvatar = "👤"

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().ChromaStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// renderInlineMarkdown applies inline formatting (bold, code, links) to a line
func renderInlineMarkdown(line string) string {
	// Protect code spans from other formatting
	type codeSpan struct {
		placeholder string
		rendered    string
	}
	var codeSpans []codeSpan

	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		placeholder := fmt.Sprintf("\x00CODE%d\x00", len(codeSpans))
		codeSpans = append(codeSpans, codeSpan{
			placeholder: placeholder,
			rendered:    MarkdownInlineCodeStyle.Render(code),
		})
		return placeholder
	})

	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		return MarkdownBoldStyle.Render(boldPattern.FindStringSubmatch(match)[1])
	})

	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		return renderHyperlink(parts[2], parts[1])
	})

	for _, cs := range codeSpans {
		line = strings.Replace(line, cs.placeholder, cs.rendered, 1)
	}

	return line
}

// renderHyperlink renders text as an OSC 8 hyperlink to url
func renderHyperlink(url, text string) string {
	return ansi.SetHyperlink(url) + MarkdownLinkStyle.Render(text) + ansi.ResetHyperlink()
}

// wrapText wraps text to the specified width, handling ANSI escape codes
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// renderMessageBody renders a message's text. GIF links become a clickable
// image placeholder; fenced code blocks are syntax highlighted.
func renderMessageBody(m chat.Message, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	if m.IsImage() {
		label := "🖼  " + m.Message
		return wrapText(renderHyperlink(m.Message, label), width)
	}

	var result strings.Builder
	inCodeBlock := false
	codeBlockLang := ""
	var codeBlockContent strings.Builder

	flushCode := func() {
		highlighted := highlightCode(codeBlockContent.String(), codeBlockLang)
		result.WriteString(MarkdownCodeBlockStyle.Render(highlighted))
		result.WriteString("\n")
	}

	for _, line := range strings.Split(m.Message, "\n") {
		if strings.HasPrefix(line, "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				codeBlockContent.Reset()
			} else {
				inCodeBlock = false
				flushCode()
				codeBlockLang = ""
			}
			continue
		}

		if inCodeBlock {
			if codeBlockContent.Len() > 0 {
				codeBlockContent.WriteString("\n")
			}
			codeBlockContent.WriteString(line)
			continue
		}

		result.WriteString(wrapText(renderInlineMarkdown(line), width))
		result.WriteString("\n")
	}

	// An unterminated fence still renders what it has
	if inCodeBlock {
		flushCode()
	}

	return strings.TrimRight(result.String(), "\n")
}

// renderFeedAvatar draws the sender's badge, or the placeholder when the
// sender is not on the roster
func renderFeedAvatar(from string, known bool) string {
	if known {
		return renderAvatar(from)
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#9CA3AF")).
		Padding(0, 1).
		Render(unknownAvatar)
}

// renderReactionBar renders the reaction palette followed by the reactions a
// message has collected. When selected, each palette entry shows the key that
// triggers it.
func renderReactionBar(m chat.Message, selected bool) string {
	var palette []string
	for i, emoji := range chat.ReactionPalette {
		if selected {
			palette = append(palette, ChatPaletteKeyStyle.Render(strconv.Itoa(i+1))+emoji)
		} else {
			palette = append(palette, ChatPaletteStyle.Render(emoji))
		}
	}
	bar := strings.Join(palette, " ")

	if m.Reactions != nil {
		var chips []string
		for _, r := range m.Reactions {
			chips = append(chips, ChatReactionStyle.Render(r))
		}
		bar += "    " + strings.Join(chips, " ")
	}
	return bar
}

// renderMessage renders one feed entry: avatar and sender, the body, then
// the reaction bar. Body and bar are indented under the sender name.
func renderMessage(m chat.Message, known, self, selected bool, width int) string {
	avatar := renderFeedAvatar(m.From, known)
	indentWidth := lipgloss.Width(avatar) + 1
	indent := strings.Repeat(" ", indentWidth)

	nameStyle := ChatPeerStyle
	if self {
		nameStyle = ChatSelfStyle
	}

	var sb strings.Builder
	sb.WriteString(avatar)
	sb.WriteString(" ")
	sb.WriteString(nameStyle.Render(m.From))
	sb.WriteString("\n")

	// Bubble padding takes two more cells
	bodyWidth := width - indentWidth - 2
	body := ChatBubbleStyle.Render(renderMessageBody(m, bodyWidth))
	for _, line := range strings.Split(body, "\n") {
		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(indent)
	sb.WriteString(renderReactionBar(m, selected))
	return sb.String()
}

// renderEmptyFeed renders the placeholder shown before any message arrives
func renderEmptyFeed(offline bool) string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
	if offline {
		return StatusOfflineStyle.Render("Disconnected from server.") + "\n" +
			msgStyle.Render("Restart huddle to reconnect.")
	}
	return msgStyle.Render("No messages yet. Say hello!")
}
