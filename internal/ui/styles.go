package ui

import "charm.land/lipgloss/v2"

// Color palette. Values are overwritten by regenerateStyles whenever the
// palette changes; the defaults here mirror the light theme.
var (
	ColorPrimary     = lipgloss.Color("#2563EB") // Blue
	ColorSecondary   = lipgloss.Color("#0891B2") // Cyan
	ColorBorder      = lipgloss.Color("#D1D5DB") // Light gray
	ColorBorderFocus = lipgloss.Color("#2563EB") // Blue when focused
	ColorBg          = lipgloss.Color("#F9FAFB") // Page background
	ColorBgPanel     = lipgloss.Color("#F3F4F6") // Sidebar background
	ColorBgMessage   = lipgloss.Color("#FFFFFF") // Bubble background
	ColorBgSelected  = lipgloss.Color("#DBEAFE") // Selected message
	ColorText        = lipgloss.Color("#111827") // Dark text
	ColorTextMuted   = lipgloss.Color("#4B5563") // Muted text
	ColorTextInverse = lipgloss.Color("#FFFFFF") // Text on colored backgrounds
	ColorSelf        = lipgloss.Color("#1D4ED8") // Your own name
	ColorPeer        = lipgloss.Color("#111827") // Other senders
	ColorOnline      = lipgloss.Color("#16A34A") // Presence dot
	ColorWarning     = lipgloss.Color("#D97706") // Amber
	ColorError       = lipgloss.Color("#DC2626") // Red
	ColorSuccess     = lipgloss.Color("#059669") // Green
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)
)

// Sidebar styles
var (
	SidebarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	SidebarCardStyle = lipgloss.NewStyle().
				Background(ColorBgMessage).
				Padding(0, 1)

	SidebarNameStyle = lipgloss.NewStyle().
				Background(ColorBgMessage).
				Foreground(ColorText).
				Bold(true)

	SidebarStatusStyle = lipgloss.NewStyle().
				Background(ColorBgMessage).
				Foreground(ColorTextMuted)
)

// Chat styles
var (
	ChatSelfStyle = lipgloss.NewStyle().
			Foreground(ColorSelf).
			Bold(true)

	ChatPeerStyle = lipgloss.NewStyle().
			Foreground(ColorPeer).
			Bold(true)

	ChatBubbleStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBgMessage).
			Padding(0, 1)

	ChatReactionStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgPanel).
				Padding(0, 1)

	ChatPaletteStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	ChatPaletteKeyStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)

	ChatSendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)
)

// Help overlay styles
var (
	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(HelpWidth)

	HelpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	HelpHintStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusOfflineStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Message body styles
var (
	MarkdownBoldStyle = lipgloss.NewStyle().
				Bold(true)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#059669")).
				Background(lipgloss.Color("#F3F4F6"))

	MarkdownCodeBlockStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#F3F4F6")).
				Padding(0, 1)

	MarkdownLinkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0891B2")).
				Underline(true)
)

// Selection styles
var (
	TextSelectionStyle = lipgloss.NewStyle().
				Background(ColorBgSelected).
				Foreground(ColorText)

	// TextSelectionFlashStyle is shown briefly after a copy
	TextSelectionFlashStyle = lipgloss.NewStyle().
				Background(ColorSuccess).
				Foreground(ColorTextInverse)
)
