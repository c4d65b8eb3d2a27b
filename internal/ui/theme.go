// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI. One dark theme is
// chosen from config; the light theme is fixed. The dark-mode toggle swaps
// between the two.
package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
// Each theme provides colors for all UI elements, ensuring visual consistency.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, the send button)
	Primary string
	// Secondary is the secondary accent color (used for footer keys, section titles)
	Secondary string

	// Background colors
	Bg         string // Main background (feed)
	BgPanel    string // Sidebar background
	BgMessage  string // Message bubble and roster card background
	BgSelected string // Selected message background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	Self    string // Sender label for your own messages
	Peer    string // Sender label for everyone else
	Online  string // Presence indicator
	Warning string // Offline banner, warnings
	Error   string // Error messages
	Success string // Copy flash

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Message body colors
	Code        string // Inline code
	CodeBg      string // Code background
	Link        string // Links and GIF URLs
	ChromaStyle string // chroma style name for fenced code blocks
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeSlate      ThemeName = "slate"
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeGruvbox    ThemeName = "gruvbox"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeCatppuccin ThemeName = "catppuccin"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the dark theme used when none is configured
const DefaultTheme = ThemeSlate

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeSlate: {
		Name:        "Slate",
		Primary:     "#2563EB",
		Secondary:   "#60A5FA",
		Bg:          "#111827",
		BgPanel:     "#1F2937",
		BgMessage:   "#374151",
		BgSelected:  "#1E3A8A",
		Text:        "#FFFFFF",
		TextMuted:   "#D1D5DB",
		TextInverse: "#111827",
		Self:        "#93C5FD",
		Peer:        "#F9FAFB",
		Online:      "#22C55E",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Success:     "#10B981",
		Border:      "#4B5563",
		BorderFocus: "#2563EB",
		Code:        "#67E8F9",
		CodeBg:      "#1F2937",
		Link:        "#60A5FA",
		ChromaStyle: "monokai",
	},
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		BgPanel:     "#111827",
		BgMessage:   "#374151",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Self:        "#A78BFA",
		Peer:        "#22D3EE",
		Online:      "#4ADE80",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Success:     "#10B981",
		Border:      "#374151",
		Code:        "#67E8F9",
		CodeBg:      "#1E1E2E",
		Link:        "#67E8F9",
		ChromaStyle: "monokai",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		BgPanel:     "#3B4252",
		BgMessage:   "#434C5E",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Self:        "#A3BE8C",
		Peer:        "#88C0D0",
		Online:      "#A3BE8C",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Success:     "#A3BE8C",
		Border:      "#4C566A",
		Code:        "#A3BE8C",
		CodeBg:      "#242933",
		Link:        "#88C0D0",
		ChromaStyle: "nord",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		BgPanel:     "#21222C",
		BgMessage:   "#44475A",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Self:        "#FF79C6",
		Peer:        "#8BE9FD",
		Online:      "#50FA7B",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Success:     "#50FA7B",
		Border:      "#44475A",
		Code:        "#50FA7B",
		CodeBg:      "#21222C",
		Link:        "#8BE9FD",
		ChromaStyle: "dracula",
	},
	ThemeGruvbox: {
		Name:        "Gruvbox",
		Primary:     "#FE8019",
		Secondary:   "#83A598",
		Bg:          "#282828",
		BgPanel:     "#1D2021",
		BgMessage:   "#3C3836",
		Text:        "#EBDBB2",
		TextMuted:   "#A89984",
		TextInverse: "#282828",
		Self:        "#FABD2F",
		Peer:        "#83A598",
		Online:      "#B8BB26",
		Warning:     "#FE8019",
		Error:       "#FB4934",
		Success:     "#B8BB26",
		Border:      "#504945",
		Code:        "#B8BB26",
		CodeBg:      "#1D2021",
		Link:        "#83A598",
		ChromaStyle: "gruvbox",
	},
	ThemeTokyoNight: {
		Name:        "Tokyo Night",
		Primary:     "#7AA2F7",
		Secondary:   "#BB9AF7",
		Bg:          "#1A1B26",
		BgPanel:     "#16161E",
		BgMessage:   "#24283B",
		Text:        "#C0CAF5",
		TextMuted:   "#565F89",
		TextInverse: "#1A1B26",
		Self:        "#9ECE6A",
		Peer:        "#7AA2F7",
		Online:      "#9ECE6A",
		Warning:     "#E0AF68",
		Error:       "#F7768E",
		Success:     "#9ECE6A",
		Border:      "#3B4261",
		Code:        "#9ECE6A",
		CodeBg:      "#16161E",
		Link:        "#7DCFFF",
		ChromaStyle: "tokyonight-night",
	},
	ThemeCatppuccin: {
		Name:        "Catppuccin",
		Primary:     "#CBA6F7",
		Secondary:   "#89DCEB",
		Bg:          "#1E1E2E",
		BgPanel:     "#181825",
		BgMessage:   "#313244",
		Text:        "#CDD6F4",
		TextMuted:   "#6C7086",
		TextInverse: "#1E1E2E",
		Self:        "#F5C2E7",
		Peer:        "#89DCEB",
		Online:      "#A6E3A1",
		Warning:     "#FAB387",
		Error:       "#F38BA8",
		Success:     "#A6E3A1",
		Border:      "#313244",
		Code:        "#A6E3A1",
		CodeBg:      "#181825",
		Link:        "#89DCEB",
		ChromaStyle: "catppuccin-mocha",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#2563EB",
		Secondary:   "#0891B2",
		Bg:          "#F9FAFB",
		BgPanel:     "#F3F4F6",
		BgMessage:   "#FFFFFF",
		BgSelected:  "#DBEAFE",
		Text:        "#111827",
		TextMuted:   "#4B5563",
		TextInverse: "#FFFFFF",
		Self:        "#1D4ED8",
		Peer:        "#111827",
		Online:      "#16A34A",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Success:     "#059669",
		Border:      "#D1D5DB",
		BorderFocus: "#2563EB",
		Code:        "#059669",
		CodeBg:      "#F3F4F6",
		Link:        "#0891B2",
		ChromaStyle: "github",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeSlate,
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeCatppuccin,
		ThemeLight,
	}
}

// DarkThemeNames returns the themes that may back dark mode.
func DarkThemeNames() []ThemeName {
	var names []ThemeName
	for _, n := range ThemeNames() {
		if n != ThemeLight {
			names = append(names, n)
		}
	}
	return names
}

// GetTheme returns a theme by name, defaulting to Slate if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

var (
	// currentTheme holds the active theme
	currentTheme = BuiltinThemes[ThemeLight]
	// darkTheme is the theme applied when dark mode is on
	darkTheme = DefaultTheme
	darkMode  bool
)

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
}

// SetDarkTheme selects the theme used for dark mode. Unknown and light names
// fall back to the default dark theme.
func SetDarkTheme(name string) {
	n := ThemeName(name)
	if _, ok := BuiltinThemes[n]; !ok || n == ThemeLight {
		n = DefaultTheme
	}
	darkTheme = n
	if darkMode {
		SetTheme(darkTheme)
	}
}

// SetDarkMode swaps the active palette between the dark theme and the light theme.
func SetDarkMode(dark bool) {
	darkMode = dark
	if dark {
		SetTheme(darkTheme)
	} else {
		SetTheme(ThemeLight)
	}
}

// IsDarkMode reports which palette is active.
func IsDarkMode() bool {
	return darkMode
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorBgPanel = lipgloss.Color(t.BgPanel)
	ColorBgMessage = lipgloss.Color(t.BgMessage)
	ColorBgSelected = lipgloss.Color(t.GetBgSelected())
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorSelf = lipgloss.Color(t.Self)
	ColorPeer = lipgloss.Color(t.Peer)
	ColorOnline = lipgloss.Color(t.Online)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	// Update header styles
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	// Update footer styles
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	// Update panel styles
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	// Update sidebar styles
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

	// Update chat styles
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

	// Update help overlay styles
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

	// Update status styles
	StatusOfflineStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	// Update message body styles
	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Code)).
		Background(lipgloss.Color(t.CodeBg))

	MarkdownCodeBlockStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.CodeBg)).
		Padding(0, 1)

	MarkdownLinkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Link)).
		Underline(true)

	// Update selection styles
	TextSelectionStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText)

	TextSelectionFlashStyle = lipgloss.NewStyle().
		Background(ColorSuccess).
		Foreground(ColorTextInverse)
}
