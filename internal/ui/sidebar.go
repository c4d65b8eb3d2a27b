package ui

import (
	"hash/fnv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zhubert/huddle/internal/chat"
)

// RosterTitle heads the user list
const RosterTitle = "👥 Users"

// Dark-mode indicator glyphs. Like a toggle button, the glyph shows the mode
// you would switch to.
const (
	LightModeGlyph = "🌞"
	DarkModeGlyph  = "🌙"
)

// OnlineLabel is the presence line under each roster entry
const OnlineLabel = "Online 🟢"

// avatarColors are the backgrounds an avatar badge may take
var avatarColors = []string{
	"#EF4444", "#F97316", "#EAB308", "#22C55E",
	"#14B8A6", "#3B82F6", "#8B5CF6", "#EC4899",
}

// avatarColor picks a stable badge color for a display name
func avatarColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return avatarColors[h.Sum32()%uint32(len(avatarColors))]
}

// avatarInitial returns the first grapheme of name, upper-cased where that
// means anything
func avatarInitial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	first, _, _, _ := uniseg.FirstGraphemeClusterInString(name, -1)
	return strings.ToUpper(first)
}

// renderAvatar draws a small colored badge standing in for the avatar image
func renderAvatar(name string) string {
	initial := avatarInitial(name)
	// Wide initials (CJK, emoji) already fill two cells
	if runewidth.StringWidth(initial) < 2 {
		initial = initial + " "
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(avatarColor(name))).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(0, 1).
		Render(initial)
}

// hashUsers computes a fast hash of the roster to detect changes
func hashUsers(users []chat.UserProfile) uint64 {
	h := fnv.New64a()
	for _, u := range users {
		h.Write([]byte(u.Name))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Sidebar represents the left panel with the user roster
type Sidebar struct {
	users        []chat.UserProfile
	self         string
	width        int
	height       int
	darkMode     bool
	scrollOffset int
	lastHash     uint64
	lines        []string // cached rendered roster, rebuilt on change
	lastWidth    int
}

// NewSidebar creates a new roster panel
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetSelf marks which roster entry is the local user
func (s *Sidebar) SetSelf(name string) {
	s.self = name
	s.lastHash = 0
}

// SetDarkMode sets which mode indicator is shown
func (s *Sidebar) SetDarkMode(dark bool) {
	s.darkMode = dark
	// Card colors come from the palette, so the cache is stale
	s.lastHash = 0
}

// SetUsers replaces the roster
func (s *Sidebar) SetUsers(users []chat.UserProfile) {
	newHash := hashUsers(users)
	if newHash == s.lastHash && len(users) == len(s.users) {
		return
	}
	s.users = users
	s.lastHash = 0
	s.clampScroll()
}

// UserCount returns the number of roster entries
func (s *Sidebar) UserCount() int {
	return len(s.users)
}

// ScrollUp moves the roster up one entry
func (s *Sidebar) ScrollUp() {
	if s.scrollOffset > 0 {
		s.scrollOffset--
	}
}

// ScrollDown moves the roster down one entry
func (s *Sidebar) ScrollDown() {
	s.scrollOffset++
	s.clampScroll()
}

// cardHeight is the number of lines one roster entry takes, including the gap
const cardHeight = 3

func (s *Sidebar) visibleCards() int {
	// Title line plus its separator
	n := (GetViewContext().InnerHeight(s.height) - 2) / cardHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (s *Sidebar) clampScroll() {
	maxOffset := len(s.users) - s.visibleCards()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.scrollOffset > maxOffset {
		s.scrollOffset = maxOffset
	}
}

// renderCard renders one roster entry: avatar badge, name and presence line
func (s *Sidebar) renderCard(u chat.UserProfile, innerWidth int) []string {
	avatar := renderAvatar(u.Name)
	avatarWidth := lipgloss.Width(avatar)

	// Card padding (2) plus the gap after the avatar (1)
	nameWidth := innerWidth - avatarWidth - 3
	if nameWidth < 1 {
		nameWidth = 1
	}
	name := runewidth.Truncate(u.Name, nameWidth, "…")
	nameStyle := SidebarNameStyle
	if u.Name == s.self {
		nameStyle = nameStyle.Foreground(ColorSelf)
	}

	blank := strings.Repeat(" ", avatarWidth)
	top := avatar + SidebarNameStyle.Render(" ") + nameStyle.Render(name)
	bottom := SidebarStatusStyle.Render(blank+" ") + SidebarStatusStyle.Render(OnlineLabel)

	card := SidebarCardStyle.Width(innerWidth)
	return []string{card.Render(top), card.Render(bottom)}
}

func (s *Sidebar) rebuild(innerWidth int) {
	s.lines = s.lines[:0]
	for _, u := range s.users {
		s.lines = append(s.lines, s.renderCard(u, innerWidth)...)
		s.lines = append(s.lines, "")
	}
	s.lastHash = hashUsers(s.users)
	s.lastWidth = innerWidth
}

// renderTitle renders "👥 Users" with the mode indicator right-aligned
func (s *Sidebar) renderTitle(innerWidth int) string {
	glyph := DarkModeGlyph
	if s.darkMode {
		glyph = LightModeGlyph
	}
	title := PanelTitleStyle.Render(RosterTitle)
	gap := innerWidth - lipgloss.Width(title) - lipgloss.Width(glyph)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + glyph
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()
	innerWidth := ctx.InnerWidth(s.width)
	innerHeight := ctx.InnerHeight(s.height)

	if s.lastHash == 0 || s.lastWidth != innerWidth {
		s.rebuild(innerWidth)
	}

	var b strings.Builder
	b.WriteString(s.renderTitle(innerWidth))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("─", max(innerWidth, 0))))

	if len(s.users) == 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No one here yet."))
	} else {
		start := s.scrollOffset * cardHeight
		end := min(start+s.visibleCards()*cardHeight, len(s.lines))
		for _, line := range s.lines[start:end] {
			b.WriteString("\n")
			b.WriteString(line)
		}
	}

	return SidebarStyle.
		Width(s.width).
		Height(s.height).
		MaxHeight(innerHeight + BorderSize).
		Render(b.String())
}
