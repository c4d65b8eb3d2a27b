package ui

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// HelpShortcut is one row of the help overlay
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection groups shortcuts under a title
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}

// helpShortcutItem wraps a HelpShortcut for use in a bubbles list.
type helpShortcutItem struct {
	shortcut HelpShortcut
}

func (i helpShortcutItem) FilterValue() string {
	return i.shortcut.Key + " " + i.shortcut.Desc
}

// helpSectionItem represents a section header in the list.
// It is not selectable and not filterable.
type helpSectionItem struct {
	title string
}

func (i helpSectionItem) FilterValue() string { return "" }

// helpDelegate renders help list items.
type helpDelegate struct{}

func (d helpDelegate) Height() int                             { return 1 }
func (d helpDelegate) Spacing() int                            { return 0 }
func (d helpDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch i := item.(type) {
	case helpSectionItem:
		fmt.Fprint(w, lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			Render(i.title))

	case helpShortcutItem:
		keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Width(16)
		descStyle := lipgloss.NewStyle().Foreground(ColorText)
		prefix := "  "
		if index == m.Index() {
			keyStyle = keyStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			descStyle = descStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			prefix = "> "
		}
		fmt.Fprint(w, prefix+keyStyle.Render(i.shortcut.Key)+descStyle.Render(i.shortcut.Desc))
	}
}

// Help is the keyboard shortcut overlay, a filterable bubbles list.
type Help struct {
	list list.Model
}

// NewHelp creates the overlay from sections
func NewHelp(sections []HelpSection) *Help {
	// Interleave section headers with shortcuts
	var items []list.Item
	for _, section := range sections {
		items = append(items, helpSectionItem{title: section.Title})
		for _, shortcut := range section.Shortcuts {
			items = append(items, helpShortcutItem{shortcut: shortcut})
		}
	}

	// Title and hint lines plus their margins
	const chrome = 4
	l := list.New(items, helpDelegate{}, HelpWidth-chrome, HelpMaxVisible)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)

	// Start selection on the first shortcut item (skip any leading section header)
	for i, item := range items {
		if _, ok := item.(helpShortcutItem); ok {
			l.Select(i)
			break
		}
	}

	return &Help{list: l}
}

// IsFiltering returns whether the user is currently typing in the filter.
func (h *Help) IsFiltering() bool {
	return h.list.SettingFilter()
}

// Update forwards navigation and filter input to the list
func (h *Help) Update(msg tea.Msg) (*Help, tea.Cmd) {
	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return h, cmd
}

// SelectedShortcut returns the highlighted row, or nil on a section header.
func (h *Help) SelectedShortcut() *HelpShortcut {
	if si, ok := h.list.SelectedItem().(helpShortcutItem); ok {
		return &si.shortcut
	}
	return nil
}

// View renders the overlay box
func (h *Help) View() string {
	hint := "/: filter  ↑/↓: navigate  esc: close"
	if h.list.SettingFilter() {
		hint = "type to filter  enter: apply  esc: cancel"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		HelpTitleStyle.Render("Keyboard Shortcuts"),
		h.list.View(),
		HelpHintStyle.Render(hint),
	)
	return HelpStyle.Render(content)
}
