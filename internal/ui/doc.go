// Package ui provides the user interface components for the huddle TUI.
//
// # Overview
//
// The ui package implements the visual components of huddle using the Bubble Tea
// framework and Lipgloss styling library. Components hold only what they need
// to draw; the app package owns the chat state and pushes it down on change.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├──────────────┬──────────────────────────────────────┤
//	│              │                                      │
//	│   Sidebar    │         Feed                         │
//	│   (roster)   │                                      │
//	│              ├──────────────────────────────────────┤
//	│              │ Input                              ➤ │
//	├──────────────┴──────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
//
// Header: Title and the "{n} users online" count on a gradient background.
//
// Sidebar: The roster. Each user gets an avatar badge whose color is derived
// from the name, and a presence line. The title row shows the dark-mode
// indicator.
//
// Chat: The feed viewport and the input textarea. When the feed has focus a
// cursor selects one message; the reaction keys and copy act on it.
//
// Footer: Context-aware key bindings, replaced by flash messages.
//
// Help: A filterable list of shortcuts drawn over the layout.
//
// # Themes
//
// theme.go holds the palettes. One dark theme (config "theme") and the light
// theme are active at a time; SetDarkMode swaps between them and regenerates
// every style in styles.go.
package ui
