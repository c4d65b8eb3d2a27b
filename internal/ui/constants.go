// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/4 of total width)
	SidebarWidthRatio = 4

	// MaxSidebarWidth caps the roster so wide terminals give the space to the feed
	MaxSidebarWidth = 32

	// TextareaHeight is the number of lines for the message input
	TextareaHeight = 1

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight are the smallest sizes the layout is computed for
	MinTerminalWidth  = 60
	MinTerminalHeight = 12
)

// Input limits
const (
	// InputCharLimit bounds a single outgoing message
	InputCharLimit = 4000

	// InputPlaceholder is shown in the empty input box
	InputPlaceholder = "Type a message..."
)

// Help overlay dimensions
const (
	// HelpWidth is the width of the help overlay
	HelpWidth = 56

	// HelpMaxVisible is the number of shortcut rows shown before the list scrolls
	HelpMaxVisible = 14
)
