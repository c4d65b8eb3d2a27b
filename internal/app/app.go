package app

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/zhubert/huddle/internal/chat"
	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/logger"
	"github.com/zhubert/huddle/internal/protocol"
	"github.com/zhubert/huddle/internal/ui"
)

// Focus represents which part of the chat panel receives keys
type Focus int

const (
	FocusInput Focus = iota
	FocusFeed
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	switch f {
	case FocusInput:
		return "Input"
	case FocusFeed:
		return "Feed"
	default:
		return "Unknown"
	}
}

// Transport is the socket the model talks through. *wsclient.Client
// satisfies it.
type Transport interface {
	TrySend(frame string) error
	Inbound() <-chan string
	Close() error
}

// Model is the main Bubble Tea model
type Model struct {
	config    *config.Config
	version   string
	transport Transport
	state     *chat.State
	username  string
	log       *slog.Logger

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	help    *ui.Help

	width  int
	height int
	focus  Focus

	registered    bool
	offline       bool
	windowFocused bool
	notifications bool
}

// FrameMsg carries one text frame read from the socket
type FrameMsg struct {
	Raw string
}

// DisconnectedMsg is sent once the inbound channel closes
type DisconnectedMsg struct{}

// ToggleDarkModeMsg flips the palette
type ToggleDarkModeMsg struct{}

// ReactToMessageMsg appends Emoji to the reactions of message Index.
// Emoji must be a single grapheme cluster; anything else, or an Index
// outside the feed, is logged and leaves the feed unchanged.
type ReactToMessageMsg struct {
	Index int
	Emoji string
}

// ClipboardPasteMsg carries text read from the system clipboard
type ClipboardPasteMsg struct {
	Text string
	Err  error
}

// New creates a new app model. username must already be validated.
func New(cfg *config.Config, transport Transport, username, version string) *Model {
	dark := cfg.GetDarkMode()
	ui.SetDarkTheme(cfg.GetTheme())
	ui.SetDarkMode(dark)

	m := &Model{
		config:        cfg,
		version:       version,
		transport:     transport,
		state:         chat.New(dark),
		username:      username,
		log:           logger.WithSession(uuid.NewString()).With("component", "app"),
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		sidebar:       ui.NewSidebar(),
		chat:          ui.NewChat(),
		focus:         FocusInput,
		windowFocused: true,
		notifications: cfg.GetNotificationsEnabled(),
	}

	m.header.SetUsername(username)
	m.sidebar.SetSelf(username)
	m.sidebar.SetDarkMode(dark)
	m.chat.SetSelf(username)
	m.chat.SetFocused(true)

	return m
}

// State returns the chat state. Tests and the demo renderer read it.
func (m *Model) State() *chat.State {
	return m.state
}

// Focus returns which part of the chat panel is focused
func (m *Model) Focus() Focus {
	return m.focus
}

// IsOffline reports whether the socket has closed
func (m *Model) IsOffline() bool {
	return m.offline
}

// Init registers with the server and starts listening for frames
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.register(), m.listenForFrames())
}

// register sends the register frame. It only ever sends once per model.
func (m *Model) register() tea.Cmd {
	if m.registered {
		return nil
	}
	m.registered = true

	frame, err := protocol.Encode(protocol.NewRegister(m.username))
	if err != nil {
		m.log.Error("failed to encode register frame", "error", err)
		return nil
	}
	if err := m.transport.TrySend(frame); err != nil {
		m.log.Warn("failed to send register frame", "error", err)
		return nil
	}
	m.log.Info("registered", "username", m.username)
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	case FrameMsg:
		return m.handleFrameMsg(msg)

	case DisconnectedMsg:
		return m.handleDisconnectedMsg()

	case ToggleDarkModeMsg:
		m.toggleDarkMode()
		return m, nil

	case ReactToMessageMsg:
		return m.handleReactMsg(msg)

	case ClipboardPasteMsg:
		return m.handleClipboardPasteMsg(msg)

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil

	case ui.ClipboardErrorMsg:
		m.log.Warn("clipboard write failed", "error", msg.Error)
		return m, m.ShowFlashError("Copy failed")
	}

	// Everything else (paste, mouse, cursor blink, selection flash) goes to the chat panel
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// toggleDarkMode flips the palette locally. It never writes config.
func (m *Model) toggleDarkMode() {
	dark := m.state.ToggleDarkMode()
	ui.SetDarkMode(dark)
	m.sidebar.SetDarkMode(dark)
	m.chat.Refresh()
	m.log.Debug("toggled palette", "dark", dark, "theme", string(ui.CurrentThemeName()))
}

// setFocus moves key focus between the input and the feed
func (m *Model) setFocus(f Focus) {
	if m.focus == f {
		return
	}
	m.focus = f
	switch f {
	case FocusFeed:
		m.chat.FocusFeed()
	default:
		m.help = nil
		m.chat.FocusInput()
	}
	m.log.Debug("focus changed", "focus", f.String())
}

// toggleFocus switches between input and feed
func (m *Model) toggleFocus() {
	if m.focus == FocusInput {
		m.setFocus(FocusFeed)
	} else {
		m.setFocus(FocusInput)
	}
}
