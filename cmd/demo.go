package cmd

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/huddle/internal/app"
	"github.com/zhubert/huddle/internal/chat"
	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/protocol"
)

var (
	demoOutput string
	demoWidth  int
	demoHeight int
	demoDark   bool
	demoTheme  string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render a scripted chat screen without a server",
	Long: `Renders one frame of the chat UI from a built-in conversation and writes it
to stdout (or --output). Useful for screenshots and for checking themes.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVarP(&demoOutput, "output", "o", "", "Output file")
	demoCmd.Flags().IntVarP(&demoWidth, "width", "w", 120, "Terminal width")
	demoCmd.Flags().IntVarP(&demoHeight, "height", "H", 40, "Terminal height")
	demoCmd.Flags().BoolVar(&demoDark, "dark", false, "Render in dark mode")
	demoCmd.Flags().StringVar(&demoTheme, "theme", "", "Dark theme to render with")
	rootCmd.AddCommand(demoCmd)
}

// demoTransport is an offline Transport that discards outbound frames
type demoTransport struct {
	inbound chan string
}

func newDemoTransport() *demoTransport {
	return &demoTransport{inbound: make(chan string)}
}

func (d *demoTransport) TrySend(string) error   { return nil }
func (d *demoTransport) Inbound() <-chan string { return d.inbound }
func (d *demoTransport) Close() error           { return nil }

// demoScript is the conversation the demo plays
var demoScript = []struct {
	from, text string
}{
	{"bob", "morning all"},
	{"carol", "**standup** in 5, link in the channel"},
	{"alice", "here's the fix:\n```go\nif err != nil {\n\treturn fmt.Errorf(\"dial: %w\", err)\n}\n```"},
	{"bob", "https://media.giphy.com/media/l0MYt5jPR6QX5pnqM/giphy.gif"},
	{"carol", "shipping it `v0.4.0` 🚀"},
}

// renderDemo plays the script into a fresh model and returns one frame
func renderDemo(width, height int, dark bool, theme string) (string, error) {
	cfg := &config.Config{ServerURL: config.DefaultServerURL, Username: "alice", DarkMode: dark, Theme: theme}
	m := app.New(cfg, newDemoTransport(), "alice", version)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})

	roster, err := protocol.Encode(protocol.NewUsers([]string{"alice", "bob", "carol"}))
	if err != nil {
		return "", err
	}
	m.Update(app.FrameMsg{Raw: roster})

	for _, line := range demoScript {
		env, err := protocol.NewMessageFrame(line.from, line.text)
		if err != nil {
			return "", err
		}
		raw, err := protocol.Encode(env)
		if err != nil {
			return "", err
		}
		m.Update(app.FrameMsg{Raw: raw})
	}

	m.Update(app.ReactToMessageMsg{Index: 2, Emoji: chat.ReactionPalette[1]})
	m.Update(app.ReactToMessageMsg{Index: 4, Emoji: chat.ReactionPalette[0]})

	return m.RenderToString(), nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	screen, err := renderDemo(demoWidth, demoHeight, demoDark, demoTheme)
	if err != nil {
		return fmt.Errorf("error rendering demo: %w", err)
	}

	if demoOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), screen)
		return nil
	}
	if err := os.WriteFile(demoOutput, []byte(screen+"\n"), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", demoOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", demoOutput)
	return nil
}
