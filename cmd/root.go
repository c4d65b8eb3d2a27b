package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/huddle/internal/app"
	"github.com/zhubert/huddle/internal/clipboard"
	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/logger"
	"github.com/zhubert/huddle/internal/ui"
	"github.com/zhubert/huddle/internal/wsclient"
)

// dialTimeout bounds the initial websocket handshake
const dialTimeout = 10 * time.Second

var (
	debugMode             bool
	quietMode             bool
	serverURL             string
	username              string
	darkFlag              bool
	lightFlag             bool
	themeName             string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "huddle",
	Short: "Terminal chat client for a websocket chat room",
	Long: `Huddle is a terminal chat client. It connects to a websocket chat server,
registers under a display name, and shows the room's roster and message feed.

Run "huddle relay" to start a local server for development.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")

	rootCmd.Flags().StringVar(&serverURL, "server", "", "Websocket URL of the chat server (overrides config and "+config.EnvServer+")")
	rootCmd.Flags().StringVarP(&username, "username", "u", "", "Display name (overrides config and "+config.EnvUsername+")")
	rootCmd.Flags().BoolVar(&darkFlag, "dark", false, "Start in dark mode")
	rootCmd.Flags().BoolVar(&lightFlag, "light", false, "Start in light mode")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Dark theme to use (e.g., nord, dracula)")
	rootCmd.MarkFlagsMutuallyExclusive("dark", "light")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("huddle %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("huddle %s\n", version)
}

// applyFlags copies explicitly set flags over the loaded config. Flags win
// over both the config file and the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("server") {
		if err := config.ValidateServerURL(serverURL); err != nil {
			return err
		}
		cfg.SetServerURL(serverURL)
	}
	if flags.Changed("username") {
		if err := config.ValidateUsername(username); err != nil {
			return err
		}
		cfg.SetUsername(username)
	}
	if flags.Changed("dark") && darkFlag {
		cfg.SetDarkMode(true)
	}
	if flags.Changed("light") && lightFlag {
		cfg.SetDarkMode(false)
	}
	if flags.Changed("theme") {
		cfg.SetTheme(themeName)
	}
	return nil
}

// promptLogin asks for a username (and lets the user confirm the server)
// and saves both for next time.
func promptLogin(cfg *config.Config) error {
	ui.SetDarkTheme(cfg.GetTheme())
	ui.SetDarkMode(cfg.GetDarkMode())

	name := cfg.GetUsername()
	server := cfg.GetServerURL()
	if err := ui.NewLoginForm(&name, &server).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("login cancelled")
		}
		return fmt.Errorf("login form: %w", err)
	}

	cfg.SetUsername(name)
	cfg.SetServerURL(server)
	if err := cfg.Save(); err != nil {
		// Not fatal; the session can still run
		logger.WithComponent("cmd").Warn("failed to save config", "error", err)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logger.DefaultLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	// Ensure logger is closed on exit
	defer logger.Close()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	if cfg.GetUsername() == "" {
		if err := promptLogin(cfg); err != nil {
			return err
		}
	}

	if err := clipboard.Init(); err != nil {
		// OSC 52 still works without the native clipboard
		logger.WithComponent("cmd").Warn("native clipboard unavailable", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	client, err := wsclient.Dial(dialCtx, cfg.GetServerURL())
	cancel()
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", cfg.GetServerURL(), err)
	}
	defer client.Close()

	// Create and run the app
	m := app.New(cfg, client, cfg.GetUsername(), version)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
