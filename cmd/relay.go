package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/logger"
	"github.com/zhubert/huddle/internal/relay"
)

var (
	relayAddr      string
	relayRateLimit float64
	relayBurst     int
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run a local chat server for development",
	Long: `Runs an in-memory websocket chat server on /ws.

Clients register a display name, and every message is broadcast to all
connected clients along with the sender's name. The roster is re-sent to
everyone whenever someone joins or leaves. Prometheus metrics are served on
/metrics and a liveness probe on /healthz.`,
	RunE: runRelay,
}

func init() {
	defaults := relay.DefaultConfig()
	relayCmd.Flags().StringVar(&relayAddr, "addr", "", "Listen address (default from config, "+config.EnvRelayAddr+", or "+config.DefaultRelayAddr+")")
	relayCmd.Flags().Float64Var(&relayRateLimit, "rate", defaults.RatePerSecond, "Frames per second allowed per connection")
	relayCmd.Flags().IntVar(&relayBurst, "burst", defaults.Burst, "Burst size for the per-connection limit")
	rootCmd.AddCommand(relayCmd)
}

// resolveRelayAddr picks the listen address: flag, then config/env
func resolveRelayAddr(cmd *cobra.Command, cfg *config.Config) string {
	if cmd.Flags().Changed("addr") && relayAddr != "" {
		return relayAddr
	}
	return cfg.GetRelayAddr()
}

func runRelay(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logger.RelayLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	addr := resolveRelayAddr(cmd, cfg)

	relayCfg := relay.DefaultConfig()
	relayCfg.RatePerSecond = relayRateLimit
	relayCfg.Burst = relayBurst

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "huddle relay listening on %s (logs: %s)\n", addr, logger.Path())
	return relay.New(relayCfg).ListenAndServe(ctx, addr)
}
