package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/logger"
)

var (
	skipConfirm bool
	cleanConfig bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and, optionally, the saved config",
	Long: `Removes the client and relay log files from /tmp. With --config it also
deletes ~/.huddle/config.json so the next start asks for a username again.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&cleanConfig, "config", false, "Also delete the saved config file")
	rootCmd.AddCommand(cleanCmd)
}

// cleanPlan lists what a clean run will remove
type cleanPlan struct {
	logs       []string
	configPath string // empty when the config is kept or absent
}

func (p cleanPlan) empty() bool {
	return len(p.logs) == 0 && p.configPath == ""
}

// planClean gathers the files matching logGlob and, when withConfig is set,
// the config file if it exists.
func planClean(logGlob, configPath string, withConfig bool) (cleanPlan, error) {
	logs, err := filepath.Glob(logGlob)
	if err != nil {
		return cleanPlan{}, fmt.Errorf("error listing logs: %w", err)
	}
	plan := cleanPlan{logs: logs}
	if withConfig && configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			plan.configPath = configPath
		}
	}
	return plan, nil
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	var configPath string
	if cleanConfig {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		configPath = cfg.Path()
	}

	// The open log handle would keep the file alive
	logger.Close()

	plan, err := planClean(logger.LogGlob, configPath, cleanConfig)
	if err != nil {
		return err
	}

	// Check if there's anything to clean
	if plan.empty() {
		fmt.Println("Nothing to clean.")
		return nil
	}

	// Print summary of what will be cleaned
	fmt.Println("This will remove:")
	for _, p := range plan.logs {
		fmt.Printf("  - %s\n", p)
	}
	if plan.configPath != "" {
		fmt.Printf("  - %s\n", plan.configPath)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}
	if logsCleared > 0 {
		fmt.Printf("Removed %d log file(s).\n", logsCleared)
	}

	if plan.configPath != "" {
		if err := os.Remove(plan.configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error removing config: %w", err)
		}
		fmt.Println("Removed saved config.")
	}
	return nil
}

// confirm prompts the user and returns true for "y" or "yes"
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
