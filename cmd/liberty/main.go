// liberty runs the Learn Liberty frame loop.
//
// Usage:
//
//	liberty run              - Run the frame loop in the terminal
//	liberty run --headless   - Run a fixed number of ticks with no window
//	liberty lessons          - List the lesson catalog
//	liberty serve            - Serve the frame loop over SSH
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.liberty/config.yaml, ./configs/liberty.yaml)
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/liberty/internal/config"
	"github.com/vovakirdan/liberty/internal/logging"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "liberty",
	Short: "Learn Liberty - an educational RPG frame loop",
	Long: `Learn Liberty runs a fixed-cadence update/render loop that advances
the simulation from wall-clock time and renders a status frame every tick.

Available commands:
  run      - Run the frame loop (terminal or headless)
  lessons  - Show the lesson catalog
  serve    - Start SSH server for remote sessions

Examples:
  liberty run
  liberty run --headless --ticks 60
  liberty run --lesson lesson_2
  liberty lessons
  liberty serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the config file and applies the global overrides.
func loadConfig() (config.AppConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// setupLogger initializes the process logger from cfg.
func setupLogger(cfg config.AppConfig, prefix string) (*log.Logger, error) {
	return logging.Setup(os.Stderr, cfg.Log.Level, prefix)
}
