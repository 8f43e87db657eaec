package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/liberty/internal/app"
)

var (
	flagHeadless    bool
	flagTicks       int
	flagFPS         int
	flagWidth       int
	flagHeight      int
	flagTitle       string
	flagLesson      string
	flagLessonsPath string
	flagMaxFailures int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the frame loop",
	Long: `Run the frame loop until the window closes.

In the terminal the loop ticks at --fps until you press q, Esc or Ctrl+C.
With --headless no window is opened; the loop runs --ticks ticks (0 runs
until interrupted) and prints a summary.

Examples:
  liberty run
  liberty run --fps 30 --lesson lesson_1
  liberty run --headless --ticks 600 --width 1920 --height 1080
  liberty run --headless --max-failures 5`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without a window")
	runCmd.Flags().IntVar(&flagTicks, "ticks", 60, "Headless tick budget (0 = until interrupted)")
	runCmd.Flags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	runCmd.Flags().IntVar(&flagWidth, "width", 800, "Initial viewport width (headless)")
	runCmd.Flags().IntVar(&flagHeight, "height", 600, "Initial viewport height (headless)")
	runCmd.Flags().StringVar(&flagTitle, "title", "", "Window title")
	runCmd.Flags().StringVar(&flagLesson, "lesson", "", "Lesson ID to track as the current activity")
	runCmd.Flags().StringVar(&flagLessonsPath, "lessons", "", "Path to a custom lesson catalog YAML")
	runCmd.Flags().IntVar(&flagMaxFailures, "max-failures", 0, "Stop after this many consecutive render failures (0 = never)")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags override the file only when given
	flags := cmd.Flags()
	if flags.Changed("headless") {
		cfg.Headless = flagHeadless
	}
	if flags.Changed("ticks") {
		cfg.Loop.Ticks = flagTicks
	}
	if flags.Changed("fps") {
		cfg.Loop.TickRate = flagFPS
	}
	if flags.Changed("width") {
		cfg.Window.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Window.Height = flagHeight
	}
	if flags.Changed("title") {
		cfg.Title = flagTitle
	}
	if flags.Changed("lesson") {
		cfg.Lesson = flagLesson
	}
	if flags.Changed("lessons") {
		cfg.LessonsPath = flagLessonsPath
	}
	if flags.Changed("max-failures") {
		cfg.Loop.MaxRenderFailures = flagMaxFailures
	}

	logger, err := setupLogger(cfg, "liberty")
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	a, err := app.Build(cfg, app.Options{Logger: logger})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := a.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Headless {
		printReport(report)
	}
	return nil
}

// printReport writes a run summary to stdout.
func printReport(r app.Report) {
	fmt.Printf("run        %s\n", r.RunID)
	fmt.Printf("frames     %d\n", r.Frames)
	fmt.Printf("renders    %d (%d failed)\n", r.RenderCalls, r.Stats.RenderFailures)
	fmt.Printf("elapsed    %.3fs\n", r.Elapsed)
	fmt.Printf("viewport   %dx%d\n", r.Width, r.Height)
	if r.Activity != "" {
		fmt.Printf("activity   %s (%.0f%%)\n", r.Activity, r.Progress*100)
	}
}
