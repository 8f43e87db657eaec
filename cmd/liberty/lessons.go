package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/liberty/internal/lesson"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons [id]",
	Short: "Show the lesson catalog",
	Long: `List the lessons in the catalog, or show one lesson in detail.

The catalog is read from --lessons, then ~/.liberty/lessons.yaml, then
./configs/lessons.yaml, falling back to the built-in lessons.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLessons,
}

func init() {
	lessonsCmd.Flags().StringVar(&flagLessonsPath, "lessons", "", "Path to a custom lesson catalog YAML")
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

func runLessons(_ *cobra.Command, args []string) error {
	catalog, err := lesson.Load(flagLessonsPath)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		l, ok := catalog.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown lesson %q", args[0])
		}
		fmt.Println(describeLesson(l))
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "TITLE", "MEDIA", "ELEMENTS", "MIN TIME")

	for _, l := range catalog.List() {
		t.Row(
			l.ID,
			l.Title,
			strconv.Itoa(len(l.Media)),
			strconv.Itoa(len(l.Elements)),
			fmt.Sprintf("%.0fs", l.Completion.TimeSpentMinimum),
		)
	}
	fmt.Println(t.Render())
	return nil
}

// describeLesson formats one lesson for display.
func describeLesson(l lesson.Content) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(l.Title) + " (" + l.ID + ")\n")
	if l.Description != "" {
		sb.WriteString(l.Description + "\n")
	}
	for _, m := range l.Media {
		sb.WriteString("  media    " + m + "\n")
	}
	for _, e := range l.Elements {
		fmt.Fprintf(&sb, "  %-8s (%.0f, %.0f) %s\n", e.Type, e.Position.X, e.Position.Y, e.Data)
	}
	c := l.Completion
	fmt.Fprintf(&sb, "  complete after %d interactions and %.0fs", c.RequiredInteractions, c.TimeSpentMinimum)
	if c.QuizScoreThreshold != nil {
		fmt.Fprintf(&sb, ", quiz score >= %.0f%%", *c.QuizScoreThreshold*100)
	}
	return sb.String()
}
