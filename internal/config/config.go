// Package config provides YAML-based application configuration with
// embedded defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// AppConfig is everything bootstrap needs to compose the frame loop.
type AppConfig struct {
	Title       string       `yaml:"title"`
	Headless    bool         `yaml:"headless"`
	Window      WindowConfig `yaml:"window"`
	Loop        LoopConfig   `yaml:"loop"`
	Lesson      string       `yaml:"lesson"`       // Lesson ID to track, empty for none
	LessonsPath string       `yaml:"lessons_path"` // Custom lesson catalog
	Log         LogConfig    `yaml:"log"`
}

// WindowConfig sets the initial viewport.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Cell size maps a pixel viewport onto the status canvas (headless only;
	// the terminal viewport is already in cells).
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// LoopConfig controls tick cadence and failure policy.
type LoopConfig struct {
	TickRate          int `yaml:"tick_rate"`           // Ticks per second
	Ticks             int `yaml:"ticks"`               // Headless tick budget, 0 = until closed
	MaxRenderFailures int `yaml:"max_render_failures"` // 0 = never escalate
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// TickInterval returns the spacing between ticks.
func (c LoopConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Validate reports the first problem with c.
func (c AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.CellWidth <= 0 || c.Window.CellHeight <= 0 {
		return fmt.Errorf("%w: cell size %dx%d", ErrInvalid, c.Window.CellWidth, c.Window.CellHeight)
	}
	if c.Loop.TickRate <= 0 || c.Loop.TickRate > 1000 {
		return fmt.Errorf("%w: tick_rate %d outside 1..1000", ErrInvalid, c.Loop.TickRate)
	}
	if c.Loop.Ticks < 0 {
		return fmt.Errorf("%w: negative ticks %d", ErrInvalid, c.Loop.Ticks)
	}
	if c.Loop.MaxRenderFailures < 0 {
		return fmt.Errorf("%w: negative max_render_failures %d", ErrInvalid, c.Loop.MaxRenderFailures)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
