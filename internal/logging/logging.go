// Package logging sets up the process-wide logger once at startup.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Setup builds the process logger writing to w (stderr when nil), installs it
// as the default and returns it. Call it once from main.
func Setup(w io.Writer, level, prefix string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
	log.SetDefault(logger)
	return logger, nil
}
