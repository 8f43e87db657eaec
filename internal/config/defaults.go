package config

import (
	_ "embed"
)

//go:embed defaults/liberty.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Title: "Learn Liberty",
		Window: WindowConfig{
			Width:      800,
			Height:     600,
			CellWidth:  8,
			CellHeight: 16,
		},
		Loop: LoopConfig{
			TickRate: 60,
			Ticks:    60,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
