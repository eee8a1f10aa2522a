package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete collegevis configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Plot     PlotConfig     `mapstructure:"plot"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Export   ExportConfig   `mapstructure:"export"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig locates the Scorecard SQLite database
type DatabaseConfig struct {
	// Path is the SQLite database file. Relative paths are resolved against
	// the working directory. Supports ~ for home directory expansion.
	Path string `mapstructure:"path"`
}

// PlotConfig controls series resolution and figure layout
type PlotConfig struct {
	// MaxSeries is the maximum number of series per plot request.
	// Requests beyond the cap are rejected before any query runs.
	MaxSeries int `mapstructure:"max_series"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// CanvasHeight is the plot canvas height in rows (default: 24, min: 10, max: 80)
	CanvasHeight int `mapstructure:"canvas_height"`
	// ThemeFile is an optional YAML palette override file path
	ThemeFile string `mapstructure:"theme_file"`
}

// ExportConfig controls SVG export behavior
type ExportConfig struct {
	// Width is the exported figure width in pixels
	Width int `mapstructure:"width"`
	// Height is the exported figure height in pixels
	Height int `mapstructure:"height"`
	// Dir is the directory exported figures are written to (default: ".")
	Dir string `mapstructure:"dir"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "scorecard.sqlite",
		},
		Plot: PlotConfig{
			MaxSeries: 20,
		},
		TUI: TUIConfig{
			CanvasHeight: 24,
			ThemeFile:    "",
		},
		Export: ExportConfig{
			Width:  960,
			Height: 600,
			Dir:    ".",
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// ResolveDatabasePath returns the database path with ~ expanded.
func (d *DatabaseConfig) ResolveDatabasePath() string {
	return expandHome(d.Path)
}

// ResolveLogFile returns the log file path with ~ expanded.
// An empty path stays empty (stderr logging).
func (l *LoggingConfig) ResolveLogFile() string {
	if l.File == "" {
		return ""
	}
	return expandHome(l.File)
}

func expandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("database.path", defaults.Database.Path)

	viper.SetDefault("plot.max_series", defaults.Plot.MaxSeries)

	viper.SetDefault("tui.canvas_height", defaults.TUI.CanvasHeight)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)

	viper.SetDefault("export.width", defaults.Export.Width)
	viper.SetDefault("export.height", defaults.Export.Height)
	viper.SetDefault("export.dir", defaults.Export.Dir)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "collegevis")
	}
	// Fall back to ~/.config/collegevis
	home, err := os.UserHomeDir()
	if err != nil {
		return ".collegevis"
	}
	return filepath.Join(home, ".config", "collegevis")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
