package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Plot.MaxSeries != 20 {
		t.Errorf("Plot.MaxSeries = %d, want 20", cfg.Plot.MaxSeries)
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path should have a default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestResolveDatabasePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain relative", "scorecard.sqlite", "scorecard.sqlite"},
		{"absolute", "/data/scorecard.sqlite", "/data/scorecard.sqlite"},
		{"home expansion", "~/data/scorecard.sqlite", filepath.Join(home, "data", "scorecard.sqlite")},
		{"bare tilde", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DatabaseConfig{Path: tt.path}
			if got := d.ResolveDatabasePath(); got != tt.want {
				t.Errorf("ResolveDatabasePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveLogFile_EmptyStaysEmpty(t *testing.T) {
	l := LoggingConfig{File: ""}
	if got := l.ResolveLogFile(); got != "" {
		t.Errorf("ResolveLogFile() = %q, want empty", got)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigDir(); got != "/tmp/xdg/collegevis" {
		t.Errorf("ConfigDir() = %q, want /tmp/xdg/collegevis", got)
	}
	if !strings.HasSuffix(ConfigFile(), "config.yaml") {
		t.Errorf("ConfigFile() = %q, want config.yaml suffix", ConfigFile())
	}
}
