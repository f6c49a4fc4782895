package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.CropScale != 0.40 {
		t.Errorf("CropScale: got %v, want 0.40", cfg.CropScale)
	}
	if cfg.DenoiseStrength != 10 {
		t.Errorf("DenoiseStrength: got %v, want 10", cfg.DenoiseStrength)
	}
	if cfg.InkThreshold != 123 {
		t.Errorf("InkThreshold: got %v, want 123", cfg.InkThreshold)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, "ink_threshold: 200\nlog_level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InkThreshold != 200 {
		t.Errorf("InkThreshold: got %d, want 200", cfg.InkThreshold)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "debug")
	}
	// Untouched keys keep their defaults.
	if cfg.CropScale != 0.40 {
		t.Errorf("CropScale: got %v, want 0.40", cfg.CropScale)
	}
}

func TestLoad_ExplicitMissingFileIsAnError(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for explicitly named missing file")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"ink threshold too high", "ink_threshold: 300\n"},
		{"ink threshold negative", "ink_threshold: -1\n"},
		{"crop scale zero", "crop_scale: 0\n"},
		{"crop scale above one", "crop_scale: 1.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			path := writeConfigFile(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load(%q): expected validation error", tt.content)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, "ink_threshold: [not a number\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_Environment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SCRAWL_INK_THRESHOLD", "42")

	path := writeConfigFile(t, "log_level: warn\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InkThreshold != 42 {
		t.Errorf("InkThreshold from environment: got %d, want 42", cfg.InkThreshold)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "warn")
	}
}
