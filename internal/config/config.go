package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the tunables of the solving pipeline. Everything has a
// working default; a config file and SCRAWL_* environment variables can
// override it.
type Config struct {
	// CropScale controls how much of the image height survives the
	// handwriting-region crop (see preprocess.Options.CropScale).
	CropScale float64 `mapstructure:"crop_scale"`

	// DenoiseStrength is the non-local-means filtering strength.
	// Zero disables denoising.
	DenoiseStrength float64 `mapstructure:"denoise_strength"`

	// InkThreshold is the fixed ink cutoff used during segmentation.
	InkThreshold int `mapstructure:"ink_threshold"`

	// TessdataPrefix points the Tesseract classifier at a tessdata
	// directory. Empty uses the system default.
	TessdataPrefix string `mapstructure:"tessdata_prefix"`

	// DebugDir, if set, receives intermediate images (binarized input,
	// segmentation overlay, per-glyph crops).
	DebugDir string `mapstructure:"debug_dir"`

	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CropScale:       0.40,
		DenoiseStrength: 10,
		InkThreshold:    123,
		LogLevel:        "info",
	}
}

// Load reads configuration from the given file (or config.yaml in the
// working directory / ~/.scrawl when empty) merged over the defaults and
// SCRAWL_* environment variables. A missing config file is not an error.
func Load(cfgFile string) (*Config, error) {
	defaults := Default()
	viper.SetDefault("crop_scale", defaults.CropScale)
	viper.SetDefault("denoise_strength", defaults.DenoiseStrength)
	viper.SetDefault("ink_threshold", defaults.InkThreshold)
	viper.SetDefault("tessdata_prefix", defaults.TessdataPrefix)
	viper.SetDefault("debug_dir", defaults.DebugDir)
	viper.SetDefault("log_level", defaults.LogLevel)

	viper.SetEnvPrefix("SCRAWL")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.scrawl")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.InkThreshold < 0 || cfg.InkThreshold > 255 {
		return nil, fmt.Errorf("ink_threshold %d outside 0-255", cfg.InkThreshold)
	}
	if cfg.CropScale <= 0 || cfg.CropScale > 1 {
		return nil, fmt.Errorf("crop_scale %v outside (0, 1]", cfg.CropScale)
	}

	return &cfg, nil
}
