package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/scrawlmath/scrawl/internal/classify"
	"github.com/scrawlmath/scrawl/internal/config"
	"github.com/scrawlmath/scrawl/internal/pipeline"
	"github.com/scrawlmath/scrawl/internal/preprocess"
	"github.com/scrawlmath/scrawl/internal/solve"
)

var (
	cfgFile  string
	debugDir string
)

var rootCmd = &cobra.Command{
	Use:   "scrawl",
	Short: "Solve photographed handwritten equations",
	Long: `Scrawl turns a photo of a handwritten equation into a typed
equation string and its solved value.

The pipeline binarizes the handwriting region, extracts each symbol as a
connected component, tracks superscript placement, reconstructs a valid
algebraic expression, and solves it for its roots.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.scrawl/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&debugDir, "debug-dir", "", "write intermediate images to this directory",
	)

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads config and assembles the pipeline with its collaborators.
// The returned cleanup releases the classifier.
func setup() (*pipeline.Pipeline, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if debugDir != "" {
		cfg.DebugDir = debugDir
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	// stderr only: stdout carries the result protocol.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	classifier, err := classify.NewTesseract(cfg.TessdataPrefix)
	if err != nil {
		return nil, nil, err
	}

	pipe := pipeline.New(pipeline.Config{
		Preprocess: preprocess.Options{
			CropScale:       cfg.CropScale,
			DenoiseStrength: cfg.DenoiseStrength,
			DebugDir:        cfg.DebugDir,
		},
		InkThreshold: uint8(cfg.InkThreshold),
		Logger:       logger,
	}, classifier, solve.PolynomialSolver{})

	cleanup := func() { _ = classifier.Close() }
	return pipe, cleanup, nil
}
