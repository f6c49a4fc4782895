package pipeline

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/scrawlmath/scrawl/internal/classify"
	"github.com/scrawlmath/scrawl/internal/equation"
	"github.com/scrawlmath/scrawl/internal/preprocess"
	"github.com/scrawlmath/scrawl/internal/segment"
	"github.com/scrawlmath/scrawl/internal/solve"
)

// Config carries the knobs a pipeline run needs.
type Config struct {
	// Preprocess controls cropping, denoising, and debug output.
	Preprocess preprocess.Options

	// InkThreshold is the fixed ink cutoff for the scanner.
	// Zero means segment.DefaultInkThreshold.
	InkThreshold uint8

	// Logger receives structured progress events. The zero value
	// discards them.
	Logger zerolog.Logger
}

// Result is the structured outcome of one pipeline run.
type Result struct {
	Equation string `json:"equation"`
	Solution string `json:"solution"`
}

// WriteLine serializes the result as a single JSON line and flushes, the
// line-oriented protocol the chat front-end consumes.
func (r *Result) WriteLine(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if f, ok := w.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
	return nil
}

// Pipeline runs the full image-to-solution chain. The classifier and
// solver are shared, read-only collaborators; everything with per-image
// state (raster, scanner, layout tracker) is created inside Run, so one
// Pipeline may serve concurrent runs over independent images.
type Pipeline struct {
	cfg        Config
	classifier classify.Classifier
	solver     solve.Solver
	log        zerolog.Logger
}

// New creates a pipeline around the given collaborators.
func New(cfg Config, classifier classify.Classifier, solver solve.Solver) *Pipeline {
	if cfg.InkThreshold == 0 {
		cfg.InkThreshold = segment.DefaultInkThreshold
	}
	return &Pipeline{
		cfg:        cfg,
		classifier: classifier,
		solver:     solver,
		log:        cfg.Logger,
	}
}

// Run processes one image end to end. Classifier failures are fatal for
// the run; solver failures are not (they surface in Result.Solution as
// the sentinel string).
func (p *Pipeline) Run(path string) (*Result, error) {
	raster, err := preprocess.Prepare(path, p.cfg.Preprocess)
	if err != nil {
		return nil, err
	}

	// The scan erases the raster, so grab the debug copy first.
	var preScan *image.Gray
	if p.cfg.Preprocess.DebugDir != "" {
		preScan = raster.Gray()
	}

	scanner := segment.NewScanner(raster, segment.WithInkThreshold(p.cfg.InkThreshold))
	glyphs := scanner.Scan()
	p.log.Debug().Int("glyphs", len(glyphs)).Str("image", path).Msg("segmentation complete")

	if p.cfg.Preprocess.DebugDir != "" {
		p.writeDebugImages(path, preScan, glyphs)
	}

	tokens := make([]equation.Token, 0, len(glyphs))
	for i, g := range glyphs {
		label, err := p.classifier.Classify(g.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to classify glyph %d: %w", i, err)
		}
		p.log.Debug().
			Int("glyph", i).
			Str("label", label).
			Stringer("role", g.Role).
			Msg("glyph classified")
		tokens = append(tokens, equation.Token{Label: label, Role: g.Role})
	}

	expr := equation.Reconstruct(tokens)
	solution := p.solver.Solve(expr)
	p.log.Info().Str("equation", expr).Str("solution", solution).Msg("run complete")

	return &Result{Equation: expr, Solution: solution}, nil
}

// writeDebugImages mirrors the original tooling's intermediate output:
// a segmentation overlay and one image per extracted glyph. Failures are
// logged, not fatal.
func (p *Pipeline) writeDebugImages(path string, preScan *image.Gray, glyphs []segment.Glyph) {
	dir := p.cfg.Preprocess.DebugDir
	base := filepath.Base(path)

	overlay := segment.Overlay(preScan, glyphs)
	if err := imaging.Save(overlay, filepath.Join(dir, "overlay_"+base+".png")); err != nil {
		p.log.Warn().Err(err).Msg("failed to write overlay image")
	}

	for i, g := range glyphs {
		name := fmt.Sprintf("%dseg_%s.png", i+1, base)
		if err := imaging.Save(g.Image, filepath.Join(dir, name)); err != nil {
			p.log.Warn().Err(err).Int("glyph", i).Msg("failed to write glyph image")
		}
	}
}
