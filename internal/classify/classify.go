package classify

import (
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ModelEdge is the square input size the symbol model was trained on.
const ModelEdge = 45

// ErrUnavailable indicates the classifier backend could not be set up
// (missing model data, missing native library). It is fatal for a
// pipeline run; no partial reconstruction is attempted.
var ErrUnavailable = errors.New("classifier unavailable")

// Classifier maps one glyph image to a symbol label from the vocabulary.
//
// Implementations are expected to load any model state once at
// construction and hold it read-only afterwards, so a single Classifier
// may be shared across concurrent pipeline runs.
type Classifier interface {
	Classify(glyph image.Image) (string, error)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(glyph image.Image) (string, error)

// Classify calls f.
func (f ClassifierFunc) Classify(glyph image.Image) (string, error) {
	return f(glyph)
}

// PrepareGlyph converts a square glyph crop into the model's input
// format: a quarter-side white border around the glyph, resized to
// edge x edge pixels.
func PrepareGlyph(glyph image.Image, edge int) *image.NRGBA {
	b := glyph.Bounds()
	side := b.Dx()
	if b.Dy() > side {
		side = b.Dy()
	}
	border := side / 4

	canvas := imaging.New(side+2*border, side+2*border, color.White)
	canvas = imaging.PasteCenter(canvas, glyph)
	return imaging.Resize(canvas, edge, edge, imaging.Lanczos)
}
