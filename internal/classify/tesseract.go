package classify

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// singleCharWhitelist restricts Tesseract to the subset of the vocabulary
// it can express as single characters. Multi-character labels (alpha,
// beta, pi) are outside what this backend can produce.
const singleCharWhitelist = "()+-0123456789=abceijkxyz"

// Tesseract classifies glyphs with the Tesseract OCR engine in
// single-character page segmentation mode, restricted to the vocabulary.
//
// This is the stand-in backend for the external CNN classifier: same
// contract, same vocabulary subset, no model weights to ship. A Tesseract
// value is not safe for concurrent use; the underlying client holds
// per-recognition state.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates a Tesseract-backed classifier. tessdataPrefix
// optionally points at a tessdata directory; empty uses the system
// default. Setup failures wrap ErrUnavailable.
func NewTesseract(tessdataPrefix string) (*Tesseract, error) {
	client := gosseract.NewClient()

	if tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(tessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: failed to set tessdata prefix: %v", ErrUnavailable, err)
		}
	}
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to set language: %v", ErrUnavailable, err)
	}
	if err := client.SetWhitelist(singleCharWhitelist); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to set whitelist: %v", ErrUnavailable, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to set page segmentation mode: %v", ErrUnavailable, err)
	}

	return &Tesseract{client: client}, nil
}

// Classify recognizes one glyph and returns its vocabulary label.
func (t *Tesseract) Classify(glyph image.Image) (string, error) {
	prepared := PrepareGlyph(glyph, ModelEdge)

	// Tesseract needs a file path, so round-trip through a temp file.
	tmpPath, err := saveTemp(prepared)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpPath)

	if err := t.client.SetImage(tmpPath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}

	label := strings.TrimSpace(text)
	if !IsKnownLabel(label) {
		return "", fmt.Errorf("unrecognized symbol %q", label)
	}
	return label, nil
}

// Close releases the underlying Tesseract client.
func (t *Tesseract) Close() error {
	return t.client.Close()
}

func saveTemp(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "scrawl-glyph-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to encode glyph: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
