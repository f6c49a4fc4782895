package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/scrawlmath/scrawl/internal/classify"
	"github.com/scrawlmath/scrawl/internal/pipeline"
	"github.com/scrawlmath/scrawl/internal/preprocess"
	"github.com/scrawlmath/scrawl/internal/solve"
)

// writeDigitImage writes a PNG with a single ink blob, so the pipeline
// produces exactly one glyph.
func writeDigitImage(t *testing.T, path string) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 50, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 50; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	for y := 20; y < 40; y++ {
		for x := 15; x < 30; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(in string, out *bytes.Buffer) *Server {
	constant := classify.ClassifierFunc(func(image.Image) (string, error) {
		return "7", nil
	})
	cfg := pipeline.Config{
		Preprocess: preprocess.Options{CropScale: 0.40, DenoiseStrength: 0},
	}
	pipe := pipeline.New(cfg, constant, solve.PolynomialSolver{})
	return New(pipe, strings.NewReader(in), out, zerolog.Nop())
}

func TestServer_BarePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seven.png")
	writeDigitImage(t, path)

	var out bytes.Buffer
	srv := newTestServer(path+"\n", &out)
	if err := srv.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if resp.Equation != "(7)" {
		t.Errorf("equation: got %q, want %q", resp.Equation, "(7)")
	}
	if resp.Solution != "EmptySet" {
		t.Errorf("solution: got %q, want %q", resp.Solution, "EmptySet")
	}
	if resp.Error != "" {
		t.Errorf("unexpected error field: %q", resp.Error)
	}
}

func TestServer_JSONRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seven.png")
	writeDigitImage(t, path)

	req, _ := json.Marshal(Request{Path: path})

	var out bytes.Buffer
	srv := newTestServer(string(req)+"\n", &out)
	if err := srv.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if resp.Equation != "(7)" {
		t.Errorf("equation: got %q, want %q", resp.Equation, "(7)")
	}
}

func TestServer_BadPathBecomesErrorResponse(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.png")

	var out bytes.Buffer
	srv := newTestServer(missing+"\n", &out)
	if err := srv.Run(context.Background()); err != nil {
		t.Fatalf("Run must not fail on a per-request error: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error field in response")
	}
	if resp.Equation != "" || resp.Solution != "" {
		t.Errorf("error response carries result fields: %+v", resp)
	}
}

func TestServer_MultipleRequests(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writeDigitImage(t, good)
	bad := filepath.Join(dir, "bad.png")

	in := fmt.Sprintf("%s\n\n%s\n", good, bad)

	var out bytes.Buffer
	srv := newTestServer(in, &out)
	if err := srv.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Blank lines are skipped; two requests give two response lines.
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("response lines: got %d, want 2", len(lines))
	}

	var first, second Response
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}
	if first.Error != "" {
		t.Errorf("first response errored: %q", first.Error)
	}
	if second.Error == "" {
		t.Error("second response should carry an error")
	}
}

func TestServer_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	srv := newTestServer("", &out)
	if err := srv.Run(context.Background()); err != nil {
		t.Fatalf("Run on empty input: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestServer_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	srv := newTestServer("some-line\n", &out)
	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"bare path", "/tmp/eq.png", "/tmp/eq.png"},
		{"json object", `{"path":"/tmp/eq.png"}`, "/tmp/eq.png"},
		{"malformed json falls back to path", `{broken`, "{broken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRequest([]byte(tt.line)); got.Path != tt.want {
				t.Errorf("parseRequest(%q): got %q, want %q", tt.line, got.Path, tt.want)
			}
		})
	}
}
