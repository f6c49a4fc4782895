package classify

import (
	"image"
	"image/png"
	"os"
	"strings"
	"testing"
)

func TestSingleCharWhitelist_CoversVocabulary(t *testing.T) {
	for _, label := range Vocabulary {
		if len(label) != 1 {
			continue
		}
		if !strings.Contains(singleCharWhitelist, label) {
			t.Errorf("label %q missing from whitelist", label)
		}
	}

	// Every whitelist character maps back to a vocabulary label.
	for _, c := range singleCharWhitelist {
		if !IsKnownLabel(string(c)) {
			t.Errorf("whitelist character %q not in vocabulary", c)
		}
	}
}

func TestSaveTemp(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, ModelEdge, ModelEdge))

	path, err := saveTemp(img)
	if err != nil {
		t.Fatalf("saveTemp: %v", err)
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("temp file missing: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("temp file is not a PNG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != ModelEdge || b.Dy() != ModelEdge {
		t.Errorf("decoded size: got %dx%d, want %dx%d", b.Dx(), b.Dy(), ModelEdge, ModelEdge)
	}
}
