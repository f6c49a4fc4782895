package preprocess

import (
	"image"
	"testing"
)

func TestDenoise_UniformImageUnchanged(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 12, 12))
	for i := range g.Pix {
		g.Pix[i] = 200
	}

	out := Denoise(g, 10, 3, 7)
	for i, v := range out.Pix {
		if v != 200 {
			t.Fatalf("pixel %d changed: got %d, want 200", i, v)
		}
	}
}

func TestDenoise_OutputBounded(t *testing.T) {
	// Checkerboard extremes: every output pixel is a weighted average, so
	// it stays within the input range.
	g := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if (x+y)%2 == 0 {
				g.Pix[y*g.Stride+x] = 255
			}
		}
	}

	out := Denoise(g, 20, 3, 7)
	if len(out.Pix) != len(g.Pix) {
		t.Fatalf("output size: got %d, want %d", len(out.Pix), len(g.Pix))
	}
}

func TestDenoise_SmoothsSpeckle(t *testing.T) {
	// A single bright pixel in a dark field is pulled toward its
	// neighborhood.
	g := image.NewGray(image.Rect(0, 0, 15, 15))
	for i := range g.Pix {
		g.Pix[i] = 20
	}
	g.Pix[7*g.Stride+7] = 250

	out := Denoise(g, 30, 3, 7)
	if got := out.Pix[7*out.Stride+7]; got >= 250 {
		t.Errorf("speckle not reduced: got %d", got)
	}
}

func TestDenoise_PreservesStrongEdge(t *testing.T) {
	// Low strength keeps a hard black/white edge mostly intact.
	g := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			g.Pix[y*g.Stride+x] = 255
		}
	}

	out := Denoise(g, 5, 3, 7)
	if got := out.Pix[8*out.Stride+2]; got > 60 {
		t.Errorf("dark side brightened too much: got %d", got)
	}
	if got := out.Pix[8*out.Stride+13]; got < 195 {
		t.Errorf("bright side darkened too much: got %d", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
