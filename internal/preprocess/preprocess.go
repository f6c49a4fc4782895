package preprocess

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"github.com/scrawlmath/scrawl/internal/segment"
)

// Options controls preprocessing.
type Options struct {
	// CropScale sets how much of the image height is kept for the
	// handwriting region: rows 0 through h/2 + h*CropScale/2 survive the
	// crop. At the default 0.40 that keeps the top 70% of the image.
	CropScale float64

	// DenoiseStrength is the filtering strength h of the non-local-means
	// denoiser. Zero disables denoising.
	DenoiseStrength float64

	// DebugDir, if non-empty, receives the intermediate binarized image
	// as gray_<input name>.png.
	DebugDir string
}

// DefaultOptions returns the preprocessing defaults matching the trained
// classifier's expectations.
func DefaultOptions() Options {
	return Options{
		CropScale:       0.40,
		DenoiseStrength: 10,
	}
}

// Prepare loads an image file and runs the full preprocessing chain:
// crop to the handwriting region, denoise, grayscale, and binarize.
// The returned raster is exclusively owned by the caller.
func Prepare(path string, opts Options) (*segment.Raster, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}

	raster := PrepareImage(img, opts)

	if opts.DebugDir != "" {
		name := "gray_" + stripExt(filepath.Base(path)) + ".png"
		if err := writeDebug(raster, filepath.Join(opts.DebugDir, name)); err != nil {
			return nil, err
		}
	}

	return raster, nil
}

// PrepareImage runs the preprocessing chain on an already decoded image.
func PrepareImage(img image.Image, opts Options) *segment.Raster {
	cropped := cropHandwriting(img, opts.CropScale)

	gray := toGray(effect.Grayscale(cropped))

	if opts.DenoiseStrength > 0 {
		gray = Denoise(gray, opts.DenoiseStrength, 7, 21)
	}

	return binarize(gray)
}

// cropHandwriting keeps the top portion of the image where the equation
// is written. The kept height is h/2 + h*scale/2, full width.
func cropHandwriting(img image.Image, scale float64) image.Image {
	b := img.Bounds()
	h := b.Dy()
	bottom := int(float64(h)/2 + float64(h)*scale/2)
	if bottom > h {
		bottom = h
	}
	if bottom < 1 {
		bottom = 1
	}
	return imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+bottom))
}

// binarize computes the weighted min/max threshold over the whole image
// and produces a two-level raster: 0 (ink) below the threshold, 255
// (background) at or above it.
//
// The 0.4*max + 0.6*min weighting is a fixed behavioral contract. It is
// sensitive to outlier pixels and is not Otsu's method; the trained
// classifier expects exactly this binarization.
func binarize(g *image.Gray) *segment.Raster {
	b := g.Bounds()
	rows, cols := b.Dy(), b.Dx()

	minI, maxI := uint8(255), uint8(0)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := g.GrayAt(b.Min.X+col, b.Min.Y+row).Y
			if v > maxI {
				maxI = v
			}
			if v < minI {
				minI = v
			}
		}
	}
	threshold := 0.4*float64(maxI) + 0.6*float64(minI)

	raster := segment.NewRaster(rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := g.GrayAt(b.Min.X+col, b.Min.Y+row).Y
			if float64(v) < threshold {
				raster.Set(row, col, 0)
			} else {
				raster.Set(row, col, 255)
			}
		}
	}
	return raster
}

// toGray collapses an already grayscaled RGBA image to single channel.
// The channels are equal after effect.Grayscale, so the red channel is
// the luminance.
func toGray(img *image.RGBA) *image.Gray {
	b := img.Bounds()
	g := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.SetGray(x, y, color.Gray{Y: img.RGBAAt(x, y).R})
		}
	}
	return g
}

func writeDebug(raster *segment.Raster, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create debug dir: %w", err)
	}
	if err := imaging.Save(raster.Gray(), path); err != nil {
		return fmt.Errorf("failed to write debug image: %w", err)
	}
	return nil
}

func stripExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
