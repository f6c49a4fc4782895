package preprocess

import (
	"image"
	"math"
)

// Denoise applies a non-local-means filter to a grayscale image to reduce
// speckle noise before thresholding.
//
// For each pixel, patches inside a search window are compared against the
// patch around the pixel; window pixels are averaged with weights that
// fall off exponentially with the mean squared patch difference. Pixels
// on similar strokes therefore reinforce each other while isolated noise
// is averaged away.
//
// Parameters:
//   - strength: filtering strength h. Larger values remove more noise but
//     blur stroke edges. 10 works well for phone photos of paper.
//   - patchSize: side of the comparison patch, odd. Typical: 7.
//   - windowSize: side of the search window, odd. Typical: 21.
//
// Borders are handled by clamping patch coordinates to the image.
func Denoise(g *image.Gray, strength float64, patchSize, windowSize int) *image.Gray {
	b := g.Bounds()
	width, height := b.Dx(), b.Dy()

	out := image.NewGray(b)
	patchHalf := patchSize / 2
	windowHalf := windowSize / 2
	h2 := strength * strength
	patchArea := float64(patchSize * patchSize)

	at := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(g.Pix[y*g.Stride+x])
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum, weightSum float64

			for wy := -windowHalf; wy <= windowHalf; wy++ {
				for wx := -windowHalf; wx <= windowHalf; wx++ {
					cx, cy := x+wx, y+wy
					if cx < 0 || cx >= width || cy < 0 || cy >= height {
						continue
					}

					// Mean squared difference between the patch here
					// and the patch at the candidate pixel.
					var dist float64
					for py := -patchHalf; py <= patchHalf; py++ {
						for px := -patchHalf; px <= patchHalf; px++ {
							d := at(x+px, y+py) - at(cx+px, cy+py)
							dist += d * d
						}
					}
					dist /= patchArea

					w := math.Exp(-dist / h2)
					sum += w * at(cx, cy)
					weightSum += w
				}
			}

			out.Pix[y*out.Stride+x] = uint8(sum/weightSum + 0.5)
		}
	}

	return out
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
