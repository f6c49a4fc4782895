package segment

import (
	"image"
)

// Raster is a mutable two-level intensity grid owned by a single pipeline
// run. Pixels are 0 (ink) or 255 (background) after binarization.
//
// The extractor mutates the raster in place: every ink pixel visited by the
// flood fill is overwritten with the background value. This erase-on-visit
// is the de-duplication mechanism for the outer scan, not an optimization,
// so a Raster must never be shared between concurrent runs.
type Raster struct {
	pix  [][]uint8
	rows int
	cols int
}

// NewRaster creates a raster of the given size filled with background (255).
func NewRaster(rows, cols int) *Raster {
	pix := make([][]uint8, rows)
	for r := range pix {
		row := make([]uint8, cols)
		for c := range row {
			row[c] = 255
		}
		pix[r] = row
	}
	return &Raster{pix: pix, rows: rows, cols: cols}
}

// RasterFromGray copies a grayscale image into a new raster.
// Pixel values are taken as-is; callers binarize before segmentation.
func RasterFromGray(g *image.Gray) *Raster {
	b := g.Bounds()
	ra := NewRaster(b.Dy(), b.Dx())
	for r := 0; r < ra.rows; r++ {
		for c := 0; c < ra.cols; c++ {
			ra.pix[r][c] = g.GrayAt(b.Min.X+c, b.Min.Y+r).Y
		}
	}
	return ra
}

// Rows returns the raster height in pixels.
func (r *Raster) Rows() int { return r.rows }

// Cols returns the raster width in pixels.
func (r *Raster) Cols() int { return r.cols }

// At returns the intensity at (row, col). No bounds checking.
func (r *Raster) At(row, col int) uint8 { return r.pix[row][col] }

// Set overwrites the intensity at (row, col). No bounds checking.
func (r *Raster) Set(row, col int, v uint8) { r.pix[row][col] = v }

// InkCount returns the number of ink pixels at or below the threshold.
func (r *Raster) InkCount(threshold uint8) int {
	n := 0
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			if r.pix[row][col] <= threshold {
				n++
			}
		}
	}
	return n
}

// Gray renders the raster as a grayscale image, for debug output.
func (r *Raster) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, r.cols, r.rows))
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			g.Pix[row*g.Stride+col] = r.pix[row][col]
		}
	}
	return g
}

// BoundingBox is an inclusive pixel-coordinate box over the raster.
// Invariant: RowMin <= RowMax and ColMin <= ColMax.
type BoundingBox struct {
	RowMin int `json:"row_min"`
	RowMax int `json:"row_max"`
	ColMin int `json:"col_min"`
	ColMax int `json:"col_max"`
}

// include grows the box to cover (row, col).
func (b *BoundingBox) include(row, col int) {
	if row < b.RowMin {
		b.RowMin = row
	}
	if row > b.RowMax {
		b.RowMax = row
	}
	if col < b.ColMin {
		b.ColMin = col
	}
	if col > b.ColMax {
		b.ColMax = col
	}
}

// merge grows the box to cover another box.
func (b *BoundingBox) merge(o BoundingBox) {
	b.include(o.RowMin, o.ColMin)
	b.include(o.RowMax, o.ColMax)
}

// Height returns the vertical extent in rows.
func (b BoundingBox) Height() int { return b.RowMax - b.RowMin }

// Width returns the horizontal extent in columns.
func (b BoundingBox) Width() int { return b.ColMax - b.ColMin }

// VerticalCenter returns the midpoint of the box's row span.
func (b BoundingBox) VerticalCenter() float64 {
	return float64(b.RowMin+b.RowMax) / 2
}
