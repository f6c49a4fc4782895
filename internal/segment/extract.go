package segment

import (
	"image"
)

// DefaultInkThreshold is the fixed ink cutoff used by the scanner: a pixel
// at or below this intensity counts as ink. It is intentionally distinct
// from the data-dependent binarization threshold computed upstream.
const DefaultInkThreshold = 123

// Glyph is one segmented symbol: a square, white-padded crop of a group of
// connected ink components, its source bounding box, and the layout role
// assigned from the running centroid history.
type Glyph struct {
	Image *image.Gray
	Box   BoundingBox
	Role  LayoutRole
}

// Scanner extracts glyphs from a binarized raster. It owns the raster for
// the duration of the scan and mutates it in place (ink pixels are erased
// as they are visited). A Scanner is single-use and not safe for
// concurrent use; create one per pipeline run.
type Scanner struct {
	raster  *Raster
	ink     uint8
	jump    bool
	tracker LayoutTracker
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithInkThreshold overrides the fixed ink cutoff.
func WithInkThreshold(t uint8) Option {
	return func(s *Scanner) { s.ink = t }
}

// WithoutScanJump disables the horizontal scan-jump heuristic. Correctness
// does not depend on the jump; erase-on-visit already prevents revisits.
func WithoutScanJump() Option {
	return func(s *Scanner) { s.jump = false }
}

// NewScanner creates a scanner over the given raster.
func NewScanner(r *Raster, opts ...Option) *Scanner {
	s := &Scanner{raster: r, ink: DefaultInkThreshold, jump: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks the raster left to right, column by column, and returns the
// extracted glyphs in scan order.
//
// Components whose first ink pixel is reached within the same outer column
// pass are merged into a single glyph. After a flood fill the scan jumps
// ahead by half the component's vertical extent and restarts the column
// from the top, so vertically stacked strokes ('=', the dot of 'i') land
// in one glyph. A full column pass with no ink ends the group.
func (s *Scanner) Scan() []Glyph {
	rows, cols := s.raster.Rows(), s.raster.Cols()
	var glyphs []Glyph

	buf := newWhiteBuffer(rows, cols)
	var box BoundingBox
	found := false

	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			if s.raster.At(row, col) > s.ink {
				continue
			}

			comp, extent := s.flood(row, col, buf)
			if found {
				box.merge(comp)
			} else {
				box = comp
				found = true
			}

			if s.jump {
				if j := extent / 2; j != 0 {
					col += j
					row = -1
					if col >= cols {
						break
					}
				}
			}
		}

		if found {
			glyphs = append(glyphs, Glyph{
				Image: squareCrop(buf, box),
				Box:   box,
				Role:  s.tracker.Classify(box),
			})
			resetBuffer(buf, box)
			found = false
		}
	}

	return glyphs
}

// flood extracts one 8-connected ink component starting at (startRow,
// startCol) using an explicit stack. Visited ink pixels are erased to
// background in the raster and recorded as ink in buf. Neighbors are
// pushed unconditionally; the membership test happens at pop time, which
// admits duplicate stack entries but is idempotent and terminates.
//
// Returns the component's bounding box and its vertical extent. The box
// tracks every popped coordinate, so it includes the one-pixel ring of
// background neighbors around the ink.
func (s *Scanner) flood(startRow, startCol int, buf [][]uint8) (BoundingBox, int) {
	rows, cols := s.raster.Rows(), s.raster.Cols()
	box := BoundingBox{RowMin: startRow, RowMax: startRow, ColMin: startCol, ColMax: startCol}

	stack := make([][2]int, 0, 64)
	stack = append(stack, [2]int{startRow, startCol})

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		row, col := p[0], p[1]

		box.include(row, col)

		if s.raster.At(row, col) > s.ink {
			continue
		}
		s.raster.Set(row, col, 255)
		buf[row][col] = 0

		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				nr, nc := row+dr, col+dc
				if nr >= 0 && nr < rows && nc >= 0 && nc < cols {
					stack = append(stack, [2]int{nr, nc})
				}
			}
		}
	}

	return box, box.Height()
}

// squareCrop crops buf to the bounding box and pads the shorter axis
// symmetrically (floor/ceil split) with white so the result is square.
func squareCrop(buf [][]uint8, box BoundingBox) *image.Gray {
	h := box.RowMax - box.RowMin + 1
	w := box.ColMax - box.ColMin + 1

	var padTop, padLeft int
	side := h
	if w > h {
		side = w
		padTop = (w - h) / 2
	} else {
		padLeft = (h - w) / 2
	}

	g := image.NewGray(image.Rect(0, 0, side, side))
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			g.Pix[(r+padTop)*g.Stride+c+padLeft] = buf[box.RowMin+r][box.ColMin+c]
		}
	}
	return g
}

// newWhiteBuffer allocates a background-filled component buffer.
func newWhiteBuffer(rows, cols int) [][]uint8 {
	buf := make([][]uint8, rows)
	for r := range buf {
		row := make([]uint8, cols)
		for c := range row {
			row[c] = 255
		}
		buf[r] = row
	}
	return buf
}

// resetBuffer restores the box region of buf to background. The box covers
// every pixel written during the group's flood fills, so a full clear is
// unnecessary.
func resetBuffer(buf [][]uint8, box BoundingBox) {
	for r := box.RowMin; r <= box.RowMax; r++ {
		for c := box.ColMin; c <= box.ColMax; c++ {
			buf[r][c] = 255
		}
	}
}
