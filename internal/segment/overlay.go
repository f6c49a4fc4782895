package segment

import (
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Overlay renders glyph bounding boxes onto a copy of the source image,
// one evenly spaced hue per glyph, for debugging segmentation. Superscript
// glyphs get a thicker frame so layout decisions are visible at a glance.
func Overlay(src image.Image, glyphs []Glyph) *image.RGBA {
	bounds := src.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, src, bounds.Min, draw.Src)

	if len(glyphs) == 0 {
		return result
	}

	for i, g := range glyphs {
		hue := float64(i) * 360.0 / float64(len(glyphs))
		c := colorful.Hsv(hue, 0.9, 0.9)
		rgba := color.RGBA{uint8(c.R * 255), uint8(c.G * 255), uint8(c.B * 255), 255}

		thickness := 1
		if g.Role == RoleSuperscript {
			thickness = 2
		}
		drawBox(result, g.Box, rgba, thickness)
	}

	return result
}

// drawBox draws a rectangle outline in raster coordinates. Pixels outside
// the image are skipped.
func drawBox(img *image.RGBA, box BoundingBox, c color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		for col := box.ColMin - t; col <= box.ColMax+t; col++ {
			setPixel(img, box.RowMin-t, col, c)
			setPixel(img, box.RowMax+t, col, c)
		}
		for row := box.RowMin - t; row <= box.RowMax+t; row++ {
			setPixel(img, row, box.ColMin-t, c)
			setPixel(img, row, box.ColMax+t, c)
		}
	}
}

func setPixel(img *image.RGBA, row, col int, c color.RGBA) {
	b := img.Bounds()
	x, y := b.Min.X+col, b.Min.Y+row
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		img.SetRGBA(x, y, c)
	}
}
