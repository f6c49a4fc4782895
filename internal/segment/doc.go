// Package segment extracts handwritten symbols from a binarized raster.
//
// The scanner walks the raster in left-to-right column order. Each ink
// pixel it reaches seeds an iterative 8-connected flood fill that erases
// the component from the raster (the erase is the visited-set) while
// copying it into a white component buffer. Components reached within the
// same column pass are merged into one glyph, which is cropped to its
// bounding box and padded to a square.
//
// A LayoutTracker runs alongside extraction and tags each glyph as
// baseline, superscript, or subscript by comparing its bounding box
// against the previous glyph's vertical center and bottom edge. Tracker
// state is per scanner instance, so independent rasters can be processed
// concurrently.
//
// # Coordinate System
//
// Raster coordinates are (row, col) with (0, 0) at the top-left. Bounding
// boxes are inclusive on all four edges.
package segment
