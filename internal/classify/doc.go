// Package classify maps segmented glyph images to symbol labels.
//
// The symbol model itself is an external collaborator; this package
// defines the Classifier contract, the fixed 28-label vocabulary in model
// index order, and the glyph input preparation (white border plus resize
// to the 45x45 model edge). A Tesseract-backed implementation is bundled
// as a weights-free stand-in for the CNN.
package classify
