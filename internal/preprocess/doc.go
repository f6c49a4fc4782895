// Package preprocess turns a photo of a handwritten equation into a
// binarized raster ready for segmentation.
//
// The chain is: load, crop to the handwriting region (the top portion of
// the frame, per the input convention), non-local-means denoise,
// grayscale, then binarize with a data-dependent threshold of
// 0.4*max + 0.6*min over the whole image. The weighting is a behavioral
// contract (the downstream classifier was trained against it) even though
// it is brittle under uneven lighting.
package preprocess
