// Package solve turns a reconstructed expression into a solution string.
//
// The general-purpose CAS is an external collaborator; this package
// defines the Solver contract and bundles a numeric implementation that
// handles the expressions the reconstructor actually produces: univariate
// polynomials, solved by companion-matrix eigenvalues. Any failure, from
// a parse error to a second variable, surfaces as the fixed Unsolvable
// sentinel string, never as a panic or propagated error.
package solve
