// Package equation rebuilds an algebraic expression string from the
// ordered stream of classified glyph tokens.
//
// Reconstruction is a single left-to-right pass with bounds-guarded
// lookahead into the remaining tokens. It handles multi-digit numerals,
// implicit multiplication, superscript exponent runs, and the rewrite of
// '=' into a subtraction so the result can be solved by root finding.
package equation
