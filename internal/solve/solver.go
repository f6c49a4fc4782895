package solve

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Unsolvable is the literal sentinel returned whenever an expression
// cannot be solved or parsed. It is a user-visible "no answer" state, not
// an error; solver failures are never propagated as Go errors.
const Unsolvable = "Error occured while Solving Equation"

// Solver finds the roots of a reconstructed expression and reports them
// as a solution-set string.
type Solver interface {
	Solve(expression string) string
}

// SolverFunc adapts a plain function to the Solver interface.
type SolverFunc func(expression string) string

// Solve calls f.
func (f SolverFunc) Solve(expression string) string {
	return f(expression)
}

const rootEps = 1e-8

// PolynomialSolver is the bundled numeric solver. It parses the
// reconstructor's closed grammar into univariate polynomial coefficients
// and extracts roots as the eigenvalues of the companion matrix.
//
// Expressions that are not univariate real-coefficient polynomials
// (a second variable, an imaginary-unit coefficient) yield the
// Unsolvable sentinel. The zero value is ready to use and stateless.
type PolynomialSolver struct{}

// Solve returns the solution set of expression = 0 in sympy's set
// notation: "{-1.5}", "{-1, 1}", "EmptySet" for an unsatisfiable
// constant, "Complexes" for the identically zero expression, or the
// Unsolvable sentinel.
func (PolynomialSolver) Solve(expression string) string {
	p, _, err := parsePolynomial(expression)
	if err != nil {
		return Unsolvable
	}

	p = p.trim()
	switch len(p) {
	case 0:
		// 0 = 0 holds everywhere.
		return "Complexes"
	case 1:
		// Nonzero constant: no solution.
		return "EmptySet"
	}

	coeffs := make([]float64, len(p))
	for i, c := range p {
		if math.Abs(imag(c)) > rootEps {
			return Unsolvable
		}
		coeffs[i] = real(c)
	}

	roots, err := realPolyRoots(coeffs)
	if err != nil {
		return Unsolvable
	}

	return formatSet(roots)
}

// collapseEps is the tolerance for treating two eigenvalues as the same
// root. Eigenvalue scatter for a root of multiplicity m grows like
// machine-epsilon^(1/m), so this sits well above rootEps.
const collapseEps = 1e-4

// formatSet renders roots as "{r1, r2, ...}" sorted by real then
// imaginary part. Repeated eigenvalues of the companion matrix scatter
// around the true multiple root; each cluster is collapsed to its mean,
// which cancels the scatter (the eigenvalue sum tracks the matrix trace).
func formatSet(roots []complex128) string {
	sort.Slice(roots, func(i, j int) bool {
		if real(roots[i]) != real(roots[j]) {
			return real(roots[i]) < real(roots[j])
		}
		return imag(roots[i]) < imag(roots[j])
	})

	var parts []string
	for i := 0; i < len(roots); {
		sum := roots[i]
		j := i + 1
		for j < len(roots) && closeTo(roots[j], roots[j-1]) {
			sum += roots[j]
			j++
		}
		parts = append(parts, formatRoot(sum/complex(float64(j-i), 0)))
		i = j
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func closeTo(a, b complex128) bool {
	return math.Abs(real(a)-real(b)) < collapseEps && math.Abs(imag(a)-imag(b)) < collapseEps
}

// formatRoot renders one root, dropping a negligible imaginary part and
// using sympy-style b*I notation otherwise.
func formatRoot(z complex128) string {
	re, im := roundTidy(real(z)), roundTidy(imag(z))

	if im == 0 {
		return formatFloat(re)
	}

	var b strings.Builder
	if re != 0 {
		b.WriteString(formatFloat(re))
		if im > 0 {
			b.WriteString(" + ")
		} else {
			b.WriteString(" - ")
			im = -im
		}
	} else if im < 0 {
		b.WriteString("-")
		im = -im
	}

	if im == 1 {
		b.WriteString("I")
	} else {
		b.WriteString(formatFloat(im))
		b.WriteString("*I")
	}
	return b.String()
}

// roundTidy snaps eigenvalue noise to 9 decimal places so exact roots
// print exactly.
func roundTidy(v float64) float64 {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		return 0
	}
	return r
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
