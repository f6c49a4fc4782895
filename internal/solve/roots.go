package solve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// realPolyRoots returns all complex roots of the polynomial with the
// given real coefficients (coeffs[i] is the coefficient of x^i) as the
// eigenvalues of its companion matrix.
//
// The caller guarantees degree >= 1 after trimming.
func realPolyRoots(coeffs []float64) ([]complex128, error) {
	n := len(coeffs) - 1
	if n < 1 {
		return nil, fmt.Errorf("polynomial has no roots (degree %d)", n)
	}
	lead := coeffs[n]
	if math.Abs(lead) < rootEps {
		return nil, fmt.Errorf("leading coefficient is zero")
	}

	if n == 1 {
		return []complex128{complex(-coeffs[0]/lead, 0)}, nil
	}

	// Companion matrix: ones on the subdiagonal, the monic-normalized
	// negated coefficients down the last column.
	c := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		c.Set(i, i-1, 1)
	}
	for i := 0; i < n; i++ {
		c.Set(i, n-1, -coeffs[i]/lead)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(c, mat.EigenNone); !ok {
		return nil, fmt.Errorf("eigenvalue decomposition failed")
	}

	return eig.Values(nil), nil
}
