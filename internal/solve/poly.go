package solve

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// poly is a univariate polynomial; poly[i] is the coefficient of x^i.
// Coefficients are complex so the imaginary unit survives parsing; the
// root finder decides whether it can handle them.
type poly []complex128

func constant(c complex128) poly { return poly{c} }

// variable is the monomial x.
func variablePoly() poly { return poly{0, 1} }

func (p poly) add(q poly) poly {
	r := make(poly, maxLen(p, q))
	copy(r, p)
	for i, c := range q {
		r[i] += c
	}
	return r
}

func (p poly) sub(q poly) poly {
	r := make(poly, maxLen(p, q))
	copy(r, p)
	for i, c := range q {
		r[i] -= c
	}
	return r
}

func (p poly) mul(q poly) poly {
	if len(p) == 0 || len(q) == 0 {
		return poly{}
	}
	r := make(poly, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		for j, b := range q {
			r[i+j] += a * b
		}
	}
	return r
}

func (p poly) pow(n int) poly {
	r := constant(1)
	for i := 0; i < n; i++ {
		r = r.mul(p)
	}
	return r
}

// trim drops negligible high-order coefficients.
func (p poly) trim() poly {
	n := len(p)
	for n > 0 && math.Abs(real(p[n-1])) < rootEps && math.Abs(imag(p[n-1])) < rootEps {
		n--
	}
	return p[:n]
}

func maxLen(p, q poly) int {
	if len(p) > len(q) {
		return len(p)
	}
	return len(q)
}

// parser is a recursive-descent parser over the reconstructor's closed
// grammar: integers, identifiers, the constants pi/E/I, parentheses, and
// the operators + - * **.
type parser struct {
	input    string
	pos      int
	variable string
}

// parsePolynomial parses an expression into polynomial coefficients over
// its single variable. The variable name is returned for reporting; it is
// empty for constant expressions. A second distinct variable is an error.
func parsePolynomial(expression string) (poly, string, error) {
	p := &parser{input: expression}
	result, err := p.parseExpr()
	if err != nil {
		return nil, "", err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, "", fmt.Errorf("unexpected %q at offset %d", p.input[p.pos], p.pos)
	}
	return result, p.variable, nil
}

// parseExpr := ['+'|'-'] term (('+'|'-') term)*
func (p *parser) parseExpr() (poly, error) {
	negate := false
	p.skipSpace()
	if p.peek() == '+' || p.peek() == '-' {
		negate = p.peek() == '-'
		p.pos++
	}

	result, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if negate {
		result = constant(0).sub(result)
	}

	for {
		p.skipSpace()
		op := p.peek()
		if op != '+' && op != '-' {
			return result, nil
		}
		p.pos++

		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op == '+' {
			result = result.add(term)
		} else {
			result = result.sub(term)
		}
	}
}

// parseTerm := factor ('*' factor)*
func (p *parser) parseTerm() (poly, error) {
	result, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		p.skipSpace()
		// A single '*' is multiplication; "**" belongs to the factor.
		if p.peek() != '*' || p.peekAt(1) == '*' {
			return result, nil
		}
		p.pos++

		factor, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		result = result.mul(factor)
	}
}

// parseFactor := atom ('**' integer)*
func (p *parser) parseFactor() (poly, error) {
	result, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		p.skipSpace()
		if p.peek() != '*' || p.peekAt(1) != '*' {
			return result, nil
		}
		p.pos += 2

		exp, err := p.parseInteger()
		if err != nil {
			return nil, err
		}
		result = result.pow(exp)
	}
}

func (p *parser) parseAtom() (poly, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, fmt.Errorf("missing ')' at offset %d", p.pos)
		}
		p.pos++
		return inner, nil

	case c >= '0' && c <= '9':
		n, err := p.parseInteger()
		if err != nil {
			return nil, err
		}
		return constant(complex(float64(n), 0)), nil

	case unicode.IsLetter(rune(c)):
		return p.parseIdentifier()

	default:
		return nil, fmt.Errorf("unexpected input at offset %d", p.pos)
	}
}

func (p *parser) parseIdentifier() (poly, error) {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	name := p.input[start:p.pos]

	switch name {
	case "pi":
		return constant(complex(math.Pi, 0)), nil
	case "E":
		return constant(complex(math.E, 0)), nil
	case "I":
		return constant(complex(0, 1)), nil
	}

	if p.variable == "" {
		p.variable = name
	} else if p.variable != name {
		return nil, fmt.Errorf("second variable %q (already solving for %q)", name, p.variable)
	}
	return variablePoly(), nil
}

func (p *parser) parseInteger() (int, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("expected number at offset %d", p.pos)
	}
	n := 0
	for _, c := range p.input[start:p.pos] {
		n = n*10 + int(c-'0')
		if n > 1<<20 {
			return 0, fmt.Errorf("number too large at offset %d", start)
		}
	}
	return n, nil
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) peekAt(offset int) byte {
	if p.pos+offset >= len(p.input) {
		return 0
	}
	return p.input[p.pos+offset]
}

func (p *parser) skipSpace() {
	p.pos += len(p.input[p.pos:]) - len(strings.TrimLeft(p.input[p.pos:], " \t"))
}

func isIdentChar(c byte) bool {
	return unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)) || c == '_'
}
