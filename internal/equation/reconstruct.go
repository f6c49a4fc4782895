package equation

import (
	"strings"

	"github.com/scrawlmath/scrawl/internal/segment"
)

// Reconstruct synthesizes a single algebraic expression string from the
// ordered token stream of one image.
//
// The whole expression is wrapped in one outer group, and every '=' token
// is rewritten as ") - (" so that "lhs = rhs" becomes "(lhs)-(rhs)", an
// expression whose roots are the equation's solutions. Along the way the
// reconstructor assembles multi-digit numerals, inserts implicit
// multiplication, and turns superscript runs into ** exponents.
//
// At every intermediate step the output is a prefix of a well-formed
// parenthesized expression; the outer parentheses come from construction,
// not from balancing logic. An empty token stream yields "()".
func Reconstruct(tokens []Token) string {
	list := rewrite(tokens)
	n := len(list)

	// Built as a byte slice for one-byte lookbehind and trailing-'*' repair.
	expr := []byte{'('}

	for i := 1; i < n; i++ {
		label := list[i].Label

		switch {
		case isDigit(label):
			// Greedy multi-digit numeral assembly, then an implicit '*'
			// that the next structural token may strip again.
			for i < n && isDigit(list[i].Label) {
				expr = append(expr, list[i].Label...)
				i++
			}
			expr = append(expr, '*')
			i--

		case label == "(" || label == ")" || label == "+" || label == "-":
			if expr[len(expr)-1] == '*' {
				expr = expr[:len(expr)-1]
			}
			if label == "(" && len(expr) != 1 && !isOpenerOrSign(expr[len(expr)-1]) {
				expr = append(expr, '*')
			}
			expr = append(expr, label...)
			if label == ")" && i != n-1 && !closesGroup(list[i+1].Label) {
				// A digit straight after ')' reads as an exponent;
				// anything else is an implicit multiplication.
				if isDigit(list[i+1].Label) {
					expr = append(expr, '*')
				}
				expr = append(expr, '*')
			}

		case label == "pi" || label == "e" || label == "i":
			// Uppercase e and i so they parse as Euler's number and the
			// imaginary unit rather than bound symbols.
			if label == "e" || label == "i" {
				expr = append(expr, strings.ToUpper(label)...)
			} else {
				expr = append(expr, label...)
			}
			expr = append(expr, '*')

		default:
			// General symbol: own group, with any superscript run folded
			// in as an exponent before the group closes.
			expr = append(expr, '(')
			expr = append(expr, label...)
			if i+1 < n && list[i+1].Role == segment.RoleSuperscript {
				expr = append(expr, '*', '*')
				expr = append(expr, list[i+1].Label...)
				i += 2
				for i < n && list[i].Role == segment.RoleBaseline && isDigit(list[i].Label) {
					expr = append(expr, list[i].Label...)
					i++
				}
				i--
			}
			expr = append(expr, ')', '*')
		}
	}

	return string(expr)
}

// rewrite prepends the opening group, expands '=' into ") - (", and
// appends the closing group. Injected structural tokens carry the
// baseline role so they never trigger exponent handling.
func rewrite(tokens []Token) []Token {
	list := make([]Token, 0, len(tokens)+2)
	list = append(list, Baseline("("))
	for _, tok := range tokens {
		if tok.Label == "=" {
			list = append(list, Baseline(")"), Baseline("-"), Baseline("("))
			continue
		}
		list = append(list, tok)
	}
	return append(list, Baseline(")"))
}

func isDigit(label string) bool {
	return len(label) == 1 && label[0] >= '0' && label[0] <= '9'
}

func isOpenerOrSign(b byte) bool {
	return b == '(' || b == '+' || b == '-'
}

// closesGroup reports whether the next label makes multiplication after
// ')' unnecessary.
func closesGroup(label string) bool {
	return label == ")" || label == "+" || label == "-"
}
