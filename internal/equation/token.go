package equation

import (
	"github.com/scrawlmath/scrawl/internal/segment"
)

// Token is one classified glyph: its symbol label and the layout role the
// tracker assigned to it. The ordered token sequence for one image is the
// sole input to reconstruction.
type Token struct {
	Label string
	Role  segment.LayoutRole
}

// Baseline is shorthand for a baseline-role token.
func Baseline(label string) Token {
	return Token{Label: label, Role: segment.RoleBaseline}
}

// Superscript is shorthand for a superscript-start token.
func Superscript(label string) Token {
	return Token{Label: label, Role: segment.RoleSuperscript}
}
