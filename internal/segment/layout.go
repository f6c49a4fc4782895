package segment

// LayoutRole classifies a glyph's vertical position relative to the glyph
// extracted before it.
type LayoutRole int

const (
	// RoleBaseline marks a glyph sitting on the nominal writing line.
	RoleBaseline LayoutRole = iota

	// RoleSuperscript marks a glyph whose bottom edge sits entirely above
	// the previous glyph's vertical center: the start of an exponent run.
	RoleSuperscript

	// RoleSubscript marks a glyph whose center sits below the previous
	// glyph's bottom edge. The reconstructor treats it like baseline;
	// the tag exists so subscript handling has somewhere to land later.
	RoleSubscript
)

// String returns the role name for logging.
func (r LayoutRole) String() string {
	switch r {
	case RoleSuperscript:
		return "superscript"
	case RoleSubscript:
		return "subscript"
	default:
		return "baseline"
	}
}

// LayoutTracker assigns layout roles by tracking bounding-box centroids
// across successively extracted glyphs. One tracker per pipeline run;
// glyphs must be presented in left-to-right scan order.
//
// The zero value is ready to use. Its zero prevCenter/prevBottom sentinels
// mean the very first glyph can never be classified superscript: its bottom
// edge is never negative, so the first comparison always fails.
type LayoutTracker struct {
	prevCenter float64
	prevBottom float64
}

// Classify returns the layout role for a glyph with the given bounding box
// and updates the running centroid state.
func (t *LayoutTracker) Classify(box BoundingBox) LayoutRole {
	center := box.VerticalCenter()

	role := RoleBaseline
	switch {
	case float64(box.RowMax) < t.prevCenter:
		role = RoleSuperscript
	case center > t.prevBottom:
		role = RoleSubscript
	}

	t.prevCenter = center
	t.prevBottom = float64(box.RowMax)
	return role
}
