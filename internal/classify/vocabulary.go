package classify

// Vocabulary is the fixed, ordered label set of the symbol classifier.
// The index order matches the trained model's output layer; changing it
// breaks compatibility with existing model weights.
var Vocabulary = []string{
	"(", ")", "+", "-",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"=",
	"a", "alpha", "b", "beta", "c", "e", "i", "j", "k", "pi",
	"x", "y", "z",
}

var vocabularySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Vocabulary))
	for _, label := range Vocabulary {
		m[label] = struct{}{}
	}
	return m
}()

// IsKnownLabel reports whether label belongs to the classifier vocabulary.
func IsKnownLabel(label string) bool {
	_, ok := vocabularySet[label]
	return ok
}
