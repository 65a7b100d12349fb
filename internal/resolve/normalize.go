package resolve

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// key is a name prepared for comparison.
type key struct {
	exact  string // folded tokens joined without separators
	sorted string // folded tokens sorted and joined by a single space
}

// tokens case-folds s and splits it on anything that is not a letter or digit.
func tokens(s string) []string {
	folded := cases.Fold().String(s)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func normalize(s string) key {
	toks := tokens(s)
	exact := strings.Join(toks, "")
	slices.Sort(toks)
	return key{exact: exact, sorted: strings.Join(toks, " ")}
}

// score is a token-order-insensitive similarity in [0,100]: the Levenshtein
// ratio of the sorted token strings, rounded half up.
func score(a, b key) int {
	if a.exact == b.exact {
		return 100
	}
	longest := max(len([]rune(a.sorted)), len([]rune(b.sorted)))
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a.sorted, b.sorted)
	return int(math.Floor(100*float64(longest-dist)/float64(longest) + 0.5))
}
