// Package sentiment scores free-text diary comments and reviews with
// an AFINN-style valence lexicon. The analyzer is a stateless value
// handed to the stats engine, so scoring rules can be swapped without
// touching derivation code.
package sentiment

import (
	"strings"
	"unicode"
)

// Result holds the outcome of analyzing one text blob.
type Result struct {
	// Score is the summed valence of all scored words.
	Score int
	// Positive and Negative list the matched words, in encounter order.
	Positive []string
	Negative []string
}

// Analyzer scores text against a valence lexicon. The zero value is
// not usable; construct with New.
type Analyzer struct {
	lexicon map[string]int
}

// New returns an analyzer backed by the built-in lexicon.
func New() *Analyzer {
	return &Analyzer{lexicon: lexicon}
}

// NewWithLexicon returns an analyzer with a custom word-valence table.
func NewWithLexicon(words map[string]int) *Analyzer {
	return &Analyzer{lexicon: words}
}

// Analyze tokenizes text on non-letter boundaries, lowercases each
// token, and sums lexicon valences. Unknown words score zero and are
// not recorded.
func (a *Analyzer) Analyze(text string) Result {
	var res Result
	for _, word := range tokenize(text) {
		score, ok := a.lexicon[word]
		if !ok {
			continue
		}
		res.Score += score
		if score > 0 {
			res.Positive = append(res.Positive, word)
		} else {
			res.Negative = append(res.Negative, word)
		}
	}
	return res
}

// Intensity is the mean valence per scored word, scaled by the maximum
// word valence (5) and clamped to [-1, 1]. Text with no scored words
// is neutral.
func (a *Analyzer) Intensity(text string) float64 {
	res := a.Analyze(text)
	scored := len(res.Positive) + len(res.Negative)
	if scored == 0 {
		return 0
	}

	intensity := float64(res.Score) / float64(scored) / maxValence
	return max(-1, min(1, intensity))
}

const maxValence = 5.0

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}
