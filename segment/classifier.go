package segment

import "unicode"

// Classifier tells word iteration and word boundary detection about the
// nature of characters.
type Classifier interface {
	IsSeparator(r rune) bool   // white space and other word separators
	IsPunctuation(r rune) bool // punctuation, possibly trailing a word
	IsWordForming(r rune) bool // letters, marks and digits
}

// DefaultClassifier returns a classifier based on the Unicode general
// categories.
func DefaultClassifier() Classifier {
	return unicodeClassifier{}
}

type unicodeClassifier struct{}

func (unicodeClassifier) IsSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r)
}

func (unicodeClassifier) IsPunctuation(r rune) bool {
	return unicode.IsPunct(r)
}

func (unicodeClassifier) IsWordForming(r rune) bool {
	return unicode.In(r, unicode.L, unicode.M, unicode.Nd)
}
