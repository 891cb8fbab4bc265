package core

import (
	"iter"
	"unicode/utf8"
)

// Tokens yields the word tokens of a lower-cased sentence: maximal runs of
// Russian letters, joined by single hyphens into compounds ("когда-нибудь").
// Everything else separates tokens. The sequence can be ranged over any number of times.
func Tokens(sentence string) iter.Seq[string] {
	return func(yield func(string) bool) {
		i := 0
		for i < len(sentence) {
			r, size := utf8.DecodeRuneInString(sentence[i:])
			if !isBaseLetter(r) {
				i += size
				continue
			}

			start := i
			end := letterRunEnd(sentence, i)
			for end < len(sentence) && sentence[end] == '-' {
				next := end + 1
				if next >= len(sentence) {
					break
				}
				nr, _ := utf8.DecodeRuneInString(sentence[next:])
				if !isBaseLetter(nr) {
					break
				}
				end = letterRunEnd(sentence, next)
			}

			if !yield(sentence[start:end]) {
				return
			}
			i = end
		}
	}
}

func letterRunEnd(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isBaseLetter(r) {
			break
		}
		i += size
	}
	return i
}

func isBaseLetter(r rune) bool {
	return (r >= 'а' && r <= 'я') || r == 'ё'
}
