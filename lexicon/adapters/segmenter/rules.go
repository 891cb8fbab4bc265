// Package segmenter splits a lower-cased document into sentences.
package segmenter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"yadro.com/lexicon/lexicon/core"
)

// сокращения, после точки которых предложение не заканчивается.
// Однобуквенные (т.е., т.д., г.) обрабатываются отдельно как инициалы.
var abbreviations = map[string]bool{
	"гг": true, "др": true, "см": true, "стр": true, "им": true, "ул": true,
	"рис": true, "напр": true, "тыс": true, "млн": true, "млрд": true,
	"руб": true, "коп": true, "проф": true, "доц": true, "акад": true,
	"ср": true, "пр": true,
}

// однобуквенные слова, которые заканчивают предложение, а не инициалы
var notInitials = map[string]bool{
	"я": true,
}

// New returns the segmenter registered under name: "rules" or "prose".
func New(name string) (core.Segmenter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rules":
		return Rules{}, nil
	case "prose":
		return Prose{}, nil
	default:
		return nil, fmt.Errorf("unknown segmenter %q", name)
	}
}

// Rules splits on terminal punctuation followed by whitespace and on blank lines.
type Rules struct{}

func (Rules) Sentences(text string) []string {
	var sentences []string
	emit := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}

	start := 0
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])

		if r == '\n' {
			if j, ok := blankLine(text, i); ok {
				emit(text[start:i])
				start, i = j, j
				continue
			}
		}

		if !isTerminal(r) {
			i += size
			continue
		}

		j := i + size
		for j < len(text) {
			nr, ns := utf8.DecodeRuneInString(text[j:])
			if !isTerminal(nr) {
				break
			}
			j += ns
		}
		single := r == '.' && j == i+size

		// закрывающие кавычки и скобки остаются в текущем предложении
		for j < len(text) {
			nr, ns := utf8.DecodeRuneInString(text[j:])
			if !isCloser(nr) {
				break
			}
			j += ns
		}

		if single && isAbbreviation(text, i) {
			i = j
			continue
		}
		if j == len(text) || followedBySpace(text, j) {
			emit(text[start:j])
			start = j
		}
		i = j
	}
	emit(text[start:])

	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

func isCloser(r rune) bool {
	return r == '"' || r == '»' || r == ')' || r == '\''
}

func followedBySpace(s string, pos int) bool {
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return unicode.IsSpace(r)
}

// blankLine reports whether the newline at pos starts a run of whitespace with
// another newline in it, and returns the end of that run.
func blankLine(s string, pos int) (int, bool) {
	newlines := 0
	j := pos
	for j < len(s) {
		r, size := utf8.DecodeRuneInString(s[j:])
		if !unicode.IsSpace(r) {
			break
		}
		if r == '\n' {
			newlines++
		}
		j += size
	}
	return j, newlines >= 2
}

// isAbbreviation checks the word right before the dot at dotPos.
func isAbbreviation(s string, dotPos int) bool {
	end := dotPos
	begin := end
	for begin > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:begin])
		if !unicode.IsLetter(r) {
			break
		}
		begin -= size
	}
	word := s[begin:end]
	if word == "" {
		return false
	}
	// инициалы: "а. с. пушкин"
	if utf8.RuneCountInString(word) == 1 {
		return !notInitials[strings.ToLower(word)]
	}
	return abbreviations[strings.ToLower(word)]
}
