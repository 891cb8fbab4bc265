package core

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Extractor builds the collocations of a single document.
type Extractor struct {
	res *Resources
}

func NewExtractor(res *Resources) *Extractor {
	return &Extractor{res: res}
}

// Extract lower-cases text, splits it into sentences and links every two
// adjacent lemmas of a sentence. Pairs never cross a sentence boundary.
func (e *Extractor) Extract(text string) (*Collocations, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrContent
	}

	// "й" и "ё" могут прийти разложенными, приводим к NFC до токенизации
	text = lowerText(text)

	c := newCollocations()
	for _, sentence := range e.res.segmenter.Sentences(text) {
		lemmas := e.Lemmas(sentence)
		for i := 0; i+1 < len(lemmas); i++ {
			a, b := lemmas[i], lemmas[i+1]
			if a == b || runeLen(a) < MinLemmaLen || runeLen(b) < MinLemmaLen {
				continue
			}
			c.adj.link(a, b)
		}
	}
	return c, nil
}

// Lemmas returns the lemma sequence of one lower-cased sentence.
func (e *Extractor) Lemmas(sentence string) []string {
	var lemmas []string
	for token := range Tokens(sentence) {
		if lemma, ok := e.res.Lemma(token); ok {
			lemmas = append(lemmas, lemma)
		}
	}
	return lemmas
}

func lowerText(s string) string {
	return cases.Lower(language.Russian).String(norm.NFC.String(s))
}
