package segmenter

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// Prose delegates to the punkt segmenter of prose. Falls back to Rules
// when prose cannot build a document.
type Prose struct{}

func (Prose) Sentences(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return Rules{}.Sentences(text)
	}

	var sentences []string
	for _, s := range doc.Sentences() {
		if t := strings.TrimSpace(s.Text); t != "" {
			sentences = append(sentences, t)
		}
	}
	return sentences
}
