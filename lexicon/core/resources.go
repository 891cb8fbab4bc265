package core

import (
	"errors"
	"strings"
)

// artifacts вырожденные нормальные формы, которые анализатор выдаёт на мусоре
// вроде "кое-" или "-нибудь"
var artifacts = []string{"нибыть", "либыть", "тобыть", "кое"}

// Stopwords неизменяемое множество исключаемых форм
type Stopwords struct {
	set map[string]struct{}
}

// NewStopwords builds the set from the given words; the artifact list is always included.
func NewStopwords(words []string) Stopwords {
	set := make(map[string]struct{}, len(words)+len(artifacts))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	for _, w := range artifacts {
		set[w] = struct{}{}
	}
	return Stopwords{set: set}
}

func (s Stopwords) Contains(word string) bool {
	_, ok := s.set[word]
	return ok
}

func (s Stopwords) Len() int {
	return len(s.set)
}

// Resources лингвистические ресурсы процесса: загружаются один раз в main
// и дальше только читаются
type Resources struct {
	stopwords Stopwords
	analyzer  Analyzer
	segmenter Segmenter
}

func NewResources(stopwords Stopwords, analyzer Analyzer, segmenter Segmenter) (*Resources, error) {
	if analyzer == nil {
		return nil, errors.New("analyzer is required")
	}
	if segmenter == nil {
		return nil, errors.New("segmenter is required")
	}
	if stopwords.set == nil {
		stopwords = NewStopwords(nil)
	}
	return &Resources{
		stopwords: stopwords,
		analyzer:  analyzer,
		segmenter: segmenter,
	}, nil
}

func (r *Resources) Stopwords() Stopwords {
	return r.stopwords
}
