package core

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockAnalyzer отдаёт разборы из таблицы в том порядке, в котором они записаны
type mockAnalyzer map[string][]Analysis

func (m mockAnalyzer) Analyze(word string) []Analysis {
	return m[word]
}

// dotSegmenter режет по точке, этого хватает для тестов ядра
type dotSegmenter struct{}

func (dotSegmenter) Sentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ".") {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

type mockLoader struct {
	loadFn func(name string, data []byte) (string, error)
}

func (m *mockLoader) Load(name string, data []byte) (string, error) {
	if m.loadFn == nil {
		return string(data), nil
	}
	return m.loadFn(name, data)
}

type mockNotifier struct {
	changes []Change
	err     error
}

func (m *mockNotifier) Notify(_ context.Context, change Change) error {
	m.changes = append(m.changes, change)
	return m.err
}

func one(normal string, tag Tag) []Analysis {
	return []Analysis{{Normal: normal, Tag: tag, Score: 1}}
}

func testAnalyzer() mockAnalyzer {
	return mockAnalyzer{
		"кошка":      one("кошка", TagNoun),
		"спит":       one("спать", TagVerb),
		"собака":     one("собака", TagNoun),
		"бежит":      one("бежать", TagVerb),
		"большом":    one("большой", TagAdjFull),
		"городе":     one("город", TagNoun),
		"книга":      one("книга", TagNoun),
		"книги":      one("книга", TagNoun),
		"книгу":      one("книга", TagNoun),
		"читать":     one("читать", TagInfinitive),
		"интересную": one("интересный", TagAdjFull),
		"очень":      one("очень", TagAdverb),
		"доме":       one("дом", TagNoun),
		"было":       one("быть", TagVerb),
		"этого":      one("этот", TagPronoun),
		"либо-что":   one("либыть", TagVerb),
		"прочитана":  one("прочитать", TagPartShort),
		"между":      one("межд", TagNoun),
		"журналы":    one("ЖУРНАЛ", TagNoun),
		"стали": {
			{Normal: "сталь", Tag: TagNoun, Score: 0.4},
			{Normal: "стать", Tag: TagVerb, Score: 0.6},
		},
		"мыла": {
			{Normal: "мыло", Tag: TagNoun, Score: 0.5},
			{Normal: "мыть", Tag: TagVerb, Score: 0.5},
		},
	}
}

func testStopwords() Stopwords {
	return NewStopwords([]string{"было", "быть", "этот", "этого", "были", "она", "нибудь", "когда-нибудь", "между"})
}

func newTestResources(t *testing.T) *Resources {
	t.Helper()
	res, err := NewResources(testStopwords(), testAnalyzer(), dotSegmenter{})
	require.NoError(t, err)
	return res
}

// requireInvariants проверяет симметрию, отсутствие петель и пустых множеств
func requireInvariants(t *testing.T, adj adjacency) {
	t.Helper()
	for lemma, partners := range adj {
		require.NotEmpty(t, partners, "isolated lemma %q", lemma)
		_, self := partners[lemma]
		require.False(t, self, "self-loop on %q", lemma)
		for p := range partners {
			_, back := adj[p][lemma]
			require.True(t, back, "edge %q->%q has no reverse", lemma, p)
		}
	}
}
