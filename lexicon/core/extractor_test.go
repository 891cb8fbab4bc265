package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourcesNormalize(t *testing.T) {
	res := newTestResources(t)

	testCases := []struct {
		name   string
		word   string
		normal string
		tag    Tag
		ok     bool
	}{
		{"single analysis", "спит", "спать", TagVerb, true},
		{"max score wins", "стали", "стать", TagVerb, true},
		{"tie keeps first", "мыла", "мыло", TagNoun, true},
		{"normal form lower-cased", "журналы", "журнал", TagNoun, true},
		{"unknown word", "абырвалг", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := res.Normalize(tc.word)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.normal, got.Normal)
			assert.Equal(t, tc.tag, got.Tag)
		})
	}
}

func TestResourcesNormalize_Deterministic(t *testing.T) {
	res := newTestResources(t)
	for range 10 {
		got, ok := res.Normalize("мыла")
		require.True(t, ok)
		assert.Equal(t, "мыло", got.Normal)
	}
}

func TestResourcesLemma(t *testing.T) {
	res := newTestResources(t)

	testCases := []struct {
		name  string
		token string
		want  string
		ok    bool
	}{
		{"noun", "кошка", "кошка", true},
		{"verb normalized", "спит", "спать", true},
		{"short participle", "прочитана", "прочитать", true},
		{"too short surface", "кот", "", false},
		{"surface stopword", "этого", "", false},
		{"lemma is stopword", "было", "", false},
		{"artifact lemma", "либо-что", "", false},
		{"adverb filtered", "очень", "", false},
		{"unknown word", "абырвалг", "", false},
		{"short lemma kept", "доме", "дом", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := res.Lemma(tc.token)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewResources_Required(t *testing.T) {
	_, err := NewResources(testStopwords(), nil, dotSegmenter{})
	require.Error(t, err)

	_, err = NewResources(testStopwords(), testAnalyzer(), nil)
	require.Error(t, err)

	res, err := NewResources(Stopwords{}, testAnalyzer(), dotSegmenter{})
	require.NoError(t, err)
	// артефакты есть даже в пустом наборе
	assert.True(t, res.Stopwords().Contains("нибыть"))
}

func TestExtract_SentenceBoundary(t *testing.T) {
	ex := NewExtractor(newTestResources(t))

	got, err := ex.Extract("Кошка спит. Собака бежит.")
	require.NoError(t, err)
	requireInvariants(t, got.adj)

	assert.Equal(t, []string{"бежать", "кошка", "собака", "спать"}, got.Lemmas())
	assert.Equal(t, []string{"кошка"}, got.Partners("спать"))
	assert.Equal(t, []string{"бежать"}, got.Partners("собака"))
	assert.Equal(t, 2, got.Links())
}

func TestExtract_DroppedTokensJoinNeighbours(t *testing.T) {
	ex := NewExtractor(newTestResources(t))

	got, err := ex.Extract("Кошка очень спит")
	require.NoError(t, err)
	assert.Equal(t, []string{"спать"}, got.Partners("кошка"))

	// предлог отбрасывается, прилагательное и существительное становятся соседями
	got, err = ex.Extract("в большом городе")
	require.NoError(t, err)
	assert.Equal(t, []string{"город"}, got.Partners("большой"))
	assert.Equal(t, 1, got.Links())
}

func TestExtract_ShortAndStopwordsOnly(t *testing.T) {
	ex := NewExtractor(newTestResources(t))

	got, err := ex.Extract("Она и он было там. Этого не было!")
	require.NoError(t, err)
	assert.Zero(t, got.Len())
	assert.Zero(t, got.Links())
}

func TestExtract_EmptyInput(t *testing.T) {
	ex := NewExtractor(newTestResources(t))

	for _, text := range []string{"", "   ", "\n\t \n"} {
		got, err := ex.Extract(text)
		require.ErrorIs(t, err, ErrContent)
		assert.Nil(t, got)
	}
}

func TestExtract_ShortLemmaBlocksPair(t *testing.T) {
	ex := NewExtractor(newTestResources(t))

	// "дом" короче четырёх букв: остаётся в последовательности, но пар не даёт
	got, err := ex.Extract("кошка доме спит")
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

func TestExtract_NoSelfLoops(t *testing.T) {
	ex := NewExtractor(newTestResources(t))

	got, err := ex.Extract("книга книги книгу читать")
	require.NoError(t, err)
	requireInvariants(t, got.adj)
	assert.Equal(t, []string{"читать"}, got.Partners("книга"))
	assert.Equal(t, []string{"книга"}, got.Partners("читать"))
}

func TestExtract_Chain(t *testing.T) {
	ex := NewExtractor(newTestResources(t))

	got, err := ex.Extract("читать интересную книгу")
	require.NoError(t, err)
	requireInvariants(t, got.adj)

	assert.Equal(t, []Entry{
		{Lemma: "интересный", Partners: []string{"книга", "читать"}},
		{Lemma: "книга", Partners: []string{"интересный"}},
		{Lemma: "читать", Partners: []string{"интересный"}},
	}, got.Entries())
}

func TestExtract_UpperCaseInput(t *testing.T) {
	ex := NewExtractor(newTestResources(t))

	got, err := ex.Extract("КОШКА СПИТ")
	require.NoError(t, err)
	assert.Equal(t, []string{"спать"}, got.Partners("кошка"))
}
