package morph

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yadro.com/lexicon/lexicon/core"
)

func loadSample(t *testing.T) *Dictionary {
	t.Helper()
	d, err := Load(filepath.Join("testdata", "sample.tsv"))
	require.NoError(t, err)
	return d
}

func TestLoad(t *testing.T) {
	d := loadSample(t)
	assert.Equal(t, 10, d.Len())
}

func TestLoad_Gzip(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "sample.tsv"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "morph.tsv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, d.Len())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.tsv"))
	require.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"too few fields", "кошка\tкошка\n"},
		{"empty tag", "кошка\tкошка\t \t1\n"},
		{"bad frequency", "кошка\tкошка\tNOUN\tмного\n"},
		{"zero frequency", "кошка\tкошка\tNOUN\t0\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.data))
			require.Error(t, err)
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	entries, err := Parse(strings.NewReader("# comment\n\nКошка\tКОШКА\tnoun\n"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Form: "кошка", Normal: "кошка", Tag: core.TagNoun, Freq: 1}}, entries)
}

func TestAnalyze_Exact(t *testing.T) {
	d := loadSample(t)

	got := d.Analyze("Стали")
	require.Len(t, got, 2)
	assert.Equal(t, "сталь", got[0].Normal)
	assert.Equal(t, core.TagNoun, got[0].Tag)
	assert.InDelta(t, 0.4, got[0].Score, 1e-9)
	assert.Equal(t, "стать", got[1].Normal)
	assert.Equal(t, core.TagVerb, got[1].Tag)
	assert.InDelta(t, 0.6, got[1].Score, 1e-9)

	got = d.Analyze("спит")
	require.Len(t, got, 1)
	assert.Equal(t, core.Analysis{Normal: "спать", Tag: core.TagVerb, Score: 1}, got[0])
}

func TestAnalyze_StemFallback(t *testing.T) {
	d := loadSample(t)

	// "книгами" нет в словаре, основа совпадает с леммой "книга"
	got := d.Analyze("книгами")
	require.Len(t, got, 1)
	assert.Equal(t, "книга", got[0].Normal)
	assert.Equal(t, core.TagNoun, got[0].Tag)
	assert.InDelta(t, stemWeight, got[0].Score, 1e-9)
}

func TestAnalyze_Predicted(t *testing.T) {
	d := loadSample(t)

	got := d.Analyze("мышками")
	require.NotEmpty(t, got)
	assert.Equal(t, "мышка", got[0].Normal)
	assert.Equal(t, core.TagNoun, got[0].Tag)
	assert.LessOrEqual(t, got[0].Score, predictWeight)
}

func TestAnalyze_Unknown(t *testing.T) {
	d := loadSample(t)
	assert.Empty(t, d.Analyze("   "))
	assert.Empty(t, d.Analyze("эээ"))
}

func TestNew_MergesDuplicates(t *testing.T) {
	d := New([]Entry{
		{Form: "кошки", Normal: "кошка", Tag: core.TagNoun, Freq: 2},
		{Form: "кошки", Normal: "кошка", Tag: core.TagNoun, Freq: 3},
	})
	got := d.Analyze("кошки")
	require.Len(t, got, 1)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
}

func TestDictionaryIsAnalyzer(t *testing.T) {
	var _ core.Analyzer = New(nil)
}
