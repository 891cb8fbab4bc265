package export

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"yadro.com/lexicon/lexicon/core"
)

var entries = []core.Entry{
	{Lemma: "интересный", Partners: []string{"книга", "читать"}},
	{Lemma: "книга", Partners: []string{"интересный"}},
	{Lemma: "читать", Partners: []string{"интересный"}},
}

func TestDictionaryJSON(t *testing.T) {
	data, err := Dictionary(entries, FormatJSON)
	require.NoError(t, err)

	want := `{
  "интересный": [
    "книга",
    "читать"
  ],
  "книга": [
    "интересный"
  ],
  "читать": [
    "интересный"
  ]
}
`
	assert.Equal(t, want, string(data))
}

func TestDictionaryYAMLAndTOML(t *testing.T) {
	want := map[string][]string{
		"интересный": {"книга", "читать"},
		"книга":      {"интересный"},
		"читать":     {"интересный"},
	}

	data, err := Dictionary(entries, FormatYAML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "интересный:"), string(data))
	var fromYAML map[string][]string
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, want, fromYAML)

	data, err = Dictionary(entries, FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "интересный")
	var fromTOML map[string][]string
	require.NoError(t, toml.Unmarshal(data, &fromTOML))
	assert.Equal(t, want, fromTOML)
}

func TestDictionary_Errors(t *testing.T) {
	_, err := Dictionary(nil, FormatJSON)
	require.ErrorIs(t, err, core.ErrEmptyLexicon)

	_, err = Dictionary(entries, Format("xml"))
	require.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in   string
		want Format
	}{
		{"", FormatJSON},
		{"JSON", FormatJSON},
		{"yml", FormatYAML},
		{" toml ", FormatTOML},
	}
	for _, tc := range testCases {
		got, err := ParseFormat(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseFormat("csv")
	require.ErrorIs(t, err, core.ErrUnsupportedFormat)
	assert.Equal(t, ".yaml", FormatYAML.Extension())
}

func TestReport(t *testing.T) {
	data, err := Report(entries)
	require.NoError(t, err)

	report := string(data)
	lines := strings.Split(report, "\n")
	assert.Equal(t, "ДОКУМЕНТИРОВАННЫЙ СЛОВАРЬ СЛОВОСОЧЕТАНИЙ", lines[0])
	assert.Equal(t, strings.Repeat("=", 70), lines[1])
	assert.Equal(t, "Всего лексем: 3", lines[2])
	assert.Equal(t, "Всего уникальных связей: 2", lines[3])

	assert.Contains(t, report, "1. ЛЕКСЕМА: «интересный»\n   Партнёры (2): «книга», «читать»\n\n")
	assert.Contains(t, report, "3. ЛЕКСЕМА: «читать»\n   Партнёры (1): «интересный»\n\n")
	assert.Less(t, strings.Index(report, "«книга»\n"), strings.Index(report, "3. ЛЕКСЕМА"))

	_, err = Report(nil)
	require.ErrorIs(t, err, core.ErrEmptyLexicon)
}
