package core

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	testCases := []struct {
		name     string
		sentence string
		want     []string
	}{
		{"plain words", "кошка спит на диване", []string{"кошка", "спит", "на", "диване"}},
		{"hyphenated compound", "кто-то когда-нибудь придёт", []string{"кто-то", "когда-нибудь", "придёт"}},
		{"several hyphens", "из-за-угла", []string{"из-за-угла"}},
		{"digits and latin separate", "в 2021году hello мир", []string{"в", "году", "мир"}},
		{"punctuation", "ёлка, (шишка); «иней»!", []string{"ёлка", "шишка", "иней"}},
		{"dangling hyphens", "-слово- дело-", []string{"слово", "дело"}},
		{"double hyphen splits", "а--б", []string{"а", "б"}},
		{"no letters", "123 ... !!!", nil},
		{"empty", "", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := slices.Collect(Tokens(tc.sentence))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTokens_Restartable(t *testing.T) {
	seq := Tokens("одна две три")

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	// досрочный выход из range не должен ломать последовательность
	for tok := range seq {
		assert.Equal(t, "одна", tok)
		break
	}
	assert.Len(t, slices.Collect(seq), 3)
}
