package core

import "unicode/utf8"

// MinLemmaLen минимальная длина лексемы в символах (не байтах)
const MinLemmaLen = 4

// Tag часть речи в нотации OpenCorpora
type Tag string

const (
	TagNoun       Tag = "NOUN" // существительное
	TagAdjFull    Tag = "ADJF" // прилагательное (полное)
	TagAdjShort   Tag = "ADJS" // прилагательное (краткое)
	TagComp       Tag = "COMP"
	TagVerb       Tag = "VERB" // глагол (личная форма)
	TagInfinitive Tag = "INFN" // глагол (инфинитив)
	TagPartFull   Tag = "PRTF" // причастие (полное)
	TagPartShort  Tag = "PRTS" // причастие (краткое)
	TagGerund     Tag = "GRND"
	TagNumeral    Tag = "NUMR"
	TagAdverb     Tag = "ADVB"
	TagPronoun    Tag = "NPRO"
	TagPredicate  Tag = "PRED"
	TagPrep       Tag = "PREP"
	TagConj       Tag = "CONJ"
	TagParticle   Tag = "PRCL"
	TagInterj     Tag = "INTJ"
)

// IsContent reports whether the tag belongs to the content categories
// eligible for the lexicon.
func (t Tag) IsContent() bool {
	switch t {
	case TagNoun, TagVerb, TagInfinitive, TagAdjFull, TagAdjShort, TagPartFull, TagPartShort:
		return true
	}
	return false
}

// Analysis один вариант морфологического разбора
type Analysis struct {
	Normal string
	Tag    Tag
	Score  float64
}

// Entry лексема со своими партнёрами, партнёры отсортированы
type Entry struct {
	Lemma    string
	Partners []string
}

// LemmaInfo строка списка лексем
type LemmaInfo struct {
	Lemma    string
	Partners int
}

type Stats struct {
	Lemmas int
	Links  int
}

// LoadResult summary of one processed document.
type LoadResult struct {
	Document string
	Added    Stats // what the document itself contributed
	Total    Stats // lexicon after merge
}

type Action string

const (
	ActionMerge  Action = "merge"
	ActionLink   Action = "link"
	ActionUnlink Action = "unlink"
	ActionClear  Action = "clear"
)

// Change описывает мутацию словаря для подписчиков
type Change struct {
	Action Action
	Stats  Stats
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
