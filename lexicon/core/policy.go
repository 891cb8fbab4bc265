package core

import "strings"

// Normalize returns the best analysis of word: the one with the maximum score.
// Equal scores keep the analysis the analyzer returned first.
func (r *Resources) Normalize(word string) (Analysis, bool) {
	analyses := r.analyzer.Analyze(word)
	if len(analyses) == 0 {
		return Analysis{}, false
	}

	best := analyses[0]
	for _, a := range analyses[1:] {
		if a.Score > best.Score {
			best = a
		}
	}
	best.Normal = strings.ToLower(best.Normal)
	return best, true
}

// Lemma runs a surface token through the filtering policy and reports
// whether it contributes a lemma to the sentence sequence.
func (r *Resources) Lemma(token string) (string, bool) {
	if runeLen(token) < MinLemmaLen {
		return "", false
	}
	if r.stopwords.Contains(token) {
		return "", false
	}

	parsed, ok := r.Normalize(token)
	if !ok || parsed.Normal == "" {
		return "", false
	}

	// стоп-слова и артефакты проверяем ещё раз уже на нормальной форме
	if r.stopwords.Contains(parsed.Normal) {
		return "", false
	}

	if !parsed.Tag.IsContent() {
		return "", false
	}
	return parsed.Normal, true
}
