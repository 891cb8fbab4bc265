// Package morph implements a dictionary-based morphological analyzer for Russian.
//
// The dictionary is a tab-separated file, one analysis per line:
//
//	form	normal	TAG	frequency
//
// Words missing from the dictionary are resolved through the snowball stem of
// known lemmas and, failing that, through ending rules learned from the
// dictionary itself.
package morph

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/kljensen/snowball"
	"yadro.com/lexicon/lexicon/core"
)

const (
	maxSuffixLen = 5

	stemWeight    = 0.5
	predictWeight = 0.25
)

// Entry одна строка словаря
type Entry struct {
	Form   string
	Normal string
	Tag    core.Tag
	Freq   int
}

type weighted struct {
	normal string
	tag    core.Tag
	freq   int
}

// rule окончание словоформы -> окончание леммы
type rule struct {
	cut  int // сколько символов отрезать с конца слова
	add  string
	tag  core.Tag
	freq int
}

type Dictionary struct {
	forms map[string][]weighted
	stems map[string][]weighted
	rules map[string][]rule
	size  int
}

// Load reads a dictionary file; names ending in ".gz" are gunzipped.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip dictionary %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	entries, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return New(entries), nil
}

// Parse reads dictionary lines. Blank lines and lines starting with "#" are skipped,
// a missing frequency counts as 1.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected form, normal and tag", lineNo)
		}

		e := Entry{
			Form:   strings.ToLower(strings.TrimSpace(fields[0])),
			Normal: strings.ToLower(strings.TrimSpace(fields[1])),
			Tag:    core.Tag(strings.ToUpper(strings.TrimSpace(fields[2]))),
			Freq:   1,
		}
		if e.Form == "" || e.Normal == "" || e.Tag == "" {
			return nil, fmt.Errorf("line %d: empty field", lineNo)
		}
		if len(fields) > 3 && strings.TrimSpace(fields[3]) != "" {
			freq, err := strconv.Atoi(strings.TrimSpace(fields[3]))
			if err != nil || freq <= 0 {
				return nil, fmt.Errorf("line %d: bad frequency %q", lineNo, fields[3])
			}
			e.Freq = freq
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// New indexes the entries. Analyses keep the order of the entries, which
// makes equal-score ties resolve the same way on every run.
func New(entries []Entry) *Dictionary {
	d := &Dictionary{
		forms: make(map[string][]weighted),
		stems: make(map[string][]weighted),
		rules: make(map[string][]rule),
	}

	lemmas := make(map[weighted]bool)
	for _, e := range entries {
		if e.Freq <= 0 {
			e.Freq = 1
		}
		d.forms[e.Form] = addWeighted(d.forms[e.Form], weighted{normal: e.Normal, tag: e.Tag, freq: e.Freq})
		d.size++

		key := weighted{normal: e.Normal, tag: e.Tag}
		if !lemmas[key] {
			lemmas[key] = true
			if stem := stemOf(e.Normal); stem != "" {
				d.stems[stem] = addWeighted(d.stems[stem], weighted{normal: e.Normal, tag: e.Tag, freq: e.Freq})
			}
		}

		d.learn(e)
	}

	for key, rs := range d.rules {
		slices.SortStableFunc(rs, func(a, b rule) int { return b.freq - a.freq })
		d.rules[key] = rs
	}
	return d
}

// Len number of dictionary lines indexed.
func (d *Dictionary) Len() int {
	return d.size
}

// Analyze implements core.Analyzer.
func (d *Dictionary) Analyze(word string) []core.Analysis {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil
	}

	if ws, ok := d.forms[word]; ok {
		return toAnalyses(ws, 1)
	}

	if stem := stemOf(word); stem != "" {
		if ws, ok := d.stems[stem]; ok {
			return toAnalyses(ws, stemWeight)
		}
	}

	return d.predict(word)
}

// learn запоминает правило "окончание формы -> окончание леммы" для всех
// суффиксов формы, которые покрывают изменяемую часть
func (d *Dictionary) learn(e Entry) {
	form, normal := []rune(e.Form), []rune(e.Normal)

	p := 0
	for p < len(form) && p < len(normal) && form[p] == normal[p] {
		p++
	}
	cut := len(form) - p
	if cut > maxSuffixLen || p == 0 {
		return
	}

	add := string(normal[p:])
	for n := max(cut, 1); n <= maxSuffixLen && n < len(form); n++ {
		key := string(form[len(form)-n:])
		d.rules[key] = addRule(d.rules[key], rule{cut: cut, add: add, tag: e.Tag, freq: e.Freq})
	}
}

func (d *Dictionary) predict(word string) []core.Analysis {
	runes := []rune(word)
	for n := min(maxSuffixLen, len(runes)); n >= 1; n-- {
		rs, ok := d.rules[string(runes[len(runes)-n:])]
		if !ok {
			continue
		}

		total := 0
		for _, r := range rs {
			if r.cut < len(runes) {
				total += r.freq
			}
		}
		if total == 0 {
			continue
		}

		out := make([]core.Analysis, 0, len(rs))
		seen := make(map[string]bool, len(rs))
		for _, r := range rs {
			if r.cut >= len(runes) {
				continue
			}
			normal := string(runes[:len(runes)-r.cut]) + r.add
			if seen[normal+"\x00"+string(r.tag)] {
				continue
			}
			seen[normal+"\x00"+string(r.tag)] = true
			out = append(out, core.Analysis{
				Normal: normal,
				Tag:    r.tag,
				Score:  predictWeight * float64(r.freq) / float64(total),
			})
		}
		return out
	}
	return nil
}

func addWeighted(ws []weighted, w weighted) []weighted {
	for i := range ws {
		if ws[i].normal == w.normal && ws[i].tag == w.tag {
			ws[i].freq += w.freq
			return ws
		}
	}
	return append(ws, w)
}

func addRule(rs []rule, r rule) []rule {
	for i := range rs {
		if rs[i].cut == r.cut && rs[i].add == r.add && rs[i].tag == r.tag {
			rs[i].freq += r.freq
			return rs
		}
	}
	return append(rs, r)
}

func toAnalyses(ws []weighted, weight float64) []core.Analysis {
	total := 0
	for _, w := range ws {
		total += w.freq
	}
	out := make([]core.Analysis, 0, len(ws))
	for _, w := range ws {
		out = append(out, core.Analysis{
			Normal: w.normal,
			Tag:    w.tag,
			Score:  weight * float64(w.freq) / float64(total),
		})
	}
	return out
}

func stemOf(word string) string {
	stem, err := snowball.Stem(word, "russian", true)
	if err != nil {
		return ""
	}
	return stem
}
