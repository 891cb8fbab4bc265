package core

import (
	"slices"
	"strings"
)

type adjacency map[string]map[string]struct{}

// link вставляет ребро сразу в обе стороны
func (a adjacency) link(x, y string) bool {
	if x == "" || y == "" || x == y {
		return false
	}
	if _, ok := a[x][y]; ok {
		return false
	}
	a.add(x, y)
	a.add(y, x)
	return true
}

func (a adjacency) add(from, to string) {
	set, ok := a[from]
	if !ok {
		set = make(map[string]struct{})
		a[from] = set
	}
	set[to] = struct{}{}
}

func (a adjacency) partners(lemma string) []string {
	set, ok := a[lemma]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

func (a adjacency) lemmas() []string {
	out := make([]string, 0, len(a))
	for l := range a {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// links каждое ребро хранится дважды
func (a adjacency) links() int {
	total := 0
	for _, set := range a {
		total += len(set)
	}
	return total / 2
}

func (a adjacency) entries() []Entry {
	keys := a.lemmas()
	out := make([]Entry, 0, len(keys))
	for _, l := range keys {
		out = append(out, Entry{Lemma: l, Partners: a.partners(l)})
	}
	return out
}

// Collocations is the result of extracting one document. It is read-only
// once Extract returns.
type Collocations struct {
	adj adjacency
}

func newCollocations() *Collocations {
	return &Collocations{adj: make(adjacency)}
}

func (c *Collocations) Len() int {
	return len(c.adj)
}

func (c *Collocations) Links() int {
	return c.adj.links()
}

func (c *Collocations) Lemmas() []string {
	return c.adj.lemmas()
}

func (c *Collocations) Partners(lemma string) []string {
	return c.adj.partners(lemma)
}

func (c *Collocations) Entries() []Entry {
	return c.adj.entries()
}

// Lexicon is the accumulated undirected lemma graph. Every edge is stored in
// both directions, there are no self-loops and no lemma without partners.
// Lexicon is not safe for concurrent use.
type Lexicon struct {
	adj adjacency
}

func NewLexicon() *Lexicon {
	return &Lexicon{adj: make(adjacency)}
}

// Merge unions the partner sets of c into the lexicon. Existing links are never removed.
func (l *Lexicon) Merge(c *Collocations) {
	if c == nil {
		return
	}
	for lemma, partners := range c.adj {
		for p := range partners {
			l.adj.link(lemma, p)
		}
	}
}

// Link adds the symmetric edge a↔b. It reports false for self-loops,
// empty lemmas and edges that already exist.
func (l *Lexicon) Link(a, b string) bool {
	return l.adj.link(a, b)
}

// Unlink removes the edge a↔b if present and drops lemmas left without partners.
func (l *Lexicon) Unlink(a, b string) bool {
	if _, ok := l.adj[a][b]; !ok {
		return false
	}
	l.drop(a, b)
	l.drop(b, a)
	return true
}

func (l *Lexicon) drop(from, to string) {
	set, ok := l.adj[from]
	if !ok {
		return
	}
	delete(set, to)
	if len(set) == 0 {
		delete(l.adj, from)
	}
}

func (l *Lexicon) Clear() {
	l.adj = make(adjacency)
}

func (l *Lexicon) Has(lemma string) bool {
	_, ok := l.adj[lemma]
	return ok
}

// Partners returns a sorted copy of the partners of lemma.
func (l *Lexicon) Partners(lemma string) []string {
	return l.adj.partners(lemma)
}

func (l *Lexicon) Degree(lemma string) int {
	return len(l.adj[lemma])
}

// Lemmas returns the sorted lemmas containing filter (case-insensitive).
// An empty filter matches everything.
func (l *Lexicon) Lemmas(filter string) []string {
	all := l.adj.lemmas()
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return all
	}
	out := all[:0]
	for _, lemma := range all {
		if strings.Contains(strings.ToLower(lemma), filter) {
			out = append(out, lemma)
		}
	}
	return out
}

func (l *Lexicon) Len() int {
	return len(l.adj)
}

func (l *Lexicon) Links() int {
	return l.adj.links()
}

func (l *Lexicon) Stats() Stats {
	return Stats{Lemmas: l.Len(), Links: l.Links()}
}

// Entries returns a sorted snapshot of the whole graph.
func (l *Lexicon) Entries() []Entry {
	return l.adj.entries()
}
