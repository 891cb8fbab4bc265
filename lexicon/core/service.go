package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

type Service struct {
	log       *slog.Logger
	res       *Resources
	extractor *Extractor
	loader    Loader
	notifier  Notifier

	mu      sync.Mutex
	lexicon *Lexicon
}

func NewService(log *slog.Logger, res *Resources, loader Loader, notifier Notifier) (*Service, error) {
	if res == nil {
		return nil, errors.New("resources are required")
	}
	if loader == nil {
		return nil, errors.New("loader is required")
	}
	if notifier == nil {
		notifier = Notifiers{}
	}
	return &Service{
		log:       log,
		res:       res,
		extractor: NewExtractor(res),
		loader:    loader,
		notifier:  notifier,
		lexicon:   NewLexicon(),
	}, nil
}

// Load decodes a document file and processes its text.
func (s *Service) Load(ctx context.Context, name string, data []byte) (LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return LoadResult{}, err
	}

	text, err := s.loader.Load(name, data)
	if err != nil {
		return LoadResult{}, err
	}
	return s.Process(ctx, name, text)
}

// Process extracts the collocations of text and merges them into the lexicon.
// A failed extraction leaves the lexicon untouched.
func (s *Service) Process(ctx context.Context, name, text string) (LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return LoadResult{}, err
	}

	// извлекаем без блокировки, словарь трогаем только при слиянии
	found, err := s.extractor.Extract(text)
	if err != nil {
		return LoadResult{}, fmt.Errorf("document %q: %w", name, err)
	}

	s.mu.Lock()
	s.lexicon.Merge(found)
	total := s.lexicon.Stats()
	s.mu.Unlock()

	res := LoadResult{
		Document: name,
		Added:    Stats{Lemmas: found.Len(), Links: found.Links()},
		Total:    total,
	}
	s.log.Info("document processed",
		"document", name,
		"lemmas", res.Added.Lemmas, "links", res.Added.Links,
		"total_lemmas", total.Lemmas, "total_links", total.Links)

	s.notify(ctx, Change{Action: ActionMerge, Stats: total})
	return res, nil
}

// AddLink normalizes partnerText and links it with lemma. Manual links skip
// the part-of-speech filter but not the length, stopword and self-loop checks.
func (s *Service) AddLink(ctx context.Context, lemma, partnerText string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lemma = lowerText(strings.TrimSpace(lemma))
	if lemma == "" {
		return "", fmt.Errorf("%w: empty lemma", ErrValidation)
	}

	surface := lowerText(strings.TrimSpace(partnerText))
	if runeLen(surface) < MinLemmaLen {
		return "", fmt.Errorf("%w: partner must have at least %d letters", ErrValidation, MinLemmaLen)
	}
	if s.res.stopwords.Contains(surface) {
		return "", fmt.Errorf("%w: %q is a function word", ErrValidation, surface)
	}

	parsed, ok := s.res.Normalize(surface)
	if !ok || parsed.Normal == "" {
		return "", fmt.Errorf("%w: %q", ErrNormalization, surface)
	}
	partner := parsed.Normal

	if runeLen(partner) < MinLemmaLen {
		return "", fmt.Errorf("%w: lemma %q is shorter than %d letters", ErrValidation, partner, MinLemmaLen)
	}
	if s.res.stopwords.Contains(partner) {
		return "", fmt.Errorf("%w: %q is a function word", ErrValidation, partner)
	}
	if partner == lemma {
		return "", fmt.Errorf("%w: lemma cannot be its own partner", ErrValidation)
	}

	s.mu.Lock()
	added := s.lexicon.Link(lemma, partner)
	total := s.lexicon.Stats()
	s.mu.Unlock()

	if !added {
		s.log.Debug("link already exists", "lemma", lemma, "partner", partner)
		return partner, nil
	}

	s.log.Info("link added", "lemma", lemma, "partner", partner)
	s.notify(ctx, Change{Action: ActionLink, Stats: total})
	return partner, nil
}

// RemoveLink deletes lemma↔partner. Removing a missing link is not an error.
func (s *Service) RemoveLink(ctx context.Context, lemma, partner string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	removed := s.lexicon.Unlink(lemma, partner)
	total := s.lexicon.Stats()
	s.mu.Unlock()

	if !removed {
		s.log.Debug("link not found", "lemma", lemma, "partner", partner)
		return nil
	}

	s.log.Info("link removed", "lemma", lemma, "partner", partner)
	s.notify(ctx, Change{Action: ActionUnlink, Stats: total})
	return nil
}

// Clear drops the whole lexicon. Callers must have the user's confirmation.
func (s *Service) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.lexicon.Clear()
	s.mu.Unlock()

	s.log.Info("lexicon cleared")
	s.notify(ctx, Change{Action: ActionClear})
	return nil
}

func (s *Service) Partners(_ context.Context, lemma string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lexicon.Has(lemma) {
		return nil, false
	}
	return s.lexicon.Partners(lemma), true
}

func (s *Service) Lemmas(_ context.Context, filter string) []LemmaInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	lemmas := s.lexicon.Lemmas(filter)
	out := make([]LemmaInfo, 0, len(lemmas))
	for _, l := range lemmas {
		out = append(out, LemmaInfo{Lemma: l, Partners: s.lexicon.Degree(l)})
	}
	return out
}

func (s *Service) Stats(_ context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lexicon.Stats()
}

// Entries returns the sorted snapshot used by the exporters.
func (s *Service) Entries(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lexicon.Len() == 0 {
		return nil, ErrEmptyLexicon
	}
	return s.lexicon.Entries(), nil
}

func (s *Service) notify(ctx context.Context, change Change) {
	if err := s.notifier.Notify(ctx, change); err != nil {
		s.log.Error("cannot notify about lexicon change", "action", change.Action, "error", err)
	}
}
