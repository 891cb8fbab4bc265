package core

import (
	"context"
	"errors"
)

type Analyzer interface {
	Analyze(word string) []Analysis
}

type Segmenter interface {
	Sentences(text string) []string
}

type Loader interface {
	Load(name string, data []byte) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, change Change) error
}

// Notifiers рассылает изменение всем подписчикам по очереди
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, change Change) error {
	var errs []error
	for _, n := range ns {
		if err := n.Notify(ctx, change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
