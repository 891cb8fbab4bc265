package core

import "errors"

var (
	ErrContent           = errors.New("empty or unreadable document")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrNormalization     = errors.New("word cannot be normalized")
	ErrValidation        = errors.New("validation failed")
	ErrEmptyLexicon      = errors.New("lexicon is empty")
)
