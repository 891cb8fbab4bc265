// Package loader turns uploaded .txt and .rtf files into plain text.
package loader

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"yadro.com/lexicon/lexicon/core"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type Loader struct{}

func New() Loader {
	return Loader{}
}

// Load decodes data according to the extension of name.
func (Loader) Load(name string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".txt":
		text, err = decodeText(data)
	case ".rtf":
		text, err = decodeRTF(data)
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", core.ErrContent
	}
	return text, nil
}

func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8", core.ErrContent)
	}
	return string(data), nil
}
