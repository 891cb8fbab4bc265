// Package export renders the lexicon as a machine-readable dictionary or a
// human-readable report.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"yadro.com/lexicon/lexicon/core"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts "json", "yaml"/"yml" and "toml"; empty means json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: export format %q", core.ErrUnsupportedFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	case FormatTOML:
		return "application/toml; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Extension used for download file names.
func (f Format) Extension() string {
	return "." + string(f)
}

// Dictionary encodes lemma -> sorted partners with sorted keys.
func Dictionary(entries []core.Entry, format Format) ([]byte, error) {
	if len(entries) == 0 {
		return nil, core.ErrEmptyLexicon
	}

	dict := make(map[string][]string, len(entries))
	for _, e := range entries {
		dict[e.Lemma] = e.Partners
	}

	switch format {
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dict); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(dict); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		data, err := toml.Marshal(dict)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: export format %q", core.ErrUnsupportedFormat, format)
	}
}

var rule = strings.Repeat("=", 70)

// Report renders the numbered plain-text report.
func Report(entries []core.Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, core.ErrEmptyLexicon
	}

	links := 0
	for _, e := range entries {
		links += len(e.Partners)
	}
	links /= 2

	var b strings.Builder
	b.WriteString("ДОКУМЕНТИРОВАННЫЙ СЛОВАРЬ СЛОВОСОЧЕТАНИЙ\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Всего лексем: %d\n", len(entries))
	fmt.Fprintf(&b, "Всего уникальных связей: %d\n", links)
	b.WriteString(rule + "\n\n")
	b.WriteString("Примечание: Словосочетания извлекаются ТОЛЬКО в пределах одного предложения.\n")
	b.WriteString("Лексемы — нормальные формы слов (например, 'книги' → 'книга').\n\n")
	b.WriteString(rule + "\n\n")

	for i, e := range entries {
		quoted := make([]string, len(e.Partners))
		for j, p := range e.Partners {
			quoted[j] = "«" + p + "»"
		}
		fmt.Fprintf(&b, "%d. ЛЕКСЕМА: «%s»\n", i+1, e.Lemma)
		fmt.Fprintf(&b, "   Партнёры (%d): %s\n\n", len(e.Partners), strings.Join(quoted, ", "))
	}
	return []byte(b.String()), nil
}
