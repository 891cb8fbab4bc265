package stopwords

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"yadro.com/lexicon/lexicon/core"
)

//go:embed russian.txt
var russian string

// частицы и их производные, которых нет в стандартном списке
var particles = []string{
	"бы", "же", "ли", "быть", "нибудь", "кое", "то", "либо", "таки",
	"нибыть", "либыть", "тобыть", "когда-нибудь", "где-нибудь",
}

// Default returns the built-in Russian list extended with particles.
func Default() core.Stopwords {
	words, _ := parse(strings.NewReader(russian))
	return core.NewStopwords(append(words, particles...))
}

// Load reads a word-per-line file ("#" starts a comment) and adds the particles.
// An empty path returns Default.
func Load(path string) (core.Stopwords, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return core.Stopwords{}, fmt.Errorf("open stopwords: %w", err)
	}
	defer f.Close()

	words, err := parse(f)
	if err != nil {
		return core.Stopwords{}, fmt.Errorf("read stopwords %s: %w", path, err)
	}
	return core.NewStopwords(append(words, particles...)), nil
}

func parse(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}
