// Package lexicon holds the stop-word sets used during text normalization.
//
// A Lexicon is built once at startup and never mutated afterwards, so a single
// instance can be shared by any number of concurrent requests without locking.
package lexicon

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/kailas-cloud/jobmatch/internal/domain"
)

//go:embed data/*.txt
var builtinFS embed.FS

// builtins maps a base language to its embedded word list.
var builtins = map[string]string{
	"en": "data/english.txt",
}

// languageNames lets config use the familiar corpus names alongside BCP 47 tags.
var languageNames = map[string]string{
	"english": "en",
}

// Lexicon is an immutable stop-word set for one language.
type Lexicon struct {
	lang  language.Tag
	words map[string]struct{}
}

// New creates a Lexicon from a word list. Words are trimmed and lowercased;
// blank entries are skipped. An empty result is a resource error.
func New(lang language.Tag, words []string) (*Lexicon, error) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: stop-word list for %s is empty", domain.ErrResourceUnavailable, lang)
	}
	return &Lexicon{lang: lang, words: set}, nil
}

// Builtin returns the embedded stop-word list for a language name ("english")
// or tag ("en", "en-US").
func Builtin(name string) (*Lexicon, error) {
	tag, err := ParseLanguage(name)
	if err != nil {
		return nil, err
	}
	base, _ := tag.Base()
	path, ok := builtins[base.String()]
	if !ok {
		return nil, fmt.Errorf("%w: no built-in stop words for language %q", domain.ErrResourceUnavailable, name)
	}

	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read built-in stop words: %w", domain.ErrResourceUnavailable, err)
	}
	words, err := readWords(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return New(language.Make(base.String()), words)
}

// LoadFile reads a stop-word list with one word per line. Blank lines and lines
// starting with '#' are ignored.
func LoadFile(path string, lang language.Tag) (*Lexicon, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: open stop words %s: %w", domain.ErrResourceUnavailable, path, err)
	}
	defer func() { _ = f.Close() }()

	words, err := readWords(f)
	if err != nil {
		return nil, err
	}
	return New(lang, words)
}

// ParseLanguage resolves a language name or BCP 47 tag.
func ParseLanguage(name string) (language.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return language.Und, fmt.Errorf("%w: language is required", domain.ErrResourceUnavailable)
	}
	if code, ok := languageNames[name]; ok {
		name = code
	}
	tag, err := language.Parse(name)
	if err != nil {
		return language.Und, fmt.Errorf("%w: unknown language %q: %w", domain.ErrResourceUnavailable, name, err)
	}
	return tag, nil
}

// Contains reports whether word is a stop word. The match is exact; callers
// lowercase before asking.
func (l *Lexicon) Contains(word string) bool {
	_, ok := l.words[word]
	return ok
}

// Len returns the number of distinct stop words.
func (l *Lexicon) Len() int { return len(l.words) }

// Language returns the lexicon language.
func (l *Lexicon) Language() language.Tag { return l.lang }

// Digest identifies the word set independent of source and order. Result caches
// key on it so editing a stop-word file invalidates old entries.
func (l *Lexicon) Digest() string {
	words := make([]string, 0, len(l.words))
	for w := range l.words {
		words = append(words, w)
	}
	slices.Sort(words)

	h := sha256.New()
	for _, w := range words {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan stop words: %w", domain.ErrResourceUnavailable, err)
	}
	return words, nil
}
