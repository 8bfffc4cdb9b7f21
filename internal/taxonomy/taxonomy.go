// Package taxonomy loads the genre and studio vocabularies used to populate
// filter selectors, scrubbing entries that are not genre-like (catalog codes,
// ISBNs, sentence fragments mis-tagged as genres).
package taxonomy

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dirtflix/dfx/internal/models"
)

// codePatterns match library catalog identifiers that servers sometimes
// surface as genres: fiction shelf codes, three-letter catalog prefixes, and
// ISBN strings.
var codePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^FIC\d{6}$`),
	regexp.MustCompile(`^[A-Z]{3}\d{6}$`),
	regexp.MustCompile(`[A-Za-z]{3}\d{6}`),
	regexp.MustCompile(`ISBN(\s\d+)+`),
	regexp.MustCompile(`ISBN\d+`),
}

// Source provides the raw vocabulary calls the loader filters. Implemented by
// the Jellyfin gateway.
type Source interface {
	// GenreNames lists genre names scoped to the given kinds.
	GenreNames(ctx context.Context, kinds []models.Kind) ([]string, error)

	// ItemStudioNames derives studio names from a bulk item query scoped to
	// the given kinds. Preferred over StudioNames because the studio listing
	// endpoint ignores kind scoping.
	ItemStudioNames(ctx context.Context, kinds []models.Kind) ([]string, error)

	// StudioNames lists all studio names, unscoped. Fallback source.
	StudioNames(ctx context.Context) ([]string, error)
}

// Loader fetches and filters taxonomy vocabularies.
type Loader struct {
	source Source
}

// NewLoader creates a Loader backed by the given source.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// defaultKinds substitutes the full known kind set when the caller selected
// nothing. Item fetches reject an empty selection; taxonomy loading does not.
func defaultKinds(kinds []models.Kind) []models.Kind {
	if len(kinds) == 0 {
		return models.KnownKinds
	}
	return kinds
}

// Genres loads the genre vocabulary scoped to the selected kinds, keeping
// only admissible names.
func (l *Loader) Genres(ctx context.Context, kinds []models.Kind) ([]string, error) {
	names, err := l.source.GenreNames(ctx, defaultKinds(kinds))
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}

	return filterNames(names, GenreAdmissible), nil
}

// Studios loads the studio vocabulary scoped to the selected kinds.
//
// The primary strategy derives studio names from a bulk item query so the
// kind scoping applies; if that fails the unscoped studio listing is used
// before propagating failure.
func (l *Loader) Studios(ctx context.Context, kinds []models.Kind) ([]string, error) {
	names, err := l.source.ItemStudioNames(ctx, defaultKinds(kinds))
	if err != nil {
		names, err = l.source.StudioNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load studios: %w", err)
		}
	}

	return filterNames(names, StudioAdmissible), nil
}

// filterNames keeps admissible names, deduplicating while preserving order.
func filterNames(names []string, admissible func(string) bool) []string {
	kept := make([]string, 0, len(names))
	seen := make(map[string]bool)

	for _, name := range names {
		if seen[name] || !admissible(name) {
			continue
		}
		seen[name] = true
		kept = append(kept, name)
	}

	return kept
}

// upperLed reports whether s starts with a character that equals its own
// uppercase form. Digits and symbols pass; lowercase letters do not.
func upperLed(s string) bool {
	r := []rune(s)[0]
	return r == unicode.ToUpper(r)
}

func nonAlphanumericCount(s string) int {
	count := 0
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			count++
		}
	}
	return count
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GenreAdmissible reports whether a candidate string is a plausible genre
// name. Rejects sentence fragments (any lowercase-led word), punctuation-heavy
// strings, and library catalog codes (FIC numbers, shelf codes, ISBNs).
func GenreAdmissible(name string) bool {
	if name == "" {
		return false
	}
	if !upperLed(name) {
		return false
	}

	for _, word := range strings.Split(name, " ") {
		if word != "" && !upperLed(word) {
			return false
		}
	}

	if nonAlphanumericCount(name) > 1 {
		return false
	}
	if strings.ContainsAny(name, ":;") {
		return false
	}

	for _, pattern := range codePatterns {
		if pattern.MatchString(name) {
			return false
		}
	}

	return true
}

// StudioAdmissible reports whether a candidate string is a plausible studio
// name. Rejects lowercase-led names, bare numbers, strings carrying the
// Unicode replacement character, and punctuation-heavy strings.
func StudioAdmissible(name string) bool {
	if name == "" {
		return false
	}
	if !upperLed(name) {
		return false
	}
	if allDigits(name) {
		return false
	}
	if strings.ContainsRune(name, '�') {
		return false
	}
	if nonAlphanumericCount(name) >= 4 {
		return false
	}
	return true
}

// SampleGenres is the built-in genre vocabulary used when the server cannot
// be reached, so filtering stays usable offline.
var SampleGenres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime",
	"Documentary", "Drama", "Fantasy", "History", "Horror",
	"Music", "Mystery", "Romance", "Science Fiction", "Thriller",
	"War", "Western",
}

// SampleStudios is the built-in studio vocabulary fallback.
var SampleStudios = []string{
	"Disney", "Universal Studios", "Warner Bros.", "20th Century Fox",
	"Paramount Pictures", "Sony Pictures", "Lionsgate", "Columbia Pictures",
}
