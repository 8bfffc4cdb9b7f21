// Package filters normalizes caller-supplied filter input into the canonical
// query description consumed by the API gateway.
//
// Normalization is deliberately light: the rating floor is clamped at zero,
// the free-text term is trimmed, and an empty kind selection is rejected.
// Year bounds are passed through without cross-validation; an inverted range
// simply yields an empty or error result from the server.
package filters

import (
	"fmt"
	"strings"

	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/shared"
)

// Raw holds filter input exactly as the caller supplied it.
type Raw struct {
	Kinds      []string // kind names, parsed leniently (see models.ParseKind)
	MinRating  float64  // community rating floor, 0 meaning no floor
	YearFrom   int      // 0 meaning unset
	YearTo     int      // 0 meaning unset
	Genres     []string
	Studios    []string
	SearchTerm string
	UserID     string // optional scoping user id
}

// Spec is the canonical, immutable query description. Build a new one per
// fetch via [Normalize].
type Spec struct {
	Kinds      []models.Kind
	MinRating  float64
	YearFrom   int
	YearTo     int
	Genres     []string
	Studios    []string
	SearchTerm string
	UserID     string
}

// Normalize validates and canonicalizes raw filter input.
//
// An item fetch with zero selected kinds is an error; taxonomy loading, by
// contrast, defaults to the full known kind set (that asymmetry lives in the
// taxonomy package, not here).
func Normalize(raw Raw) (Spec, error) {
	kinds, err := ParseKinds(raw.Kinds)
	if err != nil {
		return Spec{}, err
	}
	if len(kinds) == 0 {
		return Spec{}, fmt.Errorf("%w: select at least one of movie, series, audio", shared.ErrNoKindSelected)
	}

	minRating := raw.MinRating
	if minRating < 0 {
		minRating = 0
	}

	term := strings.TrimSpace(raw.SearchTerm)

	return Spec{
		Kinds:      kinds,
		MinRating:  minRating,
		YearFrom:   raw.YearFrom,
		YearTo:     raw.YearTo,
		Genres:     raw.Genres,
		Studios:    raw.Studios,
		SearchTerm: term,
		UserID:     raw.UserID,
	}, nil
}

// ParseKinds maps kind names to [models.Kind] values, deduplicating while
// preserving first-seen order. Unknown names are an error.
func ParseKinds(names []string) ([]models.Kind, error) {
	var kinds []models.Kind
	seen := make(map[models.Kind]bool)

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		kind, ok := models.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown kind %q", shared.ErrInvalidFlag, name)
		}
		if !seen[kind] {
			seen[kind] = true
			kinds = append(kinds, kind)
		}
	}

	return kinds, nil
}
