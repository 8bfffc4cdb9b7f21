package curation

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/dirtflix/dfx/internal/models"
)

// SortKey governs the display order of the master list. It never affects the
// working list, and never the master list's underlying arrival order.
type SortKey int

const (
	SortNone SortKey = iota
	SortAlphabetical
	SortReleaseDateDesc
	SortRatingDesc
	SortRandom
)

func (k SortKey) String() string {
	switch k {
	case SortNone:
		return "none"
	case SortAlphabetical:
		return "alphabetical"
	case SortReleaseDateDesc:
		return "release-date"
	case SortRatingDesc:
		return "rating"
	case SortRandom:
		return "random"
	default:
		return "none"
	}
}

// ParseSortKey maps a sort name to a [SortKey]. Returns false for unknown
// names.
func ParseSortKey(name string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return SortNone, true
	case "alphabetical", "alpha", "name":
		return SortAlphabetical, true
	case "release-date", "release", "year":
		return SortReleaseDateDesc, true
	case "rating":
		return SortRatingDesc, true
	case "random", "shuffle":
		return SortRandom, true
	default:
		return SortNone, false
	}
}

// sortItems orders a copy of items by key. Missing names compare as empty
// strings; missing years and ratings compare as zero, sorting last under the
// descending keys. Random is a uniform Fisher-Yates shuffle.
func sortItems(items []models.MediaItem, key SortKey, rng *rand.Rand) []models.MediaItem {
	ordered := make([]models.MediaItem, len(items))
	copy(ordered, items)

	switch key {
	case SortAlphabetical:
		sort.SliceStable(ordered, func(i, j int) bool {
			return strings.ToLower(ordered[i].Name) < strings.ToLower(ordered[j].Name)
		})
	case SortReleaseDateDesc:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].ProductionYear > ordered[j].ProductionYear
		})
	case SortRatingDesc:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].CommunityRating > ordered[j].CommunityRating
		})
	case SortRandom:
		rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}

	return ordered
}
