// package views projects media items into display-ready shapes for the
// terminal UI and formatters. Projections are pure; all defaulting for
// absent fields happens here so render code stays dumb.
package views

import (
	"fmt"
	"strings"

	"github.com/dirtflix/dfx/internal/models"
)

// missing is the placeholder for fields the server did not supply.
const missing = "N/A"

// Card is the compact list projection of a media item.
type Card struct {
	ID          string
	Title       string
	KindLabel   string
	YearLabel   string
	RatingLabel string
	GenreLabel  string
	ImageRef    string // opaque primary-image tag, "" when absent
}

// ProjectCard builds the list projection for one item. A zero production
// year and a zero rating both render as the missing placeholder; real zero
// ratings are indistinguishable from absent ones at the wire level.
func ProjectCard(item models.MediaItem) Card {
	return Card{
		ID:          item.ID,
		Title:       item.Name,
		KindLabel:   item.Kind.Label(),
		YearLabel:   yearLabel(item.ProductionYear),
		RatingLabel: ratingLabel(item.CommunityRating),
		GenreLabel:  joinedOrMissing(item.Genres),
		ImageRef:    item.PrimaryImageRef(),
	}
}

// ProjectList builds cards for a whole snapshot, preserving order.
func ProjectList(items []models.MediaItem) []Card {
	cards := make([]Card, len(items))
	for i, item := range items {
		cards[i] = ProjectCard(item)
	}
	return cards
}

// ListView is the projection of a whole collection for list rendering.
type ListView struct {
	Name  string
	Count int
	Empty bool
	Cards []Card
}

// ProjectListView builds the named list projection, preserving order.
func ProjectListView(name string, items []models.MediaItem) ListView {
	return ListView{
		Name:  name,
		Count: len(items),
		Empty: len(items) == 0,
		Cards: ProjectList(items),
	}
}

// Detail is the full projection of a media item for the detail pane.
type Detail struct {
	ID           string
	Title        string
	KindLabel    string
	YearLabel    string
	CommunityLbl string
	CriticLbl    string
	GenreLabel   string
	StudioLabel  string
	Overview     string
	Tagline      string

	// HasTagline gates the tagline section; absent taglines hide the
	// section rather than showing a placeholder.
	HasTagline bool
}

// ProjectDetail builds the detail projection for one item. The studio label
// shows the first listed studio only.
func ProjectDetail(item models.MediaItem) Detail {
	detail := Detail{
		ID:           item.ID,
		Title:        item.Name,
		KindLabel:    item.Kind.Label(),
		YearLabel:    yearLabel(item.ProductionYear),
		CommunityLbl: ratingLabel(item.CommunityRating),
		CriticLbl:    criticLabel(item.CriticRating),
		GenreLabel:   joinedOrMissing(item.Genres),
		StudioLabel:  missing,
		Overview:     item.Overview,
	}

	if len(item.Studios) > 0 && item.Studios[0].Name != "" {
		detail.StudioLabel = item.Studios[0].Name
	}
	if detail.Overview == "" {
		detail.Overview = missing
	}
	if len(item.Taglines) > 0 && item.Taglines[0] != "" {
		detail.Tagline = item.Taglines[0]
		detail.HasTagline = true
	}

	return detail
}

func yearLabel(year int) string {
	if year == 0 {
		return missing
	}
	return fmt.Sprintf("%d", year)
}

// ratingLabel renders a community rating to one decimal place.
func ratingLabel(rating float64) string {
	if rating == 0 {
		return missing
	}
	return fmt.Sprintf("%.1f", rating)
}

// criticLabel renders a critic rating as a percentage.
func criticLabel(rating float64) string {
	if rating == 0 {
		return missing
	}
	return fmt.Sprintf("%.0f%%", rating)
}

func joinedOrMissing(values []string) string {
	if len(values) == 0 {
		return missing
	}
	return strings.Join(values, ", ")
}
