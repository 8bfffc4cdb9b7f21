package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/views"
)

var _ list.Item = cardItem{}

// cardItem wraps a [views.Card] projection to implement [list.Item]. The
// underlying item rides along for the detail view.
type cardItem struct {
	card views.Card
	item models.MediaItem
}

func newCardItems(view views.ListView, items []models.MediaItem) []list.Item {
	wrapped := make([]list.Item, len(view.Cards))
	for i, card := range view.Cards {
		wrapped[i] = cardItem{card: card, item: items[i]}
	}
	return wrapped
}

func (i cardItem) FilterValue() string { return i.card.Title }
func (i cardItem) Title() string       { return i.card.Title }
func (i cardItem) Description() string {
	return fmt.Sprintf("%s • %s • %s", i.card.KindLabel, i.card.YearLabel, i.card.RatingLabel)
}
