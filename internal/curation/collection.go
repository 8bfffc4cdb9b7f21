package curation

import (
	"github.com/dirtflix/dfx/internal/models"
)

// MergePolicy decides what happens when an ingested item's id is already
// present in a collection.
type MergePolicy int

const (
	// FirstSeenWins silently skips the incoming item, keeping the stored
	// fields from the first fetch. The engine never reconciles field drift
	// between duplicate fetches. This is the only implemented policy; the
	// parameter exists so an alternative (e.g. last-seen-wins) has an
	// explicit home.
	FirstSeenWins MergePolicy = iota
)

// Collection is a named, ordered sequence of media items with uniqueness by
// id as an invariant. Items stay in arrival order; display ordering is the
// engine's concern.
type Collection struct {
	name   string
	policy MergePolicy
	items  []models.MediaItem
	ids    map[string]bool
}

// NewCollection creates an empty collection.
func NewCollection(name string, policy MergePolicy) *Collection {
	return &Collection{
		name:   name,
		policy: policy,
		ids:    make(map[string]bool),
	}
}

// Name returns the collection's name ("working" or "master").
func (c *Collection) Name() string { return c.name }

// Len returns the number of items in the collection.
func (c *Collection) Len() int { return len(c.items) }

// IsEmpty reports whether the collection holds no items.
func (c *Collection) IsEmpty() bool { return len(c.items) == 0 }

// Contains reports whether an item with the given id is present.
func (c *Collection) Contains(id string) bool { return c.ids[id] }

// Items returns the items in arrival order. The returned slice is a copy;
// mutating it does not affect the collection.
func (c *Collection) Items() []models.MediaItem {
	items := make([]models.MediaItem, len(c.items))
	copy(items, c.items)
	return items
}

// IDs returns the item ids in arrival order.
func (c *Collection) IDs() []string {
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.ID
	}
	return ids
}

// Ingest adds each item whose id is not already present, per the merge
// policy. Returns the count actually added; callers use this to report
// "N new items" versus "0 new, all duplicates".
func (c *Collection) Ingest(items []models.MediaItem) int {
	added := 0
	for _, item := range items {
		if c.ids[item.ID] {
			// FirstSeenWins: skip, no field merge.
			continue
		}
		c.ids[item.ID] = true
		c.items = append(c.items, item)
		added++
	}
	return added
}

// RemoveByIDs removes all entries whose id is in ids. Unmatched ids are
// ignored. Returns the removed count.
func (c *Collection) RemoveByIDs(ids []string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := c.items[:0]
	removed := 0
	for _, item := range c.items {
		if drop[item.ID] {
			delete(c.ids, item.ID)
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	return removed
}

// retain keeps only items satisfying keep, preserving arrival order.
// Returns the retained count.
func (c *Collection) retain(keep func(models.MediaItem) bool) int {
	kept := c.items[:0]
	for _, item := range c.items {
		if keep(item) {
			kept = append(kept, item)
		} else {
			delete(c.ids, item.ID)
		}
	}
	c.items = kept
	return len(kept)
}

// Clear empties the collection unconditionally and returns the count of
// items that were removed. Any confirmation step is the caller's business.
func (c *Collection) Clear() int {
	removed := len(c.items)
	c.items = nil
	c.ids = make(map[string]bool)
	return removed
}
