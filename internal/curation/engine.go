package curation

import (
	"math/rand"
	"time"

	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/shared"
)

// Engine owns the working and master collections plus the master-only sort
// key. All list mutations go through it.
type Engine struct {
	working *Collection
	master  *Collection

	sortKey SortKey
	// view caches the master display order for the current sort key; nil
	// means arrival order. The underlying master collection always keeps
	// arrival order so SortNone can restore it exactly.
	view []models.MediaItem

	rng *rand.Rand
}

// NewEngine creates an engine with two empty collections and a time-seeded
// shuffle source.
func NewEngine() *Engine {
	return NewEngineWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewEngineWithSource creates an engine using the given random source for the
// random sort. Tests inject a fixed seed here.
func NewEngineWithSource(src rand.Source) *Engine {
	return &Engine{
		working: NewCollection("working", FirstSeenWins),
		master:  NewCollection("master", FirstSeenWins),
		sortKey: SortNone,
		rng:     rand.New(src),
	}
}

// Working returns the working collection's items in arrival order.
func (e *Engine) Working() []models.MediaItem { return e.working.Items() }

// WorkingLen returns the working collection's size.
func (e *Engine) WorkingLen() int { return e.working.Len() }

// Master returns the master collection's items in arrival order, ignoring
// the current sort key.
func (e *Engine) Master() []models.MediaItem { return e.master.Items() }

// MasterLen returns the master collection's size.
func (e *Engine) MasterLen() int { return e.master.Len() }

// MasterIDs returns the master item ids in current display order. This is
// the id sequence submitted when the playlist is saved.
func (e *Engine) MasterIDs() []string {
	view := e.MasterView()
	ids := make([]string, len(view))
	for i, item := range view {
		ids[i] = item.ID
	}
	return ids
}

// Ingest adds fetched items to the working list, skipping ids already
// present. Returns the count of newly added items.
func (e *Engine) Ingest(items []models.MediaItem) int {
	return e.working.Ingest(items)
}

// Transfer offers every working item to the master list under the same
// deduplication rule as ingest, then unconditionally empties the working
// list; duplicates already in master are dropped, not kept. Returns the
// count newly added to master.
func (e *Engine) Transfer() int {
	moved := e.working.Items()
	added := e.master.Ingest(moved)
	e.working.Clear()

	if e.sortKey != SortNone && added > 0 {
		e.resortView()
	}

	return added
}

// RemoveFromWorking removes the given ids from the working list; unmatched
// ids are ignored. Returns the removed count.
func (e *Engine) RemoveFromWorking(ids []string) int {
	return e.working.RemoveByIDs(ids)
}

// RemoveFromMaster removes the given ids from the master list and its
// display view; unmatched ids are ignored. Returns the removed count.
func (e *Engine) RemoveFromMaster(ids []string) int {
	removed := e.master.RemoveByIDs(ids)
	if removed > 0 && e.view != nil {
		e.pruneView()
	}
	return removed
}

// ClearWorking empties the working list and returns the removed count.
func (e *Engine) ClearWorking() int { return e.working.Clear() }

// ClearMaster empties the master list and returns the removed count. The
// sort key is left as-is; it applies to whatever arrives next.
func (e *Engine) ClearMaster() int {
	e.view = nil
	return e.master.Clear()
}

// ClearAll empties both lists, returning the removed counts.
func (e *Engine) ClearAll() (working, master int) {
	return e.ClearWorking(), e.ClearMaster()
}

// ConformToGenres retains only working items whose genre set is a superset
// of required; items without genres are excluded. An empty required set is
// an advisory: the collection is left untouched and [shared.ErrNoGenresSelected]
// is returned with a retained count of 0.
func (e *Engine) ConformToGenres(required []string) (int, error) {
	if len(required) == 0 {
		return 0, shared.ErrNoGenresSelected
	}

	retained := e.working.retain(func(item models.MediaItem) bool {
		if len(item.Genres) == 0 {
			return false
		}
		for _, genre := range required {
			if !item.HasGenre(genre) {
				return false
			}
		}
		return true
	})

	return retained, nil
}

// Sort sets the master display order and returns the resulting view.
// Sorting is presentational: arrival order is retained internally, so
// selecting SortNone restores the exact fetch order. SortRandom re-rolls a
// fresh shuffle every time it is (re)selected.
func (e *Engine) Sort(key SortKey) []models.MediaItem {
	e.sortKey = key
	if key == SortNone {
		e.view = nil
	} else {
		e.view = sortItems(e.master.items, key, e.rng)
	}
	return e.MasterView()
}

// SortKey returns the current master sort key.
func (e *Engine) SortKey() SortKey { return e.sortKey }

// MasterView returns the master items in current display order: the sorted
// view when a key is active, arrival order otherwise.
func (e *Engine) MasterView() []models.MediaItem {
	if e.sortKey == SortNone || e.view == nil {
		return e.master.Items()
	}
	view := make([]models.MediaItem, len(e.view))
	copy(view, e.view)
	return view
}

// resortView recomputes the display view after master gains items. The
// comparator keys re-sort; random keeps its current order and appends the
// newcomers rather than re-rolling the whole list.
func (e *Engine) resortView() {
	if e.sortKey == SortRandom {
		present := make(map[string]bool, len(e.view))
		for _, item := range e.view {
			present[item.ID] = true
		}
		for _, item := range e.master.items {
			if !present[item.ID] {
				e.view = append(e.view, item)
			}
		}
		return
	}
	e.view = sortItems(e.master.items, e.sortKey, e.rng)
}

// pruneView drops view entries no longer present in master.
func (e *Engine) pruneView() {
	kept := e.view[:0]
	for _, item := range e.view {
		if e.master.Contains(item.ID) {
			kept = append(kept, item)
		}
	}
	e.view = kept
}
