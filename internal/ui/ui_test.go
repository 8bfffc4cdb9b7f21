package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dirtflix/dfx/internal/curation"
	"github.com/dirtflix/dfx/internal/filters"
	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/tasks"
	dfxtest "github.com/dirtflix/dfx/internal/testing"
)

func newTestModel(raw filters.Raw, items ...models.MediaItem) *Model {
	server := &dfxtest.MockServer{Items: items}
	engine := tasks.NewCuratorEngine(server, curation.NewEngine(), nil, nil)
	m := NewModel(context.Background(), engine, raw, "")
	m.width = 80
	m.height = 24
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func movie(id, name string, genres ...string) models.MediaItem {
	return models.MediaItem{ID: id, Name: name, Kind: models.KindMovie, Genres: genres}
}

func TestFetchFailureKeepsSessionAlive(t *testing.T) {
	m := newTestModel(filters.Raw{Kinds: []string{"movie"}})

	_, cmd := m.Update(fetchedMsg{err: errors.New("connection refused")})

	if m.err != nil {
		t.Errorf("fetch failure should not be fatal: %v", m.err)
	}
	if m.view != WorkingListView {
		t.Errorf("expected to stay on the working list, got view %d", m.view)
	}
	if !m.listsReady {
		t.Errorf("lists should render even after a failed fetch")
	}
	if !strings.Contains(m.notice, "Fetch failed") {
		t.Errorf("failure should surface as a notice, got %q", m.notice)
	}
	if cmd == nil {
		t.Errorf("expected an expiry command for the notice")
	}
}

func TestNoticeExpiry(t *testing.T) {
	m := newTestModel(filters.Raw{Kinds: []string{"movie"}})
	m.setNotice("Transferred 2 items")

	t.Run("stale timer leaves a newer notice alone", func(t *testing.T) {
		stale := m.noticeSeq
		m.setNotice("Sorted by alphabetical")

		m.Update(noticeExpiredMsg{seq: stale})
		if m.notice != "Sorted by alphabetical" {
			t.Errorf("stale expiry should not clear a newer notice, got %q", m.notice)
		}
	})

	t.Run("current timer clears the notice", func(t *testing.T) {
		m.Update(noticeExpiredMsg{seq: m.noticeSeq})
		if m.notice != "" {
			t.Errorf("notice should expire, got %q", m.notice)
		}
	})
}

func TestConformKey(t *testing.T) {
	t.Run("retains only items carrying the filtered genres", func(t *testing.T) {
		m := newTestModel(filters.Raw{Kinds: []string{"movie"}, Genres: []string{"Crime"}})
		m.engine.Curator().Ingest([]models.MediaItem{
			movie("m1", "Heat", "Crime", "Drama"),
			movie("m2", "Up", "Animation"),
		})
		m.rebuildLists()

		m.Update(keyPress('g'))

		working := m.engine.Curator().Working()
		if len(working) != 1 || working[0].ID != "m1" {
			t.Errorf("unexpected working list after conform: %v", working)
		}
		if !strings.Contains(m.notice, "Kept 1 items") {
			t.Errorf("unexpected notice: %q", m.notice)
		}
	})

	t.Run("no genre filters is an advisory, list untouched", func(t *testing.T) {
		m := newTestModel(filters.Raw{Kinds: []string{"movie"}})
		m.engine.Curator().Ingest([]models.MediaItem{movie("m1", "Heat", "Crime")})
		m.rebuildLists()

		m.Update(keyPress('g'))

		if got := m.engine.Curator().WorkingLen(); got != 1 {
			t.Errorf("working list should be untouched, got %d items", got)
		}
		if !strings.Contains(m.notice, "No genre filters") {
			t.Errorf("unexpected notice: %q", m.notice)
		}
	})
}

func TestClearKeys(t *testing.T) {
	newPopulated := func() *Model {
		m := newTestModel(filters.Raw{Kinds: []string{"movie"}})
		m.engine.Curator().Ingest([]models.MediaItem{
			movie("m1", "Heat", "Crime"),
			movie("m2", "Up", "Animation"),
		})
		m.rebuildLists()
		return m
	}

	t.Run("first press only asks for confirmation", func(t *testing.T) {
		m := newPopulated()

		m.Update(keyPress('c'))

		if got := m.engine.Curator().WorkingLen(); got != 2 {
			t.Errorf("single press should not clear, got %d items", got)
		}
		if !strings.Contains(m.notice, "Press c again") {
			t.Errorf("unexpected notice: %q", m.notice)
		}
	})

	t.Run("second press clears the working list", func(t *testing.T) {
		m := newPopulated()

		m.Update(keyPress('c'))
		m.Update(keyPress('c'))

		if got := m.engine.Curator().WorkingLen(); got != 0 {
			t.Errorf("working list should be empty, got %d items", got)
		}
		if !strings.Contains(m.notice, "Cleared 2 items") {
			t.Errorf("unexpected notice: %q", m.notice)
		}
	})

	t.Run("any other key cancels the pending clear", func(t *testing.T) {
		m := newPopulated()

		m.Update(keyPress('c'))
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m.Update(keyPress('c'))

		if got := m.engine.Curator().WorkingLen(); got != 2 {
			t.Errorf("cancelled clear should keep the list, got %d items", got)
		}
	})

	t.Run("clears the master list from its own view", func(t *testing.T) {
		m := newPopulated()
		m.Update(keyPress('t'))
		m.view = MasterListView

		m.Update(keyPress('c'))
		m.Update(keyPress('c'))

		if got := m.engine.Curator().MasterLen(); got != 0 {
			t.Errorf("master list should be empty, got %d items", got)
		}
	})
}

func TestRestartClearsSession(t *testing.T) {
	m := newTestModel(filters.Raw{Kinds: []string{"movie"}})
	m.engine.Curator().Ingest([]models.MediaItem{movie("m1", "Heat", "Crime")})
	m.engine.Curator().Transfer()
	m.engine.Curator().Ingest([]models.MediaItem{movie("m2", "Up", "Animation")})
	m.view = ResultView
	m.result = &tasks.SaveResult{}

	m.Update(keyPress('r'))

	if m.view != WorkingListView {
		t.Errorf("expected the working list view, got %d", m.view)
	}
	if m.engine.Curator().WorkingLen() != 0 || m.engine.Curator().MasterLen() != 0 {
		t.Errorf("restart should empty both collections")
	}
	if m.result != nil {
		t.Errorf("restart should drop the previous result")
	}
}
