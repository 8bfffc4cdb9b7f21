package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dirtflix/dfx/internal/curation"
	"github.com/dirtflix/dfx/internal/filters"
	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/tasks"
	"github.com/dirtflix/dfx/internal/views"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	WorkingListView ViewState = iota
	MasterListView
	DetailView
	SaveFormView
	SaveView
	ResultView
)

// noticeTTL is how long a status notice stays on screen before expiring.
const noticeTTL = 5 * time.Second

// sortCycle is the order the sort key steps through on repeated presses.
var sortCycle = []curation.SortKey{
	curation.SortNone,
	curation.SortAlphabetical,
	curation.SortReleaseDateDesc,
	curation.SortRatingDesc,
	curation.SortRandom,
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.CuratorEngine
	raw          filters.Raw
	width        int
	height       int
	workingList  list.Model
	masterList   list.Model
	listsReady   bool
	detail       views.Detail
	detailFrom   ViewState
	nameInput    textinput.Model
	userID       string
	notice       string
	noticeSeq    int
	pendingClear bool
	progressChan chan tasks.ProgressUpdate
	saveDone     chan saveCompleteMsg
	progress     tasks.ProgressUpdate
	result       *tasks.SaveResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. The raw filters drive the initial fetch;
// the user id, when set, owns the created playlist.
func NewModel(ctx context.Context, engine *tasks.CuratorEngine, raw filters.Raw, userID string) *Model {
	input := textinput.New()
	input.Placeholder = "Playlist name"
	input.CharLimit = 120

	return &Model{
		ctx:       ctx,
		view:      WorkingListView,
		engine:    engine,
		raw:       raw,
		userID:    userID,
		nameInput: input,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init kicks off the initial fetch into the working collection.
func (m *Model) Init() tea.Cmd {
	return m.fetchItems()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listsReady {
			m.workingList.SetSize(msg.Width-4, msg.Height-8)
			m.masterList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case WorkingListView:
			return m.handleWorkingKeys(msg)
		case MasterListView:
			return m.handleMasterKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case SaveFormView:
			return m.handleSaveFormKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case fetchedMsg:
		// A failed fetch is a notice, not a fatal error. The session stays
		// usable with whatever the lists already hold.
		m.rebuildLists()
		if msg.err != nil {
			return m, m.setNotice(fmt.Sprintf("Fetch failed: %v", msg.err))
		}
		return m, m.setNotice(msg.result.Notice)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case saveCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		if m.progressChan != nil {
			m.progressChan = nil
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case WorkingListView:
		return m.renderWorkingList()
	case MasterListView:
		return m.renderMasterList()
	case DetailView:
		return m.renderDetail()
	case SaveFormView:
		return m.renderSaveForm()
	case SaveView:
		return m.renderSave()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleWorkingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "c" {
		m.pendingClear = false
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.view = MasterListView
		return m, nil
	case "t":
		moved := m.engine.Curator().Transfer()
		m.rebuildLists()
		return m, m.setNotice(fmt.Sprintf("Transferred %d items", moved))
	case "g":
		retained, err := m.engine.Curator().ConformToGenres(m.raw.Genres)
		if err != nil {
			return m, m.setNotice("No genre filters active, working list unchanged")
		}
		m.rebuildLists()
		return m, m.setNotice(fmt.Sprintf("Kept %d items carrying all filtered genres", retained))
	case "c":
		if !m.pendingClear {
			m.pendingClear = true
			return m, m.setNotice(fmt.Sprintf("Press c again to clear %d working items", m.engine.Curator().WorkingLen()))
		}
		m.pendingClear = false
		cleared := m.engine.Curator().ClearWorking()
		m.rebuildLists()
		return m, m.setNotice(fmt.Sprintf("Cleared %d items", cleared))
	case "x":
		if item, ok := m.selectedItem(m.workingList); ok {
			m.engine.Curator().RemoveFromWorking([]string{item.ID})
			m.rebuildLists()
		}
		return m, nil
	case "enter":
		if item, ok := m.selectedItem(m.workingList); ok {
			m.detail = views.ProjectDetail(item)
			m.detailFrom = WorkingListView
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.workingList, cmd = m.workingList.Update(msg)
	return m, cmd
}

func (m *Model) handleMasterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "c" {
		m.pendingClear = false
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "esc":
		m.view = WorkingListView
		return m, nil
	case "o":
		key := m.nextSortKey()
		m.engine.Curator().Sort(key)
		m.rebuildLists()
		return m, m.setNotice(fmt.Sprintf("Sorted by %s", key))
	case "c":
		if !m.pendingClear {
			m.pendingClear = true
			return m, m.setNotice(fmt.Sprintf("Press c again to clear %d selected items", m.engine.Curator().MasterLen()))
		}
		m.pendingClear = false
		cleared := m.engine.Curator().ClearMaster()
		m.rebuildLists()
		return m, m.setNotice(fmt.Sprintf("Cleared %d items", cleared))
	case "x":
		if item, ok := m.selectedItem(m.masterList); ok {
			m.engine.Curator().RemoveFromMaster([]string{item.ID})
			m.rebuildLists()
		}
		return m, nil
	case "s":
		if m.engine.Curator().MasterLen() == 0 {
			return m, m.setNotice("Nothing selected yet")
		}
		m.nameInput.Focus()
		m.view = SaveFormView
		return m, textinput.Blink
	case "enter":
		if item, ok := m.selectedItem(m.masterList); ok {
			m.detail = views.ProjectDetail(item)
			m.detailFrom = MasterListView
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.masterList, cmd = m.masterList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.view = m.detailFrom
		return m, nil
	}
	return m, nil
}

func (m *Model) handleSaveFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.nameInput.Blur()
		m.view = MasterListView
		return m, nil
	case "enter":
		if m.nameInput.Value() == "" {
			return m, nil
		}
		m.view = SaveView
		return m, m.startSave()
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		// Restart is a fresh session: both collections are emptied.
		m.engine.Curator().ClearAll()
		m.rebuildLists()
		m.view = WorkingListView
		m.result = nil
		m.err = nil
		m.notice = ""
		m.nameInput.SetValue("")
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.listsReady {
		return m, nil
	}
	var cmd tea.Cmd
	switch m.view {
	case WorkingListView:
		m.workingList, cmd = m.workingList.Update(msg)
	case MasterListView:
		m.masterList, cmd = m.masterList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedItem(l list.Model) (models.MediaItem, bool) {
	selected := l.SelectedItem()
	if selected == nil {
		return models.MediaItem{}, false
	}
	card, ok := selected.(cardItem)
	if !ok {
		return models.MediaItem{}, false
	}
	return card.item, true
}

// rebuildLists regenerates both list models from the curation engine. The
// master list follows the engine's display order.
func (m *Model) rebuildLists() {
	curator := m.engine.Curator()

	working := views.ProjectListView("Working", curator.Working())
	m.workingList = list.New(newCardItems(working, curator.Working()), list.NewDefaultDelegate(), 0, 0)
	m.workingList.Title = fmt.Sprintf("%s (%d)", working.Name, working.Count)
	m.workingList.SetSize(m.width-4, m.height-8)

	master := views.ProjectListView("Selected", curator.MasterView())
	m.masterList = list.New(newCardItems(master, curator.MasterView()), list.NewDefaultDelegate(), 0, 0)
	m.masterList.Title = fmt.Sprintf("%s (%d)", master.Name, master.Count)
	m.masterList.SetSize(m.width-4, m.height-8)

	m.listsReady = true
}

// setNotice shows a transient status line and schedules its expiry. A newer
// notice supersedes any pending expiry.
func (m *Model) setNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) nextSortKey() curation.SortKey {
	current := m.engine.Curator().SortKey()
	for i, key := range sortCycle {
		if key == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return curation.SortNone
}

func (m *Model) fetchItems() tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.Fetch(m.ctx, nil, m.raw)
		return fetchedMsg{result: result, err: err}
	}
}

func (m *Model) startSave() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	draft := models.PlaylistDraft{
		Name:      m.nameInput.Value(),
		UserID:    m.userID,
		CanEdit:   true,
		MediaType: "Video",
	}

	done := make(chan saveCompleteMsg, 1)
	go func() {
		result, err := m.engine.Save(m.ctx, progress, draft)
		done <- saveCompleteMsg{result: result, err: err}
		close(progress)
	}()
	m.saveDone = done

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return nil
		}

		update, ok := <-m.progressChan
		if !ok {
			return <-m.saveDone
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderWorkingList() string {
	if !m.listsReady {
		return styles.title.Render("Fetching items...")
	}
	helpKeys := []key.Binding{m.keys.enter, m.keys.transfer, m.keys.conform, m.keys.remove, m.keys.clear, m.keys.swap, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.workingList.View(), m.renderNotice(), helpView)
}

func (m *Model) renderMasterList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.sort, m.keys.remove, m.keys.clear, m.keys.save, m.keys.swap, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.masterList.View(), m.renderNotice(), helpView)
}

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	return styles.warn.Render(m.notice)
}

func (m *Model) renderDetail() string {
	title := styles.title.Render(m.detail.Title)

	body := fmt.Sprintf(
		"Type: %s\nYear: %s\nCommunity Rating: %s\nCritic Rating: %s\nGenres: %s\nStudio: %s",
		m.detail.KindLabel,
		m.detail.YearLabel,
		m.detail.CommunityLbl,
		m.detail.CriticLbl,
		m.detail.GenreLabel,
		m.detail.StudioLabel,
	)

	if m.detail.HasTagline {
		body += fmt.Sprintf("\n\n%s", styles.help.Render(m.detail.Tagline))
	}
	body += fmt.Sprintf("\n\n%s", m.detail.Overview)

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderSaveForm() string {
	title := styles.title.Render(fmt.Sprintf("Save %d items as playlist", m.engine.Curator().MasterLen()))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.nameInput.View(), helpView)
}

func (m *Model) renderSave() string {
	title := styles.title.Render("Saving Playlist")
	return fmt.Sprintf("%s\n\n%s", title, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Save failed: %v\n\nPress r to go back, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to go back, q to quit")
	}

	title := styles.ok.Render("✓ Playlist Created!")
	info := fmt.Sprintf(
		"\nName: %s\nID: %s\nItems: %d",
		m.result.Playlist.Name,
		m.result.Playlist.ID,
		m.result.Playlist.ItemCount,
	)

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
