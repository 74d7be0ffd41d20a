package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/muse/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	NoteListView ViewState = iota
	NoteDetailView
	ConfirmDeleteView
)

// NoteSource is the note storage the browser reads from and deletes through.
type NoteSource interface {
	ListForUser(ctx context.Context, username string) ([]*models.Note, error)
	Delete(ctx context.Context, id int64, username string) (int64, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	source   NoteSource
	username string
	logger   *log.Logger
	width    int
	height   int
	noteList list.Model
	notes    []*models.Note
	selected *models.Note
	status   string
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a note browser for username.
func NewModel(ctx context.Context, source NoteSource, username string, logger *log.Logger) *Model {
	m := &Model{
		ctx:      ctx,
		view:     NoteListView,
		source:   source,
		username: username,
		logger:   logger,
		help:     help.New(),
		keys:     newKeyMap(),
	}
	m.setNotes(nil)
	return m
}

// Init fetches the user's notes.
func (m *Model) Init() tea.Cmd {
	return m.fetchNotes()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.noteList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case NoteListView:
			return m.handleListKeys(msg)
		case NoteDetailView:
			return m.handleDetailKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	if m.view == NoteListView {
		var cmd tea.Cmd
		m.noteList, cmd = m.noteList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgNotesFetched:
		data := msg.data.(notesFetched)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.setNotes(data.notes)
		return m, nil

	case MsgNoteDeleted:
		data := msg.data.(noteDeleted)
		m.view = NoteListView
		m.selected = nil
		switch {
		case data.err != nil:
			m.err = data.err
			return m, nil
		case data.rows == 0:
			m.status = styles.warn.Render(fmt.Sprintf("Note %d was already gone", data.id))
		default:
			m.status = styles.ok.Render(fmt.Sprintf("Deleted note %d", data.id))
		}
		return m, m.fetchNotes()
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case NoteListView:
		return m.renderList()
	case NoteDetailView:
		return m.renderDetail()
	case ConfirmDeleteView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.noteList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.noteList, cmd = m.noteList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		m.status = ""
		return m, m.fetchNotes()
	case key.Matches(msg, m.keys.enter):
		if note := m.selectedNote(); note != nil {
			m.selected = note
			m.view = NoteDetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.del):
		if note := m.selectedNote(); note != nil {
			m.selected = note
			m.view = ConfirmDeleteView
		}
		return m, nil
	}

	if m.err != nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.noteList, cmd = m.noteList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = NoteListView
		m.selected = nil
	case key.Matches(msg, m.keys.del):
		m.view = ConfirmDeleteView
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m, m.deleteNote(m.selected.ID)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.view = NoteListView
		m.selected = nil
	}
	return m, nil
}

func (m *Model) selectedNote() *models.Note {
	if item, ok := m.noteList.SelectedItem().(noteItem); ok {
		return item.note
	}
	return nil
}

func (m *Model) setNotes(notes []*models.Note) {
	m.notes = notes
	items := make([]list.Item, len(notes))
	for i, n := range notes {
		items[i] = noteItem{note: n}
	}
	m.noteList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.noteList.Title = fmt.Sprintf("Notes for %s", m.username)
	m.noteList.SetShowHelp(false)
	if m.width > 0 {
		m.noteList.SetSize(m.width-4, m.height-8)
	}
}

func (m *Model) fetchNotes() tea.Cmd {
	return func() tea.Msg {
		notes, err := m.source.ListForUser(m.ctx, m.username)
		if err != nil && m.logger != nil {
			m.logger.Error("failed to list notes", "user", m.username, "error", err)
		}
		return notesFetchedMsg(notes, err)
	}
}

func (m *Model) deleteNote(id int64) tea.Cmd {
	return func() tea.Msg {
		rows, err := m.source.Delete(m.ctx, id, m.username)
		if m.logger != nil {
			m.logger.Info("note deleted", "id", id, "rows", rows, "error", err)
		}
		return noteDeletedMsg(id, rows, err)
	}
}

func (m *Model) renderList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.del, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	body := m.noteList.View()
	if len(m.notes) == 0 {
		body = styles.title.Render(m.noteList.Title) + "\n" + styles.help.Render("No notes yet.")
	}
	if m.status != "" {
		body = fmt.Sprintf("%s\n%s", body, m.status)
	}
	return fmt.Sprintf("%s\n\n%s", body, helpView)
}

func (m *Model) renderDetail() string {
	title := styles.title.Render(fmt.Sprintf("Note %d", m.selected.ID))
	meta := styles.help.Render(fmt.Sprintf("created %s • updated %s",
		m.selected.CreatedAt.Local().Format("Jan 02, 2006 15:04"),
		m.selected.UpdatedAt.Local().Format("Jan 02, 2006 15:04"),
	))

	body := styles.body
	if m.width > 8 {
		body = body.Width(m.width - 8)
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.del, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, meta, body.Render(m.selected.Content), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.warn.Render(fmt.Sprintf("Delete note %d?", m.selected.ID))
	preview := noteItem{note: m.selected}.Title()

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n  %s\n\n%s", title, preview, helpView)
}
