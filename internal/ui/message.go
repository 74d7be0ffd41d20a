package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/muse/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgNotesFetched MsgKind = iota
	MsgNoteDeleted
)

type notesFetched struct {
	notes []*models.Note
	err   error
}

type noteDeleted struct {
	id   int64
	rows int64
	err  error
}

// notesFetchedMsg is the constructor for [MsgNotesFetched]
func notesFetchedMsg(notes []*models.Note, err error) Msg {
	return Msg{kind: MsgNotesFetched, data: notesFetched{notes, err}}
}

// noteDeletedMsg is the constructor for [MsgNoteDeleted]
func noteDeletedMsg(id, rows int64, err error) Msg {
	return Msg{kind: MsgNoteDeleted, data: noteDeleted{id, rows, err}}
}
