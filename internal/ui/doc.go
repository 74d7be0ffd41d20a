// Package ui implements an interactive terminal note browser using bubbletea's Elm architecture.
//
// The TUI provides three views:
//  1. [NoteListView] : Browse and filter the user's notes
//  2. [NoteDetailView] : Read a note in full
//  3. [ConfirmDeleteView] : Confirm deleting the selected note
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving storage results via the Msg union type.
// Deletes go through the same owner-filtered store the web app uses.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, d, y/n, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
