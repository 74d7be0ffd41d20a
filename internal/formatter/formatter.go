// package formatter provides functions to export notes to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
)

// Format names an export format.
type Format string

const (
	JSON     Format = "json"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "txt"
)

// Formats lists the supported formats in display order.
var Formats = []Format{JSON, CSV, Markdown, Text}

// ParseFormat resolves a format name. "md" and "text" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "txt", "text":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
	}
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	if f == Markdown {
		return "md"
	}
	return string(f)
}

// NotesExport is a user's notes at a point in time.
type NotesExport struct {
	Username   string         `json:"username"`
	ExportedAt time.Time      `json:"exported_at"`
	Notes      []*models.Note `json:"notes"`
}

// NewNotesExport wraps notes for export, never leaving Notes nil.
func NewNotesExport(username string, notes []*models.Note, at time.Time) *NotesExport {
	if notes == nil {
		notes = []*models.Note{}
	}
	return &NotesExport{Username: username, ExportedAt: at.UTC(), Notes: notes}
}

// Export renders export in format f.
func Export(export *NotesExport, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return ExportToJSON(export)
	case CSV:
		return ExportToCSV(export)
	case Markdown:
		return ExportToMarkdown(export)
	case Text:
		return ExportToText(export)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
	}
}

// ExportToJSON renders the export as indented JSON.
func ExportToJSON(export *NotesExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// ExportToCSV converts notes to CSV format with columns: ID, Content, Created, Updated
func ExportToCSV(export *NotesExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Content", "Created", "Updated"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, note := range export.Notes {
		record := []string{
			strconv.FormatInt(note.ID, 10),
			note.Content,
			formatTimestamp(note.CreatedAt),
			formatTimestamp(note.UpdatedAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders one section per note under a heading for the user.
func ExportToMarkdown(export *NotesExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Notes for %s\n\n", export.Username)
	fmt.Fprintf(&buf, "**Notes**: %d\n", len(export.Notes))
	fmt.Fprintf(&buf, "**Exported**: %s\n\n", formatTimestamp(export.ExportedAt))

	for _, note := range export.Notes {
		fmt.Fprintf(&buf, "## Note %d\n\n", note.ID)
		fmt.Fprintf(&buf, "_Updated %s_\n\n", formatTimestamp(note.UpdatedAt))
		buf.WriteString(strings.TrimRight(note.Content, "\n"))
		buf.WriteString("\n\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts notes to plain text format
func ExportToText(export *NotesExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "User: %s\n", export.Username)
	fmt.Fprintf(&buf, "Notes: %d\n\n", len(export.Notes))

	for i, note := range export.Notes {
		if i > 0 {
			buf.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&buf, "[%d] %s\n", note.ID, formatTimestamp(note.UpdatedAt))
		buf.WriteString(strings.TrimRight(note.Content, "\n"))
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// DefaultFilename returns {username}_notes.{ext}.
func DefaultFilename(username string, f Format) string {
	return fmt.Sprintf("%s_notes.%s", username, f.Extension())
}

// WriteExport renders export in format f and writes it to path, defaulting to [DefaultFilename].
func WriteExport(export *NotesExport, f Format, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(export.Username, f)
	}

	data, err := Export(export, f)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
