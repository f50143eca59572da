package term

import (
	"strings"

	"github.com/google/uuid"
)

// Source is one unit of policy text. Every Term parsed from it shares the
// same *Source; it is never modified after parsing begins.
type Source struct {
	ID       uuid.UUID
	Filename string
	Text     string
}

// NewSource creates a source unit with a fresh ID.
func NewSource(filename, text string) *Source {
	return &Source{
		ID:       uuid.New(),
		Filename: filename,
		Text:     text,
	}
}

// Position converts a byte offset into a 1-based line and column.
func (s *Source) Position(offset int) (line, column int) {
	if s == nil {
		return 0, 0
	}
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	if offset < 0 {
		offset = 0
	}
	prefix := s.Text[:offset]
	line = strings.Count(prefix, "\n") + 1
	column = offset - strings.LastIndexByte(prefix, '\n')
	return line, column
}

// Span locates a node in its source unit. Spans are diagnostics only and
// never participate in equality.
type Span struct {
	Source *Source
	Start  int
	End    int
}

// Line returns the 1-based line of the span start.
func (s Span) Line() int {
	line, _ := s.Source.Position(s.Start)
	return line
}

// Column returns the 1-based column of the span start.
func (s Span) Column() int {
	_, col := s.Source.Position(s.Start)
	return col
}

// Text returns the source text covered by the span.
func (s Span) Text() string {
	if s.Source == nil || s.Start < 0 || s.End > len(s.Source.Text) || s.Start > s.End {
		return ""
	}
	return s.Source.Text[s.Start:s.End]
}
