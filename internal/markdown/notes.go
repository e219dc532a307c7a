package markdown

import (
	"strings"
	"time"

	"tasknote/internal/record"
)

const (
	noteHeaderPrefix = "## "

	// NoteTimeLayout is the fixed-width header timestamp: yyyy-MM-dd HH:mm,
	// 24-hour clock, ASCII digits.
	NoteTimeLayout = "2006-01-02 15:04"
)

// EncodeNotes renders one "## <timestamp>" block per note, separated by a
// blank line.
func EncodeNotes(notes []record.Note) string {
	blocks := make([]string, 0, len(notes))

	for _, n := range notes {
		blocks = append(blocks, noteHeaderPrefix+FormatNoteTime(n.CreatedAt)+"\n\n"+n.Content)
	}

	return joinWithTrailingNewline(blocks, "\n\n")
}

// FormatNoteTime renders t in the note header layout, in local time.
func FormatNoteTime(t time.Time) string {
	return t.In(time.Local).Format(NoteTimeLayout)
}

// ParseNoteTime parses a header timestamp in local time.
func ParseNoteTime(s string) (time.Time, bool) {
	// The hour field would otherwise accept a single digit.
	if len(s) != len(NoteTimeLayout) {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(NoteTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseNoteHeader reports whether line is a note header and returns its time.
func parseNoteHeader(line string) (time.Time, bool) {
	rest, ok := strings.CutPrefix(line, noteHeaderPrefix)
	if !ok {
		return time.Time{}, false
	}

	return ParseNoteTime(rest)
}

// DecodeNotes parses note blocks out of content.
//
// A header line starts a new block; everything up to the next header is the
// body, trimmed at the block boundaries. Blocks with an empty body are
// dropped, and so is any text before the first header.
func DecodeNotes(content string) []record.Note {
	if strings.TrimSpace(content) == "" {
		return []record.Note{}
	}

	var (
		notes   = []record.Note{}
		current time.Time
		open    bool
		body    []string
	)

	flush := func() {
		if !open {
			return
		}

		text := strings.TrimSpace(strings.Join(body, "\n"))
		if text != "" {
			notes = append(notes, record.NewNote(text, current))
		}
	}

	for _, line := range splitLines(content) {
		if at, ok := parseNoteHeader(line); ok {
			flush()

			current = at
			open = true
			body = body[:0]

			continue
		}

		body = append(body, line)
	}

	flush()

	return notes
}
