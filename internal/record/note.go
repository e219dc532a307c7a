package record

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Note is a free-form, possibly multi-line markdown snippet.
//
// CreatedAt doubles as the note's header on disk, so it is only as precise as
// the file format (minutes) once the note has been reloaded.
type Note struct {
	ID        string
	Content   string
	CreatedAt time.Time
}

// NewNote returns a note with a fresh ID created at createdAt.
func NewNote(content string, createdAt time.Time) Note {
	return Note{
		ID:        NewID(),
		Content:   content,
		CreatedAt: createdAt,
	}
}

// WithContent returns a copy of n with the content replaced.
func (n Note) WithContent(content string) Note {
	n.Content = content

	return n
}

// Preview renders the note's markdown as a single line of plain text,
// truncated to limit runes (limit <= 0 means no truncation).
func (n Note) Preview(limit int) string {
	source := []byte(n.Content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var buf strings.Builder

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if node.Type() == ast.TypeBlock && node.PreviousSibling() != nil {
			buf.WriteByte(' ')
		}

		switch node := node.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))

			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := node.Lines()
			for i := range lines.Len() {
				seg := lines.At(i)
				buf.Write(seg.Value(source))
				buf.WriteByte(' ')
			}

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	preview := strings.Join(strings.Fields(buf.String()), " ")
	if preview == "" {
		// Content that is pure markup (a lone rule, say) still deserves a line.
		preview = strings.Join(strings.Fields(n.Content), " ")
	}

	if limit <= 0 || utf8.RuneCountInString(preview) <= limit {
		return preview
	}

	const ellipsis = "..."

	runes := []rune(preview)
	if limit <= len(ellipsis) {
		return string(runes[:limit])
	}

	return string(runes[:limit-len(ellipsis)]) + ellipsis
}
