package store

import (
	"strings"
	"time"

	"tasknote/internal/markdown"
	"tasknote/internal/record"
)

// NoteFile is the note file name inside the storage directory.
const NoteFile = "notes.md"

// NoteStore keeps notes.md and an in-memory note list in sync.
type NoteStore struct {
	*core[record.Note]
}

// OpenNotes opens the note store for dir. See [OpenTasks].
func OpenNotes(dir string, opts ...Option) (*NoteStore, error) {
	c := newCore(format[record.Note]{
		kind:   "notes",
		file:   NoteFile,
		encode: markdown.EncodeNotes,
		decode: markdown.DecodeNotes,
	}, opts)

	err := c.open(dir)
	if err != nil {
		return nil, err
	}

	return &NoteStore{core: c}, nil
}

// Notes returns a copy of the note list, newest first.
func (s *NoteStore) Notes() []record.Note {
	return s.Snapshot().Items
}

// Add prepends a new note stamped now. Blank content is ignored.
func (s *NoteStore) Add(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	return s.mutate(func(notes []record.Note) ([]record.Note, bool) {
		return prepend(notes, record.NewNote(content, time.Now())), true
	})
}

// Update replaces the content of the note with id. Blank content is ignored.
func (s *NoteStore) Update(id, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	return s.mutate(func(notes []record.Note) ([]record.Note, bool) {
		return replaceFirst(notes, noteID, id, func(n record.Note) record.Note {
			return n.WithContent(content)
		})
	})
}

// Delete removes the note with id.
func (s *NoteStore) Delete(id string) error {
	return s.mutate(func(notes []record.Note) ([]record.Note, bool) {
		return removeFirst(notes, noteID, id)
	})
}

func noteID(n record.Note) string { return n.ID }
