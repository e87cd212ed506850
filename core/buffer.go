package core

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// EditorState is a read-only snapshot handed to host UIs.
type EditorState struct {
	FilePath       string
	Modified       bool
	ScrollPosition int
	Cursor         Position
}

// Buffer is the editable text surface for one open file. It owns its rope,
// cursor, undo/redo stacks and clipboard; no two buffers share state.
//
// Range and boundary violations (out-of-range offsets, empty inputs,
// backspace at the buffer start, paste with an empty clipboard) are silent
// no-ops rather than errors, so callers never pre-validate. Only file I/O
// reports failure.
type Buffer interface {
	// Mutation
	InsertText(s string)
	InsertNewline()
	DeleteRange(start, end int)
	Backspace()
	Delete()
	Undo() bool
	Redo() bool

	// Clipboard
	CopySelection(start, end int)
	CopyLine()
	Paste()

	// File I/O
	Load(path string) error
	LoadBytes(path string, data []byte) error
	Save() error
	MarkSaved()

	// Reads
	GetLine(line int) (string, bool)
	LineCount() int
	TotalChars() int
	Content() string
	IsModified() bool
	Path() string
	Snapshot() EditorState

	// Cursor
	SetCursor(line, col int)
	Cursor() Position
	DisplayCursor() (line, col int)
	MoveCursorUp()
	MoveCursorDown()
	MoveCursorLeft()
	MoveCursorRight()
	MoveCursorLineStart()
	MoveCursorLineEnd()
}

// ropeBuffer implements Buffer on top of a rope.
type ropeBuffer struct {
	rope     *Rope
	path     string
	modified bool
	cursor   Position
	log      *actionLog
	clip     Clipboard
}

// NewBuffer creates an empty buffer. A nil clipboard gets an in-memory one.
func NewBuffer(clip Clipboard) Buffer {
	if clip == nil {
		clip = NewMemoryClipboard()
	}
	return &ropeBuffer{
		rope: NewRope(""),
		log:  newActionLog(),
		clip: clip,
	}
}

// NewBufferFromString creates a buffer preloaded with content, with no
// associated file path.
func NewBufferFromString(content string, clip Clipboard) Buffer {
	b := NewBuffer(clip).(*ropeBuffer)
	b.rope = NewRope(content)
	return b
}

// InsertText inserts s at the cursor offset. Empty input or a cursor
// offset beyond the buffer length is a no-op. On success the cursor lands
// after the inserted text and the edit is recorded for undo.
func (b *ropeBuffer) InsertText(s string) {
	position := b.cursor.Offset
	if s == "" || position > b.rope.Len() {
		return
	}
	before := b.cursor

	b.rope.Insert(position, s)
	b.modified = true
	b.cursor.Offset = position + utf8.RuneCountInString(s)
	b.syncCursorFromOffset()

	b.log.record(EditAction{
		Kind:         ActionInsert,
		Offset:       position,
		Text:         s,
		CursorBefore: before,
		CursorAfter:  b.cursor,
	})
}

// InsertNewline inserts a line break at the cursor.
func (b *ropeBuffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteRange removes the runes in [start, end). Anything but
// start < end <= length is a no-op. The removed text is recorded so undo
// can reinsert it, and the cursor moves to start.
func (b *ropeBuffer) DeleteRange(start, end int) {
	if start < 0 || start >= end || end > b.rope.Len() {
		return
	}
	before := b.cursor
	removed := b.rope.Slice(start, end)

	b.rope.Delete(start, end)
	b.modified = true
	b.cursor.Offset = start
	b.syncCursorFromOffset()

	b.log.record(EditAction{
		Kind:         ActionDelete,
		Offset:       start,
		Text:         removed,
		CursorBefore: before,
		CursorAfter:  b.cursor,
	})
}

// Backspace deletes the rune before the cursor; a no-op at the start of
// the buffer.
func (b *ropeBuffer) Backspace() {
	if b.cursor.Offset > 0 {
		b.DeleteRange(b.cursor.Offset-1, b.cursor.Offset)
	}
}

// Delete deletes the rune at the cursor; a no-op at the end of the buffer.
func (b *ropeBuffer) Delete() {
	if b.cursor.Offset < b.rope.Len() {
		b.DeleteRange(b.cursor.Offset, b.cursor.Offset+1)
	}
}

// Undo reverses the most recent edit and restores the cursor recorded
// before it. Returns false when the undo stack is empty.
func (b *ropeBuffer) Undo() bool {
	action, ok := b.log.popUndo()
	if !ok {
		return false
	}
	switch action.Kind {
	case ActionInsert:
		end := action.Offset + utf8.RuneCountInString(action.Text)
		if end <= b.rope.Len() {
			b.rope.Delete(action.Offset, end)
		}
	case ActionDelete:
		if action.Offset <= b.rope.Len() {
			b.rope.Insert(action.Offset, action.Text)
		}
	}
	b.cursor = action.CursorBefore
	b.log.pushRedo(action)
	b.modified = true
	return true
}

// Redo re-applies the most recently undone edit and restores the cursor
// recorded after it. Returns false when the redo stack is empty.
func (b *ropeBuffer) Redo() bool {
	action, ok := b.log.popRedo()
	if !ok {
		return false
	}
	switch action.Kind {
	case ActionInsert:
		if action.Offset <= b.rope.Len() {
			b.rope.Insert(action.Offset, action.Text)
		}
	case ActionDelete:
		end := action.Offset + utf8.RuneCountInString(action.Text)
		if end <= b.rope.Len() {
			b.rope.Delete(action.Offset, end)
		}
	}
	b.cursor = action.CursorAfter
	b.log.pushUndo(action)
	b.modified = true
	return true
}

// CopySelection copies the runes in [start, end) to the clipboard. Invalid
// ranges leave the clipboard untouched.
func (b *ropeBuffer) CopySelection(start, end int) {
	if start < 0 || start >= end || end > b.rope.Len() {
		return
	}
	b.clip.Write(b.rope.Slice(start, end))
}

// CopyLine copies the current line to the clipboard, including its
// trailing newline. A final line without one is copied as-is.
func (b *ropeBuffer) CopyLine() {
	start := b.rope.LineStart(b.cursor.Line)
	end := b.rope.Len()
	if b.cursor.Line+1 < b.rope.LineCount() {
		end = b.rope.LineStart(b.cursor.Line + 1)
	}
	b.clip.Write(b.rope.Slice(start, end))
}

// Paste inserts the clipboard content at the cursor. An empty or
// unreadable clipboard is a no-op.
func (b *ropeBuffer) Paste() {
	content, err := b.clip.Read()
	if err != nil || content == "" {
		return
	}
	b.InsertText(content)
}

// Load replaces the buffer content with the file at path, resets the
// cursor to the buffer start and clears both history stacks. On failure
// nothing in memory changes.
func (b *ropeBuffer) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return b.LoadBytes(path, data)
}

// LoadBytes replaces the buffer content with data as if it had been read
// from path, with the same cursor and history resets as Load. Hosts that
// read the file off their update loop apply the bytes here, keeping all
// buffer mutation on the owning thread. On failure nothing changes.
func (b *ropeBuffer) LoadBytes(path string, data []byte) error {
	if !utf8.Valid(data) {
		return fmt.Errorf("load %s: %w", path, ErrInvalidEncoding)
	}
	b.rope = NewRope(string(data))
	b.path = path
	b.modified = false
	b.cursor = Position{}
	b.log.clear()
	return nil
}

// Save writes the buffer content to its file path and clears the modified
// flag. On failure the in-memory content is untouched.
func (b *ropeBuffer) Save() error {
	if b.path == "" {
		return ErrNoFilePath
	}
	if err := os.WriteFile(b.path, []byte(b.rope.String()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	b.modified = false
	return nil
}

// MarkSaved clears the modified flag without writing anything. For hosts
// that perform the write themselves from a captured content snapshot and
// report completion afterwards.
func (b *ropeBuffer) MarkSaved() {
	b.modified = false
}

// GetLine returns the line at index without its trailing line break, and
// false when the index is out of range.
func (b *ropeBuffer) GetLine(line int) (string, bool) {
	if line < 0 || line >= b.rope.LineCount() {
		return "", false
	}
	return strings.TrimRight(b.rope.Line(line), "\r\n"), true
}

// LineCount returns the number of lines; always at least one.
func (b *ropeBuffer) LineCount() int {
	return b.rope.LineCount()
}

// TotalChars returns the number of runes in the buffer.
func (b *ropeBuffer) TotalChars() int {
	return b.rope.Len()
}

// Content returns the whole buffer as a string.
func (b *ropeBuffer) Content() string {
	return b.rope.String()
}

// IsModified reports whether the buffer has unsaved changes.
func (b *ropeBuffer) IsModified() bool {
	return b.modified
}

// Path returns the associated file path, if any.
func (b *ropeBuffer) Path() string {
	return b.path
}

// Snapshot returns the host-facing state of the buffer. ScrollPosition is
// zero here; the view layer owns scrolling and stamps it in.
func (b *ropeBuffer) Snapshot() EditorState {
	return EditorState{
		FilePath: b.path,
		Modified: b.modified,
		Cursor:   b.cursor,
	}
}
