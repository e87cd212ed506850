package core

import "strings"

// Position identifies a location in a buffer. Offset is the absolute rune
// offset and is always derived from Line and Col after a move or edit,
// never mutated independently.
type Position struct {
	Line   int
	Col    int
	Offset int
}

// maxColumn returns the largest valid column on a line. The trailing
// newline is never addressable, so a line ending in '\n' tops out one rune
// earlier; only the final line without a newline admits Col == length.
func (b *ropeBuffer) maxColumn(line int) int {
	text := b.rope.Line(line)
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	if strings.HasSuffix(text, "\n") {
		return n - 1
	}
	return n
}

// SetCursor places the cursor at (line, col), clamping col to the line's
// valid range. Out-of-range lines leave the cursor where it was.
func (b *ropeBuffer) SetCursor(line, col int) {
	if line < 0 || line >= b.rope.LineCount() {
		return
	}
	col = max(0, min(col, b.maxColumn(line)))
	b.cursor = Position{
		Line:   line,
		Col:    col,
		Offset: b.rope.LineStart(line) + col,
	}
}

// syncCursorFromOffset recomputes Line and Col from the cursor's offset
// after a mutation moved it.
func (b *ropeBuffer) syncCursorFromOffset() {
	offset := max(0, min(b.cursor.Offset, b.rope.Len()))
	line := b.rope.OffsetToLine(offset)
	b.cursor = Position{
		Line:   line,
		Col:    offset - b.rope.LineStart(line),
		Offset: offset,
	}
}

// Cursor returns the current cursor position.
func (b *ropeBuffer) Cursor() Position {
	return b.cursor
}

// DisplayCursor returns the cursor as 1-based (line, column) for status
// line rendering.
func (b *ropeBuffer) DisplayCursor() (line, col int) {
	return b.cursor.Line + 1, b.cursor.Col + 1
}

// MoveCursorUp moves one line up, keeping the column where the target line
// allows it.
func (b *ropeBuffer) MoveCursorUp() {
	if b.cursor.Line > 0 {
		b.SetCursor(b.cursor.Line-1, b.cursor.Col)
	}
}

// MoveCursorDown moves one line down, keeping the column where the target
// line allows it.
func (b *ropeBuffer) MoveCursorDown() {
	if b.cursor.Line+1 < b.rope.LineCount() {
		b.SetCursor(b.cursor.Line+1, b.cursor.Col)
	}
}

// MoveCursorLeft moves one column left, wrapping to the end of the
// previous line at column zero. At the start of the buffer it is a no-op.
func (b *ropeBuffer) MoveCursorLeft() {
	switch {
	case b.cursor.Col > 0:
		b.SetCursor(b.cursor.Line, b.cursor.Col-1)
	case b.cursor.Line > 0:
		prev := b.cursor.Line - 1
		b.SetCursor(prev, b.maxColumn(prev))
	}
}

// MoveCursorRight moves one column right, wrapping to column zero of the
// next line at end of line. At the end of the buffer it is a no-op.
func (b *ropeBuffer) MoveCursorRight() {
	if b.cursor.Col < b.maxColumn(b.cursor.Line) {
		b.SetCursor(b.cursor.Line, b.cursor.Col+1)
	} else if b.cursor.Line+1 < b.rope.LineCount() {
		b.SetCursor(b.cursor.Line+1, 0)
	}
}

// MoveCursorLineStart moves to column zero of the current line.
func (b *ropeBuffer) MoveCursorLineStart() {
	b.SetCursor(b.cursor.Line, 0)
}

// MoveCursorLineEnd moves to the last valid column of the current line.
func (b *ropeBuffer) MoveCursorLineEnd() {
	b.SetCursor(b.cursor.Line, b.maxColumn(b.cursor.Line))
}
