package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInsertTextAtCursor(t *testing.T) {
	b := NewBufferFromString("hello\nworld", nil)
	b.SetCursor(0, 5)
	b.InsertText(" there")

	if got := b.Content(); got != "hello there\nworld" {
		t.Errorf("content = %q, want %q", got, "hello there\nworld")
	}
	cur := b.Cursor()
	if cur.Line != 0 || cur.Col != 11 {
		t.Errorf("cursor = (%d, %d), want (0, 11)", cur.Line, cur.Col)
	}
	if !b.IsModified() {
		t.Error("IsModified() = false after insert")
	}
}

func TestInsertTextEmptyIsNoOp(t *testing.T) {
	b := NewBufferFromString("abc", nil)
	b.InsertText("")
	if b.IsModified() {
		t.Error("empty insert marked the buffer modified")
	}
	if got := b.Content(); got != "abc" {
		t.Errorf("content = %q, want %q", got, "abc")
	}
}

func TestInsertNewlineSplitsLine(t *testing.T) {
	b := NewBufferFromString("helloworld", nil)
	b.SetCursor(0, 5)
	b.InsertNewline()

	if got := b.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	cur := b.Cursor()
	if cur.Line != 1 || cur.Col != 0 {
		t.Errorf("cursor = (%d, %d), want (1, 0)", cur.Line, cur.Col)
	}
	if line, _ := b.GetLine(1); line != "world" {
		t.Errorf("GetLine(1) = %q, want %q", line, "world")
	}
}

func TestDeleteRange(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		start, end int
		want       string
		wantTouch  bool
	}{
		{"middle", "hello", 1, 4, "ho", true},
		{"whole", "abc", 0, 3, "", true},
		{"empty range no-op", "abc", 1, 1, "abc", false},
		{"inverted no-op", "abc", 2, 1, "abc", false},
		{"end past length no-op", "abc", 1, 9, "abc", false},
		{"negative start no-op", "abc", -1, 2, "abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.content, nil)
			b.DeleteRange(tt.start, tt.end)
			if got := b.Content(); got != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
			if b.IsModified() != tt.wantTouch {
				t.Errorf("IsModified() = %v, want %v", b.IsModified(), tt.wantTouch)
			}
		})
	}
}

func TestDeleteRangeMovesCursorToStart(t *testing.T) {
	b := NewBufferFromString("hello\nworld", nil)
	b.SetCursor(1, 4)
	b.DeleteRange(3, 8)
	if got := b.Content(); got != "helrld" {
		t.Errorf("content = %q, want %q", got, "helrld")
	}
	cur := b.Cursor()
	if cur.Offset != 3 || cur.Line != 0 || cur.Col != 3 {
		t.Errorf("cursor = {Line:%d Col:%d Offset:%d}, want {0 3 3}", cur.Line, cur.Col, cur.Offset)
	}
}

func TestBackspace(t *testing.T) {
	b := NewBufferFromString("abc", nil)
	b.SetCursor(0, 2)
	b.Backspace()
	if got := b.Content(); got != "ac" {
		t.Errorf("content = %q, want %q", got, "ac")
	}
	if cur := b.Cursor(); cur.Offset != 1 {
		t.Errorf("cursor offset = %d, want 1", cur.Offset)
	}
}

func TestBackspaceAtStartIsNoOp(t *testing.T) {
	b := NewBufferFromString("abc", nil)
	b.SetCursor(0, 0)
	b.Backspace()
	if got := b.Content(); got != "abc" {
		t.Errorf("content = %q, want %q", got, "abc")
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := NewBufferFromString("ab\ncd", nil)
	b.SetCursor(1, 0)
	b.Backspace()
	if got := b.Content(); got != "abcd" {
		t.Errorf("content = %q, want %q", got, "abcd")
	}
	cur := b.Cursor()
	if cur.Line != 0 || cur.Col != 2 {
		t.Errorf("cursor = (%d, %d), want (0, 2)", cur.Line, cur.Col)
	}
}

func TestDeleteAtEndIsNoOp(t *testing.T) {
	b := NewBufferFromString("abc", nil)
	b.SetCursor(0, 3)
	b.Delete()
	if got := b.Content(); got != "abc" {
		t.Errorf("content = %q, want %q", got, "abc")
	}
}

func TestUndoRestoresDeletedText(t *testing.T) {
	b := NewBufferFromString("abc", nil)
	before := b.Cursor()
	b.DeleteRange(0, 1)
	if got := b.Content(); got != "bc" {
		t.Fatalf("content = %q, want %q", got, "bc")
	}

	if !b.Undo() {
		t.Fatal("Undo() = false, want true")
	}
	if got := b.Content(); got != "abc" {
		t.Errorf("content after undo = %q, want %q", got, "abc")
	}
	if cur := b.Cursor(); cur != before {
		t.Errorf("cursor after undo = %+v, want %+v", cur, before)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	b := NewBuffer(nil)
	b.InsertText("hello")
	b.InsertText(" world")
	b.SetCursor(0, 0)
	b.DeleteRange(0, 6)

	afterAll := b.Content()
	if afterAll != "world" {
		t.Fatalf("content = %q, want %q", afterAll, "world")
	}

	for b.Undo() {
	}
	if got := b.Content(); got != "" {
		t.Errorf("content after full undo = %q, want empty", got)
	}

	for b.Redo() {
	}
	if got := b.Content(); got != afterAll {
		t.Errorf("content after full redo = %q, want %q", got, afterAll)
	}
}

func TestUndoEmptyStack(t *testing.T) {
	b := NewBufferFromString("abc", nil)
	if b.Undo() {
		t.Error("Undo() = true on empty stack")
	}
	if b.Redo() {
		t.Error("Redo() = true on empty stack")
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	b := NewBuffer(nil)
	b.InsertText("one")
	b.Undo()
	if !b.Redo() {
		t.Fatal("Redo() = false before new edit")
	}
	b.Undo()
	b.InsertText("two")
	if b.Redo() {
		t.Error("Redo() = true after a new edit, want cleared stack")
	}
	if got := b.Content(); got != "two" {
		t.Errorf("content = %q, want %q", got, "two")
	}
}

func TestUndoRedoCursorPositions(t *testing.T) {
	b := NewBufferFromString("hello\nworld", nil)
	b.SetCursor(1, 2)
	b.InsertText("xx")
	after := b.Cursor()

	b.Undo()
	if cur := b.Cursor(); cur.Line != 1 || cur.Col != 2 {
		t.Errorf("cursor after undo = (%d, %d), want (1, 2)", cur.Line, cur.Col)
	}
	b.Redo()
	if cur := b.Cursor(); cur != after {
		t.Errorf("cursor after redo = %+v, want %+v", cur, after)
	}
}

func TestCopyPaste(t *testing.T) {
	b := NewBufferFromString("hello world", nil)
	b.CopySelection(0, 5)
	b.SetCursor(0, 11)
	b.Paste()
	if got := b.Content(); got != "hello worldhello" {
		t.Errorf("content = %q, want %q", got, "hello worldhello")
	}
}

func TestCopySelectionInvalidRange(t *testing.T) {
	clip := NewMemoryClipboard()
	clip.Write("keep")
	b := NewBufferFromString("abc", clip)
	b.CopySelection(2, 99)
	if got, _ := clip.Read(); got != "keep" {
		t.Errorf("clipboard = %q, want untouched %q", got, "keep")
	}
}

func TestCopyLineIncludesNewline(t *testing.T) {
	clip := NewMemoryClipboard()
	b := NewBufferFromString("first\nsecond\nthird", clip)

	b.SetCursor(1, 3)
	b.CopyLine()
	if got, _ := clip.Read(); got != "second\n" {
		t.Errorf("clipboard = %q, want %q", got, "second\n")
	}

	b.SetCursor(2, 0)
	b.CopyLine()
	if got, _ := clip.Read(); got != "third" {
		t.Errorf("clipboard = %q, want %q", got, "third")
	}
}

func TestPasteEmptyClipboardIsNoOp(t *testing.T) {
	b := NewBufferFromString("abc", nil)
	b.Paste()
	if got := b.Content(); got != "abc" {
		t.Errorf("content = %q, want %q", got, "abc")
	}
	if b.IsModified() {
		t.Error("empty paste marked the buffer modified")
	}
}

func TestPasteIsUndoable(t *testing.T) {
	b := NewBufferFromString("ab", nil)
	b.CopySelection(0, 2)
	b.SetCursor(0, 2)
	b.Paste()
	if got := b.Content(); got != "abab" {
		t.Fatalf("content = %q, want %q", got, "abab")
	}
	b.Undo()
	if got := b.Content(); got != "ab" {
		t.Errorf("content after undo = %q, want %q", got, "ab")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBuffer(nil)
	if err := b.Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := b.Content(); got != "line one\nline two\n" {
		t.Fatalf("content = %q", got)
	}
	if b.IsModified() {
		t.Error("IsModified() = true after load")
	}
	if got := b.Path(); got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}

	b.SetCursor(0, 4)
	b.InsertText("X")
	if err := b.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if b.IsModified() {
		t.Error("IsModified() = true after save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "lineX one\nline two\n" {
		t.Errorf("file = %q, want %q", got, "lineX one\nline two\n")
	}
}

func TestLoadResetsCursorAndHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("fresh"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBufferFromString("old content", nil)
	b.SetCursor(0, 5)
	b.InsertText("!")

	if err := b.Load(path); err != nil {
		t.Fatal(err)
	}
	if cur := b.Cursor(); cur != (Position{}) {
		t.Errorf("cursor = %+v, want origin", cur)
	}
	if b.Undo() {
		t.Error("Undo() = true after load, want cleared history")
	}
}

func TestLoadMissingFile(t *testing.T) {
	b := NewBufferFromString("keep", nil)
	err := b.Load(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("Load() = nil error for missing file")
	}
	if got := b.Content(); got != "keep" {
		t.Errorf("content = %q, want untouched %q", got, "keep")
	}
}

func TestLoadInvalidEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	b := NewBuffer(nil)
	err := b.Load(path)
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Load() error = %v, want ErrInvalidEncoding", err)
	}
}

func TestLoadBytesReplacesContentAndResets(t *testing.T) {
	b := NewBufferFromString("old", nil)
	b.SetCursor(0, 3)
	b.InsertText("!")

	if err := b.LoadBytes("/tmp/fresh.txt", []byte("fresh\ncontent")); err != nil {
		t.Fatalf("LoadBytes() error: %v", err)
	}
	if got := b.Content(); got != "fresh\ncontent" {
		t.Errorf("content = %q, want %q", got, "fresh\ncontent")
	}
	if got := b.Path(); got != "/tmp/fresh.txt" {
		t.Errorf("Path() = %q, want %q", got, "/tmp/fresh.txt")
	}
	if b.IsModified() {
		t.Error("IsModified() = true after LoadBytes")
	}
	if cur := b.Cursor(); cur != (Position{}) {
		t.Errorf("cursor = %+v, want origin", cur)
	}
	if b.Undo() {
		t.Error("Undo() = true after LoadBytes, want cleared history")
	}
}

func TestLoadBytesInvalidEncoding(t *testing.T) {
	b := NewBufferFromString("keep", nil)
	err := b.LoadBytes("/tmp/bin", []byte{0xff, 0xfe})
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("LoadBytes() error = %v, want ErrInvalidEncoding", err)
	}
	if got := b.Content(); got != "keep" {
		t.Errorf("content = %q, want untouched %q", got, "keep")
	}
}

func TestMarkSaved(t *testing.T) {
	b := NewBufferFromString("abc", nil)
	b.InsertText("x")
	if !b.IsModified() {
		t.Fatal("IsModified() = false after insert")
	}
	b.MarkSaved()
	if b.IsModified() {
		t.Error("IsModified() = true after MarkSaved")
	}
	if got := b.Content(); got != "xabc" {
		t.Errorf("content = %q, want %q", got, "xabc")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	b := NewBufferFromString("abc", nil)
	if err := b.Save(); !errors.Is(err, ErrNoFilePath) {
		t.Errorf("Save() error = %v, want ErrNoFilePath", err)
	}
}

func TestGetLineStripsLineBreak(t *testing.T) {
	b := NewBufferFromString("one\r\ntwo\nthree", nil)
	tests := []struct {
		line int
		want string
		ok   bool
	}{
		{0, "one", true},
		{1, "two", true},
		{2, "three", true},
		{3, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		got, ok := b.GetLine(tt.line)
		if got != tt.want || ok != tt.ok {
			t.Errorf("GetLine(%d) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSnapshot(t *testing.T) {
	b := NewBufferFromString("hello\nworld", nil)
	b.SetCursor(1, 2)
	state := b.Snapshot()
	if state.Modified {
		t.Error("Modified = true for untouched buffer")
	}
	if state.Cursor.Line != 1 || state.Cursor.Col != 2 {
		t.Errorf("Cursor = (%d, %d), want (1, 2)", state.Cursor.Line, state.Cursor.Col)
	}
	if state.ScrollPosition != 0 {
		t.Errorf("ScrollPosition = %d, want 0", state.ScrollPosition)
	}
}
