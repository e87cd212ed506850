package core

import (
	"fmt"
	"testing"
)

func TestActionLogRecordClearsRedo(t *testing.T) {
	l := newActionLog()
	l.record(EditAction{Kind: ActionInsert, Text: "a"})
	action, _ := l.popUndo()
	l.pushRedo(action)
	if l.redoDepth() != 1 {
		t.Fatalf("redoDepth() = %d, want 1", l.redoDepth())
	}

	l.record(EditAction{Kind: ActionInsert, Text: "b"})
	if l.redoDepth() != 0 {
		t.Errorf("redoDepth() = %d after record, want 0", l.redoDepth())
	}
}

func TestActionLogLIFOOrder(t *testing.T) {
	l := newActionLog()
	for i := 0; i < 3; i++ {
		l.record(EditAction{Kind: ActionInsert, Text: fmt.Sprintf("%d", i)})
	}
	for i := 2; i >= 0; i-- {
		action, ok := l.popUndo()
		if !ok {
			t.Fatalf("popUndo() = false at %d", i)
		}
		if want := fmt.Sprintf("%d", i); action.Text != want {
			t.Errorf("popped %q, want %q", action.Text, want)
		}
	}
	if _, ok := l.popUndo(); ok {
		t.Error("popUndo() = true on drained stack")
	}
}

func TestActionLogTrimsOldestBeyondLimit(t *testing.T) {
	l := newActionLog()
	for i := 0; i < defaultMaxHistory+10; i++ {
		l.record(EditAction{Kind: ActionInsert, Offset: i})
	}
	if got := l.undoDepth(); got != defaultMaxHistory {
		t.Fatalf("undoDepth() = %d, want %d", got, defaultMaxHistory)
	}
	// The newest action is still on top; the oldest ten were dropped.
	top, _ := l.popUndo()
	if top.Offset != defaultMaxHistory+9 {
		t.Errorf("top offset = %d, want %d", top.Offset, defaultMaxHistory+9)
	}
}

func TestActionLogClear(t *testing.T) {
	l := newActionLog()
	l.record(EditAction{Kind: ActionDelete, Text: "x"})
	action, _ := l.popUndo()
	l.pushRedo(action)
	l.record(EditAction{Kind: ActionInsert, Text: "y"})

	l.clear()
	if l.undoDepth() != 0 || l.redoDepth() != 0 {
		t.Errorf("depths = (%d, %d) after clear, want (0, 0)", l.undoDepth(), l.redoDepth())
	}
}
