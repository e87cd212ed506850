package core

// ActionKind classifies a reversible edit.
type ActionKind int

const (
	ActionInsert ActionKind = iota
	ActionDelete
)

// EditAction records a single buffer edit together with the cursor on both
// sides of it. Applying the inverse of an action to the post-action buffer
// reproduces the pre-action buffer and restores CursorBefore.
type EditAction struct {
	Kind         ActionKind
	Offset       int
	Text         string
	CursorBefore Position
	CursorAfter  Position
}

// defaultMaxHistory bounds the undo stack depth.
const defaultMaxHistory = 1000

// actionLog holds the undo and redo stacks for one buffer. Any recorded
// edit clears the redo stack; undo and redo only move actions between the
// two stacks.
type actionLog struct {
	undo       []EditAction
	redo       []EditAction
	maxHistory int
}

func newActionLog() *actionLog {
	return &actionLog{maxHistory: defaultMaxHistory}
}

func (l *actionLog) record(a EditAction) {
	l.undo = append(l.undo, a)
	if l.maxHistory > 0 && len(l.undo) > l.maxHistory {
		l.undo = l.undo[len(l.undo)-l.maxHistory:]
	}
	l.redo = l.redo[:0]
}

func (l *actionLog) popUndo() (EditAction, bool) {
	if len(l.undo) == 0 {
		return EditAction{}, false
	}
	a := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	return a, true
}

func (l *actionLog) popRedo() (EditAction, bool) {
	if len(l.redo) == 0 {
		return EditAction{}, false
	}
	a := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	return a, true
}

func (l *actionLog) pushUndo(a EditAction) { l.undo = append(l.undo, a) }
func (l *actionLog) pushRedo(a EditAction) { l.redo = append(l.redo, a) }

func (l *actionLog) clear() {
	l.undo = l.undo[:0]
	l.redo = l.redo[:0]
}

func (l *actionLog) undoDepth() int { return len(l.undo) }
func (l *actionLog) redoDepth() int { return len(l.redo) }
