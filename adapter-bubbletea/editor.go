package bubbleadapter

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/ionescu-d/textcore/adapter-bubbletea/highlighter"
	"github.com/ionescu-d/textcore/core"
	"github.com/ionescu-d/textcore/view"
)

const cursorBlinkInterval = 500 * time.Millisecond
const cursorActivityResetDelay = 250 * time.Millisecond

// frameInterval drives the render tick and the scroll animation.
const frameInterval = 16 * time.Millisecond

type frameMsg struct{}
type cursorBlinkMsg struct{}
type cursorBlinkCanceledMsg struct{}
type resumeBlinkCycleMsg struct{}
type clearMsg struct{}

type fileLoadedMsg struct {
	path string
	data []byte
	err  error
}

type fileSavedMsg struct {
	path    string
	content string
	err     error
}

// LoadedMsg is dispatched to the consumer after a file load completes.
type LoadedMsg struct {
	Path string
}

// SavedMsg is dispatched to the consumer after a save completes.
type SavedMsg struct {
	Path string
}

// ErrorMsg is dispatched to the consumer when an operation fails.
type ErrorMsg struct {
	Err error
}

// CursorMode selects between a steady and a blinking cursor.
type CursorMode int

const (
	CursorSteady CursorMode = iota
	CursorBlink
)

type cursorBlinkContext struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// clipboardImpl bridges the system clipboard into the core interface.
type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	return clipboard.ReadAll()
}

// Model is a bubbletea component wrapping one buffer and its viewport.
type Model struct {
	buffer             core.Buffer
	view               *view.Viewport
	scroll             *view.ScrollAnimator
	width              int
	height             int
	theme              Theme
	keys               KeyMap
	showLineNumbers    bool
	showTildeIndicator bool
	isFocused          bool
	cursorMode         CursorMode
	cursorVisible      bool
	cursorBlinkContext *cursorBlinkContext
	message            string
	err                error
	clearMsgCancel     context.CancelFunc
	highlighter        *highlighter.Highlighter
	language           string
	StatusLineFunc     func() string
}

// New creates an editor component sized to width x height terminal cells.
// The bottom row is reserved for the status line.
func New(width, height int) Model {
	buffer := core.NewBuffer(&clipboardImpl{})
	vp := view.NewViewport(buffer, float64(max(1, height-1))*view.DefaultLineHeight)

	m := Model{
		buffer:             buffer,
		view:               vp,
		scroll:             view.NewScrollAnimator(vp),
		width:              width,
		height:             height,
		theme:              DefaultTheme,
		keys:               DefaultKeyMap(),
		showLineNumbers:    true,
		showTildeIndicator: true,
		cursorVisible:      true,
		cursorBlinkContext: &cursorBlinkContext{
			ctx: context.Background(),
		},
	}
	return m
}

// SetSize resizes the component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.view.SetHeight(float64(max(1, height-1)) * view.DefaultLineHeight)
}

// SetContent replaces the buffer content.
func (m *Model) SetContent(content string) {
	m.buffer = core.NewBufferFromString(content, &clipboardImpl{})
	m.view = view.NewViewport(m.buffer, float64(max(1, m.height-1))*view.DefaultLineHeight)
	m.scroll = view.NewScrollAnimator(m.view)
	if m.highlighter != nil {
		m.highlighter.Invalidate()
	}
}

// WithTheme sets the theme used for rendering.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// WithKeyMap sets the key bindings.
func (m *Model) WithKeyMap(keys KeyMap) {
	m.keys = keys
}

// SetLanguage enables the Chroma-backed highlighter for language. An empty
// language falls back to the built-in line tokenizer.
func (m *Model) SetLanguage(language string) {
	if m.language == language {
		return
	}
	m.language = language
	if language == "" {
		m.highlighter = nil
		return
	}
	m.highlighter = highlighter.New(language)
}

// HideLineNumbers controls the line number gutter.
func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
}

// ShowTildeIndicator controls the tilde markers past the end of the
// buffer.
func (m *Model) ShowTildeIndicator(show bool) {
	m.showTildeIndicator = show
}

// SetCursorMode selects a steady or blinking cursor.
func (m *Model) SetCursorMode(mode CursorMode) {
	m.cursorMode = mode
	m.cursorVisible = m.isFocused
}

// Focus gives the editor keyboard focus.
func (m *Model) Focus() {
	m.isFocused = true
	m.cursorVisible = true
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.isFocused = false
}

// IsFocused reports whether the editor has keyboard focus.
func (m *Model) IsFocused() bool {
	return m.isFocused
}

// Buffer returns the underlying buffer.
func (m *Model) Buffer() core.Buffer {
	return m.buffer
}

// HasChanges reports whether the buffer has unsaved edits.
func (m *Model) HasChanges() bool {
	return m.buffer.IsModified()
}

// State returns the host-facing editor state with the current scroll
// position stamped in.
func (m *Model) State() core.EditorState {
	return m.view.Snapshot()
}

// Load starts an asynchronous file load. The command only reads the
// file; the bytes are applied to the buffer inside Update, so the buffer
// is never touched off the update loop.
func (m *Model) Load(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			err = fmt.Errorf("load %s: %w", path, err)
		}
		return fileLoadedMsg{path: path, data: data, err: err}
	}
}

// Save starts an asynchronous save. The path and content are captured
// synchronously before the command runs, the command only performs the
// write, and the modified flag is cleared inside Update once the result
// arrives.
func (m *Model) Save() tea.Cmd {
	path := m.buffer.Path()
	if path == "" {
		return func() tea.Msg {
			return fileSavedMsg{err: core.ErrNoFilePath}
		}
	}
	content := m.buffer.Content()
	return func() tea.Msg {
		var err error
		if werr := os.WriteFile(path, []byte(content), 0o644); werr != nil {
			err = fmt.Errorf("save %s: %w", path, werr)
		}
		return fileSavedMsg{path: path, content: content, err: err}
	}
}

// DispatchMessage shows message in the status area for duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil
	return m.dispatchClearMsg(duration)
}

// DispatchError shows err in the status area for duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""
	return m.dispatchClearMsg(duration)
}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.frameTick(), m.CursorBlink())
}

func (m *Model) frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !m.isFocused {
			break
		}
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

		m.cursorVisible = true
		if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
			m.cursorBlinkContext.cancel()
		}
		if m.cursorMode == CursorBlink {
			cmds = append(cmds, m.restartBlinkCycleCmd())
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll.Wheel(-view.DefaultLineHeight)
		case tea.MouseButtonWheelDown:
			m.scroll.Wheel(view.DefaultLineHeight)
		}

	case frameMsg:
		m.view.Tick()
		m.scroll.Step()
		cmds = append(cmds, m.frameTick())

	case cursorBlinkMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = !m.cursorVisible
			cmds = append(cmds, m.CursorBlink())
		} else {
			m.cursorVisible = m.isFocused
		}

	case resumeBlinkCycleMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = true
			cmds = append(cmds, m.CursorBlink())
		}

	case fileLoadedMsg:
		if msg.err == nil {
			msg.err = m.buffer.LoadBytes(msg.path, msg.data)
		}
		if msg.err != nil {
			m.err = msg.err
			cmds = append(cmds,
				func() tea.Msg { return ErrorMsg{Err: msg.err} },
				m.dispatchClearMsg(3*time.Second),
			)
			break
		}
		m.view.Invalidate()
		m.view.SetFirstLine(0)
		m.scroll.Cancel()
		if m.highlighter != nil {
			m.highlighter.Invalidate()
		}
		cmds = append(cmds, func() tea.Msg { return LoadedMsg{Path: msg.path} })

	case fileSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			cmds = append(cmds,
				func() tea.Msg { return ErrorMsg{Err: msg.err} },
				m.dispatchClearMsg(3*time.Second),
			)
			break
		}
		// The flag stays set if the user kept typing while the write
		// was in flight.
		if m.buffer.Content() == msg.content {
			m.buffer.MarkSaved()
		}
		cmds = append(cmds, func() tea.Msg { return SavedMsg{Path: msg.path} })

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.buffer.MoveCursorUp()
		m.followCursor()
	case key.Matches(msg, m.keys.Down):
		m.buffer.MoveCursorDown()
		m.followCursor()
	case key.Matches(msg, m.keys.Left):
		m.buffer.MoveCursorLeft()
		m.followCursor()
	case key.Matches(msg, m.keys.Right):
		m.buffer.MoveCursorRight()
		m.followCursor()
	case key.Matches(msg, m.keys.LineStart):
		m.buffer.MoveCursorLineStart()
	case key.Matches(msg, m.keys.LineEnd):
		m.buffer.MoveCursorLineEnd()

	case key.Matches(msg, m.keys.PageUp):
		m.scroll.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.scroll.PageDown()

	case key.Matches(msg, m.keys.Enter):
		m.buffer.InsertNewline()
		m.afterEdit()
	case key.Matches(msg, m.keys.Tab):
		m.buffer.InsertText("\t")
		m.afterEdit()
	case key.Matches(msg, m.keys.Backspace):
		m.buffer.Backspace()
		m.afterEdit()
	case key.Matches(msg, m.keys.Delete):
		m.buffer.Delete()
		m.afterEdit()

	case key.Matches(msg, m.keys.Undo):
		if m.buffer.Undo() {
			m.afterEdit()
		}
	case key.Matches(msg, m.keys.Redo):
		if m.buffer.Redo() {
			m.afterEdit()
		}

	case key.Matches(msg, m.keys.Save):
		return m.Save()
	case key.Matches(msg, m.keys.CopyLine):
		m.buffer.CopyLine()
	case key.Matches(msg, m.keys.Paste):
		m.buffer.Paste()
		m.afterEdit()

	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.buffer.InsertText(string(msg.Runes))
			m.afterEdit()
		case tea.KeySpace:
			m.buffer.InsertText(" ")
			m.afterEdit()
		}
	}
	return nil
}

// afterEdit invalidates the render caches and keeps the cursor in view.
func (m *Model) afterEdit() {
	m.view.Invalidate()
	if m.highlighter != nil {
		m.highlighter.Invalidate()
	}
	m.followCursor()
}

func (m *Model) followCursor() {
	m.scroll.FollowCursor(m.buffer.Cursor().Line)
}

func (m Model) View() string {
	rows := max(1, m.height-1)
	cursor := m.buffer.Cursor()

	gutterWidth := 0
	if m.showLineNumbers {
		digits := len(strconv.Itoa(max(1, m.buffer.LineCount())))
		gutterWidth = min(max(4, digits)+1, 10)
	}

	// The chroma highlighter lexes whole-buffer content; materialize it
	// once per render, not once per line.
	var contentLines []string
	if m.highlighter != nil {
		contentLines = m.bufferLines()
	}

	visible := m.view.VisibleLines()
	rendered := make([]string, 0, rows)
	for _, line := range visible {
		if len(rendered) >= rows {
			break
		}
		var sb strings.Builder
		if m.showLineNumbers {
			style := m.theme.LineNumberStyle
			if line.Index == cursor.Line {
				style = m.theme.CurrentLineNumberStyle
			}
			sb.WriteString(style.Width(gutterWidth - 1).Render(strconv.Itoa(line.Index + 1)))
			sb.WriteByte(' ')
		}
		sb.WriteString(m.renderLine(line, cursor, contentLines))
		rendered = append(rendered, sb.String())
	}
	if m.showTildeIndicator {
		for len(rendered) < rows {
			rendered = append(rendered, m.theme.LineNumberStyle.Render("~"))
		}
	}

	return strings.Join(rendered, "\n") + "\n" + m.statusLine()
}

// renderLine styles one line's fragments and overlays the cursor cell.
func (m Model) renderLine(line view.VisibleLine, cursor core.Position, contentLines []string) string {
	var fragments []view.Fragment
	if m.highlighter != nil {
		fragments = m.highlighter.Fragments(line.Index, contentLines)
	} else {
		fragments = view.TokenizeLine(line.Content)
	}

	withCursor := m.isFocused && m.cursorVisible && line.Index == cursor.Line

	var sb strings.Builder
	col := 0
	for _, frag := range fragments {
		runes := []rune(frag.Text)
		style := m.theme.TokenStyle(frag.Class)
		if withCursor && cursor.Col >= col && cursor.Col < col+len(runes) {
			at := cursor.Col - col
			cell := graphemeAt(string(runes[at:]))
			sb.WriteString(style.Render(string(runes[:at])))
			sb.WriteString(m.theme.CursorStyle.Render(cell))
			sb.WriteString(style.Render(string(runes[at+len([]rune(cell)):])))
		} else {
			sb.WriteString(style.Render(frag.Text))
		}
		col += len(runes)
	}
	if withCursor && cursor.Col >= col {
		sb.WriteString(m.theme.CursorStyle.Render(" "))
	}
	return sb.String()
}

func (m Model) bufferLines() []string {
	lines := make([]string, m.buffer.LineCount())
	for i := range lines {
		lines[i], _ = m.buffer.GetLine(i)
	}
	return lines
}

func (m Model) statusLine() string {
	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	name := m.buffer.Path()
	if name == "" {
		name = "[No Name]"
	}
	left := " " + name
	if m.buffer.IsModified() {
		left += " [+]"
	}

	line, col := m.buffer.DisplayCursor()
	right := fmt.Sprintf("%d/%d ", line, col)

	if m.err != nil {
		left = " " + m.err.Error()
	} else if m.message != "" {
		left = " " + m.message
	}

	gap := m.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	status := left + strings.Repeat(" ", max(0, gap)) + right

	if m.err != nil {
		return m.theme.ErrorStyle.
			Background(m.theme.StatusLineStyle.GetBackground()).
			Render(status)
	}
	if m.message != "" {
		return m.theme.MessageStyle.
			Background(m.theme.StatusLineStyle.GetBackground()).
			Render(status)
	}
	if m.buffer.IsModified() {
		return m.theme.ModifiedStyle.Render(status)
	}
	return m.theme.StatusLineStyle.Render(status)
}

// CursorBlink schedules the next blink toggle. The pending toggle is
// cancelable so keystrokes can reset the cycle.
func (m *Model) CursorBlink() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
		m.cursorBlinkContext.cancel()
	}

	ctx, cancel := context.WithTimeout(m.cursorBlinkContext.ctx, cursorBlinkInterval)
	m.cursorBlinkContext.cancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return cursorBlinkMsg{}
		}
		return cursorBlinkCanceledMsg{}
	}
}

// restartBlinkCycleCmd delays the resumption of blinking after activity.
func (m *Model) restartBlinkCycleCmd() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	return tea.Tick(cursorActivityResetDelay, func(t time.Time) tea.Msg {
		return resumeBlinkCycleMsg{}
	})
}
