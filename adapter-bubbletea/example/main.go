package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	editor "github.com/ionescu-d/textcore/adapter-bubbletea"
)

const messageDuration = 3 * time.Second

func languageFor(path string) string {
	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case "go":
		return "go"
	case "rs":
		return "rust"
	case "js", "mjs":
		return "javascript"
	case "ts":
		return "typescript"
	case "md":
		return "markdown"
	default:
		return ""
	}
}

type model struct {
	editor editor.Model
	file   string
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), m.editor.Load(m.file))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width, msg.Height)

	case editor.LoadedMsg:
		return m, m.editor.DispatchMessage(fmt.Sprintf("loaded %s", msg.Path), messageDuration)

	case editor.SavedMsg:
		return m, m.editor.DispatchMessage(fmt.Sprintf("saved %s", msg.Path), messageDuration)

	case editor.ErrorMsg:
		return m, m.editor.DispatchError(msg.Err, messageDuration)
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)
	return m, cmd
}

func (m model) View() string {
	return m.editor.View()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: example <file>")
		os.Exit(1)
	}
	file := os.Args[1]

	textEditor := editor.New(80, 24)
	textEditor.Focus()
	textEditor.SetCursorMode(editor.CursorBlink)
	textEditor.SetLanguage(languageFor(file))

	p := tea.NewProgram(model{editor: textEditor, file: file},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatalf("error running program: %v", err)
	}
}
