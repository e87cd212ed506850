package bubbleadapter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ionescu-d/textcore/view"
)

// Theme is the explicit style configuration threaded through rendering.
// There is no ambient default inside the render path; every call site
// receives a Theme.
type Theme struct {
	TextStyle              lipgloss.Style
	KeywordStyle           lipgloss.Style
	StringStyle            lipgloss.Style
	CommentStyle           lipgloss.Style
	NumberStyle            lipgloss.Style
	FunctionStyle          lipgloss.Style
	CursorStyle            lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	StatusLineStyle        lipgloss.Style
	ModifiedStyle          lipgloss.Style
	MessageStyle           lipgloss.Style
	ErrorStyle             lipgloss.Style
}

var DefaultTheme = Theme{
	TextStyle:              lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	KeywordStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("176")).Bold(true),
	StringStyle:            lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	CommentStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
	NumberStyle:            lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
	FunctionStyle:          lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	CursorStyle:            lipgloss.NewStyle().Reverse(true),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Align(lipgloss.Right),
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	ModifiedStyle:          lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("208")).Bold(true),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// TokenStyle resolves a token class to its style. The class set is closed,
// so an unknown value falls back to plain text.
func (t Theme) TokenStyle(class view.TokenClass) lipgloss.Style {
	switch class {
	case view.TokenKeyword:
		return t.KeywordStyle
	case view.TokenString:
		return t.StringStyle
	case view.TokenComment:
		return t.CommentStyle
	case view.TokenNumber:
		return t.NumberStyle
	case view.TokenFunction:
		return t.FunctionStyle
	default:
		return t.TextStyle
	}
}
