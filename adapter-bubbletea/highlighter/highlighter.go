package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/ionescu-d/textcore/view"
)

// Highlighter is a language-aware alternative to the built-in line
// tokenizer. It runs a Chroma lexer over the whole buffer, folds the
// resulting token types down to the closed display-class set and caches
// fragments per line.
//
// Unlike the built-in tokenizer it understands multi-line constructs,
// which is why it lexes the full content rather than one line at a time.
type Highlighter struct {
	lexer chroma.Lexer
	mu    sync.RWMutex
	cache map[int][]view.Fragment
}

// New creates a highlighter for language. Unknown languages fall back to
// Chroma's plain-text lexer.
func New(language string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Highlighter{
		lexer: chroma.Coalesce(lexer),
		cache: make(map[int][]view.Fragment),
	}
}

// Invalidate clears the fragment cache. Call when content changes.
func (h *Highlighter) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache = make(map[int][]view.Fragment)
}

// Fragments returns the display fragments for one line, lexing the whole
// content on the first call after an invalidation. On a lexer error the
// line falls back to the built-in tokenizer.
func (h *Highlighter) Fragments(line int, lines []string) []view.Fragment {
	h.mu.RLock()
	_, populated := h.cache[0]
	h.mu.RUnlock()

	if !populated {
		h.lexAll(lines)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cache[line]
}

func (h *Highlighter) lexAll(lines []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cache = make(map[int][]view.Fragment)
	h.cache[0] = nil

	content := strings.Join(lines, "\n")
	if content == "" {
		return
	}

	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		for i, l := range lines {
			h.cache[i] = view.TokenizeLine(l)
		}
		return
	}

	line := 0
	for _, token := range iterator.Tokens() {
		class := classify(token.Type)
		value := token.Value
		for strings.Contains(value, "\n") {
			before, after, _ := strings.Cut(value, "\n")
			if before != "" {
				h.cache[line] = append(h.cache[line], view.Fragment{Text: before, Class: class})
			}
			line++
			if _, ok := h.cache[line]; !ok {
				h.cache[line] = nil
			}
			value = after
		}
		if value != "" {
			h.cache[line] = append(h.cache[line], view.Fragment{Text: value, Class: class})
		}
	}
}

// classify folds a Chroma token type down to a display class.
func classify(t chroma.TokenType) view.TokenClass {
	switch {
	case t.InCategory(chroma.Keyword):
		return view.TokenKeyword
	case t.InCategory(chroma.LiteralString):
		return view.TokenString
	case t.InCategory(chroma.Comment):
		return view.TokenComment
	case t.InCategory(chroma.LiteralNumber):
		return view.TokenNumber
	case t.InSubCategory(chroma.NameFunction):
		return view.TokenFunction
	default:
		return view.TokenPlain
	}
}
