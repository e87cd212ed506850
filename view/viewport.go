package view

import (
	"math"

	"github.com/ionescu-d/textcore/core"
)

const (
	// DefaultLineHeight is the height of one rendered line in display
	// units.
	DefaultLineHeight = 20.0
	// DefaultLookahead is how many lines past the visible window are
	// fetched so small scrolls land on warm cache entries.
	DefaultLookahead = 15
	// sweepEveryTicks is the cadence of the cache retention sweep.
	sweepEveryTicks = 60
)

// VisibleLine is one line of the current window.
type VisibleLine struct {
	Index   int
	Content string
}

// Viewport computes the bounded window of buffer lines worth rendering,
// memoizing line content through a LineCache. It owns the first-visible-
// line position and the render tick counter; it never mutates the buffer.
type Viewport struct {
	buf        core.Buffer
	cache      *LineCache
	lineHeight float64
	lookahead  int
	height     float64
	firstLine  int
	tick       uint64
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithLineHeight overrides the per-line display height.
func WithLineHeight(h float64) Option {
	return func(v *Viewport) {
		if h > 0 {
			v.lineHeight = h
		}
	}
}

// WithLookahead overrides the number of lines fetched past the window.
func WithLookahead(n int) Option {
	return func(v *Viewport) {
		if n >= 0 {
			v.lookahead = n
		}
	}
}

// WithCacheCapacity overrides the line cache capacity.
func WithCacheCapacity(n int) Option {
	return func(v *Viewport) { v.cache = NewLineCache(n) }
}

// NewViewport creates a viewport over buf with the given pixel height.
func NewViewport(buf core.Buffer, height float64, opts ...Option) *Viewport {
	v := &Viewport{
		buf:        buf,
		cache:      NewLineCache(DefaultCacheCapacity),
		lineHeight: DefaultLineHeight,
		lookahead:  DefaultLookahead,
		height:     height,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetHeight updates the viewport height after a host resize.
func (v *Viewport) SetHeight(height float64) {
	if height > 0 {
		v.height = height
	}
}

// Rows returns how many whole lines fit the viewport height.
func (v *Viewport) Rows() int {
	if v.lineHeight <= 0 {
		return 0
	}
	return int(math.Ceil(v.height / v.lineHeight))
}

// FirstLine returns the current first visible line.
func (v *Viewport) FirstLine() int {
	return v.firstLine
}

// SetFirstLine scrolls directly to line, clamped to the scrollable range.
func (v *Viewport) SetFirstLine(line int) {
	v.firstLine = max(0, min(line, v.MaxFirstLine()))
}

// MaxFirstLine is the largest useful first visible line: scrolling past
// it would show only blank space below the buffer.
func (v *Viewport) MaxFirstLine() int {
	return max(0, v.buf.LineCount()-v.Rows())
}

// Range returns the half-open line range [start, end) to render: the
// visible rows plus the lookahead, clamped to the buffer.
func (v *Viewport) Range() (start, end int) {
	start = v.firstLine
	end = min(start+v.Rows()+v.lookahead, v.buf.LineCount())
	if end < start {
		end = start
	}
	return start, end
}

// VisibleLines fetches the current window, through the cache where
// possible. Misses are read from the buffer and memoized unless the cache
// is full, in which case the content is returned uncached.
func (v *Viewport) VisibleLines() []VisibleLine {
	start, end := v.Range()
	lines := make([]VisibleLine, 0, end-start)
	for i := start; i < end; i++ {
		if entry, ok := v.cache.Get(i, v.tick); ok {
			lines = append(lines, VisibleLine{Index: i, Content: entry.Content})
			continue
		}
		content, ok := v.buf.GetLine(i)
		if !ok {
			continue
		}
		v.cache.Put(i, content, v.tick)
		lines = append(lines, VisibleLine{Index: i, Content: content})
	}
	return lines
}

// Line fetches a single line through the cache, with the same miss
// handling as VisibleLines.
func (v *Viewport) Line(i int) (string, bool) {
	if entry, ok := v.cache.Get(i, v.tick); ok {
		return entry.Content, true
	}
	content, ok := v.buf.GetLine(i)
	if !ok {
		return "", false
	}
	v.cache.Put(i, content, v.tick)
	return content, true
}

// Tick advances the render tick counter and runs the periodic cache
// sweep.
func (v *Viewport) Tick() {
	v.tick++
	if v.tick%sweepEveryTicks == 0 {
		v.cache.Sweep(v.tick)
	}
}

// RenderTick returns the current render tick.
func (v *Viewport) RenderTick() uint64 {
	return v.tick
}

// Invalidate drops the whole line cache. Call after any buffer mutation.
func (v *Viewport) Invalidate() {
	v.cache.Invalidate()
}

// CacheLen reports how many lines are currently memoized.
func (v *Viewport) CacheLen() int {
	return v.cache.Len()
}

// Snapshot returns the buffer's state with the viewport's scroll position
// stamped in.
func (v *Viewport) Snapshot() core.EditorState {
	state := v.buf.Snapshot()
	state.ScrollPosition = v.firstLine
	return state
}
