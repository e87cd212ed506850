package view

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ionescu-d/textcore/core"
)

func numberedBuffer(lines int) core.Buffer {
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "line %d", i)
	}
	return core.NewBufferFromString(sb.String(), nil)
}

func TestViewportRows(t *testing.T) {
	tests := []struct {
		height float64
		want   int
	}{
		{400, 20},
		{410, 21},
		{399, 20},
		{20, 1},
		{1, 1},
	}
	for _, tt := range tests {
		v := NewViewport(numberedBuffer(100), tt.height)
		if got := v.Rows(); got != tt.want {
			t.Errorf("Rows() at height %v = %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestViewportRange(t *testing.T) {
	tests := []struct {
		name      string
		lines     int
		height    float64
		lookahead int
		first     int
		wantStart int
		wantEnd   int
	}{
		{"top of large buffer", 1000, 400, 15, 0, 0, 35},
		{"mid scroll", 1000, 400, 15, 100, 100, 135},
		{"lookahead clamped to buffer", 40, 400, 15, 10, 10, 40},
		{"buffer smaller than window", 5, 400, 15, 0, 0, 5},
		{"zero lookahead", 100, 200, 0, 30, 30, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(numberedBuffer(tt.lines), tt.height, WithLookahead(tt.lookahead))
			v.SetFirstLine(tt.first)
			start, end := v.Range()
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Range() = [%d, %d), want [%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestViewportSetFirstLineClamps(t *testing.T) {
	v := NewViewport(numberedBuffer(100), 400) // 20 rows
	v.SetFirstLine(-5)
	if got := v.FirstLine(); got != 0 {
		t.Errorf("FirstLine() = %d after negative scroll, want 0", got)
	}
	v.SetFirstLine(9999)
	if got := v.FirstLine(); got != 80 {
		t.Errorf("FirstLine() = %d after overscroll, want 80", got)
	}
}

func TestViewportMaxFirstLineSmallBuffer(t *testing.T) {
	v := NewViewport(numberedBuffer(5), 400)
	if got := v.MaxFirstLine(); got != 0 {
		t.Errorf("MaxFirstLine() = %d for buffer smaller than window, want 0", got)
	}
}

func TestViewportVisibleLines(t *testing.T) {
	v := NewViewport(numberedBuffer(100), 100, WithLookahead(0)) // 5 rows
	v.SetFirstLine(10)

	lines := v.VisibleLines()
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		wantIndex := 10 + i
		wantContent := fmt.Sprintf("line %d", wantIndex)
		if line.Index != wantIndex || line.Content != wantContent {
			t.Errorf("lines[%d] = {%d, %q}, want {%d, %q}",
				i, line.Index, line.Content, wantIndex, wantContent)
		}
	}
	if got := v.CacheLen(); got != 5 {
		t.Errorf("CacheLen() = %d after first window, want 5", got)
	}
}

func TestViewportInvalidateAfterEdit(t *testing.T) {
	buf := numberedBuffer(20)
	v := NewViewport(buf, 200, WithLookahead(0)) // 10 rows
	v.VisibleLines()
	if got := v.CacheLen(); got != 10 {
		t.Fatalf("CacheLen() = %d, want 10", got)
	}

	buf.SetCursor(5, 0)
	buf.InsertText("edited ")
	v.Invalidate()

	if got := v.CacheLen(); got != 0 {
		t.Fatalf("CacheLen() = %d after invalidate, want 0", got)
	}
	content, ok := v.Line(5)
	if !ok || content != "edited line 5" {
		t.Errorf("Line(5) = (%q, %v), want fresh %q", content, ok, "edited line 5")
	}
}

func TestViewportCapacityBypass(t *testing.T) {
	v := NewViewport(numberedBuffer(50), 200, WithLookahead(0), WithCacheCapacity(3))
	v.SetFirstLine(0)

	lines := v.VisibleLines()
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10 despite the full cache", len(lines))
	}
	if got := v.CacheLen(); got != 3 {
		t.Errorf("CacheLen() = %d, want capacity 3", got)
	}
}

func TestViewportTickSweeps(t *testing.T) {
	v := NewViewport(numberedBuffer(50), 100, WithLookahead(0)) // 5 rows
	v.VisibleLines()
	if got := v.CacheLen(); got != 5 {
		t.Fatalf("CacheLen() = %d, want 5", got)
	}

	// Scroll away and idle long enough for the retention sweep to fire.
	v.SetFirstLine(40)
	for i := 0; i < 360; i++ {
		v.Tick()
	}
	if got := v.CacheLen(); got != 0 {
		t.Errorf("CacheLen() = %d after idle sweep, want 0", got)
	}
}

func TestViewportTickKeepsWarmLines(t *testing.T) {
	v := NewViewport(numberedBuffer(50), 100, WithLookahead(0))
	for i := 0; i < 360; i++ {
		v.Tick()
		v.VisibleLines()
	}
	if got := v.CacheLen(); got != 5 {
		t.Errorf("CacheLen() = %d, want the warm window of 5", got)
	}
}

func TestViewportRenderTickAdvances(t *testing.T) {
	v := NewViewport(numberedBuffer(10), 100)
	if got := v.RenderTick(); got != 0 {
		t.Fatalf("RenderTick() = %d before any tick, want 0", got)
	}
	for i := 0; i < 3; i++ {
		v.Tick()
	}
	if got := v.RenderTick(); got != 3 {
		t.Errorf("RenderTick() = %d, want 3", got)
	}
}

func TestViewportSnapshotStampsScroll(t *testing.T) {
	buf := numberedBuffer(100)
	buf.SetCursor(30, 2)
	v := NewViewport(buf, 400)
	v.SetFirstLine(25)

	state := v.Snapshot()
	if state.ScrollPosition != 25 {
		t.Errorf("ScrollPosition = %d, want 25", state.ScrollPosition)
	}
	if state.Cursor.Line != 30 || state.Cursor.Col != 2 {
		t.Errorf("Cursor = (%d, %d), want (30, 2)", state.Cursor.Line, state.Cursor.Col)
	}
}
