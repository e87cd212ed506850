package view

// DefaultCacheCapacity bounds the number of memoized lines per viewport.
const DefaultCacheCapacity = 200

// defaultRetentionTicks is how many render ticks an entry may go unread
// before the periodic sweep evicts it.
const defaultRetentionTicks = 300

// Entry is one memoized line.
type Entry struct {
	Content   string
	CharCount int
}

type cachedLine struct {
	entry      Entry
	lastAccess uint64
}

// LineCache memoizes line content keyed by line index. It is bounded two
// ways: a hard capacity (misses beyond it bypass storage) and a retention
// window swept on render ticks, so a buffer idling at a deep scroll offset
// does not pin stale lines forever.
type LineCache struct {
	lines     map[int]cachedLine
	capacity  int
	retention uint64
}

// NewLineCache creates a cache holding at most capacity lines. A
// non-positive capacity gets the default.
func NewLineCache(capacity int) *LineCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &LineCache{
		lines:     make(map[int]cachedLine),
		capacity:  capacity,
		retention: defaultRetentionTicks,
	}
}

// Get returns the memoized line, refreshing its access tick on a hit.
func (c *LineCache) Get(line int, tick uint64) (Entry, bool) {
	cached, ok := c.lines[line]
	if !ok {
		return Entry{}, false
	}
	cached.lastAccess = tick
	c.lines[line] = cached
	return cached.entry, true
}

// Put stores a line tagged with the current tick. At capacity the line is
// not stored and false is returned; callers use the fetched content
// uncached.
func (c *LineCache) Put(line int, content string, tick uint64) bool {
	if _, ok := c.lines[line]; !ok && len(c.lines) >= c.capacity {
		return false
	}
	c.lines[line] = cachedLine{
		entry: Entry{
			Content:   content,
			CharCount: len([]rune(content)),
		},
		lastAccess: tick,
	}
	return true
}

// Invalidate drops every entry. Called on any buffer mutation; patching
// only affected lines is not worth the bookkeeping for a rope-backed
// buffer.
func (c *LineCache) Invalidate() {
	clear(c.lines)
}

// Sweep evicts entries not read within the retention window, returning
// how many were removed.
func (c *LineCache) Sweep(tick uint64) int {
	removed := 0
	for line, cached := range c.lines {
		if tick-cached.lastAccess >= c.retention {
			delete(c.lines, line)
			removed++
		}
	}
	return removed
}

// Len returns the number of memoized lines.
func (c *LineCache) Len() int {
	return len(c.lines)
}
