package core

// maxLeafRunes bounds the size of a leaf chunk. Larger leaves mean fewer
// nodes but more copying per edit.
const maxLeafRunes = 512

// rebuildHeight is the tree height at which the rope is rebuilt from its
// leaves. Edits concentrate on one side of the tree, so an occasional
// rebuild keeps lookups logarithmic.
const rebuildHeight = 40

// ropeNode is either a leaf holding a rune chunk or an internal node
// holding aggregated metrics for its subtree.
type ropeNode struct {
	left, right *ropeNode
	text        []rune // leaf payload; nil for internal nodes
	length      int    // runes in this subtree
	breaks      int    // newline runes in this subtree
	height      int
}

func countBreaks(text []rune) int {
	n := 0
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}

func newLeaf(text []rune) *ropeNode {
	return &ropeNode{
		text:   text,
		length: len(text),
		breaks: countBreaks(text),
		height: 1,
	}
}

// join combines two subtrees, merging adjacent small leaves so the tree
// does not degenerate into single-rune chunks.
func join(left, right *ropeNode) *ropeNode {
	if left == nil || left.length == 0 {
		return right
	}
	if right == nil || right.length == 0 {
		return left
	}
	if left.text != nil && right.text != nil && left.length+right.length <= maxLeafRunes {
		merged := make([]rune, 0, left.length+right.length)
		merged = append(merged, left.text...)
		merged = append(merged, right.text...)
		return newLeaf(merged)
	}
	return &ropeNode{
		left:   left,
		right:  right,
		length: left.length + right.length,
		breaks: left.breaks + right.breaks,
		height: 1 + max(left.height, right.height),
	}
}

// splitNode divides a subtree at rune offset at, returning the two halves.
// Leaf payloads are copied so the halves never alias each other.
func splitNode(n *ropeNode, at int) (*ropeNode, *ropeNode) {
	if n == nil {
		return nil, nil
	}
	if at <= 0 {
		return nil, n
	}
	if at >= n.length {
		return n, nil
	}
	if n.text != nil {
		head := make([]rune, at)
		copy(head, n.text[:at])
		tail := make([]rune, n.length-at)
		copy(tail, n.text[at:])
		return newLeaf(head), newLeaf(tail)
	}
	if at < n.left.length {
		ll, lr := splitNode(n.left, at)
		return ll, join(lr, n.right)
	}
	if at == n.left.length {
		return n.left, n.right
	}
	rl, rr := splitNode(n.right, at-n.left.length)
	return join(n.left, rl), rr
}

func collectLeaves(n *ropeNode, out []*ropeNode) []*ropeNode {
	if n == nil {
		return out
	}
	if n.text != nil {
		return append(out, n)
	}
	out = collectLeaves(n.left, out)
	return collectLeaves(n.right, out)
}

func buildBalanced(leaves []*ropeNode) *ropeNode {
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return leaves[0]
	}
	mid := len(leaves) / 2
	return join(buildBalanced(leaves[:mid]), buildBalanced(leaves[mid:]))
}

func buildFromRunes(text []rune) *ropeNode {
	if len(text) == 0 {
		return nil
	}
	leaves := make([]*ropeNode, 0, len(text)/maxLeafRunes+1)
	for start := 0; start < len(text); start += maxLeafRunes {
		end := min(start+maxLeafRunes, len(text))
		chunk := make([]rune, end-start)
		copy(chunk, text[start:end])
		leaves = append(leaves, newLeaf(chunk))
	}
	return buildBalanced(leaves)
}

// Rope stores a sequence of runes as a balanced tree of chunks, giving
// sub-linear insert, delete and line lookups for large texts. The zero
// value is an empty rope.
type Rope struct {
	root *ropeNode
}

// NewRope creates a rope holding s.
func NewRope(s string) *Rope {
	return &Rope{root: buildFromRunes([]rune(s))}
}

// Len returns the number of runes in the rope.
func (r *Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.length
}

// LineCount returns the number of lines: one more than the number of
// newline runes, so an empty rope still has one (empty) line.
func (r *Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.breaks + 1
}

// Insert places s at rune offset at. Offsets outside [0, Len] are clamped.
func (r *Rope) Insert(at int, s string) {
	if s == "" {
		return
	}
	at = max(0, min(at, r.Len()))
	left, right := splitNode(r.root, at)
	r.root = join(join(left, buildFromRunes([]rune(s))), right)
	r.maybeRebuild()
}

// Delete removes the runes in [start, end). Out-of-range bounds are
// clamped; an empty or inverted range is a no-op.
func (r *Rope) Delete(start, end int) {
	start = max(0, start)
	end = min(end, r.Len())
	if start >= end {
		return
	}
	left, rest := splitNode(r.root, start)
	_, right := splitNode(rest, end-start)
	r.root = join(left, right)
	r.maybeRebuild()
}

func (r *Rope) maybeRebuild() {
	if r.root != nil && r.root.height > rebuildHeight {
		r.root = buildBalanced(collectLeaves(r.root, nil))
	}
}

func appendRange(n *ropeNode, out []rune, start, end int) []rune {
	if n == nil || start >= end {
		return out
	}
	if n.text != nil {
		return append(out, n.text[start:end]...)
	}
	if start < n.left.length {
		out = appendRange(n.left, out, start, min(end, n.left.length))
	}
	if end > n.left.length {
		out = appendRange(n.right, out, max(0, start-n.left.length), end-n.left.length)
	}
	return out
}

// Slice returns the runes in [start, end) as a string, clamped to the
// rope's bounds.
func (r *Rope) Slice(start, end int) string {
	start = max(0, start)
	end = min(end, r.Len())
	if start >= end {
		return ""
	}
	return string(appendRange(r.root, make([]rune, 0, end-start), start, end))
}

// String returns the whole content.
func (r *Rope) String() string {
	return r.Slice(0, r.Len())
}

func breaksBefore(n *ropeNode, at int) int {
	if n == nil || at <= 0 {
		return 0
	}
	if at >= n.length {
		return n.breaks
	}
	if n.text != nil {
		return countBreaks(n.text[:at])
	}
	if at <= n.left.length {
		return breaksBefore(n.left, at)
	}
	return n.left.breaks + breaksBefore(n.right, at-n.left.length)
}

// seekBreak returns the offset immediately after the k-th newline, k >= 1.
// The caller guarantees k <= n.breaks.
func seekBreak(n *ropeNode, k int) int {
	if n.text != nil {
		seen := 0
		for i, r := range n.text {
			if r == '\n' {
				seen++
				if seen == k {
					return i + 1
				}
			}
		}
		return n.length
	}
	if k <= n.left.breaks {
		return seekBreak(n.left, k)
	}
	return n.left.length + seekBreak(n.right, k-n.left.breaks)
}

// OffsetToLine returns the zero-based line index containing the rune at
// offset. Offsets past the end map to the last line.
func (r *Rope) OffsetToLine(offset int) int {
	offset = max(0, min(offset, r.Len()))
	return breaksBefore(r.root, offset)
}

// LineStart returns the rune offset where line begins. Line indexes are
// clamped to [0, LineCount).
func (r *Rope) LineStart(line int) int {
	if line <= 0 || r.root == nil {
		return 0
	}
	if line > r.root.breaks {
		return r.Len()
	}
	return seekBreak(r.root, line)
}

// Line returns the content of the given line including its trailing
// newline, if any. Out-of-range indexes yield "".
func (r *Rope) Line(line int) string {
	if line < 0 || line >= r.LineCount() {
		return ""
	}
	start := r.LineStart(line)
	end := r.Len()
	if line+1 < r.LineCount() {
		end = r.LineStart(line + 1)
	}
	return r.Slice(start, end)
}
