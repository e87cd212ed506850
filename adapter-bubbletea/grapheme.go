package bubbleadapter

import "github.com/rivo/uniseg"

// graphemeAt returns the first grapheme cluster of s, so the cursor cell
// covers a whole user-perceived character rather than splitting a
// combining sequence.
func graphemeAt(s string) string {
	if s == "" {
		return " "
	}
	g := uniseg.NewGraphemes(s)
	if g.Next() {
		return g.Str()
	}
	return " "
}
