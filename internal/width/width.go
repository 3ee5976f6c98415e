// Package width computes terminal display widths for line text and
// annotations. Width is measured in columns, not runes: East Asian wide
// glyphs occupy two columns, combining sequences collapse onto their base
// glyph, and control characters occupy none.
package width

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// String returns the number of terminal columns s occupies.
// The text is segmented into grapheme clusters so that combining marks and
// joined emoji sequences count as a single glyph. Returns 0 for the empty
// string.
func String(s string) int {
	if s == "" {
		return 0
	}
	total := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		total += clusterWidth(cluster)
	}
	return total
}

// clusterWidth returns the column width of a single grapheme cluster.
// The cluster renders as one glyph, so its width is the widest rune it
// contains rather than the sum.
func clusterWidth(cluster string) int {
	w := 0
	for _, r := range cluster {
		if rw := runewidth.RuneWidth(r); rw > w {
			w = rw
		}
	}
	return w
}

// Annotations sums the display widths of a set of annotation texts.
func Annotations(texts []string) int {
	total := 0
	for _, t := range texts {
		total += String(t)
	}
	return total
}
