// Package layout breaks text into lines that fit a width measured by the
// caller, so the same routine serves PDF points and raster pixels.
package layout

import (
	"iter"
	"slices"
	"strings"
)

type Measurer func(s string) float64

// Wrap yields the greedy line breaking of text within maxWidth. Words are
// never split: a word wider than maxWidth gets a line of its own. Empty or
// whitespace-only text yields nothing.
func Wrap(text string, maxWidth float64, measure Measurer) iter.Seq[string] {
	return func(yield func(string) bool) {
		words := strings.Fields(text)
		if len(words) == 0 {
			return
		}
		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if measure(candidate) <= maxWidth {
				current = candidate
				continue
			}
			if !yield(current) {
				return
			}
			current = w
		}
		yield(current)
	}
}

func Lines(seq iter.Seq[string]) []string {
	return slices.Collect(seq)
}

// WrapAll wraps every newline-separated paragraph of text. Blank paragraphs
// are kept as empty lines.
func WrapAll(text string, maxWidth float64, measure Measurer) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		wrapped := Lines(Wrap(para, maxWidth, measure))
		if len(wrapped) == 0 {
			out = append(out, "")
			continue
		}
		out = append(out, wrapped...)
	}
	return out
}
