package docgen

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const stampLayout = "2006-01-02_15-04-05"

// FileBase names the output files of one render, without extension:
// orcamento_<client>_<YYYY-MM-DD_HH-MM-SS>.
func FileBase(client string, at time.Time) string {
	return "orcamento_" + Slug(client) + "_" + at.Format(stampLayout)
}

// Slug keeps ASCII letters, digits, '-' and '_' from s after stripping
// accents, joining words with '_'. An empty result becomes "cliente".
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	words := strings.Fields(plain)
	for i, w := range words {
		words[i] = strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
				return r
			}
			return -1
		}, w)
	}
	out := strings.Join(strings.FieldsFunc(strings.Join(words, " "), unicode.IsSpace), "_")
	if out == "" {
		return "cliente"
	}
	return out
}
