package spreadsheet

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

// NormalizeHeader folds a header cell for matching: accents removed, lower
// case, and runs of spaces, dashes and underscores collapsed to one space.
// "Prénom", "PRENOM" and " prenom " all become "prenom".
func NormalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, h)
	if err != nil {
		folded = h
	}
	folded = strings.ToLower(folded)
	folded = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

// HeaderMapper returns a row mapper that renames headers to form field
// names. aliases maps each field name to the headers accepted for it; the
// field name itself always matches. Unknown headers are dropped.
func HeaderMapper(aliases map[string][]string) func(core.RawRecord) map[string]string {
	lookup := make(map[string]string)
	for field, names := range aliases {
		lookup[NormalizeHeader(field)] = field
		for _, n := range names {
			lookup[NormalizeHeader(n)] = field
		}
	}

	return func(row core.RawRecord) map[string]string {
		out := make(map[string]string, len(row))
		for header, value := range row {
			field, ok := lookup[NormalizeHeader(header)]
			if !ok {
				continue
			}
			if _, set := out[field]; set && value == "" {
				continue
			}
			out[field] = value
		}
		return out
	}
}
