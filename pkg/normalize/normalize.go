// Package normalize provides the pure text normalization used for
// ingredient matching keys. The same functions run at cataloging time and
// at link time, so the same real-world ingredient always produces the same
// key regardless of which record introduced accents or case.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gnames/gnlib"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and replaces accented characters with their base
// letters (à→a, é→e, ï→i, õ→o, ü→u and the rest of the combining-mark
// repertoire). Deterministic, pure, idempotent.
func Fold(s string) string {
	s = strings.ToLower(s)

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	res, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return res
}

// FixEncoding repairs ingredient text that upstream mis-decoded as
// ISO-8859-1: the string is re-encoded to its original bytes and re-read
// as UTF-8. Text that does not round-trip (already correct, or genuinely
// Latin-1) is returned unchanged apart from invalid-sequence sanitation.
func FixEncoding(s string) string {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil || !utf8.Valid(b) {
		return gnlib.FixUtf8(s)
	}
	return string(b)
}

// Key is the normalization key for an ingredient mention: encoding fix-up
// followed by Fold.
func Key(s string) string {
	return Fold(FixEncoding(s))
}
