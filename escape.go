package fmxml

import (
	"strconv"
	"strings"
	"unicode"
)

// escapeToASCII returns a plain-ASCII rendition of s for direct use in
// XHTML. Markup characters are entity-escaped (the apostrophe as the
// numeric &#39; reference, which older renderers handle where &apos;
// fails) and every non-ASCII rune becomes a decimal character
// reference. Surrounding whitespace is trimmed.
func escapeToASCII(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		default:
			if r > unicode.MaxASCII {
				b.WriteString("&#")
				b.WriteString(strconv.Itoa(int(r)))
				b.WriteByte(';')
			} else {
				b.WriteRune(r)
			}
		}
	}

	return b.String()
}
