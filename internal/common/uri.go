package common

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// unreserved reports whether c is left as is by EncodeURIComponent.
func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// EncodeURIComponent percent-encodes s the way browsers do for header and
// query values: every byte of the UTF-8 form except A-Z a-z 0-9 - _ . ! ~ * ' ( )
// is escaped. Spaces become %20, not '+'.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// DecodeURIComponent reverses EncodeURIComponent. A literal '+' is kept.
func DecodeURIComponent(s string) (string, error) {
	return url.PathUnescape(s)
}
