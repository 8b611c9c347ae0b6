// Package jsonescape carries the JSON string-escape lookup table from
// Firefox's mfbt/JSONWriter.cpp and the escaping routine that consumes it.
//
// Seven characters get two-character escapes per RFC 4627 (\b \t \n \f \r \"
// \\); the remaining control characters get the six-character \u00XX form;
// everything else passes through untouched, including bytes outside ASCII.
package jsonescape

// TwoCharEscapes maps a byte to the second character of its two-character
// escape sequence, or 0 when the byte either needs no escaping or needs the
// \u00XX form. Exactly seven entries are nonzero.
var TwoCharEscapes = [256]byte{
	'\b': 'b',
	'\t': 't',
	'\n': 'n',
	'\f': 'f',
	'\r': 'r',
	'"':  '"',
	'\\': '\\',
}

const hexDigits = "0123456789abcdef"

// AppendEscaped appends src to dst with JSON string escaping applied and
// returns the extended slice. It does not add surrounding quotes.
func AppendEscaped(dst, src []byte) []byte {
	for _, c := range src {
		switch {
		case TwoCharEscapes[c] != 0:
			dst = append(dst, '\\', TwoCharEscapes[c])
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// EscapeString returns s with JSON string escaping applied.
func EscapeString(s string) string {
	// Common case: nothing to escape, return s as-is.
	clean := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || TwoCharEscapes[c] != 0 {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	return string(AppendEscaped(make([]byte, 0, len(s)+8), []byte(s)))
}

// NeedsEscape reports whether c requires any escaping inside a JSON string.
func NeedsEscape(c byte) bool {
	return c < 0x20 || TwoCharEscapes[c] != 0
}
