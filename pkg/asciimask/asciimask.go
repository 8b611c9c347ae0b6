// Package asciimask provides the ASCII classification tables from Firefox's
// xpcom/string/nsASCIIMask.cpp: fixed 128-entry membership masks used for
// fast character-set tests in string stripping and tokenizing code.
//
// The masks are immutable after package init and safe for concurrent reads.
package asciimask

// Mask is a membership table with one entry per ASCII code point. A mask
// answers "is this character in the set" with a single index.
type Mask [128]bool

func build(pred func(byte) bool) Mask {
	var m Mask
	for i := range m {
		m[i] = pred(byte(i))
	}
	return m
}

var (
	// Whitespace matches \f, \t, \r, \n and space.
	Whitespace = build(func(c byte) bool {
		return c == '\f' || c == '\t' || c == '\r' || c == '\n' || c == ' '
	})

	// CRLF matches \r and \n.
	CRLF = build(func(c byte) bool { return c == '\r' || c == '\n' })

	// CRLFTab matches \r, \n and \t.
	CRLFTab = build(func(c byte) bool { return c == '\r' || c == '\n' || c == '\t' })

	// ZeroToNine matches the decimal digits.
	ZeroToNine = build(func(c byte) bool { return c >= '0' && c <= '9' })
)

// IsMasked reports whether ch is an ASCII character contained in mask.
// Bytes >= 128 are never masked.
func IsMasked(mask *Mask, ch byte) bool {
	return ch < 128 && mask[ch]
}
