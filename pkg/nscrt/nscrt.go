// Package nscrt ports the string and number helpers from Firefox's
// xpcom/ds/nsCRT.cpp: a decimal parser with deliberately naive semantics, a
// delimiter-bitmap tokenizer, and UTF-16 comparison.
//
// The quirks are the point. Atoll does not skip whitespace, does not accept
// signs and wraps silently on overflow, because downstream callers depend on
// exactly that behavior.
package nscrt

// Atoll converts leading ASCII decimal digits of b to an int64. Parsing
// stops at the first non-digit; a leading non-digit (including spaces and
// signs) yields 0. Overflow wraps rather than erroring.
func Atoll(b []byte) int64 {
	var result int64
	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}
		result = result*10 + int64(c-'0')
	}
	return result
}

// AtollString is Atoll over the bytes of s.
func AtollString(s string) int64 {
	var result int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		result = result*10 + int64(c-'0')
	}
	return result
}

// delimSet is a 256-bit membership bitmap over byte values, 32 bytes total.
type delimSet [32]byte

func makeDelimSet(delims []byte) delimSet {
	var s delimSet
	for _, c := range delims {
		s[c>>3] |= 1 << (c & 7)
	}
	return s
}

func (s *delimSet) contains(c byte) bool {
	return s[c>>3]&(1<<(c&7)) != 0
}

// Tokenizer splits a byte slice on a delimiter set with nsCRT::strtok
// semantics: runs of delimiters are skipped, empty tokens never occur, and
// tokens are returned as subslices of the original input without copying.
type Tokenizer struct {
	rest   []byte
	delims delimSet
}

// NewTokenizer prepares to tokenize data on the given delimiter bytes.
func NewTokenizer(data, delims []byte) *Tokenizer {
	return &Tokenizer{rest: data, delims: makeDelimSet(delims)}
}

// Next returns the next token and true, or nil and false when the input is
// exhausted.
func (t *Tokenizer) Next() ([]byte, bool) {
	// Skip leading delimiters.
	i := 0
	for i < len(t.rest) && t.delims.contains(t.rest[i]) {
		i++
	}
	if i == len(t.rest) {
		t.rest = nil
		return nil, false
	}
	start := i
	for i < len(t.rest) && !t.delims.contains(t.rest[i]) {
		i++
	}
	tok := t.rest[start:i]
	t.rest = t.rest[i:]
	return tok, true
}

// CompareUTF16 compares two UTF-16 code unit sequences lexicographically,
// returning -1, 0 or 1. Nil ranks below any non-nil slice, including the
// empty one, mirroring the original's null-pointer handling.
func CompareUTF16(a, b []uint16) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
