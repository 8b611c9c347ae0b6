// Package utf8check validates UTF-8 byte sequences with the strictness of
// Firefox's mozilla::IsValidUtf8: RFC 3629 exactly. Overlong encodings,
// UTF-16 surrogates (U+D800-U+DFFF), code points above U+10FFFF and truncated
// sequences are all rejected.
package utf8check

// acceptRange bounds the legal values of the byte after a lead byte. The
// non-default ranges are what rule out overlongs, surrogates and values past
// U+10FFFF without decoding anything.
type acceptRange struct {
	lo, hi byte
}

// Valid reports whether b is well-formed UTF-8.
func Valid(b []byte) bool {
	for i := 0; i < len(b); {
		c := b[i]
		if c < 0x80 {
			i++
			continue
		}

		var size int
		var second acceptRange
		switch {
		case c < 0xC2:
			// 0x80-0xBF: stray continuation; 0xC0-0xC1: overlong 2-byte.
			return false
		case c < 0xE0:
			size, second = 2, acceptRange{0x80, 0xBF}
		case c == 0xE0:
			size, second = 3, acceptRange{0xA0, 0xBF} // rejects overlong 3-byte
		case c < 0xED:
			size, second = 3, acceptRange{0x80, 0xBF}
		case c == 0xED:
			size, second = 3, acceptRange{0x80, 0x9F} // rejects surrogates
		case c < 0xF0:
			size, second = 3, acceptRange{0x80, 0xBF}
		case c == 0xF0:
			size, second = 4, acceptRange{0x90, 0xBF} // rejects overlong 4-byte
		case c < 0xF4:
			size, second = 4, acceptRange{0x80, 0xBF}
		case c == 0xF4:
			size, second = 4, acceptRange{0x80, 0x8F} // rejects > U+10FFFF
		default:
			// 0xF5-0xFF can never appear in UTF-8.
			return false
		}

		if i+size > len(b) {
			return false
		}
		if b[i+1] < second.lo || b[i+1] > second.hi {
			return false
		}
		for j := 2; j < size; j++ {
			if b[i+j]&0xC0 != 0x80 {
				return false
			}
		}
		i += size
	}
	return true
}

// ValidString is Valid over the bytes of s.
func ValidString(s string) bool {
	return Valid([]byte(s))
}
