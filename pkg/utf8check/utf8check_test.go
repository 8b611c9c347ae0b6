package utf8check

import (
	"testing"
	"unicode/utf8"
)

func TestValidSequences(t *testing.T) {
	valid := [][]byte{
		{},
		[]byte("Hello, world!"),
		[]byte("Café"),
		[]byte("日本語"),
		[]byte("\U0001F980"),            // 4-byte emoji
		{0x7F},                          // highest ASCII
		{0xC2, 0x80},                    // lowest 2-byte (U+0080)
		{0xDF, 0xBF},                    // highest 2-byte (U+07FF)
		{0xE0, 0xA0, 0x80},              // lowest 3-byte (U+0800)
		{0xED, 0x9F, 0xBF},              // U+D7FF, just below surrogates
		{0xEE, 0x80, 0x80},              // U+E000, just above surrogates
		{0xEF, 0xBF, 0xBF},              // U+FFFF
		{0xF0, 0x90, 0x80, 0x80},        // lowest 4-byte (U+10000)
		{0xF4, 0x8F, 0xBF, 0xBF},        // U+10FFFF, the ceiling
		{0x00},                          // NUL is fine in UTF-8
	}
	for _, b := range valid {
		if !Valid(b) {
			t.Errorf("Valid(% x) = false, want true", b)
		}
	}
}

func TestInvalidSequences(t *testing.T) {
	invalid := [][]byte{
		{0x80},                   // stray continuation
		{0xBF},                   // stray continuation
		{0xC0, 0x80},             // overlong NUL
		{0xC1, 0xBF},             // overlong
		{0xC2},                   // truncated 2-byte
		{0xE0, 0x80, 0x80},       // overlong 3-byte
		{0xE0, 0x9F, 0xBF},       // overlong 3-byte, top of the gap
		{0xED, 0xA0, 0x80},       // surrogate U+D800
		{0xED, 0xBF, 0xBF},       // surrogate U+DFFF
		{0xE1, 0x80},             // truncated 3-byte
		{0xE1, 0xC0, 0x80},       // bad continuation
		{0xF0, 0x80, 0x80, 0x80}, // overlong 4-byte
		{0xF0, 0x8F, 0xBF, 0xBF}, // overlong 4-byte, top of the gap
		{0xF4, 0x90, 0x80, 0x80}, // U+110000, past the ceiling
		{0xF5, 0x80, 0x80, 0x80}, // lead byte can never appear
		{0xFF},
		{0xFE, 0xFE, 0xFF, 0xFF},
		{0xF0, 0x90, 0x80},       // truncated 4-byte
		[]byte("ok\xffnot ok"),   // invalid byte mid-stream
	}
	for _, b := range invalid {
		if Valid(b) {
			t.Errorf("Valid(% x) = true, want false", b)
		}
	}
}

// TestAgreesWithStdlib cross-checks against unicode/utf8 over an exhaustive
// sweep of short sequences; both implement RFC 3629, so any disagreement is a
// bug here.
func TestAgreesWithStdlib(t *testing.T) {
	buf := make([]byte, 2)
	for a := 0; a < 256; a++ {
		buf[0] = byte(a)
		if Valid(buf[:1]) != utf8.Valid(buf[:1]) {
			t.Fatalf("disagree with stdlib on [% x]", buf[:1])
		}
		for b := 0; b < 256; b++ {
			buf[1] = byte(b)
			if Valid(buf) != utf8.Valid(buf) {
				t.Fatalf("disagree with stdlib on [% x]", buf)
			}
		}
	}
}

func TestValidString(t *testing.T) {
	if !ValidString("plain") {
		t.Error("ValidString(plain ASCII) = false")
	}
	if ValidString("bad\xc3") {
		t.Error("ValidString(truncated) = true")
	}
}

func BenchmarkValidASCII(b *testing.B) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte('a' + i%26)
	}
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		Valid(data)
	}
}
