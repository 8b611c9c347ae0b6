package nscrt

import (
	"strings"
	"testing"
)

func TestAtoll(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"0", 0},
		{"123", 123},
		{"9223372036854775807", 9223372036854775807},
		{"123abc", 123},   // stops at first non-digit
		{"abc123", 0},     // leading non-digit
		{"  123", 0},      // whitespace is not skipped
		{"123  ", 123},    // trailing space stops but keeps value
		{"-123", 0},       // signs are not handled
		{"+123", 0},
		{"00123", 123},
		{"0123456789", 123456789},
	}
	for _, tt := range tests {
		if got := Atoll([]byte(tt.in)); got != tt.want {
			t.Errorf("Atoll(%q) = %d, want %d", tt.in, got, tt.want)
		}
		if got := AtollString(tt.in); got != tt.want {
			t.Errorf("AtollString(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAtollOverflowWraps(t *testing.T) {
	// One past INT64_MAX wraps negative instead of erroring.
	if got := Atoll([]byte("9223372036854775808")); got >= 0 {
		t.Errorf("Atoll(INT64_MAX+1) = %d, want a wrapped negative value", got)
	}
}

func TestTokenizer(t *testing.T) {
	tests := []struct {
		in     string
		delims string
		want   []string
	}{
		{"a,b,c", ",", []string{"a", "b", "c"}},
		{",,a,,b,,", ",", []string{"a", "b"}},
		{"", ",", nil},
		{",,,", ",", nil},
		{"one two\tthree", " \t", []string{"one", "two", "three"}},
		{"no-delims", ",", []string{"no-delims"}},
		{"key=value;key2=value2", "=;", []string{"key", "value", "key2", "value2"}},
	}
	for _, tt := range tests {
		tok := NewTokenizer([]byte(tt.in), []byte(tt.delims))
		var got []string
		for {
			tkn, ok := tok.Next()
			if !ok {
				break
			}
			got = append(got, string(tkn))
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("tokenize(%q, %q) = %v, want %v", tt.in, tt.delims, got, tt.want)
		}
	}
}

func TestTokenizerReturnsSubslices(t *testing.T) {
	data := []byte("ab,cd")
	tok := NewTokenizer(data, []byte(","))
	first, ok := tok.Next()
	if !ok {
		t.Fatal("no first token")
	}
	// Tokens alias the input; mutating the input shows through.
	data[0] = 'X'
	if string(first) != "Xb" {
		t.Errorf("token does not alias input: %q", first)
	}
}

func utf16Of(s string) []uint16 {
	out := make([]uint16, 0, len(s))
	for _, r := range s {
		out = append(out, uint16(r)) // BMP-only inputs in these tests
	}
	return out
}

func TestCompareUTF16(t *testing.T) {
	tests := []struct {
		a, b []uint16
		want int
	}{
		{nil, nil, 0},
		{nil, utf16Of("a"), -1},
		{utf16Of("a"), nil, 1},
		{nil, []uint16{}, -1}, // nil ranks below empty
		{utf16Of("hello"), utf16Of("hello"), 0},
		{utf16Of("hello"), utf16Of("world"), -1},
		{utf16Of("world"), utf16Of("hello"), 1},
		{utf16Of("abc"), utf16Of("abcd"), -1},
		{utf16Of("abcd"), utf16Of("abc"), 1},
		{utf16Of("B"), utf16Of("a"), -1}, // code unit order, not collation
	}
	for _, tt := range tests {
		if got := CompareUTF16(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareUTF16(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
