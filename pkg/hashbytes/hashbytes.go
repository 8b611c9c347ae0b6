// Package hashbytes ports the HashBytes function from Firefox's
// mfbt/HashFunctions.cpp: a fast, non-cryptographic hash over arbitrary byte
// sequences, mixing with the golden ratio in the Fibonacci-hashing style.
//
// Do not use this for anything security-sensitive; it exists for hash tables
// and caches where speed and distribution matter, not collision resistance.
package hashbytes

import "encoding/binary"

// GoldenRatio is the golden ratio as a 32-bit fixed-point value, the mixing
// multiplier for every hash step.
const GoldenRatio uint32 = 0x9E3779B9

// rotl5 rotates left by 5 bits. The amount is arbitrary but mixes well.
func rotl5(v uint32) uint32 {
	return v<<5 | v>>27
}

// AddToHash folds one 32-bit value into a running hash. The XOR happens
// before the multiply so information is not lost when the hash is zero, and
// the multiply wraps, matching C++ unsigned overflow.
func AddToHash(hash, value uint32) uint32 {
	return GoldenRatio * (rotl5(hash) ^ value)
}

// HashBytes hashes b starting from seed (pass 0 for a fresh hash; pass a
// previous result to chain). It consumes 8 bytes per step, folding the low
// then the high half of each little-endian word, and finishes the tail one
// byte at a time. Chaining two calls over split input does not equal one call
// over the joined input unless the split lands on the word boundary pattern;
// use chaining for combining distinct fields, not for streaming.
func HashBytes(b []byte, seed uint32) uint32 {
	h := seed
	for len(b) >= 8 {
		w := binary.LittleEndian.Uint64(b)
		h = AddToHash(h, uint32(w))
		h = AddToHash(h, uint32(w>>32))
		b = b[8:]
	}
	for _, c := range b {
		h = AddToHash(h, uint32(c))
	}
	return h
}

// HashString is HashBytes over the bytes of s without copying semantics the
// caller needs to think about.
func HashString(s string, seed uint32) uint32 {
	return HashBytes([]byte(s), seed)
}
