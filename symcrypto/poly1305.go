package symcrypto

import (
	"encoding/binary"

	"golang.org/x/crypto/poly1305"
)

// Poly1305Key is the 256-bit one-time MAC key golang.org/x/crypto/poly1305
// expects: the clamped r value and the s pad, concatenated.
type Poly1305Key [32]byte

// Pad16 returns the zero bytes needed to round n up to a 16-byte boundary,
// spec.md §4.C's `pad16` helper required by the RFC 8439 AEAD construction.
func Pad16(n int) []byte {
	rem := n % 16
	if rem == 0 {
		return nil
	}
	return make([]byte, 16-rem)
}

// LE64 encodes n as 8 little-endian bytes, spec.md §4.C's "little-endian
// u64 update" helper.
func LE64(n uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	return b[:]
}

// Poly1305Sum computes the one-time MAC over data using key, mirroring
// RFC 8439's Poly1305 over a pre-assembled buffer of
// ad ‖ pad16(ad) ‖ c ‖ pad16(c) ‖ le64(alen) ‖ le64(mlen), built by the
// aead package's per-recipient tag step (spec.md §4.E).
func Poly1305Sum(key Poly1305Key, data []byte) [16]byte {
	return poly1305.Sum(data, (*[32]byte)(&key))
}

// Poly1305Verify reports whether tag authenticates data under key, in
// constant time.
func Poly1305Verify(tag [16]byte, data []byte, key Poly1305Key) bool {
	return poly1305.Verify(&tag, data, (*[32]byte)(&key))
}
