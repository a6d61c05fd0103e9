// Package symcrypto implements the symmetric primitives spec.md §4.C
// names: ChaCha20/HChaCha20, Poly1305, BLAKE2b/BLAKE2s, SHA-256/SHA-512,
// and generic HMAC. Each wraps the matching golang.org/x/crypto
// sub-package the teacher already depends on, the way the teacher's own
// h2c package wraps filippo.io/edwards25519 rather than re-deriving field
// arithmetic.
package symcrypto

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// Chakey is the 256-bit ChaCha20 key, spec.md §3's Chakey type.
type Chakey [32]byte

// Stream produces a ChaCha20 keystream using the internal "64-bit nonce,
// 64-bit block counter" flavor spec.md §4.C describes, starting at the
// given block index. A negative blockIndex is valid: it is used by the
// multi-recipient AEAD (spec.md §4.E) to key per-recipient Poly1305 keys
// off distinct negative block indices.
func Stream(key Chakey, nonce uint64, blockIndex int64, out []byte) {
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], nonce)

	c, err := chacha20.NewUnauthenticatedCipher(key[:], chachaNonce(nonceBytes, uint32(uint64(blockIndex)>>32)))
	if err != nil {
		// Only errors on wrong-length key/nonce; both are fixed-size here.
		panic("symcrypto: " + err.Error())
	}
	c.SetCounter(blockCounter(blockIndex))

	for i := range out {
		out[i] = 0
	}
	c.XORKeyStream(out, out)
}

// XOR XORs src into dst using the ChaCha20 keystream starting at block 1,
// spec.md §4.E step 1's "stream-xor m with ChaCha20(k_e, n, block=1..)".
func XOR(key Chakey, nonce uint64, dst, src []byte) {
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], nonce)

	c, err := chacha20.NewUnauthenticatedCipher(key[:], chachaNonce(nonceBytes, 0))
	if err != nil {
		panic("symcrypto: " + err.Error())
	}
	c.SetCounter(1)
	c.XORKeyStream(dst, src)
}

// IETFStream is the RFC 8439 IETF flavor (96-bit nonce, 32-bit counter),
// spec.md §4.C's `ietf_sender` variant, occupying the block index's top 32
// bits with the sender-chosen nonce extension.
func IETFStream(key Chakey, nonce [12]byte, counter uint32, out []byte) {
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		panic("symcrypto: " + err.Error())
	}
	c.SetCounter(counter)
	for i := range out {
		out[i] = 0
	}
	c.XORKeyStream(out, out)
}

// HChaCha20 derives a 256-bit subkey from a 256-bit key and a 128-bit
// nonce, spec.md §4.C's `hchacha20`, for XChaCha-like constructions.
func HChaCha20(key Chakey, nonce [16]byte) Chakey {
	var out Chakey
	chacha20.HChaCha20(&out, &nonce)
	return out
}

// chachaNonce packs the 64-bit layout into the 12-byte IETF-shaped nonce
// golang.org/x/crypto/chacha20 requires: state word 13 (the first nonce
// word) takes blockHi, the high 32 bits of the block counter, and words
// 14-15 take the 8-byte internal nonce n.
func chachaNonce(n [8]byte, blockHi uint32) []byte {
	var full [chacha20.NonceSize]byte
	binary.LittleEndian.PutUint32(full[:4], blockHi)
	copy(full[4:], n[:])
	return full[:]
}

// blockCounter returns the low 32 bits of spec.md's signed 64-bit block
// index (negative indices are used for per-recipient Poly1305 key
// derivation, spec.md §4.E), the counter word golang.org/x/crypto/chacha20
// exposes via SetCounter; the high 32 bits go through chachaNonce.
func blockCounter(blockIndex int64) uint32 {
	return uint32(blockIndex)
}
