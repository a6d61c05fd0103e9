package symcrypto

import (
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
)

// Blake2bSize is the default BLAKE2b digest length, 64 bytes.
const Blake2bSize = blake2b.Size

// Blake2sSize is the default BLAKE2s digest length, 32 bytes.
const Blake2sSize = blake2s.Size

// Blake2bKeyed returns a new, keyed BLAKE2b hash.Hash of the requested
// output size (1..64 bytes), matching spec.md §4.C's "optional 64-byte key
// (pre-loaded as the first block)". An empty key produces the unkeyed hash.
func Blake2bKeyed(key []byte, size int) hash.Hash {
	h, err := blake2b.New(size, key)
	if err != nil {
		panic("symcrypto: " + err.Error())
	}
	return h
}

// Blake2sKeyed returns a new, keyed 256-bit BLAKE2s hash.Hash. BLAKE2s's
// non-XOF construction is fixed at 32 bytes in golang.org/x/crypto/blake2s;
// callers needing a different length use Blake2xsXOF instead.
func Blake2sKeyed(key []byte) hash.Hash {
	h, err := blake2s.New256(key)
	if err != nil {
		panic("symcrypto: " + err.Error())
	}
	return h
}

// Blake2bSum computes the unkeyed BLAKE2b-512 digest of data in one call,
// the common case for domain-separated hashing in sig.SecretBmx.Sign and
// sig.PublicBmx.Verify.
func Blake2bSum(data ...[]byte) [64]byte {
	h, _ := blake2b.New512(nil)
	for _, d := range data {
		h.Write(d)
	}
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Blake2sSum computes the unkeyed BLAKE2s-256 digest of data in one call,
// used by kdf.MixKey/MixHash (Noise's BLAKE2s-based triad, spec.md §4.D).
func Blake2sSum(data ...[]byte) [32]byte {
	h, _ := blake2s.New256(nil)
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Blake2xbXOF returns a BLAKE2b-based extendable-output function,
// spec.md §4.C's BLAKE2xb, able to expand to any requested length.
// golang.org/x/crypto/blake2b's XOF takes the desired output length
// directly (size == blake2b.OutputLengthUnknown for a streaming-unbounded
// XOF). Only the output size and key are exposed; salt and personalization
// are not settable.
func Blake2xbXOF(size uint32, key []byte) (blake2b.XOF, error) {
	return blake2b.NewXOF(size, key)
}

// Blake2xsXOF returns a BLAKE2s-based extendable-output function,
// spec.md §4.C's BLAKE2xs.
func Blake2xsXOF(size uint16, key []byte) (blake2s.XOF, error) {
	return blake2s.NewXOF(size, key)
}
