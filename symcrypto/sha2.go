package symcrypto

import (
	"crypto/sha256"
	"crypto/sha512"
)

// Sha256Sum computes the SHA-256 digest, used solely to remain bit-exact
// with callers that cross-check against RFC 8032/8439 vectors, per
// spec.md §4.C. crypto/sha256 is stdlib because no pack example or
// ecosystem library replaces it for bit-exact SHA-2 — see DESIGN.md.
func Sha256Sum(data ...[]byte) [32]byte {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Sha512Sum computes the SHA-512 digest, used to derive the Ed25519
// private scalar and prefix from its seed (spec.md §4.F sey variant).
func Sha512Sum(data ...[]byte) [64]byte {
	h := sha512.New()
	for _, d := range data {
		h.Write(d)
	}
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}
