package symcrypto

import (
	"crypto/hmac"
	"hash"
)

// Hmac computes HMAC(key, data) generic over the supplied hash
// constructor, spec.md §4.C's "generic-over-hash construct with the
// standard ipad/opad scheme and key-longer-than-block pre-hashing" —
// exactly what crypto/hmac already implements, so we wrap rather than
// reimplement it (see DESIGN.md for why this one primitive stays stdlib).
func Hmac(newHash func() hash.Hash, key []byte, data ...[]byte) []byte {
	m := hmac.New(newHash, key)
	for _, d := range data {
		m.Write(d)
	}
	return m.Sum(nil)
}
