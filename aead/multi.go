// Package aead implements spec.md §4.E's multi-recipient ChaCha20-Poly1305
// construction: independent per-recipient authentication tags keyed off
// distinct ChaCha20 blocks, the LEB128-header packet format, and a
// streaming record layer built on top.
package aead

import (
	"crypto/subtle"

	"gitlab.com/bernedogit/amberlite/amberr"
	"gitlab.com/bernedogit/amberlite/symcrypto"
)

const tagSize = 16

// EncryptMulti implements spec.md §4.E's algorithm: stream-xor m with
// ChaCha20(k_e, n, block=1..), then for each of n recipients derive an
// independent Poly1305 key from ChaCha20(k_{a,i}, n, block=-i) and tag
// ad ‖ pad16(ad) ‖ c ‖ pad16(c) ‖ le64(alen) ‖ le64(mlen). The output is
// ciphertext ‖ tag_0 ‖ tag_1 ‖ … ‖ tag_{n-1}, length mlen + 16*n.
func EncryptMulti(ke symcrypto.Chakey, nonce uint64, ad, m []byte, ka []symcrypto.Chakey) []byte {
	n := len(ka)
	out := make([]byte, len(m)+tagSize*n)
	c := out[:len(m)]
	symcrypto.XOR(ke, nonce, c, m)

	for i := 0; i < n; i++ {
		tag := recipientTag(ka[i], nonce, int64(-i), ad, c)
		copy(out[len(m)+i*tagSize:], tag[:])
	}
	return out
}

// DecryptMulti implements spec.md §4.E's recipient-side decrypt: recomputes
// the ika-th tag and constant-time-compares it against the stored bytes,
// returning amberr.ErrBadTag before any plaintext is exposed on mismatch,
// per spec.md §7's propagation policy.
func DecryptMulti(ke symcrypto.Chakey, nonce uint64, ad, packed []byte, kaIka symcrypto.Chakey, ika, n int) ([]byte, error) {
	if n <= 0 || ika < 0 || ika >= n {
		return nil, amberr.ErrShortInput
	}
	tagsLen := tagSize * n
	if len(packed) < tagsLen {
		return nil, amberr.ErrShortInput
	}
	mlen := len(packed) - tagsLen
	c := packed[:mlen]
	storedTag := packed[mlen+ika*tagSize : mlen+(ika+1)*tagSize]

	tag := recipientTag(kaIka, nonce, int64(-ika), ad, c)
	if subtle.ConstantTimeCompare(tag[:], storedTag) != 1 {
		return nil, amberr.ErrBadTag
	}

	m := make([]byte, mlen)
	symcrypto.XOR(ke, nonce, m, c)
	return m, nil
}

// recipientTag derives the per-recipient Poly1305 key and computes the
// RFC 8439 AEAD-shaped tag over ad ‖ pad16(ad) ‖ c ‖ pad16(c) ‖ le64(alen)
// ‖ le64(mlen), spec.md §4.E step 2.
func recipientTag(ka symcrypto.Chakey, nonce uint64, blockIndex int64, ad, c []byte) [16]byte {
	var keyBytes [32]byte
	symcrypto.Stream(ka, nonce, blockIndex, keyBytes[:])
	polyKey := symcrypto.Poly1305Key(keyBytes)

	buf := make([]byte, 0, len(ad)+16+len(c)+16+8+8)
	buf = append(buf, ad...)
	buf = append(buf, symcrypto.Pad16(len(ad))...)
	buf = append(buf, c...)
	buf = append(buf, symcrypto.Pad16(len(c))...)
	buf = append(buf, symcrypto.LE64(uint64(len(ad)))...)
	buf = append(buf, symcrypto.LE64(uint64(len(c)))...)

	return symcrypto.Poly1305Sum(polyKey, buf)
}
