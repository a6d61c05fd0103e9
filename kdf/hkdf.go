package kdf

import (
	"hash"
	"io"

	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/hkdf"
)

func newBlake2s() hash.Hash {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic("kdf: " + err.Error())
	}
	return h
}

func readFull(r io.Reader, buf []byte) (int, error) {
	return io.ReadFull(r, buf)
}

// HKDF implements spec.md §4.D's generic HKDF: Extract-then-expand per
// RFC 5869, buffering info and emitting indexed expand blocks internally
// via golang.org/x/crypto/hkdf (the teacher's own dependency tree already
// carries golang.org/x/crypto; hkdf is its RFC 5869 implementation).
func HKDF(newHash func() hash.Hash, secret, salt, info []byte, out []byte) error {
	r := hkdf.New(newHash, secret, salt, info)
	_, err := readFull(r, out)
	return err
}
